// Package freedict looks up phonetic transcriptions in the FreeDictionary API.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

const (
	// Name identifies this provider in logs.
	Name = "freedict"

	// DefaultBaseURL is the public FreeDictionary endpoint.
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Provider fetches transcriptions from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider. An empty baseURL selects DefaultBaseURL and a
// non-positive timeout selects the default client timeout.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", Name),
	}
}

// Lookup returns the transcription of word, preferring the US variant.
// Returns domain.ErrNotFound when the API knows no transcription and
// domain.ErrUnavailable when the API cannot be reached.
func (p *Provider) Lookup(ctx context.Context, word string) (string, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		return "", fmt.Errorf("freedict: request failed: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("freedict %q: %w", word, domain.ErrNotFound)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("freedict: unexpected status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", fmt.Errorf("freedict: decode json: %w", err)
	}

	transcription := pickTranscription(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("entries", len(entries)),
		slog.String("transcription", transcription),
	)

	if transcription == "" {
		return "", fmt.Errorf("freedict %q: %w", word, domain.ErrNotFound)
	}
	return transcription, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

// pickTranscription chooses one transcription across all entries.
// Order of preference: a US-audio phonetic, the entry-level phonetic,
// then the first phonetic with text.
func pickTranscription(entries []apiEntry) string {
	var entryLevel, first string
	for _, entry := range entries {
		if entryLevel == "" {
			entryLevel = strings.TrimSpace(entry.Phonetic)
		}
		for _, ph := range entry.Phonetics {
			text := strings.TrimSpace(ph.Text)
			if text == "" {
				continue
			}
			if inferRegion(ph.Audio) == "US" {
				return withSlashes(text)
			}
			if first == "" {
				first = text
			}
		}
	}
	if entryLevel != "" {
		return withSlashes(entryLevel)
	}
	return withSlashes(first)
}

// withSlashes wraps a bare transcription in slashes, matching the CMU output.
func withSlashes(s string) string {
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "[") {
		return s
	}
	return "/" + s + "/"
}

// inferRegion determines the pronunciation region from the audio URL.
func inferRegion(audioURL string) string {
	lower := strings.ToLower(audioURL)
	if strings.Contains(lower, "-us.") || strings.Contains(lower, "-us-") {
		return "US"
	}
	if strings.Contains(lower, "-uk.") || strings.Contains(lower, "-uk-") {
		return "UK"
	}
	return ""
}
