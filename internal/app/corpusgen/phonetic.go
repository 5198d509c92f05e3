package corpusgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// PhoneticProvider returns a transcription for a headword.
// Implemented by cmu.Dictionary and freedict.Provider.
type PhoneticProvider interface {
	Lookup(ctx context.Context, word string) (string, error)
}

// maxConsecutiveFailures disables a provider for the rest of the run after
// this many lookups in a row fail for reasons other than a missing word.
const maxConsecutiveFailures = 5

type chainLink struct {
	name     string
	provider PhoneticProvider
	failures int
	disabled bool
}

// PhoneticChain asks providers in order and returns the first transcription.
// Not safe for concurrent use.
type PhoneticChain struct {
	log     *slog.Logger
	timeout time.Duration
	links   []*chainLink
}

// NewPhoneticChain creates an empty chain. A positive timeout bounds every
// individual provider call.
func NewPhoneticChain(log *slog.Logger, timeout time.Duration) *PhoneticChain {
	return &PhoneticChain{log: log, timeout: timeout}
}

// Add appends a provider to the chain.
func (c *PhoneticChain) Add(name string, p PhoneticProvider) *PhoneticChain {
	c.links = append(c.links, &chainLink{name: name, provider: p})
	return c
}

// Len returns the number of providers in the chain.
func (c *PhoneticChain) Len() int { return len(c.links) }

// Lookup returns the first non-empty transcription. It returns
// domain.ErrNotFound when every provider answered without one and
// domain.ErrUnavailable when no provider could answer.
func (c *PhoneticChain) Lookup(ctx context.Context, word string) (string, error) {
	var lastErr error
	for _, link := range c.links {
		if link.disabled {
			continue
		}

		t, err := c.call(ctx, link, word)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if err == nil && t != "" {
			link.failures = 0
			return t, nil
		}
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			link.failures = 0
			continue
		}

		lastErr = err
		link.failures++
		c.log.DebugContext(ctx, "phonetic lookup failed",
			slog.String("provider", link.name),
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		if link.failures >= maxConsecutiveFailures {
			link.disabled = true
			c.log.WarnContext(ctx, "phonetic provider disabled",
				slog.String("provider", link.name),
				slog.Int("consecutive_failures", link.failures),
			)
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("phonetic %q: %w: %w", word, domain.ErrUnavailable, lastErr)
	}
	return "", fmt.Errorf("phonetic %q: %w", word, domain.ErrNotFound)
}

func (c *PhoneticChain) call(ctx context.Context, link *chainLink, word string) (string, error) {
	if c.timeout <= 0 {
		return link.provider.Lookup(ctx, word)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return link.provider.Lookup(ctx, word)
}
