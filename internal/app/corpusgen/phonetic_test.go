package corpusgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubProvider answers from a fixed table; words not in the table yield err.
type stubProvider struct {
	answers map[string]string
	err     error
	calls   int
}

func (s *stubProvider) Lookup(ctx context.Context, word string) (string, error) {
	s.calls++
	if t, ok := s.answers[word]; ok {
		return t, nil
	}
	if s.err != nil {
		return "", s.err
	}
	return "", domain.ErrNotFound
}

func TestPhoneticChain_FirstHitWins(t *testing.T) {
	t.Parallel()

	first := &stubProvider{answers: map[string]string{"audit": "/ɔdʌt/"}}
	second := &stubProvider{answers: map[string]string{"audit": "/ˈɔːdɪt/", "memo": "/ˈmɛmoʊ/"}}
	chain := NewPhoneticChain(newTestLogger(), time.Second).Add("first", first).Add("second", second)
	require.Equal(t, 2, chain.Len())

	got, err := chain.Lookup(context.Background(), "audit")
	require.NoError(t, err)
	assert.Equal(t, "/ɔdʌt/", got)
	assert.Equal(t, 0, second.calls)

	got, err = chain.Lookup(context.Background(), "memo")
	require.NoError(t, err)
	assert.Equal(t, "/ˈmɛmoʊ/", got)
}

func TestPhoneticChain_NotFound(t *testing.T) {
	t.Parallel()

	chain := NewPhoneticChain(newTestLogger(), 0).
		Add("a", &stubProvider{}).
		Add("b", &stubProvider{answers: map[string]string{"memo": ""}})

	_, err := chain.Lookup(context.Background(), "memo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
}

func TestPhoneticChain_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewPhoneticChain(newTestLogger(), 0).Lookup(context.Background(), "memo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPhoneticChain_Unavailable(t *testing.T) {
	t.Parallel()

	down := &stubProvider{err: fmt.Errorf("dial: %w", domain.ErrUnavailable)}
	chain := NewPhoneticChain(newTestLogger(), 0).Add("down", down)

	_, err := chain.Lookup(context.Background(), "memo")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestPhoneticChain_DisablesFailingProvider(t *testing.T) {
	t.Parallel()

	down := &stubProvider{err: errors.New("connection refused")}
	backup := &stubProvider{answers: map[string]string{"memo": "/ˈmɛmoʊ/"}}
	chain := NewPhoneticChain(newTestLogger(), 0).Add("down", down).Add("backup", backup)

	for range maxConsecutiveFailures + 3 {
		got, err := chain.Lookup(context.Background(), "memo")
		require.NoError(t, err)
		assert.Equal(t, "/ˈmɛmoʊ/", got)
	}
	assert.Equal(t, maxConsecutiveFailures, down.calls)
}

func TestPhoneticChain_NotFoundResetsFailures(t *testing.T) {
	t.Parallel()

	flaky := &stubProvider{
		answers: map[string]string{"audit": "/ɔdʌt/"},
		err:     errors.New("timeout"),
	}
	chain := NewPhoneticChain(newTestLogger(), 0).Add("flaky", flaky)

	for range maxConsecutiveFailures - 1 {
		_, err := chain.Lookup(context.Background(), "memo")
		require.Error(t, err)
	}
	_, err := chain.Lookup(context.Background(), "audit")
	require.NoError(t, err)

	for range maxConsecutiveFailures - 1 {
		_, _ = chain.Lookup(context.Background(), "memo")
	}
	got, err := chain.Lookup(context.Background(), "audit")
	require.NoError(t, err, "provider must still be enabled")
	assert.Equal(t, "/ɔdʌt/", got)
}

func TestPhoneticChain_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &stubProvider{err: context.Canceled}
	chain := NewPhoneticChain(newTestLogger(), 0).Add("p", p)

	_, err := chain.Lookup(ctx, "memo")
	assert.ErrorIs(t, err, context.Canceled)
}
