// Package corpusgen defines interfaces and orchestration for the corpus
// generation pipeline.
package corpusgen

import (
	"context"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Publisher stores a finished Document.
// Implemented by jsonfile.Writer and corpus.Repo.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, doc *domain.Document) error
}
