// Package jsonfile publishes a Document as a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Name identifies this publisher in logs.
const Name = "jsonfile"

// Writer writes the Document to a fixed path. The file is replaced
// atomically: readers see either the previous document or the new one.
type Writer struct {
	path string
	log  *slog.Logger
}

// NewWriter creates a Writer targeting path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{
		path: path,
		log:  logger.With("adapter", Name),
	}
}

// Name implements corpusgen.Publisher.
func (w *Writer) Name() string { return Name }

// Path returns the output path.
func (w *Writer) Path() string { return w.path }

// Publish encodes doc and moves it into place.
func (w *Writer) Publish(ctx context.Context, doc *domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("jsonfile: chmod: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("jsonfile: rename: %w", err)
	}

	w.log.InfoContext(ctx, "document written",
		slog.String("path", w.path),
		slog.Int("vocab_items", len(doc.VocabItems)),
		slog.Int("sentences", len(doc.Sentences)),
		slog.Int("questions", len(doc.Questions)),
	)
	return nil
}

// Encode writes doc as indented JSON. Non-ASCII text and HTML characters are
// written as-is.
func Encode(w io.Writer, doc *domain.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
