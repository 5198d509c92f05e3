package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// SeedRun inserts an empty generation run and returns its id.
func SeedRun(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO generation_runs (id, generated_at, version) VALUES ($1, $2, $3)`,
		id, time.Now().UTC().Truncate(time.Microsecond), "test",
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRun: %v", err)
	}
	return id
}

// RunExists reports whether a generation run row exists.
func RunExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM generation_runs WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("testhelper: RunExists: %v", err)
	}
	return exists
}

// NewDocument builds a small consistent document for one category with one
// sentence and one question per word.
func NewDocument(words ...string) *domain.Document {
	doc := &domain.Document{
		Meta: &domain.DocumentMeta{
			RunID:       uuid.New(),
			GeneratedAt: time.Now().UTC().Truncate(time.Microsecond),
			Version:     "test",
		},
		Categories: []domain.CategoryDoc{{
			ID:        "cat01",
			TitleZH:   "商務管理",
			Subgroups: []domain.SubgroupDoc{{ID: "management", TitleZH: "management"}},
		}},
		VocabItems: []domain.VocabItem{},
		Sentences:  []domain.Sentence{},
		Questions:  []domain.Question{},
	}

	for _, w := range words {
		vocabID := "v" + uuid.New().String()[:5]
		doc.VocabItems = append(doc.VocabItems, domain.VocabItem{
			ID:         vocabID,
			Word:       w,
			POS:        domain.PartOfSpeechNoun,
			MeaningZH:  []string{"意思"},
			CategoryID: "cat01",
			SubgroupID: "management",
			NotesZH:    "多益常見搭配：",
			Tags:       []string{"toeic", "商務管理"},
		})
		doc.Sentences = append(doc.Sentences, domain.Sentence{
			ID:         "s" + vocabID[1:],
			VocabID:    vocabID,
			Level:      domain.LevelEasy,
			SentenceEN: "The " + w + " was reviewed.",
			SentenceZH: "已審查。",
		})
		choices := []string{w, "alpha", "beta", "gamma"}
		doc.Questions = append(doc.Questions, domain.Question{
			ID:            "q" + vocabID[1:],
			VocabID:       vocabID,
			Type:          domain.QuestionTypeCloze,
			PromptEN:      "The _____ was reviewed.",
			FullSentence:  "The " + w + " was reviewed.",
			PromptZH:      "請選出正確的單字。",
			Choices:       choices,
			AnswerIndex:   0,
			ExplanationZH: "正確答案是 " + w + "。",
			Level:         domain.LevelEasy,
			Word:          w,
			Meaning:       "意思",
		})
	}

	doc.Meta.Counts = domain.RunCounts{
		Source:    len(words),
		Vocab:     len(doc.VocabItems),
		Sentences: len(doc.Sentences),
		Questions: len(doc.Questions),
	}
	return doc
}
