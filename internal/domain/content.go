package domain

import (
	"time"

	"github.com/google/uuid"
)

// VocabItem is the published projection of a WordEntry.
type VocabItem struct {
	ID         string       `json:"id"`
	Word       string       `json:"word"`
	POS        PartOfSpeech `json:"pos"`
	MeaningZH  []string     `json:"meaning_zh"`
	Phonetic   string       `json:"phonetic"`
	CategoryID string       `json:"category_id"`
	SubgroupID string       `json:"subgroup_id"`
	NotesZH    string       `json:"notes_zh"`
	Tags       []string     `json:"tags"`
}

// Sentence is a localized example sentence for a VocabItem.
type Sentence struct {
	ID           string   `json:"id"`
	VocabID      string   `json:"vocab_id"`
	Level        Level    `json:"level"`
	SentenceEN   string   `json:"sentence_en"`
	SentenceZH   string   `json:"sentence_zh"`
	Collocations []string `json:"collocations"`
}

// Question is an auto-graded multiple-choice question for a VocabItem.
// Choices[AnswerIndex] is always Word.
type Question struct {
	ID            string       `json:"id"`
	VocabID       string       `json:"vocab_id"`
	Type          QuestionType `json:"type"`
	PromptEN      string       `json:"prompt_en"`
	FullSentence  string       `json:"full_sentence"`
	PromptZH      string       `json:"prompt_zh"`
	Choices       []string     `json:"choices"`
	AnswerIndex   int          `json:"answer_index"`
	ExplanationZH string       `json:"explanation_zh"`
	Level         Level        `json:"level"`
	Word          string       `json:"word"`
	Meaning       string       `json:"meaning"`
}

// SubgroupDoc describes a subgroup inside a CategoryDoc.
type SubgroupDoc struct {
	ID      string `json:"id"`
	TitleZH string `json:"title_zh"`
}

// CategoryDoc is the published form of a Category.
type CategoryDoc struct {
	ID        string        `json:"id"`
	TitleZH   string        `json:"title_zh"`
	Subgroups []SubgroupDoc `json:"subgroups"`
}

// NewCategoryDoc projects a Category into its published form.
func NewCategoryDoc(c Category) CategoryDoc {
	subgroups := make([]SubgroupDoc, len(c.Subgroups))
	for i, sg := range c.Subgroups {
		subgroups[i] = SubgroupDoc{ID: sg, TitleZH: sg}
	}
	return CategoryDoc{ID: c.ID, TitleZH: c.Title, Subgroups: subgroups}
}

// DocumentMeta describes the run that produced a Document.
// It is the only part of a Document that differs between identical runs.
type DocumentMeta struct {
	RunID       uuid.UUID `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	Counts      RunCounts `json:"counts"`
}

// Document is the single output artifact of a generation run.
type Document struct {
	Meta       *DocumentMeta `json:"meta,omitempty"`
	Categories []CategoryDoc `json:"categories"`
	VocabItems []VocabItem   `json:"vocab_items"`
	Sentences  []Sentence    `json:"sentences"`
	Questions  []Question    `json:"questions"`
}

// RunCounts summarizes the sizes produced by a generation run.
type RunCounts struct {
	Source    int `json:"source"`
	Derived   int `json:"derived"`
	Vocab     int `json:"vocab"`
	Sentences int `json:"sentences"`
	Questions int `json:"questions"`
}

// GenerationRun identifies one execution of the pipeline.
type GenerationRun struct {
	ID          uuid.UUID
	StartedAt   time.Time
	TargetTotal int
	Counts      RunCounts
}

// NewGenerationRun starts a run record with a fresh identifier.
func NewGenerationRun(targetTotal int, now time.Time) GenerationRun {
	return GenerationRun{
		ID:          uuid.New(),
		StartedAt:   now,
		TargetTotal: targetTotal,
	}
}
