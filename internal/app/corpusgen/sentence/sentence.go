// Package sentence builds localized example sentences from the template banks.
package sentence

import (
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/ident"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/template"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Generator fills the general (A) and department (B) template banks.
type Generator struct {
	general    template.Bank
	department template.Bank
}

// NewGenerator creates a Generator over the built-in banks.
func NewGenerator() *Generator {
	return &Generator{
		general:    template.BankA(),
		department: template.BankB(),
	}
}

// Generate returns the two sentences of an entry: bank A first, then bank B.
// index is the entry's position within its category.
func (g *Generator) Generate(e domain.WordEntry, index int) []domain.Sentence {
	return []domain.Sentence{g.General(e, index), g.Department(e, index)}
}

// General builds the bank A sentence. It carries the entry's collocation.
func (g *Generator) General(e domain.WordEntry, index int) domain.Sentence {
	var collocations []string
	if e.Collocation != "" {
		collocations = []string{e.Collocation}
	}
	return build(g.general, ident.PrefixSentence, e, index, collocations)
}

// Department builds the bank B sentence. Its collocation list is empty.
func (g *Generator) Department(e domain.WordEntry, index int) domain.Sentence {
	return build(g.department, ident.PrefixSentence2, e, index, nil)
}

func build(bank template.Bank, prefix string, e domain.WordEntry, index int, collocations []string) domain.Sentence {
	tpl, _ := bank.Pick(e.POS, index)
	if collocations == nil {
		collocations = []string{}
	}
	return domain.Sentence{
		ID:           ident.New(prefix, e.Word, index),
		VocabID:      ident.Vocab(e.Word),
		Level:        domain.LevelFromDifficulty(e.Difficulty),
		SentenceEN:   tpl.FillEN(e.Word),
		SentenceZH:   tpl.FillZH(e.PrimaryMeaning()),
		Collocations: collocations,
	}
}
