// Package question builds cloze multiple-choice questions with distractors
// drawn from same-category peers.
package question

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/ident"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/template"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// MaxDistractors is the number of wrong choices offered when enough peers exist.
const MaxDistractors = 3

// RandomSource supplies randomness for distractor sampling and choice
// shuffling. *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

var grammarHints = map[domain.PartOfSpeech]string{
	domain.PartOfSpeechVerb:      "此處需要填入動詞，以完成句子的動作描述。",
	domain.PartOfSpeechNoun:      "此處需要名詞，通常作為句子的主詞或受詞。",
	domain.PartOfSpeechAdjective: "此處需要形容詞，用來修飾後面的名詞或作為補語。",
	domain.PartOfSpeechAdverb:    "此處需要副詞，用來修飾動詞、形容詞或整句。",
}

const fallbackHint = "請選擇最適合上下文的單字。"

// Generator builds cloze questions from the general template bank.
type Generator struct {
	rnd  RandomSource
	bank template.Bank
}

// NewGenerator creates a Generator drawing randomness from rnd.
func NewGenerator(rnd RandomSource) *Generator {
	return &Generator{rnd: rnd, bank: template.BankA()}
}

// Generate builds question number index for e. peers is the full entry list
// of e's category (e itself may be included).
func (g *Generator) Generate(e domain.WordEntry, peers []domain.WordEntry, index int) domain.Question {
	distractors := g.sampleDistractors(e, peers)

	choices := make([]string, 0, len(distractors)+1)
	choices = append(choices, e.Word)
	for _, d := range distractors {
		choices = append(choices, d.Word)
	}
	g.rnd.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	answer := slices.Index(choices, e.Word)

	tpl, _ := g.bank.Pick(e.POS, index)
	full := tpl.FillEN(e.Word)
	zh := tpl.FillZH(e.PrimaryMeaning())

	return domain.Question{
		ID:            ident.New(ident.PrefixQuestion, e.Word, index),
		VocabID:       ident.Vocab(e.Word),
		Type:          domain.QuestionTypeCloze,
		PromptEN:      tpl.FillEN(template.Blank),
		FullSentence:  full,
		PromptZH:      zh,
		Choices:       choices,
		AnswerIndex:   answer,
		ExplanationZH: explain(e, full, zh, choices, distractors),
		Level:         domain.LevelFromDifficulty(e.Difficulty),
		Word:          e.Word,
		Meaning:       e.MeaningString(),
	}
}

// sampleDistractors draws up to MaxDistractors peers without replacement.
// Peers sharing e's part of speech are preferred; with fewer than
// MaxDistractors of them the whole category is used.
func (g *Generator) sampleDistractors(e domain.WordEntry, peers []domain.WordEntry) []domain.WordEntry {
	var samePOS, others []domain.WordEntry
	for _, p := range peers {
		if p.Word == e.Word {
			continue
		}
		others = append(others, p)
		if p.POS == e.POS {
			samePOS = append(samePOS, p)
		}
	}

	pool := samePOS
	if len(pool) < MaxDistractors {
		pool = others
	}
	if len(pool) == 0 {
		return nil
	}

	k := min(MaxDistractors, len(pool))
	perm := g.rnd.Perm(len(pool))
	out := make([]domain.WordEntry, k)
	for i := range k {
		out[i] = pool[perm[i]]
	}
	return out
}

func explain(e domain.WordEntry, full, zh string, choices []string, distractors []domain.WordEntry) string {
	hint, ok := grammarHints[e.POS]
	if !ok {
		hint = fallbackHint
	}

	byWord := make(map[string]domain.WordEntry, len(distractors)+1)
	byWord[e.Word] = e
	for _, d := range distractors {
		byWord[d.Word] = d
	}

	var b strings.Builder
	fmt.Fprintf(&b, "正確答案：%s\n", e.Word)
	fmt.Fprintf(&b, "意思：%s\n\n", e.MeaningString())
	b.WriteString("【題目解析】\n")
	fmt.Fprintf(&b, "完整句子：%s\n", full)
	fmt.Fprintf(&b, "中文翻譯：%s\n", zh)
	fmt.Fprintf(&b, "💡 語法提示：%s\n\n", hint)
	b.WriteString("【選項分析】")
	for _, c := range choices {
		entry := byWord[c]
		marker := "❌"
		if c == e.Word {
			marker = "✅"
		}
		fmt.Fprintf(&b, "\n%s %s (%s): %s", marker, c, entry.POS, entry.MeaningString())
	}
	return b.String()
}
