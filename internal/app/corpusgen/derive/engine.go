// Package derive grows a corpus toward a target size by applying
// part-of-speech-conditioned shape transforms to existing headwords.
package derive

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/assemble"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

const (
	// MinLength and MaxLength bound the rune length of an accepted candidate.
	MinLength = 5
	MaxLength = 20

	// categoryGrowthFactor caps derivations per category at this multiple of
	// the category's size before derivation.
	categoryGrowthFactor = 2
)

// Rejection reasons counted in Result.Rejected.
const (
	RejectLength    = "length"
	RejectCollision = "collision"
	RejectExcluded  = "excluded"
	RejectFailed    = "failed"
)

// Result holds derivation statistics.
type Result struct {
	Budget      int
	Derived     int
	PerCategory map[string]int
	Rejected    map[string]int
	Duplicates  int
}

// Engine applies derivation rules. It holds no per-run state; registries are
// passed to and returned from Derive.
type Engine struct {
	log     *slog.Logger
	rules   []Rule
	exclude map[string]struct{}
}

// NewEngine creates an Engine. Rules are applied in the given order.
func NewEngine(log *slog.Logger, rules []Rule, exclusions []string) *Engine {
	exclude := make(map[string]struct{}, len(exclusions))
	for _, w := range exclusions {
		exclude[w] = struct{}{}
	}
	return &Engine{
		log:     log,
		rules:   slices.Clone(rules),
		exclude: exclude,
	}
}

// Derive synthesizes new entries until the registry holds target headwords or
// no rule yields an acceptable candidate. Categories are processed in
// lexicographic order. The input corpus and registry are not modified; the
// grown corpus and registry are returned.
func (e *Engine) Derive(c assemble.Corpus, target int, global *Registry) (assemble.Corpus, *Registry, Result) {
	out := c.Clone()
	global = global.Clone()

	res := Result{
		Budget:      max(0, target-global.Len()),
		PerCategory: make(map[string]int),
		Rejected:    make(map[string]int),
	}
	if res.Budget == 0 {
		return out, global, res
	}

	for _, catID := range out.CategoryIDs() {
		if res.Derived >= res.Budget {
			break
		}
		entries := out[catID]
		catMax := min(categoryGrowthFactor*len(entries), res.Budget-res.Derived)
		added := e.deriveCategory(entries, catMax, global, &res)

		out[catID] = append(entries, added...)
		res.PerCategory[catID] = len(added)
	}

	out, res.Duplicates = assemble.Dedupe(out)
	if res.Duplicates > 0 {
		e.log.Warn("derivation produced duplicate headwords", slog.Int("dropped", res.Duplicates))
	}

	return out, global, res
}

// deriveCategory derives at most catMax entries from one category.
func (e *Engine) deriveCategory(entries []domain.WordEntry, catMax int, global *Registry, res *Result) []domain.WordEntry {
	local := make(map[string]struct{}, len(entries))
	for _, en := range entries {
		local[en.Word] = struct{}{}
	}

	var added []domain.WordEntry
	for _, base := range entries {
		if len(added) >= catMax {
			break
		}
		for _, rule := range e.rules {
			if len(added) >= catMax {
				break
			}
			if rule.From != base.POS {
				continue
			}
			for _, step := range rule.Steps {
				if len(added) >= catMax {
					break
				}
				candidate, ok := e.apply(step, base.Word, res)
				if !ok {
					continue
				}
				if reason := e.check(candidate, local, global); reason != "" {
					res.Rejected[reason]++
					continue
				}

				added = append(added, newDerivedEntry(base, rule, step, candidate))
				local[candidate] = struct{}{}
				global.Add(candidate)
				res.Derived++
			}
		}
	}
	return added
}

// apply runs a transform; errors and panics count as "not applicable".
func (e *Engine) apply(step Step, word string, res *Result) (candidate string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug("derivation transform panicked",
				slog.String("step", step.Name),
				slog.String("word", word),
				slog.String("panic", fmt.Sprint(r)),
			)
			res.Rejected[RejectFailed]++
			candidate, ok = "", false
		}
	}()

	candidate, ok, err := step.Transform(word)
	if err != nil {
		e.log.Debug("derivation transform failed",
			slog.String("step", step.Name),
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		res.Rejected[RejectFailed]++
		return "", false
	}
	return candidate, ok
}

// check returns the rejection reason for a candidate, or "" if it is accepted.
func (e *Engine) check(candidate string, local map[string]struct{}, global *Registry) string {
	if n := runeLen(candidate); n < MinLength || n > MaxLength {
		return RejectLength
	}
	if _, ok := local[candidate]; ok || global.Has(candidate) {
		return RejectCollision
	}
	if _, ok := e.exclude[candidate]; ok {
		return RejectExcluded
	}
	return ""
}

func newDerivedEntry(base domain.WordEntry, rule Rule, step Step, candidate string) domain.WordEntry {
	collocation := candidate
	if rule.To == domain.PartOfSpeechAdverb {
		collocation = candidate + " effectively"
	}
	return domain.WordEntry{
		Word:        candidate,
		POS:         rule.To,
		Meanings:    []string{deriveMeaning(rule.From, rule.To, candidate, base.PrimaryMeaning(), step.Hint)},
		Collocation: collocation,
		Difficulty:  min(base.Difficulty+1, domain.MaxDifficulty),
		Derived:     true,
	}
}
