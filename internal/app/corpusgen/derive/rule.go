package derive

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Transform rewrites a headword into a candidate form. ok=false means the
// transform does not apply to this word; err is reserved for input the
// transform cannot handle at all.
type Transform func(word string) (candidate string, ok bool, err error)

// Step is one transform of a rule together with the meaning hint used when
// no part-of-speech heuristic matches.
type Step struct {
	Name      string
	Transform Transform
	Hint      string
}

// Rule turns words of part of speech From into words of part of speech To.
// Steps are tried in order.
type Rule struct {
	From  domain.PartOfSpeech
	To    domain.PartOfSpeech
	Steps []Step
}

// DefaultExclusions lists known-bad forms that are never accepted.
var DefaultExclusions = []string{"confidentness"}

var errEmptyWord = errors.New("empty word")

// DefaultRules returns the adjective → adverb rule set (-ly, -y → -ily, -le → -ly).
func DefaultRules() []Rule {
	return []Rule{
		{
			From: domain.PartOfSpeechAdjective,
			To:   domain.PartOfSpeechAdverb,
			Steps: []Step{
				{Name: "ly", Transform: appendLy, Hint: "...地"},
				{Name: "y-ily", Transform: yToIly, Hint: "...地"},
				{Name: "le-ly", Transform: leToLy, Hint: "...地"},
			},
		},
	}
}

// ExtendedRules returns DefaultRules followed by the noun-forming rules
// (adjective -ness, verb -ment and -er). These produce more wrong forms than
// the adverb rules and are opt-in.
func ExtendedRules() []Rule {
	return append(DefaultRules(),
		Rule{
			From: domain.PartOfSpeechAdjective,
			To:   domain.PartOfSpeechNoun,
			Steps: []Step{
				{Name: "ness", Transform: appendNess, Hint: "...性"},
			},
		},
		Rule{
			From: domain.PartOfSpeechVerb,
			To:   domain.PartOfSpeechNoun,
			Steps: []Step{
				{Name: "ment", Transform: appendMent, Hint: "..."},
				{Name: "er", Transform: appendEr, Hint: "...者"},
			},
		},
	)
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func appendLy(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if strings.HasSuffix(w, "ly") || strings.HasSuffix(w, "y") || strings.HasSuffix(w, "le") || runeLen(w) <= 4 {
		return "", false, nil
	}
	return w + "ly", true, nil
}

func yToIly(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if !strings.HasSuffix(w, "y") || strings.HasSuffix(w, "ly") || strings.HasSuffix(w, "ey") || runeLen(w) <= 4 {
		return "", false, nil
	}
	return strings.TrimSuffix(w, "y") + "ily", true, nil
}

func leToLy(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if !strings.HasSuffix(w, "le") || runeLen(w) <= 5 {
		return "", false, nil
	}
	return strings.TrimSuffix(w, "le") + "ly", true, nil
}

func appendNess(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if strings.HasSuffix(w, "ness") || runeLen(w) <= 3 {
		return "", false, nil
	}
	if strings.HasSuffix(w, "y") && !strings.HasSuffix(w, "ey") {
		return strings.TrimSuffix(w, "y") + "iness", true, nil
	}
	return w + "ness", true, nil
}

func appendMent(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if strings.HasSuffix(w, "ment") || strings.HasSuffix(w, "e") || runeLen(w) <= 3 {
		return "", false, nil
	}
	return w + "ment", true, nil
}

func appendEr(w string) (string, bool, error) {
	if w == "" {
		return "", false, errEmptyWord
	}
	if strings.HasSuffix(w, "er") || runeLen(w) <= 3 {
		return "", false, nil
	}
	if strings.HasSuffix(w, "e") {
		return w + "r", true, nil
	}
	return w + "er", true, nil
}

// deriveMeaning builds the meaning of a derived word from its base meaning.
func deriveMeaning(from, to domain.PartOfSpeech, derived, base, hint string) string {
	const adjMarker = "的"

	switch {
	case from == domain.PartOfSpeechAdjective && to == domain.PartOfSpeechNoun && strings.HasSuffix(derived, "ness"):
		if strings.HasSuffix(base, adjMarker) {
			return strings.TrimSuffix(base, adjMarker)
		}
		return base + "性"
	case from == domain.PartOfSpeechAdjective && to == domain.PartOfSpeechAdverb:
		return strings.TrimSuffix(base, adjMarker) + "地"
	case from == domain.PartOfSpeechVerb && to == domain.PartOfSpeechNoun:
		if strings.HasSuffix(derived, "er") || strings.HasSuffix(derived, "r") {
			return base + "者"
		}
		if strings.HasSuffix(derived, "ment") {
			return base
		}
	case from == domain.PartOfSpeechVerb && to == domain.PartOfSpeechAdjective:
		if strings.HasSuffix(base, adjMarker) {
			return base
		}
		return base + adjMarker
	}
	return hint
}
