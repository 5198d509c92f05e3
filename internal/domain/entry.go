package domain

import (
	"strconv"
	"strings"
)

// MeaningSeparator joins a meaning list into the display string used by questions.
const MeaningSeparator = "、"

// Category is a top-level grouping of the corpus. Immutable after load.
type Category struct {
	ID        string
	Title     string
	Subgroups []string
}

// SubgroupFor returns the subgroup assigned to the entry at position i.
// Entries rotate through subgroups; a category without subgroups uses "general".
func (c Category) SubgroupFor(i int) string {
	if len(c.Subgroups) == 0 {
		return "general"
	}
	return c.Subgroups[i%len(c.Subgroups)]
}

// WordEntry is one lexical entry of a category, either authored in a source
// table or synthesized by derivation.
type WordEntry struct {
	Word        string
	POS         PartOfSpeech
	Meanings    []string
	Collocation string
	Difficulty  int

	// Derived is true for entries produced by the derivation engine.
	Derived bool
}

// PrimaryMeaning returns the first meaning, or "" when the list is empty.
func (e WordEntry) PrimaryMeaning() string {
	if len(e.Meanings) == 0 {
		return ""
	}
	return e.Meanings[0]
}

// MeaningString returns all meanings joined with MeaningSeparator.
func (e WordEntry) MeaningString() string {
	return strings.Join(e.Meanings, MeaningSeparator)
}

// Validate checks the fields a source row must carry.
func (e WordEntry) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(e.Word) == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if e.POS == "" {
		errs = append(errs, FieldError{Field: "pos", Message: "required"})
	}
	if len(e.Meanings) == 0 {
		errs = append(errs, FieldError{Field: "meanings", Message: "at least one meaning required"})
	}
	for i, m := range e.Meanings {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, FieldError{Field: "meanings", Message: "meaning " + strconv.Itoa(i) + " is empty"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
