// Package assemble merges source tables into one per-category corpus and
// removes duplicate headwords. Pure functions: tables in, corpus out.
package assemble

import (
	"slices"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Table is one source table: category ID → rows in authored order.
type Table struct {
	Name string
	Rows map[string][]domain.WordEntry
}

// Corpus holds the entry sequence of every category.
type Corpus map[string][]domain.WordEntry

// CategoryIDs returns the category IDs in lexicographic order.
func (c Corpus) CategoryIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the total number of entries across categories.
func (c Corpus) Len() int {
	n := 0
	for _, entries := range c {
		n += len(entries)
	}
	return n
}

// Clone returns a copy whose category slices can be appended to independently.
func (c Corpus) Clone() Corpus {
	out := make(Corpus, len(c))
	for id, entries := range c {
		out[id] = slices.Clone(entries)
	}
	return out
}

// Headwords returns the set of every headword in the corpus.
func (c Corpus) Headwords() map[string]struct{} {
	set := make(map[string]struct{}, c.Len())
	for _, entries := range c {
		for _, e := range entries {
			set[e.Word] = struct{}{}
		}
	}
	return set
}

// Stats holds assembler statistics for logging.
type Stats struct {
	Tables     int
	Merged     int
	Duplicates int
	Kept       int
}

// Assemble merges tables in the given order and drops duplicate headwords
// per category (first occurrence wins).
func Assemble(tables []Table) (Corpus, Stats) {
	merged := Merge(tables)
	deduped, dropped := Dedupe(merged)

	stats := Stats{
		Tables:     len(tables),
		Merged:     merged.Len(),
		Duplicates: dropped,
		Kept:       deduped.Len(),
	}
	return deduped, stats
}

// Merge concatenates tables per category. Rows of earlier tables precede rows
// of later ones; order within a table is preserved.
func Merge(tables []Table) Corpus {
	out := make(Corpus)
	for _, t := range tables {
		for catID, rows := range t.Rows {
			out[catID] = append(out[catID], rows...)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of each headword within each category.
// Headwords match case-sensitively. Returns the number of rows dropped.
func Dedupe(c Corpus) (Corpus, int) {
	out := make(Corpus, len(c))
	dropped := 0
	for catID, entries := range c {
		seen := make(map[string]struct{}, len(entries))
		kept := make([]domain.WordEntry, 0, len(entries))
		for _, e := range entries {
			if _, ok := seen[e.Word]; ok {
				dropped++
				continue
			}
			seen[e.Word] = struct{}{}
			kept = append(kept, e)
		}
		out[catID] = kept
	}
	return out, dropped
}
