// Package source reads the category manifest (YAML) and the word tables (CSV)
// the generator consumes. Pure function: file paths in, domain structs out.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/assemble"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// MeaningSeparator separates meanings inside the meanings column.
const MeaningSeparator = "|"

// tableColumns is the expected column count of a word table row:
// category, word, pos, meanings, collocation, difficulty.
const tableColumns = 6

// Manifest lists the categories and the word tables in merge order.
// Table paths are relative to the manifest file.
type Manifest struct {
	Categories []ManifestCategory `yaml:"categories"`
	Tables     []string           `yaml:"tables"`
}

// ManifestCategory declares one category.
type ManifestCategory struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Subgroups []string `yaml:"subgroups"`
}

// Sources is everything loaded from a manifest.
type Sources struct {
	Categories []domain.Category
	Tables     []assemble.Table
}

// Load reads the manifest at path and every table it lists.
func Load(path string) (Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sources{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return Sources{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	src := Sources{Categories: m.categories()}
	dir := filepath.Dir(path)
	for _, name := range m.Tables {
		tablePath := name
		if !filepath.IsAbs(tablePath) {
			tablePath = filepath.Join(dir, name)
		}
		table, err := loadTable(tablePath)
		if err != nil {
			return Sources{}, err
		}
		src.Tables = append(src.Tables, table)
	}
	return src, nil
}

// ParseManifest decodes and validates a manifest.
func ParseManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return Manifest{}, domain.NewValidationError("manifest", "empty document")
		}
		return Manifest{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := m.validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func (m Manifest) validate() error {
	var errs []domain.FieldError
	if len(m.Categories) == 0 {
		errs = append(errs, domain.FieldError{Field: "categories", Message: "at least one category required"})
	}
	if len(m.Tables) == 0 {
		errs = append(errs, domain.FieldError{Field: "tables", Message: "at least one table required"})
	}
	seen := make(map[string]bool, len(m.Categories))
	for i, c := range m.Categories {
		field := "categories[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, domain.FieldError{Field: field + ".id", Message: "required"})
			continue
		}
		if seen[c.ID] {
			errs = append(errs, domain.FieldError{Field: field + ".id", Message: fmt.Sprintf("duplicate category %q", c.ID)})
		}
		seen[c.ID] = true
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (m Manifest) categories() []domain.Category {
	out := make([]domain.Category, len(m.Categories))
	for i, c := range m.Categories {
		subgroups := make([]string, 0, len(c.Subgroups))
		for _, sg := range c.Subgroups {
			if sg = domain.CleanText(sg); sg != "" {
				subgroups = append(subgroups, sg)
			}
		}
		out[i] = domain.Category{
			ID:        domain.CleanText(c.ID),
			Title:     domain.CleanText(c.Title),
			Subgroups: subgroups,
		}
	}
	return out
}

func loadTable(path string) (assemble.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return assemble.Table{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	table, err := ParseTable(filepath.Base(path), f)
	if err != nil {
		return assemble.Table{}, fmt.Errorf("parse table %s: %w", path, err)
	}
	return table, nil
}

// ParseTable reads a word table CSV. The first row is a header. Lines starting
// with '#' are comments. Any malformed row fails the whole table.
func ParseTable(name string, r io.Reader) (assemble.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	table := assemble.Table{Name: name, Rows: make(map[string][]domain.WordEntry)}

	// Skip header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return table, nil
		}
		return assemble.Table{}, fmt.Errorf("read header: %w", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return assemble.Table{}, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		location := name + ":" + strconv.Itoa(line)

		catID, entry, err := parseRow(record)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				return assemble.Table{}, ve.At(location)
			}
			return assemble.Table{}, fmt.Errorf("%s: %w", location, err)
		}
		table.Rows[catID] = append(table.Rows[catID], entry)
	}

	return table, nil
}

func parseRow(record []string) (string, domain.WordEntry, error) {
	if len(record) != tableColumns {
		return "", domain.WordEntry{}, domain.NewValidationError("row",
			fmt.Sprintf("expected %d columns, got %d", tableColumns, len(record)))
	}

	catID := domain.CleanText(record[0])
	if catID == "" {
		return "", domain.WordEntry{}, domain.NewValidationError("category", "required")
	}

	difficulty, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return "", domain.WordEntry{}, domain.NewValidationError("difficulty", fmt.Sprintf("not an integer: %q", record[5]))
	}

	entry := domain.WordEntry{
		Word:        domain.CleanText(record[1]),
		POS:         domain.PartOfSpeech(strings.ToLower(domain.CleanText(record[2]))),
		Meanings:    splitMeanings(record[3]),
		Collocation: domain.CleanText(record[4]),
		Difficulty:  difficulty,
	}
	if err := entry.Validate(); err != nil {
		return "", domain.WordEntry{}, err
	}
	return catID, entry, nil
}

func splitMeanings(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, MeaningSeparator)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = domain.CleanText(p)
	}
	return out
}
