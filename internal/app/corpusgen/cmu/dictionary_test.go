package cmu

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestStripStress(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AH0", "AH"},
		{"AW1", "AW"},
		{"IY2", "IY"},
		{"HH", "HH"},
		{"S", "S"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, stripStress(tt.input))
		})
	}
}

func TestPhonemesToIPA(t *testing.T) {
	tests := []struct {
		name     string
		phonemes []string
		want     string
	}{
		{"ACHIEVEMENT", []string{"AH0", "CH", "IY1", "V", "M", "AH0", "N", "T"}, "/ʌtʃivmʌnt/"},
		{"BUDGET", []string{"B", "AH1", "JH", "AH0", "T"}, "/bʌdʒʌt/"},
		{"THOROUGH", []string{"TH", "ER1", "OW0"}, "/θɝoʊ/"},
		{"unknown phoneme dropped", []string{"K", "XX", "AE1", "T"}, "/kæt/"},
		{"empty", nil, "//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, phonemesToIPA(tt.phonemes))
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantWord    string
		wantIPA     string
		wantVariant int
		wantSkip    bool
	}{
		{
			name:     "simple word",
			line:     "AUDIT  AO1 D AH0 T",
			wantWord: "audit",
			wantIPA:  "/ɔdʌt/",
		},
		{
			name:        "variant 2",
			line:        "RECORD(2)  R IH0 K AO1 R D",
			wantWord:    "record",
			wantIPA:     "/ɹɪkɔɹd/",
			wantVariant: 1,
		},
		{name: "comment line", line: ";;; comment", wantSkip: true},
		{name: "empty line", line: "", wantSkip: true},
		{name: "single space separator", line: "AUDIT AO1 D AH0 T", wantSkip: true},
		{name: "missing phonemes", line: "AUDIT  ", wantSkip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, tr, err := parseLine(tt.line)
			if tt.wantSkip {
				assert.ErrorIs(t, err, errSkipLine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantIPA, tr.IPA)
			assert.Equal(t, tt.wantVariant, tr.VariantIndex)
		})
	}
}

func TestParseWordAndVariant(t *testing.T) {
	tests := []struct {
		raw         string
		wantWord    string
		wantVariant int
	}{
		{"INVOICE", "invoice", 0},
		{"PRESENT(2)", "present", 1},
		{"PRESENT(3)", "present", 2},
		{"WORD(10)", "word", 9},
		{"BROKEN(", "broken(", 0},
		{"ODD(x)", "odd(x)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			word, variant := parseWordAndVariant(tt.raw)
			assert.Equal(t, tt.wantWord, word)
			assert.Equal(t, tt.wantVariant, variant)
		})
	}
}

func TestLoad(t *testing.T) {
	d, err := Load(testdataPath(t, "sample.dict"))
	require.NoError(t, err)

	assert.Equal(t, Stats{
		TotalLines:   12,
		CommentLines: 2,
		ParsedLines:  10,
		UniqueWords:  7,
	}, d.Stats())

	present := d.Variants("present")
	require.Len(t, present, 3)
	assert.Equal(t, 0, present[0].VariantIndex)
	assert.Equal(t, 2, present[2].VariantIndex)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/file.dict")
	assert.Error(t, err)
}

func TestDictionary_Lookup(t *testing.T) {
	d, err := Load(testdataPath(t, "sample.dict"))
	require.NoError(t, err)

	tests := []struct {
		name string
		word string
		want string
	}{
		{"single word", "achievement", "/ʌtʃivmʌnt/"},
		{"case insensitive", "Accomplish", "/ʌkɑmplɪʃ/"},
		{"primary variant listed second", "record", "/ɹɛkɝd/"},
		{"primary of three", "present", "/pɹɛzʌnt/"},
		{"phrase", "annual  audit", "/ænjuʌl ɔdʌt/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Lookup(context.Background(), tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDictionary_Lookup_NotFound(t *testing.T) {
	d, err := Read(strings.NewReader("AUDIT  AO1 D AH0 T\n"))
	require.NoError(t, err)

	for _, word := range []string{"invoice", "audit report", "   "} {
		_, err := d.Lookup(context.Background(), word)
		assert.ErrorIs(t, err, domain.ErrNotFound, word)
	}
}

func TestDictionary_Lookup_CanceledContext(t *testing.T) {
	d, err := Read(strings.NewReader("AUDIT  AO1 D AH0 T\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Lookup(ctx, "audit")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_Empty(t *testing.T) {
	d, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Stats{}, d.Stats())
}
