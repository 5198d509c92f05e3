package source

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

func testdataPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	src, err := Load(testdataPath("manifest.yaml"))
	require.NoError(t, err)

	require.Len(t, src.Categories, 2)
	assert.Equal(t, domain.Category{
		ID:        "cat01",
		Title:     "商務管理",
		Subgroups: []string{"management", "leadership", "strategy"},
	}, src.Categories[0])
	assert.Equal(t, "cat02", src.Categories[1].ID)

	require.Len(t, src.Tables, 2)
	assert.Equal(t, "core.csv", src.Tables[0].Name)
	assert.Equal(t, "extra.csv", src.Tables[1].Name)

	core := src.Tables[0].Rows
	require.Len(t, core["cat01"], 3)
	assert.Equal(t, domain.WordEntry{
		Word:        "accomplish",
		POS:         domain.PartOfSpeechVerb,
		Meanings:    []string{"完成", "達成"},
		Collocation: "accomplish a goal",
		Difficulty:  1,
	}, core["cat01"][0])
	assert.Equal(t, "efficient", core["cat01"][2].Word)
	require.Len(t, core["cat02"], 1)

	extra := src.Tables[1].Rows
	require.Len(t, extra["cat02"], 2)
	assert.Equal(t, "steady growth, quarter over quarter", extra["cat02"][1].Collocation)
}

func TestLoad_MissingTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	writeFile(t, manifest, "categories:\n  - id: cat01\ntables:\n  - missing.csv\n")

	_, err := Load(manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open table")
}

func TestParseManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "valid",
			input: "categories:\n  - id: cat01\n    title: A\ntables: [a.csv]\n",
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: "empty document",
		},
		{
			name:    "no tables",
			input:   "categories:\n  - id: cat01\n",
			wantErr: "tables: at least one table required",
		},
		{
			name:    "missing id",
			input:   "categories:\n  - title: A\ntables: [a.csv]\n",
			wantErr: "categories[0].id: required",
		},
		{
			name:    "duplicate id",
			input:   "categories:\n  - id: cat01\n  - id: cat01\ntables: [a.csv]\n",
			wantErr: `duplicate category "cat01"`,
		},
		{
			name:    "unknown field",
			input:   "categories:\n  - id: cat01\n    colour: red\ntables: [a.csv]\n",
			wantErr: "colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseManifest(strings.NewReader(tt.input))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTable_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantLocation string
		wantErr      string
	}{
		{
			name:         "bad difficulty",
			input:        "category,word,pos,meanings,collocation,difficulty\ncat01,adopt,v,採用,x,1\ncat01,acquire,v,獲得,y,hard\n",
			wantLocation: "t.csv:3",
			wantErr:      "difficulty: not an integer",
		},
		{
			name:         "empty meanings",
			input:        "category,word,pos,meanings,collocation,difficulty\ncat01,adopt,v,,x,1\n",
			wantLocation: "t.csv:2",
			wantErr:      "meanings: at least one meaning required",
		},
		{
			name:         "empty meaning in list",
			input:        "category,word,pos,meanings,collocation,difficulty\ncat01,adopt,v,採用| ,x,1\n",
			wantLocation: "t.csv:2",
			wantErr:      "meanings: meaning 1 is empty",
		},
		{
			name:         "short row",
			input:        "category,word,pos,meanings,collocation,difficulty\ncat01,adopt,v\n",
			wantLocation: "t.csv:2",
			wantErr:      "expected 6 columns, got 3",
		},
		{
			name:         "missing category",
			input:        "category,word,pos,meanings,collocation,difficulty\n,adopt,v,採用,x,1\n",
			wantLocation: "t.csv:2",
			wantErr:      "category: required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTable("t.csv", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantLocation, ve.Location)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTable_FromFiles(t *testing.T) {
	t.Parallel()

	_, err := loadTable(testdataPath("bad_difficulty.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_difficulty.csv:3")

	_, err = loadTable(testdataPath("bad_meanings.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseTable_AcceptsUnknownPOSAndDifficulty(t *testing.T) {
	t.Parallel()

	input := "category,word,pos,meanings,collocation,difficulty\ncat01,despite,prep,儘管,despite the delay,7\n"
	table, err := ParseTable("t.csv", strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows["cat01"], 1)
	assert.Equal(t, domain.PartOfSpeech("prep"), table.Rows["cat01"][0].POS)
	assert.Equal(t, 7, table.Rows["cat01"][0].Difficulty)
}

func TestParseTable_HeaderOnly(t *testing.T) {
	t.Parallel()

	table, err := ParseTable("empty.csv", strings.NewReader("category,word,pos,meanings,collocation,difficulty\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Equal(t, "empty.csv", table.Name)
}

func TestParseTable_NormalizesText(t *testing.T) {
	t.Parallel()

	// A combining acute accent normalizes to the precomposed form.
	input := "category,word,pos,meanings,collocation,difficulty\n cat01 , cafe\u0301 , N , 咖啡館 | 餐廳 , , 2 \n"
	table, err := ParseTable("t.csv", strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows["cat01"], 1)
	e := table.Rows["cat01"][0]
	assert.Equal(t, "caf\u00e9", e.Word)
	assert.Equal(t, domain.PartOfSpeechNoun, e.POS)
	assert.Equal(t, []string{"咖啡館", "餐廳"}, e.Meanings)
	assert.Empty(t, e.Collocation)
	assert.Equal(t, 2, e.Difficulty)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
