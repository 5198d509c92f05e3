// Package cmu reads the CMU Pronouncing Dictionary and serves IPA
// transcriptions for headwords. The whole file is held in memory.
package cmu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Name identifies this provider in logs.
const Name = "cmu"

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// arpabetMap maps ARPAbet phonemes (without stress markers) to IPA symbols.
var arpabetMap = map[string]string{
	// Vowels.
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"IH": "ɪ",
	"IY": "i",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"UH": "ʊ",
	"UW": "u",

	// Consonants.
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}

// Transcription is one pronunciation variant of a headword.
type Transcription struct {
	IPA          string // e.g. "/ʌtʃivmʌnt/"
	VariantIndex int    // 0 for primary, 1 for (2), 2 for (3), etc.
}

// Stats holds reader statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// Dictionary is an in-memory CMU dictionary. Safe for concurrent reads.
type Dictionary struct {
	pronunciations map[string][]Transcription
	stats          Stats
}

// Load reads the dictionary file at path.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a dictionary from r. Lines that do not parse are skipped.
func Read(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{pronunciations: make(map[string][]Transcription)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		d.stats.TotalLines++
		line := scanner.Text()

		word, t, err := parseLine(line)
		if err != nil {
			if strings.HasPrefix(line, ";;;") {
				d.stats.CommentLines++
			}
			continue
		}

		d.stats.ParsedLines++
		d.pronunciations[word] = append(d.pronunciations[word], t)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	d.stats.UniqueWords = len(d.pronunciations)
	return d, nil
}

// Stats returns the statistics collected while reading.
func (d *Dictionary) Stats() Stats { return d.stats }

// Variants returns every transcription recorded for word, in file order.
func (d *Dictionary) Variants(word string) []Transcription {
	return d.pronunciations[domain.NormalizeText(word)]
}

// Lookup returns the primary transcription of word. Multi-word headwords are
// transcribed token by token and only succeed when every token is known.
// Returns domain.ErrNotFound when the word is missing.
func (d *Dictionary) Lookup(ctx context.Context, word string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tokens := strings.Fields(domain.NormalizeText(word))
	if len(tokens) == 0 {
		return "", fmt.Errorf("cmu lookup %q: %w", word, domain.ErrNotFound)
	}

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		t, ok := primary(d.pronunciations[tok])
		if !ok {
			return "", fmt.Errorf("cmu lookup %q: %w", word, domain.ErrNotFound)
		}
		parts = append(parts, strings.Trim(t.IPA, "/"))
	}
	return "/" + strings.Join(parts, " ") + "/", nil
}

// primary returns the variant with the lowest index.
func primary(variants []Transcription) (Transcription, bool) {
	if len(variants) == 0 {
		return Transcription{}, false
	}
	best := variants[0]
	for _, v := range variants[1:] {
		if v.VariantIndex < best.VariantIndex {
			best = v
		}
	}
	return best, true
}

// arpabetToIPA converts an ARPAbet phoneme (without stress) to its IPA equivalent.
func arpabetToIPA(phoneme string) (string, bool) {
	ipa, ok := arpabetMap[phoneme]
	return ipa, ok
}

// stripStress removes the trailing stress marker (0, 1, 2) from an ARPAbet phoneme.
func stripStress(phoneme string) string {
	if len(phoneme) == 0 {
		return phoneme
	}
	last := phoneme[len(phoneme)-1]
	if last == '0' || last == '1' || last == '2' {
		return phoneme[:len(phoneme)-1]
	}
	return phoneme
}

// phonemesToIPA converts ARPAbet phonemes to an IPA string wrapped in slashes.
// Unknown phonemes are dropped.
func phonemesToIPA(phonemes []string) string {
	var b strings.Builder
	b.WriteByte('/')
	for _, p := range phonemes {
		if ipa, ok := arpabetToIPA(stripStress(p)); ok {
			b.WriteString(ipa)
		}
	}
	b.WriteByte('/')
	return b.String()
}

// parseLine parses one dictionary line of the form "WORD  PH1 PH2 ...".
func parseLine(line string) (string, Transcription, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", Transcription{}, errSkipLine
	}

	parts := strings.SplitN(line, "  ", 2)
	if len(parts) != 2 {
		return "", Transcription{}, errSkipLine
	}

	rawWord := strings.TrimSpace(parts[0])
	phonemesStr := strings.TrimSpace(parts[1])
	if rawWord == "" || phonemesStr == "" {
		return "", Transcription{}, errSkipLine
	}

	word, variantIdx := parseWordAndVariant(rawWord)
	return word, Transcription{
		IPA:          phonemesToIPA(strings.Fields(phonemesStr)),
		VariantIndex: variantIdx,
	}, nil
}

// parseWordAndVariant splits "RECORD(2)" into "record" and variant index 1.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return domain.NormalizeText(raw), 0
	}

	end := strings.IndexByte(raw[idx:], ')')
	if end == -1 {
		return domain.NormalizeText(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : idx+end])
	if err != nil || n < 1 {
		return domain.NormalizeText(raw), 0
	}

	return domain.NormalizeText(raw[:idx]), n - 1
}
