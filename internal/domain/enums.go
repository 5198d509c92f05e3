package domain

// PartOfSpeech is the short grammatical tag carried by source-table rows.
type PartOfSpeech string

const (
	PartOfSpeechVerb      PartOfSpeech = "v"
	PartOfSpeechNoun      PartOfSpeech = "n"
	PartOfSpeechAdjective PartOfSpeech = "adj"
	PartOfSpeechAdverb    PartOfSpeech = "adv"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechVerb, PartOfSpeechNoun, PartOfSpeechAdjective, PartOfSpeechAdverb:
		return true
	}
	return false
}

// Level is the three-tier difficulty label attached to sentences and questions.
type Level string

const (
	LevelEasy   Level = "easy"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
)

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelEasy, LevelMedium, LevelHard:
		return true
	}
	return false
}

// LevelFromDifficulty maps a source difficulty (1..3) to a Level.
// Anything outside 1..3 maps to LevelEasy.
func LevelFromDifficulty(difficulty int) Level {
	switch difficulty {
	case 2:
		return LevelMedium
	case 3:
		return LevelHard
	default:
		return LevelEasy
	}
}

// QuestionType identifies the question format.
type QuestionType string

const (
	QuestionTypeCloze QuestionType = "cloze"
)

func (t QuestionType) String() string { return string(t) }

// MaxDifficulty is the hardest difficulty tier a WordEntry can carry.
const MaxDifficulty = 3
