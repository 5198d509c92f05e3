package corpus

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

const (
	insertCategory = `INSERT INTO categories (run_id, position, id, title_zh, subgroups)
		VALUES ($1, $2, $3, $4, $5)`

	insertVocab = `INSERT INTO vocab_items
		(run_id, position, id, word, pos, meaning_zh, phonetic, category_id, subgroup_id, notes_zh, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	insertSentence = `INSERT INTO sentences
		(run_id, position, id, vocab_id, level, sentence_en, sentence_zh, collocations)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	insertQuestion = `INSERT INTO questions
		(run_id, position, id, vocab_id, type, prompt_en, full_sentence, prompt_zh,
		 choices, answer_index, explanation_zh, level, word, meaning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
)

func queueCategory(runID uuid.UUID) queueFunc[domain.CategoryDoc] {
	return func(batch *pgx.Batch, position int, c domain.CategoryDoc) {
		subgroups := make([]string, len(c.Subgroups))
		for i, sg := range c.Subgroups {
			subgroups[i] = sg.ID
		}
		batch.Queue(insertCategory, runID, position, c.ID, c.TitleZH, subgroups)
	}
}

func queueVocab(runID uuid.UUID) queueFunc[domain.VocabItem] {
	return func(batch *pgx.Batch, position int, v domain.VocabItem) {
		batch.Queue(insertVocab,
			runID, position, v.ID, v.Word, string(v.POS), nonNil(v.MeaningZH), v.Phonetic,
			v.CategoryID, v.SubgroupID, v.NotesZH, nonNil(v.Tags),
		)
	}
}

func queueSentence(runID uuid.UUID) queueFunc[domain.Sentence] {
	return func(batch *pgx.Batch, position int, s domain.Sentence) {
		batch.Queue(insertSentence,
			runID, position, s.ID, s.VocabID, string(s.Level),
			s.SentenceEN, s.SentenceZH, nonNil(s.Collocations),
		)
	}
}

func queueQuestion(runID uuid.UUID) queueFunc[domain.Question] {
	return func(batch *pgx.Batch, position int, q domain.Question) {
		batch.Queue(insertQuestion,
			runID, position, q.ID, q.VocabID, string(q.Type), q.PromptEN, q.FullSentence, q.PromptZH,
			nonNil(q.Choices), q.AnswerIndex, q.ExplanationZH, string(q.Level), q.Word, q.Meaning,
		)
	}
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
