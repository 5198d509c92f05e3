// Package corpus stores generated corpus documents in PostgreSQL.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/toeic-corpus/internal/adapter/postgres"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Name identifies the PostgreSQL publisher in logs.
const Name = "postgres"

const defaultBatchSize = 500

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var errNoMeta = errors.New("document has no run metadata")

// Repo persists corpus documents. Only the most recently published run is kept.
type Repo struct {
	pool      *pgxpool.Pool
	txm       *postgres.TxManager
	batchSize int
	log       *slog.Logger
}

// New creates a corpus repository. batchSize bounds the number of statements
// sent per pgx.Batch; values below 1 use the default.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, batchSize int, logger *slog.Logger) *Repo {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	return &Repo{
		pool:      pool,
		txm:       txm,
		batchSize: batchSize,
		log:       logger.With("adapter", Name),
	}
}

// Name implements corpusgen.Publisher.
func (r *Repo) Name() string { return Name }

// Publish implements corpusgen.Publisher.
func (r *Repo) Publish(ctx context.Context, doc *domain.Document) error {
	start := time.Now()
	counts, err := r.ReplaceCorpus(ctx, doc)
	if err != nil {
		return err
	}

	r.log.InfoContext(ctx, "corpus stored",
		slog.Int("vocab", counts.Vocab),
		slog.Int("sentences", counts.Sentences),
		slog.Int("questions", counts.Questions),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// ReplaceCorpus stores doc as a new generation run and removes every other
// run in the same transaction. It returns the number of rows inserted per
// content table.
func (r *Repo) ReplaceCorpus(ctx context.Context, doc *domain.Document) (domain.RunCounts, error) {
	if doc.Meta == nil {
		return domain.RunCounts{}, errNoMeta
	}
	runID := doc.Meta.RunID
	key := runID.String()

	var counts domain.RunCounts
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		counts = domain.RunCounts{}

		if err := r.insertRun(ctx, doc.Meta); err != nil {
			return postgres.MapError(err, "generation_run", key)
		}

		pruned, err := r.pruneRuns(ctx, runID)
		if err != nil {
			return postgres.MapError(err, "generation_run", key)
		}
		if pruned > 0 {
			r.log.DebugContext(ctx, "previous runs removed", slog.Int("count", pruned))
		}

		if _, err := insertChunked(ctx, r, doc.Categories, queueCategory(runID)); err != nil {
			return postgres.MapError(err, "category", key)
		}
		if counts.Vocab, err = insertChunked(ctx, r, doc.VocabItems, queueVocab(runID)); err != nil {
			return postgres.MapError(err, "vocab_item", key)
		}
		if counts.Sentences, err = insertChunked(ctx, r, doc.Sentences, queueSentence(runID)); err != nil {
			return postgres.MapError(err, "sentence", key)
		}
		if counts.Questions, err = insertChunked(ctx, r, doc.Questions, queueQuestion(runID)); err != nil {
			return postgres.MapError(err, "question", key)
		}
		return nil
	})
	if err != nil {
		return domain.RunCounts{}, err
	}
	return counts, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LatestRunID returns the most recently published run.
func (r *Repo) LatestRunID(ctx context.Context) (uuid.UUID, error) {
	query, args, err := psql.Select("id").
		From("generation_runs").
		OrderBy("published_at DESC", "generated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build query: %w", err)
	}

	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "generation_run", "latest")
	}
	return id, nil
}

// Run returns the stored metadata of a run.
func (r *Repo) Run(ctx context.Context, runID uuid.UUID) (*domain.DocumentMeta, error) {
	query, args, err := psql.Select(
		"id", "generated_at", "version",
		"source_count", "derived_count", "vocab_count", "sentence_count", "question_count",
	).
		From("generation_runs").
		Where(squirrel.Eq{"id": runID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m domain.DocumentMeta
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&m.RunID, &m.GeneratedAt, &m.Version,
		&m.Counts.Source, &m.Counts.Derived, &m.Counts.Vocab, &m.Counts.Sentences, &m.Counts.Questions,
	)
	if err != nil {
		return nil, postgres.MapError(err, "generation_run", runID.String())
	}
	return &m, nil
}

// ContentCounts counts the rows actually stored for a run. Source and Derived
// are not recorded per row and stay zero.
func (r *Repo) ContentCounts(ctx context.Context, runID uuid.UUID) (domain.RunCounts, error) {
	var counts domain.RunCounts
	targets := []struct {
		table string
		dst   *int
	}{
		{"vocab_items", &counts.Vocab},
		{"sentences", &counts.Sentences},
		{"questions", &counts.Questions},
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	for _, t := range targets {
		query, args, err := psql.Select("count(*)").
			From(t.table).
			Where(squirrel.Eq{"run_id": runID}).
			ToSql()
		if err != nil {
			return counts, fmt.Errorf("build query: %w", err)
		}
		if err := q.QueryRow(ctx, query, args...).Scan(t.dst); err != nil {
			return counts, postgres.MapError(err, t.table, runID.String())
		}
	}
	return counts, nil
}

// VocabItems returns the stored vocabulary of a run in document order.
func (r *Repo) VocabItems(ctx context.Context, runID uuid.UUID) ([]domain.VocabItem, error) {
	query, args, err := psql.Select(
		"id", "word", "pos", "meaning_zh", "phonetic",
		"category_id", "subgroup_id", "notes_zh", "tags",
	).
		From("vocab_items").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "vocab_item", runID.String())
	}
	defer rows.Close()

	var items []domain.VocabItem
	for rows.Next() {
		var (
			v   domain.VocabItem
			pos string
		)
		if err := rows.Scan(
			&v.ID, &v.Word, &pos, &v.MeaningZH, &v.Phonetic,
			&v.CategoryID, &v.SubgroupID, &v.NotesZH, &v.Tags,
		); err != nil {
			return nil, postgres.MapError(err, "vocab_item", runID.String())
		}
		v.POS = domain.PartOfSpeech(pos)
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "vocab_item", runID.String())
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Write helpers
// ---------------------------------------------------------------------------

func (r *Repo) insertRun(ctx context.Context, m *domain.DocumentMeta) error {
	query, args, err := psql.Insert("generation_runs").
		Columns(
			"id", "generated_at", "version",
			"source_count", "derived_count", "vocab_count", "sentence_count", "question_count",
		).
		Values(
			m.RunID, m.GeneratedAt, m.Version,
			m.Counts.Source, m.Counts.Derived, m.Counts.Vocab, m.Counts.Sentences, m.Counts.Questions,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	return err
}

// pruneRuns deletes every run except keep. Content rows go with them through
// ON DELETE CASCADE.
func (r *Repo) pruneRuns(ctx context.Context, keep uuid.UUID) (int, error) {
	query, args, err := psql.Delete("generation_runs").
		Where(squirrel.NotEq{"id": keep}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// queueFunc adds the insert for the item at position to batch.
type queueFunc[T any] func(batch *pgx.Batch, position int, item T)

// insertChunked queues one insert per item and sends them in batches of at
// most r.batchSize statements. It returns the number of inserted rows.
func insertChunked[T any](ctx context.Context, r *Repo, items []T, queue queueFunc[T]) (int, error) {
	var inserted int
	for start := 0; start < len(items); start += r.batchSize {
		end := min(start+r.batchSize, len(items))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			queue(batch, i, items[i])
		}

		n, err := r.sendBatchExec(ctx, batch)
		inserted += n
		if err != nil {
			return inserted, fmt.Errorf("rows %d-%d: %w", start, end-1, err)
		}
	}
	return inserted, nil
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
