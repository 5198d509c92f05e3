package corpusgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/assemble"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/derive"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/ident"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/question"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/sentence"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/source"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
	"github.com/heartmarshall/toeic-corpus/pkg/ctxutil"
)

// Phase names in canonical execution order.
const (
	PhaseAssemble   = "assemble"
	PhaseDerive     = "derive"
	PhaseSynthesize = "synthesize"
	PhasePublish    = "publish"
)

var allPhases = []string{PhaseAssemble, PhaseDerive, PhaseSynthesize, PhasePublish}

// optionalPhases may be left out of a phase selection; the others always run.
var optionalPhases = map[string]bool{PhaseDerive: true, PhasePublish: true}

// notesPrefix introduces the collocation in a vocabulary item's notes.
const notesPrefix = "多益常見搭配："

// ResolvePhases returns the phases to run for a selection, in canonical order.
// An empty selection runs every phase. Required phases are always included.
func ResolvePhases(selected []string) ([]string, error) {
	if len(selected) == 0 {
		return slices.Clone(allPhases), nil
	}

	filter := make(map[string]bool, len(selected))
	for _, ph := range selected {
		ph = strings.TrimSpace(ph)
		if !slices.Contains(allPhases, ph) {
			return nil, domain.NewValidationError("phase",
				fmt.Sprintf("unknown phase %q (want one of %s)", ph, strings.Join(allPhases, ", ")))
		}
		filter[ph] = true
	}

	var out []string
	for _, ph := range allPhases {
		if filter[ph] || !optionalPhases[ph] {
			out = append(out, ph)
		}
	}
	return out, nil
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Produced int
	Dropped  int
	Degraded int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Deps are the collaborators of a Pipeline. Zero values are usable.
type Deps struct {
	// Phonetics fills VocabItem.Phonetic. Nil leaves it empty.
	Phonetics  PhoneticProvider
	Publishers []Publisher
	// Random drives distractor sampling. Nil seeds from Config.Seed.
	Random  question.RandomSource
	Now     func() time.Time
	Version string
}

// Pipeline orchestrates the generation phases.
type Pipeline struct {
	log        *slog.Logger
	cfg        Config
	phonetics  PhoneticProvider
	publishers []Publisher
	sentences  *sentence.Generator
	questions  *question.Generator
	now        func() time.Time
	version    string
	results    map[string]PhaseResult
}

// runState carries data from one phase to the next.
type runState struct {
	run        domain.GenerationRun
	categories []domain.Category
	corpus     assemble.Corpus
	doc        *domain.Document
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg Config, deps Deps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	rnd := deps.Random
	if rnd == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(now().UnixNano())
		}
		rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	return &Pipeline{
		log:        log,
		cfg:        cfg,
		phonetics:  deps.Phonetics,
		publishers: deps.Publishers,
		sentences:  sentence.NewGenerator(),
		questions:  question.NewGenerator(rnd),
		now:        now,
		version:    deps.Version,
		results:    make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// Run executes the pipeline and returns the generated Document. If phases is
// non-empty, only the listed optional phases run. Any phase error aborts the
// run; nothing is published unless every earlier phase succeeded.
func (p *Pipeline) Run(ctx context.Context, phases []string) (*domain.Document, error) {
	toRun, err := ResolvePhases(phases)
	if err != nil {
		return nil, err
	}

	st := &runState{run: domain.NewGenerationRun(p.cfg.TargetTotal, p.now())}
	log := p.log.With(slog.String("run_id", st.run.ID.String()))
	ctx = ctxutil.WithRunID(ctx, st.run.ID)

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseAssemble:
			result = p.runAssemble(log, st)
		case PhaseDerive:
			result = p.runDerive(log, st)
		case PhaseSynthesize:
			result = p.runSynthesize(ctx, log, st)
		case PhasePublish:
			result = p.runPublish(ctx, log, st)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			log.Error("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return nil, fmt.Errorf("phase %s: %w", phase, result.Err)
		}
		log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("produced", result.Produced),
			slog.Int("dropped", result.Dropped),
			slog.Int("degraded", result.Degraded),
			slog.Bool("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	counts := st.run.Counts
	log.Info("pipeline completed",
		slog.Int("phases_run", len(toRun)),
		slog.Int("vocab", counts.Vocab),
		slog.Int("sentences", counts.Sentences),
		slog.Int("questions", counts.Questions),
	)
	return st.doc, nil
}

// runAssemble loads the manifest and merges its tables.
func (p *Pipeline) runAssemble(log *slog.Logger, st *runState) PhaseResult {
	src, err := source.Load(p.cfg.ManifestPath)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("load sources: %w", err)}
	}

	corpus, stats := assemble.Assemble(src.Tables)
	st.categories = src.Categories
	st.corpus = corpus

	declared := make(map[string]bool, len(src.Categories))
	for _, c := range src.Categories {
		declared[c.ID] = true
	}
	for _, id := range corpus.CategoryIDs() {
		if !declared[id] {
			log.Warn("category not declared in manifest; its entries join derivation but are not published",
				slog.String("category", id),
				slog.Int("entries", len(corpus[id])),
			)
		}
	}

	unknownPOS := 0
	for _, entries := range corpus {
		for _, e := range entries {
			if !e.POS.IsValid() {
				unknownPOS++
			}
		}
	}
	if unknownPOS > 0 {
		log.Warn("entries with unrecognized part of speech fall back to noun templates",
			slog.Int("entries", unknownPOS),
		)
	}

	log.Info("sources assembled",
		slog.Int("tables", stats.Tables),
		slog.Int("categories", len(corpus)),
		slog.Int("merged", stats.Merged),
		slog.Int("kept", stats.Kept),
	)
	return PhaseResult{Produced: stats.Kept, Dropped: stats.Duplicates}
}

// runDerive grows the corpus toward the configured target.
func (p *Pipeline) runDerive(log *slog.Logger, st *runState) PhaseResult {
	rules := derive.DefaultRules()
	if p.cfg.ExtendedRules {
		rules = derive.ExtendedRules()
	}

	engine := derive.NewEngine(log, rules, derive.DefaultExclusions)
	global := derive.NewRegistry(st.corpus.Headwords())
	corpus, _, res := engine.Derive(st.corpus, p.cfg.TargetTotal, global)
	st.corpus = corpus

	rejected := 0
	attrs := make([]any, 0, len(res.Rejected)+3)
	attrs = append(attrs,
		slog.Int("budget", res.Budget),
		slog.Int("derived", res.Derived),
		slog.Int("total", corpus.Len()),
	)
	for _, reason := range []string{derive.RejectLength, derive.RejectCollision, derive.RejectExcluded, derive.RejectFailed} {
		n := res.Rejected[reason]
		rejected += n
		attrs = append(attrs, slog.Int("rejected_"+reason, n))
	}
	log.Info("derivation finished", attrs...)

	if res.Budget == 0 {
		return PhaseResult{Skipped: true}
	}
	return PhaseResult{Produced: res.Derived - res.Duplicates, Dropped: rejected + res.Duplicates}
}

// runSynthesize projects every published entry into vocabulary items,
// sentences and questions.
func (p *Pipeline) runSynthesize(ctx context.Context, log *slog.Logger, st *runState) PhaseResult {
	doc := &domain.Document{
		Categories: make([]domain.CategoryDoc, 0, len(st.categories)),
		VocabItems: []domain.VocabItem{},
		Sentences:  []domain.Sentence{},
		Questions:  []domain.Question{},
	}

	var result PhaseResult
	var counts domain.RunCounts
	for _, cat := range st.categories {
		if err := ctx.Err(); err != nil {
			return PhaseResult{Err: err}
		}

		doc.Categories = append(doc.Categories, domain.NewCategoryDoc(cat))

		entries := st.corpus[cat.ID]
		for i, e := range entries {
			phonetic, ok := p.transcribe(ctx, log, e.Word)
			if !ok {
				result.Degraded++
			}

			doc.VocabItems = append(doc.VocabItems, newVocabItem(cat, i, e, phonetic))
			doc.Sentences = append(doc.Sentences, p.sentences.Generate(e, i)...)
			for qi := range p.cfg.QuestionsPerWord {
				doc.Questions = append(doc.Questions, p.questions.Generate(e, entries, qi))
			}

			if e.Derived {
				counts.Derived++
			} else {
				counts.Source++
			}
		}
	}

	counts.Vocab = len(doc.VocabItems)
	counts.Sentences = len(doc.Sentences)
	counts.Questions = len(doc.Questions)
	st.run.Counts = counts

	doc.Meta = &domain.DocumentMeta{
		RunID:       st.run.ID,
		GeneratedAt: st.run.StartedAt.UTC(),
		Version:     p.version,
		Counts:      counts,
	}
	st.doc = doc

	result.Produced = counts.Vocab + counts.Sentences + counts.Questions
	return result
}

// transcribe looks up a phonetic transcription. Any failure degrades to "".
// ok is false only when a configured provider could not answer.
func (p *Pipeline) transcribe(ctx context.Context, log *slog.Logger, word string) (string, bool) {
	if p.phonetics == nil {
		return "", true
	}
	t, err := p.phonetics.Lookup(ctx, word)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Debug("phonetic lookup degraded", slog.String("word", word), slog.String("error", err.Error()))
			return "", false
		}
		return "", true
	}
	return t, true
}

// runPublish hands the Document to every publisher.
func (p *Pipeline) runPublish(ctx context.Context, log *slog.Logger, st *runState) PhaseResult {
	if p.cfg.DryRun {
		log.Info("dry run: nothing published")
		return PhaseResult{Skipped: true}
	}
	if len(p.publishers) == 0 {
		log.Warn("no publishers configured")
		return PhaseResult{Skipped: true}
	}

	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, st.doc); err != nil {
			return PhaseResult{Err: fmt.Errorf("publish %s: %w", pub.Name(), err)}
		}
		log.Info("document published", slog.String("publisher", pub.Name()))
	}
	return PhaseResult{Produced: len(p.publishers)}
}

func newVocabItem(cat domain.Category, i int, e domain.WordEntry, phonetic string) domain.VocabItem {
	meanings := slices.Clone(e.Meanings)
	if meanings == nil {
		meanings = []string{}
	}
	return domain.VocabItem{
		ID:         ident.Vocab(e.Word),
		Word:       e.Word,
		POS:        e.POS,
		MeaningZH:  meanings,
		Phonetic:   phonetic,
		CategoryID: cat.ID,
		SubgroupID: cat.SubgroupFor(i),
		NotesZH:    notesPrefix + e.Collocation,
		Tags:       []string{"toeic", cat.Title},
	}
}
