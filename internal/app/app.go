// Package app wires configuration, logging and adapters into the corpus
// generator commands.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql

	"github.com/heartmarshall/toeic-corpus/internal/adapter/jsonfile"
	"github.com/heartmarshall/toeic-corpus/internal/adapter/postgres"
	"github.com/heartmarshall/toeic-corpus/internal/adapter/postgres/corpus"
	"github.com/heartmarshall/toeic-corpus/internal/adapter/provider/freedict"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen"
	"github.com/heartmarshall/toeic-corpus/internal/app/corpusgen/cmu"
	"github.com/heartmarshall/toeic-corpus/internal/config"
	"github.com/heartmarshall/toeic-corpus/internal/domain"
	"github.com/heartmarshall/toeic-corpus/migrations"
)

// ErrDatabaseNotConfigured is returned by commands that need a DSN.
var ErrDatabaseNotConfigured = errors.New("database DSN is not configured")

// GenerateOptions are command-line overrides applied on top of the
// generator configuration.
type GenerateOptions struct {
	ConfigPath string
	Phases     []string
	DryRun     bool
	// Target overrides target_total when non-nil.
	Target     *int
	OutputPath string
}

// Generate runs the corpus pipeline and returns the generated document.
func Generate(ctx context.Context, opts GenerateOptions, stderr io.Writer) (*domain.Document, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg.Log, stderr)

	gen, err := loadGeneratorConfig(opts)
	if err != nil {
		return nil, err
	}

	phases, err := corpusgen.ResolvePhases(opts.Phases)
	if err != nil {
		return nil, err
	}

	logger.Info("starting corpus generation",
		slog.String("version", BuildVersion()),
		slog.String("manifest", gen.ManifestPath),
		slog.Int("target_total", gen.TargetTotal),
		slog.Any("phases", phases),
		slog.Bool("dry_run", gen.DryRun),
	)

	phonetics, err := newPhoneticChain(logger, gen)
	if err != nil {
		return nil, err
	}

	publishers := []corpusgen.Publisher{jsonfile.NewWriter(gen.OutputPath, logger)}
	if cfg.Database.Enabled() && !gen.DryRun && slices.Contains(phases, corpusgen.PhasePublish) {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		publishers = append(publishers, corpus.New(pool, postgres.NewTxManager(pool), gen.BatchSize, logger))
	}

	deps := corpusgen.Deps{
		Publishers: publishers,
		Version:    Version,
	}
	if phonetics.Len() > 0 {
		deps.Phonetics = phonetics
	}

	return corpusgen.NewPipeline(logger, *gen, deps).Run(ctx, phases)
}

// Migrate applies every pending migration to the configured database.
func Migrate(ctx context.Context, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log, stderr)

	if !cfg.Database.Enabled() {
		return ErrDatabaseNotConfigured
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, r := range results {
		logger.Info("migration applied",
			slog.String("file", r.Source.Path),
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	logger.Info("database is up to date", slog.Int("applied", len(results)))
	return nil
}

func loadGeneratorConfig(opts GenerateOptions) (*corpusgen.Config, error) {
	gen, err := corpusgen.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		gen.DryRun = true
	}
	if opts.Target != nil {
		gen.TargetTotal = *opts.Target
	}
	if opts.OutputPath != "" {
		gen.OutputPath = opts.OutputPath
	}

	if err := gen.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}
	return gen, nil
}

// newPhoneticChain orders the offline dictionary before the online lookup.
func newPhoneticChain(logger *slog.Logger, gen *corpusgen.Config) (*corpusgen.PhoneticChain, error) {
	chain := corpusgen.NewPhoneticChain(logger, gen.LookupTimeout)

	if gen.CMUPath != "" {
		dict, err := cmu.Load(gen.CMUPath)
		if err != nil {
			return nil, fmt.Errorf("load pronouncing dictionary: %w", err)
		}
		stats := dict.Stats()
		logger.Info("pronouncing dictionary loaded",
			slog.String("path", gen.CMUPath),
			slog.Int("words", stats.UniqueWords),
		)
		chain.Add(cmu.Name, dict)
	}

	if gen.FreeDictEnabled {
		chain.Add(freedict.Name, freedict.NewProvider(gen.FreeDictURL, gen.LookupTimeout, logger))
	}

	return chain, nil
}
