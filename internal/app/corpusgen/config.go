package corpusgen

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

// Config holds generator settings.
type Config struct {
	ManifestPath     string        `yaml:"manifest_path"      env:"GEN_MANIFEST_PATH"`
	OutputPath       string        `yaml:"output_path"        env:"GEN_OUTPUT_PATH"        env-default:"./public/data/toeic_part1.json"`
	TargetTotal      int           `yaml:"target_total"       env:"GEN_TARGET_TOTAL"       env-default:"10500"`
	QuestionsPerWord int           `yaml:"questions_per_word" env:"GEN_QUESTIONS_PER_WORD" env-default:"2"`
	CMUPath          string        `yaml:"cmu_path"           env:"GEN_CMU_PATH"`
	FreeDictEnabled  bool          `yaml:"freedict_enabled"   env:"GEN_FREEDICT_ENABLED"`
	FreeDictURL      string        `yaml:"freedict_url"       env:"GEN_FREEDICT_URL"`
	LookupTimeout    time.Duration `yaml:"lookup_timeout"     env:"GEN_LOOKUP_TIMEOUT"     env-default:"5s"`
	ExtendedRules    bool          `yaml:"extended_rules"     env:"GEN_EXTENDED_RULES"`
	BatchSize        int           `yaml:"batch_size"         env:"GEN_BATCH_SIZE"         env-default:"500"`
	DryRun           bool          `yaml:"dry_run"            env:"GEN_DRY_RUN"`
	// Seed fixes distractor sampling. Zero seeds from the clock.
	Seed uint64 `yaml:"seed" env:"GEN_SEED"`
}

// LoadConfig reads generator configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("generator config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("generator config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("generator config: read env: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings a run cannot start without.
func (c *Config) Validate() error {
	var errs []domain.FieldError
	if c.ManifestPath == "" {
		errs = append(errs, domain.FieldError{Field: "manifest_path", Message: "required"})
	}
	if c.TargetTotal < 0 {
		errs = append(errs, domain.FieldError{Field: "target_total", Message: "must not be negative"})
	}
	if c.QuestionsPerWord <= 0 {
		errs = append(errs, domain.FieldError{Field: "questions_per_word", Message: "must be positive"})
	}
	if c.BatchSize <= 0 {
		errs = append(errs, domain.FieldError{Field: "batch_size", Message: "must be positive"})
	}
	if c.LookupTimeout < 0 {
		errs = append(errs, domain.FieldError{Field: "lookup_timeout", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
