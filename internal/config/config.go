package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/viant/embedbench/index"
)

// Config holds all embedbench configuration.
type Config struct {
	EmbeddingDir string          `yaml:"embedding_dir"`
	LabelFile    string          `yaml:"label_file"`
	Index        IndexConfig     `yaml:"index"`
	Retrieval    RetrievalConfig `yaml:"retrieval"`
	// StrictLabels requires every embedded domain to have a class label.
	StrictLabels bool   `yaml:"strict_labels"`
	LogLevel     string `yaml:"log_level"`
}

// IndexConfig selects and tunes the similarity index.
type IndexConfig struct {
	Kind     string  `yaml:"kind"` // brute, cover, tree, sqlite
	TreeBase float32 `yaml:"tree_base"`
	DSN      string  `yaml:"dsn"`
}

// RetrievalConfig controls nearest-neighbour inspection.
type RetrievalConfig struct {
	// TopK is the neighbour count per query: 0 selects the default of ten,
	// a negative value lists every domain.
	TopK        int  `yaml:"top_k"`
	IncludeSelf bool `yaml:"include_self"`
}

// Default returns the built-in configuration: the two fixed input locations
// relative to the working directory, an exact index and ten neighbours per
// query with the query itself included.
func Default() Config {
	return Config{
		EmbeddingDir: "embedding",
		LabelFile:    "labels.tsv",
		Index: IndexConfig{
			Kind: index.KindBrute,
			DSN:  ":memory:",
		},
		Retrieval: RetrievalConfig{
			TopK:        10,
			IncludeSelf: true,
		},
		LogLevel: "info",
	}
}

// Load starts from Default, overlays the YAML file at path (skipped when
// path is empty) and then EMBEDBENCH_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg; keys missing from
// the document keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	cfg.EmbeddingDir = getenv("EMBEDBENCH_EMBEDDING_DIR", cfg.EmbeddingDir)
	cfg.LabelFile = getenv("EMBEDBENCH_LABEL_FILE", cfg.LabelFile)
	cfg.Index.Kind = getenv("EMBEDBENCH_INDEX", cfg.Index.Kind)
	cfg.Index.DSN = getenv("EMBEDBENCH_SQLITE_DSN", cfg.Index.DSN)
	cfg.LogLevel = getenv("EMBEDBENCH_LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.Retrieval.TopK, err = getenvInt("EMBEDBENCH_TOP_K", cfg.Retrieval.TopK); err != nil {
		return err
	}
	if cfg.Retrieval.IncludeSelf, err = getenvBool("EMBEDBENCH_INCLUDE_SELF", cfg.Retrieval.IncludeSelf); err != nil {
		return err
	}
	if cfg.StrictLabels, err = getenvBool("EMBEDBENCH_STRICT_LABELS", cfg.StrictLabels); err != nil {
		return err
	}
	return nil
}

// Validate reports configuration that cannot drive a run.
func (c Config) Validate() error {
	var errs []error
	if c.EmbeddingDir == "" {
		errs = append(errs, errors.New("config: embedding_dir is empty"))
	}
	if c.LabelFile == "" {
		errs = append(errs, errors.New("config: label_file is empty"))
	}
	if c.Index.Kind != "" && !slices.Contains(index.Kinds, c.Index.Kind) {
		errs = append(errs, fmt.Errorf("config: unknown index kind %q", c.Index.Kind))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
