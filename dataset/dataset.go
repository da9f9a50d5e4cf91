// Package dataset assembles the embedding store, the similarity index and the
// label catalog described by a configuration, and checks that they agree on
// which domains exist.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/viant/embedbench/benchmark"
	"github.com/viant/embedbench/embedding"
	"github.com/viant/embedbench/index"
	"github.com/viant/embedbench/internal/config"
	"github.com/viant/embedbench/label"
)

// ErrMismatch marks components that disagree on the loaded domains.
var ErrMismatch = errors.New("dataset: identifier mismatch")

// maxListed bounds the identifiers quoted in a mismatch error.
const maxListed = 5

// Dataset is a loaded, validated benchmark input.
type Dataset struct {
	Store  *embedding.Store
	Index  index.Index
	Labels *label.Catalog

	unembedded int
}

// Load builds the configured index, loads embeddings into the store and the
// index together, then loads labels and validates the result.
func Load(cfg config.Config) (*Dataset, error) {
	idx, err := index.New(cfg.Index.Kind, index.Options{TreeBase: cfg.Index.TreeBase, DSN: cfg.Index.DSN})
	if err != nil {
		return nil, err
	}
	d := &Dataset{Index: idx}
	if err := d.load(cfg); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Dataset) load(cfg config.Config) error {
	slog.Info("loading dataset", "embedding_dir", cfg.EmbeddingDir, "labels", cfg.LabelFile, "index", cfg.Index.Kind)
	store, err := embedding.Load(cfg.EmbeddingDir, d.Index)
	if err != nil {
		return err
	}
	d.Store = store
	if n := d.Index.Len(); n != store.Len() {
		return fmt.Errorf("%w: index holds %d entries, store %d", ErrMismatch, n, store.Len())
	}

	labels, err := label.Load(cfg.LabelFile)
	if err != nil {
		return err
	}
	d.Labels = labels
	classes := labels.Classes()
	slog.Debug("label classes", "count", len(classes), "first", listIDs(classes))

	var unlabeled []string
	embedded := 0
	for _, id := range store.IDs() {
		if labels.Has(id) {
			embedded++
		} else {
			unlabeled = append(unlabeled, id)
		}
	}
	d.unembedded = labels.Len() - embedded
	if len(unlabeled) > 0 {
		if cfg.StrictLabels {
			return fmt.Errorf("%w: %d embedded domains have no label: %s", ErrMismatch, len(unlabeled), listIDs(unlabeled))
		}
		slog.Warn("embedded domains without label are left out of pairs", "count", len(unlabeled), "first", listIDs(unlabeled))
	}
	if d.unembedded > 0 {
		slog.Info("labeled domains without embedding", "count", d.unembedded)
	}
	return nil
}

func listIDs(ids []string) string {
	if len(ids) > maxListed {
		return strings.Join(ids[:maxListed], ", ") + ", ..."
	}
	return strings.Join(ids, ", ")
}

// Pairs returns a fresh pair stream over the loaded domains.
func (d *Dataset) Pairs() *benchmark.Stream {
	return benchmark.NewStream(d.Store.IDs(), d.Labels)
}

// Unembedded reports how many labeled domains have no embedding.
func (d *Dataset) Unembedded() int { return d.unembedded }

// Close releases index resources such as a SQLite connection.
func (d *Dataset) Close() error {
	if c, ok := d.Index.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
