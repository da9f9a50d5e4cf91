// Package eval scores embeddings against class labels. Separability measures
// how well cosine similarity separates same-class pairs from the rest;
// Retrieval lists each domain's nearest neighbours with their classes.
package eval

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/viant/embedbench/benchmark"
	"github.com/viant/embedbench/metric"
	"github.com/viant/embedbench/vector"
)

// ErrMissingVector marks a pair member with no loaded embedding.
var ErrMissingVector = errors.New("eval: missing embedding")

// Vectors resolves domain embeddings.
type Vectors interface {
	Vector(id string) ([]float32, bool)
}

// SeparabilityReport summarizes one pass over a pair benchmark.
type SeparabilityReport struct {
	Positives int
	Negatives int
	Pairs     int
	// AUC is the area under the precision-recall curve; NaN when any pair
	// involved a zero-magnitude embedding or no pair shares a class.
	AUC float64
	// Curve is nil when no pair shares a class.
	Curve *metric.Curve
}

// Separability scores every pair from src by cosine similarity and computes
// the precision-recall curve with same-class pairs as the positive class.
func Separability(src benchmark.Source, vectors Vectors) (*SeparabilityReport, error) {
	var (
		labels []bool
		scores []float64
		report SeparabilityReport
	)
	for p, ok := src.Next(); ok; p, ok = src.Next() {
		a, ok := vectors.Vector(p.A)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingVector, p.A)
		}
		b, ok := vectors.Vector(p.B)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingVector, p.B)
		}
		labels = append(labels, p.Same)
		scores = append(scores, vector.Cosine(a, b))
		if p.Same {
			report.Positives++
		} else {
			report.Negatives++
		}
	}
	report.Pairs = len(scores)
	slog.Debug("pairs scored", "pairs", report.Pairs, "positives", report.Positives, "negatives", report.Negatives)

	curve, err := metric.PrecisionRecallCurve(labels, scores)
	if errors.Is(err, metric.ErrNoPositives) {
		slog.Warn("no same-class pairs, PR-AUC is undefined", "pairs", report.Pairs)
		report.AUC = math.NaN()
		return &report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("eval: separability over %d pairs: %w", report.Pairs, err)
	}
	if !curve.Valid() {
		slog.Warn("zero-magnitude embedding in benchmark, PR-AUC is undefined")
	}
	auc, err := curve.AUC()
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	report.AUC = auc
	report.Curve = curve
	return &report, nil
}
