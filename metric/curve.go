// Package metric computes the precision-recall curve of a binary scorer and
// the area under it.
package metric

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

var (
	ErrLengthMismatch = errors.New("metric: labels and scores differ in length")
	ErrEmpty          = errors.New("metric: no samples")
	ErrNoPositives    = errors.New("metric: no positive samples")
	ErrTooFewPoints   = errors.New("metric: at least two points are required")
	ErrNotMonotonic   = errors.New("metric: x is neither increasing nor decreasing")
)

// Curve is a precision-recall curve. Points are ordered by increasing
// threshold, so Recall is non-increasing; the last point is always
// (recall 0, precision 1) and has no threshold.
type Curve struct {
	Precision  []float64
	Recall     []float64
	Thresholds []float64

	invalid bool
}

// Valid reports whether every score the curve was built from was a number.
func (c *Curve) Valid() bool { return !c.invalid }

// AUC returns the area under the curve with recall on the x axis. A curve
// built from NaN scores has a NaN area.
func (c *Curve) AUC() (float64, error) {
	if c.invalid {
		return math.NaN(), nil
	}
	return AUC(c.Recall, c.Precision)
}

// PrecisionRecallCurve ranks samples by descending score and evaluates
// precision and recall at every distinct score. Label true is the positive
// class.
func PrecisionRecallCurve(labels []bool, scores []float64) (*Curve, error) {
	if len(labels) != len(scores) {
		return nil, ErrLengthMismatch
	}
	n := len(scores)
	if n == 0 {
		return nil, ErrEmpty
	}
	invalid := false
	order := make([]int, n)
	for i := range order {
		order[i] = i
		if math.IsNaN(scores[i]) {
			invalid = true
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := scores[order[i]], scores[order[j]]
		return a > b || (math.IsNaN(a) && !math.IsNaN(b))
	})

	var tps, fps, thresholds []float64
	tp := 0.0
	for i, idx := range order {
		if labels[idx] {
			tp++
		}
		if i+1 < n && scores[order[i+1]] == scores[idx] {
			continue
		}
		tps = append(tps, tp)
		fps = append(fps, float64(i+1)-tp)
		thresholds = append(thresholds, scores[idx])
	}
	if tp == 0 {
		return nil, ErrNoPositives
	}

	m := len(tps)
	c := &Curve{
		Precision:  make([]float64, 0, m+1),
		Recall:     make([]float64, 0, m+1),
		Thresholds: make([]float64, 0, m),
		invalid:    invalid,
	}
	for i := m - 1; i >= 0; i-- {
		c.Precision = append(c.Precision, tps[i]/(tps[i]+fps[i]))
		c.Recall = append(c.Recall, tps[i]/tp)
		c.Thresholds = append(c.Thresholds, thresholds[i])
	}
	c.Precision = append(c.Precision, 1)
	c.Recall = append(c.Recall, 0)
	return c, nil
}

// AUC integrates y over x with the trapezoidal rule. x must be monotonic;
// a decreasing x is integrated in reverse so the area is positive.
func AUC(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, ErrTooFewPoints
	}
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN(), nil
		}
	}
	increasing, decreasing := true, true
	for i := 1; i < len(x); i++ {
		switch {
		case x[i] < x[i-1]:
			increasing = false
		case x[i] > x[i-1]:
			decreasing = false
		}
	}
	switch {
	case increasing:
		return integrate.Trapezoidal(x, y), nil
	case decreasing:
		return integrate.Trapezoidal(reversed(x), reversed(y)), nil
	}
	return 0, ErrNotMonotonic
}

// PRAUC returns the area under the precision-recall curve of scores.
func PRAUC(labels []bool, scores []float64) (float64, error) {
	c, err := PrecisionRecallCurve(labels, scores)
	if err != nil {
		return 0, err
	}
	return c.AUC()
}

func reversed(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}
