package metric

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func equalSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !almostEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestPrecisionRecallCurve(t *testing.T) {
	// scikit-learn reference: precision_recall_curve([0,0,1,1], [0.1,0.4,0.35,0.8])
	labels := []bool{false, false, true, true}
	scores := []float64{0.1, 0.4, 0.35, 0.8}
	c, err := PrecisionRecallCurve(labels, scores)
	if err != nil {
		t.Fatalf("PrecisionRecallCurve failed: %v", err)
	}
	wantP := []float64{0.5, 2.0 / 3.0, 0.5, 1, 1}
	wantR := []float64{1, 1, 0.5, 0.5, 0}
	wantT := []float64{0.1, 0.35, 0.4, 0.8}
	if !equalSlices(c.Precision, wantP) {
		t.Errorf("Precision = %v, want %v", c.Precision, wantP)
	}
	if !equalSlices(c.Recall, wantR) {
		t.Errorf("Recall = %v, want %v", c.Recall, wantR)
	}
	if !equalSlices(c.Thresholds, wantT) {
		t.Errorf("Thresholds = %v, want %v", c.Thresholds, wantT)
	}
	auc, err := c.AUC()
	if err != nil {
		t.Fatalf("AUC failed: %v", err)
	}
	// recall [0, .5, .5, 1, 1] against precision [1, 1, .5, 2/3, .5]
	want := 0.5*1 + 0.5*(0.5+2.0/3.0)/2
	if !almostEqual(auc, want) {
		t.Errorf("AUC = %v, want %v", auc, want)
	}
}

func TestPRAUC_SeparableScores(t *testing.T) {
	// pair scores of A=[1,0], B=[1,0], C=[0,1] with A,B sharing a class
	auc, err := PRAUC([]bool{false, false, true}, []float64{0, 0, 1})
	if err != nil {
		t.Fatalf("PRAUC failed: %v", err)
	}
	if !almostEqual(auc, 1) {
		t.Fatalf("PRAUC = %v, want 1", auc)
	}
}

func TestPRAUC_ScaleInvariant(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	labels := make([]bool, 200)
	scores := make([]float64, 200)
	for i := range scores {
		labels[i] = r.IntN(3) == 0
		scores[i] = float64(r.IntN(1000)) / 1000
	}
	labels[0] = true
	base, err := PRAUC(labels, scores)
	if err != nil {
		t.Fatalf("PRAUC failed: %v", err)
	}
	for _, k := range []float64{2, 0.5, 8} {
		scaled := make([]float64, len(scores))
		for i, s := range scores {
			scaled[i] = s * k
		}
		got, err := PRAUC(labels, scaled)
		if err != nil {
			t.Fatalf("PRAUC failed: %v", err)
		}
		if !almostEqual(got, base) {
			t.Fatalf("PRAUC scaled by %v = %v, want %v", k, got, base)
		}
	}
	if base <= 0 || base > 1 {
		t.Fatalf("PRAUC = %v out of (0, 1]", base)
	}
}

func TestPRAUC_NaNPropagates(t *testing.T) {
	c, err := PrecisionRecallCurve([]bool{true, false, true}, []float64{0.9, math.NaN(), 0.1})
	if err != nil {
		t.Fatalf("PrecisionRecallCurve failed: %v", err)
	}
	if c.Valid() {
		t.Fatalf("curve with NaN score reported valid")
	}
	auc, err := c.AUC()
	if err != nil || !math.IsNaN(auc) {
		t.Fatalf("AUC = %v, %v; want NaN", auc, err)
	}
}

func TestPrecisionRecallCurve_Errors(t *testing.T) {
	if _, err := PrecisionRecallCurve([]bool{true}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
	if _, err := PrecisionRecallCurve(nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
	if _, err := PrecisionRecallCurve([]bool{false, false}, []float64{1, 2}); !errors.Is(err, ErrNoPositives) {
		t.Errorf("err = %v, want ErrNoPositives", err)
	}
}

func TestAUC(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
		want float64
		err  error
	}{
		{name: "increasing", x: []float64{0, 1, 2}, y: []float64{0, 1, 0}, want: 1},
		{name: "decreasing", x: []float64{2, 1, 0}, y: []float64{0, 1, 0}, want: 1},
		{name: "flat steps", x: []float64{0, 0, 1, 1}, y: []float64{1, 0.5, 0.5, 0}, want: 0.5},
		{name: "not monotonic", x: []float64{0, 2, 1}, y: []float64{0, 0, 0}, err: ErrNotMonotonic},
		{name: "mismatch", x: []float64{0, 1}, y: []float64{0}, err: ErrLengthMismatch},
		{name: "single point", x: []float64{0}, y: []float64{1}, err: ErrTooFewPoints},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AUC(tc.x, tc.y)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("err = %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AUC failed: %v", err)
			}
			if !almostEqual(got, tc.want) {
				t.Fatalf("AUC = %v, want %v", got, tc.want)
			}
		})
	}
}
