package pitch

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func floatsApproxEqual(t *testing.T, got, want []float64, tol float64, label string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: length = %d, want %d", label, len(got), len(want))
	}
	for i := range want {
		if !approxEqual(got[i], want[i], tol) {
			t.Errorf("%s[%d] = %f, want %f", label, i, got[i], want[i])
		}
	}
}

// thresholdTransitionCost is a synthetic transition cost: the absolute
// frequency difference if under 10Hz, else a hard 1000 penalty.
func thresholdTransitionCost(a *Analyzer, first, second Candidate) float64 {
	d := math.Abs(first.Frequency - second.Frequency)
	if d < 10 {
		return d
	}
	return 1000
}

func weightedCandidates(freqs []float64, weight float64) []Candidate {
	cs := make([]Candidate, len(freqs))
	for i, f := range freqs {
		cs[i] = Candidate{Frequency: f, weight: weight}
	}
	return cs
}

// TestViterbiSynthesizedPath reproduces the fixed three-step scenario: step
// costs must match exactly at every step, and the reconstructed path must
// pick out 300, 301, then 302 Hz.
func TestViterbiSynthesizedPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TransitionCost = thresholdTransitionCost
	a := &Analyzer{cfg: cfg}

	step1 := weightedCandidates([]float64{100, 200, 300}, 1)
	step2 := weightedCandidates([]float64{205, 301, 105}, 1)
	step3 := weightedCandidates([]float64{302, 210, 110}, 1)

	var v viterbiState
	var candidates []Candidate

	v.update(a, nil, step1)
	candidates = append(candidates, step1...)
	floatsApproxEqual(t, v.pathCosts, []float64{-1, -1, -1}, 1e-9, "pathCosts after step1")

	v.update(a, step1, step2)
	candidates = append(candidates, step2...)
	floatsApproxEqual(t, v.pathCosts, []float64{3, -1, 3}, 1e-9, "pathCosts after step2")

	v.update(a, step2, step3)
	candidates = append(candidates, step3...)
	floatsApproxEqual(t, v.pathCosts, []float64{-1, 7, 7}, 1e-9, "pathCosts after step3")

	path, err := v.path(candidates, 3)
	if err != nil {
		t.Fatalf("path() error: %v", err)
	}
	floatsApproxEqual(t, path, []float64{300, 301, 302}, 1e-9, "reconstructed path")
}

func TestComputePathNoCandidatesError(t *testing.T) {
	var v viterbiState
	if _, err := v.path(nil, 3); err != ErrNoPath {
		t.Errorf("path() with no steps = %v, want ErrNoPath", err)
	}
	if _, err := v.path([]Candidate{{Frequency: 1, weight: 1}}, 0); err != ErrNoPath {
		t.Errorf("path() with K=0 = %v, want ErrNoPath", err)
	}
}

// TestBoersmaTransitionCostMonotonic checks the default transition cost is
// monotonically increasing in octave distance between two voiced
// candidates, is a flat VoicedUnvoicedCost whenever exactly one side is
// unvoiced, and zero between two unvoiced candidates.
func TestBoersmaTransitionCostMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	a := &Analyzer{cfg: cfg}

	unvoiced := Candidate{Frequency: 0}
	if c := BoersmaTransitionCost(a, unvoiced, unvoiced); c != 0 {
		t.Errorf("unvoiced-unvoiced cost = %f, want 0", c)
	}

	voiced := Candidate{Frequency: 150}
	if c := BoersmaTransitionCost(a, voiced, unvoiced); c != cfg.VoicedUnvoicedCost {
		t.Errorf("voiced-unvoiced cost = %f, want %f", c, cfg.VoicedUnvoicedCost)
	}
	if c := BoersmaTransitionCost(a, unvoiced, voiced); c != cfg.VoicedUnvoicedCost {
		t.Errorf("unvoiced-voiced cost = %f, want %f", c, cfg.VoicedUnvoicedCost)
	}

	base := 150.0
	prevCost := -1.0
	for _, octaves := range []float64{0, 0.1, 0.5, 1, 2, 3} {
		f2 := base * math.Pow(2, octaves)
		cost := BoersmaTransitionCost(a, Candidate{Frequency: base}, Candidate{Frequency: f2})
		if cost < prevCost {
			t.Fatalf("transition cost not monotonic at %.1f octaves: %f < %f", octaves, cost, prevCost)
		}
		prevCost = cost
	}
}
