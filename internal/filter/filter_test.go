package filter

import "testing"

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestMedianLiteral(t *testing.T) {
	input := []float64{9, 2, 2, 8, 2, 1, 2, 2, 2, 2, 0, 2, 9}
	want := []float64{9, 2, 2, 2, 2, 2, 2, 2, 2, 2, 0, 2, 9}

	got := Median(input, 3)
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approxEqual(got[i], want[i], 1e-9) {
			t.Errorf("Median(...)[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestMeanLiteral(t *testing.T) {
	input := []float64{2, 4, 4, 4, 0}
	want := []float64{3, 10.0 / 3.0, 4, 4, 0}

	got := Mean(input, 3)
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approxEqual(got[i], want[i], 1e-9) {
			t.Errorf("Mean(...)[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

// TestSilencePreserved checks that both filters force a 0 output wherever
// the input is exactly 0, regardless of surrounding non-zero values.
func TestSilencePreserved(t *testing.T) {
	input := []float64{5, 5, 0, 5, 5, 0, 5, 5, 5}
	for _, w := range []int{3, 4, 5} {
		med := Median(input, w)
		mean := Mean(input, w)
		for i, v := range input {
			if v != 0 {
				continue
			}
			if med[i] != 0 {
				t.Errorf("Median window=%d: out[%d] = %f, want 0 (silence)", w, i, med[i])
			}
			if mean[i] != 0 {
				t.Errorf("Mean window=%d: out[%d] = %f, want 0 (silence)", w, i, mean[i])
			}
		}
	}
}
