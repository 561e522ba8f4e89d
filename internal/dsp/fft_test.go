package dsp

import (
	"math"
	"testing"

	"github.com/argusdusty/gofft"
)

const epsilon = 1e-6

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct{ in, want uint32 }{
		{31, 32},
		{27, 32},
		{12, 16},
		{300, 512},
		{1, 1},
		{2, 2},
	}
	for _, c := range cases {
		got := NextPowerOfTwo(c.in)
		if got != c.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", c.in, got, c.want)
		}
		if got < c.in || got >= 2*c.in && c.in > 1 {
			t.Errorf("NextPowerOfTwo(%d) = %d violates n <= p < 2n", c.in, got)
		}
	}
}

func TestDFFTIdentity(t *testing.T) {
	const nn = 64
	data := make([]float64, 2*nn)
	for i := range data {
		data[i] = math.Sin(float64(i)) * 3.7
	}
	original := append([]float64(nil), data...)

	DFFT(data, nn, 1)
	DFFT(data, nn, -1)

	for i := range data {
		want := original[i] * nn
		if !approxEqual(data[i], want, 1e-3*float64(nn)+1e-6) {
			t.Fatalf("DFFT round trip mismatch at %d: got %f want %f", i, data[i], want)
		}
	}
}

func TestRealFTIdentity(t *testing.T) {
	const n = 128
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(float64(i)*0.3) * 2.1
	}
	original := append([]float64(nil), data...)

	RealFT(data, n, 1)
	RealFT(data, n, -1)

	for i := range data {
		got := data[i] * 2 / n
		if !approxEqual(got, original[i], 1e-3) {
			t.Fatalf("RealFT round trip mismatch at %d: got %f want %f", i, got, original[i])
		}
	}
}

func TestZeroInZeroOut(t *testing.T) {
	t.Run("DFFT", func(t *testing.T) {
		data := make([]float64, 2*32)
		DFFT(data, 32, 1)
		for i, v := range data {
			if v != 0 {
				t.Fatalf("DFFT(zero)[%d] = %f, want 0", i, v)
			}
		}
	})
	t.Run("RealFT", func(t *testing.T) {
		data := make([]float64, 64)
		RealFT(data, 64, 1)
		for i, v := range data {
			if v != 0 {
				t.Fatalf("RealFT(zero)[%d] = %f, want 0", i, v)
			}
		}
	})
	t.Run("Autocorrelation", func(t *testing.T) {
		frame := make([]float64, 32)
		ac, _ := Autocorrelation(frame, true, nil)
		for i, v := range ac {
			if v != 0 {
				t.Fatalf("Autocorrelation(zero)[%d] = %f, want 0", i, v)
			}
		}
	})
	t.Run("WindowCorrectedAutocorrelation", func(t *testing.T) {
		frame := make([]float64, 32)
		window := make([]float64, 32)
		for i := range window {
			window[i] = 1 // rectangular, non-degenerate
		}
		ac, _ := WindowCorrectedAutocorrelation(frame, window, nil, nil)
		for i, v := range ac {
			if v != 0 {
				t.Fatalf("WindowCorrectedAutocorrelation(zero)[%d] = %f, want 0", i, v)
			}
		}
	})
}

func dirac(n int) []float64 {
	d := make([]float64, n)
	d[0] = 1
	return d
}

func TestDiracAutocorrelation(t *testing.T) {
	frame := dirac(32)
	ac, size := Autocorrelation(frame, true, nil)
	if !approxEqual(ac[0], 1, 1e-3) {
		t.Errorf("ac[0] = %f, want ~1", ac[0])
	}
	for i := 1; i < size; i++ {
		if !approxEqual(ac[i], 0, 1e-3) {
			t.Errorf("ac[%d] = %f, want ~0", i, ac[i])
		}
	}

	window := make([]float64, 32)
	for i := range window {
		window[i] = 1
	}
	acw, sizew := WindowCorrectedAutocorrelation(frame, window, nil, nil)
	if !approxEqual(acw[0], 1, 1e-2) {
		t.Errorf("window-corrected ac[0] = %f, want ~1", acw[0])
	}
	for i := 1; i < sizew; i++ {
		if !approxEqual(acw[i], 0, 1e-2) {
			t.Errorf("window-corrected ac[%d] = %f, want ~0", i, acw[i])
		}
	}
}

func checkWindowShape(t *testing.T, name string, w []float64, endpointZero bool, endpointRange [2]float64) {
	t.Helper()
	peak := 0.0
	for _, v := range w {
		if v < -1e-9 {
			t.Errorf("%s: negative value %f", name, v)
		}
		if v > peak {
			peak = v
		}
	}
	if !approxEqual(peak, 1, 1e-3) {
		t.Errorf("%s: peak = %f, want 1", name, peak)
	}
	if endpointZero {
		if !approxEqual(w[0], 0, 1e-6) || !approxEqual(w[len(w)-1], 0, 1e-6) {
			t.Errorf("%s: endpoints = %f, %f, want 0", name, w[0], w[len(w)-1])
		}
	} else {
		if w[0] < endpointRange[0] || w[0] > endpointRange[1] {
			t.Errorf("%s: endpoint %f out of range %v", name, w[0], endpointRange)
		}
	}
}

func TestWindowShapes(t *testing.T) {
	const n = 1024

	hann := make([]float64, n)
	Hann(hann)
	checkWindowShape(t, "Hann", hann, true, [2]float64{})

	bh := make([]float64, n)
	BlackmanHarris(bh)
	checkWindowShape(t, "BlackmanHarris", bh, true, [2]float64{})

	hamming := make([]float64, n)
	Hamming(hamming)
	checkWindowShape(t, "Hamming", hamming, false, [2]float64{0.07, 0.08})
}

// TestDFFTAgainstGofftOracle cross-checks the magnitude spectrum produced
// by the hand-rolled, table-driven DFFT against an independent FFT
// implementation.
func TestDFFTAgainstGofftOracle(t *testing.T) {
	const nn = 256
	samples := make([]float64, nn)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 20 * float64(i) / float64(nn))
	}

	ours := make([]float64, 2*nn)
	for i, v := range samples {
		ours[2*i] = v
	}
	DFFT(ours, nn, 1)

	oracle := gofft.Float64ToComplex128Array(samples)
	if err := gofft.FFT(oracle); err != nil {
		t.Fatalf("gofft.FFT failed: %v", err)
	}

	for k := 0; k < nn; k++ {
		ourMag := math.Hypot(ours[2*k], ours[2*k+1])
		oracleMag := math.Hypot(real(oracle[k]), imag(oracle[k]))
		if !approxEqual(ourMag, oracleMag, 1e-6) {
			t.Errorf("bin %d: our magnitude %f, gofft magnitude %f", k, ourMag, oracleMag)
		}
	}
}
