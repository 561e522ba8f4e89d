package pitch

import (
	"math"
	"sort"
	"testing"

	"github.com/larkwave/v2p/internal/dsp"
)

func sineSamples(freq, samplingRate float64, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / samplingRate)
	}
	return samples
}

// TestCandidateMatrixShapeInvariant checks that the candidate matrix always
// holds exactly T*K entries, where T is the number of steps processed and K
// is the sum of every registered generator's candidate count.
func TestCandidateMatrixShapeInvariant(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplingRate = 8000
	a := NewAnalyzer(cfg)
	a.Register(NewBoersmaVoiced(512, 3))
	a.Register(NewBoersmaUnvoiced(512))

	a.AddSamples(sineSamples(150, cfg.SamplingRate, 6000))

	k := a.NumCandidatesPerStep()
	if k != 4 {
		t.Fatalf("NumCandidatesPerStep() = %d, want 4", k)
	}

	got := a.NbCandidatesGenerated()
	want := a.PathLen() * k
	if got != want {
		t.Errorf("NbCandidatesGenerated() = %d, want T*K = %d", got, want)
	}
	if len(a.candidates) != want {
		t.Errorf("len(candidates) = %d, want %d", len(a.candidates), want)
	}
}

// TestRegisterAfterProcessingPanics checks that the fixed-row-width
// invariant is enforced: once a step has been produced, adding another
// generator (which would change K) must panic.
func TestRegisterAfterProcessingPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SamplingRate = 8000
	a := NewAnalyzer(cfg)
	a.Register(NewBoersmaVoiced(512, 3))

	a.AddSamples(sineSamples(150, cfg.SamplingRate, 6000))
	if a.PathLen() == 0 {
		t.Fatal("expected at least one processed step before re-registering")
	}

	defer func() {
		if recover() == nil {
			t.Error("Register after the first step should panic")
		}
	}()
	a.Register(NewBoersmaUnvoiced(512))
}

// TestPureSinusoidBoersmaVoiced feeds two seconds of a clean 150Hz tone at
// the default 48kHz rate, analyzed with 2048-sample frames, and expects the
// Viterbi path to lock onto ~150Hz at essentially every step once the tone
// fills the analysis window.
func TestPureSinusoidBoersmaVoiced(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAnalyzer(cfg)
	a.Register(NewBoersmaVoiced(2048, 3))

	a.AddSamples(sineSamples(150, cfg.SamplingRate, 2*int(cfg.SamplingRate)))

	path, err := a.ComputePath()
	if err != nil {
		t.Fatalf("ComputePath() error: %v", err)
	}
	if len(path) == 0 {
		t.Fatal("empty path")
	}

	// Skip the leading steps: they still see mostly zero-padding.
	skip := len(path) / 2
	for i := skip; i < len(path); i++ {
		if !approxEqual(path[i], 150, 5) {
			t.Errorf("path[%d] = %f, want ~150Hz", i, path[i])
		}
	}
}

// TestMaxFrequencyDetectsHighTone checks that a clean 1200Hz tone is
// picked up by the max-frequency estimator within 10Hz, with a strictly
// positive amplitude.
func TestMaxFrequencyDetectsHighTone(t *testing.T) {
	const samplingRate = 8000.0
	const frameSize = 1024

	samples := sineSamples(1200, samplingRate, frameSize)

	window := make([]float64, frameSize)
	dsp.Hann(window)
	for i := range samples {
		samples[i] *= window[i]
	}

	padded := int(dsp.NextPowerOfTwo(uint32(frameSize)))
	fft := make([]float64, padded)
	copy(fft, samples)
	dsp.RealFT(fft, padded, 1)

	argmax, max, sum := fftArgmaxMaxSum(fft)
	mean := sum / float64(len(fft)/2)
	amp := 1 - mean/max
	amp *= amp

	deltaT := 1.0 / samplingRate
	deltaF := 1.0 / (deltaT * float64(len(fft)))
	freq := float64(argmax) * deltaF

	if !approxEqual(freq, 1200, 10) {
		t.Errorf("detected frequency = %f, want ~1200Hz +-10Hz", freq)
	}
	if amp <= 0 {
		t.Errorf("amplitude = %f, want > 0", amp)
	}
}

// TestCandidateSortDescending: a descending stable sort by amplitude must
// reorder this fixed input (which has no equal amplitudes) exactly one way.
func TestCandidateSortDescending(t *testing.T) {
	candidates := []Candidate{
		{Frequency: 1, amplitude: 5},
		{Frequency: 2, amplitude: 200},
		{Frequency: 3, amplitude: 1},
		{Frequency: 4, amplitude: 8},
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Amplitude() > candidates[j].Amplitude()
	})

	want := []float64{200, 8, 5, 1}
	for i, c := range candidates {
		if c.Amplitude() != want[i] {
			t.Errorf("sorted[%d].Amplitude() = %f, want %f", i, c.Amplitude(), want[i])
		}
	}
}
