package pitch

import (
	"math"
	"sort"

	"github.com/larkwave/v2p/internal/dsp"
)

// BoersmaVoiced is the autocorrelation-peak candidate generator: it
// Hann-windows each frame, computes the window-corrected autocorrelation,
// picks local maxima interpolated to sub-sample precision, and keeps the
// NumCandidates highest-amplitude ones inside [MinimalFrequency,
// MaximalFrequency]. It also populates the shared StepContext FFT so a
// later generator in the same step (MaxFrequency) can reuse the spectrum
// without recomputing it.
type BoersmaVoiced struct {
	frameSize     int
	numCandidates int
	window        []float64
	windowAC      []float64
}

// NewBoersmaVoiced creates a voiced candidate generator. frameSize defaults
// to 2048 and numCandidates to 3 when given as 0.
func NewBoersmaVoiced(frameSize, numCandidates int) *BoersmaVoiced {
	if frameSize == 0 {
		frameSize = 2048
	}
	if numCandidates == 0 {
		numCandidates = 3
	}
	window := make([]float64, frameSize)
	dsp.Hann(window)
	return &BoersmaVoiced{frameSize: frameSize, numCandidates: numCandidates, window: window}
}

func (b *BoersmaVoiced) FrameSize() int     { return b.frameSize }
func (b *BoersmaVoiced) NumCandidates() int { return b.numCandidates }

func (b *BoersmaVoiced) CutFrame(buffer []float64, bufferIndex int) ([]float64, bool) {
	return cutFrameCentered(buffer, bufferIndex, b.frameSize)
}

// quadraticInterpolate finds the abscissa of the extremum of the parabola
// through (k-1, X[k-1]), (k, X[k]) and (k+1, X[k+1]).
func quadraticInterpolate(k int, x []float64) float64 {
	xl, xc, xr := float64(k-1), float64(k), float64(k+1)
	yl, yc, yr := x[k-1], x[k], x[k+1]

	d2 := 2 * ((yr - yc) - (yl-yc)/(xl-xc)) / 2.0
	d1 := (yr-yc)/(xr-xc) - 0.5*d2*(xr-xc)

	if d2 != 0 {
		return xc - d1/d2
	}
	return xc
}

func (b *BoersmaVoiced) GenerateCandidates(a *Analyzer, step *StepContext, frame []float64) []Candidate {
	ac, sizeOut := dsp.WindowCorrectedAutocorrelation(frame, b.window, &b.windowAC, &step.FFT)

	total := b.numCandidates
	if sizeOut > total {
		total = sizeOut
	}
	candidates := make([]Candidate, total)

	for ds := 1; ds+1 < sizeOut; ds++ {
		v := ac[ds]
		if v >= ac[ds-1] && v >= ac[ds+1] {
			dsNew := quadraticInterpolate(ds, ac)

			freq := 1.0 / (dsNew * a.deltaT)
			amp := ac[ds] / ac[0]

			tMax := float64(ds) * a.deltaT
			logCoef := math.Log2(a.cfg.MinimalFrequency * tMax)
			weight := amp - a.cfg.OctaveCost*logCoef

			candidates[ds] = Candidate{Frequency: freq, amplitude: amp, weight: weight}
		}

		freq := candidates[ds].Frequency
		if freq < a.cfg.MinimalFrequency || freq > a.cfg.MaximalFrequency {
			candidates[ds].Frequency = 0
			candidates[ds].amplitude = 0
		}
	}

	sort.SliceStable(candidates[:sizeOut], func(i, j int) bool {
		return candidates[i].Amplitude() > candidates[j].Amplitude()
	})

	return candidates[:b.numCandidates]
}
