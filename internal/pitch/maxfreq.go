package pitch

import "math"

// MaxFrequency is a high-register estimator tuned for the 880-2500Hz band:
// it reads the shared StepContext FFT populated earlier in the same step
// (normally by a BoersmaVoiced generator registered after it, and thus
// executing before it — see Analyzer.Register) and picks the bin with the
// largest log-magnitude. It must be registered before the generator that
// produces the FFT it consumes.
type MaxFrequency struct {
	frameSize int
}

// NewMaxFrequency creates a max-frequency candidate generator. frameSize
// defaults to 2048 when given as 0.
func NewMaxFrequency(frameSize int) *MaxFrequency {
	if frameSize == 0 {
		frameSize = 2048
	}
	return &MaxFrequency{frameSize: frameSize}
}

func (m *MaxFrequency) FrameSize() int     { return m.frameSize }
func (m *MaxFrequency) NumCandidates() int { return 1 }

func (m *MaxFrequency) CutFrame(buffer []float64, bufferIndex int) ([]float64, bool) {
	return cutFrameCentered(buffer, bufferIndex, m.frameSize)
}

// fftArgmaxMaxSum returns the index of the bin with the largest
// log2(1+power) value in array (packed as dsp.RealFT output), along with
// that maximum and the sum of every bin's log-power (used by the caller to
// derive a mean). Bin 0 (array[0]) and bin length/2 (array[1]) are each
// treated as a lone real-valued coefficient, matching the RealFT packing.
func fftArgmaxMaxSum(array []float64) (idx int, max, sum float64) {
	length := len(array)
	max = math.Log2(1 + math.Abs(array[0]))
	sum = max
	idx = 0

	i := 1
	for ; i < length/2; i++ {
		x, y := array[2*i], array[2*i+1]
		v := math.Log2(1 + x*x + y*y)
		sum += v
		if v > max {
			max = v
			idx = i
		}
	}

	v := math.Log2(1 + math.Abs(array[1]))
	sum += v
	if max < v {
		max = v
		idx = i
	}
	return idx, max, sum
}

func (m *MaxFrequency) GenerateCandidates(a *Analyzer, step *StepContext, frame []float64) []Candidate {
	fft := step.FFT
	if fft == nil {
		panic("pitch: MaxFrequency ran before any generator populated the step FFT; register it before a BoersmaVoiced")
	}
	argmax, max, sum := fftArgmaxMaxSum(fft)
	mean := sum / float64(len(fft)/2)

	deltaF := 1.0 / (a.deltaT * float64(len(fft)))
	freq := float64(argmax) * deltaF

	amp := 1 - mean/max
	amp = amp * amp

	tMax := 1.0 / freq
	logCoef := math.Log2(a.cfg.MinimalFrequency * tMax)
	weight := amp - a.cfg.OctaveCost*logCoef

	if freq > 2500 || freq < 880 {
		freq = 0
		weight = 0
	}

	return []Candidate{{Frequency: freq, amplitude: amp, weight: weight}}
}
