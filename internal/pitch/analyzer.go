package pitch

import "math"

// Analyzer is the streaming scheduler: it owns a growable, zero-padded
// sample buffer, a registry of candidate generators, and the Viterbi state
// that stitches their output into a frequency path. Samples are pushed
// incrementally via AddSamples; ComputePath can be called at any time to
// read out the best path over everything seen so far.
type Analyzer struct {
	cfg Config

	generators           []Generator // execution order: most recently Registered first
	numCandidatesPerStep int

	deltaT        float64
	frameStepSize int

	buffer      []float64
	bufferIndex int

	candidates        []Candidate // row-major, T rows of numCandidatesPerStep
	numberOfTimesteps int

	globalAbsolutePeak float64
	peakSeeded         bool

	viterbi viterbiState
	step    StepContext
}

// NewAnalyzer creates an Analyzer from cfg, filling any zero-valued tunable
// with its documented default, then resetting internal state.
func NewAnalyzer(cfg Config) *Analyzer {
	d := DefaultConfig()
	if cfg.FrameTimeStep == 0 {
		cfg.FrameTimeStep = d.FrameTimeStep
	}
	if cfg.MinimalFrequency == 0 {
		cfg.MinimalFrequency = d.MinimalFrequency
	}
	if cfg.MaximalFrequency == 0 {
		cfg.MaximalFrequency = d.MaximalFrequency
	}
	if cfg.InitialAbsolutePeakCoeff == 0 {
		cfg.InitialAbsolutePeakCoeff = d.InitialAbsolutePeakCoeff
	}
	if cfg.OctaveCost == 0 {
		cfg.OctaveCost = d.OctaveCost
	}
	if cfg.VoicedUnvoicedCost == 0 {
		cfg.VoicedUnvoicedCost = d.VoicedUnvoicedCost
	}
	if cfg.OctaveJumpCost == 0 {
		cfg.OctaveJumpCost = d.OctaveJumpCost
	}
	if cfg.SilenceThreshold == 0 {
		cfg.SilenceThreshold = d.SilenceThreshold
	}
	if cfg.VoicingThreshold == 0 {
		cfg.VoicingThreshold = d.VoicingThreshold
	}
	if cfg.ZeroPadding == 0 {
		cfg.ZeroPadding = d.ZeroPadding
	}
	if cfg.MinimalNoteLength == 0 {
		cfg.MinimalNoteLength = d.MinimalNoteLength
	}
	if cfg.SamplingRate == 0 {
		cfg.SamplingRate = d.SamplingRate
	}
	if cfg.TransitionCost == nil {
		cfg.TransitionCost = d.TransitionCost
	}

	a := &Analyzer{cfg: cfg}
	a.Reset()
	return a
}

// Register adds a candidate generator to the analyzer. Generators run in
// the reverse of their registration order: the most recently Registered
// generator executes first each step. A generator that relies on a shared
// StepContext artifact (the max-frequency estimator reading a
// Boersma-computed FFT) is therefore registered before its producer, so the
// producer runs first and the consumer observes that step's FFT.
//
// Register panics if called after the analyzer has produced its first step:
// the candidate row width K is fixed once processing begins.
func (a *Analyzer) Register(g Generator) {
	if a.numberOfTimesteps > 0 {
		panic("pitch: Register called after the first step was produced; the candidate row width is fixed once processing begins")
	}
	a.generators = append([]Generator{g}, a.generators...)
	a.numCandidatesPerStep += g.NumCandidates()
}

// Reset clears all accumulated samples, candidates and path state, and
// reseeds the buffer with ZeroPadding leading zero samples. Registered
// generators are kept.
func (a *Analyzer) Reset() {
	a.deltaT = 1.0 / a.cfg.SamplingRate
	a.frameStepSize = int(math.Round(a.cfg.FrameTimeStep * a.cfg.SamplingRate))

	a.candidates = nil
	a.numberOfTimesteps = 0
	a.globalAbsolutePeak = 0
	a.peakSeeded = false
	a.viterbi.reset()

	a.buffer = make([]float64, a.cfg.ZeroPadding)
	a.bufferIndex = a.cfg.ZeroPadding
}

// NumCandidatesPerStep returns the total number of candidates the
// registered generators contribute per step (the candidate row width K).
func (a *Analyzer) NumCandidatesPerStep() int { return a.numCandidatesPerStep }

// PathLen returns the number of steps computed so far (T).
func (a *Analyzer) PathLen() int { return a.numberOfTimesteps }

// NbCandidatesGenerated returns the total number of candidates generated so
// far, T*K.
func (a *Analyzer) NbCandidatesGenerated() int { return len(a.candidates) }

func fabsMaxArr(v []float64) float64 {
	var m float64
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}
	return m
}

// AddSamples appends samples to the internal buffer and runs every step
// that the newly available audio makes possible.
func (a *Analyzer) AddSamples(samples []float64) {
	a.buffer = append(a.buffer, samples...)
	a.bufferChanged()
}

// bufferChanged seeds the global absolute peak (once, from the first
// available chunk of audio) and then runs as many scheduler steps as the
// buffer currently supports.
func (a *Analyzer) bufferChanged() {
	if len(a.buffer) < 1024 {
		return
	}

	if !a.peakSeeded {
		peakWindow := a.cfg.ZeroPadding + 1024
		if peakWindow > len(a.buffer) {
			peakWindow = len(a.buffer)
		}
		a.globalAbsolutePeak = fabsMaxArr(a.buffer[:peakWindow]) * a.cfg.InitialAbsolutePeakCoeff
		a.peakSeeded = true
	}
	// Every call (including the one that just seeded the peak above)
	// also widens it to the loudest sample seen across the whole buffer.
	if local := fabsMaxArr(a.buffer); local > a.globalAbsolutePeak {
		a.globalAbsolutePeak = local
	}

	for a.bufferIndex < len(a.buffer) {
		frames := make([][]float64, len(a.generators))
		ready := true
		for i, g := range a.generators {
			frame, ok := g.CutFrame(a.buffer, a.bufferIndex)
			if !ok {
				ready = false
				break
			}
			frames[i] = frame
		}
		if !ready {
			break
		}

		a.step = StepContext{}
		newCandidates := make([]Candidate, 0, a.numCandidatesPerStep)
		for i, g := range a.generators {
			cs := g.GenerateCandidates(a, &a.step, frames[i])
			newCandidates = append(newCandidates, cs...)
		}

		var prevCandidates []Candidate
		if a.numberOfTimesteps > 0 {
			k := a.numCandidatesPerStep
			prevStart := (a.numberOfTimesteps - 1) * k
			prevCandidates = a.candidates[prevStart : prevStart+k]
		}

		a.candidates = append(a.candidates, newCandidates...)
		a.viterbi.update(a, prevCandidates, newCandidates)

		a.bufferIndex += a.frameStepSize
		a.numberOfTimesteps++
	}
}

// GlobalAbsolutePeak returns the running peak-amplitude estimate used by the
// unvoiced candidate generator to judge silence.
func (a *Analyzer) GlobalAbsolutePeak() float64 { return a.globalAbsolutePeak }

// DeltaT returns 1/SamplingRate.
func (a *Analyzer) DeltaT() float64 { return a.deltaT }

// Config returns a copy of the analyzer's active configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// ComputePath reconstructs the best frequency path over every step
// processed so far, one entry per step. Returns ErrNoPath if no candidates
// have been generated yet.
func (a *Analyzer) ComputePath() ([]float64, error) {
	return a.viterbi.path(a.candidates, a.numCandidatesPerStep)
}
