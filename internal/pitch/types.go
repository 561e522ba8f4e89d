// Package pitch implements the streaming monophonic pitch-analysis engine:
// a scheduler that cuts frames from an incoming sample stream, runs one or
// more candidate generators against each frame, and stitches the resulting
// per-step candidates into a globally optimal frequency path with a
// Viterbi-style dynamic program.
package pitch

// Candidate is a tentative (frequency, amplitude, weight) triple produced
// by a generator for one analysis step. Frequency is in Hz; 0 denotes
// unvoiced/silence. Amplitude is the raw strength used to rank candidates
// against each other within a step (descending-amplitude sort); Weight is
// the bias-adjusted score the Viterbi path search actually optimizes
// (higher is better).
type Candidate struct {
	Frequency float64
	amplitude float64
	weight    float64
}

// Amplitude returns the candidate's raw strength.
func (c Candidate) Amplitude() float64 { return c.amplitude }

// Weight returns the candidate's Viterbi score.
func (c Candidate) Weight() float64 { return c.weight }

// WithAmplitude returns a copy of c with its amplitude set to amp.
func (c Candidate) WithAmplitude(amp float64) Candidate {
	c.amplitude = amp
	return c
}

// WithWeight returns a copy of c with its weight set to w.
func (c Candidate) WithWeight(w float64) Candidate {
	c.weight = w
	return c
}

// StepContext is the per-step spectral artifact shared between generators
// that run in the same step. A generator that populates a frame's forward
// FFT (the Boersma voiced estimator) writes it here; a later generator in
// execution order (the max-frequency estimator) reads it. This replaces the
// original's global `last_fft`/`last_fft_size` analyzer fields with an
// explicit per-step value, so the ordering contract (a consumer never
// observes an FFT from a different step) is enforced by construction
// instead of by convention.
type StepContext struct {
	// FFT is the padded forward real FFT of the most recently windowed
	// frame, in the packing produced by dsp.RealFT. Nil if no generator
	// has populated it yet this step.
	FFT []float64
}

// Generator is the capability set every candidate-generating algorithm
// descriptor implements. Descriptors are stored in an ordered collection
// owned by the Analyzer and executed in the reverse of their registration
// order (see Analyzer.Register).
type Generator interface {
	// FrameSize is the number of samples each generated frame spans.
	FrameSize() int
	// NumCandidates is the fixed number of candidates this generator
	// contributes to each step's row.
	NumCandidates() int
	// CutFrame returns the frame of audio centered on bufferIndex, or
	// ok=false if the buffer does not yet extend far enough
	// (NeedMoreData).
	CutFrame(buffer []float64, bufferIndex int) (frame []float64, ok bool)
	// GenerateCandidates runs the generator's algorithm against frame,
	// appending exactly NumCandidates() candidates. step carries the
	// shared per-step spectral artifact.
	GenerateCandidates(a *Analyzer, step *StepContext, frame []float64) []Candidate
}
