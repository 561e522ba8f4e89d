package pitch

import "math"

// TransitionCoster scores the Viterbi transition between two candidates of
// consecutive steps; lower is better. The default is BoersmaTransitionCost.
type TransitionCoster func(a *Analyzer, first, second Candidate) float64

// Config holds the tunable fields of an Analyzer. NewAnalyzer stores its own
// copy; the Analyzer has no setter for it, so the configuration is fixed for
// the Analyzer's lifetime (Analyzer.Config returns a copy). Reset recomputes
// the cached derived values (DeltaT, frame step size) from that copy.
type Config struct {
	// FrameTimeStep is the interval in seconds between two analysis
	// steps. 0 means "use the 10ms default" in NewAnalyzer.
	FrameTimeStep float64
	// MinimalFrequency and MaximalFrequency bound voiced candidates, Hz.
	MinimalFrequency float64
	MaximalFrequency float64
	// InitialAbsolutePeakCoeff multiplies the first-frame peak used to
	// seed GlobalAbsolutePeak.
	InitialAbsolutePeakCoeff float64
	// OctaveCost biases candidate weights against high frequencies.
	OctaveCost float64
	// VoicedUnvoicedCost is the Viterbi transition penalty between a
	// voiced and an unvoiced candidate.
	VoicedUnvoicedCost float64
	// OctaveJumpCost scales the Viterbi transition penalty between two
	// voiced candidates, proportional to the octave distance.
	OctaveJumpCost float64
	// SilenceThreshold and VoicingThreshold tune the unvoiced estimator.
	SilenceThreshold float64
	VoicingThreshold float64
	// ZeroPadding is the number of leading zero samples seeded into the
	// buffer so the first frames have left-context.
	ZeroPadding int
	// MinimalNoteLength is a note-length threshold in samples. No code
	// reads it: midi.MidiNumbersToNotes merges with its own fixed
	// 6-sample threshold.
	MinimalNoteLength int
	// SamplingRate is the input sampling rate, Hz.
	SamplingRate float64

	// TransitionCost computes the Viterbi transition cost between two
	// candidates. Defaults to BoersmaTransitionCost.
	TransitionCost TransitionCoster
}

// DefaultConfig returns the standard parameter defaults: 10ms steps,
// 20-800Hz voiced range, Boersma-tuned costs, 48kHz sampling, 2048-sample
// zero padding.
func DefaultConfig() Config {
	return Config{
		FrameTimeStep:            0.01,
		MinimalFrequency:         20,
		MaximalFrequency:         800,
		InitialAbsolutePeakCoeff: 1.0,
		OctaveCost:               0.02,
		VoicedUnvoicedCost:       0.2,
		OctaveJumpCost:           0.2,
		SilenceThreshold:         0.15,
		VoicingThreshold:         0.4,
		ZeroPadding:              2048,
		MinimalNoteLength:        6,
		SamplingRate:             48000,
		TransitionCost:           BoersmaTransitionCost,
	}
}

// BoersmaTransitionCost is the default Viterbi transition cost: free
// between two unvoiced candidates, VoicedUnvoicedCost when exactly one side
// is unvoiced, and OctaveJumpCost * |log2(f1/f2)| between two voiced
// candidates.
func BoersmaTransitionCost(a *Analyzer, first, second Candidate) float64 {
	f1, f2 := first.Frequency, second.Frequency
	switch {
	case f1 == 0 && f2 == 0:
		return 0
	case f1 == 0 || f2 == 0:
		return a.cfg.VoicedUnvoicedCost
	default:
		return a.cfg.OctaveJumpCost * math.Abs(math.Log2(f1/f2))
	}
}
