package pitch

import "math"

// BoersmaUnvoiced always contributes a single frequency-0 candidate per
// step, with a weight derived from how quiet the frame is relative to the
// stream's running peak amplitude: loud relative to the peak means "surely
// voiced, penalize staying unvoiced"; quiet means "probably silence".
type BoersmaUnvoiced struct {
	frameSize int
}

// NewBoersmaUnvoiced creates an unvoiced candidate generator. frameSize
// defaults to 2048 when given as 0.
func NewBoersmaUnvoiced(frameSize int) *BoersmaUnvoiced {
	if frameSize == 0 {
		frameSize = 2048
	}
	return &BoersmaUnvoiced{frameSize: frameSize}
}

func (u *BoersmaUnvoiced) FrameSize() int     { return u.frameSize }
func (u *BoersmaUnvoiced) NumCandidates() int { return 1 }

func (u *BoersmaUnvoiced) CutFrame(buffer []float64, bufferIndex int) ([]float64, bool) {
	return cutFrameCentered(buffer, bufferIndex, u.frameSize)
}

func (u *BoersmaUnvoiced) GenerateCandidates(a *Analyzer, step *StepContext, frame []float64) []Candidate {
	numerator := fabsMaxArr(frame) / a.globalAbsolutePeak
	denominator := a.cfg.SilenceThreshold / (1 + a.cfg.VoicingThreshold)
	quotient := numerator / denominator
	weight := a.cfg.VoicingThreshold + math.Max(0, 2-quotient)

	return []Candidate{{Frequency: 0, weight: weight}}
}
