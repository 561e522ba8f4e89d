// Package midi converts a raw frequency path into MIDI note events: pitch
// is mapped to fractional note numbers, the path is segmented into
// constant-pitch runs, and each run is synthesized into a discrete note via
// bucket voting, then short/overlapping notes are merged away.
package midi

import "math"

// FrequencyToMidiNumber converts a frequency in Hz to a fractional MIDI
// note number (A4 = 69 = 440Hz). Returns 0 for freq < 1 (silence).
func FrequencyToMidiNumber(freq float64) float64 {
	if freq < 1 {
		return 0
	}
	return 69 + math.Log2(freq/440)*12
}

// MidiNumberToFrequency is the inverse of FrequencyToMidiNumber. Returns 0
// for number < 1.
func MidiNumberToFrequency(number float64) float64 {
	if number < 1 {
		return 0
	}
	return 440 * math.Pow(2, (number-69)/12)
}

// PitchToMidiNumbers maps every frequency in pitch to its fractional MIDI
// note number.
func PitchToMidiNumbers(pitch []float64) []float64 {
	numbers := make([]float64, len(pitch))
	for i, f := range pitch {
		numbers[i] = FrequencyToMidiNumber(f)
	}
	return numbers
}

// DistanceToGrid returns the signed distance, in semitones, from a
// fractional MIDI number to the nearest integer note, in [-0.5, 0.5):
// positive above the note, negative below. An exact half (60.5) rounds up
// to the upper note and gives -0.5. Returns 0 for midiNumber < 1 (silence has no
// grid). Diagnostic only — this repo never quantizes a path to its grid,
// it only reports how far off it is.
func DistanceToGrid(midiNumber float64) float64 {
	if midiNumber < 1 {
		return 0
	}
	return midiNumber - math.Round(midiNumber)
}
