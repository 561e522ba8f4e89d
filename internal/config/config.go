// Package config holds the static, non-tunable constants the v2p CLI
// needs that aren't per-analyzer parameters (those live on pitch.Config,
// mutable per instance).
package config

// ReadChunkSamples is the number of samples the CLI reads from an
// AudioDecoder per AddSamples call while streaming a file through the
// analyzer. Larger than the 1024-sample minimum the scheduler needs before
// it starts stepping, so every chunk after the first keeps it busy.
const ReadChunkSamples = 4096

// DefaultWindow names the window function BoersmaVoiced applies to each
// frame. It is surfaced in CLI diagnostics rather than selectable, since
// changing it would change the autocorrelation math the generator assumes.
const DefaultWindow = "hann"

// FrequencyPrecision and MidiPrecision are the number of decimal places
// the CLI prints for frequencies (Hz) and fractional MIDI note numbers in
// its report table.
const (
	FrequencyPrecision = 1
	MidiPrecision      = 2
)

// ProgressUpdateEvery is how many streamed chunks elapse between progress
// UI updates, so the Bubbletea program isn't flooded with messages on
// large files.
const ProgressUpdateEvery = 4
