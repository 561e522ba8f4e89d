package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements AudioDecoder for WAV files, downmixing
// multi-channel input to mono by averaging channels (the analyzer only
// ever ingests a single sample stream).
type WAVDecoder struct {
	decoder    *wav.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	numChans   int
	numSamples int64
}

// NewWAVDecoder creates a new WAV decoder
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file")
	}

	// Get format info without reading all samples
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	bytesPerSample := int64(decoder.BitDepth / 8)
	numChans := int64(decoder.NumChans)
	var numSamples int64
	if bytesPerSample > 0 && numChans > 0 {
		numSamples = int64(decoder.PCMLen()) / (bytesPerSample * numChans)
	}

	return &WAVDecoder{
		decoder:    decoder,
		file:       f,
		sampleRate: int(decoder.SampleRate),
		bitDepth:   int(decoder.BitDepth),
		numChans:   int(decoder.NumChans),
		numSamples: numSamples,
	}, nil
}

// ReadChunk reads the next chunk of mono samples
func (d *WAVDecoder) ReadChunk(numSamples int) ([]float64, error) {
	// Create buffer for reading
	intBuf := &audio.IntBuffer{
		Data: make([]int, numSamples*d.numChans),
		Format: &audio.Format{
			NumChannels: d.numChans,
			SampleRate:  d.sampleRate,
		},
	}

	// Read PCM data
	n, err := d.decoder.PCMBuffer(intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	if n == 0 {
		return nil, io.EOF
	}

	frames := n / d.numChans
	samples := make([]float64, frames)
	maxVal := float64(int64(1) << (d.bitDepth - 1))
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < d.numChans; c++ {
			sum += float64(intBuf.Data[i*d.numChans+c])
		}
		samples[i] = sum / float64(d.numChans) / maxVal
	}

	return samples, nil
}

// SampleRate returns the sample rate
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels in the source file
// (ReadChunk always downmixes to mono regardless of this value).
func (d *WAVDecoder) NumChannels() int {
	return d.numChans
}

// NumSamples returns the total number of mono samples in the file.
func (d *WAVDecoder) NumSamples() int64 {
	return d.numSamples
}

// Close closes the decoder and releases resources
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
