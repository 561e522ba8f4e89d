// Package filter implements the post-processing smoothing filters applied
// to a raw frequency path before MIDI conversion: a sliding median and a
// sliding mean, both silence-preserving.
package filter

import "sort"

// Median applies a sliding median filter of the given window size to
// input, returning a new slice of the same length. Samples within
// window_size/2 of either edge are copied through unchanged (the window
// doesn't fully fit). Wherever input[i] is exactly 0, the output is forced
// to 0 regardless of its neighbors, so silence is never smeared into a
// frequency by its voiced neighbors.
func Median(input []float64, windowSize int) []float64 {
	length := len(input)
	out := make([]float64, length)

	halfLeft := windowSize / 2
	halfRight := windowSize - halfLeft

	i := 0
	for ; i < halfLeft; i++ {
		out[i] = input[i]
	}
	window := make([]float64, windowSize)
	for ; i+halfRight < length; i++ {
		copy(window, input[i-halfLeft:i-halfLeft+windowSize])
		out[i] = median(window)
		if input[i] == 0 {
			out[i] = 0
		}
	}
	for ; i < length; i++ {
		out[i] = input[i]
	}

	return out
}

// median sorts window in place and returns its median.
func median(window []float64) float64 {
	sort.Float64s(window)
	n := len(window)
	if n%2 == 1 {
		return window[n/2]
	}
	return (window[n/2-1] + window[n/2]) / 2
}
