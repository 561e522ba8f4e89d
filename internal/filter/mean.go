package filter

// Mean applies a sliding mean filter of the given window size to input,
// returning a new slice of the same length. Unlike Median, which copies its
// edge samples through, Mean filters every sample: near the edges the
// window is cut down to the samples that lie inside input. It averages
// only the non-zero samples inside the window, so a run of silence at one edge of
// the window doesn't pull a voiced average toward zero. Wherever input[i]
// is exactly 0, the output is forced to 0.
func Mean(input []float64, windowSize int) []float64 {
	length := len(input)
	out := make([]float64, length)

	halfLeft := windowSize / 2
	halfRight := windowSize - halfLeft

	for i := 0; i < length; i++ {
		var mean float64
		var nb int
		for j := -halfLeft; j < halfRight; j++ {
			idx := i + j
			if idx >= 0 && idx < length && input[idx] != 0 {
				mean += input[idx]
				nb++
			}
		}
		out[i] = mean / float64(nb)

		if input[i] == 0 {
			out[i] = 0
		}
	}

	return out
}
