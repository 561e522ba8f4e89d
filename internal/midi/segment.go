package midi

import "math"

const (
	segmentWindowLength = 3
	// pitchThreshold is the maximum allowed spread, in semitones, between
	// the extremal points of a window before it's considered two notes.
	pitchThreshold = 1.0 / 2.5
)

func localDiff(numbers []float64, i int) float64 {
	index := i - 1
	if index < 0 {
		index = 0
	}
	return math.Abs(numbers[index] - numbers[i])
}

func minMaxDiff(window []float64) float64 {
	if len(window) < 1 {
		return 0
	}
	min, max := window[0], window[0]
	for _, v := range window {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return math.Abs(min - max)
}

// SegmentationHeuristic assigns every sample in numbers a segment class
// index: it walks a length-3 sliding window and bumps the class whenever
// the window's spread reaches pitchThreshold and the jump from the
// previous sample exceeds a dynamic fraction of that spread. Consecutive
// samples sharing a class belong to the same note.
func SegmentationHeuristic(numbers []float64) []int {
	length := len(numbers)
	segments := make([]int, length)

	currentClass := 0
	for i := 0; i < length; i++ {
		index := i - segmentWindowLength + 1
		if index < 0 {
			index = 0
		}
		if index+segmentWindowLength >= length {
			index = length - segmentWindowLength
		}
		if index < 0 {
			index = 0
		}

		window := numbers[index:min(index+segmentWindowLength, length)]
		mmd := minMaxDiff(window)
		if mmd >= pitchThreshold && localDiff(numbers, i) > mmd/1.5 {
			currentClass++
		}

		segments[i] = currentClass
	}

	return segments
}
