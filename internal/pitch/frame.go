package pitch

// cutFrameCentered extracts a frameSize-sample frame of buffer centered on
// bufferIndex, clamping the start to 0 when bufferIndex is less than
// frameSize/2 (the frame then begins at the buffer's first sample instead
// of reaching before it). Returns ok=false (NeedMoreData) if
// buffer does not yet extend far enough to the right to fill the frame.
func cutFrameCentered(buffer []float64, bufferIndex, frameSize int) ([]float64, bool) {
	rightHalf := frameSize / 2
	if frameSize%2 == 1 {
		rightHalf++
	}
	if bufferIndex+rightHalf > len(buffer) {
		return nil, false
	}

	start := bufferIndex - frameSize/2
	if start < 0 {
		start = 0
	}
	if start+frameSize > len(buffer) {
		return nil, false
	}

	return buffer[start : start+frameSize], true
}
