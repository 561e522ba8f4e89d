package dsp

// Autocorrelation is the power-spectrum-based autocorrelation of a real
// frame, computed via the real FFT: zero-pad to the next power of two of
// 2*len(frame), forward-transform, square each bin's magnitude, and
// inverse-transform. Only the first half of the (symmetric) result is
// meaningful: the whole padded buffer is returned, and sizeOut (half its
// length) marks that first half.
//
// When normalize is true, every output sample is scaled by 2/paddedLen
// (the conventional normalized autocorrelation). When fftOut is non-nil,
// the padded forward FFT is copied into it before the power-spectrum step
// overwrites the buffer in place, for callers (the max-frequency estimator)
// that need the raw spectrum of the same frame.
func Autocorrelation(frame []float64, normalize bool, fftOut *[]float64) (ac []float64, sizeOut int) {
	sizeIn := len(frame)
	acLength := int(NextPowerOfTwo(uint32(sizeIn * 2)))

	buf := make([]float64, acLength)
	copy(buf, frame)

	RealFT(buf, acLength, 1)

	if fftOut != nil {
		cp := make([]float64, acLength)
		copy(cp, buf)
		*fftOut = cp
	}

	buf[0] *= buf[0]
	buf[1] *= buf[1]
	for i := 2; i < acLength; i += 2 {
		x, y := buf[i], buf[i+1]
		buf[i] = x*x + y*y
		buf[i+1] = 0
	}

	RealFT(buf, acLength, -1)

	if normalize {
		normalizer := 2.0 / float64(acLength)
		for i := range buf {
			buf[i] *= normalizer
		}
	}

	sizeOut = acLength / 2
	return buf, sizeOut
}

// WindowCorrectedAutocorrelation computes the autocorrelation of frame
// against window, mean-subtracting the frame and dividing out the window's
// own autocorrelation over the range where that division is reliable
// (the first quarter of the raw unnormalized autocorrelation).
//
// windowAC is an in/out cache: if *windowAC is nil it is computed from
// window and stored in *windowAC for the caller to reuse across frames;
// if already populated, it is used as-is. fftOut behaves as in
// Autocorrelation, retaining the padded forward FFT of the mean-subtracted,
// windowed frame.
//
// The division is not guarded: an all-zero window yields divide-by-zero
// outputs. Callers must pass a non-degenerate window.
func WindowCorrectedAutocorrelation(frame, window []float64, windowAC *[]float64, fftOut *[]float64) (ac []float64, sizeOut int) {
	sizeIn := len(frame)

	var mean float64
	for _, v := range frame {
		mean += v
	}
	mean /= float64(sizeIn)

	y := make([]float64, sizeIn)
	for i, v := range frame {
		y[i] = (v - mean) * window[i]
	}

	acY, rawSize := Autocorrelation(y, false, fftOut)

	var acW []float64
	if windowAC != nil && *windowAC != nil {
		acW = *windowAC
	} else {
		acW, _ = Autocorrelation(window, false, nil)
		if windowAC != nil {
			*windowAC = acW
		}
	}

	sizeOut = rawSize / 2
	ac = make([]float64, sizeOut)
	for i := 0; i < sizeOut; i++ {
		ac[i] = acY[i] / acW[i]
	}
	return ac, sizeOut
}
