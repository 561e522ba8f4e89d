// Package dsp implements the numerical kernels the pitch tracker builds
// on: an in-place radix-2 FFT, a matching real-input FFT, and the window
// functions used to taper analysis frames.
package dsp

import (
	"math"
	"sync"
)

// sinCosTableSize mirrors the original C implementation's table size: the
// library only ever transforms frames up to a few thousand samples, so 256
// levels of the trigonometric recurrence is abundant headroom.
const sinCosTableSize = 256

var (
	sinTable   [sinCosTableSize]float64
	cosTable   [sinCosTableSize]float64
	sinCosOnce sync.Once
)

func initSinCosTables() {
	sinCosOnce.Do(func() {
		const theta = 2 * math.Pi
		for i := 0; i < sinCosTableSize; i++ {
			sinTable[i] = math.Sin(theta / math.Pow(2, float64(i)))
			cosTable[i] = math.Cos(theta / math.Pow(2, float64(i)))
		}
	})
}

// NextPowerOfTwo returns the smallest power of two that is >= v, for v >= 1.
func NextPowerOfTwo(v uint32) uint32 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return v + 1
}

// log2Floor returns floor(log2(n)) for n >= 1.
func log2Floor(n uint32) uint32 {
	var log uint32
	for n > 1 {
		n >>= 1
		log++
	}
	return log
}

// DFFT replaces data[0:2*nn] (nn complex numbers, interleaved real/imag) by
// its discrete Fourier transform when sign is +1, or by nn times its inverse
// DFT when sign is -1. nn must be a power of two; callers must ensure this,
// it is not checked. Ported from the Numerical-Recipes-style four1 routine
// used by the original pitch tracker.
func DFFT(data []float64, nn int, sign int) {
	initSinCosTables()

	n := nn << 1
	j := 1
	for i := 1; i < n; i += 2 {
		if j > i {
			data[j-1], data[i-1] = data[i-1], data[j-1]
			data[j], data[i] = data[i], data[j]
		}
		m := nn
		for m >= 2 && j > m {
			j -= m
			m >>= 1
		}
		j += m
	}

	mmax := 2
	thetaIndex := 1
	for n > mmax {
		istep := mmax << 1
		wtemp := sinTable[thetaIndex+1]
		wpr := -2.0 * wtemp * wtemp
		wpi := float64(sign) * sinTable[thetaIndex]
		wr := 1.0
		wi := 0.0
		for m := 1; m < mmax; m += 2 {
			for i := m; i <= n; i += istep {
				j := i + mmax
				tempr := wr*data[j-1] - wi*data[j]
				tempi := wr*data[j] + wi*data[j-1]
				data[j-1] = data[i-1] - tempr
				data[j] = data[i] - tempi
				data[i-1] += tempr
				data[i] += tempi
			}
			wtemp = wr
			wr += wr*wpr - wi*wpi
			wi += wi*wpr + wtemp*wpi
		}
		mmax = istep
		thetaIndex++
	}
}

// RealFT computes the FFT of n real samples stored in data[0:n] when sign is
// +1, replacing them in place with the positive-frequency half of the
// complex transform packed as:
//
//	data[0] = Re(X_0), data[1] = Re(X_{n/2})
//	data[2k], data[2k+1] = Re(X_k), Im(X_k) for k = 1..n/2-1
//
// When sign is -1 it performs the matching inverse (unnormalized; multiply
// the result by 2/n to recover the original samples). n must be a power of
// two.
func RealFT(data []float64, n int, sign int) {
	initSinCosTables()

	c1 := 0.5
	var c2, h1r, h1i, h2r, h2i float64
	theta := math.Pi / float64(n>>1)
	thetaIndex := int(log2Floor(uint32(n)))

	if sign == 1 {
		c2 = -0.5
		DFFT(data, n>>1, 1)
	} else {
		c2 = 0.5
		theta = -theta
		sign = -1
	}

	wtemp := float64(sign) * sinTable[thetaIndex+1]
	wpr := -2.0 * wtemp * wtemp
	wpi := float64(sign) * sinTable[thetaIndex]
	wr := 1.0 + wpr
	wi := wpi
	np1 := n + 1

	for i := 1; i < n>>2; i++ {
		i1 := i + i
		i2 := 1 + i1
		i3 := np1 - i2
		i4 := 1 + i3

		h1r = c1 * (data[i1] + data[i3])
		h1i = c1 * (data[i2] - data[i4])
		h2r = -c2 * (data[i2] + data[i4])
		h2i = c2 * (data[i1] - data[i3])

		data[i1] = h1r + wr*h2r - wi*h2i
		data[i2] = h1i + wr*h2i + wi*h2r
		data[i3] = h1r - wr*h2r + wi*h2i
		data[i4] = -h1i + wr*h2i + wi*h2r

		wtemp = wr
		wr = wtemp*wpr - wi*wpi + wr
		wi = wi*wpr + wtemp*wpi + wi
	}

	if sign == 1 {
		h1r = data[0]
		data[0] = h1r + data[1]
		data[1] = h1r - data[1]
	} else {
		h1r = data[0]
		data[0] = c1 * (h1r + data[1])
		data[1] = c1 * (h1r - data[1])
		DFFT(data, n>>1, -1)
	}
}

// Hann fills w with a Hann window of len(w) samples: sin^2(pi*i/(N-1)).
// Zero at both endpoints, unit peak.
func Hann(w []float64) {
	n := len(w)
	for i := range w {
		v := math.Sin(math.Pi * float64(i) / float64(n-1))
		w[i] = v * v
	}
}

// Hamming fills w with a Hamming window of len(w) samples. Non-zero
// (~0.077) at both endpoints, unit peak.
func Hamming(w []float64) {
	const a0 = 0.53836
	const a1 = 0.46164
	n := len(w)
	for i := range w {
		w[i] = a0 - a1*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
}

// blackmanHarrisCoeffs are the 9-term minimum-sidelobe weights.
var blackmanHarrisCoeffs = [9]float64{
	2.384331152777942e-001,
	4.005545348643820e-001,
	2.358242530472107e-001,
	9.527918858383112e-002,
	2.537395516617152e-002,
	4.152432907505835e-003,
	3.685604163298180e-004,
	1.384355593917030e-005,
	1.161808358932861e-007,
}

// BlackmanHarris fills w with a 9-term Blackman-Harris window of len(w)
// samples. Zero at both endpoints, unit peak.
func BlackmanHarris(w []float64) {
	n := len(w)
	for i := range w {
		var value float64
		sign := 1.0
		for k, an := range blackmanHarrisCoeffs {
			value += sign * an * math.Cos(2*float64(k)*math.Pi*float64(i)/float64(n-1))
			sign = -sign
		}
		w[i] = value
	}
}
