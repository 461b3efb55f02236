package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by spectrum computation.
var (
	ErrEmptySignal = errors.New("spectrum: signal is empty")
	ErrInvalidRate = errors.New("spectrum: sample rate must be positive")
	ErrNonFinite   = errors.New("spectrum: signal contains NaN or Inf samples")
)

// Spectrum is a one-sided, amplitude-calibrated magnitude spectrum.
type Spectrum struct {
	Magnitude []float64 // bins 0 (DC) through Nyquist
	BinWidth  float64   // Hz per bin
}

// Freq returns the center frequency of bin i in Hz.
func (s Spectrum) Freq(i int) float64 { return float64(i) * s.BinWidth }

// Peak returns the dominant cyclic component: the frequency and amplitude of
// the largest non-DC bin. A zero frequency is returned for spectra with a
// single bin.
func (s Spectrum) Peak() (freq, amplitude float64) {
	best := -1
	for i := 1; i < len(s.Magnitude); i++ {
		if best < 0 || s.Magnitude[i] > s.Magnitude[best] {
			best = i
		}
	}

	if best < 0 {
		return 0, 0
	}

	return s.Freq(best), s.Magnitude[best]
}

// Compute transforms one channel sampled at rate Hz into its one-sided
// amplitude spectrum.
func Compute(samples []float64, rate float64, opts ...Option) (Spectrum, error) {
	cfg := applyOptions(opts...)

	if len(samples) == 0 {
		return Spectrum{}, ErrEmptySignal
	}

	if rate <= 0 {
		return Spectrum{}, ErrInvalidRate
	}

	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Spectrum{}, ErrNonFinite
		}
	}

	buf := make([]float64, len(samples))
	copy(buf, samples)

	coherentSum := float64(len(samples))
	if !cfg.Rectangular {
		coeffs := hann(len(samples))
		vecmath.MulBlockInPlace(buf, coeffs)

		coherentSum = 0
		for _, c := range coeffs {
			coherentSum += c
		}
	}

	fftSize := nextPowerOf2(len(samples))
	if cfg.FFTSize > len(samples) {
		fftSize = nextPowerOf2(cfg.FFTSize)
	}

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1

	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	// Amplitude calibration: one-sided bins carry twice the two-sided
	// energy except DC and Nyquist.
	vecmath.ScaleBlock(mag, mag, 2/coherentSum)
	mag[0] /= 2
	mag[bins-1] /= 2

	return Spectrum{
		Magnitude: mag,
		BinWidth:  rate / float64(fftSize),
	}, nil
}

// hann returns the symmetric Hann window of length n.
func hann(n int) []float64 {
	coeffs := make([]float64, n)

	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}

	for i := range coeffs {
		coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}

	return coeffs
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
