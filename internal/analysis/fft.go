package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooShort indicates a series too short to analyse.
	ErrTooShort = errors.New("analysis: series too short")

	// ErrNoOscillation indicates a series with no spectral peak above DC.
	ErrNoOscillation = errors.New("analysis: no oscillation found")
)

// PowerSpectrum returns |X(k)| for k in [0, n/2) of the mean-removed series.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in data
// sampled every sampleDt time units.
func DominantPeriod(data []float64, sampleDt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	ps := PowerSpectrum(data)

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, ErrNoOscillation
	}

	freq := float64(maxIdx) / (float64(len(data)) * sampleDt)
	return 1 / freq, nil
}
