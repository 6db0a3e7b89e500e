// Package analysis measures rendered audio: magnitude spectrum, dominant
// frequency and level statistics.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/maddyblue/go-dsp/fft"
)

// Spectrum returns the single-sided magnitude spectrum of samples,
// normalized by the input length. Bin i covers i*sampleRate/len(samples) Hz.
func Spectrum(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(samples)
	mags := make([]float64, len(coeffs)/2+1)
	for i, c := range coeffs[:len(mags)] {
		mags[i] = cmplx.Abs(c) / float64(len(samples))
	}
	return mags
}

// BinFrequency converts a spectrum bin index to Hz.
func BinFrequency(bin, n int, sampleRate float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(n)
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(samples []float64, sampleRate float64) float64 {
	mags := Spectrum(samples)
	best, bestMag := 0, 0.0
	for i := 1; i < len(mags); i++ {
		if mags[i] > bestMag {
			best, bestMag = i, mags[i]
		}
	}
	return BinFrequency(best, len(samples), sampleRate)
}

// BandEnergy sums squared magnitudes of the bins whose centre lies in [lo, hi) Hz.
func BandEnergy(samples []float64, sampleRate, lo, hi float64) float64 {
	mags := Spectrum(samples)
	var e float64
	for i, m := range mags {
		f := BinFrequency(i, len(samples), sampleRate)
		if f >= lo && f < hi {
			e += m * m
		}
	}
	return e
}

// Stats summarizes the level of a signal.
type Stats struct {
	RMS       float64
	Peak      float64
	NonFinite int
}

func Measure(samples []float64) Stats {
	var st Stats
	var sum float64
	n := 0
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			st.NonFinite++
			continue
		}
		sum += v * v
		if a := math.Abs(v); a > st.Peak {
			st.Peak = a
		}
		n++
	}
	if n > 0 {
		st.RMS = math.Sqrt(sum / float64(n))
	}
	return st
}

// Float32 widens an interleaved float32 buffer, keeping only the given channel.
func Float32(interleaved []float32, channels, channel int) []float64 {
	if channels < 1 || channel < 0 || channel >= channels {
		return nil
	}
	out := make([]float64, 0, len(interleaved)/channels)
	for i := channel; i < len(interleaved); i += channels {
		out = append(out, float64(interleaved[i]))
	}
	return out
}
