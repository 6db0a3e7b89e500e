package effects

import (
	"math"
	"sync/atomic"
)

// Bands is the number of EQ5Band bands.
const Bands = 5

// EQ5Band is a 5-band master equalizer with runtime-adjustable gains.
// Bands are split at 200Hz, 800Hz, 2.5kHz, and 8kHz.
// Gains are stored as float64 bit patterns so the control thread can change
// them while the audio thread reads without locking.
type EQ5Band struct {
	gains  [Bands]atomic.Uint64
	alphas [Bands - 1]float64 // crossover filter coefficients
	lp     [Bands - 1]float64 // lowpass state per crossover
}

var defaultCrossovers = [Bands - 1]float64{200, 800, 2500, 8000}

// NewEQ5Band creates a 5-band EQ with all gains at unity.
func NewEQ5Band(sampleRate int) *EQ5Band {
	eq := &EQ5Band{}
	for i, freq := range defaultCrossovers {
		eq.alphas[i] = onePoleAlpha(sampleRate, freq)
	}
	for i := range eq.gains {
		eq.gains[i].Store(math.Float64bits(1.0))
	}
	return eq
}

// SetGain sets the gain for band (0-4). 1.0 = unity, 0.0 = silence, 2.0 = +6dB.
// Out-of-range bands are ignored; negative gains clamp to 0.
func (eq *EQ5Band) SetGain(band int, gain float64) {
	if band < 0 || band >= Bands {
		return
	}
	if gain < 0 || math.IsNaN(gain) {
		gain = 0
	}
	eq.gains[band].Store(math.Float64bits(gain))
}

// Gain returns the current gain for band (0-4), or 1 for an unknown band.
func (eq *EQ5Band) Gain(band int) float64 {
	if band >= 0 && band < Bands {
		return math.Float64frombits(eq.gains[band].Load())
	}
	return 1.0
}

// Flat reports whether every band is at unity.
func (eq *EQ5Band) Flat() bool {
	for i := range eq.gains {
		if math.Float64frombits(eq.gains[i].Load()) != 1 {
			return false
		}
	}
	return true
}

func (eq *EQ5Band) Process(x float64) float64 {
	// Band i < 4 is what crossover i removes from the remainder; band 4 is the rest.
	var out float64
	rem := x
	for i := range eq.alphas {
		eq.lp[i] += eq.alphas[i] * (rem - eq.lp[i])
		band := eq.lp[i]
		rem -= band
		out += band * math.Float64frombits(eq.gains[i].Load())
	}
	return out + rem*math.Float64frombits(eq.gains[Bands-1].Load())
}

func (eq *EQ5Band) Reset() {
	clear(eq.lp[:])
}
