// Package filter implements the voice's resonant low-pass biquad.
package filter

import "math"

const (
	MinCutoff    = 20.0
	MaxCutoff    = 20000.0 // ceiling for the coefficient design frequency
	MinResonance = 0.1
	MaxResonance = 20.0

	// modulation sweep range for SetModulation
	ModMinCutoff = 400.0
	ModMaxCutoff = 4000.0
)

// Biquad is a second-order IIR low-pass filter. Coefficients always match
// the current cutoff and resonance.
//
// If an output sample is not finite, the history is cleared and the input is
// passed through unchanged for that sample.
type Biquad struct {
	sampleRate float64
	cutoff     float64
	resonance  float64

	// normalized coefficients
	a0, a1, a2 float64 // feed-forward
	b1, b2     float64 // feedback, stored negated (-a1/a0, -a2/a0)

	x1, x2 float64 // input history
	y1, y2 float64 // output history
}

// New returns a filter with cutoff clamped to [20, sampleRate/2] and
// resonance clamped to [0.1, 20]. It is returned by value so owners can
// replace it in place.
func New(sampleRate, cutoff, resonance float64) Biquad {
	f := Biquad{
		sampleRate: sampleRate,
		cutoff:     clamp(cutoff, MinCutoff, sampleRate/2),
		resonance:  clamp(resonance, MinResonance, MaxResonance),
	}
	f.updateCoefficients()
	return f
}

// Process filters one sample.
func (f *Biquad) Process(x float64) float64 {
	y := f.a0*x + f.a1*f.x1 + f.a2*f.x2 + f.b1*f.y1 + f.b2*f.y2

	if math.IsNaN(y) || math.IsInf(y, 0) {
		f.Reset()
		return x
	}

	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y
	return y
}

// SetModulation maps value from [-1, 1] onto a 400-4000 Hz cutoff and
// recomputes the coefficients. History is kept.
func (f *Biquad) SetModulation(value float64) {
	normalized := (value + 1) * 0.5
	f.cutoff = clamp(ModMinCutoff+normalized*(ModMaxCutoff-ModMinCutoff), MinCutoff, f.sampleRate/2)
	f.updateCoefficients()
}

// Modulation reports the cutoff currently in effect.
func (f *Biquad) Modulation() float64 { return f.cutoff }

func (f *Biquad) Cutoff() float64 { return f.cutoff }
func (f *Biquad) Resonance() float64 { return f.resonance }
func (f *Biquad) SampleRate() float64 { return f.sampleRate }

// Reset clears the input and output history.
func (f *Biquad) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

func (f *Biquad) updateCoefficients() {
	fc := clamp(f.cutoff, MinCutoff, math.Min(f.sampleRate/2, MaxCutoff))
	omega := 2 * math.Pi * fc / f.sampleRate
	cosOmega := math.Cos(omega)
	alpha := math.Sin(omega) / (2 * f.resonance)

	b0 := (1 - cosOmega) / 2
	b1 := 1 - cosOmega
	b2 := (1 - cosOmega) / 2
	a0 := 1 + alpha
	a1 := -2 * cosOmega
	a2 := 1 - alpha

	f.a0 = b0 / a0
	f.a1 = b1 / a0
	f.a2 = b2 / a0
	f.b1 = -a1 / a0
	f.b2 = -a2 / a0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
