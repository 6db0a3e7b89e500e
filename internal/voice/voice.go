// Package voice wires oscillator, filter, LFO and VCA into a monophonic
// subtractive voice that renders one sample per call.
package voice

import (
	"math"

	"github.com/cbegin/monosynth-go/internal/filter"
	"github.com/cbegin/monosynth-go/internal/lfo"
	"github.com/cbegin/monosynth-go/internal/osc"
	"github.com/cbegin/monosynth-go/internal/vca"
)

// Defaults applied by New.
const (
	DefaultFrequency = 440.0
	DefaultMixRatio  = 0.3
	DefaultCutoff    = 1000.0
	DefaultResonance = 0.1
	DefaultLFORate   = 0.5
	DefaultLFOShape  = lfo.ShapeTriangle
	DefaultVCAGain   = 0.5
	DefaultVCAAmount = 0.8
)

// Safe ranges for the setters. Cutoff is additionally capped at Nyquist.
const (
	MinFrequency = 20.0
	MaxFrequency = 20000.0
	MinCutoff    = 20.0
	MinResonance = 0.1
	MaxResonance = 10.0
	MinLFORate   = 0.01
	MaxLFORate   = 20.0
)

const (
	filterLFODepth = 0.25
	headroom       = 0.5 // applied between filter and VCA
)

// Voice owns one of each component. It is not safe for concurrent use;
// callers that update parameters from another goroutine must serialize
// access themselves.
type Voice struct {
	sampleRate float64
	osc        osc.Mixed
	filter     filter.Biquad
	filterLFO  lfo.LFO
	vca        vca.VCA
}

// New builds a voice with the package defaults.
func New(sampleRate float64) *Voice {
	return &Voice{
		sampleRate: sampleRate,
		osc:        osc.NewMixed(DefaultFrequency, sampleRate, DefaultMixRatio),
		filter:     filter.New(sampleRate, DefaultCutoff, DefaultResonance),
		filterLFO:  lfo.New(DefaultLFORate, sampleRate, DefaultLFOShape),
		vca:        vca.New(DefaultVCAGain, DefaultVCAAmount),
	}
}

// ProcessSample renders the next output sample. It never allocates.
func (v *Voice) ProcessSample() float64 {
	x := v.osc.Next()
	v.filterLFO.Drive(&v.filter, filterLFODepth)
	y := v.filter.Process(x)
	return v.vca.Process(y * headroom)
}

// SetFrequency retunes the oscillator, clamped to [20, 20000] Hz.
func (v *Voice) SetFrequency(freq float64) {
	v.osc.SetFrequency(clamp(freq, MinFrequency, MaxFrequency))
}

// SetFilterCutoff rebuilds the filter at the new cutoff, clamped to
// [20, sampleRate/2] Hz, keeping the resonance. Filter history is lost.
func (v *Voice) SetFilterCutoff(cutoff float64) {
	c := clamp(cutoff, MinCutoff, v.sampleRate/2)
	v.filter = filter.New(v.sampleRate, c, v.filter.Resonance())
}

// SetFilterResonance rebuilds the filter with resonance clamped to
// [0.1, 10], keeping the cutoff. Filter history is lost.
func (v *Voice) SetFilterResonance(q float64) {
	v.filter = filter.New(v.sampleRate, v.filter.Cutoff(), clamp(q, MinResonance, MaxResonance))
}

// SetFilterLFORate rebuilds the filter LFO at a rate clamped to
// [0.01, 20] Hz. The LFO restarts from phase 0.
func (v *Voice) SetFilterLFORate(rate float64) {
	v.filterLFO = lfo.New(clamp(rate, MinLFORate, MaxLFORate), v.sampleRate, v.filterLFO.Shape())
}

// SetFilterLFOShape rebuilds the filter LFO with a new waveform at the
// current rate.
func (v *Voice) SetFilterLFOShape(shape lfo.Shape) {
	v.filterLFO = lfo.New(v.filterLFO.Rate(), v.sampleRate, shape)
}

// SetMixRatio sets the sine/square crossfade, clamped to [0, 1].
func (v *Voice) SetMixRatio(ratio float64) {
	v.osc.SetMixRatio(clamp(ratio, 0, 1))
}

func (v *Voice) SampleRate() float64 { return v.sampleRate }
func (v *Voice) Frequency() float64 { return v.osc.Frequency() }
func (v *Voice) MixRatio() float64 { return v.osc.MixRatio() }

// FilterCutoff reports the cutoff currently in effect, which follows the
// LFO sweep once samples are rendered.
func (v *Voice) FilterCutoff() float64 { return v.filter.Cutoff() }

func (v *Voice) FilterResonance() float64 { return v.filter.Resonance() }
func (v *Voice) FilterLFORate() float64 { return v.filterLFO.Rate() }
func (v *Voice) FilterLFOShape() lfo.Shape { return v.filterLFO.Shape() }

// clamp maps NaN to lo so no setter can push a NaN into the signal path.
func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
