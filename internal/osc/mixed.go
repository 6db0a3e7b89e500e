package osc

// Mixed crossfades a sine and a square oscillator that share one frequency.
// A mix ratio of 0 is pure sine, 1 is pure square.
type Mixed struct {
	sine     Sine
	square   Square
	mixRatio float64
}

// NewMixed returns a mixed oscillator with the ratio clamped to [0, 1].
func NewMixed(freq, sampleRate, mixRatio float64) Mixed {
	return Mixed{
		sine:     NewSine(freq, sampleRate),
		square:   NewSquare(freq, sampleRate),
		mixRatio: clamp(mixRatio, 0, 1),
	}
}

func (m *Mixed) Next() float64 {
	s := m.sine.Next()
	q := m.square.Next()
	return (1-m.mixRatio)*s + m.mixRatio*q
}

// SetFrequency rebuilds both sub-oscillators at freq. Their phases restart
// at 0, so the waveform jumps if called mid-cycle.
func (m *Mixed) SetFrequency(freq float64) {
	sr := m.sine.SampleRate()
	m.sine = NewSine(freq, sr)
	m.square = NewSquare(freq, sr)
}

func (m *Mixed) SetMixRatio(ratio float64) {
	m.mixRatio = clamp(ratio, 0, 1)
}

func (m *Mixed) Frequency() float64 { return m.sine.Frequency() }
func (m *Mixed) MixRatio() float64 { return m.mixRatio }
func (m *Mixed) SampleRate() float64 { return m.sine.SampleRate() }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
