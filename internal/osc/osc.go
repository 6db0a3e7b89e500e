// Package osc implements the audible phase-accumulator oscillators.
package osc

import "math"

const twoPi = math.Pi * 2

// Oscillator produces one raw waveform sample per call and advances its phase.
type Oscillator interface {
	Next() float64
}

// phasor tracks a normalized phase in [0, 1).
type phasor struct {
	freq       float64
	sampleRate float64
	phase      float64
}

func (p *phasor) advance() {
	p.phase += p.freq / p.sampleRate
	for p.phase >= 1.0 {
		p.phase -= 1.0
	}
}

// Sine is a pure sine oscillator.
type Sine struct {
	phasor
}

// NewSine returns a sine oscillator at phase 0.
func NewSine(freq, sampleRate float64) Sine {
	return Sine{phasor{freq: freq, sampleRate: sampleRate}}
}

func (s *Sine) Next() float64 {
	v := math.Sin(twoPi * s.phase)
	s.advance()
	return v
}

func (s *Sine) Phase() float64 { return s.phase }
func (s *Sine) Frequency() float64 { return s.freq }
func (s *Sine) SampleRate() float64 { return s.sampleRate }

// Square outputs +1 for the first half of the cycle and -1 for the second.
// The edges are not band-limited.
type Square struct {
	phasor
}

// NewSquare returns a square oscillator at phase 0.
func NewSquare(freq, sampleRate float64) Square {
	return Square{phasor{freq: freq, sampleRate: sampleRate}}
}

func (s *Square) Next() float64 {
	v := -1.0
	if s.phase < 0.5 {
		v = 1.0
	}
	s.advance()
	return v
}

func (s *Square) Phase() float64 { return s.phase }
func (s *Square) Frequency() float64 { return s.freq }
func (s *Square) SampleRate() float64 { return s.sampleRate }
