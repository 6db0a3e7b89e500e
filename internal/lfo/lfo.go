package lfo

import (
	"fmt"
	"math"
	"strings"
)

const twoPi = math.Pi * 2

// Shape selects the LFO waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeTriangle
	ShapeRamp
	ShapeSmoothSquare
)

var shapeNames = [...]string{
	ShapeSine:         "sine",
	ShapeTriangle:     "triangle",
	ShapeRamp:         "ramp",
	ShapeSmoothSquare: "smoothsquare",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape maps a case-insensitive name ("sine", "triangle", "ramp",
// "smoothsquare") to a Shape.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return ShapeTriangle, fmt.Errorf("unknown lfo shape %q (expected sine|triangle|ramp|smoothsquare)", name)
}

// Modulatable is implemented by anything an LFO can drive.
type Modulatable interface {
	SetModulation(value float64)
	Modulation() float64
}

// LFO is a low-frequency oscillator used as a control source, never as audio.
type LFO struct {
	rateHz     float64
	sampleRate float64
	shape      Shape
	step       float64 // phase increment per sample
	phase      float64 // current phase [0, 1)
}

// New returns an LFO at phase 0. Out-of-range shapes fall back to triangle.
// A rate that is not finite, or one that cannot be stepped at sampleRate,
// leaves the LFO frozen at phase 0.
func New(rateHz, sampleRate float64, shape Shape) LFO {
	if shape < ShapeSine || shape > ShapeSmoothSquare {
		shape = ShapeTriangle
	}
	if math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		rateHz = 0
	}
	step := rateHz / sampleRate
	if math.IsNaN(step) || math.IsInf(step, 0) {
		step = 0
	}
	return LFO{rateHz: rateHz, sampleRate: sampleRate, shape: shape, step: step}
}

// Next returns the current waveform value and advances one sample.
// Values are in [-1, 1] except ShapeSmoothSquare, which peaks at 2*tanh(1).
func (l *LFO) Next() float64 {
	var v float64
	switch l.shape {
	case ShapeSine:
		v = math.Sin(twoPi * l.phase)
	case ShapeRamp:
		v = 2.0*l.phase - 1.0
	case ShapeSmoothSquare:
		v = math.Tanh(math.Sin(twoPi*l.phase)) * 2.0
	default: // ShapeTriangle
		if l.phase < 0.5 {
			v = 4.0*l.phase - 1.0
		} else {
			v = 3.0 - 4.0*l.phase
		}
	}

	l.phase += l.step
	if l.phase >= 1.0 || l.phase < 0 {
		l.phase -= math.Floor(l.phase)
		if l.phase >= 1.0 { // tiny negative phases round up to 1
			l.phase = 0
		}
	}
	return v
}

// Drive pulls one sample, scales it by depth and hands it to target.
func (l *LFO) Drive(target Modulatable, depth float64) {
	target.SetModulation(l.Next() * depth)
}

func (l *LFO) Rate() float64 { return l.rateHz }
func (l *LFO) Shape() Shape { return l.shape }
func (l *LFO) Phase() float64 { return l.phase }

// Reset zeros the LFO phase.
func (l *LFO) Reset() {
	l.phase = 0
}
