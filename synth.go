// Package monosynth renders a monophonic subtractive synth voice and
// streams it to an audio device or a WAV file.
package monosynth

import (
	"errors"
	"math"
	"sync/atomic"

	intfx "github.com/cbegin/monosynth-go/internal/effects"
	"github.com/cbegin/monosynth-go/internal/lfo"
	"github.com/cbegin/monosynth-go/internal/voice"
)

// Shape selects the filter LFO waveform.
type Shape = lfo.Shape

const (
	ShapeSine         = lfo.ShapeSine
	ShapeTriangle     = lfo.ShapeTriangle
	ShapeRamp         = lfo.ShapeRamp
	ShapeSmoothSquare = lfo.ShapeSmoothSquare
)

// ParseShape maps "sine", "triangle", "ramp" or "smoothsquare" to a Shape.
func ParseShape(name string) (Shape, error) { return lfo.ParseShape(name) }

type param uint

const (
	paramFrequency param = iota
	paramCutoff
	paramResonance
	paramLFORate
	paramLFOShape
	paramMixRatio
	numParams
)

type Option func(*synthConfig)

type synthConfig struct {
	channels  int
	effects   *intfx.Chain
	sampleTap func([]float32)
}

func defaultSynthConfig() synthConfig {
	return synthConfig{channels: 2}
}

// WithChannels sets the number of interleaved output channels (1-8). Every
// channel carries the same mono voice.
func WithChannels(n int) Option {
	return func(cfg *synthConfig) {
		cfg.channels = n
	}
}

// WithEffects installs a post-voice effect chain.
func WithEffects(chain *intfx.Chain) Option {
	return func(cfg *synthConfig) {
		cfg.effects = chain
	}
}

// WithSampleTap installs a callback invoked with each generated buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) Option {
	return func(cfg *synthConfig) {
		cfg.sampleTap = tap
	}
}

// Synth drives a Voice from the audio thread while accepting parameter
// changes from any goroutine. Setters publish values through atomics and the
// audio thread applies them at the start of the next buffer, so neither side
// locks or allocates.
type Synth struct {
	voice      *voice.Voice
	sampleRate int
	channels   int
	effects    *intfx.Chain
	masterEQ   *intfx.EQ5Band
	sampleTap  func([]float32)

	requested [numParams]atomic.Uint64 // float64 bits, last value per param
	dirty     atomic.Uint32            // one bit per param awaiting the audio thread
	volume    atomic.Uint64
}

func NewSynth(sampleRate int, opts ...Option) (*Synth, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultSynthConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.channels < 1 || cfg.channels > 8 {
		return nil, errors.New("channels must be between 1 and 8")
	}
	v := voice.New(float64(sampleRate))
	s := &Synth{
		voice:      v,
		sampleRate: sampleRate,
		channels:   cfg.channels,
		effects:    cfg.effects,
		masterEQ:   intfx.NewEQ5Band(sampleRate),
		sampleTap:  cfg.sampleTap,
	}
	s.store(paramFrequency, v.Frequency())
	s.store(paramCutoff, v.FilterCutoff())
	s.store(paramResonance, v.FilterResonance())
	s.store(paramLFORate, v.FilterLFORate())
	s.store(paramLFOShape, float64(v.FilterLFOShape()))
	s.store(paramMixRatio, v.MixRatio())
	s.volume.Store(math.Float64bits(1))
	return s, nil
}

func (s *Synth) SampleRate() int { return s.sampleRate }
func (s *Synth) Channels() int { return s.channels }

// SetFrequency sets the oscillator pitch in Hz, clamped to [20, 20000].
func (s *Synth) SetFrequency(hz float64) {
	s.publish(paramFrequency, clamp(hz, voice.MinFrequency, voice.MaxFrequency))
}

// SetFilterCutoff sets the base filter cutoff in Hz, clamped to
// [20, sampleRate/2]. The filter LFO sweeps the cutoff once rendering runs.
func (s *Synth) SetFilterCutoff(hz float64) {
	s.publish(paramCutoff, clamp(hz, voice.MinCutoff, float64(s.sampleRate)/2))
}

// SetFilterResonance sets Q, clamped to [0.1, 10].
func (s *Synth) SetFilterResonance(q float64) {
	s.publish(paramResonance, clamp(q, voice.MinResonance, voice.MaxResonance))
}

// SetFilterLFORate sets the filter sweep rate in Hz, clamped to [0.01, 20].
func (s *Synth) SetFilterLFORate(hz float64) {
	s.publish(paramLFORate, clamp(hz, voice.MinLFORate, voice.MaxLFORate))
}

// SetFilterLFOShape selects the filter sweep waveform.
func (s *Synth) SetFilterLFOShape(shape Shape) {
	if shape < ShapeSine || shape > ShapeSmoothSquare {
		shape = ShapeTriangle
	}
	s.publish(paramLFOShape, float64(shape))
}

// SetMixRatio sets the sine/square crossfade, clamped to [0, 1].
func (s *Synth) SetMixRatio(ratio float64) {
	s.publish(paramMixRatio, clamp(ratio, 0, 1))
}

// SetMasterVolume sets the output scalar. 1.0 is default; negative or
// non-finite values clamp to 0.
func (s *Synth) SetMasterVolume(volume float64) {
	if volume < 0 || math.IsNaN(volume) || math.IsInf(volume, 0) {
		volume = 0
	}
	s.volume.Store(math.Float64bits(volume))
}

// SetEQBand sets the gain for a master EQ band (0-4). 1.0 = unity.
// Band frequencies: 0=<200Hz, 1=200-800Hz, 2=800-2.5kHz, 3=2.5-8kHz, 4=>8kHz.
func (s *Synth) SetEQBand(band int, gain float64) {
	s.masterEQ.SetGain(band, gain)
}

func (s *Synth) Frequency() float64 { return s.load(paramFrequency) }
func (s *Synth) FilterCutoff() float64 { return s.load(paramCutoff) }
func (s *Synth) FilterResonance() float64 { return s.load(paramResonance) }
func (s *Synth) FilterLFORate() float64 { return s.load(paramLFORate) }
func (s *Synth) FilterLFOShape() Shape { return Shape(s.load(paramLFOShape)) }
func (s *Synth) MixRatio() float64 { return s.load(paramMixRatio) }
func (s *Synth) MasterVolume() float64 { return math.Float64frombits(s.volume.Load()) }
func (s *Synth) EQBand(band int) float64 { return s.masterEQ.Gain(band) }

// Next renders one mono sample through the voice, effects, EQ and master
// volume. It is the single-sample form of Process and is not clipped.
func (s *Synth) Next() float64 {
	s.applyPending()
	return s.render(!s.masterEQ.Flat(), s.MasterVolume())
}

// Process fills dst with interleaved frames, clipped to [-1, 1]. Non-finite
// samples are written as silence. A trailing partial frame is zeroed. Call it from one goroutine only.
func (s *Synth) Process(dst []float32) {
	s.applyPending()
	eq := !s.masterEQ.Flat()
	vol := s.MasterVolume()
	ch := s.channels
	i := 0
	for ; i+ch <= len(dst); i += ch {
		y := clip(s.render(eq, vol))
		for c := 0; c < ch; c++ {
			dst[i+c] = y
		}
	}
	clear(dst[i:])
	if s.sampleTap != nil {
		s.sampleTap(dst)
	}
}

func (s *Synth) render(eq bool, vol float64) float64 {
	x := s.voice.ProcessSample()
	if s.effects != nil {
		x = s.effects.Process(x)
	}
	if eq {
		x = s.masterEQ.Process(x)
	}
	return x * vol
}

func (s *Synth) store(p param, v float64) {
	s.requested[p].Store(math.Float64bits(v))
}

func (s *Synth) load(p param) float64 {
	return math.Float64frombits(s.requested[p].Load())
}

func (s *Synth) publish(p param, v float64) {
	s.store(p, v)
	s.dirty.Or(1 << p)
}

// applyPending runs on the audio thread.
func (s *Synth) applyPending() {
	bits := s.dirty.Swap(0)
	if bits == 0 {
		return
	}
	for p := param(0); p < numParams; p++ {
		if bits&(1<<p) == 0 {
			continue
		}
		v := s.load(p)
		switch p {
		case paramFrequency:
			s.voice.SetFrequency(v)
		case paramCutoff:
			s.voice.SetFilterCutoff(v)
		case paramResonance:
			s.voice.SetFilterResonance(v)
		case paramLFORate:
			s.voice.SetFilterLFORate(v)
		case paramLFOShape:
			s.voice.SetFilterLFOShape(Shape(v))
		case paramMixRatio:
			s.voice.SetMixRatio(v)
		}
	}
}

// clip bounds an output sample to [-1, 1] and silences NaN.
func clip(x float64) float32 {
	switch {
	case math.IsNaN(x):
		return 0
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return float32(x)
}

// clamp maps NaN to lo; it is for parameters, not samples.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
