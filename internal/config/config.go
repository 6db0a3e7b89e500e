// Package config loads the harness configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cbegin/monosynth-go/internal/effects"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Backends accepted in the backend key.
var Backends = []string{"ebiten", "oto", "beep", "portaudio"}

type Config struct {
	SampleRate   int            `toml:"sample_rate"`
	Channels     int            `toml:"channels"`
	Backend      string         `toml:"backend"`
	BufferFrames int            `toml:"buffer_frames"`
	Seconds      float64        `toml:"seconds"`
	MasterVolume float64        `toml:"master_volume"`
	BitDepth     int            `toml:"bit_depth"`
	EQ           EQConfig       `toml:"eq"`
	Effects      []effects.Spec `toml:"effects"`
}

type EQConfig struct {
	Gains []float64 `toml:"gains"`
}

// Default mirrors the stock harness: 48 kHz stereo for four seconds.
func Default() Config {
	return Config{
		SampleRate:   48000,
		Channels:     2,
		Backend:      "ebiten",
		BufferFrames: 1024,
		Seconds:      4,
		MasterVolume: 1,
		BitDepth:     16,
	}
}

// ParseFromFile layers the file at path over Default and validates the result.
func ParseFromFile(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config at %q: %w", path, err)
	}
	cfg, err := Parse(string(bs))
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over Default and validates the result.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MaxSeconds bounds the seconds key.
const MaxSeconds = 3600

func (c *Config) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}
	switch {
	case c.SampleRate < 8000 || c.SampleRate > 192000:
		return fmt.Errorf("%w: sample_rate %d outside [8000, 192000]", ErrInvalid, c.SampleRate)
	case c.Channels < 1 || c.Channels > 8:
		return fmt.Errorf("%w: channels %d outside [1, 8]", ErrInvalid, c.Channels)
	case c.BufferFrames < 16:
		return fmt.Errorf("%w: buffer_frames %d below 16", ErrInvalid, c.BufferFrames)
	case c.Seconds < 0 || c.Seconds > MaxSeconds:
		return fmt.Errorf("%w: seconds %v outside [0, %d]", ErrInvalid, c.Seconds, MaxSeconds)
	case c.MasterVolume < 0:
		return fmt.Errorf("%w: master_volume %v is negative", ErrInvalid, c.MasterVolume)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("%w: bit_depth %d (expected 16|24|32)", ErrInvalid, c.BitDepth)
	case len(c.EQ.Gains) > effects.Bands:
		return fmt.Errorf("%w: eq has %d gains, at most %d", ErrInvalid, len(c.EQ.Gains), effects.Bands)
	}
	if !validBackend(c.Backend) {
		return fmt.Errorf("%w: backend %q (expected %s)", ErrInvalid, c.Backend, strings.Join(Backends, "|"))
	}
	for i, g := range c.EQ.Gains {
		if g < 0 {
			return fmt.Errorf("%w: eq gain %d is negative", ErrInvalid, i)
		}
	}
	for i, s := range c.Effects {
		if _, err := effects.New(s, c.SampleRate); err != nil {
			return fmt.Errorf("%w: effects[%d]: %v", ErrInvalid, i, err)
		}
	}
	return nil
}

// checkFinite rejects NaN and infinities, which TOML accepts as nan and inf.
func (c *Config) checkFinite() error {
	if !finite(c.Seconds) {
		return fmt.Errorf("%w: seconds %v is not finite", ErrInvalid, c.Seconds)
	}
	if !finite(c.MasterVolume) {
		return fmt.Errorf("%w: master_volume %v is not finite", ErrInvalid, c.MasterVolume)
	}
	for i, g := range c.EQ.Gains {
		if !finite(g) {
			return fmt.Errorf("%w: eq gain %d is %v", ErrInvalid, i, g)
		}
	}
	for i, s := range c.Effects {
		for j, p := range s.Params {
			if !finite(p) {
				return fmt.Errorf("%w: effects[%d] param %d is %v", ErrInvalid, i, j, p)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
