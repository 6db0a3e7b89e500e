package effects

import (
	"fmt"
	"strings"
)

// Spec describes one effect in a configured chain. Missing params take
// the defaults listed in Build.
type Spec struct {
	Type   string    `toml:"type"`
	Params []float64 `toml:"params"`
}

// Build creates a chain from specs in order. It returns nil, nil for an
// empty spec list.
func Build(specs []Spec, sampleRate int) (*Chain, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	chain := NewChain()
	for i, s := range specs {
		eff, err := New(s, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		chain.Add(eff)
	}
	return chain, nil
}

// New creates a single effect from s.
func New(s Spec, sampleRate int) (Effector, error) {
	param := func(idx int, def float64) float64 {
		if idx < len(s.Params) {
			return s.Params[idx]
		}
		return def
	}
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "delay":
		return NewDelay(sampleRate,
			param(0, 250), // delay ms
			param(1, 0.4), // feedback
			param(2, 0.3), // wet
		), nil
	case "reverb":
		return NewReverb(sampleRate,
			param(0, 0.5),  // room size
			param(1, 0.7),  // feedback
			param(2, 0.25), // wet
		), nil
	case "chorus":
		return NewChorus(sampleRate,
			param(0, 15),  // delay ms
			param(1, 0.3), // feedback
			param(2, 3),   // depth ms
			param(3, 1.5), // rate Hz
			param(4, 0.4), // wet
		), nil
	case "dist", "distortion":
		return NewDistortion(sampleRate,
			param(0, 4),    // pre gain
			param(1, 0.5),  // post gain
			param(2, 8000), // lpf cutoff
		), nil
	case "eq":
		return NewEQ3Band(sampleRate,
			param(0, 1.0),  // low gain
			param(1, 1.0),  // mid gain
			param(2, 1.0),  // high gain
			param(3, 300),  // low freq
			param(4, 3000), // high freq
		), nil
	case "comp", "compressor":
		return NewCompressor(sampleRate,
			param(0, -20), // threshold dB
			param(1, 4),   // ratio
			param(2, 5),   // attack ms
			param(3, 100), // release ms
			param(4, 6),   // makeup dB
		), nil
	}
	return nil, fmt.Errorf("unknown effect type %q", s.Type)
}
