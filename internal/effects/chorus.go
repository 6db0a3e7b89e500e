package effects

import "github.com/cbegin/monosynth-go/internal/lfo"

// Chorus is a modulated delay; short delays with feedback give a flanger.
type Chorus struct {
	buf      []float64
	pos      int
	depth    float64 // modulation depth in samples
	sweep    lfo.LFO
	feedback float64
	wet      float64
}

// NewChorus creates a chorus/flanger effect.
// delayMs: base delay time in ms (typically 5-30ms)
// feedback: feedback amount 0..0.9
// depthMs: modulation depth in ms
// rateHz: modulation rate in Hz (typically 0.1-5Hz)
// wet: wet/dry mix 0..1
func NewChorus(sampleRate int, delayMs, feedback, depthMs, rateHz, wet float64) *Chorus {
	sr := float64(sampleRate)
	baseSamples := int(delayMs * sr / 1000.0)
	depthSamples := depthMs * sr / 1000.0
	size := max(baseSamples+int(depthSamples)+2, 4)
	return &Chorus{
		buf:      make([]float64, size),
		depth:    depthSamples,
		sweep:    lfo.New(rateHz, sr, lfo.ShapeSine),
		feedback: clamp(feedback, 0, 0.9),
		wet:      clamp(wet, 0, 1),
	}
}

func (c *Chorus) Process(x float64) float64 {
	mod := c.sweep.Next() * c.depth
	size := len(c.buf)
	c.buf[c.pos] = x

	// fractional read position
	readPos := float64(c.pos) - (float64(size/2) + mod)
	for readPos < 0 {
		readPos += float64(size)
	}
	idx := int(readPos) % size
	frac := readPos - float64(int(readPos))
	idx2 := idx + 1
	if idx2 >= size {
		idx2 = 0
	}
	del := c.buf[idx]*(1-frac) + c.buf[idx2]*frac

	c.buf[c.pos] += del * c.feedback
	c.pos++
	if c.pos >= size {
		c.pos = 0
	}
	return x*(1-c.wet) + del*c.wet
}

func (c *Chorus) Reset() {
	clear(c.buf)
	c.pos = 0
	c.sweep.Reset()
}
