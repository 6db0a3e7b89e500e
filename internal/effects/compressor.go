package effects

import "math"

// Compressor is a feed-forward peak compressor with makeup gain.
type Compressor struct {
	threshold float64
	ratio     float64
	attack    float64 // coefficient
	release   float64 // coefficient
	makeup    float64
	env       float64
}

// NewCompressor creates a compressor effect.
// thresholdDB: threshold in dB (e.g., -20)
// ratio: compression ratio (e.g., 4 for 4:1)
// attackMs, releaseMs: envelope follower times
// makeupDB: makeup gain in dB
func NewCompressor(sampleRate int, thresholdDB, ratio, attackMs, releaseMs, makeupDB float64) *Compressor {
	sr := float64(sampleRate)
	if ratio < 1 {
		ratio = 1
	}
	return &Compressor{
		threshold: dbToGain(thresholdDB),
		ratio:     ratio,
		attack:    1.0 - math.Exp(-1.0/(math.Max(attackMs, 0.01)*sr/1000.0)),
		release:   1.0 - math.Exp(-1.0/(math.Max(releaseMs, 0.01)*sr/1000.0)),
		makeup:    dbToGain(makeupDB),
	}
}

func (c *Compressor) Process(x float64) float64 {
	a := math.Abs(x)
	if a > c.env {
		c.env += c.attack * (a - c.env)
	} else {
		c.env += c.release * (a - c.env)
	}
	return x * c.gain(c.env) * c.makeup
}

func (c *Compressor) gain(env float64) float64 {
	if env <= c.threshold || c.threshold <= 0 {
		return 1.0
	}
	over := env / c.threshold
	return math.Pow(over, 1.0/c.ratio-1)
}

func (c *Compressor) Reset() {
	c.env = 0
}

func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
