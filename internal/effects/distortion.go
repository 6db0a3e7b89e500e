package effects

import "math"

// Distortion is tanh waveshaping with pre/post gain and an optional one-pole LPF.
type Distortion struct {
	preGain  float64
	postGain float64
	lpfAlpha float64
	lpf      float64
}

// NewDistortion creates a distortion effect.
// preGain: input gain (higher = more distortion)
// postGain: output gain
// lpfCutoff: lowpass filter cutoff in Hz (0 = no filter)
func NewDistortion(sampleRate int, preGain, postGain, lpfCutoff float64) *Distortion {
	d := &Distortion{
		preGain:  preGain,
		postGain: postGain,
	}
	if lpfCutoff > 0 && lpfCutoff < float64(sampleRate)/2 {
		d.lpfAlpha = onePoleAlpha(sampleRate, lpfCutoff)
	}
	return d
}

func (d *Distortion) Process(x float64) float64 {
	x = math.Tanh(x*d.preGain) * d.postGain
	if d.lpfAlpha > 0 {
		d.lpf += d.lpfAlpha * (x - d.lpf)
		x = d.lpf
	}
	return x
}

func (d *Distortion) Reset() {
	d.lpf = 0
}

// onePoleAlpha returns the smoothing coefficient of an RC low-pass at freq.
func onePoleAlpha(sampleRate int, freq float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * freq)
	dt := 1.0 / float64(sampleRate)
	return dt / (rc + dt)
}
