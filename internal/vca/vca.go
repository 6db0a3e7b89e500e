// Package vca implements a modulatable gain stage.
package vca

// VCA scales its input by a fixed gain and a modulation-derived multiplier.
// The multiplier starts at 1 (unity) until the first SetModulation call.
type VCA struct {
	inputGain         float64
	modulationAmount  float64
	currentModulation float64
}

func New(inputGain, modulationAmount float64) VCA {
	return VCA{
		inputGain:         inputGain,
		modulationAmount:  modulationAmount,
		currentModulation: 1.0,
	}
}

func (v *VCA) Process(x float64) float64 {
	return x * v.inputGain * v.currentModulation
}

// SetModulation maps value from [-1, 1] to a gain multiplier centred on 1.
// With a modulation amount of 1 the multiplier spans [0.5, 1.5].
func (v *VCA) SetModulation(value float64) {
	normalized := (value + 1) * 0.5
	v.currentModulation = 1 + (normalized-0.5)*v.modulationAmount
}

func (v *VCA) Modulation() float64 { return v.currentModulation }
func (v *VCA) InputGain() float64 { return v.inputGain }
func (v *VCA) ModulationAmount() float64 { return v.modulationAmount }
