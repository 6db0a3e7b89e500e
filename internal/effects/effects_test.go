package effects

import (
	"math"
	"testing"
)

func TestDelayProducesOutput(t *testing.T) {
	d := NewDelay(44100, 100, 0.5, 0.5)
	// Feed a pulse and check delayed output appears
	d.Process(1.0)
	for i := 0; i < 4409; i++ { // ~100ms at 44100Hz
		d.Process(0)
	}
	if out := d.Process(0); math.Abs(out) < 0.01 {
		t.Errorf("expected delayed output, got %f", out)
	}
}

func TestDelayResetClearsLine(t *testing.T) {
	d := NewDelay(1000, 10, 0.9, 1)
	d.Process(1)
	d.Reset()
	for i := 0; i < 50; i++ {
		if out := d.Process(0); out != 0 {
			t.Fatalf("output after reset = %f at %d", out, i)
		}
	}
}

func TestReverbProducesOutput(t *testing.T) {
	r := NewReverb(44100, 0.5, 0.7, 0.5)
	r.Process(1.0)
	var maxOut float64
	for i := 0; i < 10000; i++ {
		maxOut = math.Max(maxOut, r.Process(0))
	}
	if maxOut < 0.001 {
		t.Error("expected reverb tail")
	}
}

func TestChorusTailAppears(t *testing.T) {
	c := NewChorus(44100, 15, 0.3, 3, 1.5, 0.5)
	c.Process(1.0)
	var maxOut float64
	for i := 0; i < 2000; i++ {
		maxOut = math.Max(maxOut, math.Abs(c.Process(0)))
	}
	if maxOut < 0.01 {
		t.Errorf("expected delayed chorus output, max=%f", maxOut)
	}
}

func TestChorusNonFiniteRateReturns(t *testing.T) {
	for _, rate := range []float64{math.Inf(1), math.NaN()} {
		c := NewChorus(48000, 15, 0.3, 3, rate, 0.4)
		for i := 0; i < 1000; i++ {
			if out := c.Process(0.5); math.IsNaN(out) || math.IsInf(out, 0) {
				t.Fatalf("rate %v: non-finite output %v at %d", rate, out, i)
			}
		}
	}
}

func TestDistortionClips(t *testing.T) {
	d := NewDistortion(44100, 10, 0.5, 0)
	out := d.Process(0.5)
	// With high pregain, tanh should compress the signal
	if math.Abs(out) > 0.5 {
		t.Errorf("distortion output should be bounded by post gain, got %f", out)
	}
	if math.Abs(out) < 0.01 {
		t.Error("expected non-zero distortion output")
	}
}

func TestChainAppliesEffectsInOrder(t *testing.T) {
	c := NewChain(
		NewDistortion(44100, 2, 1, 0),
		NewDelay(44100, 10, 0, 0.5),
	)
	if out := c.Process(0.5); out == 0 {
		t.Error("chain should produce output")
	}
	want := math.Tanh(1) * 0.5 // dry half of the delay's mix
	c.Reset()
	if out := c.Process(0.5); math.Abs(out-want) > 1e-12 {
		t.Errorf("chain output = %f, want %f", out, want)
	}
}

func TestEQ3BandUnityGain(t *testing.T) {
	eq := NewEQ3Band(44100, 1.0, 1.0, 1.0, 300, 3000)
	// With unity gains, output should approximate input after warmup
	for i := 0; i < 1000; i++ {
		eq.Process(0.5)
	}
	if out := eq.Process(0.5); math.Abs(out-0.5) > 0.1 {
		t.Errorf("expected ~0.5 with unity gains, got %f", out)
	}
}

func TestEQ5BandFlatIsTransparent(t *testing.T) {
	eq := NewEQ5Band(48000)
	if !eq.Flat() {
		t.Fatal("new EQ should be flat")
	}
	for i := 0; i < 500; i++ {
		x := math.Sin(float64(i) * 0.37)
		if out := eq.Process(x); math.Abs(out-x) > 1e-12 {
			t.Fatalf("flat EQ changed sample %d: %f -> %f", i, x, out)
		}
	}
}

func TestEQ5BandGains(t *testing.T) {
	eq := NewEQ5Band(48000)
	eq.SetGain(0, 0)
	eq.SetGain(2, -3)
	eq.SetGain(9, 4)
	if eq.Gain(0) != 0 || eq.Gain(2) != 0 || eq.Gain(9) != 1 {
		t.Fatalf("gains = %v %v %v", eq.Gain(0), eq.Gain(2), eq.Gain(9))
	}
	if eq.Flat() {
		t.Fatal("EQ with a muted band should not be flat")
	}
	// a DC input lives entirely in band 0 once settled
	var out float64
	for i := 0; i < 48000; i++ {
		out = eq.Process(1)
	}
	if math.Abs(out) > 0.01 {
		t.Errorf("muted low band should remove DC, got %f", out)
	}
}

func TestCompressorReducesLoud(t *testing.T) {
	c := NewCompressor(44100, -10, 4, 1, 50, 0)
	var out float64
	for i := 0; i < 1000; i++ {
		out = c.Process(1.0)
	}
	if out >= 1.0 {
		t.Errorf("compressor should reduce loud signals, got %f", out)
	}
}

func TestBuild(t *testing.T) {
	chain, err := Build([]Spec{
		{Type: "delay", Params: []float64{50}},
		{Type: "Reverb"},
		{Type: "chorus"},
		{Type: "dist", Params: []float64{2, 1}},
		{Type: "eq"},
		{Type: "comp"},
	}, 48000)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if chain.Len() != 6 {
		t.Fatalf("chain length = %d, want 6", chain.Len())
	}
	for i := 0; i < 1000; i++ {
		if out := chain.Process(math.Sin(float64(i) * 0.1)); math.IsNaN(out) || math.IsInf(out, 0) {
			t.Fatalf("non-finite chain output at %d", i)
		}
	}

	if chain, err := Build(nil, 48000); chain != nil || err != nil {
		t.Fatalf("empty build = %v, %v; want nil, nil", chain, err)
	}
	if _, err := Build([]Spec{{Type: "wah"}}, 48000); err == nil {
		t.Fatal("expected error for unknown effect")
	}
}
