package lfo

import (
	"math"
	"testing"
)

func TestLFOTriangleBasicShape(t *testing.T) {
	l := New(1.0, 128, ShapeTriangle) // 128 samples per cycle

	samples := make([]float64, 128)
	for i := range samples {
		samples[i] = l.Next()
	}

	if math.Abs(samples[0]-(-1.0)) > 1e-9 {
		t.Errorf("triangle at phase 0: got %f, want -1.0", samples[0])
	}
	if math.Abs(samples[32]) > 1e-9 {
		t.Errorf("triangle at phase 0.25: got %f, want 0", samples[32])
	}
	if math.Abs(samples[64]-1.0) > 1e-9 {
		t.Errorf("triangle at phase 0.5: got %f, want 1.0", samples[64])
	}
	if math.Abs(samples[96]) > 1e-9 {
		t.Errorf("triangle at phase 0.75: got %f, want 0", samples[96])
	}
}

func TestLFORampShape(t *testing.T) {
	l := New(1.0, 128, ShapeRamp)
	prev := l.Next()
	if prev != -1 {
		t.Fatalf("ramp at phase 0: got %f, want -1", prev)
	}
	for i := 1; i < 128; i++ {
		v := l.Next()
		if v <= prev {
			t.Fatalf("ramp not rising at %d: %f after %f", i, v, prev)
		}
		prev = v
	}
	if v := l.Next(); v != -1 {
		t.Fatalf("ramp after wrap: got %f, want -1", v)
	}
}

func TestLFOSineShape(t *testing.T) {
	l := New(1.0, 128, ShapeSine)
	for i := 0; i < 32; i++ {
		l.Next()
	}
	if v := l.Next(); math.Abs(v-1) > 1e-9 {
		t.Fatalf("sine at phase 0.25: got %f, want 1", v)
	}
}

func TestLFOSmoothSquareExceedsUnitBand(t *testing.T) {
	l := New(1.0, 128, ShapeSmoothSquare)
	var maxV, minV float64
	for i := 0; i < 128; i++ {
		v := l.Next()
		maxV = math.Max(maxV, v)
		minV = math.Min(minV, v)
	}
	want := 2 * math.Tanh(1)
	if math.Abs(maxV-want) > 1e-9 || math.Abs(minV+want) > 1e-9 {
		t.Fatalf("smooth square range [%f, %f], want ±%f", minV, maxV, want)
	}
}

func TestLFOUnknownShapeFallsBackToTriangle(t *testing.T) {
	l := New(1, 100, Shape(42))
	if l.Shape() != ShapeTriangle {
		t.Fatalf("shape = %v, want triangle", l.Shape())
	}
}

func TestParseShape(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Shape
		ok   bool
	}{
		{"sine", ShapeSine, true},
		{" Triangle ", ShapeTriangle, true},
		{"RAMP", ShapeRamp, true},
		{"smoothsquare", ShapeSmoothSquare, true},
		{"saw", ShapeTriangle, false},
	} {
		got, err := ParseShape(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseShape(%q) err = %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if ShapeRamp.String() != "ramp" || Shape(9).String() != "Shape(9)" {
		t.Fatal("unexpected Shape.String output")
	}
}

type recorder struct{ last float64 }

func (r *recorder) SetModulation(v float64) { r.last = v }
func (r *recorder) Modulation() float64 { return r.last }

func TestLFODriveScalesByDepth(t *testing.T) {
	l := New(1, 128, ShapeTriangle)
	var r recorder
	l.Drive(&r, 0.25)
	if r.Modulation() != -0.25 {
		t.Fatalf("driven value = %f, want -0.25", r.Modulation())
	}
}

func TestLFOReset(t *testing.T) {
	l := New(3, 100, ShapeSine)
	for i := 0; i < 17; i++ {
		l.Next()
	}
	l.Reset()
	if l.Phase() != 0 {
		t.Fatalf("phase after reset = %f", l.Phase())
	}
}

func TestLFONonFiniteRateStaysPut(t *testing.T) {
	for _, tc := range []struct {
		name        string
		rate, rate2 float64
		sr          float64
	}{
		{"+inf rate", math.Inf(1), 0, 48000},
		{"-inf rate", math.Inf(-1), 0, 48000},
		{"nan rate", math.NaN(), 0, 48000},
		{"zero sample rate", 2, 2, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := New(tc.rate, tc.sr, ShapeSine)
			if l.Rate() != tc.rate2 {
				t.Fatalf("rate = %v, want %v", l.Rate(), tc.rate2)
			}
			for i := 0; i < 100; i++ {
				if v := l.Next(); v != 0 {
					t.Fatalf("sample %d = %v, want 0", i, v)
				}
			}
			if l.Phase() != 0 {
				t.Fatalf("phase = %v, want 0", l.Phase())
			}
		})
	}
}

func TestLFOLargeAndNegativeStepsWrap(t *testing.T) {
	for _, rate := range []float64{1e12, -3.7, -1e9} {
		l := New(rate, 100, ShapeRamp)
		for i := 0; i < 1000; i++ {
			l.Next()
			if p := l.Phase(); p < 0 || p >= 1 {
				t.Fatalf("rate %v: phase %v outside [0, 1) at %d", rate, p, i)
			}
		}
	}
}
