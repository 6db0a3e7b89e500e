package osc

import (
	"math"
	"testing"

	"github.com/cbegin/monosynth-go/internal/analysis"
)

func TestSineReturnsToStartPhaseAfterOnePeriod(t *testing.T) {
	for _, tc := range []struct {
		freq, sr float64
	}{
		{440, 44100},
		{1000, 48000},
		{20, 8000},
		{4000, 8000},
		{3, 96000},
	} {
		s := NewSine(tc.freq, tc.sr)
		step := tc.freq / tc.sr
		n := int(math.Round(tc.sr / tc.freq))
		for i := 0; i < n; i++ {
			s.Next()
		}
		dist := math.Min(s.Phase(), 1-s.Phase())
		if dist > step+1e-9 {
			t.Errorf("f=%v sr=%v: phase %f not within one step (%f) of 0", tc.freq, tc.sr, s.Phase(), step)
		}
	}
}

func TestPhaseStaysInUnitInterval(t *testing.T) {
	s := NewSine(7919, 8000)
	q := NewSquare(3999.5, 8000)
	for i := 0; i < 100000; i++ {
		s.Next()
		q.Next()
		if p := s.Phase(); p < 0 || p >= 1 {
			t.Fatalf("sine phase out of range at %d: %f", i, p)
		}
		if p := q.Phase(); p < 0 || p >= 1 {
			t.Fatalf("square phase out of range at %d: %f", i, p)
		}
	}
}

func TestSineStartsAtZero(t *testing.T) {
	s := NewSine(440, 44100)
	if v := s.Next(); v != 0 {
		t.Fatalf("first sine sample = %f, want 0", v)
	}
	// quarter cycle at 100 samples per cycle
	s = NewSine(1, 100)
	for i := 0; i < 25; i++ {
		s.Next()
	}
	if v := s.Next(); math.Abs(v-1) > 1e-9 {
		t.Fatalf("sine at phase 0.25 = %f, want 1", v)
	}
}

func TestSquareOnlyEmitsUnitValues(t *testing.T) {
	q := NewSquare(441.3, 44100)
	var highs, lows int
	for i := 0; i < 44100; i++ {
		switch v := q.Next(); v {
		case 1:
			highs++
		case -1:
			lows++
		default:
			t.Fatalf("square sample %d = %f, want +1 or -1", i, v)
		}
	}
	if highs == 0 || lows == 0 {
		t.Fatalf("expected both polarities, highs=%d lows=%d", highs, lows)
	}
}

func TestSquareHalfCycles(t *testing.T) {
	q := NewSquare(1, 64)
	for i := 0; i < 64; i++ {
		v := q.Next()
		want := 1.0
		if i >= 32 {
			want = -1
		}
		if v != want {
			t.Fatalf("sample %d = %f, want %f", i, v, want)
		}
	}
}

func TestMixedEndpointsMatchPureWaveforms(t *testing.T) {
	const sr = 44100.0
	for _, tc := range []struct {
		name  string
		ratio float64
		ref   Oscillator
	}{
		{"sine", 0, func() Oscillator { s := NewSine(440, sr); return &s }()},
		{"square", 1, func() Oscillator { q := NewSquare(440, sr); return &q }()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMixed(440, sr, tc.ratio)
			for i := 0; i < 5000; i++ {
				got, want := m.Next(), tc.ref.Next()
				if math.Abs(got-want) > 1e-12 {
					t.Fatalf("sample %d: got %f, want %f", i, got, want)
				}
			}
		})
	}
}

func TestMixedCrossfadeIsLinear(t *testing.T) {
	m := NewMixed(100, 10000, 0.25)
	s := NewSine(100, 10000)
	q := NewSquare(100, 10000)
	for i := 0; i < 1000; i++ {
		want := 0.75*s.Next() + 0.25*q.Next()
		if got := m.Next(); math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got %f, want %f", i, got, want)
		}
	}
}

func TestMixedRatioClamps(t *testing.T) {
	m := NewMixed(440, 44100, 3)
	if m.MixRatio() != 1 {
		t.Fatalf("ratio = %f, want 1", m.MixRatio())
	}
	m.SetMixRatio(-0.5)
	if m.MixRatio() != 0 {
		t.Fatalf("ratio = %f, want 0", m.MixRatio())
	}
}

func TestMixedSetFrequencyRestartsPhase(t *testing.T) {
	m := NewMixed(440, 44100, 0)
	for i := 0; i < 37; i++ {
		m.Next()
	}
	m.SetFrequency(880)
	if m.Frequency() != 880 {
		t.Fatalf("frequency = %f, want 880", m.Frequency())
	}
	if v := m.Next(); v != 0 {
		t.Fatalf("first sample after retune = %f, want 0 (phase reset)", v)
	}
}

func TestSineDominantFrequency(t *testing.T) {
	const sr = 8192
	s := NewSine(512, sr)
	buf := make([]float64, sr)
	for i := range buf {
		buf[i] = s.Next()
	}
	got := analysis.DominantFrequency(buf, sr)
	if math.Abs(got-512) > 2 {
		t.Fatalf("dominant frequency = %f, want 512", got)
	}
}

func BenchmarkMixedNext(b *testing.B) {
	m := NewMixed(440, 48000, 0.3)
	for i := 0; i < b.N; i++ {
		m.Next()
	}
}
