package monosynth

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/cbegin/monosynth-go/internal/analysis"
)

func TestRenderIsDeterministic(t *testing.T) {
	render := func() []float32 {
		s, err := NewSynth(22050, WithChannels(1))
		if err != nil {
			t.Fatalf("new synth: %v", err)
		}
		s.SetFrequency(300)
		s.SetFilterResonance(4)
		return Render(s, 0.5)
	}
	a, b := render(), render()
	if len(a) != 11025 || len(b) != len(a) {
		t.Fatalf("lengths %d and %d, want 11025", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("renders diverge at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRenderInterleavesChannels(t *testing.T) {
	s, err := NewSynth(48000, WithChannels(3))
	if err != nil {
		t.Fatalf("new synth: %v", err)
	}
	out := Render(s, 0.1)
	if len(out) != 4800*3 {
		t.Fatalf("len = %d, want %d", len(out), 4800*3)
	}
	stats := analysis.Measure(analysis.Float32(out, 3, 2))
	if stats.NonFinite != 0 || stats.Peak == 0 {
		t.Fatalf("channel 2 stats = %+v", stats)
	}
	for _, secs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if out := Render(s, secs); out != nil {
			t.Fatalf("Render(%v) returned %d samples, want nil", secs, len(out))
		}
	}
}

func TestRenderedPitch(t *testing.T) {
	s, err := NewSynth(44100, WithChannels(1))
	if err != nil {
		t.Fatalf("new synth: %v", err)
	}
	s.SetMixRatio(0)
	s.SetFrequency(523.25)
	out := Render(s, 1)
	got := analysis.DominantFrequency(analysis.Float32(out, 1, 0), 44100)
	if math.Abs(got-523.25) > 2 {
		t.Fatalf("dominant frequency = %v, want 523.25", got)
	}
}

func TestWriteWAVFile(t *testing.T) {
	s, err := NewSynth(48000)
	if err != nil {
		t.Fatalf("new synth: %v", err)
	}
	path := filepath.Join(t.TempDir(), "voice.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := WriteWAV(f, s, 0.25, 24); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rf.Close()
	dec := wav.NewDecoder(rf)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.SampleRate != 48000 || dec.NumChans != 2 || dec.BitDepth != 24 {
		t.Fatalf("header = %d Hz, %d ch, %d bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}
	if len(buf.Data) != 12000*2 {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), 12000*2)
	}
}

func TestWriteWAVRejectsBitDepth(t *testing.T) {
	s, _ := NewSynth(48000)
	path := filepath.Join(t.TempDir(), "bad.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := WriteWAV(f, s, 0.1, 12); err == nil {
		t.Fatal("expected error for 12-bit output")
	}
}
