package monosynth

import (
	"io"
	"math"

	intaudio "github.com/cbegin/monosynth-go/internal/audio"
)

// Render pulls seconds of audio from s as interleaved frames. It returns nil
// unless seconds is positive and finite.
func Render(s *Synth, seconds float64) []float32 {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return nil
	}
	frames := int(float64(s.SampleRate()) * seconds)
	out := make([]float32, frames*s.Channels())
	s.Process(out)
	return out
}

// WriteWAV renders seconds of audio from s and encodes it as integer PCM
// at bitDepth (16, 24 or 32).
func WriteWAV(w io.WriteSeeker, s *Synth, seconds float64, bitDepth int) error {
	return intaudio.WriteWAV(w, Render(s, seconds), s.SampleRate(), s.Channels(), bitDepth)
}
