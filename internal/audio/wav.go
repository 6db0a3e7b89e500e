package audio

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WriteWAV encodes interleaved float samples in [-1, 1] as integer PCM.
// Values outside the range are clipped.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate, channels, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	if channels < 1 || len(samples)%channels != 0 {
		return fmt.Errorf("%w: %d samples do not divide into %d channels", ErrUnsupportedChannels, len(samples), channels)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	buf := &goaudio.FloatBuffer{Format: format, Data: make([]float64, len(samples))}
	// keep the positive peak one step below full scale so it cannot wrap
	hi := 1 - math.Pow(2, -float64(bitDepth-1))
	for i, s := range samples {
		buf.Data[i] = math.Max(-1, math.Min(hi, float64(s)))
	}
	if err := transforms.PCMScale(buf, bitDepth); err != nil {
		return fmt.Errorf("scale to %d-bit PCM: %w", bitDepth, err)
	}
	for i, v := range buf.Data {
		buf.Data[i] = math.Round(v)
	}
	ib := buf.AsIntBuffer()
	ib.SourceBitDepth = bitDepth

	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM)
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return enc.Close()
}
