//go:build !portaudio

package audio

import "fmt"

func newPortAudioOutput(Options, SampleSource) (Output, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags portaudio", ErrBackendUnavailable)
}
