package audio

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownBackend      = errors.New("unknown audio backend")
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrBackendUnavailable  = errors.New("audio backend not compiled in")
)

const (
	BackendEbiten    = "ebiten"
	BackendOto       = "oto"
	BackendBeep      = "beep"
	BackendPortAudio = "portaudio"
)

// Output is a running device stream pulling from a SampleSource.
type Output interface {
	Play()
	Pause()
	Stop() error
}

type Options struct {
	Backend      string
	SampleRate   int
	Channels     int
	BufferFrames int
}

// Open creates a paused output for src on the requested backend.
func Open(opts Options, src SampleSource) (Output, error) {
	if opts.SampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	if opts.BufferFrames <= 0 {
		opts.BufferFrames = 1024
	}
	switch opts.Backend {
	case BackendEbiten, "":
		if opts.Channels != 2 {
			return nil, fmt.Errorf("%w: ebiten needs 2 channels, got %d", ErrUnsupportedChannels, opts.Channels)
		}
		return newEbitenOutput(opts.SampleRate, src)
	case BackendOto:
		return newOtoOutput(opts, src)
	case BackendBeep:
		if opts.Channels != 2 {
			return nil, fmt.Errorf("%w: beep needs 2 channels, got %d", ErrUnsupportedChannels, opts.Channels)
		}
		return newBeepOutput(opts, src)
	case BackendPortAudio:
		return newPortAudioOutput(opts, src)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
