//go:build portaudio

package audio

import (
	log "github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

type portAudioOutput struct {
	stream *portaudio.Stream
}

func newPortAudioOutput(opts Options, src SampleSource) (Output, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	stream, err := portaudio.OpenDefaultStream(0, opts.Channels, float64(opts.SampleRate), opts.BufferFrames, func(out []float32) {
		src.Process(out)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	log.V(1).Infof("portaudio output ready at %d Hz, %d channels", opts.SampleRate, opts.Channels)
	return &portAudioOutput{stream: stream}, nil
}

func (o *portAudioOutput) Play() {
	if err := o.stream.Start(); err != nil {
		log.Errorf("portaudio start: %v", err)
	}
}

func (o *portAudioOutput) Pause() {
	if err := o.stream.Stop(); err != nil {
		log.Errorf("portaudio stop: %v", err)
	}
}

func (o *portAudioOutput) Stop() error {
	if err := o.stream.Close(); err != nil {
		return err
	}
	log.V(1).Info("portaudio output stopped")
	return portaudio.Terminate()
}
