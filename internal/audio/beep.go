package audio

import (
	log "github.com/golang/glog"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// beepStreamer exposes a stereo SampleSource as a beep.Streamer.
type beepStreamer struct {
	src SampleSource
	buf []float32
}

func newBeepStreamer(src SampleSource) *beepStreamer {
	return &beepStreamer{src: src}
}

func (s *beepStreamer) Stream(samples [][2]float64) (int, bool) {
	need := len(samples) * 2
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	s.buf = s.buf[:need]
	s.src.Process(s.buf)
	for i := range samples {
		samples[i][0] = float64(s.buf[2*i])
		samples[i][1] = float64(s.buf[2*i+1])
	}
	return len(samples), true
}

func (s *beepStreamer) Err() error { return nil }

type beepOutput struct {
	ctrl *beep.Ctrl
}

func newBeepOutput(opts Options, src SampleSource) (Output, error) {
	if err := speaker.Init(beep.SampleRate(opts.SampleRate), opts.BufferFrames); err != nil {
		return nil, err
	}
	ctrl := &beep.Ctrl{Streamer: newBeepStreamer(src), Paused: true}
	speaker.Play(ctrl)
	log.V(1).Infof("beep output ready at %d Hz", opts.SampleRate)
	return &beepOutput{ctrl: ctrl}, nil
}

func (o *beepOutput) setPaused(paused bool) {
	speaker.Lock()
	o.ctrl.Paused = paused
	speaker.Unlock()
}

func (o *beepOutput) Play()  { o.setPaused(false) }
func (o *beepOutput) Pause() { o.setPaused(true) }

func (o *beepOutput) Stop() error {
	speaker.Clear()
	speaker.Close()
	log.V(1).Info("beep output stopped")
	return nil
}
