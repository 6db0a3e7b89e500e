package monosynth

import (
	"sync"

	log "github.com/golang/glog"

	intaudio "github.com/cbegin/monosynth-go/internal/audio"
)

// Player streams a Synth to an audio device.
type Player struct {
	mu    sync.Mutex
	synth *Synth
	opts  intaudio.Options
	out   intaudio.Output
	done  chan struct{}
}

// NewPlayer prepares playback of s on backend. The sample rate and channel
// count come from s. bufferFrames <= 0 picks the backend default.
func NewPlayer(s *Synth, backend string, bufferFrames int) *Player {
	return &Player{
		synth: s,
		opts: intaudio.Options{
			Backend:      backend,
			SampleRate:   s.SampleRate(),
			Channels:     s.Channels(),
			BufferFrames: bufferFrames,
		},
	}
}

func (p *Player) Synth() *Synth { return p.synth }

// Start opens the device and begins playback. Calling Start while playing
// restarts the stream.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	// one reader at a time: Synth.Process is not reentrant
	if p.out != nil {
		if err := p.out.Stop(); err != nil {
			log.Warningf("stopping previous output: %v", err)
		}
		p.out = nil
	}
	out, err := intaudio.Open(p.opts, p.synth)
	if err != nil {
		return err
	}
	p.out = out
	if p.done == nil {
		p.done = make(chan struct{})
	}
	log.V(1).Infof("playing on %q at %d Hz, %d channels", p.opts.Backend, p.opts.SampleRate, p.opts.Channels)
	out.Play()
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out != nil {
		p.out.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out != nil {
		p.out.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.out == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.out.Stop()
	p.out = nil
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
	return err
}

// Wait blocks until Stop is called. It returns immediately if nothing is
// playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}
