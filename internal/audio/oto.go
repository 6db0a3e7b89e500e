package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	log "github.com/golang/glog"
)

var (
	otoOnce       sync.Once
	otoContext    *oto.Context
	otoErr        error
	otoSampleRate int
	otoChannels   int
)

type otoOutput struct {
	player *oto.Player
	reader *StreamReader
}

func sharedOtoContext(opts Options) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoSampleRate, otoChannels = opts.SampleRate, opts.Channels
		bufDur := time.Duration(opts.BufferFrames) * time.Second / time.Duration(opts.SampleRate)
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   opts.SampleRate,
			ChannelCount: opts.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufDur,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoContext = ctx
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoSampleRate != opts.SampleRate || otoChannels != opts.Channels {
		return nil, fmt.Errorf("oto context already initialized at %d Hz/%d ch (requested %d Hz/%d ch)",
			otoSampleRate, otoChannels, opts.SampleRate, opts.Channels)
	}
	return otoContext, nil
}

func newOtoOutput(opts Options, src SampleSource) (Output, error) {
	ctx, err := sharedOtoContext(opts)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(src, opts.Channels)
	log.V(1).Infof("oto output ready at %d Hz, %d channels", opts.SampleRate, opts.Channels)
	return &otoOutput{player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (o *otoOutput) Play()  { o.player.Play() }
func (o *otoOutput) Pause() { o.player.Pause() }

func (o *otoOutput) Stop() error {
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return err
	}
	log.V(1).Info("oto output stopped")
	return o.reader.Close()
}
