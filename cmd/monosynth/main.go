package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	prompt "github.com/c-bata/go-prompt"
	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/cbegin/monosynth-go"
	"github.com/cbegin/monosynth-go/internal/analysis"
	"github.com/cbegin/monosynth-go/internal/config"
	"github.com/cbegin/monosynth-go/internal/control"
	"github.com/cbegin/monosynth-go/internal/effects"
	"github.com/cbegin/monosynth-go/internal/voice"
)

var _ control.Target = (*monosynth.Synth)(nil)

type options struct {
	configPath  string
	freq        float64
	cutoff      float64
	resonance   float64
	lfoRate     float64
	lfoShape    string
	mix         float64
	out         string
	analyze     bool
	interactive bool

	// harness overrides, applied only when the flag is set
	backend    string
	sampleRate int
	seconds    float64
	volume     float64
	bitDepth   int
}

func main() {
	def := config.Default()
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&o.backend, "backend", def.Backend, "audio backend: ebiten|oto|beep|portaudio")
	flag.IntVar(&o.sampleRate, "sample-rate", def.SampleRate, "output sample rate")
	flag.Float64Var(&o.seconds, "seconds", def.Seconds, "play or render length in seconds (0 = until interrupted)")
	flag.Float64Var(&o.freq, "freq", voice.DefaultFrequency, "oscillator frequency in Hz")
	flag.Float64Var(&o.cutoff, "cutoff", voice.DefaultCutoff, "base filter cutoff in Hz")
	flag.Float64Var(&o.resonance, "resonance", voice.DefaultResonance, "filter resonance (Q)")
	flag.Float64Var(&o.lfoRate, "lfo-rate", voice.DefaultLFORate, "filter LFO rate in Hz")
	flag.StringVar(&o.lfoShape, "lfo-shape", voice.DefaultLFOShape.String(), "filter LFO shape: sine|triangle|ramp|smoothsquare")
	flag.Float64Var(&o.mix, "mix", voice.DefaultMixRatio, "sine/square mix (0 = sine, 1 = square)")
	flag.Float64Var(&o.volume, "volume", def.MasterVolume, "master volume scalar")
	flag.StringVar(&o.out, "out", "", "render to this WAV file instead of playing")
	flag.IntVar(&o.bitDepth, "bit-depth", def.BitDepth, "WAV bit depth: 16|24|32")
	flag.BoolVar(&o.analyze, "analyze", false, "log pitch and level of a one-second render and exit")
	flag.BoolVar(&o.interactive, "interactive", false, "read parameter commands from the console while playing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := doMain(ctx, o); err != nil {
		log.Exitf("failed to run: %v", err)
	}
}

func doMain(ctx context.Context, o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	s, err := newSynth(cfg, o)
	if err != nil {
		return err
	}

	switch {
	case o.analyze:
		return analyze(s)
	case o.out != "":
		return render(s, o.out, cfg)
	}
	return play(ctx, s, cfg, o.interactive)
}

func loadConfig(o options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		fromFile, err := config.ParseFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *fromFile
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = o.backend
		case "sample-rate":
			cfg.SampleRate = o.sampleRate
		case "seconds":
			cfg.Seconds = o.seconds
		case "volume":
			cfg.MasterVolume = o.volume
		case "bit-depth":
			cfg.BitDepth = o.bitDepth
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.V(1).Infof("config: %+v", cfg)
	return &cfg, nil
}

func newSynth(cfg *config.Config, o options) (*monosynth.Synth, error) {
	shape, err := monosynth.ParseShape(o.lfoShape)
	if err != nil {
		return nil, err
	}
	chain, err := effects.Build(cfg.Effects, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	s, err := monosynth.NewSynth(cfg.SampleRate,
		monosynth.WithChannels(cfg.Channels),
		monosynth.WithEffects(chain),
		monosynth.WithSampleTap(meter.observe))
	if err != nil {
		return nil, err
	}
	s.SetFrequency(o.freq)
	s.SetFilterCutoff(o.cutoff)
	s.SetFilterResonance(o.resonance)
	s.SetFilterLFORate(o.lfoRate)
	s.SetFilterLFOShape(shape)
	s.SetMixRatio(o.mix)
	s.SetMasterVolume(cfg.MasterVolume)
	for band, gain := range cfg.EQ.Gains {
		s.SetEQBand(band, gain)
	}
	return s, nil
}

func analyze(s *monosynth.Synth) error {
	out := monosynth.Render(s, 1)
	mono := analysis.Float32(out, s.Channels(), 0)
	st := analysis.Measure(mono)
	if st.NonFinite > 0 {
		return fmt.Errorf("render produced %d non-finite samples", st.NonFinite)
	}
	log.Infof("dominant %.1f Hz, rms %.4f, peak %.4f",
		analysis.DominantFrequency(mono, float64(s.SampleRate())), st.RMS, st.Peak)
	return nil
}

func render(s *monosynth.Synth, path string, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := monosynth.WriteWAV(f, s, cfg.Seconds, cfg.BitDepth); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("wrote %.2fs of %d-bit audio to %s", cfg.Seconds, cfg.BitDepth, path)
	return nil
}

func play(ctx context.Context, s *monosynth.Synth, cfg *config.Config, interactive bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if !interactive && cfg.Seconds > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Seconds*float64(time.Second)))
		defer cancel()
	}

	pl := monosynth.NewPlayer(s, cfg.Backend, cfg.BufferFrames)
	if err := pl.Start(); err != nil {
		return err
	}
	if interactive {
		// prompt.Input cannot be interrupted, so the console stays outside the group
		go func() {
			console(s)
			cancel()
		}()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-t.C:
				log.V(1).Infof("output peak %.3f", meter.take())
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		return pl.Stop()
	})
	return g.Wait()
}

func console(s *monosynth.Synth) {
	fmt.Print(control.Usage())
	for {
		line := prompt.Input("> ", control.Complete)
		err := control.Apply(line, s)
		switch {
		case errors.Is(err, control.ErrQuit):
			return
		case err != nil:
			fmt.Println("error:", err)
		}
	}
}

// peakMeter tracks the loudest sample since the last take.
type peakMeter struct {
	bits atomic.Uint32
}

var meter peakMeter

func (m *peakMeter) observe(buf []float32) {
	var peak float32
	for _, v := range buf {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak > math.Float32frombits(m.bits.Load()) {
		m.bits.Store(math.Float32bits(peak))
	}
}

func (m *peakMeter) take() float32 {
	return math.Float32frombits(m.bits.Swap(0))
}
