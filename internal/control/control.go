// Package control parses console commands into synth parameter changes.
package control

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/cbegin/monosynth-go/internal/lfo"
)

var (
	// ErrQuit is returned by Apply for "quit" and "exit".
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
)

// Target receives parameter changes. *monosynth.Synth implements it.
type Target interface {
	SetFrequency(hz float64)
	SetFilterCutoff(hz float64)
	SetFilterResonance(q float64)
	SetFilterLFORate(hz float64)
	SetFilterLFOShape(shape lfo.Shape)
	SetMixRatio(ratio float64)
	SetMasterVolume(volume float64)
	SetEQBand(band int, gain float64)
}

type command struct {
	usage string
	help  string
	run   func(t Target, args []string) error
}

var commands = map[string]command{
	"freq":   scalar("freq <hz>", "oscillator pitch", Target.SetFrequency),
	"cutoff": scalar("cutoff <hz>", "base filter cutoff", Target.SetFilterCutoff),
	"res":    scalar("res <q>", "filter resonance", Target.SetFilterResonance),
	"rate":   scalar("rate <hz>", "filter lfo rate", Target.SetFilterLFORate),
	"mix":    scalar("mix <0..1>", "sine/square crossfade", Target.SetMixRatio),
	"volume": scalar("volume <gain>", "master volume", Target.SetMasterVolume),
	"shape": {
		usage: "shape <sine|triangle|ramp|smoothsquare>",
		help:  "filter lfo waveform",
		run: func(t Target, args []string) error {
			if len(args) != 1 {
				return ErrUsage
			}
			shape, err := lfo.ParseShape(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			t.SetFilterLFOShape(shape)
			return nil
		},
	},
	"eq": {
		usage: "eq <band 0-4> <gain>",
		help:  "master eq band gain",
		run: func(t Target, args []string) error {
			if len(args) != 2 {
				return ErrUsage
			}
			band, err := strconv.Atoi(args[0])
			if err != nil || band < 0 || band > 4 {
				return fmt.Errorf("%w: band %q", ErrUsage, args[0])
			}
			gain, err := parseFloat(args[1])
			if err != nil {
				return err
			}
			t.SetEQBand(band, gain)
			return nil
		},
	},
}

func scalar(usage, help string, set func(Target, float64)) command {
	return command{
		usage: usage,
		help:  help,
		run: func(t Target, args []string) error {
			if len(args) != 1 {
				return ErrUsage
			}
			v, err := parseFloat(args[0])
			if err != nil {
				return err
			}
			set(t, v)
			return nil
		},
	}
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrUsage, s)
	}
	return v, nil
}

// Apply runs one console line against t. Blank lines are ignored.
func Apply(line string, t Target) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	if name == "quit" || name == "exit" {
		return ErrQuit
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if err := cmd.run(t, args); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w (usage: %s)", err, cmd.usage)
		}
		return err
	}
	return nil
}

// Usage lists every command, one per line.
func Usage() string {
	var b strings.Builder
	for _, name := range names() {
		fmt.Fprintf(&b, "  %-44s %s\n", commands[name].usage, commands[name].help)
	}
	fmt.Fprintf(&b, "  %-44s %s\n", "quit", "stop playback")
	return b.String()
}

func names() []string {
	out := make([]string, 0, len(commands))
	for name := range commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Complete suggests command names, then shape names after "shape".
func Complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	word := d.GetWordBeforeCursor()
	fields := strings.Fields(before)
	if len(fields) == 0 || (len(fields) == 1 && word != "") {
		s := make([]prompt.Suggest, 0, len(commands)+1)
		for _, name := range names() {
			s = append(s, prompt.Suggest{Text: name, Description: commands[name].help})
		}
		s = append(s, prompt.Suggest{Text: "quit", Description: "stop playback"})
		return prompt.FilterHasPrefix(s, word, true)
	}
	if strings.EqualFold(fields[0], "shape") {
		s := make([]prompt.Suggest, 0, 4)
		for _, shape := range []lfo.Shape{lfo.ShapeSine, lfo.ShapeTriangle, lfo.ShapeRamp, lfo.ShapeSmoothSquare} {
			s = append(s, prompt.Suggest{Text: shape.String()})
		}
		return prompt.FilterHasPrefix(s, word, true)
	}
	return nil
}
