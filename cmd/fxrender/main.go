// fxrender runs a standard MIDI file through an effect chain offline.
//
//	fxrender -in song.mid -out song-fx.mid -fx "transpose:semitones=12,echo:repeats=2"
//	fxrender -in song.mid -out song-fx.mid -chain lead.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"go-midifx/config"
	"go-midifx/debug"
	"go-midifx/fx"
	"go-midifx/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	in := flag.String("in", "", "input .mid file")
	out := flag.String("out", "", "output .mid file")
	chainFile := flag.String("chain", "", "chain JSON saved by the rack")
	desc := flag.String("fx", "", `inline chain, e.g. "transpose:semitones=12,chance:probability=50"`)
	sr := flag.Float64("sr", float64(cfg.Audio.SampleRate), "simulated sample rate")
	block := flag.Uint("block", uint(cfg.Audio.BlockSize), "simulated block size in samples")
	bpm := flag.Float64("bpm", cfg.Transport.Tempo, "tempo when the file has none")
	verbose := flag.Bool("v", false, "write the debug log")
	list := flag.Bool("list", false, "list effect kinds and their parameters")
	flag.Parse()

	if *list {
		listKinds()
		return
	}
	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose || cfg.Log.Enabled {
		if err := debug.Enable(cfg.Log.Path); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	chain, err := loadChain(*chainFile, *desc)
	if err != nil {
		fatal(err)
	}

	src, err := smf.ReadFile(*in)
	if err != nil {
		fatal(fmt.Errorf("read %s: %w", *in, err))
	}

	dst, err := render.File(src, chain, render.Options{
		SampleRate: *sr,
		BPM:        *bpm,
		BlockSize:  uint32(*block),
	})
	if err != nil {
		fatal(err)
	}

	if err := dst.WriteFile(*out); err != nil {
		fatal(fmt.Errorf("write %s: %w", *out, err))
	}
	fmt.Printf("%s -> %s (%d tracks, %d effects)\n", *in, *out, len(dst.Tracks), chain.Len())
}

func loadChain(path, desc string) (*fx.Chain, error) {
	switch {
	case path != "" && desc != "":
		return nil, fmt.Errorf("use either -chain or -fx, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		chain := fx.NewChain()
		if err := json.Unmarshal(data, chain); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return chain, nil
	default:
		return fx.ParseChain(desc)
	}
}

func listKinds() {
	for _, k := range fx.Kinds() {
		e, err := fx.New(k)
		if err != nil {
			continue
		}
		fmt.Println(k)
		for _, p := range e.Params() {
			fmt.Printf("  %-10s %6.1f  [%g, %g]\n", p.Name, p.Value, p.Min, p.Max)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fxrender:", err)
	os.Exit(1)
}
