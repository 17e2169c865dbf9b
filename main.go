package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Southclaws/fault/ftag"
	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-midifx/config"
	"go-midifx/debug"
	"go-midifx/midi"
	"go-midifx/sequencer"
	"go-midifx/theme"
	"go-midifx/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	project := flag.String("project", sequencer.DefaultProject, "project to open")
	palette := flag.String("palette", "", "GIMP palette (.gpl) for the UI")
	in := flag.String("in", cfg.MIDI.InputPort, "MIDI input port for live thru")
	out := flag.String("out", cfg.MIDI.OutputPort, "MIDI output port")
	verbose := flag.Bool("debug", cfg.Log.Enabled, "write the debug log")
	flag.Parse()

	if *verbose {
		if err := debug.Enable(cfg.Log.Path); err != nil {
			fmt.Printf("Debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	th := theme.Load(*palette)

	engine := sequencer.NewEngine(cfg.Audio.SampleRate, cfg.Transport.Tempo)
	store := sequencer.NewStore(cfg.ProjectsDir)
	if err := store.Load(*project, "", engine); err != nil {
		if ftag.Get(err) != ftag.NotFound {
			fmt.Printf("Load %s: %v\n", *project, err)
			os.Exit(1)
		}
		debug.Log("main", "new project %q", *project)
	}
	if len(engine.Tracks()) == 0 {
		engine.AddTrack("Track 1", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Port manager (handles hot-plug)
	ports := midi.NewPortManager(nil)
	go ports.Run(ctx)

	var send midi.SendFunc
	if *out != "" {
		send, err = midi.OpenOutput(*out)
		if err != nil {
			fmt.Printf("Output: %v\n", err)
			os.Exit(1)
		}
	}

	host := &Host{
		Engine:    engine,
		Send:      send,
		BlockSize: cfg.Audio.BlockSize,
	}
	go host.Run(ctx)

	if *in != "" && send != nil {
		input, err := midi.OpenInput(*in)
		if err != nil {
			fmt.Printf("Input: %v\n", err)
			os.Exit(1)
		}
		defer input.Close()
		go host.Thru(input.Notes()).Run(ctx)
	}

	m := tui.NewModel(engine, store, ports, th, *project)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
