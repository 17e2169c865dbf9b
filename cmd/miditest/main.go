package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-midifx/fx"
	"go-midifx/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "poll":
		pollDevices()
	case "monitor":
		if len(os.Args) < 3 {
			usage()
			return
		}
		monitor(os.Args[2])
	case "thru":
		if len(os.Args) < 4 {
			usage()
			return
		}
		desc := ""
		if len(os.Args) > 4 {
			desc = os.Args[4]
		}
		thru(os.Args[2], os.Args[3], desc)
	case "note":
		if len(os.Args) < 3 {
			usage()
			return
		}
		testNote(os.Args[2])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                    - List all MIDI ports")
	fmt.Println("  poll                    - Watch for ports being plugged/unplugged")
	fmt.Println("  monitor <in>            - Print incoming notes")
	fmt.Println("  note <out>              - Play a C major arpeggio")
	fmt.Println("  thru <in> <out> [chain] - Play input through an effect chain")
	fmt.Println("")
	fmt.Println(`Chain example: "transpose:semitones=12,echo:repeats=2:decay=50"`)
}

func listPorts() {
	fmt.Println("=== MIDI Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct{ ins, outs []string }
	ch := make(chan result, 1)
	go func() {
		ins, outs := midi.SystemPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		fmt.Println("\nInputs:")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p)
		}
		fmt.Println("\nOutputs:")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p)
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! The MIDI driver is hung.")
		fmt.Println("Fix (macOS): sudo killall coreaudiod midiserver")
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes... Ctrl+C to exit.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pm := midi.NewPortManager(nil)
	go pm.Run(ctx)

	for ev := range pm.Events() {
		verb := "+"
		if ev.Type == midi.PortRemoved {
			verb = "-"
		}
		fmt.Printf("[%s] %s %-3s %s\n", time.Now().Format("15:04:05"), verb, ev.Dir, ev.Name)
	}
}

func monitor(name string) {
	in, err := midi.OpenInput(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer in.Close()
	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tm := <-in.Notes():
			fmt.Printf("[%s] %v\n", tm.At.Format("15:04:05.000"), tm.Event)
		}
	}
}

func testNote(name string) {
	send, err := midi.OpenOutput(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, key := range []uint8{60, 64, 67, 72} {
		send(gomidi.NoteOn(0, key, 100))
		time.Sleep(150 * time.Millisecond)
		send(gomidi.NoteOff(0, key))
	}
	fmt.Println("Done!")
}

func thru(inName, outName, desc string) {
	chain, err := fx.ParseChain(desc)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	in, err := midi.OpenInput(inName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer in.Close()

	send, err := midi.OpenOutput(outName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	const sampleRate, blockSize, bpm = 48000.0, 512, 120.0
	t := &midi.Thru{
		In: in.Notes(),
		Process: func(events []midi.Event) []midi.Event {
			return chain.Process(events, sampleRate, bpm)
		},
		Send:       send,
		SampleRate: sampleRate,
		BlockSize:  blockSize,
	}

	fmt.Printf("%s -> [%d effects] -> %s. Ctrl+C to exit.\n", in.Name(), chain.Len(), outName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	t.Run(ctx)
}
