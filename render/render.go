// Package render runs standard MIDI files through an effect chain offline,
// block by block, as a host would in real time.
package render

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-midifx/debug"
	"go-midifx/fx"
	"go-midifx/midi"
)

// ErrNotMetric is returned for SMPTE-timed files
var ErrNotMetric = errors.New("file does not use metric ticks")

// Options is the simulated host clock
type Options struct {
	SampleRate float64
	BPM        float64 // used when the file carries no tempo
	BlockSize  uint32
}

// DefaultOptions matches the default audio config
func DefaultOptions() Options {
	return Options{SampleRate: 48000, BPM: 120, BlockSize: 512}
}

// timed is a message at an absolute tick
type timed struct {
	tick int64
	msg  []byte
	note bool
}

// File returns a copy of in with every track's notes processed by a fresh
// clone of chain. Non-note messages keep their original ticks.
func File(in *smf.SMF, chain *fx.Chain, opts Options) (*smf.SMF, error) {
	ticks, ok := in.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fault.Wrap(ErrNotMetric, ftag.With(ftag.InvalidArgument))
	}
	def := DefaultOptions()
	if opts.SampleRate <= 0 {
		opts.SampleRate = def.SampleRate
	}
	if opts.BlockSize == 0 {
		opts.BlockSize = def.BlockSize
	}
	if opts.BPM <= 0 {
		opts.BPM = def.BPM
	}

	bpm := FirstTempo(in, opts.BPM)
	perTick := fx.SamplesPerTick(opts.SampleRate, bpm, ticks.Resolution())

	out := smf.NewSMF1()
	out.TimeFormat = in.TimeFormat

	for i, track := range in.Tracks {
		c, err := chain.Clone()
		if err != nil {
			return nil, fault.Wrap(err, fmsg.With("clone chain"))
		}

		events := processTrack(track, c, bpm, perTick, opts)
		if err := out.Add(encode(events)); err != nil {
			return nil, fault.Wrap(err, fmsg.With("add track"))
		}
		debug.Log("render", "track %d: %d events in, %d out", i, len(track), len(events))
	}
	return out, nil
}

// FirstTempo returns the earliest tempo in the file, or fallback
func FirstTempo(in *smf.SMF, fallback float64) float64 {
	first := int64(-1)
	for _, track := range in.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				if first < 0 || tick < first {
					first = tick
					fallback = bpm
				}
				break
			}
		}
	}
	return fallback
}

func isEndOfTrack(msg []byte) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}

func processTrack(track smf.Track, chain *fx.Chain, bpm, perTick float64, opts Options) []timed {
	var kept []timed
	var notes []midi.Event // offsets are absolute samples, in file order
	var tick int64

	for _, ev := range track {
		tick += int64(ev.Delta)
		if isEndOfTrack(ev.Message) {
			continue
		}
		e, ok := midi.FromMessage(gomidi.Message(ev.Message), 0)
		if !ok {
			kept = append(kept, timed{tick: tick, msg: ev.Message})
			continue
		}
		e.Offset = uint32(float64(tick) * perTick)
		notes = append(notes, e)
	}

	// Walk the timeline one block at a time
	if len(notes) > 0 {
		block := uint64(opts.BlockSize)
		last := uint64(notes[len(notes)-1].Offset)
		i := 0
		for start := uint64(0); start <= last; start += block {
			var batch []midi.Event
			for i < len(notes) && uint64(notes[i].Offset) < start+block {
				e := notes[i]
				e.Offset -= uint32(start)
				batch = append(batch, e)
				i++
			}

			for _, e := range chain.Process(batch, opts.SampleRate, bpm) {
				abs := float64(start) + float64(e.Offset)
				kept = append(kept, timed{
					tick: int64(math.Round(abs / perTick)),
					msg:  e.Message(),
					note: true,
				})
			}
		}
	}

	// Non-note messages first at equal ticks
	slices.SortStableFunc(kept, func(a, b timed) int {
		if c := cmp.Compare(a.tick, b.tick); c != 0 {
			return c
		}
		switch {
		case !a.note && b.note:
			return -1
		case a.note && !b.note:
			return 1
		}
		return 0
	})
	return kept
}

func encode(events []timed) smf.Track {
	var track smf.Track
	var prev int64
	for _, e := range events {
		track.Add(uint32(e.tick-prev), e.msg)
		prev = e.tick
	}
	track.Close(0)
	return track
}
