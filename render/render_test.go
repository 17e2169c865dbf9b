package render

import (
	"bytes"
	"errors"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-midifx/fx"
)

// note is a decoded note message at an absolute tick
type note struct {
	tick     int64
	on       bool
	key, vel uint8
}

// oneNote is a quarter note C4 at 120 bpm, 480 ppq
func oneNote() *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)
	s.Add(tr)
	return s
}

func notes(t *testing.T, s *smf.SMF, track int) []note {
	t.Helper()
	var out []note
	var tick int64
	for _, ev := range s.Tracks[track] {
		tick += int64(ev.Delta)
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel):
			out = append(out, note{tick: tick, on: vel > 0, key: key, vel: vel})
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			out = append(out, note{tick: tick, key: key, vel: vel})
		}
	}
	return out
}

func mustChain(t *testing.T, desc string) *fx.Chain {
	t.Helper()
	c, err := fx.ParseChain(desc)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestFileTranspose(t *testing.T) {
	out, err := File(oneNote(), mustChain(t, "transpose:semitones=12"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	got := notes(t, out, 0)
	want := []note{
		{tick: 0, on: true, key: 72, vel: 100},
		{tick: 480, key: 72},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("note %d: Expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestFileEcho(t *testing.T) {
	out, err := File(oneNote(), mustChain(t, "echo:repeats=2:decay=50"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var ons []note
	for _, n := range notes(t, out, 0) {
		if n.on {
			ons = append(ons, n)
		}
	}
	want := []note{
		{tick: 0, on: true, key: 60, vel: 100},
		{tick: 480, on: true, key: 60, vel: 50},
		{tick: 960, on: true, key: 60, vel: 25},
	}
	if len(ons) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ons)
	}
	for i := range want {
		if ons[i] != want[i] {
			t.Errorf("note-on %d: Expected %+v, got %+v", i, want[i], ons[i])
		}
	}
}

func TestFileKeepsTempo(t *testing.T) {
	out, err := File(oneNote(), fx.NewChain(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if bpm := FirstTempo(out, 0); bpm != 120 {
		t.Errorf("Expected tempo 120 carried over, got %v", bpm)
	}
}

func TestFileDoesNotAdvanceSourceChain(t *testing.T) {
	chain := mustChain(t, "humanize")
	before := chain.At(0).(*fx.Humanize).RNG().State()

	if _, err := File(oneNote(), chain, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if chain.At(0).(*fx.Humanize).RNG().State() != before {
		t.Error("rendering changed the caller's chain")
	}
}

func TestFileWritesValidSMF(t *testing.T) {
	out, err := File(oneNote(), mustChain(t, "harmonizer"), Options{SampleRate: 44100, BlockSize: 64})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := smf.ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}

	var ons int
	for _, n := range notes(t, back, 0) {
		if n.on {
			ons++
		}
	}
	if ons != 3 {
		t.Errorf("Expected a triad, got %d note-ons", ons)
	}
}

func TestFileRejectsSMPTE(t *testing.T) {
	s := oneNote()
	s.TimeFormat = smf.SMPTE25(40)
	if _, err := File(s, fx.NewChain(), DefaultOptions()); !errors.Is(err, ErrNotMetric) {
		t.Errorf("Expected ErrNotMetric, got %v", err)
	}
}

func TestFirstTempoFallback(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Close(0)
	s.Add(tr)

	if bpm := FirstTempo(s, 93); bpm != 93 {
		t.Errorf("Expected fallback 93, got %v", bpm)
	}
}
