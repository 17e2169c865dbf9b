package fx

import (
	"testing"

	"go-midifx/midi"
)

func TestQuantizeStrengthZeroIsIdentity(t *testing.T) {
	q := NewQuantize()
	mustSet(t, q, "strength", 0)

	in := testBlock()
	assertEvents(t, q.Process(in, testSampleRate, testBPM), in)
}

func TestQuantizeFullStrengthSnapsToGrid(t *testing.T) {
	tests := []struct {
		grid float64
		size uint32
	}{
		{4, 24000},
		{8, 12000},
		{16, 6000},
		{3, 32000},
	}
	for _, tt := range tests {
		q := NewQuantize()
		mustSet(t, q, "grid", tt.grid)

		for _, e := range q.Process(testBlock(), testSampleRate, testBPM) {
			if e.Offset%tt.size != 0 {
				t.Errorf("grid %v: offset %d is not a multiple of %d", tt.grid, e.Offset, tt.size)
			}
		}
	}
}

func TestQuantizeNearestLine(t *testing.T) {
	q := NewQuantize()
	mustSet(t, q, "grid", 8)

	in := []midi.Event{
		noteOn(60, 100, 5999),  // rounds down to 0
		noteOn(62, 100, 6000),  // half rounds away from zero
		noteOn(64, 100, 17000), // rounds down to 12000
	}
	got := offsets(q.Process(in, testSampleRate, testBPM))
	want := []uint32{0, 12000, 12000}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: Expected offset %d, got %d", i, want[i], got[i])
		}
	}
}

func TestQuantizePartialStrength(t *testing.T) {
	q := NewQuantize()
	mustSet(t, q, "strength", 50)

	got := q.Process([]midi.Event{noteOn(60, 100, 1000), noteOn(62, 100, 23001)}, testSampleRate, testBPM)
	// 1000 -> round(0.5 * -1000) = -500; 23001 -> round(0.5 * 999) = 500 (half away from zero)
	if got[0].Offset != 500 {
		t.Errorf("Expected 500, got %d", got[0].Offset)
	}
	if got[1].Offset != 23501 {
		t.Errorf("Expected 23501, got %d", got[1].Offset)
	}
}

func TestQuantizeKeepsSortedOutput(t *testing.T) {
	q := NewQuantize()
	mustSet(t, q, "grid", 8)
	mustSet(t, q, "strength", 90)

	// Neighbours either side of a cell midpoint pull apart
	in := []midi.Event{noteOn(60, 100, 5900), noteOn(62, 100, 6100), noteOn(64, 100, 6100)}
	got := q.Process(in, testSampleRate, testBPM)
	if !midi.Sorted(got) {
		t.Errorf("Expected sorted output, got %v", offsets(got))
	}
	if len(got) != len(in) {
		t.Errorf("Expected %d events, got %d", len(in), len(got))
	}
}

func TestQuantizeKeepsPitchAndVelocity(t *testing.T) {
	q := NewQuantize()
	in := testBlock()
	got := q.Process(in, testSampleRate, testBPM)

	seen := map[midi.Event]int{}
	for _, e := range in {
		e.Offset = 0
		seen[e]++
	}
	for _, e := range got {
		e.Offset = 0
		seen[e]--
	}
	for e, n := range seen {
		if n != 0 {
			t.Errorf("event %v count changed by %d", e, -n)
		}
	}
}
