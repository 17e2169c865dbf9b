package sequencer

import "testing"

func TestTransportClampsTempo(t *testing.T) {
	if tr := NewTransport(48000, 5); tr.BPM != MinTempo {
		t.Errorf("Expected %d, got %v", MinTempo, tr.BPM)
	}
	if tr := NewTransport(48000, 1000); tr.BPM != MaxTempo {
		t.Errorf("Expected %d, got %v", MaxTempo, tr.BPM)
	}
}

func TestTransportAdvance(t *testing.T) {
	tr := NewTransport(48000, 120)
	tr.Play()
	tr.Advance(512)
	tr.Advance(512)
	if tr.Position != 1024 {
		t.Errorf("Expected 1024, got %d", tr.Position)
	}

	tr.Stop()
	if tr.Position != 0 || tr.Playing {
		t.Errorf("Expected stopped at 0, got %+v", tr)
	}
}

func TestTransportLoopSplit(t *testing.T) {
	tr := NewTransport(48000, 120)
	tr.LoopEnabled = true
	tr.LoopStart = 100
	tr.LoopEnd = 1000
	tr.Position = 900

	spans := tr.spans(256)
	if len(spans) != 2 {
		t.Fatalf("Expected a split block, got %+v", spans)
	}
	if spans[0] != (span{start: 900, frames: 100}) {
		t.Errorf("unexpected first span %+v", spans[0])
	}
	if spans[1] != (span{start: 100, frames: 156, base: 100}) {
		t.Errorf("unexpected second span %+v", spans[1])
	}

	tr.Advance(256)
	if tr.Position != 256 {
		t.Errorf("Expected wrapped position 256, got %d", tr.Position)
	}
}

func TestTransportLoopEndsOnBoundary(t *testing.T) {
	tr := NewTransport(48000, 120)
	tr.LoopEnabled = true
	tr.LoopEnd = 1024
	tr.Position = 512

	tr.Advance(512)
	if tr.Position != 0 {
		t.Errorf("Expected wrap to 0, got %d", tr.Position)
	}
}

func TestTransportIgnoresEmptyLoop(t *testing.T) {
	tr := NewTransport(48000, 120)
	tr.LoopEnabled = true
	tr.Position = 10

	if spans := tr.spans(64); len(spans) != 1 {
		t.Errorf("Expected one span, got %+v", spans)
	}
	tr.Advance(64)
	if tr.Position != 74 {
		t.Errorf("Expected 74, got %d", tr.Position)
	}
}
