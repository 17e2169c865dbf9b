package fx

import (
	"math"
	"testing"
)

func TestParamClamp(t *testing.T) {
	p := NewParam("semitones", 0, -48, 48)

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-60, -48},
		{60, 48},
		{12.5, 12.5},
		{math.NaN(), -48},
		{math.Inf(1), 48},
		{math.Inf(-1), -48},
	}
	for _, tt := range tests {
		if got := p.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParamNormalized(t *testing.T) {
	p := NewParam("decay", 70, 0, 100)
	if got := p.Normalized(); got != 0.7 {
		t.Errorf("Expected 0.7, got %v", got)
	}

	degenerate := NewParam("x", 1, 1, 1)
	if got := degenerate.Normalized(); got != 0 {
		t.Errorf("Expected 0 for empty range, got %v", got)
	}
}

func TestSetParamRejectsNaN(t *testing.T) {
	e := NewEcho()
	if !e.SetParam("repeats", math.NaN()) {
		t.Fatal("repeats should be a known parameter")
	}
	if p, _ := e.Param("repeats"); p.Value != 1 {
		t.Errorf("Expected NaN clamped to min 1, got %v", p.Value)
	}
}
