package fx

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"go-midifx/midi"
)

func TestChainJSONRoundTrip(t *testing.T) {
	h := NewHumanize()
	mustSet(t, h, "timing", 33)
	e := NewEcho()
	e.SetBypass(true)
	a := NewArpeggiator()
	mustSet(t, a, "mode", float64(ArpRandom))

	c := NewChain(h, e, NewChance(), a)
	c.SetBypassAll(false)

	// Advance generators and held notes before saving
	c.Process(chord(60, 64, 67), testSampleRate, testBPM)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	var restored Chain
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}

	if got, want := names(&restored), names(c); !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if !restored.At(1).Bypassed() {
		t.Error("bypass flag lost")
	}
	if p, _ := restored.At(0).Param("timing"); p.Value != 33 {
		t.Errorf("Expected timing 33, got %v", p.Value)
	}
	if held := restored.At(3).(*Arpeggiator).Held(); !slices.Equal(held, []uint8{60, 64, 67}) {
		t.Errorf("Expected held notes restored, got %v", held)
	}

	// Both continue with bit-identical output
	for i := 0; i < 3; i++ {
		assertEvents(t,
			restored.Process(testBlock(), testSampleRate, testBPM),
			c.Process(testBlock(), testSampleRate, testBPM))
	}
}

func TestChainJSONFormat(t *testing.T) {
	c := NewChain(NewChance())
	c.SetBypassAll(true)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"bypass_all":true`, `"type":"Chance"`, `"rng":54321`, `"name":"probability"`} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %s in %s", want, s)
		}
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	data := `{"bypass_all":false,"effects":[{"type":"Flanger","bypass":false,"params":[]}]}`
	var c Chain
	if err := json.Unmarshal([]byte(data), &c); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}

func TestUnmarshalToleratesParams(t *testing.T) {
	data := `{"type":"echo","bypass":false,"params":[
		{"name":"repeats","value":50,"min":1,"max":8},
		{"name":"feedback","value":1,"min":0,"max":1}]}`

	e, err := UnmarshalEffect([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind() != KindEcho {
		t.Errorf("Expected Echo, got %v", e.Kind())
	}
	if p, _ := e.Param("repeats"); p.Value != 8 {
		t.Errorf("Expected repeats clamped to 8, got %v", p.Value)
	}
	if _, ok := e.Param("feedback"); ok {
		t.Error("unknown parameter was added")
	}
	// Missing parameters keep their defaults
	if p, _ := e.Param("decay"); p.Value != 70 {
		t.Errorf("Expected default decay 70, got %v", p.Value)
	}
}

func TestUnmarshalTooManyEffects(t *testing.T) {
	c := NewChain()
	var effects []string
	for i := 0; i <= MaxEffects; i++ {
		effects = append(effects, `{"type":"Transpose","bypass":false,"params":[]}`)
	}
	data := `{"bypass_all":false,"effects":[` + strings.Join(effects, ",") + `]}`
	if err := c.UnmarshalJSON([]byte(data)); !errors.Is(err, ErrChainFull) {
		t.Errorf("Expected ErrChainFull, got %v", err)
	}
}

func TestEffectRoundTripKeepsGenerator(t *testing.T) {
	c := NewChance()
	mustSet(t, c, "probability", 50)
	c.Process(testBlock(), testSampleRate, testBPM)

	data, err := MarshalEffect(c)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := UnmarshalEffect(data)
	if err != nil {
		t.Fatal(err)
	}

	in := []midi.Event{noteOn(1, 1, 0), noteOn(2, 2, 1), noteOn(3, 3, 2), noteOn(4, 4, 3)}
	assertEvents(t, restored.Process(in, testSampleRate, testBPM), c.Process(in, testSampleRate, testBPM))
}
