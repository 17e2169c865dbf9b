package sequencer

// Tempo bounds
const (
	MinTempo = 20
	MaxTempo = 300
)

// Transport is the playhead: position in samples, tempo and loop region
type Transport struct {
	SampleRate  uint32  `json:"sampleRate"`
	BPM         float64 `json:"tempo"`
	Position    uint64  `json:"-"`
	Playing     bool    `json:"-"`
	LoopEnabled bool    `json:"loopEnabled"`
	LoopStart   uint64  `json:"loopStart"`
	LoopEnd     uint64  `json:"loopEnd"`
}

// NewTransport creates a stopped transport
func NewTransport(sampleRate uint32, bpm float64) Transport {
	return Transport{SampleRate: sampleRate, BPM: clampTempo(bpm)}
}

func clampTempo(bpm float64) float64 {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// Play starts playback from the current position
func (t *Transport) Play() { t.Playing = true }

// Stop halts playback and rewinds to the start
func (t *Transport) Stop() {
	t.Playing = false
	t.Position = 0
}

func (t *Transport) looping() bool {
	return t.LoopEnabled && t.LoopEnd > t.LoopStart
}

// span is a contiguous timeline range mapped into a block
type span struct {
	start  uint64 // timeline position
	frames uint32
	base   uint32 // offset within the block
}

// spans splits the next block at the loop end when the block crosses it
func (t *Transport) spans(frames uint32) []span {
	pos := t.Position
	if t.looping() && pos >= t.LoopEnd {
		pos = t.LoopStart
	}
	end := pos + uint64(frames)
	if t.looping() && pos < t.LoopEnd && end > t.LoopEnd {
		before := uint32(t.LoopEnd - pos)
		return []span{
			{start: pos, frames: before},
			{start: t.LoopStart, frames: frames - before, base: before},
		}
	}
	return []span{{start: pos, frames: frames}}
}

// Advance moves the playhead past one block, wrapping at the loop end
func (t *Transport) Advance(frames uint32) {
	s := t.spans(frames)
	last := s[len(s)-1]
	t.Position = last.start + uint64(last.frames)
	if t.looping() && t.Position >= t.LoopEnd {
		t.Position = t.LoopStart + (t.Position - t.LoopEnd)
	}
}
