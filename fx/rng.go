package fx

// Default seeds per stochastic effect
const (
	seedHumanize    uint64 = 12345
	seedChance      uint64 = 54321
	seedArpeggiator uint64 = 99999
)

const (
	lcgMultiplier uint64 = 6364136223846793005
	lcgIncrement  uint64 = 1
	sampleScale          = float64(1 << 31)
)

// RNG is a 64-bit linear congruential generator. It is reproducible for a
// given seed and call sequence and is not safe for concurrent use.
type RNG struct {
	state uint64
}

// NewRNG creates a generator at the given state
func NewRNG(seed uint64) *RNG {
	return &RNG{state: seed}
}

// State returns the current generator state (for persistence)
func (r *RNG) State() uint64 { return r.state }

// Seed sets the generator state
func (r *RNG) Seed(state uint64) { r.state = state }

func (r *RNG) next() uint64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return r.state >> 33
}

// Float64 returns a uniform value in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.next()) / sampleScale
}

// Signed returns a uniform value in [-1, 1)
func (r *RNG) Signed() float64 {
	return r.Float64()*2 - 1
}

// Intn returns a value in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	return int(r.next() % uint64(n))
}
