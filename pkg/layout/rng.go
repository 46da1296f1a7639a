package layout

// Seeds used by the force-directed strategies. Each call reseeds, so the
// same network always starts from the same scatter.
const (
	OrganicSeed uint32 = 42
	ForceSeed   uint32 = 7
)

// RNG is a mulberry32 generator: a single 32-bit counter with an
// xor-shift/multiply finalizer. It is fast and reproducible, and must
// never be used for anything security sensitive.
type RNG struct {
	state uint32
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Next returns the next value in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}
