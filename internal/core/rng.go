package core

import "math/rand/v2"

// RNG wraps a PCG source so that equal seeds reproduce equal layouts.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Shuffle randomizes the order of buf in place.
func (r *RNG) Shuffle(buf []uint8) {
	r.r.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
}
