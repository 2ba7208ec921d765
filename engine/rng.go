package engine

import "math/rand"

// Source is the randomness provider for minigame outcomes.
type Source interface {
	// Intn returns a random integer in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw and is reported in room snapshots.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// pick returns a uniformly chosen entry of pool.
func pick(src Source, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[src.Intn(len(pool))]
}
