package rng

import (
	"math/rand"
	"time"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Seeded is a non-cryptographic generator backed by math/rand
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a math/rand backed generator
// If seed is 0, the current time is used
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}

// Seed returns the seed the generator was created with
func (s *Seeded) Seed() int64 {
	return s.seed
}

// New returns the crypto generator if useCrypto is true, otherwise a time-seeded generator
func New(useCrypto bool) Generator {
	if useCrypto {
		return Crypto{}
	}

	return NewSeeded(0)
}
