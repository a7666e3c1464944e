package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from the operating system's secure source
// It carries no seed, so shoes it shuffles cannot be replayed
type Crypto struct{}

// Intn returns a uniform number from 0 <= x < n
// It panics if n <= 0 or the system source fails
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(v.Int64())
}
