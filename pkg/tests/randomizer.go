package tests

import (
	"math/rand"
	"time"
)

type Randomizer struct {
	Uint64N func(n uint64) uint64
}

func NewRandomizer() Randomizer {
	random := rand.New(rand.NewSource(time.Now().Unix())) //nolint:gosec // for tests

	return Randomizer{
		Uint64N: func(n uint64) uint64 {
			if n == 0 {
				return 0
			}

			return random.Uint64() % n
		},
	}
}
