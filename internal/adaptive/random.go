package adaptive

import (
	"time"

	"golang.org/x/exp/rand"
)

// Source supplies uniform random numbers in [0,1). Tests inject a fixed
// sequence to pin down weighted choices and scoring noise.
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded with seed. A zero seed uses the
// current time.
func NewSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// intn draws an index in [0,n) from src.
func intn(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
