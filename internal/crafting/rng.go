package crafting

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniformly distributed values in [0, 1)
type RandomSource interface {
	Float64() float64
}

type globalRNG struct{}

func (globalRNG) Float64() float64 { return rand.Float64() }

// DefaultRandomSource returns the process-wide math/rand/v2 source
func DefaultRandomSource() RandomSource { return globalRNG{} }

// Reproducible source for tests and replays
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRandomSource returns a PCG-backed source that yields the same sequence for the same seed
func NewSeededRandomSource(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}
