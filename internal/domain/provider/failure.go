package provider

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultFailureRate is the probability of a simulated provider hiccup
const DefaultFailureRate = 0.05

// FailureSimulator decides whether a provider settlement attempt fails transiently
type FailureSimulator interface {
	ShouldFail() bool
}

// FailureSimulatorFunc adapts a plain function to FailureSimulator
type FailureSimulatorFunc func() bool

func (f FailureSimulatorFunc) ShouldFail() bool { return f() }

// Never and Always are deterministic simulators
var (
	Never  FailureSimulator = FailureSimulatorFunc(func() bool { return false })
	Always FailureSimulator = FailureSimulatorFunc(func() bool { return true })
)

// RandomFailureSimulator fails with a fixed probability using one shared source
type RandomFailureSimulator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	rate float64
}

// NewRandomFailureSimulator creates a simulator; a zero seed seeds from the clock
func NewRandomFailureSimulator(rate float64, seed int64) *RandomFailureSimulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomFailureSimulator{
		rng:  rand.New(rand.NewSource(seed)),
		rate: rate,
	}
}

func (s *RandomFailureSimulator) ShouldFail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.rate
}

// Rate returns the configured failure probability
func (s *RandomFailureSimulator) Rate() float64 {
	return s.rate
}
