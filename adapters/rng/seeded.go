// Package rng provides math/rand backed implementations of the uniform
// source ports.
package rng

import (
	"math/rand"

	"godrv/ports"
)

// Seeded is a deterministic uniform source over a seeded math/rand
// generator. Not safe for concurrent use; derive one stream per
// goroutine via StreamFactory instead.
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a uniform source with a fixed seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns the next variate in [0,1).
func (s *Seeded) Uniform() float64 { return s.rng.Float64() }

// StreamFactory implements ports.RNGPort, deriving independent
// deterministic streams from a base seed and an operation name.
type StreamFactory struct {
	baseSeed int64
}

// NewStreamFactory creates a factory rooted at baseSeed.
func NewStreamFactory(baseSeed int64) *StreamFactory {
	return &StreamFactory{baseSeed: baseSeed}
}

// SeededStream derives a stream whose seed mixes the base seed, the
// operation name and the caller's seed, so the same triple always
// yields the same stream.
func (f *StreamFactory) SeededStream(name string, seed int64) ports.UniformSource {
	derived := f.baseSeed + seed
	if name != "" {
		derived += int64(hashString(name))
	}
	return NewSeeded(derived)
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
