package ports

// UniformSource produces uniform variates in [0,1) on demand. It is
// the only source of non-determinism in the core: samplers take it as
// an explicit dependency, never process-wide global state, so sampling
// runs are reproducible.
type UniformSource interface {
	Uniform() float64
}

// RNGPort creates deterministic uniform streams for named operations.
// Parallel sample batches must each use an independently derived
// stream; concurrent unsynchronized reads from one mutable generator
// would corrupt reproducibility.
type RNGPort interface {
	// SeededStream creates a deterministic uniform source for a named
	// operation.
	SeededStream(name string, seed int64) UniformSource
}
