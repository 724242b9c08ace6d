// Package testkit provides fixtures shared by the package tests: stock
// variables, a deliberately correlated joint, and deterministic uniform
// sources.
package testkit

import (
	"fmt"

	"godrv/domain/randvar"
)

// Die returns a fair six-sided die.
func Die() *randvar.Variable {
	v, err := randvar.Uniform([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		panic(fmt.Sprintf("testkit: die fixture: %v", err))
	}
	return v
}

// Coin returns a Bernoulli variable over {0,1} with success mass p.
func Coin(p float64) *randvar.Variable {
	v, err := randvar.New([]float64{0, 1}, []float64{1 - p, p})
	if err != nil {
		panic(fmt.Sprintf("testkit: coin fixture: %v", err))
	}
	return v
}

// TwoDice returns the independent joint of two fair dice and its
// marginals.
func TwoDice() (*randvar.Joint, *randvar.Variable, *randvar.Variable) {
	joint, err := randvar.JointOfIndependent(Die(), Die())
	if err != nil {
		panic(fmt.Sprintf("testkit: two-dice fixture: %v", err))
	}
	a, err := joint.Marginal(0)
	if err != nil {
		panic(fmt.Sprintf("testkit: two-dice fixture: %v", err))
	}
	b, err := joint.Marginal(1)
	if err != nil {
		panic(fmt.Sprintf("testkit: two-dice fixture: %v", err))
	}
	return joint, a, b
}

// CorrelatedPair returns a 2x2 joint over {0,1}x{0,1} whose components
// are deliberately dependent (mass concentrated on the diagonal), with
// uniform marginals.
func CorrelatedPair() (*randvar.Joint, *randvar.Variable, *randvar.Variable) {
	joint, err := randvar.NewJoint(
		[][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
		[]float64{0.4, 0.1, 0.1, 0.4},
	)
	if err != nil {
		panic(fmt.Sprintf("testkit: correlated fixture: %v", err))
	}
	a, err := joint.Marginal(0)
	if err != nil {
		panic(fmt.Sprintf("testkit: correlated fixture: %v", err))
	}
	b, err := joint.Marginal(1)
	if err != nil {
		panic(fmt.Sprintf("testkit: correlated fixture: %v", err))
	}
	return joint, a, b
}

// FixedUniform replays a fixed sequence of variates, wrapping around at
// the end. Useful for pinning exactly which outcomes a sampler draws.
type FixedUniform struct {
	seq []float64
	i   int
}

// NewFixedUniform creates a source replaying seq.
func NewFixedUniform(seq ...float64) *FixedUniform {
	return &FixedUniform{seq: seq}
}

// Uniform returns the next variate of the sequence.
func (f *FixedUniform) Uniform() float64 {
	u := f.seq[f.i%len(f.seq)]
	f.i++
	return u
}
