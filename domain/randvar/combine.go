package randvar

import (
	"fmt"

	"godrv/domain/core"
)

// BinaryOp combines two outcome values into one.
type BinaryOp func(a, b float64) float64

// Add and Multiply are the standard arithmetic combination operators.
func Add(a, b float64) float64      { return a + b }
func Multiply(a, b float64) float64 { return a * b }

// Combine builds the distribution of op(X, Y) under the independence
// assumption: every outcome pair contributes mass P(a)*P(b), and pairs
// mapping to the same combined outcome have their mass accumulated.
// With Add this realizes discrete convolution.
func (v *Variable) Combine(other *Variable, op BinaryOp) (*Variable, error) {
	if other == nil {
		return nil, core.NewInvalidProbabilityError("combine with nil variable")
	}
	mass := make(map[float64]float64, v.Len()*other.Len())
	for i, a := range v.outcomes {
		pa := v.probs[i]
		for j, b := range other.outcomes {
			mass[op(a, b)] += pa * other.probs[j]
		}
	}
	return fromMass(mass)
}

// Sum returns the distribution of X + Y for independent X, Y.
func (v *Variable) Sum(other *Variable) (*Variable, error) {
	return v.Combine(other, Add)
}

// Product returns the distribution of X * Y for independent X, Y.
func (v *Variable) Product(other *Variable) (*Variable, error) {
	return v.Combine(other, Multiply)
}

// SumOfIID returns the distribution of the sum of n independent copies
// of v by repeated convolution. The distinct-sum count grows linearly
// in n, unlike the (support size)^n full joint, so this is the path to
// prefer for large n; it matches marginalizing the sum from the full
// n-fold joint within ProbabilityTolerance.
func SumOfIID(v *Variable, n int) (*Variable, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: need n >= 1 copies, got %d", core.ErrInvalidParameters, n)
	}
	acc := v
	var err error
	for i := 1; i < n; i++ {
		acc, err = acc.Sum(v)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
