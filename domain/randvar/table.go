// Package randvar implements discrete random variables as immutable
// outcome/probability tables, plus joint distributions over tuples of
// outcomes and marginal extraction.
//
// Variables are compared by pointer identity throughout the query layer:
// two leaves of an event expression refer to "the same" variable exactly
// when they hold the same *Variable.
package randvar

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"godrv/domain/core"
)

// ProbabilityTolerance is the numeric tolerance applied wherever
// probability mass is checked against an exact value: construction-time
// sum-to-one checks and the joint-vs-product independence comparison.
const ProbabilityTolerance = 1e-6

// Variable is a discrete random variable: an ordered, duplicate-free
// mapping from outcome value to probability mass. Immutable once
// constructed; every transformation returns a new Variable.
type Variable struct {
	outcomes []float64
	probs    []float64

	// Marginals keep a back-reference to the joint they were summed out
	// of. The joint owns nothing back, so no cycle exists.
	joint    *Joint
	position int
}

// OutcomePoint is one outcome/probability pair of a read-only snapshot.
type OutcomePoint struct {
	Outcome     float64 `json:"outcome"`
	Probability float64 `json:"probability"`
}

// New constructs a Variable from index-aligned outcome and probability
// vectors. Duplicate outcomes are merged by summing their mass before
// validation. Fails with core.ErrShapeMismatch on length disagreement
// and core.ErrInvalidProbability on negative mass or a total deviating
// from 1 beyond ProbabilityTolerance.
func New(outcomes, probabilities []float64) (*Variable, error) {
	if len(outcomes) != len(probabilities) {
		return nil, core.NewShapeMismatchError(len(outcomes), len(probabilities))
	}
	if len(outcomes) == 0 {
		return nil, core.NewInvalidProbabilityError("no outcomes")
	}
	merged := make(map[float64]float64, len(outcomes))
	for i, x := range outcomes {
		if probabilities[i] < 0 {
			return nil, core.NewInvalidProbabilityError(fmt.Sprintf("negative mass %g for outcome %g", probabilities[i], x))
		}
		merged[x] += probabilities[i]
	}
	return fromMass(merged)
}

// FromOdds constructs a Variable from outcome/odds vectors, normalizing
// odds into probabilities. Fails with core.ErrInvalidProbability if any
// odds value is negative or all are zero.
func FromOdds(outcomes, odds []float64) (*Variable, error) {
	if len(outcomes) != len(odds) {
		return nil, core.NewShapeMismatchError(len(outcomes), len(odds))
	}
	for i, o := range odds {
		if o < 0 {
			return nil, core.NewInvalidProbabilityError(fmt.Sprintf("negative odds %g for outcome %g", o, outcomes[i]))
		}
	}
	total := floats.Sum(odds)
	if total == 0 {
		return nil, core.NewInvalidProbabilityError("all odds are zero")
	}
	probs := make([]float64, len(odds))
	for i, o := range odds {
		probs[i] = o / total
	}
	return New(outcomes, probs)
}

// Uniform constructs a Variable assigning equal mass to every outcome.
func Uniform(outcomes []float64) (*Variable, error) {
	odds := make([]float64, len(outcomes))
	for i := range odds {
		odds[i] = 1
	}
	return FromOdds(outcomes, odds)
}

// fromMass builds a Variable from merged outcome->mass entries, sorting
// outcomes ascending and enforcing the sum-to-one invariant.
func fromMass(mass map[float64]float64) (*Variable, error) {
	outcomes := make([]float64, 0, len(mass))
	for x := range mass {
		outcomes = append(outcomes, x)
	}
	sort.Float64s(outcomes)
	probs := make([]float64, len(outcomes))
	for i, x := range outcomes {
		probs[i] = mass[x]
	}
	total := floats.Sum(probs)
	if math.Abs(total-1) > ProbabilityTolerance {
		return nil, core.NewInvalidProbabilityError(fmt.Sprintf("probabilities sum to %g, want 1 within %g", total, ProbabilityTolerance))
	}
	return &Variable{outcomes: outcomes, probs: probs, position: -1}, nil
}

// Len returns the number of distinct outcomes.
func (v *Variable) Len() int { return len(v.outcomes) }

// Outcomes returns a copy of the outcome values, sorted ascending.
func (v *Variable) Outcomes() []float64 {
	out := make([]float64, len(v.outcomes))
	copy(out, v.outcomes)
	return out
}

// Probabilities returns a copy of the probability masses, index-aligned
// with Outcomes.
func (v *Variable) Probabilities() []float64 {
	out := make([]float64, len(v.probs))
	copy(out, v.probs)
	return out
}

// Each calls fn for every outcome/probability pair in outcome order.
func (v *Variable) Each(fn func(outcome, probability float64)) {
	for i, x := range v.outcomes {
		fn(x, v.probs[i])
	}
}

// ProbabilityOf sums the mass of outcomes satisfying pred. A predicate
// matching nothing yields 0; that is a valid zero-probability event,
// not an error.
func (v *Variable) ProbabilityOf(pred func(outcome float64) bool) float64 {
	var total float64
	for i, x := range v.outcomes {
		if pred(x) {
			total += v.probs[i]
		}
	}
	return total
}

// ExpectedValue returns E[transform(X)]. A nil transform means identity.
func (v *Variable) ExpectedValue(transform func(outcome float64) float64) float64 {
	var total float64
	for i, x := range v.outcomes {
		if transform != nil {
			x = transform(x)
		}
		total += x * v.probs[i]
	}
	return total
}

// Variance returns Var(X) = E[(X - E[X])^2].
func (v *Variable) Variance() float64 {
	mean := v.ExpectedValue(nil)
	return v.ExpectedValue(func(x float64) float64 {
		d := x - mean
		return d * d
	})
}

// JointRef reports the joint distribution this variable was
// marginalized from, and its tuple position there. ok is false for
// variables that are not marginals; such variables remain fully valid
// standalone tables.
func (v *Variable) JointRef() (joint *Joint, position int, ok bool) {
	if v.joint == nil {
		return nil, 0, false
	}
	return v.joint, v.position, true
}

// Snapshot returns the read-only outcome/probability pairs, sorted by
// outcome, for consumption by external display and serialization
// collaborators.
func (v *Variable) Snapshot() []OutcomePoint {
	points := make([]OutcomePoint, len(v.outcomes))
	for i, x := range v.outcomes {
		points[i] = OutcomePoint{Outcome: x, Probability: v.probs[i]}
	}
	return points
}
