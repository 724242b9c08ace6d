package randvar

import (
	"encoding/binary"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"godrv/domain/core"
)

// parallelThreshold is the Cartesian-product size above which joint
// enumeration is split across workers. Each output tuple is computed
// independently, so the split needs no cross-tuple synchronization.
const parallelThreshold = 4096

// Joint is a distribution over fixed-arity tuples of outcomes,
// capturing dependence between component variables. Immutable once
// constructed.
type Joint struct {
	id     core.JointID
	tuples [][]float64
	probs  []float64
	arity  int
}

// NewJoint constructs a Joint from tuple/probability vectors. The same
// invariants as New apply, generalized to tuples: duplicate tuples are
// merged by summing mass, all tuples must share one arity, masses must
// be non-negative and total 1 within ProbabilityTolerance.
func NewJoint(tuples [][]float64, probabilities []float64) (*Joint, error) {
	if len(tuples) != len(probabilities) {
		return nil, core.NewShapeMismatchError(len(tuples), len(probabilities))
	}
	if len(tuples) == 0 {
		return nil, core.NewInvalidProbabilityError("no outcome tuples")
	}
	arity := len(tuples[0])
	if arity == 0 {
		return nil, core.NewInvalidProbabilityError("zero-arity outcome tuple")
	}
	mass := make(map[string]float64, len(tuples))
	byKey := make(map[string][]float64, len(tuples))
	for i, t := range tuples {
		if len(t) != arity {
			return nil, fmt.Errorf("%w: tuple %d has arity %d, want %d", core.ErrShapeMismatch, i, len(t), arity)
		}
		if probabilities[i] < 0 {
			return nil, core.NewInvalidProbabilityError(fmt.Sprintf("negative mass %g for tuple %v", probabilities[i], t))
		}
		k := tupleKey(t)
		mass[k] += probabilities[i]
		if _, seen := byKey[k]; !seen {
			cp := make([]float64, arity)
			copy(cp, t)
			byKey[k] = cp
		}
	}
	merged := make([][]float64, 0, len(byKey))
	for k := range byKey {
		merged = append(merged, byKey[k])
	}
	sort.Slice(merged, func(i, j int) bool { return tupleLess(merged[i], merged[j]) })
	probs := make([]float64, len(merged))
	for i, t := range merged {
		probs[i] = mass[tupleKey(t)]
	}
	total := floats.Sum(probs)
	if math.Abs(total-1) > ProbabilityTolerance {
		return nil, core.NewInvalidProbabilityError(fmt.Sprintf("joint mass sums to %g, want 1 within %g", total, ProbabilityTolerance))
	}
	return &Joint{id: core.JointID(core.NewID()), tuples: merged, probs: probs, arity: arity}, nil
}

// JointOfIndependent builds the joint of two or more variables under
// independence: outcome tuples are the Cartesian product and each mass
// is the product of the marginal masses.
func JointOfIndependent(vars ...*Variable) (*Joint, error) {
	if len(vars) < 2 {
		return nil, fmt.Errorf("%w: joint composition needs at least 2 variables, got %d", core.ErrInvalidParameters, len(vars))
	}
	tuples, probs := enumerateProduct(vars, func(idx []int, _ []float64) float64 {
		p := 1.0
		for d, v := range vars {
			p *= v.probs[idx[d]]
		}
		return p
	})
	return &Joint{id: core.JointID(core.NewID()), tuples: tuples, probs: probs, arity: len(vars)}, nil
}

// IID builds the joint of n independent copies of v: the n-fold self
// Cartesian product. The joint grows as Len()^n; for the distribution
// of the sum alone, SumOfIID is the linear-cost path.
func IID(v *Variable, n int) (*Joint, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: iid composition needs n >= 2, got %d", core.ErrInvalidParameters, n)
	}
	vars := make([]*Variable, n)
	for i := range vars {
		vars[i] = v
	}
	return JointOfIndependent(vars...)
}

// JointRule supplies the joint mass for one outcome tuple.
type JointRule func(tuple []float64) float64

// JointByRule builds the full Cartesian product of the variables'
// outcomes with masses taken from rule. Fails with
// core.ErrInvalidProbability if the rule yields a negative mass or the
// masses do not total 1 within ProbabilityTolerance.
func JointByRule(rule JointRule, vars ...*Variable) (*Joint, error) {
	if len(vars) < 2 {
		return nil, fmt.Errorf("%w: joint composition needs at least 2 variables, got %d", core.ErrInvalidParameters, len(vars))
	}
	tuples, probs := enumerateProduct(vars, func(_ []int, tuple []float64) float64 {
		return rule(tuple)
	})
	for i, p := range probs {
		if p < 0 {
			return nil, core.NewInvalidProbabilityError(fmt.Sprintf("rule produced negative mass %g for tuple %v", p, tuples[i]))
		}
	}
	total := floats.Sum(probs)
	if math.Abs(total-1) > ProbabilityTolerance {
		return nil, core.NewInvalidProbabilityError(fmt.Sprintf("rule masses sum to %g, want 1 within %g", total, ProbabilityTolerance))
	}
	return &Joint{id: core.JointID(core.NewID()), tuples: tuples, probs: probs, arity: len(vars)}, nil
}

// ID returns the joint's identity, used as the lookup key by external
// collaborators and for shared-joint detection between marginals.
func (j *Joint) ID() core.JointID { return j.id }

// Arity returns the number of component variables.
func (j *Joint) Arity() int { return j.arity }

// Len returns the number of distinct outcome tuples.
func (j *Joint) Len() int { return len(j.tuples) }

// Each calls fn for every tuple/probability pair in enumeration order.
// The tuple slice is shared; fn must not modify or retain it.
func (j *Joint) Each(fn func(tuple []float64, probability float64)) {
	for i, t := range j.tuples {
		fn(t, j.probs[i])
	}
}

// ProbabilityOf sums the mass of tuples satisfying pred.
func (j *Joint) ProbabilityOf(pred func(tuple []float64) bool) float64 {
	var total float64
	for i, t := range j.tuples {
		if pred(t) {
			total += j.probs[i]
		}
	}
	return total
}

// Tuples returns a deep copy of the outcome tuples.
func (j *Joint) Tuples() [][]float64 {
	out := make([][]float64, len(j.tuples))
	for i, t := range j.tuples {
		cp := make([]float64, len(t))
		copy(cp, t)
		out[i] = cp
	}
	return out
}

// Probabilities returns a copy of the tuple masses, aligned with Tuples.
func (j *Joint) Probabilities() []float64 {
	out := make([]float64, len(j.probs))
	copy(out, j.probs)
	return out
}

// enumerateProduct materializes the Cartesian product of the variables'
// outcome sets in row-major order, with mass computed per tuple. Large
// products are filled concurrently, one index range per worker.
func enumerateProduct(vars []*Variable, mass func(idx []int, tuple []float64) float64) ([][]float64, []float64) {
	total := 1
	for _, v := range vars {
		total *= v.Len()
	}
	tuples := make([][]float64, total)
	probs := make([]float64, total)

	fill := func(lo, hi int) {
		idx := make([]int, len(vars))
		for i := lo; i < hi; i++ {
			rem := i
			tuple := make([]float64, len(vars))
			for d := len(vars) - 1; d >= 0; d-- {
				n := vars[d].Len()
				idx[d] = rem % n
				rem /= n
				tuple[d] = vars[d].outcomes[idx[d]]
			}
			tuples[i] = tuple
			probs[i] = mass(idx, tuple)
		}
	}

	if total < parallelThreshold {
		fill(0, total)
		return tuples, probs
	}

	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	chunk := (total + workers - 1) / workers
	for lo := 0; lo < total; lo += chunk {
		lo := lo
		hi := min(lo+chunk, total)
		g.Go(func() error {
			fill(lo, hi)
			return nil
		})
	}
	// Workers never fail; Wait is only a join point.
	_ = g.Wait()
	return tuples, probs
}

func tupleKey(t []float64) string {
	var b strings.Builder
	b.Grow(len(t) * 8)
	var buf [8]byte
	for _, v := range t {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		b.Write(buf[:])
	}
	return b.String()
}

func tupleLess(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
