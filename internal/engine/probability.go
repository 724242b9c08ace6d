// Package engine reduces event expressions to probabilities by
// consulting the outcome tables the expressions are bound to.
//
// Resolution order for multi-variable expressions:
//
//  1. All homes are marginals of one joint: evaluate over the joint's
//     tuples directly, which is dependence-aware.
//  2. Otherwise: fall back to the independent-product assumption. This
//     fallback is a documented design choice, not a statistically
//     validated one; callers needing dependence must supply the joint,
//     and strict mode turns the fallback into ErrNoJointAvailable.
package engine

import (
	"fmt"
	"math"

	"godrv/domain/core"
	"godrv/domain/event"
	"godrv/domain/randvar"
)

// Engine evaluates probability queries over event expressions.
type Engine struct {
	strict bool
}

// New returns an engine using the independence fallback for variables
// without a shared joint.
func New() *Engine { return &Engine{} }

// NewStrict returns an engine that fails with core.ErrNoJointAvailable
// instead of silently assuming independence.
func NewStrict() *Engine { return &Engine{strict: true} }

// Probability computes P(expr).
func (e *Engine) Probability(expr event.Expr) (float64, error) {
	homes := distinctHomes(expr)
	if len(homes) == 0 {
		return 0, fmt.Errorf("%w: expression references no variables", core.ErrInvalidParameters)
	}

	if len(homes) == 1 {
		home := homes[0]
		assign := event.Assignment{}
		total := 0.0
		home.Each(func(x, p float64) {
			assign[home] = x
			if expr.Matches(assign) {
				total += p
			}
		})
		return total, nil
	}

	if joint, positions, ok := sharedJoint(homes); ok {
		assign := event.Assignment{}
		total := 0.0
		joint.Each(func(tuple []float64, p float64) {
			for i, home := range homes {
				assign[home] = tuple[positions[i]]
			}
			if expr.Matches(assign) {
				total += p
			}
		})
		return total, nil
	}

	if e.strict {
		return 0, fmt.Errorf("%w: expression spans %d variables without a shared joint", core.ErrNoJointAvailable, len(homes))
	}
	total := 0.0
	enumerateIndependent(homes, event.Assignment{}, 0, 1, func(assign event.Assignment, p float64) {
		if expr.Matches(assign) {
			total += p
		}
	})
	return total, nil
}

// ConditionalProbability computes P(expr | cond) as
// P(expr AND cond) / P(cond), resolving both jointly where possible.
// Fails with core.ErrDivisionByZero when P(cond) is 0; an undefined
// conditional probability is never reported as 0 or NaN.
func (e *Engine) ConditionalProbability(expr, cond event.Expr) (float64, error) {
	pCond, err := e.Probability(cond)
	if err != nil {
		return 0, err
	}
	if pCond == 0 {
		return 0, core.ErrDivisionByZero
	}
	pBoth, err := e.Probability(event.And(expr, cond))
	if err != nil {
		return 0, err
	}
	// The ratio can creep past 1 by float error when expr implies cond.
	return math.Min(pBoth/pCond, 1), nil
}

// Independent reports whether a and b are independent under their
// shared joint, comparing the joint mass of every outcome pair against
// the product of the marginal masses within
// randvar.ProbabilityTolerance. Fails with core.ErrNoJointAvailable
// when a and b are not marginals of one joint.
func (e *Engine) Independent(a, b *randvar.Variable) (bool, error) {
	jointA, posA, okA := a.JointRef()
	jointB, posB, okB := b.JointRef()
	if !okA || !okB || jointA != jointB {
		return false, fmt.Errorf("%w: variables are not marginals of a common joint", core.ErrNoJointAvailable)
	}

	pairMass := make(map[[2]float64]float64)
	jointA.Each(func(tuple []float64, p float64) {
		pairMass[[2]float64{tuple[posA], tuple[posB]}] += p
	})

	independent := true
	a.Each(func(x, px float64) {
		b.Each(func(y, py float64) {
			if math.Abs(pairMass[[2]float64{x, y}]-px*py) > randvar.ProbabilityTolerance {
				independent = false
			}
		})
	})
	return independent, nil
}

// ConditionalDistribution returns the distribution of v restricted to
// outcomes consistent with cond, renormalized by P(cond). Fails with
// core.ErrDivisionByZero when P(cond) is 0.
func (e *Engine) ConditionalDistribution(v *randvar.Variable, cond event.Expr) (*randvar.Variable, error) {
	pCond, err := e.Probability(cond)
	if err != nil {
		return nil, err
	}
	if pCond == 0 {
		return nil, core.ErrDivisionByZero
	}

	var outcomes, probs []float64
	for _, x := range v.Outcomes() {
		pBoth, err := e.Probability(event.And(event.Equals(v, x), cond))
		if err != nil {
			return nil, err
		}
		if pBoth > 0 {
			outcomes = append(outcomes, x)
			probs = append(probs, pBoth/pCond)
		}
	}
	return randvar.New(outcomes, probs)
}

// distinctHomes deduplicates the expression's home variables by pointer
// identity, preserving first-reference order.
func distinctHomes(expr event.Expr) []*randvar.Variable {
	seen := make(map[*randvar.Variable]struct{})
	var homes []*randvar.Variable
	for _, v := range expr.Variables() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		homes = append(homes, v)
	}
	return homes
}

// sharedJoint reports the single joint all homes are marginals of, and
// each home's tuple position there. Partial sharing does not qualify:
// the dependence-aware path needs every home resolvable against the
// same tuple.
func sharedJoint(homes []*randvar.Variable) (*randvar.Joint, []int, bool) {
	var joint *randvar.Joint
	positions := make([]int, len(homes))
	for i, home := range homes {
		j, pos, ok := home.JointRef()
		if !ok {
			return nil, nil, false
		}
		if joint == nil {
			joint = j
		} else if j != joint {
			return nil, nil, false
		}
		positions[i] = pos
	}
	return joint, positions, true
}

// enumerateIndependent walks every outcome assignment of the homes with
// the product of the marginal masses, the implicit independence
// fallback of the resolution protocol.
func enumerateIndependent(homes []*randvar.Variable, assign event.Assignment, depth int, acc float64, visit func(event.Assignment, float64)) {
	if depth == len(homes) {
		visit(assign, acc)
		return
	}
	home := homes[depth]
	home.Each(func(x, p float64) {
		assign[home] = x
		enumerateIndependent(homes, assign, depth+1, acc*p, visit)
	})
	delete(assign, home)
}
