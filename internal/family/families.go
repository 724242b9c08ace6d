package family

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"godrv/domain/core"
)

// Builtin families delegate to gonum's distuv PMFs where the family
// exists there; geometric uses the closed form since distuv carries no
// geometric distribution.
func builtins() []Family {
	return []Family{bernoulli(), binomial(), poisson(), geometric()}
}

func bernoulli() Family {
	return Family{
		Name: "bernoulli",
		Support: func(Params) (Support, error) {
			return Support{Lo: 0, Hi: 1}, nil
		},
		Mass: func(p Params) (MassFn, error) {
			prob, ok := p["p"]
			if !ok || prob < 0 || prob > 1 {
				return nil, core.NewInvalidParametersError("bernoulli", "need success probability p in [0,1]")
			}
			d := distuv.Bernoulli{P: prob}
			return d.Prob, nil
		},
	}
}

func binomial() Family {
	return Family{
		Name: "binomial",
		Support: func(p Params) (Support, error) {
			n := p["n"]
			if n < 0 || n != math.Trunc(n) {
				return Support{}, core.NewInvalidParametersError("binomial", "need non-negative integer trial count n")
			}
			return Support{Lo: 0, Hi: n}, nil
		},
		Mass: func(p Params) (MassFn, error) {
			n, okN := p["n"]
			prob, okP := p["p"]
			if !okN || n < 0 || n != math.Trunc(n) {
				return nil, core.NewInvalidParametersError("binomial", "need non-negative integer trial count n")
			}
			if !okP || prob < 0 || prob > 1 {
				return nil, core.NewInvalidParametersError("binomial", "need success probability p in [0,1]")
			}
			d := distuv.Binomial{N: n, P: prob}
			return d.Prob, nil
		},
	}
}

func poisson() Family {
	return Family{
		Name: "poisson",
		Support: func(Params) (Support, error) {
			return Support{Lo: 0, Unbounded: true}, nil
		},
		Mass: func(p Params) (MassFn, error) {
			lambda, ok := p["lambda"]
			if !ok || lambda <= 0 {
				return nil, core.NewInvalidParametersError("poisson", "need positive rate lambda")
			}
			d := distuv.Poisson{Lambda: lambda}
			return d.Prob, nil
		},
	}
}

func geometric() Family {
	return Family{
		Name: "geometric",
		Support: func(Params) (Support, error) {
			return Support{Lo: 0, Unbounded: true}, nil
		},
		Mass: func(p Params) (MassFn, error) {
			prob, ok := p["p"]
			if !ok || prob <= 0 || prob > 1 {
				return nil, core.NewInvalidParametersError("geometric", "need success probability p in (0,1]")
			}
			// Failures before the first success: P(k) = p * (1-p)^k.
			return func(k float64) float64 {
				if k < 0 || k != math.Trunc(k) {
					return 0
				}
				return prob * math.Pow(1-prob, k)
			}, nil
		},
	}
}
