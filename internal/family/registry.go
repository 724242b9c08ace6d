// Package family builds outcome tables for named distribution families
// from a support descriptor plus a mass-generating rule. The registry
// is open: callers may register their own families alongside the
// builtins.
package family

import (
	"fmt"
	"math"
	"sort"

	"godrv/domain/core"
	"godrv/domain/randvar"
)

// Defaults for truncating semi-infinite supports. Enumeration stops
// once cumulative mass reaches Completeness or MaxOutcomes values have
// been generated, whichever comes first; the cap guarantees
// termination for misbehaving mass functions.
const (
	DefaultCompleteness = 1 - 1e-8
	DefaultMaxOutcomes  = 100000
)

// Params carries named family parameters, e.g. {"n": 10, "p": 0.5}.
type Params map[string]float64

// Support describes the outcome range of a family. Outcomes are
// enumerated from Lo in unit steps; Hi is ignored when Unbounded.
type Support struct {
	Lo        float64
	Hi        float64
	Unbounded bool
}

// MassFn returns the probability mass at one outcome.
type MassFn func(outcome float64) float64

// Family pairs a default support rule with a mass-function factory.
// The factory validates parameters and fails with
// core.ErrInvalidParameters when they are rejected.
type Family struct {
	Name    string
	Support func(p Params) (Support, error)
	Mass    func(p Params) (MassFn, error)
}

// Options tunes truncation of unbounded supports.
type Options struct {
	Completeness float64
	MaxOutcomes  int
}

// DefaultOptions returns the documented truncation defaults.
func DefaultOptions() Options {
	return Options{Completeness: DefaultCompleteness, MaxOutcomes: DefaultMaxOutcomes}
}

// Registry maps family names to their construction rules.
type Registry struct {
	families map[string]Family
}

// NewRegistry returns a registry pre-loaded with the builtin families:
// bernoulli, binomial, poisson, geometric.
func NewRegistry() *Registry {
	r := &Registry{families: make(map[string]Family)}
	for _, f := range builtins() {
		r.Register(f)
	}
	return r
}

// Register adds or replaces a family by name.
func (r *Registry) Register(f Family) {
	r.families[f.Name] = f
}

// Names lists the registered family names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named family's outcome table with default
// truncation options.
func (r *Registry) Build(name string, p Params) (*randvar.Variable, error) {
	return r.BuildWith(name, p, DefaultOptions())
}

// BuildWith constructs the named family's outcome table. Unbounded
// supports are truncated per opts and the residual mass renormalized
// so the table still sums to 1 within tolerance. Fails with
// core.ErrUnknownFamily for unregistered names and
// core.ErrInvalidParameters when the family rejects p.
func (r *Registry) BuildWith(name string, p Params, opts Options) (*randvar.Variable, error) {
	f, ok := r.families[name]
	if !ok {
		return nil, core.NewUnknownFamilyError(name)
	}
	mass, err := f.Mass(p)
	if err != nil {
		return nil, err
	}
	support, err := f.Support(p)
	if err != nil {
		return nil, err
	}
	if opts.Completeness <= 0 || opts.Completeness > 1 {
		opts.Completeness = DefaultCompleteness
	}
	if opts.MaxOutcomes <= 0 {
		opts.MaxOutcomes = DefaultMaxOutcomes
	}

	var outcomes, probs []float64
	cumulative := 0.0
	for x := support.Lo; support.Unbounded || x <= support.Hi; x++ {
		m := mass(x)
		if m < 0 || math.IsNaN(m) {
			return nil, core.NewInvalidParametersError(name, fmt.Sprintf("mass %g at outcome %g", m, x))
		}
		outcomes = append(outcomes, x)
		probs = append(probs, m)
		cumulative += m
		if support.Unbounded && (cumulative >= opts.Completeness || len(outcomes) >= opts.MaxOutcomes) {
			break
		}
	}
	if cumulative <= 0 {
		return nil, core.NewInvalidParametersError(name, "mass function produced no mass over the support")
	}

	// Renormalize the residual mass of the truncation (a no-op within
	// float error for complete supports).
	for i := range probs {
		probs[i] /= cumulative
	}
	return randvar.New(outcomes, probs)
}
