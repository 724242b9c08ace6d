package family

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"godrv/domain/core"
	"godrv/domain/randvar"
)

func TestBinomialBuild(t *testing.T) {
	r := NewRegistry()
	v, err := r.Build("binomial", Params{"n": 10, "p": 0.3})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if v.Len() != 11 {
		t.Fatalf("expected support 0..10, got %d outcomes", v.Len())
	}
	if total := floats.Sum(v.Probabilities()); math.Abs(total-1) > randvar.ProbabilityTolerance {
		t.Fatalf("expected total mass 1, got %g", total)
	}
	if ev := v.ExpectedValue(nil); math.Abs(ev-3) > 1e-9 {
		t.Fatalf("expected E[X] = np = 3, got %g", ev)
	}
}

func TestPoissonTruncation(t *testing.T) {
	r := NewRegistry()
	v, err := r.Build("poisson", Params{"lambda": 4})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if total := floats.Sum(v.Probabilities()); math.Abs(total-1) > randvar.ProbabilityTolerance {
		t.Fatalf("truncated table must renormalize to 1, got %g", total)
	}
	if ev := v.ExpectedValue(nil); math.Abs(ev-4) > 1e-4 {
		t.Fatalf("expected E[X] close to lambda = 4, got %g", ev)
	}
	if v.Len() >= DefaultMaxOutcomes {
		t.Fatalf("completeness threshold should stop enumeration early, got %d outcomes", v.Len())
	}
}

func TestGeometricBuild(t *testing.T) {
	r := NewRegistry()
	v, err := r.Build("geometric", Params{"p": 0.25})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// E[X] = (1-p)/p = 3 for failures-before-first-success.
	if ev := v.ExpectedValue(nil); math.Abs(ev-3) > 1e-4 {
		t.Fatalf("expected E[X] = 3, got %g", ev)
	}
}

func TestBernoulliBuild(t *testing.T) {
	r := NewRegistry()
	v, err := r.Build("bernoulli", Params{"p": 0.2})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p := v.ProbabilityOf(func(x float64) bool { return x == 1 }); math.Abs(p-0.2) > randvar.ProbabilityTolerance {
		t.Fatalf("expected P(X=1) = 0.2, got %g", p)
	}
}

func TestUnknownFamily(t *testing.T) {
	r := NewRegistry()
	_, err := r.Build("zeta", Params{"s": 2})
	if !errors.Is(err, core.ErrUnknownFamily) {
		t.Fatalf("expected ErrUnknownFamily, got %v", err)
	}
}

func TestInvalidParameters(t *testing.T) {
	r := NewRegistry()
	cases := []struct {
		family string
		params Params
	}{
		{"poisson", Params{"lambda": -2}},
		{"binomial", Params{"n": 5.5, "p": 0.5}},
		{"binomial", Params{"n": 5, "p": 1.5}},
		{"geometric", Params{"p": 0}},
		{"bernoulli", Params{}},
	}
	for _, tc := range cases {
		if _, err := r.Build(tc.family, tc.params); !errors.Is(err, core.ErrInvalidParameters) {
			t.Fatalf("%s %v: expected ErrInvalidParameters, got %v", tc.family, tc.params, err)
		}
	}
}

func TestEnumerationCapForcesTermination(t *testing.T) {
	r := NewRegistry()
	v, err := r.BuildWith("geometric", Params{"p": 0.5}, Options{Completeness: 1, MaxOutcomes: 8})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if v.Len() != 8 {
		t.Fatalf("expected enumeration capped at 8 outcomes, got %d", v.Len())
	}
	if total := floats.Sum(v.Probabilities()); math.Abs(total-1) > randvar.ProbabilityTolerance {
		t.Fatalf("capped table must renormalize to 1, got %g", total)
	}
}

func TestRegisterCustomFamily(t *testing.T) {
	r := NewRegistry()
	r.Register(Family{
		Name: "triangular-die",
		Support: func(Params) (Support, error) {
			return Support{Lo: 1, Hi: 3}, nil
		},
		Mass: func(Params) (MassFn, error) {
			masses := map[float64]float64{1: 0.25, 2: 0.5, 3: 0.25}
			return func(x float64) float64 { return masses[x] }, nil
		},
	})

	v, err := r.Build("triangular-die", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p := v.ProbabilityOf(func(x float64) bool { return x == 2 }); math.Abs(p-0.5) > randvar.ProbabilityTolerance {
		t.Fatalf("expected peak mass 0.5, got %g", p)
	}

	found := false
	for _, name := range r.Names() {
		if name == "triangular-die" {
			found = true
		}
	}
	if !found {
		t.Fatal("registered family missing from Names()")
	}
}
