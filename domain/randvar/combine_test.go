package randvar

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"godrv/domain/core"
)

func TestSumPreservesTotalMass(t *testing.T) {
	die := mustDie(t)
	roll, err := die.Sum(die)
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}
	if total := floats.Sum(roll.Probabilities()); math.Abs(total-1) > ProbabilityTolerance {
		t.Fatalf("convolution should preserve total mass, got %g", total)
	}
	if roll.Len() != 11 {
		t.Fatalf("two dice sum to 11 distinct outcomes, got %d", roll.Len())
	}
}

func TestTwoDiceDecisiveRolls(t *testing.T) {
	die := mustDie(t)
	roll, err := die.Sum(die)
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}

	decisive := map[float64]bool{2: true, 3: true, 7: true, 11: true, 12: true}

	// Expected probability from direct pair enumeration, not hardcoded.
	matches := 0
	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			if decisive[float64(a+b)] {
				matches++
			}
		}
	}
	want := float64(matches) / 36

	got := roll.ProbabilityOf(func(x float64) bool { return decisive[x] })
	if math.Abs(got-want) > ProbabilityTolerance {
		t.Fatalf("expected P(decisive) = %g from enumeration, got %g", want, got)
	}
}

func TestProductCombination(t *testing.T) {
	a, err := Uniform([]float64{2, 3})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	b, err := Uniform([]float64{3, 4})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	prod, err := a.Product(b)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	// 2*3=6, 2*4=8, 3*3=9, 3*4=12, each with mass 1/4.
	if prod.Len() != 4 {
		t.Fatalf("expected 4 distinct products, got %d", prod.Len())
	}
	if p := prod.ProbabilityOf(func(x float64) bool { return x == 12 }); math.Abs(p-0.25) > ProbabilityTolerance {
		t.Fatalf("expected P(XY=12) = 0.25, got %g", p)
	}
}

func TestCombineAccumulatesCollisions(t *testing.T) {
	coinA, err := New([]float64{0, 1}, []float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	sum, err := coinA.Sum(coinA)
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}
	if p := sum.ProbabilityOf(func(x float64) bool { return x == 1 }); math.Abs(p-0.5) > ProbabilityTolerance {
		t.Fatalf("expected colliding pairs (0,1) and (1,0) to accumulate to 0.5, got %g", p)
	}
}

func TestSumOfIIDExpectedValue(t *testing.T) {
	die := mustDie(t)
	twenty, err := SumOfIID(die, 20)
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}
	// Tolerance scaled slightly: 19 convolutions accumulate float error.
	if ev := twenty.ExpectedValue(nil); math.Abs(ev-70) > 1e-5 {
		t.Fatalf("expected E[sum of 20 dice] = 70, got %g", ev)
	}
	if total := floats.Sum(twenty.Probabilities()); math.Abs(total-1) > 1e-5 {
		t.Fatalf("expected total mass 1, got %g", total)
	}
}

func TestSumOfIIDMatchesJointDerivation(t *testing.T) {
	die := mustDie(t)
	viaConvolution, err := SumOfIID(die, 3)
	if err != nil {
		t.Fatalf("convolve: %v", err)
	}

	joint, err := IID(die, 3)
	if err != nil {
		t.Fatalf("build joint: %v", err)
	}
	viaJoint := make(map[float64]float64)
	joint.Each(func(tuple []float64, p float64) {
		viaJoint[tuple[0]+tuple[1]+tuple[2]] += p
	})

	if len(viaJoint) != viaConvolution.Len() {
		t.Fatalf("support mismatch: joint path %d outcomes, convolution path %d", len(viaJoint), viaConvolution.Len())
	}
	viaConvolution.Each(func(x, p float64) {
		if math.Abs(viaJoint[x]-p) > ProbabilityTolerance {
			t.Fatalf("mass mismatch at %g: joint path %g, convolution path %g", x, viaJoint[x], p)
		}
	})
}

func TestSumOfIIDRejectsNonPositiveCount(t *testing.T) {
	die := mustDie(t)
	if _, err := SumOfIID(die, 0); !errors.Is(err, core.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for n=0, got %v", err)
	}
}
