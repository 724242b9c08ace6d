// Command cli walks through the library: construction, convolution,
// conditional queries and simulation, printing display-collaborator
// output only.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"godrv/adapters/excel"
	"godrv/adapters/report"
	"godrv/adapters/rng"
	"godrv/domain/event"
	"godrv/domain/randvar"
	"godrv/internal/engine"
	"godrv/internal/simulate"
)

func main() {
	seed := flag.Int64("seed", 42, "seed for the simulation walk-through")
	samples := flag.Int("samples", 10000, "number of samples to draw")
	xlsxPath := flag.String("xlsx", "", "optional path to export snapshots as a workbook")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(*seed, *samples, *xlsxPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(seed int64, samples int, xlsxPath string) error {
	die, err := randvar.Uniform([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		return err
	}
	roll, err := die.Sum(die)
	if err != nil {
		return err
	}

	eng := engine.New()

	pSeven, err := eng.Probability(event.Equals(roll, 7))
	if err != nil {
		return err
	}
	pCraps, err := eng.Probability(event.In(roll, 2, 3, 7, 11, 12))
	if err != nil {
		return err
	}
	pSevenGivenHigh, err := eng.ConditionalProbability(
		event.Equals(roll, 7),
		event.AtLeast(roll, 6),
	)
	if err != nil {
		return err
	}

	fmt.Printf("P(roll = 7)        = %.6f\n", pSeven)
	fmt.Printf("P(roll decisive)   = %.6f\n", pCraps)
	fmt.Printf("P(roll = 7 | >= 6) = %.6f\n", pSevenGivenHigh)

	twenty, err := randvar.SumOfIID(die, 20)
	if err != nil {
		return err
	}
	fmt.Printf("E[sum of 20 dice]  = %.2f\n", twenty.ExpectedValue(nil))

	sampler := simulate.NewSampler(rng.NewSeeded(seed))
	set := sampler.Sample(roll, samples)
	prop, err := set.Proportion(func(x float64) bool { return x == 7 })
	if err != nil {
		return err
	}
	fmt.Printf("empirical P(roll = 7) over %d draws = %.6f\n", set.Len(), prop)

	fmt.Println()
	fmt.Print(report.Markdown("two-dice roll", roll))

	if xlsxPath != "" {
		err := excel.WriteSnapshot(xlsxPath, map[string]*randvar.Variable{
			"die":  die,
			"roll": roll,
		})
		if err != nil {
			return err
		}
		fmt.Printf("\nsnapshots exported to %s\n", xlsxPath)
	}
	return nil
}
