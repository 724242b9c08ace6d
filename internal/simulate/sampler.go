// Package simulate draws i.i.d. samples from outcome tables and
// answers empirical-proportion queries over the results.
package simulate

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"godrv/domain/core"
	"godrv/domain/randvar"
	"godrv/ports"
)

// Sampler draws from a variable's categorical distribution by inverse
// CDF over an injected uniform source. With a seeded source the output
// is fully deterministic.
type Sampler struct {
	src ports.UniformSource
}

// NewSampler creates a sampler over src.
func NewSampler(src ports.UniformSource) *Sampler {
	return &Sampler{src: src}
}

// Sample draws n independent outcomes from v.
func (s *Sampler) Sample(v *randvar.Variable, n int) *SampleSet {
	cdf := cumulative(v)
	outcomes := v.Outcomes()
	values := make([]float64, n)
	for i := range values {
		values[i] = draw(outcomes, cdf, s.src.Uniform())
	}
	return &SampleSet{source: v, values: values}
}

// SampleConcurrent draws batches*perBatch outcomes using one derived
// stream per batch, so batches can run on separate goroutines without
// sharing a mutable generator. The result is deterministic for a fixed
// factory, batch count and batch size.
func SampleConcurrent(v *randvar.Variable, rngPort ports.RNGPort, batches, perBatch int) (*SampleSet, error) {
	if batches < 1 || perBatch < 1 {
		return nil, fmt.Errorf("%w: need positive batch count and size", core.ErrInvalidParameters)
	}
	results := make([][]float64, batches)
	var g errgroup.Group
	for b := 0; b < batches; b++ {
		b := b
		g.Go(func() error {
			src := rngPort.SeededStream(fmt.Sprintf("sample-batch-%d", b), int64(b))
			results[b] = NewSampler(src).Sample(v, perBatch).values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	values := make([]float64, 0, batches*perBatch)
	for _, batch := range results {
		values = append(values, batch...)
	}
	return &SampleSet{source: v, values: values}, nil
}

// cumulative returns the running mass totals aligned with v.Outcomes().
func cumulative(v *randvar.Variable) []float64 {
	cdf := make([]float64, 0, v.Len())
	running := 0.0
	v.Each(func(_, p float64) {
		running += p
		cdf = append(cdf, running)
	})
	// Guard the final bucket against float undershoot of the total.
	cdf[len(cdf)-1] = 1
	return cdf
}

func draw(outcomes, cdf []float64, u float64) float64 {
	i := sort.SearchFloat64s(cdf, u)
	if i == len(cdf) || (cdf[i] == u && i+1 < len(cdf)) {
		// u landed exactly on a boundary; the next bucket owns [u, next).
		i = min(i+1, len(cdf)-1)
	}
	return outcomes[i]
}

// SampleSet is an immutable sequence of sampled outcomes tagged with
// the variable they were drawn from.
type SampleSet struct {
	source *randvar.Variable
	values []float64
}

// Source returns the variable the samples were drawn from.
func (ss *SampleSet) Source() *randvar.Variable { return ss.source }

// Len returns the number of samples.
func (ss *SampleSet) Len() int { return len(ss.values) }

// Values returns a copy of the sampled outcomes in draw order.
func (ss *SampleSet) Values() []float64 {
	out := make([]float64, len(ss.values))
	copy(out, ss.values)
	return out
}

// Proportion returns the fraction of samples satisfying pred. Fails
// with core.ErrEmptySample on an empty set rather than defining 0/0.
func (ss *SampleSet) Proportion(pred func(outcome float64) bool) (float64, error) {
	if len(ss.values) == 0 {
		return 0, core.ErrEmptySample
	}
	matched := 0
	for _, x := range ss.values {
		if pred(x) {
			matched++
		}
	}
	return float64(matched) / float64(len(ss.values)), nil
}

// Mean returns the empirical mean of the samples.
func (ss *SampleSet) Mean() (float64, error) {
	if len(ss.values) == 0 {
		return 0, core.ErrEmptySample
	}
	return stats.Mean(ss.values)
}

// StdDev returns the empirical standard deviation of the samples.
func (ss *SampleSet) StdDev() (float64, error) {
	if len(ss.values) == 0 {
		return 0, core.ErrEmptySample
	}
	return stats.StandardDeviation(ss.values)
}
