package randvar

import "godrv/domain/core"

// Marginal extracts the univariate distribution of one tuple position
// by summing joint mass over all other positions. The result carries a
// back-reference to j and the position, which the query layer uses to
// resolve cross-variable conditioning between sibling marginals; the
// variable remains a valid standalone table regardless.
func Marginal(j *Joint, position int) (*Variable, error) {
	if position < 0 || position >= j.arity {
		return nil, core.NewIndexOutOfRangeError(position, j.arity)
	}
	mass := make(map[float64]float64)
	for i, t := range j.tuples {
		mass[t[position]] += j.probs[i]
	}
	v, err := fromMass(mass)
	if err != nil {
		return nil, err
	}
	v.joint = j
	v.position = position
	return v, nil
}

// Marginal is the method form of the package-level Marginal.
func (j *Joint) Marginal(position int) (*Variable, error) {
	return Marginal(j, position)
}

// Marginals extracts every component marginal of the joint.
func (j *Joint) Marginals() ([]*Variable, error) {
	out := make([]*Variable, j.arity)
	for pos := 0; pos < j.arity; pos++ {
		v, err := Marginal(j, pos)
		if err != nil {
			return nil, err
		}
		out[pos] = v
	}
	return out, nil
}
