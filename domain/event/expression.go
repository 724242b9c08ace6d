// Package event provides composable boolean predicates over discrete
// random variables. Expressions are lazy: building one performs no
// probability work; the query engine evaluates the tree against outcome
// tables.
package event

import "godrv/domain/randvar"

// Assignment binds each home variable to one candidate outcome during
// evaluation.
type Assignment map[*randvar.Variable]float64

// Expr is a node of a predicate tree. Every leaf is bound to exactly
// one home variable; combinators compose sub-expressions. Combining
// expressions over different homes is resolved by the query engine,
// dependence-aware when the homes are marginals of one joint.
type Expr interface {
	// Variables returns the home variables referenced by the
	// expression, in construction order, possibly with repeats.
	Variables() []*randvar.Variable

	// Matches reports whether the expression holds under assign.
	Matches(assign Assignment) bool
}

// Transform maps an outcome value before comparison.
type Transform func(outcome float64) float64

type compareOp int

const (
	opEq compareOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

type comparison struct {
	home      *randvar.Variable
	transform Transform
	op        compareOp
	value     float64
}

func (c *comparison) Variables() []*randvar.Variable { return []*randvar.Variable{c.home} }

func (c *comparison) Matches(assign Assignment) bool {
	x, ok := assign[c.home]
	if !ok {
		return false
	}
	if c.transform != nil {
		x = c.transform(x)
	}
	switch c.op {
	case opEq:
		return x == c.value
	case opNe:
		return x != c.value
	case opLt:
		return x < c.value
	case opLe:
		return x <= c.value
	case opGt:
		return x > c.value
	case opGe:
		return x >= c.value
	}
	return false
}

// Equals matches outcomes of v equal to x.
func Equals(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opEq, value: x}
}

// NotEquals matches outcomes of v different from x.
func NotEquals(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opNe, value: x}
}

// LessThan matches outcomes of v strictly below x.
func LessThan(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opLt, value: x}
}

// AtMost matches outcomes of v less than or equal to x.
func AtMost(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opLe, value: x}
}

// GreaterThan matches outcomes of v strictly above x.
func GreaterThan(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opGt, value: x}
}

// AtLeast matches outcomes of v greater than or equal to x.
func AtLeast(v *randvar.Variable, x float64) Expr {
	return &comparison{home: v, op: opGe, value: x}
}

// TransformedEquals matches outcomes whose transform equals x, e.g.
// TransformedEquals(v, func(x float64) float64 { return math.Mod(x, 2) }, 0)
// for "v is even".
func TransformedEquals(v *randvar.Variable, t Transform, x float64) Expr {
	return &comparison{home: v, transform: t, op: opEq, value: x}
}

type membership struct {
	home *randvar.Variable
	set  map[float64]struct{}
}

func (m *membership) Variables() []*randvar.Variable { return []*randvar.Variable{m.home} }

func (m *membership) Matches(assign Assignment) bool {
	x, ok := assign[m.home]
	if !ok {
		return false
	}
	_, in := m.set[x]
	return in
}

// In matches outcomes of v contained in the given set.
func In(v *randvar.Variable, values ...float64) Expr {
	set := make(map[float64]struct{}, len(values))
	for _, x := range values {
		set[x] = struct{}{}
	}
	return &membership{home: v, set: set}
}

type predicate struct {
	home *randvar.Variable
	pred func(outcome float64) bool
}

func (p *predicate) Variables() []*randvar.Variable { return []*randvar.Variable{p.home} }

func (p *predicate) Matches(assign Assignment) bool {
	x, ok := assign[p.home]
	if !ok {
		return false
	}
	return p.pred(x)
}

// Where matches outcomes of v satisfying an arbitrary predicate.
func Where(v *randvar.Variable, pred func(outcome float64) bool) Expr {
	return &predicate{home: v, pred: pred}
}

type conjunction struct{ children []Expr }

func (c *conjunction) Variables() []*randvar.Variable { return childVariables(c.children) }

func (c *conjunction) Matches(assign Assignment) bool {
	for _, child := range c.children {
		if !child.Matches(assign) {
			return false
		}
	}
	return true
}

// And matches when every sub-expression matches.
func And(exprs ...Expr) Expr { return &conjunction{children: exprs} }

type disjunction struct{ children []Expr }

func (d *disjunction) Variables() []*randvar.Variable { return childVariables(d.children) }

func (d *disjunction) Matches(assign Assignment) bool {
	for _, child := range d.children {
		if child.Matches(assign) {
			return true
		}
	}
	return false
}

// Or matches when at least one sub-expression matches.
func Or(exprs ...Expr) Expr { return &disjunction{children: exprs} }

type negation struct{ child Expr }

func (n *negation) Variables() []*randvar.Variable { return n.child.Variables() }

func (n *negation) Matches(assign Assignment) bool { return !n.child.Matches(assign) }

// Not inverts an expression.
func Not(expr Expr) Expr { return &negation{child: expr} }

func childVariables(children []Expr) []*randvar.Variable {
	var vars []*randvar.Variable
	for _, child := range children {
		vars = append(vars, child.Variables()...)
	}
	return vars
}
