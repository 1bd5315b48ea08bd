// Package solver provides a small modeling layer over the CP-SAT
// backend: non-negative integer variables, linear constraints with
// mutable coefficients and bounds, and a linear minimization objective.
//
// The layer exists because callers populate item balance rows
// incrementally while walking a recipe selection, and toggling a
// stock/infinite flag removes a variable together with every
// coefficient that referenced it. The backing CP-SAT proto is only
// materialized at Solve time.
package solver

import (
	"fmt"
	"math"
)

// Horizon caps variables declared with an infinite upper bound when the
// model is lowered to CP-SAT, which requires finite domains.
const Horizon = int64(1) << 34

// Infinity is the upper bound sentinel for unbounded variables and rows.
func Infinity() float64 { return math.Inf(1) }

// Var is an integer decision variable. A Var stays valid until removed
// from its Model; using a removed Var is a programming error and
// surfaces as ErrVarRemoved at solve time.
type Var struct {
	id      int
	name    string
	lb, ub  float64
	removed bool
}

// Name returns the diagnostic name the variable was created with.
func (v *Var) Name() string { return v.name }

// SetUpperBound replaces the variable's upper bound.
func (v *Var) SetUpperBound(ub float64) { v.ub = ub }

// Constraint is a linear row lb <= sum(coef_i * var_i) <= ub.
type Constraint struct {
	name   string
	lb, ub float64
	coefs  map[*Var]float64
}

// Name returns the diagnostic name the row was created with.
func (c *Constraint) Name() string { return c.name }

// SetCoefficient sets (or overwrites) the coefficient of v in this row.
func (c *Constraint) SetCoefficient(v *Var, coef float64) {
	if coef == 0 {
		delete(c.coefs, v)
		return
	}
	c.coefs[v] = coef
}

// Coefficient returns the current coefficient of v in this row.
func (c *Constraint) Coefficient(v *Var) float64 { return c.coefs[v] }

// SetBounds replaces the row bounds.
func (c *Constraint) SetBounds(lb, ub float64) {
	c.lb = lb
	c.ub = ub
}

// LowerBound returns the row's current lower bound.
func (c *Constraint) LowerBound() float64 { return c.lb }

// Model is a mutable integer program. It is not safe for concurrent use.
type Model struct {
	nextID      int
	vars        []*Var
	constraints []*Constraint
	objective   map[*Var]float64
}

// NewModel creates an empty minimization model.
func NewModel() *Model {
	return &Model{objective: make(map[*Var]float64)}
}

// NewIntVar creates a non-negative integer variable with the given
// bounds. Pass Infinity() for an unbounded variable.
func (m *Model) NewIntVar(lb, ub float64, name string) *Var {
	v := &Var{id: m.nextID, name: name, lb: lb, ub: ub}
	m.nextID++
	m.vars = append(m.vars, v)
	return v
}

// NewConstraint creates an unbounded row; callers narrow it with
// SetBounds and populate it with SetCoefficient.
func (m *Model) NewConstraint(name string) *Constraint {
	c := &Constraint{
		name:  name,
		lb:    math.Inf(-1),
		ub:    math.Inf(1),
		coefs: make(map[*Var]float64),
	}
	m.constraints = append(m.constraints, c)
	return c
}

// SetObjectiveCoefficient sets v's weight in the minimized objective.
func (m *Model) SetObjectiveCoefficient(v *Var, coef float64) {
	if coef == 0 {
		delete(m.objective, v)
		return
	}
	m.objective[v] = coef
}

// RemoveVar deletes the variable from the model and clears every
// constraint and objective coefficient that referenced it.
func (m *Model) RemoveVar(v *Var) {
	if v == nil || v.removed {
		return
	}
	v.removed = true
	for _, c := range m.constraints {
		delete(c.coefs, v)
	}
	delete(m.objective, v)
	for i, mv := range m.vars {
		if mv == v {
			m.vars = append(m.vars[:i], m.vars[i+1:]...)
			break
		}
	}
}

// VarCount returns the number of live variables.
func (m *Model) VarCount() int { return len(m.vars) }

// ErrVarRemoved reports use of a variable after RemoveVar.
type ErrVarRemoved struct {
	Name string
}

func (e *ErrVarRemoved) Error() string {
	return fmt.Sprintf("variable %s was removed from the model", e.Name)
}
