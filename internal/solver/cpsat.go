package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// Status is the terminal state of a solve. Callers must branch on it
// before trusting objective or variable values.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusModelInvalid
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusUnbounded:
		return "UNBOUNDED"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// Solved reports whether variable values carry meaning for this status.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Params tunes a single solve call.
type Params struct {
	// MaxTimeSeconds limits the search; 0 means no limit, matching the
	// original behavior of running CBC to completion.
	MaxTimeSeconds float64
}

// Result holds the outcome of one solve. It is immutable.
type Result struct {
	Status    Status
	Objective float64
	values    map[int]int64
}

// Value returns the solved value of v, or 0 when the solve did not
// produce an assignment (or v was removed before solving).
func (r *Result) Value(v *Var) float64 {
	if r.values == nil || v == nil {
		return 0
	}
	return float64(r.values[v.id])
}

// Solve lowers the model to a CP-SAT instance and runs it to
// completion. Solving is deterministic for a fixed model: terms are
// emitted in variable-id order so the lowered instance is always the
// same proto, and the search runs single-worker with a fixed seed, so
// calling Solve twice without mutating the model yields identical
// results.
func (m *Model) Solve(params Params) (*Result, error) {
	builder := cpmodel.NewCpModelBuilder()

	satVars := make(map[int]cpmodel.IntVar, len(m.vars))
	for _, v := range m.vars {
		satVars[v.id] = builder.NewIntVar(boundToInt(v.lb, false), boundToInt(v.ub, true)).WithName(v.name)
	}

	for _, c := range m.constraints {
		expr := cpmodel.NewLinearExpr()
		for _, v := range sortedVars(c.coefs) {
			if v.removed {
				return nil, &ErrVarRemoved{Name: v.name}
			}
			expr.AddTerm(satVars[v.id], roundCoef(c.coefs[v]))
		}
		if !math.IsInf(c.lb, -1) {
			builder.AddGreaterOrEqual(expr, cpmodel.NewConstant(boundToInt(c.lb, false)))
		}
		if !math.IsInf(c.ub, 1) {
			builder.AddLessOrEqual(expr, cpmodel.NewConstant(boundToInt(c.ub, true)))
		}
	}

	objective := cpmodel.NewLinearExpr()
	for _, v := range sortedVars(m.objective) {
		if v.removed {
			return nil, &ErrVarRemoved{Name: v.name}
		}
		objective.AddTerm(satVars[v.id], roundCoef(m.objective[v]))
	}
	builder.Minimize(objective)

	model, err := builder.Model()
	if err != nil {
		return nil, fmt.Errorf("failed to build CP-SAT model: %w", err)
	}

	satParams := &sppb.SatParameters{
		NumWorkers: proto.Int32(1),
		RandomSeed: proto.Int32(1),
	}
	if params.MaxTimeSeconds > 0 {
		satParams.MaxTimeInSeconds = proto.Float64(params.MaxTimeSeconds)
	}

	response, err := cpmodel.SolveCpModelWithParameters(model, satParams)
	if err != nil {
		return nil, fmt.Errorf("CP-SAT solve failed: %w", err)
	}

	result := &Result{Status: mapStatus(response.GetStatus())}
	if result.Status.Solved() {
		result.Objective = response.GetObjectiveValue()
		result.values = make(map[int]int64, len(m.vars))
		for _, v := range m.vars {
			result.values[v.id] = cpmodel.SolutionIntegerValue(response, satVars[v.id])
		}
	}
	return result, nil
}

func mapStatus(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}

// boundToInt converts a float bound to the integer domain CP-SAT
// requires. Lower bounds round up and upper bounds round down so the
// integer feasible region never exceeds the declared one; infinite
// upper bounds clamp to Horizon.
func boundToInt(b float64, upper bool) int64 {
	if math.IsInf(b, 1) {
		return Horizon
	}
	if math.IsInf(b, -1) {
		return -Horizon
	}
	if upper {
		return int64(math.Floor(b))
	}
	return int64(math.Ceil(b))
}

func roundCoef(c float64) int64 {
	return int64(math.Round(c))
}

// sortedVars fixes an emission order for a coefficient map. Map
// iteration order would otherwise leak into the lowered proto and make
// two lowerings of the same model differ.
func sortedVars(coefs map[*Var]float64) []*Var {
	vars := make([]*Var, 0, len(coefs))
	for v := range coefs {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].id < vars[j].id })
	return vars
}
