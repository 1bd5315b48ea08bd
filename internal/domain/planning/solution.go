package planning

import "github.com/dcerda/craftflow/internal/solver"

// Solution is the interpreted outcome of one solve. It is immutable;
// every solve replaces the plan's solution wholesale.
type Solution struct {
	Status    solver.Status
	Objective float64

	// CraftCounts has an entry for every selected recipe, including
	// recipes the solution never runs.
	CraftCounts map[int32]float64

	// InfiniteDraws and HaveDraws are the amounts pulled from unlimited
	// sources and on-hand stock, keyed by item id.
	InfiniteDraws map[int32]float64
	HaveDraws     map[int32]float64

	// GrossProduced is result-amount x craft count summed per item, plus
	// have/infinite draws (draws count as production for display).
	// GrossConsumed is ingredient-amount x craft count summed per item.
	GrossProduced map[int32]float64
	GrossConsumed map[int32]float64
}

func newSolution(status solver.Status) *Solution {
	return &Solution{
		Status:        status,
		CraftCounts:   make(map[int32]float64),
		InfiniteDraws: make(map[int32]float64),
		HaveDraws:     make(map[int32]float64),
		GrossProduced: make(map[int32]float64),
		GrossConsumed: make(map[int32]float64),
	}
}
