package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/domain/planning"
	"github.com/dcerda/craftflow/internal/solver"
	"github.com/dcerda/craftflow/test/helpers"
)

func TestPlan_Solve_BalancesSingleRecipe(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	require.NotNil(t, sol)
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 5.0, sol.CraftCounts[1])
	assert.Equal(t, 10.0, sol.GrossConsumed[10])
	assert.Equal(t, 5.0, sol.GrossProduced[20])

	// The ingot is not produced by any selected recipe, so it is drawn
	// from an implicit unlimited source at the fixed penalty weight.
	assert.Equal(t, 10.0, sol.InfiniteDraws[10])
	assert.Equal(t, 5.0+10.0*1000.0, sol.Objective)

	ingot, ok := p.Demand(10)
	require.True(t, ok)
	assert.Equal(t, 10.0, ingot.TotalConsumed)
	assert.Equal(t, 0.0, ingot.TotalProduced)
	assert.Equal(t, 10.0, ingot.RawRequirement())

	gear, ok := p.Demand(20)
	require.True(t, ok)
	assert.Equal(t, 5.0, gear.TotalProduced)
	assert.Equal(t, 0.0, gear.TotalConsumed)
	assert.Equal(t, 0.0, gear.Byproduct())
}

func TestPlan_Solve_PrefersStockOverInfiniteSources(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	p.SetHave(10, 4)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 5.0, sol.CraftCounts[1])
	assert.Equal(t, 4.0, sol.HaveDraws[10])
	assert.Equal(t, 6.0, sol.InfiniteDraws[10])
	assert.Equal(t, 5.0+6.0*1000.0-4.0*100.0, sol.Objective)
}

func TestPlan_Solve_ExplicitInfiniteCostReplacesPenalty(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	p.SetInfinite(10, true, 2)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 10.0, sol.InfiniteDraws[10])
	assert.Equal(t, 5.0+10.0*2.0, sol.Objective)
}

func TestPlan_Solve_ChainRoutesThroughIntermediate(t *testing.T) {
	// Arrange: 1 ore -> 2 dust, 4 dust -> 1 alloy
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(30, "Raw Ore")
	cat.AddItem(31, "Metal Dust")
	cat.AddItem(32, "Alloy Ingot")
	cat.AddRecipe(1, "macerator",
		[]catalog.Stack{cat.Stack(30, 1)},
		[]catalog.Stack{cat.Stack(31, 2)})
	cat.AddRecipe(2, "mixer",
		[]catalog.Stack{cat.Stack(31, 4)},
		[]catalog.Stack{cat.Stack(32, 1)})
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	require.NoError(t, p.AddRecipe(2))
	p.SetWant(32, 3)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 6.0, sol.CraftCounts[1])
	assert.Equal(t, 3.0, sol.CraftCounts[2])

	// Only the ore is an implicit source; the dust is produced in-plan.
	assert.Equal(t, 6.0, sol.InfiniteDraws[30])
	assert.NotContains(t, sol.InfiniteDraws, int32(31))
	assert.Equal(t, 9.0+6.0*1000.0, sol.Objective)

	dust, ok := p.Demand(31)
	require.True(t, ok)
	assert.Equal(t, 12.0, dust.TotalProduced)
	assert.Equal(t, 12.0, dust.TotalConsumed)
}

func TestPlan_Solve_IndivisibleDemandLeavesByproduct(t *testing.T) {
	// Arrange: each craft yields 3 gears but 5 are wanted
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(10, "Iron Ingot")
	cat.AddItem(20, "Iron Gear")
	cat.AddRecipe(1, "assembler",
		[]catalog.Stack{cat.Stack(10, 1)},
		[]catalog.Stack{cat.Stack(20, 3)})
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 2.0, sol.CraftCounts[1])

	gear, ok := p.Demand(20)
	require.True(t, ok)
	assert.Equal(t, 6.0, gear.TotalProduced)
	assert.Equal(t, 1.0, gear.Byproduct())
}

func TestPlan_Solve_FractionalSourceCostIsExact(t *testing.T) {
	// Arrange: a sub-unit per-item cost must not round away
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	p.SetInfinite(10, true, 0.4)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 10.0, sol.InfiniteDraws[10])
	assert.Equal(t, 5.0+10.0*0.4, sol.Objective)
}

func TestPlan_Solve_SymmetricRecipesSolveIdentically(t *testing.T) {
	// Arrange: two interchangeable recipes make the same conversion, so
	// the optimum is degenerate and the tie-break must be stable.
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(10, "Iron Ingot")
	cat.AddItem(20, "Iron Plate")
	cat.AddRecipe(1, "bender",
		[]catalog.Stack{cat.Stack(10, 1)},
		[]catalog.Stack{cat.Stack(20, 1)})
	cat.AddRecipe(2, "hammer",
		[]catalog.Stack{cat.Stack(10, 1)},
		[]catalog.Stack{cat.Stack(20, 1)})
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	require.NoError(t, p.AddRecipe(2))
	p.SetWant(20, 1)

	// Act
	require.NoError(t, p.Solve())
	first := p.Solution()
	require.NoError(t, p.Solve())
	second := p.Solution()

	// Assert
	require.Equal(t, solver.StatusOptimal, first.Status)
	assert.Equal(t, 1.0, first.CraftCounts[1]+first.CraftCounts[2])
	assert.Equal(t, first.CraftCounts, second.CraftCounts)
	assert.Equal(t, first.InfiniteDraws, second.InfiniteDraws)
	assert.Equal(t, first.Objective, second.Objective)
}

func TestPlan_Solve_NetConsumerIsInfeasible(t *testing.T) {
	// Arrange: the only recipe consumes more of the wanted item than it
	// produces, and producing it in-plan rules out an implicit source.
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(40, "Compressed Block")
	cat.AddRecipe(1, "compressor",
		[]catalog.Stack{cat.Stack(40, 2)},
		[]catalog.Stack{cat.Stack(40, 1)})
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(40, 10)

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	sol := p.Solution()
	require.NotNil(t, sol)
	assert.Equal(t, solver.StatusInfeasible, sol.Status)
	assert.False(t, sol.Status.Solved())
	assert.Empty(t, sol.CraftCounts)
}

func TestPlan_Solve_EmptyPlanKeepsPriorSolution(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	require.NoError(t, p.Solve())
	prior := p.Solution()
	require.NotNil(t, prior)
	require.NoError(t, p.RemoveRecipe(1))

	// Act
	err := p.Solve()

	// Assert
	require.NoError(t, err)
	assert.Same(t, prior, p.Solution())
}

func TestPlan_Solve_Idempotent(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	p.SetHave(10, 4)

	// Act
	require.NoError(t, p.Solve())
	first := p.Solution()
	require.NoError(t, p.Solve())
	second := p.Solution()

	// Assert
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Objective, second.Objective)
	assert.Equal(t, first.CraftCounts, second.CraftCounts)
	assert.Equal(t, first.InfiniteDraws, second.InfiniteDraws)
	assert.Equal(t, first.HaveDraws, second.HaveDraws)
	assert.Equal(t, first.GrossProduced, second.GrossProduced)
	assert.Equal(t, first.GrossConsumed, second.GrossConsumed)
}

func TestPlan_Solve_OreSlotOverrideMovesDraw(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(2))
	p.SetWant(21, 2)

	// Act - default slot item
	require.NoError(t, p.Solve())

	// Assert
	sol := p.Solution()
	assert.Equal(t, solver.StatusOptimal, sol.Status)
	assert.Equal(t, 2.0, sol.CraftCounts[2])
	assert.Equal(t, 6.0, sol.InfiniteDraws[11])

	// Act - override the slot and re-solve
	require.NoError(t, p.SetOreSlotOverride(2, 0, 12))
	require.NoError(t, p.Solve())

	// Assert
	sol = p.Solution()
	assert.Equal(t, 6.0, sol.InfiniteDraws[12])
	assert.NotContains(t, sol.InfiniteDraws, int32(11))
}
