package planning

import (
	"fmt"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/solver"
)

// Objective weights. The ordering is deliberate semantics, not tuning:
// consume stock first, then craft, then draw from explicit infinite
// sources at their stated cost; implicit infinite sources are a last
// resort that signals an incomplete selection.
const (
	craftCost            = 1.0
	craftTax             = 1.0
	implicitInfiniteCost = 1000.0
	haveCredit           = -100.0

	// costScale lowers objective and cost-row weights at milli-unit
	// precision: the backend is integer-only, and a user-stated
	// per-unit source cost like 0.4 must not round away. The solved
	// objective is scaled back before it is reported.
	costScale = 1000.0
)

// recipeProgram is one fully-built integer program for a plan snapshot:
// a craft variable per recipe, a balance row per referenced item, and
// the global cost/tax rows. Rebuilt from scratch on every solve.
type recipeProgram struct {
	model  *solver.Model
	params solver.Params

	costVar *solver.Var
	taxVar  *solver.Var
	costRow *solver.Constraint
	taxRow  *solver.Constraint

	recipes map[int32]*recipeEntry
	// order holds the selected recipe ids ascending. Every build walks
	// recipes and items in id order so two builds of the same plan
	// lower to the identical backend model.
	order []int32
	items map[int32]*itemEntry
}

type recipeEntry struct {
	id          int32
	ingredients []catalog.Stack
	results     []catalog.Stack
	craftVar    *solver.Var
}

type itemEntry struct {
	id       int32
	balance  *solver.Constraint
	haveVar  *solver.Var
	infVar   *solver.Var
	infinite bool // explicit or implicit
}

// newRecipeProgram translates the plan's current state into variables
// and constraints. Ore slots are resolved to concrete items before any
// coefficient is computed; the builder never sees substitution classes.
func newRecipeProgram(p *Plan) (*recipeProgram, error) {
	pr := &recipeProgram{
		model:   solver.NewModel(),
		params:  p.SolveParams,
		recipes: make(map[int32]*recipeEntry),
		items:   make(map[int32]*itemEntry),
	}
	pr.costVar = pr.model.NewIntVar(0, solver.Infinity(), "cost")
	pr.taxVar = pr.model.NewIntVar(0, solver.Infinity(), "tax")
	pr.costRow = pr.model.NewConstraint("cost")
	pr.taxRow = pr.model.NewConstraint("tax")
	pr.costRow.SetBounds(0, solver.Infinity())
	pr.taxRow.SetBounds(0, solver.Infinity())
	pr.costRow.SetCoefficient(pr.costVar, 1)
	pr.costRow.SetCoefficient(pr.taxVar, 1)
	pr.taxRow.SetCoefficient(pr.taxVar, 1)

	pr.order = p.RecipeIDs()
	for _, id := range pr.order {
		sel := p.recipes[id]
		ingredients, err := sel.EffectiveIngredients(p.catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ingredients of recipe %d: %w", id, err)
		}
		pr.recipes[id] = &recipeEntry{
			id:          id,
			ingredients: ingredients,
			results:     sel.Recipe().Results,
			craftVar:    pr.model.NewIntVar(0, solver.Infinity(), fmt.Sprintf("recipe-%d", id)),
		}
	}

	pr.addItemRows(p)
	pr.markImplicitInfinite(p)
	pr.setRecipeCoefficients()

	return pr, nil
}

// addItemRows creates one balance row per referenced item and the
// have/infinite source variables driven by the demand configuration.
func (pr *recipeProgram) addItemRows(p *Plan) {
	for _, id := range pr.order {
		entry := pr.recipes[id]
		for _, st := range entry.ingredients {
			pr.itemEntry(st.Item.ID)
		}
		for _, st := range entry.results {
			pr.itemEntry(st.Item.ID)
		}
	}

	for _, itemID := range p.ItemIDs() {
		demand := p.items[itemID]
		entry, ok := pr.items[itemID]
		if !ok {
			// Demand map and referenced set agree by the reconciliation
			// invariant, but a stale entry must not crash the build.
			continue
		}
		entry.balance.SetBounds(demand.Want, solver.Infinity())

		if demand.Have > 0 {
			entry.haveVar = pr.model.NewIntVar(0, demand.Have, fmt.Sprintf("have-%d", itemID))
			entry.balance.SetCoefficient(entry.haveVar, 1)
			pr.costRow.SetCoefficient(entry.haveVar, haveCredit*costScale)
			pr.model.SetObjectiveCoefficient(entry.haveVar, haveCredit*costScale)
		}
		if demand.AllowInfinite {
			pr.setItemInfinite(entry, demand.InfiniteCost)
		}
	}
}

// markImplicitInfinite flags every ingredient that no selected recipe
// produces as an unlimited source with the fixed penalty weight. The
// flag is recomputed on every build and never written back to the plan.
func (pr *recipeProgram) markImplicitInfinite(p *Plan) {
	produced := make(map[int32]struct{})
	for _, id := range pr.order {
		for _, st := range pr.recipes[id].results {
			produced[st.Item.ID] = struct{}{}
		}
	}
	for _, id := range pr.order {
		for _, st := range pr.recipes[id].ingredients {
			if _, ok := produced[st.Item.ID]; ok {
				continue
			}
			item := pr.itemEntry(st.Item.ID)
			if !item.infinite {
				pr.setItemInfinite(item, implicitInfiniteCost)
			}
		}
	}
}

func (pr *recipeProgram) setItemInfinite(entry *itemEntry, cost float64) {
	if entry.infVar == nil {
		entry.infVar = pr.model.NewIntVar(0, solver.Infinity(), fmt.Sprintf("inf-%d", entry.id))
		entry.balance.SetCoefficient(entry.infVar, 1)
	}
	entry.infinite = true
	pr.costRow.SetCoefficient(entry.infVar, cost*costScale)
	pr.model.SetObjectiveCoefficient(entry.infVar, cost*costScale)
}

// setRecipeCoefficients fills the balance rows with the signed item
// amounts of every recipe. An item appearing as both ingredient and
// result of the same recipe accumulates into a single coefficient.
func (pr *recipeProgram) setRecipeCoefficients() {
	for _, id := range pr.order {
		entry := pr.recipes[id]
		for _, st := range entry.ingredients {
			row := pr.items[st.Item.ID].balance
			row.SetCoefficient(entry.craftVar, row.Coefficient(entry.craftVar)-float64(st.Amount))
		}
		for _, st := range entry.results {
			row := pr.items[st.Item.ID].balance
			row.SetCoefficient(entry.craftVar, row.Coefficient(entry.craftVar)+float64(st.Amount))
		}
		pr.taxRow.SetCoefficient(entry.craftVar, craftTax)
		pr.model.SetObjectiveCoefficient(entry.craftVar, craftCost*costScale)
	}
}

func (pr *recipeProgram) itemEntry(itemID int32) *itemEntry {
	if entry, ok := pr.items[itemID]; ok {
		return entry
	}
	balance := pr.model.NewConstraint(fmt.Sprintf("item-%d", itemID))
	balance.SetBounds(0, solver.Infinity())
	entry := &itemEntry{id: itemID, balance: balance}
	pr.items[itemID] = entry
	return entry
}

// Results solves the program and interprets the assignment into craft
// counts, source draws, and gross per-item flows. Derived values are
// recomputed in full; nothing is patched incrementally.
func (pr *recipeProgram) Results() (*Solution, error) {
	result, err := pr.model.Solve(pr.params)
	if err != nil {
		return nil, err
	}

	solution := newSolution(result.Status)
	if !result.Status.Solved() {
		return solution, nil
	}
	solution.Objective = result.Objective / costScale

	for id, entry := range pr.recipes {
		crafts := result.Value(entry.craftVar)
		solution.CraftCounts[id] = crafts
		for _, st := range entry.ingredients {
			solution.GrossConsumed[st.Item.ID] += float64(st.Amount) * crafts
		}
		for _, st := range entry.results {
			solution.GrossProduced[st.Item.ID] += float64(st.Amount) * crafts
		}
	}

	for itemID, entry := range pr.items {
		if entry.infVar != nil {
			if drawn := result.Value(entry.infVar); drawn != 0 {
				solution.InfiniteDraws[itemID] = drawn
				solution.GrossProduced[itemID] += drawn
			}
		}
		if entry.haveVar != nil {
			if drawn := result.Value(entry.haveVar); drawn != 0 {
				solution.HaveDraws[itemID] = drawn
				solution.GrossProduced[itemID] += drawn
			}
		}
	}
	return solution, nil
}
