package planning

import (
	"log"
	"sort"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/solver"
)

// Plan is a user's working set: the selected recipes, the per-item
// demand configuration, and the latest solution. One Plan corresponds
// to one logical document; it is not safe for concurrent use and the
// caller serializes access.
//
// Membership invariant: the demand map tracks exactly the items
// referenced by the effective ingredients and results of the selected
// recipes. Add/remove/override operations reconcile it.
type Plan struct {
	id      string
	catalog catalog.Catalog

	recipes  map[int32]*RecipeSelection
	items    map[int32]*ItemDemand
	solution *Solution

	// SolveParams is passed through to the backend on every solve.
	SolveParams solver.Params
}

// NewPlan creates an empty plan over the given catalog.
func NewPlan(cat catalog.Catalog) *Plan {
	return &Plan{
		catalog: cat,
		recipes: make(map[int32]*RecipeSelection),
		items:   make(map[int32]*ItemDemand),
	}
}

// ID returns the document id, empty until the plan is first saved.
func (p *Plan) ID() string { return p.id }

// Solution returns the latest solution, nil before the first solve.
func (p *Plan) Solution() *Solution { return p.solution }

// Len returns the number of selected recipes.
func (p *Plan) Len() int { return len(p.recipes) }

// Selection returns the selection for a recipe id, if present.
func (p *Plan) Selection(recipeID int32) (*RecipeSelection, bool) {
	sel, ok := p.recipes[recipeID]
	return sel, ok
}

// RecipeIDs returns the selected recipe ids in ascending order.
func (p *Plan) RecipeIDs() []int32 {
	ids := make([]int32, 0, len(p.recipes))
	for id := range p.recipes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Demand returns the demand entry for a tracked item id.
func (p *Plan) Demand(itemID int32) (*ItemDemand, bool) {
	d, ok := p.items[itemID]
	return d, ok
}

// ItemIDs returns the tracked item ids in ascending order.
func (p *Plan) ItemIDs() []int32 {
	ids := make([]int32, 0, len(p.items))
	for id := range p.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddRecipe selects a recipe. Selecting an id twice is a configuration
// error: it logs a warning and leaves the plan untouched. A catalog
// lookup failure propagates.
func (p *Plan) AddRecipe(recipeID int32) error {
	if _, ok := p.recipes[recipeID]; ok {
		log.Printf("Warning: recipe %d already selected", recipeID)
		return nil
	}
	recipe, err := p.catalog.Recipe(recipeID)
	if err != nil {
		return err
	}
	p.recipes[recipeID] = NewRecipeSelection(recipe)
	return p.reconcile()
}

// RemoveRecipe deselects a recipe. Removing an absent id logs a warning
// and leaves the plan untouched.
func (p *Plan) RemoveRecipe(recipeID int32) error {
	if _, ok := p.recipes[recipeID]; !ok {
		log.Printf("Warning: recipe %d was not selected", recipeID)
		return nil
	}
	delete(p.recipes, recipeID)
	return p.reconcile()
}

// SetOreSlotOverride pins an ore slot of a selected recipe to a
// concrete item. An item outside the slot's candidate classes is
// accepted with a warning; the override stays advisory-only.
func (p *Plan) SetOreSlotOverride(recipeID int32, slot int, itemID int32) error {
	sel, ok := p.recipes[recipeID]
	if !ok {
		log.Printf("Warning: recipe %d is not selected, ignoring slot override", recipeID)
		return nil
	}
	for _, os := range sel.Recipe().OreSlots {
		if os.Index == slot && !os.Allows(itemID) {
			log.Printf("Warning: item %d is not in any candidate class of slot %d of recipe %d", itemID, slot, recipeID)
		}
	}
	sel.SetSlotOverride(slot, itemID)
	return p.reconcile()
}

// ClearOreSlotOverride restores an ore slot to its class default.
func (p *Plan) ClearOreSlotOverride(recipeID int32, slot int) error {
	sel, ok := p.recipes[recipeID]
	if !ok {
		log.Printf("Warning: recipe %d is not selected, ignoring slot override", recipeID)
		return nil
	}
	sel.ClearSlotOverride(slot)
	return p.reconcile()
}

// SetWant sets the desired net output for a tracked item.
func (p *Plan) SetWant(itemID int32, amount float64) {
	if d := p.demandOrWarn(itemID); d != nil {
		d.Want = amount
	}
}

// SetHave sets the on-hand stock for a tracked item.
func (p *Plan) SetHave(itemID int32, amount float64) {
	if d := p.demandOrWarn(itemID); d != nil {
		d.Have = amount
	}
}

// SetInfinite flags a tracked item as an unlimited external source with
// the given per-unit cost.
func (p *Plan) SetInfinite(itemID int32, allow bool, cost float64) {
	if d := p.demandOrWarn(itemID); d != nil {
		d.AllowInfinite = allow
		d.InfiniteCost = cost
	}
}

func (p *Plan) demandOrWarn(itemID int32) *ItemDemand {
	d, ok := p.items[itemID]
	if !ok {
		log.Printf("Warning: item %d is not referenced by any selected recipe", itemID)
		return nil
	}
	return d
}

// Solve rebuilds the integer program from the current selection, runs
// the backend, and replaces the stored solution. With no recipes
// selected it is a no-op and any prior solution is left untouched.
// Infeasible and unbounded outcomes are statuses on the solution, not
// errors; only catalog lookups and backend failures return one.
func (p *Plan) Solve() error {
	if len(p.recipes) == 0 {
		return nil
	}

	program, err := newRecipeProgram(p)
	if err != nil {
		return err
	}
	solution, err := program.Results()
	if err != nil {
		return err
	}
	p.solution = solution

	for _, d := range p.items {
		d.TotalProduced = 0
		d.TotalConsumed = 0
	}
	for itemID, amount := range solution.GrossProduced {
		if d, ok := p.items[itemID]; ok {
			// Demand totals track recipe flows only; draws from stock or
			// external sources stay out so RawRequirement reports what
			// has to be brought in.
			d.TotalProduced = amount - solution.InfiniteDraws[itemID] - solution.HaveDraws[itemID]
		}
	}
	for itemID, amount := range solution.GrossConsumed {
		if d, ok := p.items[itemID]; ok {
			d.TotalConsumed = amount
		}
	}
	return nil
}

// Reset clears recipes, demands, and the solution.
func (p *Plan) Reset() {
	p.recipes = make(map[int32]*RecipeSelection)
	p.items = make(map[int32]*ItemDemand)
	p.solution = nil
}

// reconcile re-derives the demand map from the current selection:
// newly referenced items get default-initialized entries, entries for
// items no longer referenced are purged. Existing entries keep their
// configuration.
func (p *Plan) reconcile() error {
	referenced := make(map[int32]struct{})
	for _, sel := range p.recipes {
		ingredients, err := sel.EffectiveIngredients(p.catalog)
		if err != nil {
			return err
		}
		for _, st := range ingredients {
			referenced[st.Item.ID] = struct{}{}
		}
		for _, st := range sel.Recipe().Results {
			referenced[st.Item.ID] = struct{}{}
		}
	}

	for itemID := range referenced {
		if _, ok := p.items[itemID]; !ok {
			p.items[itemID] = &ItemDemand{ItemID: itemID}
		}
	}
	for itemID := range p.items {
		if _, ok := referenced[itemID]; !ok {
			delete(p.items, itemID)
		}
	}
	return nil
}
