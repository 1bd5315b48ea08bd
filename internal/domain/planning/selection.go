package planning

import (
	"sort"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

// RecipeSelection is one chosen recipe plus the user's concrete item
// choices for its substitutable slots. The effective ingredient list is
// recomputed from (recipe, overrides) on every call; it is never cached.
type RecipeSelection struct {
	recipe        *catalog.Recipe
	slotOverrides map[int]int32
}

// NewRecipeSelection wraps a catalog recipe with empty overrides.
func NewRecipeSelection(recipe *catalog.Recipe) *RecipeSelection {
	return &RecipeSelection{
		recipe:        recipe,
		slotOverrides: make(map[int]int32),
	}
}

// Recipe returns the underlying immutable recipe.
func (s *RecipeSelection) Recipe() *catalog.Recipe { return s.recipe }

// SetSlotOverride pins an ore slot to a concrete item. Membership in
// the slot's substitution classes is not checked here; see the plan
// tests for the documented gap.
func (s *RecipeSelection) SetSlotOverride(slot int, itemID int32) {
	s.slotOverrides[slot] = itemID
}

// ClearSlotOverride restores the slot to its class default.
func (s *RecipeSelection) ClearSlotOverride(slot int) {
	delete(s.slotOverrides, slot)
}

// SlotOverrides returns a copy of the override map, keyed by slot index.
func (s *RecipeSelection) SlotOverrides() map[int]int32 {
	out := make(map[int]int32, len(s.slotOverrides))
	for slot, itemID := range s.slotOverrides {
		out[slot] = itemID
	}
	return out
}

// OverriddenSlots returns the override slot indexes in ascending order.
func (s *RecipeSelection) OverriddenSlots() []int {
	slots := make([]int, 0, len(s.slotOverrides))
	for slot := range s.slotOverrides {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}

// EffectiveIngredients resolves the recipe's ingredient slots into
// concrete stacks: plain slots as-is, each ore slot as its override
// item or, absent one, the first item of its first class. Ore slots
// whose classes are all empty contribute nothing.
func (s *RecipeSelection) EffectiveIngredients(cat catalog.Catalog) ([]catalog.Stack, error) {
	stacks := make([]catalog.Stack, 0, len(s.recipe.Ingredients)+len(s.recipe.OreSlots))
	stacks = append(stacks, s.recipe.Ingredients...)

	for _, slot := range s.recipe.OreSlots {
		itemID, ok := s.slotOverrides[slot.Index]
		if !ok {
			itemID, ok = slot.DefaultItemID()
			if !ok {
				continue
			}
		}
		item, err := cat.Item(itemID)
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, catalog.Stack{
			Item:    item,
			Amount:  slot.Amount,
			OreSlot: slot.Index,
		})
	}
	return stacks, nil
}
