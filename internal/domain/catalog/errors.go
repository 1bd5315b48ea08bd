package catalog

import "fmt"

// Domain errors for catalog lookups. Lookup failures are hard errors:
// the planner must never substitute a default for a missing record.

// ErrItemNotFound indicates an item id unknown to the catalog store
type ErrItemNotFound struct {
	ItemID int32
}

func (e *ErrItemNotFound) Error() string {
	return fmt.Sprintf("item %d not found in catalog", e.ItemID)
}

// ErrRecipeNotFound indicates a recipe id unknown to the catalog store
type ErrRecipeNotFound struct {
	RecipeID int32
}

func (e *ErrRecipeNotFound) Error() string {
	return fmt.Sprintf("recipe %d not found in catalog", e.RecipeID)
}
