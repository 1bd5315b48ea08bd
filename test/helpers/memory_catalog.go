package helpers

import (
	"fmt"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

// MemoryCatalog is an in-memory catalog fixture for planner tests.
// Tests register items and recipes up front; lookups behave like the
// store-backed repository, including the typed not-found errors.
type MemoryCatalog struct {
	items   map[int32]*catalog.Item
	recipes map[int32]*catalog.Recipe
}

// NewMemoryCatalog creates an empty catalog fixture.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		items:   make(map[int32]*catalog.Item),
		recipes: make(map[int32]*catalog.Recipe),
	}
}

// AddItem registers an item under the given id and display name.
func (c *MemoryCatalog) AddItem(id int32, name string) *catalog.Item {
	item := &catalog.Item{ID: id, LocalizedName: name}
	c.items[id] = item
	return item
}

// Put registers a fully constructed recipe.
func (c *MemoryCatalog) Put(recipe *catalog.Recipe) *catalog.Recipe {
	c.recipes[recipe.ID] = recipe
	return recipe
}

// AddRecipe registers a plain recipe with the given ingredient and
// result stacks.
func (c *MemoryCatalog) AddRecipe(id int32, machine string, ingredients, results []catalog.Stack) *catalog.Recipe {
	return c.Put(&catalog.Recipe{
		ID:          id,
		Machine:     machine,
		Enabled:     true,
		Ingredients: ingredients,
		Results:     results,
	})
}

// Stack builds a stack over a registered item. It panics on an
// unregistered id so fixture mistakes fail loudly at setup time.
func (c *MemoryCatalog) Stack(itemID, amount int32) catalog.Stack {
	item, ok := c.items[itemID]
	if !ok {
		panic(fmt.Sprintf("memory catalog: item %d not registered", itemID))
	}
	return catalog.Stack{Item: item, Amount: amount, OreSlot: -1}
}

// Item implements catalog.Catalog.
func (c *MemoryCatalog) Item(id int32) (*catalog.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, &catalog.ErrItemNotFound{ItemID: id}
	}
	return item, nil
}

// Recipe implements catalog.Catalog.
func (c *MemoryCatalog) Recipe(id int32) (*catalog.Recipe, error) {
	recipe, ok := c.recipes[id]
	if !ok {
		return nil, &catalog.ErrRecipeNotFound{RecipeID: id}
	}
	return recipe, nil
}
