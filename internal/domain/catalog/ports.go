package catalog

// Catalog is the read-only lookup port the planner consumes.
//
// Implementations are expected to memoize: repeated calls for the same
// id must return a stable, value-equal record within one session. The
// planner's deduplication logic relies on id equality, not pointer
// identity.
type Catalog interface {
	// Recipe returns the recipe with the given id, or *ErrRecipeNotFound.
	Recipe(id int32) (*Recipe, error)
	// Item returns the item with the given id, or *ErrItemNotFound.
	Item(id int32) (*Item, error)
}

// Searcher is the optional discovery surface used by the CLI. The
// optimization core itself only needs Catalog.
type Searcher interface {
	// SearchItems returns ids of items whose localized name matches query.
	SearchItems(query string) ([]int32, error)
	// RecipesByResult returns recipes producing the given item.
	RecipesByResult(itemID int32) ([]*Recipe, error)
	// RecipesByIngredient returns recipes consuming the given item.
	RecipesByIngredient(itemID int32) ([]*Recipe, error)
}
