package persistence

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

// GormCatalogRepository implements the catalog port over GORM.
//
// Lookups memoize into append-only caches keyed by id, so repeated
// calls return the same value-equal record for the life of the
// repository. Caches are safe for concurrent reads; a racing fill for
// the same key at worst refetches.
type GormCatalogRepository struct {
	db *gorm.DB

	mu         sync.RWMutex
	itemCache  map[int32]*catalog.Item
	recipes    map[int32]*catalog.Recipe
	oreClasses map[int32]*catalog.OreClass
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:         db,
		itemCache:  make(map[int32]*catalog.Item),
		recipes:    make(map[int32]*catalog.Recipe),
		oreClasses: make(map[int32]*catalog.OreClass),
	}
}

// Item retrieves an item by id, memoized.
func (r *GormCatalogRepository) Item(id int32) (*catalog.Item, error) {
	r.mu.RLock()
	item, ok := r.itemCache[id]
	r.mu.RUnlock()
	if ok {
		return item, nil
	}

	var model ItemModel
	result := r.db.Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, &catalog.ErrItemNotFound{ItemID: id}
		}
		return nil, fmt.Errorf("failed to load item %d: %w", id, result.Error)
	}

	item = r.modelToItem(&model)
	r.mu.Lock()
	r.itemCache[id] = item
	r.mu.Unlock()
	return item, nil
}

// Recipe retrieves a recipe by id with all slots resolved, memoized.
func (r *GormCatalogRepository) Recipe(id int32) (*catalog.Recipe, error) {
	r.mu.RLock()
	recipe, ok := r.recipes[id]
	r.mu.RUnlock()
	if ok {
		return recipe, nil
	}

	var model RecipeModel
	result := r.db.Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, &catalog.ErrRecipeNotFound{RecipeID: id}
		}
		return nil, fmt.Errorf("failed to load recipe %d: %w", id, result.Error)
	}

	var rows []RecipeItemModel
	if err := r.db.Where("recipe_id = ?", id).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe %d slots: %w", id, err)
	}

	recipe, err := r.buildRecipe(&model, rows)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.recipes[id] = recipe
	r.mu.Unlock()
	return recipe, nil
}

// SearchItems returns ids of items whose localized name contains query.
func (r *GormCatalogRepository) SearchItems(query string) ([]int32, error) {
	var ids []int32
	err := r.db.Model(&ItemModel{}).
		Where("localized_name LIKE ?", "%"+query+"%").
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("item search failed: %w", err)
	}
	return ids, nil
}

// RecipesByResult returns every recipe producing the given item.
func (r *GormCatalogRepository) RecipesByResult(itemID int32) ([]*catalog.Recipe, error) {
	return r.recipesByItem(itemID, true)
}

// RecipesByIngredient returns every recipe consuming the given item,
// including via any of its substitution classes.
func (r *GormCatalogRepository) RecipesByIngredient(itemID int32) ([]*catalog.Recipe, error) {
	return r.recipesByItem(itemID, false)
}

func (r *GormCatalogRepository) recipesByItem(itemID int32, isOutput bool) ([]*catalog.Recipe, error) {
	var recipeIDs []int32
	err := r.db.Model(&RecipeItemModel{}).
		Distinct("recipe_id").
		Where("item_id = ? AND is_output = ?", itemID, isOutput).
		Pluck("recipe_id", &recipeIDs).Error
	if err != nil {
		return nil, fmt.Errorf("recipe lookup for item %d failed: %w", itemID, err)
	}

	if !isOutput {
		// The item may satisfy ore slots through class membership.
		var classIDs []int32
		err = r.db.Model(&OreClassItemModel{}).
			Distinct("ore_class_id").
			Where("item_id = ?", itemID).
			Pluck("ore_class_id", &classIDs).Error
		if err != nil {
			return nil, fmt.Errorf("ore class lookup for item %d failed: %w", itemID, err)
		}
		if len(classIDs) > 0 {
			var oreRecipeIDs []int32
			err = r.db.Model(&RecipeItemModel{}).
				Distinct("recipe_id").
				Where("ore_class_id IN ? AND is_output = ?", classIDs, false).
				Pluck("recipe_id", &oreRecipeIDs).Error
			if err != nil {
				return nil, fmt.Errorf("ore slot lookup for item %d failed: %w", itemID, err)
			}
			recipeIDs = append(recipeIDs, oreRecipeIDs...)
		}
	}

	seen := make(map[int32]struct{}, len(recipeIDs))
	recipes := make([]*catalog.Recipe, 0, len(recipeIDs))
	sort.Slice(recipeIDs, func(i, j int) bool { return recipeIDs[i] < recipeIDs[j] })
	for _, id := range recipeIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipe, err := r.Recipe(id)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (r *GormCatalogRepository) buildRecipe(model *RecipeModel, rows []RecipeItemModel) (*catalog.Recipe, error) {
	recipe := &catalog.Recipe{
		ID:            model.ID,
		Machine:       model.Source,
		Enabled:       model.Enabled,
		DurationTicks: model.DurationTicks,
		EUt:           model.EUt,
	}

	// Plain input rows on the same item are merged into one stack; the
	// store may still carry duplicates from older dumps.
	plainAmounts := make(map[int32]int32)
	var plainOrder []int32
	oreRows := make(map[int][]RecipeItemModel)

	for _, row := range rows {
		switch {
		case row.IsOutput:
			if row.ItemID == nil {
				continue
			}
			item, err := r.Item(*row.ItemID)
			if err != nil {
				return nil, err
			}
			recipe.Results = append(recipe.Results, catalog.Stack{
				Item:    item,
				Amount:  row.Amount,
				Chance:  row.Chance,
				OreSlot: -1,
			})
		case row.Slot != nil:
			oreRows[*row.Slot] = append(oreRows[*row.Slot], row)
		case row.ItemID != nil:
			if _, ok := plainAmounts[*row.ItemID]; !ok {
				plainOrder = append(plainOrder, *row.ItemID)
			}
			plainAmounts[*row.ItemID] += row.Amount
		}
	}

	for _, itemID := range plainOrder {
		item, err := r.Item(itemID)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = append(recipe.Ingredients, catalog.Stack{
			Item:    item,
			Amount:  plainAmounts[itemID],
			OreSlot: -1,
		})
	}

	slots := make([]int, 0, len(oreRows))
	for slot := range oreRows {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	for _, slotIndex := range slots {
		slotRows := oreRows[slotIndex]
		oreSlot := &catalog.OreSlot{Index: slotIndex, Amount: slotRows[0].Amount}
		for _, row := range slotRows {
			if row.OreClassID == nil {
				continue
			}
			class, err := r.oreClass(*row.OreClassID)
			if err != nil {
				return nil, err
			}
			oreSlot.Classes = append(oreSlot.Classes, class)
		}
		sort.Slice(oreSlot.Classes, func(i, j int) bool {
			return oreSlot.Classes[i].ID < oreSlot.Classes[j].ID
		})
		recipe.OreSlots = append(recipe.OreSlots, oreSlot)
	}

	return recipe, nil
}

func (r *GormCatalogRepository) oreClass(id int32) (*catalog.OreClass, error) {
	r.mu.RLock()
	class, ok := r.oreClasses[id]
	r.mu.RUnlock()
	if ok {
		return class, nil
	}

	var model OreClassModel
	result := r.db.Where("id = ?", id).First(&model)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load ore class %d: %w", id, result.Error)
	}

	var itemIDs []int32
	err := r.db.Model(&OreClassItemModel{}).
		Where("ore_class_id = ?", id).
		Order("item_id").
		Pluck("item_id", &itemIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ore class %d members: %w", id, err)
	}

	class = &catalog.OreClass{ID: model.ID, Name: model.Name, ItemIDs: itemIDs}
	r.mu.Lock()
	r.oreClasses[id] = class
	r.mu.Unlock()
	return class, nil
}

func (r *GormCatalogRepository) modelToItem(model *ItemModel) *catalog.Item {
	return &catalog.Item{
		ID:            model.ID,
		InternalName:  model.InternalName,
		LocalizedName: model.LocalizedName,
		Damage:        model.Damage,
		ModName:       model.ModName,
		IsFluid:       model.IsFluid,
	}
}
