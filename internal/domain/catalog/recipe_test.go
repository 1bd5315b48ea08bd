package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

func TestOreSlot_DefaultItemID_FirstItemOfFirstNonEmptyClass(t *testing.T) {
	// Arrange
	slot := &catalog.OreSlot{
		Index:  0,
		Amount: 1,
		Classes: []*catalog.OreClass{
			{ID: 1, Name: "plateAny", ItemIDs: nil},
			{ID: 2, Name: "plateIron", ItemIDs: []int32{42, 43}},
			{ID: 3, Name: "plateSteel", ItemIDs: []int32{99}},
		},
	}

	// Act
	itemID, ok := slot.DefaultItemID()

	// Assert
	assert.True(t, ok)
	assert.Equal(t, int32(42), itemID)
}

func TestOreSlot_DefaultItemID_AllClassesEmpty(t *testing.T) {
	// Arrange
	slot := &catalog.OreSlot{
		Index:   0,
		Amount:  1,
		Classes: []*catalog.OreClass{{ID: 1, Name: "plateAny"}},
	}

	// Act
	_, ok := slot.DefaultItemID()

	// Assert
	assert.False(t, ok)
}

func TestOreSlot_Allows(t *testing.T) {
	// Arrange
	slot := &catalog.OreSlot{
		Classes: []*catalog.OreClass{
			{ID: 1, ItemIDs: []int32{42, 43}},
			{ID: 2, ItemIDs: []int32{99}},
		},
	}

	// Act & Assert
	assert.True(t, slot.Allows(42))
	assert.True(t, slot.Allows(99))
	assert.False(t, slot.Allows(7))
}

func TestRecipe_DurationSeconds(t *testing.T) {
	// Arrange
	ticks := int32(90)
	timed := &catalog.Recipe{ID: 1, DurationTicks: &ticks}
	untimed := &catalog.Recipe{ID: 2}

	// Act & Assert
	assert.Equal(t, 4.5, timed.DurationSeconds())
	assert.Equal(t, 0.0, untimed.DurationSeconds())
}

func TestRecipe_ReferencedItemIDs_CoversAllSlots(t *testing.T) {
	// Arrange
	iron := &catalog.Item{ID: 10, LocalizedName: "Iron Ingot"}
	gear := &catalog.Item{ID: 20, LocalizedName: "Iron Gear"}
	recipe := &catalog.Recipe{
		ID:          1,
		Ingredients: []catalog.Stack{{Item: iron, Amount: 2, OreSlot: -1}},
		OreSlots: []*catalog.OreSlot{
			{
				Index:  0,
				Amount: 1,
				Classes: []*catalog.OreClass{
					{ID: 1, ItemIDs: []int32{30, 31}},
				},
			},
		},
		Results: []catalog.Stack{{Item: gear, Amount: 1, OreSlot: -1}},
	}

	// Act
	ids := recipe.ReferencedItemIDs()

	// Assert
	assert.ElementsMatch(t, []int32{10, 20, 30, 31}, ids)
}

func TestItem_Name_PrefersLocalizedName(t *testing.T) {
	// Arrange
	localized := &catalog.Item{ID: 1, InternalName: "ingotIron", LocalizedName: "Iron Ingot"}
	internal := &catalog.Item{ID: 2, InternalName: "ingotIron"}
	bare := &catalog.Item{ID: 3}

	// Act & Assert
	assert.Equal(t, "Iron Ingot", localized.Name())
	assert.Equal(t, "[ingotIron]", internal.Name())
	assert.Equal(t, "item-3", bare.Name())
}
