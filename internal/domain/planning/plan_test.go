package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/domain/planning"
	"github.com/dcerda/craftflow/test/helpers"
)

// newGearCatalog registers item 10 (Iron Ingot), item 20 (Iron Gear)
// and recipe 1 turning 2 ingots into 1 gear.
func newGearCatalog() *helpers.MemoryCatalog {
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(10, "Iron Ingot")
	cat.AddItem(20, "Iron Gear")
	cat.AddRecipe(1, "assembler",
		[]catalog.Stack{cat.Stack(10, 2)},
		[]catalog.Stack{cat.Stack(20, 1)})
	return cat
}

// newOreCatalog registers recipe 2 with one substitutable slot
// (class members 11 and 12) producing item 21.
func newOreCatalog() *helpers.MemoryCatalog {
	cat := helpers.NewMemoryCatalog()
	cat.AddItem(11, "Copper Plate")
	cat.AddItem(12, "Bronze Plate")
	cat.AddItem(13, "Obsidian Plate")
	cat.AddItem(21, "Machine Casing")
	cat.Put(&catalog.Recipe{
		ID:      2,
		Machine: "crafting",
		Enabled: true,
		OreSlots: []*catalog.OreSlot{
			{
				Index:  0,
				Amount: 3,
				Classes: []*catalog.OreClass{
					{ID: 1, Name: "plateAny", ItemIDs: []int32{11, 12}},
				},
			},
		},
		Results: []catalog.Stack{cat.Stack(21, 1)},
	})
	return cat
}

func TestPlan_AddRecipe_TracksReferencedItems(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)

	// Act
	err := p.AddRecipe(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []int32{10, 20}, p.ItemIDs())
}

func TestPlan_AddRecipe_DuplicateIsIgnored(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)

	// Act
	err := p.AddRecipe(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	d, ok := p.Demand(20)
	require.True(t, ok)
	assert.Equal(t, 5.0, d.Want)
}

func TestPlan_AddRecipe_UnknownRecipeFails(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)

	// Act
	err := p.AddRecipe(99)

	// Assert
	var notFound *catalog.ErrRecipeNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int32(99), notFound.RecipeID)
	assert.Equal(t, 0, p.Len())
}

func TestPlan_RemoveRecipe_PurgesUnreferencedItems(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)

	// Act
	err := p.RemoveRecipe(1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.ItemIDs())

	// Re-adding starts from a default demand entry
	require.NoError(t, p.AddRecipe(1))
	d, ok := p.Demand(20)
	require.True(t, ok)
	assert.True(t, d.IsZero())
}

func TestPlan_RemoveRecipe_AbsentIsIgnored(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))

	// Act
	err := p.RemoveRecipe(42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []int32{10, 20}, p.ItemIDs())
}

func TestPlan_SetWant_UntrackedItemIsIgnored(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))

	// Act
	p.SetWant(999, 5)

	// Assert
	_, ok := p.Demand(999)
	assert.False(t, ok)
	assert.Equal(t, []int32{10, 20}, p.ItemIDs())
}

func TestPlan_SetOreSlotOverride_SwapsTrackedItem(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(2))
	assert.Equal(t, []int32{11, 21}, p.ItemIDs())

	// Act
	err := p.SetOreSlotOverride(2, 0, 12)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int32{12, 21}, p.ItemIDs())
}

func TestPlan_ClearOreSlotOverride_RestoresDefault(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(2))
	require.NoError(t, p.SetOreSlotOverride(2, 0, 12))

	// Act
	err := p.ClearOreSlotOverride(2, 0)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int32{11, 21}, p.ItemIDs())
	sel, _ := p.Selection(2)
	assert.Empty(t, sel.OverriddenSlots())
}

// Overrides are not validated against the slot's substitution classes;
// the planner accepts any known item, as the save format always has.
func TestPlan_SetOreSlotOverride_OutsideClassAccepted(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(2))

	// Act
	err := p.SetOreSlotOverride(2, 0, 13)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int32{13, 21}, p.ItemIDs())
}

func TestPlan_SetOreSlotOverride_UnselectedRecipeIsIgnored(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	p := planning.NewPlan(cat)

	// Act
	err := p.SetOreSlotOverride(2, 0, 12)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestPlan_Reset(t *testing.T) {
	// Arrange
	cat := newGearCatalog()
	p := planning.NewPlan(cat)
	require.NoError(t, p.AddRecipe(1))
	p.SetWant(20, 5)
	require.NoError(t, p.Solve())
	require.NotNil(t, p.Solution())

	// Act
	p.Reset()

	// Assert
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.ItemIDs())
	assert.Nil(t, p.Solution())
}

func TestRecipeSelection_EffectiveIngredients_DefaultAndOverride(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	recipe, err := cat.Recipe(2)
	require.NoError(t, err)
	sel := planning.NewRecipeSelection(recipe)

	// Act - default resolution
	stacks, err := sel.EffectiveIngredients(cat)

	// Assert
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, int32(11), stacks[0].Item.ID)
	assert.Equal(t, int32(3), stacks[0].Amount)
	assert.Equal(t, 0, stacks[0].OreSlot)

	// Act - override resolution
	sel.SetSlotOverride(0, 12)
	stacks, err = sel.EffectiveIngredients(cat)

	// Assert
	require.NoError(t, err)
	require.Len(t, stacks, 1)
	assert.Equal(t, int32(12), stacks[0].Item.ID)
}

func TestRecipeSelection_EffectiveIngredients_UnknownOverrideFails(t *testing.T) {
	// Arrange
	cat := newOreCatalog()
	recipe, err := cat.Recipe(2)
	require.NoError(t, err)
	sel := planning.NewRecipeSelection(recipe)
	sel.SetSlotOverride(0, 999)

	// Act
	_, err = sel.EffectiveIngredients(cat)

	// Assert
	var notFound *catalog.ErrItemNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int32(999), notFound.ItemID)
}
