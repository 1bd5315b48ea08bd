package importer

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/dcerda/craftflow/internal/adapters/persistence"
)

const insertBatchSize = 500

// Importer converts a dump document into catalog rows and writes them
// to the store in batches. Importing into a non-empty store replaces
// nothing; run it against a fresh database.
type Importer struct {
	db *gorm.DB

	nextRecipeID int32
	nextClassID  int32

	items       []persistence.ItemModel
	recipes     []persistence.RecipeModel
	recipeItems []persistence.RecipeItemModel
	classes     []persistence.OreClassModel
	classItems  []persistence.OreClassItemModel
}

// NewImporter creates an importer writing to db.
func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db, nextRecipeID: 1, nextClassID: 1}
}

// ImportFile reads, converts, and stores a dump file.
func (im *Importer) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read dump file: %w", err)
	}
	dump, err := Decode(data)
	if err != nil {
		return err
	}
	return im.Import(dump)
}

// Import converts and stores a decoded dump.
func (im *Importer) Import(dump *Dump) error {
	for _, it := range dump.Items {
		im.items = append(im.items, persistence.ItemModel{
			ID:            it.ID,
			InternalName:  it.InternalName,
			LocalizedName: it.LocalizedName,
			Damage:        it.Damage,
			ModName:       it.ModName,
			IsFluid:       it.IsFluid,
		})
	}

	for _, class := range dump.OreDict {
		classID := im.nextClassID
		im.nextClassID++
		im.classes = append(im.classes, persistence.OreClassModel{ID: classID, Name: class.Name})
		for _, itemID := range class.IDs {
			im.classItems = append(im.classItems, persistence.OreClassItemModel{
				OreClassID: classID,
				ItemID:     itemID,
			})
		}
	}

	for _, source := range dump.Sources {
		switch {
		case len(source.Machines) > 0:
			for _, machine := range source.Machines {
				for _, recipe := range machine.Recipes {
					im.loadMachineRecipe(machine.Name, recipe)
				}
			}
		case len(source.Recipes) > 0:
			name := source.Name
			if name == "" {
				name = source.Type
			}
			for _, recipe := range source.Recipes {
				im.loadCraftingRecipe(name, recipe)
			}
		default:
			log.Printf("Warning: dump source %q has neither machines nor recipes", source.Type)
		}
	}

	return im.flush()
}

// loadMachineRecipe converts the machine-source shape: fluids first,
// then items, matching the original slot numbering.
func (im *Importer) loadMachineRecipe(machine string, recipe DumpMachineRecipe) {
	recipeID := im.nextRecipeID
	im.nextRecipeID++
	duration := recipe.Duration
	im.recipes = append(im.recipes, persistence.RecipeModel{
		ID:            recipeID,
		Source:        machine,
		Enabled:       recipe.Enabled,
		DurationTicks: &duration,
		EUt:           recipe.EUt,
	})

	// Duplicate input stacks of the same item collapse into one row.
	merged := make(map[int32]int)
	addInput := func(stack DumpStack) {
		if idx, ok := merged[stack.ID]; ok {
			im.recipeItems[idx].Amount += stack.Amount
			return
		}
		itemID := stack.ID
		im.recipeItems = append(im.recipeItems, persistence.RecipeItemModel{
			RecipeID: recipeID,
			ItemID:   &itemID,
			Amount:   stack.Amount,
			IsOutput: false,
		})
		merged[stack.ID] = len(im.recipeItems) - 1
	}
	for _, stack := range recipe.InputFluids {
		addInput(stack)
	}
	for _, stack := range recipe.InputItems {
		addInput(stack)
	}

	addOutput := func(stack DumpStack) {
		itemID := stack.ID
		im.recipeItems = append(im.recipeItems, persistence.RecipeItemModel{
			RecipeID: recipeID,
			ItemID:   &itemID,
			Amount:   stack.Amount,
			Chance:   stack.Chance,
			IsOutput: true,
		})
	}
	for _, stack := range recipe.OutputFluids {
		addOutput(stack)
	}
	for _, stack := range recipe.OutputItems {
		addOutput(stack)
	}
}

// loadCraftingRecipe converts the crafting-source shape: plain slots
// become item rows, ore-dictionary slots become one row per candidate
// class sharing the slot index.
func (im *Importer) loadCraftingRecipe(source string, recipe DumpCraftingRecipe) {
	recipeID := im.nextRecipeID
	im.nextRecipeID++
	im.recipes = append(im.recipes, persistence.RecipeModel{
		ID:      recipeID,
		Source:  source,
		Enabled: true,
	})

	merged := make(map[int32]int)
	for slotIndex, slot := range recipe.Inputs {
		if slot == nil {
			continue
		}
		amount := int32(1)
		if slot.Amount != nil {
			amount = *slot.Amount
		}
		switch {
		case slot.ID != nil:
			if idx, ok := merged[*slot.ID]; ok {
				im.recipeItems[idx].Amount += amount
				continue
			}
			itemID := *slot.ID
			im.recipeItems = append(im.recipeItems, persistence.RecipeItemModel{
				RecipeID: recipeID,
				ItemID:   &itemID,
				Amount:   amount,
				IsOutput: false,
			})
			merged[itemID] = len(im.recipeItems) - 1
		case len(slot.OreClassIDs) > 0:
			index := slotIndex
			for _, classID := range slot.OreClassIDs {
				oreClassID := classID
				im.recipeItems = append(im.recipeItems, persistence.RecipeItemModel{
					RecipeID:   recipeID,
					OreClassID: &oreClassID,
					Slot:       &index,
					Amount:     amount,
					IsOutput:   false,
				})
			}
		}
	}

	outputID := recipe.Output.ID
	im.recipeItems = append(im.recipeItems, persistence.RecipeItemModel{
		RecipeID: recipeID,
		ItemID:   &outputID,
		Amount:   recipe.Output.Amount,
		IsOutput: true,
	})
}

func (im *Importer) flush() error {
	start := time.Now()
	insert := func(tx *gorm.DB, what string, rows interface{}, count int) error {
		if count == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert %s: %w", what, err)
		}
		return nil
	}
	err := im.db.Transaction(func(tx *gorm.DB) error {
		if err := insert(tx, "items", &im.items, len(im.items)); err != nil {
			return err
		}
		if err := insert(tx, "ore classes", &im.classes, len(im.classes)); err != nil {
			return err
		}
		if err := insert(tx, "ore class members", &im.classItems, len(im.classItems)); err != nil {
			return err
		}
		if err := insert(tx, "recipes", &im.recipes, len(im.recipes)); err != nil {
			return err
		}
		if err := insert(tx, "recipe items", &im.recipeItems, len(im.recipeItems)); err != nil {
			return err
		}
		meta := []persistence.MetadataModel{
			{Key: "imported_at", Value: time.Now().UTC().Format(time.RFC3339)},
			{Key: "recipe_count", Value: fmt.Sprintf("%d", len(im.recipes))},
			{Key: "item_count", Value: fmt.Sprintf("%d", len(im.items))},
		}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("failed to insert metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Imported %d items, %d recipes in %s", len(im.items), len(im.recipes), time.Since(start))
	return nil
}
