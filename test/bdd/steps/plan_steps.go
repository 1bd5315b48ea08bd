package steps

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/domain/planning"
	"github.com/dcerda/craftflow/test/helpers"
)

type planContext struct {
	cat  *helpers.MemoryCatalog
	plan *planning.Plan
}

func (pc *planContext) reset() {
	pc.cat = helpers.NewMemoryCatalog()
	pc.plan = planning.NewPlan(pc.cat)
}

// Setup steps

func (pc *planContext) aCatalogItemNamed(id int, name string) error {
	pc.cat.AddItem(int32(id), name)
	return nil
}

func (pc *planContext) aRecipeTurningInto(recipeID, inAmount, inItem, outAmount, outItem int) error {
	pc.cat.AddRecipe(int32(recipeID), "machine",
		[]catalog.Stack{pc.cat.Stack(int32(inItem), int32(inAmount))},
		[]catalog.Stack{pc.cat.Stack(int32(outItem), int32(outAmount))})
	return nil
}

// Plan editing steps

func (pc *planContext) recipeIsSelected(recipeID int) error {
	return pc.plan.AddRecipe(int32(recipeID))
}

func (pc *planContext) recipeIsDeselected(recipeID int) error {
	return pc.plan.RemoveRecipe(int32(recipeID))
}

func (pc *planContext) iWantOfItem(amount, itemID int) error {
	pc.plan.SetWant(int32(itemID), float64(amount))
	return nil
}

func (pc *planContext) iHaveOfItem(amount, itemID int) error {
	pc.plan.SetHave(int32(itemID), float64(amount))
	return nil
}

func (pc *planContext) theItemDemands(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		itemID, err := strconv.ParseInt(cellValue(table, row, "item"), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid item id in demand table: %w", err)
		}
		want, err := strconv.ParseFloat(cellValue(table, row, "want"), 64)
		if err != nil {
			return fmt.Errorf("invalid want in demand table: %w", err)
		}
		have, err := strconv.ParseFloat(cellValue(table, row, "have"), 64)
		if err != nil {
			return fmt.Errorf("invalid have in demand table: %w", err)
		}
		pc.plan.SetWant(int32(itemID), want)
		pc.plan.SetHave(int32(itemID), have)
	}
	return nil
}

// cellValue reads the named column of a table row using the header row
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName {
			return row.Cells[i].Value
		}
	}
	return ""
}

// Solving steps

func (pc *planContext) iSolveThePlan() error {
	return pc.plan.Solve()
}

// Assertion steps

func (pc *planContext) theSolveStatusShouldBe(status string) error {
	sol := pc.plan.Solution()
	if sol == nil {
		return fmt.Errorf("the plan has no solution")
	}
	if sol.Status.String() != status {
		return fmt.Errorf("expected status %s, got %s", status, sol.Status)
	}
	return nil
}

func (pc *planContext) recipeShouldRunTimes(recipeID, count int) error {
	sol := pc.plan.Solution()
	if sol == nil {
		return fmt.Errorf("the plan has no solution")
	}
	crafts := sol.CraftCounts[int32(recipeID)]
	if crafts != float64(count) {
		return fmt.Errorf("expected recipe %d to run %d times, got %.0f", recipeID, count, crafts)
	}
	return nil
}

func (pc *planContext) ofItemShouldBeDrawnFromRawSources(amount, itemID int) error {
	sol := pc.plan.Solution()
	if sol == nil {
		return fmt.Errorf("the plan has no solution")
	}
	drawn := sol.InfiniteDraws[int32(itemID)]
	if drawn != float64(amount) {
		return fmt.Errorf("expected %d of item %d drawn from raw sources, got %.0f", amount, itemID, drawn)
	}
	return nil
}

func (pc *planContext) noItemShouldBeDrawnFromRawSources(itemID int) error {
	sol := pc.plan.Solution()
	if sol == nil {
		return fmt.Errorf("the plan has no solution")
	}
	if drawn, ok := sol.InfiniteDraws[int32(itemID)]; ok {
		return fmt.Errorf("expected no raw draw of item %d, got %.0f", itemID, drawn)
	}
	return nil
}

func (pc *planContext) ofItemShouldComeFromStock(amount, itemID int) error {
	sol := pc.plan.Solution()
	if sol == nil {
		return fmt.Errorf("the plan has no solution")
	}
	drawn := sol.HaveDraws[int32(itemID)]
	if drawn != float64(amount) {
		return fmt.Errorf("expected %d of item %d from stock, got %.0f", amount, itemID, drawn)
	}
	return nil
}

func (pc *planContext) thePlanShouldTrackItems(count int) error {
	if tracked := len(pc.plan.ItemIDs()); tracked != count {
		return fmt.Errorf("expected %d tracked items, got %d", count, tracked)
	}
	return nil
}

func (pc *planContext) thePlanShouldHaveSelectedRecipes(count int) error {
	if pc.plan.Len() != count {
		return fmt.Errorf("expected %d selected recipes, got %d", count, pc.plan.Len())
	}
	return nil
}

// InitializePlanScenario registers the plan editing and solving steps
func InitializePlanScenario(sc *godog.ScenarioContext) {
	pc := &planContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	sc.Step(`^a catalog item (\d+) named "([^"]*)"$`, pc.aCatalogItemNamed)
	sc.Step(`^a recipe (\d+) turning (\d+) of item (\d+) into (\d+) of item (\d+)$`, pc.aRecipeTurningInto)

	sc.Step(`^recipe (\d+) is selected$`, pc.recipeIsSelected)
	sc.Step(`^recipe (\d+) is deselected$`, pc.recipeIsDeselected)
	sc.Step(`^I want (\d+) of item (\d+)$`, pc.iWantOfItem)
	sc.Step(`^I have (\d+) of item (\d+)$`, pc.iHaveOfItem)
	sc.Step(`^the item demands:$`, pc.theItemDemands)

	sc.Step(`^I solve the plan$`, pc.iSolveThePlan)

	sc.Step(`^the solve status should be "([^"]*)"$`, pc.theSolveStatusShouldBe)
	sc.Step(`^recipe (\d+) should run (\d+) times$`, pc.recipeShouldRunTimes)
	sc.Step(`^(\d+) of item (\d+) should be drawn from raw sources$`, pc.ofItemShouldBeDrawnFromRawSources)
	sc.Step(`^no item (\d+) should be drawn from raw sources$`, pc.noItemShouldBeDrawnFromRawSources)
	sc.Step(`^(\d+) of item (\d+) should come from stock$`, pc.ofItemShouldComeFromStock)
	sc.Step(`^the plan should track (\d+) items$`, pc.thePlanShouldTrackItems)
	sc.Step(`^the plan should have (\d+) selected recipes?$`, pc.thePlanShouldHaveSelectedRecipes)
}
