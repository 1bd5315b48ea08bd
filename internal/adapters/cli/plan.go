package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dcerda/craftflow/internal/domain/catalog"
	"github.com/dcerda/craftflow/internal/domain/planning"
)

// NewPlanCommand creates the plan manipulation command group
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Edit the current plan document",
	}
	cmd.AddCommand(newPlanAddCommand())
	cmd.AddCommand(newPlanRemoveCommand())
	cmd.AddCommand(newPlanWantCommand())
	cmd.AddCommand(newPlanHaveCommand())
	cmd.AddCommand(newPlanInfiniteCommand())
	cmd.AddCommand(newPlanOverrideCommand())
	cmd.AddCommand(newPlanShowCommand())
	return cmd
}

// loadOrCreatePlan reads the plan document, or starts an empty plan
// when the file does not exist yet.
func loadOrCreatePlan(cat catalog.Catalog) (*planning.Plan, error) {
	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		return planning.NewPlan(cat), nil
	}
	return planning.LoadFile(cat, planPath)
}

// editPlan runs a mutation against the plan document and saves it back.
func editPlan(edit func(*planning.Plan) error) error {
	_, cat, _, err := openCatalog()
	if err != nil {
		return err
	}
	p, err := loadOrCreatePlan(cat)
	if err != nil {
		return err
	}
	if err := edit(p); err != nil {
		return err
	}
	return p.SaveFile(planPath)
}

func parseID(arg string) (int32, error) {
	id, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return int32(id), nil
}

func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil || amount < 0 {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	return amount, nil
}

func newPlanAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <recipe-id>",
		Short: "Select a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				return p.AddRecipe(recipeID)
			})
		},
	}
}

func newPlanRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <recipe-id>",
		Short: "Deselect a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				return p.RemoveRecipe(recipeID)
			})
		},
	}
}

func newPlanWantCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "want <item-id> <amount>",
		Short: "Set the desired net output of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				p.SetWant(itemID, amount)
				return nil
			})
		},
	}
}

func newPlanHaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "have <item-id> <amount>",
		Short: "Set the on-hand stock of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				p.SetHave(itemID, amount)
				return nil
			})
		},
	}
}

func newPlanInfiniteCommand() *cobra.Command {
	var cost float64
	var off bool

	cmd := &cobra.Command{
		Use:   "infinite <item-id>",
		Short: "Treat an item as an unlimited external source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				p.SetInfinite(itemID, !off, cost)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&cost, "cost", 0, "Per-unit cost of drawing from the source")
	cmd.Flags().BoolVar(&off, "off", false, "Clear the infinite-source flag")
	return cmd
}

func newPlanOverrideCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "override <recipe-id> <slot> <item-id>",
		Short: "Pin a substitutable slot to a concrete item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			slot, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid slot index %q: %w", args[1], err)
			}
			itemID, err := parseID(args[2])
			if err != nil {
				return err
			}
			return editPlan(func(p *planning.Plan) error {
				return p.SetOreSlotOverride(recipeID, slot, itemID)
			})
		},
	}
}

func newPlanShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the plan's recipes and item demands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, _, err := openCatalog()
			if err != nil {
				return err
			}
			p, err := loadOrCreatePlan(cat)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECIPE\tMACHINE\tOVERRIDES")
			for _, id := range p.RecipeIDs() {
				sel, _ := p.Selection(id)
				fmt.Fprintf(w, "%d\t%s\t%d\n", id, sel.Recipe().Machine, len(sel.SlotOverrides()))
			}
			fmt.Fprintln(w, "\nITEM\tWANT\tHAVE\tINFINITE")
			for _, id := range p.ItemIDs() {
				d, _ := p.Demand(id)
				item, err := cat.Item(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%v\n", item.Name(), d.Want, d.Have, d.AllowInfinite)
			}
			return w.Flush()
		},
	}
}
