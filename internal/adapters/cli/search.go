package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dcerda/craftflow/internal/domain/catalog"
)

// NewSearchCommand creates the item search command
func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalog items by localized name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, _, err := openCatalog()
			if err != nil {
				return err
			}
			ids, err := cat.SearchItems(args[0])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Println("No items found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMOD\tFLUID")
			for _, id := range ids {
				item, err := cat.Item(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", item.ID, item.Name(), item.ModName, item.IsFluid)
			}
			return w.Flush()
		},
	}
}

// NewRecipesCommand creates the recipe lookup command
func NewRecipesCommand() *cobra.Command {
	var byResult, byIngredient bool

	cmd := &cobra.Command{
		Use:   "recipes <item-id>",
		Short: "List recipes producing or consuming an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid item id %q: %w", args[0], err)
			}
			_, cat, _, err := openCatalog()
			if err != nil {
				return err
			}

			var recipes []*catalog.Recipe
			if byIngredient {
				recipes, err = cat.RecipesByIngredient(int32(itemID))
			} else {
				_ = byResult // default lookup
				recipes, err = cat.RecipesByResult(int32(itemID))
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMACHINE\tIN\tOUT\tDURATION")
			for _, r := range recipes {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.1fs\n",
					r.ID, r.Machine, len(r.Ingredients)+len(r.OreSlots), len(r.Results), r.DurationSeconds())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&byResult, "result", true, "Match recipes producing the item")
	cmd.Flags().BoolVar(&byIngredient, "ingredient", false, "Match recipes consuming the item")
	return cmd
}
