package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dcerda/craftflow/internal/domain/ranking"
	"github.com/dcerda/craftflow/internal/solver"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve the plan and print the production flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, cfg, err := openCatalog()
			if err != nil {
				return err
			}
			p, err := loadOrCreatePlan(cat)
			if err != nil {
				return err
			}
			if p.Len() == 0 {
				fmt.Println("Plan has no recipes; nothing to solve")
				return nil
			}

			p.SolveParams = solver.Params{MaxTimeSeconds: cfg.Solver.MaxTimeSeconds}
			if err := p.Solve(); err != nil {
				return err
			}
			sol := p.Solution()

			fmt.Printf("Status: %s\n", sol.Status)
			if !sol.Status.Solved() {
				return nil
			}
			fmt.Printf("Objective: %g\n\n", sol.Objective)

			order, err := ranking.DisplayOrder(p, cat)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RECIPE\tMACHINE\tCRAFTS")
			for _, id := range order {
				sel, _ := p.Selection(id)
				fmt.Fprintf(w, "%d\t%s\t%.0f\n", id, sel.Recipe().Machine, sol.CraftCounts[id])
			}

			fmt.Fprintln(w, "\nITEM\tPRODUCED\tCONSUMED\tRAW\tBYPRODUCT")
			for _, id := range p.ItemIDs() {
				d, _ := p.Demand(id)
				item, err := cat.Item(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.0f\n",
					item.Name(), d.TotalProduced, d.TotalConsumed, d.RawRequirement(), d.Byproduct())
			}

			if len(sol.InfiniteDraws) > 0 {
				fmt.Fprintln(w, "\nRAW INGREDIENT\tDRAWN")
				for _, id := range p.ItemIDs() {
					drawn, ok := sol.InfiniteDraws[id]
					if !ok {
						continue
					}
					item, err := cat.Item(id)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\t%.0f\n", item.Name(), drawn)
				}
			}
			return w.Flush()
		},
	}
}
