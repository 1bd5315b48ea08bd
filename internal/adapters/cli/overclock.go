package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcerda/craftflow/internal/domain/overclock"
)

// NewOverclockCommand creates the overclock calculator command
func NewOverclockCommand() *cobra.Command {
	var eut int32
	var voltage int64
	var duration int32

	cmd := &cobra.Command{
		Use:   "overclock",
		Short: "Compute overclocked power draw and duration for a recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := overclock.Calculate(eut, voltage, duration)
			tier := overclock.TierByVoltage(voltage)
			fmt.Printf("Tier: %s\n", overclock.TierNames[tier])
			fmt.Printf("EU/t: %d -> %d\n", eut, result.EUt)
			fmt.Printf("Duration: %d -> %d ticks (%.1fs)\n",
				duration, result.Duration, float64(result.Duration)/20.0)
			return nil
		},
	}

	cmd.Flags().Int32Var(&eut, "eut", 0, "Recipe power draw in EU/t")
	cmd.Flags().Int64Var(&voltage, "voltage", 32, "Supply voltage")
	cmd.Flags().Int32Var(&duration, "duration", 0, "Recipe duration in ticks")
	_ = cmd.MarkFlagRequired("eut")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}
