package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/dcerda/craftflow/internal/adapters/persistence"
	"github.com/dcerda/craftflow/internal/infrastructure/config"
	"github.com/dcerda/craftflow/internal/infrastructure/database"
)

var (
	// Global flags
	configPath string
	planPath   string
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "craftflow",
		Short: "CraftFlow - recipe-flow planner for crafting games",
		Long: `CraftFlow plans how many times each selected recipe must run to meet
a production goal, minimizing raw-material cost and crafting operations.

Examples:
  craftflow import gamedata.json
  craftflow search "Electronic Circuit"
  craftflow recipes --result 1204
  craftflow plan add 7731
  craftflow plan want 1204 64
  craftflow solve`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&planPath, "plan", "p", "plan.json",
		"Path to the plan document")

	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewSearchCommand())
	rootCmd.AddCommand(NewRecipesCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewOverclockCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openCatalog opens the configured catalog database and wraps it in
// the memoizing repository.
func openCatalog() (*gorm.DB, *persistence.GormCatalogRepository, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, persistence.NewGormCatalogRepository(db), cfg, nil
}
