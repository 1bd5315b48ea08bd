package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcerda/craftflow/internal/adapters/importer"
	"github.com/dcerda/craftflow/internal/infrastructure/database"
)

// NewImportCommand creates the dump import command
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dump-file>",
		Short: "Import a game-data dump into the catalog database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, _, err := openCatalog()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate catalog schema: %w", err)
			}
			if err := importer.NewImporter(db).ImportFile(args[0]); err != nil {
				return err
			}
			fmt.Println("Import complete")
			return nil
		},
	}
}
