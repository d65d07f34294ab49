package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/engliz/internal/bank"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an item bank file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBankPath(cmd)

		minItems, _ := cmd.Flags().GetInt("min-items")
		if !cmd.Flags().Changed("min-items") {
			if cfg, err := loadHostConfig(); err == nil && cfg.MinItems > 0 {
				minItems = cfg.MinItems
			}
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open item bank: %w", err)
		}
		defer f.Close()

		catalog, err := bank.LoadWith(f, bank.Config{MinItemsPerLevel: minItems})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Printf("%s: OK (%d items)\n", path, catalog.Len())
		for _, lvl := range catalog.Levels() {
			fmt.Printf("  %s: %d items\n", lvl, len(catalog.Items(lvl)))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Int("min-items", 20, "Minimum items required per level")
}
