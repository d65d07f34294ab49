package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "engliz",
	Short: "Adaptive CEFR English level test",
	Long:  "Engliz is a terminal adaptive English proficiency test across CEFR bands A1 to C2.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to the item bank JSON file (overrides ENGLIZ_BANK env var)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveBankPath returns the item bank path using the --bank flag (highest
// priority), then the ENGLIZ_BANK env var, then the config file, then the
// default ./bank.json.
func resolveBankPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		return p
	}
	if p := os.Getenv("ENGLIZ_BANK"); p != "" {
		return p
	}
	if cfg, err := loadHostConfig(); err == nil && cfg.Bank != "" {
		return cfg.Bank
	}
	return "bank.json"
}
