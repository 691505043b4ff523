package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dulha-dulhan/matrimony/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().Bool("json", false, "print JSON instead of TOML")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with passwords masked",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		masked := cfg.Masked()
		asJSON, _ := cmd.Flags().GetBool("json")

		var out string
		if asJSON {
			out, err = config.DumpConfigJSON(&masked)
		} else {
			out, err = config.DumpConfig(&masked)
		}

		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)

		return nil
	},
}
