package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dulha-dulhan/matrimony/internal/daemon"
	"github.com/dulha-dulhan/matrimony/internal/db"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().Bool("demo", false, "also store sample settings and a featured profile")
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate the database and store the default records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err = initLogger(cfg); err != nil {
			return err
		}

		gdb, err := db.Open(cfg)
		if err != nil {
			return err
		}

		if err = daemon.Seed(cfg, gdb); err != nil {
			return err
		}

		if demo, _ := cmd.Flags().GetBool("demo"); demo {
			if err = daemon.SeedDemo(gdb); err != nil {
				return err
			}
		}

		log.Info().Msg("seed complete")

		return nil
	},
}
