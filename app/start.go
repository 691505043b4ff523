package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dulha-dulhan/matrimony/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the web service and the notification worker",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err = initLogger(cfg); err != nil {
			return err
		}

		log.Info().Int("port", cfg.Webserver.Port).Str("db", cfg.DB.GormEngine).Bool("dev", cfg.DevMode).
			Msg("starting")

		d, err := daemon.New(cfg)
		if err != nil {
			return err
		}

		return d.Start()
	},
}
