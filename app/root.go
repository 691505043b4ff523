// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dulha-dulhan/matrimony/internal/config"
	"github.com/dulha-dulhan/matrimony/internal/logger"
)

const envPrefix = "DULHA_DULHAN"

var rootCmd = &cobra.Command{
	Use:   "dulha-dulhan",
	Short: "dulha-dulhan.com matrimony back office",
	Long: `dulha-dulhan.com matrimony back office serves the public profile registration
and the admin api for reviewing profiles, services and notification settings.`,
	Args: cobra.OnlyValidArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// a missing .env is fine, the environment may already be set
		if err := godotenv.Load(); err == nil {
			log.Debug().Msg("loaded .env")
		}
	},
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String("config", "./etc/", "directory containing main.toml")
	rootCmd.PersistentFlags().Bool("dev", false, "Enable dev mode")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("dev", rootCmd.PersistentFlags().Lookup("dev"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config directory named by --config or DULHA_DULHAN_CONFIG.
func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	if viper.GetBool("dev") {
		cfg.DevMode = true
	}

	return &cfg, nil
}

// initLogger sets up the global logger from cfg.
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.Log)
}
