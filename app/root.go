// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/logger"
)

var (
	configPath string // directory holding main.toml
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bakery",
	Short: "Melita Bakes serves the bakery site and its admin dashboard",
	Long: `Melita Bakes serves the public bakery page (cakes, business hours,
testimonials and contact details) and the admin dashboard to edit them.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
}

// loadConfig reads the configuration and initializes the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
