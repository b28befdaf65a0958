package cmd

import (
	"fmt"

	"github.com/psds-microservice/marketplace-service/internal/config"
	"github.com/psds-microservice/marketplace-service/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "marketplace-service",
	Short: "Services marketplace API: service requests, billing estimates, disputes, payments (PSDS)",
	RunE:  runAPI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(expireEstimatesCmd)
	rootCmd.AddCommand(replayEventsCmd)
}

// loadConfig: общий для команд разбор .env и окружения.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
