package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/quarterback/quarterback/internal/config"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quarterback",
		Short: "Index cash-and-carry basket analytics",
		Long:  `Analytics for index-hedged cash-and-carry baskets: basket metrics, rebalancing needs, unwind/resize trade generation, implied forward rates and corporate action impacts`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(
		newMetricsCmd(),
		newRebalanceCmd(),
		newUnwindCmd(),
		newResizeCmd(),
		newMatrixCmd(),
		newCorpActionsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads configuration and wires the logger, loader and snapshot cache
// every subcommand shares.
func setup() (*app, error) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Error("Invalid log level, using INFO")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	return newApp(cfg, logger)
}
