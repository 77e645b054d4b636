package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/advancify/lead-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lead-engine",
	Short: "Lead intake and qualification pipeline",
	Long:  "Receives form submissions, classifies leads via Claude, composes first-touch emails, delivers them through Microsoft Graph, and archives the results.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
