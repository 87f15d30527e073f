package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-vagas-pipeline/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vagas",
		Short:         "Normalize, dedupe and load Catho job postings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.yaml")

	root.AddCommand(
		newNormalizeCmd(),
		newDedupeCmd(),
		newUploadCmd(),
		newRunCmd(),
		newStatsCmd(),
		newExportCmd(),
		newPingCmd(),
		newConfigCmd(),
	)
	return root
}
