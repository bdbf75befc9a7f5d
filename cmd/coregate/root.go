package main

import (
	"context"
	"os"

	"github.com/sandevgo/coregate/internal/config"
	"github.com/sandevgo/coregate/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "coregate",
	Short: "Coregate — module/intent request gateway",
	Long:  `Coregate routes module/intent requests to pluggable content modules, enriches them with stored context and validates feedback submissions.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
