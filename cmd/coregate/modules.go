package main

import (
	"fmt"
	"sort"

	"github.com/sandevgo/coregate/internal/gateway"
	"github.com/sandevgo/coregate/internal/modules"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the registered modules",
	Run: func(cmd *cobra.Command, args []string) {
		registry := gateway.NewRegistry(modules.NewHandlers())

		names := registry.List()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
