// Package main implements the tasks CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tasks",
	Short:        "A personal task list",
	SilenceUsage: true,
}

var (
	storePath    string
	storeBackend string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Path to the task file or database")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "backend", "", "Storage backend (file, sqlite)")
}
