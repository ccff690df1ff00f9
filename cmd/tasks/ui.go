package main

import (
	"fmt"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return fmt.Errorf("ui requires an interactive terminal")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return tui.Run(store)
}
