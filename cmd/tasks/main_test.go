package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "tasks" {
		t.Fatalf("expected root command name tasks, got %q", rootCmd.Use)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"add", "edit", "toggle", "delete", "rm", "list", "show", "count", "serve", "ui"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("expected command %q to be registered, got %v", name, err)
		}
	}
}
