package main

import (
	"log"
	"os"

	"github.com/amonks/tasklist/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task list in a web browser",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default 127.0.0.1:<web.port>)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStoreWithConfig(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	addr := serveAddr
	if addr == "" {
		addr = cfg.WebAddr()
	}

	server := web.NewServer(web.Options{
		Store:  store,
		Logger: log.New(os.Stderr, "serve: ", log.LstdFlags),
	})
	return server.Serve(addr)
}
