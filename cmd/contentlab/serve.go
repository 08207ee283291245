package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/btwebgroup/contentlab/internal/config"
	"github.com/btwebgroup/contentlab/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireKey(); err != nil {
		return err
	}

	programLevel := slog.LevelInfo
	if cfg.Debug {
		programLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(logger)

	app := httpapi.NewServer(cfg, logger)
	log.Printf("listening on %s", cfg.Addr)
	return app.Listen(cfg.Addr)
}
