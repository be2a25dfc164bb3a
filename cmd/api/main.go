package main

import (
	"context"
	"log/slog"
	"os"

	"vestiaire/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("bootstrap api failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("api shutdown close failed", "error", err.Error())
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("api stopped with error", "error", err.Error())
		os.Exit(1)
	}
}
