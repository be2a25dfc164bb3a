package main

import (
	"context"
	"log/slog"
	"os"

	"vestiaire/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring.
// 3) Start consumers/schedulers (outbox relay, vote reconciliation).
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := bootstrap.BuildWorker()
	if err != nil {
		slog.Error("bootstrap worker failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("worker shutdown close failed", "error", err.Error())
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("worker stopped with error", "error", err.Error())
		os.Exit(1)
	}
}
