package main

import (
	"log/slog"
	"os"

	"github.com/proofworks/proof-launcher/cmd/proof-launcher/commands"
)

func main() {
	// Replaced once flags are parsed; covers errors raised before that.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	commands.Execute()
}
