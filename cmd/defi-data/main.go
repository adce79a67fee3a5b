package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"defi-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&dexCmd{}, "collect")
	subcommands.Register(&lendingCmd{}, "collect")
	subcommands.Register(&reportCmd{}, "report")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
