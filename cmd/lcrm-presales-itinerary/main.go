package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ai8future/lcrm/internal/cli"
	"github.com/ai8future/lcrm/internal/itinerary"
)

// Build-time variables
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	root := cli.NewRootCommand(itinerary.Program(Version + " (" + GitCommit + ")"))
	code := cli.Execute(ctx, root)
	stop()
	os.Exit(code)
}
