package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/transitdesk/lostfound-backend/internal/cli"
	"github.com/transitdesk/lostfound-backend/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.SetTextFormatter()

	if err := cli.NewRootCmd(cli.OpenFromEnv).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
