package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/portalgun/internal/cli"
	"github.com/rshade/portalgun/pkg/version"
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		// cobra has already printed the error.
		os.Exit(1)
	}
}
