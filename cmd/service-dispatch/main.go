// Command service-dispatch serves the driver and dispatch HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"service-rider-dispatch/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.NewRunner().MustRun(app.MustBuildContainer(ctx))
}
