// Command worker consumes storefront order events and runs the offer expiry sweep.
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

	app.NewWorkerRunner().MustRun(app.MustBuildWorkerContainer(ctx))
}
