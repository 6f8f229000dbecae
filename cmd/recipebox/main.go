// RecipeBox: a terminal recipe collection manager.
//
// Usage:
//
//	recipebox [--backend file|sqlite|memory] [--data-path PATH] [--verbose] [--quiet]
//	recipebox list [--category C] [--search TEXT] [--sort KEY]
//	recipebox add --name N --ingredients "a, b" --instructions TEXT [--category C]
//	recipebox delete ID | favorite ID | export FILE | import FILE
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
