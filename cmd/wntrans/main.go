// Command wntrans imports WordNet synsets into a task store and translates
// them with Bing or Google, one synset at a time.
//
// Configuration comes from the YAML file named by --config or CONFIG_PATH
// (default ./config.yaml) with environment overrides.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
