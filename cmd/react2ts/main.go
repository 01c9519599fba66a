// Command react2ts migrates React components that declare runtime propTypes
// to TypeScript: it renames .js/.jsx files to .tsx and adds Props and State
// types inferred from propTypes, state initialisers and setState calls.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "react2ts: %v\n", err)
		return 1
	}
	return 0
}
