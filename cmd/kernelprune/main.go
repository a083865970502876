package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blackwell-systems/kernelprune/internal/app"
)

func main() {
	ctx, stop := app.NotifyContext(context.Background())

	err := app.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if app.IsUsageError(err) {
			fmt.Fprintln(os.Stderr, "Run 'kernelprune --help' for usage.")
		}
		os.Exit(app.ExitCode(err))
	}
}
