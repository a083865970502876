package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context cancelled by the first SIGINT or SIGTERM.
// Once it is cancelled the default signal behavior is restored, so a second
// signal terminates the process even while a purge is still running.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	releaseOnDone(ctx, stop)
	return ctx, stop
}

// releaseOnDone calls stop as soon as ctx is done.
func releaseOnDone(ctx context.Context, stop func()) {
	go func() {
		<-ctx.Done()
		stop()
	}()
}
