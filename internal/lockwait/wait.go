package lockwait

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the polling granularity.
const DefaultInterval = time.Second

// Waiter polls a lock until it is released or a deadline passes.
type Waiter struct {
	probe    ProbeFunc
	interval time.Duration
	watch    bool
}

// New creates a Waiter that polls with probe every DefaultInterval.
func New(probe ProbeFunc) *Waiter {
	if probe == nil {
		probe = FcntlProbe
	}
	return &Waiter{
		probe:    probe,
		interval: DefaultInterval,
		watch:    true,
	}
}

// SetInterval overrides the polling interval (useful for testing).
func (w *Waiter) SetInterval(d time.Duration) {
	w.interval = d
}

// SetWatch enables or disables the fsnotify wake-up.
func (w *Waiter) SetWatch(enabled bool) {
	w.watch = enabled
}

// Wait blocks until the lock at path is free, timeout elapses, or ctx is
// done. It returns true as soon as a probe finds the lock free and false,
// with a nil error, when the timeout elapses first. A probe error or
// cancellation is returned immediately. A non-positive timeout probes once.
func (w *Waiter) Wait(ctx context.Context, path string, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		held, err := w.probe(path)
		if err != nil {
			return false, fmt.Errorf("lock probe failed: %w", err)
		}
		return !held, nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	// The backoff ticker fires once immediately, then every interval.
	ticker := backoff.NewTicker(backoff.NewConstantBackOff(w.interval))
	defer ticker.Stop()

	var events chan fsnotify.Event
	var watchErrs chan error
	if w.watch {
		if fw, err := fsnotify.NewWatcher(); err == nil {
			defer fw.Close()
			if err := fw.Add(filepath.Dir(path)); err == nil {
				events = fw.Events
				watchErrs = fw.Errors
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-ticker.C:
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
		case _, ok := <-watchErrs:
			// Watch errors only cost the early wake-up; polling continues.
			if !ok {
				watchErrs = nil
			}
			continue
		}

		held, err := w.probe(path)
		if err != nil {
			return false, fmt.Errorf("lock probe failed: %w", err)
		}
		if !held {
			return true, nil
		}
	}
}
