// Package lockwait waits, for a bounded time, until another process releases
// the dpkg frontend lock.
//
// The lock is probed once immediately and then once per second. Activity in
// the lock file's directory, reported by fsnotify, triggers an extra probe
// so a released lock is noticed without waiting for the next tick. If the
// watch cannot be set up the waiter silently falls back to plain polling.
//
// Example usage:
//
//	w := lockwait.New(lockwait.FcntlProbe)
//	free, err := w.Wait(ctx, lockwait.DefaultLockFile, 30*time.Second)
//	if err != nil {
//		return err // probe failure or cancellation
//	}
//	if !free {
//		// timed out; the caller decides whether to proceed
//	}
package lockwait
