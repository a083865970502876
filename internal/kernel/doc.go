// Package kernel recognises installed kernel image packages and decides
// which of them are safe to purge.
//
// The flow is one-directional:
//
//	entries, _ := dpkg.NewLister(nil).ListInstalled(ctx)
//	release, _ := kernel.BootedRelease()
//	groups := kernel.Classify(entries, release)
//	result, err := kernel.Resolve(groups)
//	if errors.Is(err, kernel.ErrBootedNotFound) {
//		// refuse to report or remove anything
//	}
//
// Resolve never returns a package whose kernel version equals the running
// kernel's release, and it fails outright when no installed package matches
// that release.
package kernel
