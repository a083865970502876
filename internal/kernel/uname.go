package kernel

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrIdentity means the running kernel's release could not be determined.
var ErrIdentity = errors.New("cannot determine the running kernel release")

// BootedRelease returns the running kernel's release string, as printed by
// `uname -r`.
func BootedRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("%w: uname: %w", ErrIdentity, err)
	}

	release := unix.ByteSliceToString(uts.Release[:])
	if release == "" {
		return "", fmt.Errorf("%w: uname returned an empty release", ErrIdentity)
	}
	return release, nil
}
