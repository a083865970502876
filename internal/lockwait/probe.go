package lockwait

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultLockFile is the lock apt and dpkg frontends take before touching
// the package database.
const DefaultLockFile = "/var/lib/dpkg/lock-frontend"

// ProbeFunc reports whether the lock at path is currently held by another
// process. An error aborts the wait.
type ProbeFunc func(path string) (held bool, err error)

// FcntlProbe asks the kernel whether a write lock on path would conflict
// with an existing POSIX record lock. It never takes the lock itself. A
// missing lock file means nobody holds it.
func FcntlProbe(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}
	defer f.Close()

	lk := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: int16(io.SeekStart),
	}
	if err := unix.FcntlFlock(f.Fd(), unix.F_GETLK, &lk); err != nil {
		return false, fmt.Errorf("failed to query lock on %s: %w", path, err)
	}

	return lk.Type != unix.F_UNLCK, nil
}
