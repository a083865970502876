package kernel

import (
	"errors"
	"sort"
)

// ErrBootedNotFound means no installed kernel package matches the running
// kernel. Nothing may be reported or removed in that case.
var ErrBootedNotFound = errors.New("booted kernel not found among installed kernel packages")

// Result is the outcome of one classification run.
type Result struct {
	// Booted is the package matching the running kernel. When several
	// packages match, the last one seen is kept here; none of them is ever
	// listed in Unused.
	Booted *Record
	// BootedCount is the number of packages that matched the running kernel.
	BootedCount int
	// Unused holds every other kernel package, sorted by name.
	Unused []Record
}

// UnusedNames returns the names of the unused packages, sorted.
func (r Result) UnusedNames() []string {
	names := make([]string, len(r.Unused))
	for i, rec := range r.Unused {
		names[i] = rec.Name
	}
	return names
}

// Resolve splits the classified records into the booted kernel and the
// packages safe to remove. It returns ErrBootedNotFound, and an empty
// Result, when no record is marked booted.
func Resolve(g Groups) (Result, error) {
	var res Result

	for _, rec := range g.All() {
		if rec.Booted {
			booted := rec
			res.Booted = &booted
			res.BootedCount++
			continue
		}
		res.Unused = append(res.Unused, rec)
	}

	if res.Booted == nil {
		return Result{}, ErrBootedNotFound
	}

	sort.Slice(res.Unused, func(i, j int) bool {
		return res.Unused[i].Name < res.Unused[j].Name
	})

	return res, nil
}
