package kernel

import "github.com/blackwell-systems/kernelprune/internal/dpkg"

// Record is an installed kernel image package.
type Record struct {
	Name            string
	VersionRevision string // full package version, informational only
	KernelVersion   string // version parsed from Name, never empty
	Prefix          string
	Booted          bool
}

// Groups holds kernel records keyed by family prefix. Prefixes and the
// records within each prefix keep the order they were first seen in.
type Groups struct {
	order    []string
	byPrefix map[string][]Record
}

// Prefixes returns the families present, in first-seen order.
func (g Groups) Prefixes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Records returns the records for one family.
func (g Groups) Records(prefix string) []Record {
	recs := g.byPrefix[prefix]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// All flattens every family into a single slice, family by family.
func (g Groups) All() []Record {
	var out []Record
	for _, p := range g.order {
		out = append(out, g.byPrefix[p]...)
	}
	return out
}

// Len returns the total number of records.
func (g Groups) Len() int {
	n := 0
	for _, recs := range g.byPrefix {
		n += len(recs)
	}
	return n
}

// Classify turns a package listing into kernel records grouped by family.
//
// Entries that are not fully installed, or whose names are not versioned
// kernel images, are dropped. A record is marked booted when its kernel
// version equals booted exactly; an empty booted marks nothing. More than one
// record may match. A package name seen twice keeps its first entry.
func Classify(entries []dpkg.Entry, booted string) Groups {
	g := Groups{byPrefix: make(map[string][]Record)}
	seen := make(map[string]struct{})

	for _, e := range entries {
		if !e.Installed() {
			continue
		}

		version, prefix, ok := ParseName(e.Name)
		if !ok {
			continue
		}

		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}

		if _, exists := g.byPrefix[prefix]; !exists {
			g.order = append(g.order, prefix)
		}
		g.byPrefix[prefix] = append(g.byPrefix[prefix], Record{
			Name:            e.Name,
			VersionRevision: e.Version,
			KernelVersion:   version,
			Prefix:          prefix,
			Booted:          booted != "" && version == booted,
		})
	}

	return g
}
