package dpkg

import "strings"

// Entry is one line of the installed-package database listing.
type Entry struct {
	Status  string // dpkg status abbreviation, e.g. "ii " or "rc "
	Name    string
	Version string
}

// Installed reports whether the entry is wanted for install, fully installed,
// and carries no error flag. dpkg abbreviates that state as "ii" followed by
// a blank error column.
func (e Entry) Installed() bool {
	return strings.TrimRight(e.Status, " ") == "ii"
}
