package dpkg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// QueryFormat is the dpkg-query output format: status abbreviation, package
// name and version separated by tabs, one package per line.
const QueryFormat = "${db:Status-Abbrev}\t${Package}\t${Version}\n"

// ErrMalformedListing is returned when any line of the package listing does
// not have exactly three tab-separated fields. The listing is then rejected
// as a whole.
var ErrMalformedListing = errors.New("malformed package listing")

// Lister queries the dpkg database for installed packages.
type Lister struct {
	exec Executor
}

// NewLister constructs a Lister with the provided executor (defaults to a
// SystemExecutor).
func NewLister(exec Executor) *Lister {
	if exec == nil {
		exec = NewSystemExecutor()
	}
	return &Lister{exec: exec}
}

// ListInstalled returns every entry in the package database, whatever its
// status. Filtering on Entry.Installed is left to the caller.
func (l *Lister) ListInstalled(ctx context.Context) ([]Entry, error) {
	output, err := l.exec.Output(ctx, "dpkg-query", "-W", "-f="+QueryFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to query installed packages: %w", err)
	}

	entries, err := ParseListing(bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dpkg-query output: %w", err)
	}
	return entries, nil
}

// ParseListing parses tab-separated status/name/version lines. Every line
// must carry exactly three fields; all offending lines are reported together
// and no entries are returned in that case.
func ParseListing(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var merr *multierror.Error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			merr = multierror.Append(merr, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d: %q", lineNo, len(fields), line))
			continue
		}

		entries = append(entries, Entry{
			Status:  fields[0],
			Name:    fields[1],
			Version: fields[2],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read package listing: %w", err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedListing, merr)
	}

	return entries, nil
}
