package dpkg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/hashicorp/go-version"
)

// Tool names a package removal program.
type Tool string

const (
	ToolAptGet Tool = "apt-get"
	ToolDpkg   Tool = "dpkg"
)

// ToolAuto selects the most capable tool available.
const ToolAuto = "auto"

// ErrToolNotFound is returned when no usable removal tool is on PATH.
var ErrToolNotFound = errors.New("no package removal tool found")

// LookPathFunc resolves a program name to a path (exec.LookPath).
type LookPathFunc func(file string) (string, error)

// preference lists tools from most to least capable.
var preference = []Tool{ToolAptGet, ToolDpkg}

// lockTimeoutSince is the first apt release that honours DPkg::Lock::Timeout.
var lockTimeoutSince = version.Must(version.NewVersion("1.9.11"))

// DetectTool returns the removal tool to use. With choice set to "auto" (or
// empty) apt-get is preferred over dpkg; otherwise the named tool must be
// present.
func DetectTool(lookPath LookPathFunc, choice string) (Tool, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	candidates := preference
	if choice != "" && choice != ToolAuto {
		t, err := ParseTool(choice)
		if err != nil {
			return "", err
		}
		candidates = []Tool{t}
	}

	for _, t := range candidates {
		if _, err := lookPath(string(t)); err == nil {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w (looked for %v)", ErrToolNotFound, candidates)
}

// ParseTool validates a tool name.
func ParseTool(name string) (Tool, error) {
	for _, t := range preference {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown removal tool %q: must be one of: auto, apt-get, dpkg", name)
}

var aptVersionRe = regexp.MustCompile(`^apt (\d+(?:\.\d+)*)`)

// SupportsLockTimeout reports whether the installed apt-get accepts the
// DPkg::Lock::Timeout option.
func SupportsLockTimeout(ctx context.Context, executor Executor) (bool, error) {
	output, err := executor.Output(ctx, string(ToolAptGet), "--version")
	if err != nil {
		return false, fmt.Errorf("failed to query apt-get version: %w", err)
	}

	v, err := parseAptVersion(output)
	if err != nil {
		return false, err
	}
	return v.GreaterThanOrEqual(lockTimeoutSince), nil
}

// parseAptVersion extracts the numeric release from the first line of
// `apt-get --version`, e.g. "apt 2.6.1 (amd64)" or "apt 2.4.11ubuntu0.1 (amd64)".
func parseAptVersion(output []byte) (*version.Version, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty apt-get --version output")
	}

	m := aptVersionRe.FindStringSubmatch(scanner.Text())
	if m == nil {
		return nil, fmt.Errorf("unrecognised apt-get version line %q", scanner.Text())
	}

	v, err := version.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse apt version %q: %w", m[1], err)
	}
	return v, nil
}
