package dpkg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrPurgeFailed is returned when the removal command exits unsuccessfully.
var ErrPurgeFailed = errors.New("package purge failed")

// NonInteractiveEnv keeps debconf from prompting during removal.
const NonInteractiveEnv = "DEBIAN_FRONTEND=noninteractive"

// PurgeOptions tunes the removal command.
type PurgeOptions struct {
	// LockTimeout, when positive, is passed to apt-get as
	// DPkg::Lock::Timeout (seconds). Ignored for dpkg.
	LockTimeout int
}

// PurgeCommand builds the removal command for tool. Configuration file
// conflicts always resolve to the default action, falling back to the
// currently installed file.
func PurgeCommand(tool Tool, names []string, opts PurgeOptions) Command {
	var args []string
	switch tool {
	case ToolDpkg:
		args = []string{"--force-confdef", "--force-confold", "--purge"}
	default:
		args = []string{
			"-y",
			"-o", "Dpkg::Options::=--force-confdef",
			"-o", "Dpkg::Options::=--force-confold",
		}
		if opts.LockTimeout > 0 {
			args = append(args, "-o", "DPkg::Lock::Timeout="+strconv.Itoa(opts.LockTimeout))
		}
		args = append(args, "purge")
	}
	args = append(args, names...)

	return Command{
		Name: string(tool),
		Args: args,
		Env:  []string{NonInteractiveEnv},
	}
}

// Purger removes packages, configuration files included.
type Purger struct {
	exec Executor
	tool Tool
}

// NewPurger constructs a Purger for tool (defaults to a SystemExecutor).
func NewPurger(exec Executor, tool Tool) *Purger {
	if exec == nil {
		exec = NewSystemExecutor()
	}
	return &Purger{exec: exec, tool: tool}
}

// Tool returns the removal tool in use.
func (p *Purger) Tool() Tool {
	return p.tool
}

// Purge removes names in a single invocation. An empty list is a no-op.
func (p *Purger) Purge(ctx context.Context, names []string, opts PurgeOptions) error {
	if len(names) == 0 {
		return nil
	}

	cmd := PurgeCommand(p.tool, names, opts)
	if err := p.exec.Run(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPurgeFailed, cmd.Name, err)
	}
	return nil
}
