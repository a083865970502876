package dpkg

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a subprocess invocation. Env holds extra KEY=VALUE pairs
// added to the child's environment only; the current process environment is
// never modified.
type Command struct {
	Name string
	Args []string
	Env  []string
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Executor abstracts command execution to ease testing.
type Executor interface {
	// Output runs a query command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs a command with stdin detached and output streamed to the
	// executor's writers.
	Run(ctx context.Context, cmd Command) error
}

// SystemExecutor executes commands on the local OS.
type SystemExecutor struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemExecutor returns an executor that streams child output to the
// process's own stdout and stderr.
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *SystemExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s failed: %w (stderr: %s)", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s failed: %w", name, err)
	}
	return output, nil
}

func (e *SystemExecutor) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Env = append(os.Environ(), c.Env...)
	// A nil Stdin reads from the null device.
	cmd.Stdin = nil
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	// On cancellation the child is interrupted, never killed. WaitDelay
	// stays zero so Wait returns only once the child has exited.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	return cmd.Run()
}
