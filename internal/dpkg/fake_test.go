package dpkg

import (
	"context"
	"fmt"
	"strings"
)

// fakeExecutor records invocations and replays canned output.
type fakeExecutor struct {
	outputs map[string][]byte
	errs    map[string]error
	runErr  error
	queries []string
	runs    []Command
}

func (f *fakeExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.queries = append(f.queries, key)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	out, ok := f.outputs[name]
	if !ok {
		return nil, fmt.Errorf("%s: not found", name)
	}
	return out, nil
}

func (f *fakeExecutor) Run(ctx context.Context, cmd Command) error {
	f.runs = append(f.runs, cmd)
	return f.runErr
}
