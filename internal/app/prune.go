package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/blackwell-systems/kernelprune/internal/dpkg"
	"github.com/blackwell-systems/kernelprune/internal/kernel"
	"github.com/blackwell-systems/kernelprune/internal/lockwait"
	"github.com/blackwell-systems/kernelprune/internal/output"
)

// deps are the system touch points of a prune run.
type deps struct {
	bootedRelease func() (string, error)
	executor      dpkg.Executor
	lookPath      dpkg.LookPathFunc
	probe         lockwait.ProbeFunc
	// pollInterval overrides lockwait.DefaultInterval when positive.
	pollInterval time.Duration
}

func systemDeps(stdout, stderr io.Writer) deps {
	return deps{
		bootedRelease: kernel.BootedRelease,
		executor:      &dpkg.SystemExecutor{Stdout: stdout, Stderr: stderr},
		lookPath:      exec.LookPath,
		probe:         lockwait.FcntlProbe,
	}
}

// runPrune prints the unused kernel packages to stdout, one per line, and
// purges them when opts.uninstall is set. Diagnostics go to stderr.
func runPrune(ctx context.Context, opts options, d deps, stdout, stderr io.Writer) error {
	printer := output.NewPrinter(stderr)
	printer.SetVerbose(opts.verbose)

	release, err := d.bootedRelease()
	if err != nil {
		return err
	}
	printer.Debugf("Running kernel release: %s", release)

	var tool dpkg.Tool
	if opts.uninstall {
		tool, err = dpkg.DetectTool(d.lookPath, opts.tool)
		if err != nil {
			return err
		}
		printer.Debugf("Removal tool: %s", tool)
	}

	entries, err := dpkg.NewLister(d.executor).ListInstalled(ctx)
	if err != nil {
		return err
	}

	groups := kernel.Classify(entries, release)
	if opts.verbose {
		fmt.Fprint(stderr, output.RenderKernelTable(groups, printer.ColorEnabled()))
	}

	result, err := kernel.Resolve(groups)
	if err != nil {
		if errors.Is(err, kernel.ErrBootedNotFound) {
			return fmt.Errorf("%w (running release %s)", err, release)
		}
		return err
	}
	if result.BootedCount > 1 {
		printer.Debugf("%d installed packages match release %s; keeping all of them", result.BootedCount, release)
	}
	printer.Debugf("Booted kernel package: %s", result.Booted.Name)

	names := result.UnusedNames()
	if len(names) == 0 {
		printer.Debugf("No unused kernel packages")
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}

	if !opts.uninstall {
		return nil
	}

	purgeOpts, clientWait := lockStrategy(ctx, opts, tool, d.executor, printer)

	if opts.dryRun {
		printer.Infof("Dry run, not executing: %s", dpkg.PurgeCommand(tool, names, purgeOpts))
		return nil
	}

	if clientWait {
		if err := waitForLock(ctx, opts, d, printer); err != nil {
			return err
		}
	}

	printer.Infof("Purging %d kernel package(s) with %s...", len(names), tool)
	if err := dpkg.NewPurger(d.executor, tool).Purge(ctx, names, purgeOpts); err != nil {
		return err
	}
	printer.Successf("Purged %d kernel package(s)", len(names))
	return nil
}

// lockStrategy decides who waits for the dpkg lock. apt-get waits itself
// when it understands DPkg::Lock::Timeout and legacy mode is off; otherwise
// clientWait is true and the lock is polled before the purge starts.
func lockStrategy(ctx context.Context, opts options, tool dpkg.Tool, executor dpkg.Executor, printer *output.Printer) (purgeOpts dpkg.PurgeOptions, clientWait bool) {
	if opts.waitSeconds <= 0 {
		return dpkg.PurgeOptions{}, false
	}
	if tool != dpkg.ToolAptGet || opts.legacyLockWait {
		return dpkg.PurgeOptions{}, true
	}

	ok, err := dpkg.SupportsLockTimeout(ctx, executor)
	switch {
	case err != nil:
		printer.Warnf("Cannot determine the apt-get version (%v), waiting for the lock here instead", err)
		return dpkg.PurgeOptions{}, true
	case !ok:
		printer.Debugf("apt-get does not support DPkg::Lock::Timeout, waiting for the lock here instead")
		return dpkg.PurgeOptions{}, true
	}
	return dpkg.PurgeOptions{LockTimeout: opts.waitSeconds}, false
}

// waitForLock polls opts.lockFile for up to opts.waitSeconds. A lock that is
// still held at the deadline only produces a warning.
func waitForLock(ctx context.Context, opts options, d deps, printer *output.Printer) error {
	waiter := lockwait.New(d.probe)
	if d.pollInterval > 0 {
		waiter.SetInterval(d.pollInterval)
	}
	timeout := time.Duration(opts.waitSeconds) * time.Second

	spinner := output.NewSpinner(printer.Writer(), "Waiting for "+opts.lockFile, timeout)
	spinner.Start()
	free, err := waiter.Wait(ctx, opts.lockFile, timeout)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", opts.lockFile, err)
	}

	if !free {
		printer.Warnf("%s is still locked after %d second(s), purging anyway", opts.lockFile, opts.waitSeconds)
	} else {
		printer.Debugf("%s is free", opts.lockFile)
	}
	return nil
}
