package app

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/config"
)

// options is the merged result of the configuration file and the flags.
type options struct {
	uninstall      bool
	waitSeconds    int
	legacyLockWait bool
	lockFile       string
	tool           string
	verbose        bool
	dryRun         bool
}

// resolveOptions loads the configuration file and applies the flags that were
// set explicitly on top of it.
func resolveOptions(cmd *cobra.Command) (options, error) {
	flags := cmd.Flags()

	path, explicit := defaultConfigPath, flags.Changed("config")
	if explicit {
		path = flagConfigPath
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return options{}, &UsageError{Err: err}
		}
		return options{}, err
	}

	opts := options{
		uninstall:      flagUninstall,
		waitSeconds:    cfg.WaitSecondsForLock,
		legacyLockWait: cfg.LegacyLockWait,
		lockFile:       cfg.LockFile,
		tool:           cfg.Tool,
		verbose:        flagVerbose,
		dryRun:         flagDryRun,
	}
	if flags.Changed("wait-seconds-for-lock") {
		opts.waitSeconds = flagWaitSeconds
	}
	if flags.Changed("legacy-lock-wait") {
		opts.legacyLockWait = flagLegacyLockWait
	}
	if flags.Changed("lock-file") {
		opts.lockFile = flagLockFile
	}

	if opts.waitSeconds < 0 {
		return options{}, usageErrorf("--wait-seconds-for-lock must not be negative (got %d)", opts.waitSeconds)
	}
	if opts.lockFile == "" {
		return options{}, usageErrorf("--lock-file must not be empty")
	}
	if opts.dryRun && !opts.uninstall {
		return options{}, usageErrorf("--dry-run requires --uninstall")
	}
	return opts, nil
}
