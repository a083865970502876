package app

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/kernelprune/internal/config"
	"github.com/blackwell-systems/kernelprune/internal/lockwait"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

// defaultConfigPath is read when --config is not given.
var defaultConfigPath = config.DefaultPath

var (
	flagUninstall      bool
	flagWaitSeconds    int
	flagLegacyLockWait bool
	flagConfigPath     string
	flagLockFile       string
	flagVerbose        bool
	flagDryRun         bool

	// RootCmd is the root command for kernelprune
	RootCmd = &cobra.Command{
		Use:   "kernelprune",
		Short: "List and purge kernel packages other than the running one",
		Long: `kernelprune lists installed kernel image packages (linux-image-*,
kfreebsd-image-*, gnumach-image-*) that do not belong to the running kernel,
one name per line, and optionally purges them.

Nothing is printed or removed unless the package of the running kernel is
positively identified among the installed packages. Meta-packages such as
linux-image-amd64 and debug symbol packages are never touched.

Purging uses apt-get when available and dpkg otherwise. With
--wait-seconds-for-lock, apt-get 1.9.11 and later wait for the dpkg lock
themselves; older versions, dpkg, and --legacy-lock-wait poll the lock
from kernelprune instead and attempt the purge even if it stays held.

Defaults may be set in ` + config.DefaultPath + `:

  wait_seconds_for_lock: 0
  legacy_lock_wait: false
  lock_file: ` + lockwait.DefaultLockFile + `
  tool: auto            # auto, apt-get or dpkg

Exit status is 0 on success, 1 on failure and 64 on usage errors.

Examples:
  # Show kernel packages that are not in use
  kernelprune

  # Show all kernel packages and which one is booted
  kernelprune --verbose

  # Purge them, waiting up to a minute for another package manager
  sudo kernelprune --uninstall --wait-seconds-for-lock 60

  # Print the purge command without running it
  kernelprune --uninstall --dry-run`,
		Args:          noPositionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	RootCmd.Version = Version

	RootCmd.Flags().BoolVarP(&flagUninstall, "uninstall", "u", false, "purge the unused kernel packages")
	RootCmd.Flags().IntVarP(&flagWaitSeconds, "wait-seconds-for-lock", "w", 0, "wait up to this many seconds for the dpkg lock before purging")
	RootCmd.Flags().BoolVar(&flagLegacyLockWait, "legacy-lock-wait", false, "poll the dpkg lock from kernelprune even if apt-get can wait for it")
	RootCmd.Flags().StringVar(&flagConfigPath, "config", "", "configuration file (default: "+config.DefaultPath+")")
	RootCmd.Flags().StringVar(&flagLockFile, "lock-file", "", "lock file polled in legacy lock-wait mode (default: "+lockwait.DefaultLockFile+")")
	RootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "show every kernel package and the booted one on stderr")
	RootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "with --uninstall, print the purge command instead of running it")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
}

// Execute runs the root command. Cancelling ctx stops the package query and
// lock wait and interrupts a running purge.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("unexpected argument %q", args[0])
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	return runPrune(cmd.Context(), opts, systemDeps(stdout, stderr), stdout, stderr)
}
