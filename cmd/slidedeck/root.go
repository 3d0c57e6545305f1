package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const rootLong = `slidedeck builds the "Slides in Matplotlib" lightning talk as a PDF.

Every slide is a figure-sized page laid out in figure fractions. The release
history slide is drawn from the git tags of a Matplotlib checkout, given as
the only argument (default: talk.checkout in the config, or ".").

Configuration is read from slidedeck.yaml (or .yml, .toml) in the working
directory or the user config directory, then SLIDEDECK_* environment
variables, then flags.`

// newRootCmd builds the command tree. Running the root command builds the
// deck, like "slidedeck build".
func newRootCmd(deps *Dependencies) *cobra.Command {
	var (
		common commonFlags
		flags  buildFlags
	)

	root := &cobra.Command{
		Use:           "slidedeck [checkout]",
		Short:         "Build the Slides in Matplotlib deck",
		Long:          rootLong,
		Version:       Version,
		Args:          checkoutArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := newLogger(deps.Stderr, logLevel(common.quiet, common.verbose))
			cmd.SetContext(withLogger(cmd.Context(), logger))

			// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS,
			// and the runtime default applies then.
			_, _ = maxprocs.Set(maxprocs.Logger(logger.Debugf))
			warnUnknownEnvVars(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildCommand(cmd, deps, &common, &flags, args)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	addCommonFlags(root.PersistentFlags(), &common)
	addBuildFlags(root.Flags(), &flags)

	root.AddCommand(
		newBuildCmd(deps, &common),
		newTimelineCmd(deps, &common),
		newDoctorCmd(deps),
		newPreviewCmd(deps, &common),
		newConfigCmd(deps, &common),
	)
	return root
}

// checkoutArgs accepts at most one checkout path. Without one, the checkout
// must come from SLIDEDECK_CHECKOUT or the config file.
func checkoutArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one checkout, got %d arguments", ErrUsage, len(args))
	}
	return nil
}
