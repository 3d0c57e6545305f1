package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-slidedeck/internal/codec"
	"github.com/alnah/go-slidedeck/internal/config"
)

func newConfigCmd(deps *Dependencies, common *commonFlags) *cobra.Command {
	var (
		format string
		flags  buildFlags
	)
	cmd := &cobra.Command{
		Use:   "config [checkout]",
		Short: "Print the effective configuration",
		Long: `Print the configuration a build would use, after the config file,
SLIDEDECK_* variables and flags are applied. The output can be saved as a
starting slidedeck.yaml or slidedeck.toml.`,
		Args: checkoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := codec.Format(format)
			if f != codec.YAML && f != codec.TOML {
				return fmt.Errorf("%w: --format must be yaml or toml, got %q", ErrUsage, format)
			}
			cfg, path, err := configure(common, args, func(cfg *config.Config) {
				mergeBuildFlags(cmd.Flags(), &flags, cfg)
			}, loggerFromContext(cmd.Context()))
			if err != nil {
				return withHint(err, "")
			}

			out, err := codec.Marshal(f, cfg)
			if err != nil {
				return err
			}
			if path != "" {
				fmt.Fprintf(deps.Stdout, "# from %s\n", path)
			}
			_, err = deps.Stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(codec.YAML), "output format: yaml or toml")
	addBuildFlags(cmd.Flags(), &flags)
	return cmd
}
