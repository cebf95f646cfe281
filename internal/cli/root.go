package cli

import (
	"github.com/spf13/cobra"

	"dailydiet/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the dailydiet command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "dailydiet",
		Short:        "Daily diet meal tracking API",
		Long:         "HTTP API for registering users, tracking meals and reporting on-diet metrics.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		// Running the bare binary serves the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to the TOML config file (default $CONFIG_FILE or configs/config.toml)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func (o *RootOptions) loadConfig() (*config.Config, error) {
	return config.Load(o.ConfigPath)
}
