package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlekbai/function_registry/internal/app"
	"github.com/atlekbai/function_registry/internal/config"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the function service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			if err := app.ConfigureLogging(cfg); err != nil {
				return err
			}
			return app.Serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String(config.KeyPort, "8080", "listen port")
	cmd.Flags().String(config.KeyDatabaseURL, "", "Postgres connection string; evaluation is disabled when empty")
	cmd.Flags().String(config.KeyTimeZone, "UTC", "default session time zone")
	cmd.Flags().String(config.KeyLogFormat, "console", "log format: console or json")
	for _, key := range []string{config.KeyPort, config.KeyDatabaseURL, config.KeyTimeZone, config.KeyLogFormat} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(key))
	}
	return cmd
}
