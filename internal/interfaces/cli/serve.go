package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/WellNodal/internal/app"
)

// newServeCommand runs the same server stack as cmd/apiserver, for
// deployments that ship the single wellnodal binary.
func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the WellNodal API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return app.Run(ctx, app.Options{
				Config:     cfg,
				ConfigPath: configPath,
				Version:    Version,
			})
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default: environment only)")
	return cmd
}
