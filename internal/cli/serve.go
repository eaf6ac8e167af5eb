package cli

import (
	"os"

	"github.com/Egor213/LogiStat/internal/app"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var configPath, envPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, gRPC and metrics servers",
		Long: `Run the upload service. Configuration comes from infra/config.yaml and the
environment; --config and --env override APP_CONFIG_PATH and ENV_PATH.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := os.Setenv("APP_CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			if envPath != "" {
				if err := os.Setenv("ENV_PATH", envPath); err != nil {
					return err
				}
			}
			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	cmd.Flags().StringVar(&envPath, "env", "", "env file path")

	return cmd
}
