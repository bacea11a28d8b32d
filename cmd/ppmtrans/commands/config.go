package commands

import (
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-locality/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration that a transformation would use, after merging
defaults, the --config file, PPMTRANS_* environment variables and flags.`,
		Example: `  ppmtrans config show --config ppmtrans.yaml
  PPMTRANS_TRANSFORM_ROTATE=90 ppmtrans config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
