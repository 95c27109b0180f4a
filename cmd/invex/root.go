package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invex/internal/config"
	"invex/internal/logging"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "invex",
		Short:         "Extract structured data from vendor invoice PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logging.Setup(cfg.Log)
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML)")

	cmd.AddCommand(newInvoicesCmd(opts))
	cmd.AddCommand(newExtractCmd(opts))
	return cmd
}
