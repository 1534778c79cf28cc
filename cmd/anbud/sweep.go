package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/provision"
)

func newSweepCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Retry pending folder-provisioning jobs once",
		Long:  "Runs one pass over pending provisioning jobs. The serve command schedules this automatically; sweep exists for manual retries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			fe := folderEnsurer(cfg)
			if fe == nil {
				return fmt.Errorf("sweep: sharepoint is not configured")
			}

			done, err := provision.Sweep(gormDB, fe)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sweep completed %d job(s).\n", done)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}
