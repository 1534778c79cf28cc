package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage project settings",
	}

	cmd.AddCommand(newSettingsModeCmd())
	return cmd
}

func newSettingsModeCmd() *cobra.Command {
	var (
		configPath string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "mode [value]",
		Short: "Show or set the project's structure mode",
		Long:  "Without an argument, prints the current structure mode. With one, sets it; unknown values are stored as \"complete_byggdel_table\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projectID := projectOrDefault(project, cfg.Project)
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if err := settings.SetStructureMode(gormDB, cfg.Company, projectID, args[0], cliActor(cfg)); err != nil {
					return err
				}
			}

			s, err := settings.Get(gormDB, cfg.Company, projectID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Structure mode: %s\n", s.StructureMode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	return cmd
}
