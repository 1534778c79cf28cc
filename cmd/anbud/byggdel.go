package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/byggdel"
	"github.com/stenvik/anbud/internal/provision"
)

func newByggdelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "byggdel",
		Short: "Manage byggdelar (construction disciplines)",
	}

	cmd.AddCommand(newByggdelAddCmd())
	cmd.AddCommand(newByggdelListCmd())
	cmd.AddCommand(newByggdelRmCmd())
	return cmd
}

func newByggdelAddCmd() *cobra.Command {
	var (
		configPath string
		project    string
		code       string
		category   string
		moment     string
	)

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Create a byggdel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projectID := projectOrDefault(project, cfg.Project)

			bd, err := byggdel.Create(gormDB, byggdel.CreateOpts{
				CompanyID: cfg.Company,
				ProjectID: projectID,
				Label:     args[0],
				Code:      code,
				Category:  category,
				Moment:    moment,
			}, cliActor(cfg))
			if err != nil {
				return err
			}

			// Fire-and-forget: the command returns without waiting for
			// the folder, and a provisioning failure stays silent.
			if fe := folderEnsurer(cfg); fe != nil {
				if job, err := provision.EnqueueByggdel(gormDB, cfg.ProjectRoot(projectID), *bd); err == nil {
					provision.Kickoff(gormDB, fe, job)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created byggdel %s: %s\n", bd.ID, bd.Label)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().StringVar(&code, "code", "", "byggdel code, e.g. 84")
	cmd.Flags().StringVar(&category, "category", "", "category/group")
	cmd.Flags().StringVar(&moment, "moment", "", "moment description")
	return cmd
}

func newByggdelListCmd() *cobra.Command {
	var (
		configPath     string
		project        string
		includeDeleted bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List byggdelar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			items, err := byggdel.List(gormDB, cfg.Company, projectOrDefault(project, cfg.Project), includeDeleted)
			if err != nil {
				return err
			}
			printByggdelList(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().BoolVar(&includeDeleted, "deleted", false, "include soft-deleted byggdelar")
	return cmd
}

func newByggdelRmCmd() *cobra.Command {
	var (
		configPath string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Soft-delete a byggdel",
		Long:  "Marks a byggdel as deleted. Its paket are left untouched and the row is never physically removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			err = byggdel.SoftDelete(gormDB, cfg.Company, projectOrDefault(project, cfg.Project), args[0], cliActor(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted byggdel %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	return cmd
}
