package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/byggdel"
	"github.com/stenvik/anbud/internal/notify"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/provision"
)

func newPaketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paket",
		Short: "Manage RFQ packages",
	}

	cmd.AddCommand(newPaketAddCmd())
	cmd.AddCommand(newPaketListCmd())
	cmd.AddCommand(newPaketStatusCmd())
	cmd.AddCommand(newPaketRmCmd())
	return cmd
}

func newPaketAddCmd() *cobra.Command {
	var (
		configPath string
		project    string
		section    string
		supplierID string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "add <byggdel-id> <supplier-name>",
		Short: "Create a paket for a supplier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projectID := projectOrDefault(project, cfg.Project)
			out := cmd.OutOrStdout()

			bd, err := byggdel.Get(gormDB, cfg.Company, projectID, args[0])
			if err != nil {
				return err
			}

			// Advisory check only: another session adding the same
			// supplier at the same time will slip past it.
			if exists, err := paket.SupplierExists(gormDB, cfg.Company, projectID, bd.ID, args[1]); err == nil && exists {
				fmt.Fprintf(out, "Warning: %q already has a paket for this byggdel.\n", args[1])
			}

			p, err := paket.Create(gormDB, paket.CreateOpts{
				CompanyID:    cfg.Company,
				ProjectID:    projectID,
				Section:      section,
				ByggdelID:    bd.ID,
				ByggdelLabel: bd.Label,
				SupplierID:   supplierID,
				SupplierName: args[1],
				Status:       status,
			}, cliActor(cfg))
			if err != nil {
				return err
			}

			if fe := folderEnsurer(cfg); fe != nil {
				if job, err := provision.EnqueuePaket(gormDB, cfg.ProjectRoot(projectID), *bd, *p); err == nil {
					provision.Kickoff(gormDB, fe, job)
				}
			}

			fmt.Fprintf(out, "Created paket %s: %s / %s (%s)\n", p.ID, p.ByggdelLabel, p.SupplierName, p.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().StringVar(&section, "section", "", "section: forfragningar or offerter")
	cmd.Flags().StringVar(&supplierID, "supplier-id", "", "supplier registry ID")
	cmd.Flags().StringVar(&status, "status", "", "initial status (unknown values become \"Ej skickad\")")
	return cmd
}

func newPaketListCmd() *cobra.Command {
	var (
		configPath     string
		project        string
		section        string
		byggdelID      string
		status         string
		includeDeleted bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List paket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			items, err := paket.List(gormDB, cfg.Company, projectOrDefault(project, cfg.Project), paket.ListFilters{
				Section:        section,
				ByggdelID:      byggdelID,
				Status:         status,
				IncludeDeleted: includeDeleted,
			})
			if err != nil {
				return err
			}
			printPaketList(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().StringVar(&section, "section", "", "filter by section")
	cmd.Flags().StringVar(&byggdelID, "byggdel", "", "filter by byggdel ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().BoolVar(&includeDeleted, "deleted", false, "include soft-deleted paket")
	return cmd
}

func newPaketStatusCmd() *cobra.Command {
	var (
		configPath string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a paket's status",
		Long:  "Sets the status and auto-stamps sentAt/answeredAt on first entry into Skickad/Besvarad. Unknown statuses are stored as \"Ej skickad\".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			p, err := paket.Update(gormDB, cfg.Company, projectOrDefault(project, cfg.Project), args[0],
				map[string]interface{}{"status": args[1]}, cliActor(cfg))
			if err != nil {
				return err
			}

			if notifier := buildNotifier(cfg); notifier != nil {
				if evt, ok := notify.ForStatus(*p); ok {
					notifier.Send(context.Background(), evt)
					notifier.Close()
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Paket %s is now %q (sent: %s, answered: %s)\n",
				p.ID, p.Status, formatStamp(p.SentAt), formatStamp(p.AnsweredAt))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	return cmd
}

func newPaketRmCmd() *cobra.Command {
	var (
		configPath string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Soft-delete a paket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			err = paket.SoftDelete(gormDB, cfg.Company, projectOrDefault(project, cfg.Project), args[0], cliActor(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted paket %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	return cmd
}
