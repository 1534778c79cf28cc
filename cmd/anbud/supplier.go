package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/supplier"
)

func newSupplierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplier",
		Short: "Manage the company supplier registry",
	}

	cmd.AddCommand(newSupplierAddCmd())
	cmd.AddCommand(newSupplierListCmd())
	return cmd
}

func newSupplierAddCmd() *cobra.Command {
	var (
		configPath   string
		orgNumber    string
		contactName  string
		contactEmail string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			s, err := supplier.Create(gormDB, supplier.CreateOpts{
				CompanyID:    cfg.Company,
				Name:         args[0],
				OrgNumber:    orgNumber,
				ContactName:  contactName,
				ContactEmail: contactEmail,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered supplier %s: %s\n", s.ID, s.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVar(&orgNumber, "org", "", "organization number")
	cmd.Flags().StringVar(&contactName, "contact", "", "contact person")
	cmd.Flags().StringVar(&contactEmail, "email", "", "contact e-mail")
	return cmd
}

func newSupplierListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered suppliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			items, err := supplier.List(gormDB, cfg.Company)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No suppliers.")
				return nil
			}
			for _, s := range items {
				org := s.OrgNumber
				if org == "" {
					org = "-"
				}
				fmt.Fprintf(out, "%-11s %-30s %s\n", s.ID, s.Name, org)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}
