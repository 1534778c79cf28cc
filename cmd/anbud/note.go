package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/paket"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage paket notes",
	}

	cmd.AddCommand(newNoteAddCmd())
	cmd.AddCommand(newNoteListCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var (
		configPath string
		project    string
	)

	cmd := &cobra.Command{
		Use:   "add <paket-id> <text>",
		Short: "Append a note to a paket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			note, err := paket.AddNote(gormDB, cfg.Company, projectOrDefault(project, cfg.Project),
				args[0], args[1], cliActor(cfg))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note #%d to %s\n", note.ID, args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	return cmd
}

func newNoteListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <paket-id>",
		Short: "List a paket's notes, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			notes, err := paket.Notes(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(notes) == 0 {
				fmt.Fprintln(out, "No notes.")
				return nil
			}
			for _, n := range notes {
				fmt.Fprintf(out, "[%s] %s: %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.CreatedByName, n.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}
