package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		project    string
		byggdelID  string
		section    string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream the paket list in real-time",
		Long:  "Subscribes to the live paket list and reprints it whenever it changes, the same full-snapshot feed the mobile clients receive.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projectID := projectOrDefault(project, cfg.Project)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Watching paket for project %q... (Ctrl+C to stop)\n", projectID)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			unsubscribe := watch.Paket(gormDB, cfg.Company, projectID,
				paket.ListFilters{ByggdelID: byggdelID, Section: section}, watch.Options{},
				func(items []models.Paket) {
					fmt.Fprintf(out, "--- %d paket ---\n", len(items))
					printPaketList(out, items)
				},
				func(err error) {
					fmt.Fprintf(out, "poll error: %v\n", err)
				})
			defer unsubscribe()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().StringVar(&byggdelID, "byggdel", "", "filter by byggdel ID")
	cmd.Flags().StringVar(&section, "section", "", "filter by section")
	return cmd
}
