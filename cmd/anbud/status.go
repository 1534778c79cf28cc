package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/paket"
)

func newStatusCmd() *cobra.Command {
	var (
		configPath string
		project    string
		follow     bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-byggdel paket counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			projectID := projectOrDefault(project, cfg.Project)
			out := cmd.OutOrStdout()

			for {
				counts, err := paket.CountByStatus(gormDB, cfg.Company, projectID)
				if err != nil {
					return err
				}

				if follow {
					// Clear screen.
					fmt.Fprint(out, "\033[2J\033[H")
				}

				printStatusSummary(out, projectID, counts)

				if !follow {
					return nil
				}
				time.Sleep(5 * time.Second)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().StringVarP(&project, "project", "p", "", "project ID (defaults to config)")
	cmd.Flags().BoolVar(&follow, "watch", false, "auto-refresh every 5 seconds")
	return cmd
}

func printStatusSummary(out io.Writer, projectID string, counts []paket.StatusCount) {
	fmt.Fprintf(out, "Project %s\n", projectID)
	if len(counts) == 0 {
		fmt.Fprintln(out, "No paket.")
		return
	}

	current := ""
	for _, c := range counts {
		if c.ByggdelLabel != current {
			current = c.ByggdelLabel
			fmt.Fprintf(out, "%s\n", current)
		}
		fmt.Fprintf(out, "  %s %-11s %d\n", statusGlyph(c.Status), c.Status, c.Count)
	}
}
