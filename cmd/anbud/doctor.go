package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/db"
)

func newDoctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to the store and SharePoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.OutOrStdout(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}

func runDoctor(out io.Writer, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	failures := 0

	if err := db.Ping(gormDB); err != nil {
		failures++
		fmt.Fprintf(out, "[FAIL] database: %v\n", err)
	} else {
		fmt.Fprintln(out, "[ ok ] database reachable")
	}

	if client := folderClient(cfg); client == nil {
		fmt.Fprintln(out, "[skip] sharepoint not configured")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			failures++
			fmt.Fprintf(out, "[FAIL] sharepoint: %v\n", err)
		} else {
			fmt.Fprintln(out, "[ ok ] sharepoint reachable")
		}
	}

	if cfg.Notify.Slack.BotToken == "" && cfg.Notify.Discord.BotToken == "" {
		fmt.Fprintln(out, "[skip] notifications not configured")
	} else {
		fmt.Fprintln(out, "[ ok ] notifications configured")
	}

	if failures > 0 {
		return fmt.Errorf("doctor: %d check(s) failed", failures)
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}
