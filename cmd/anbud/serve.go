package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/provision"
	"github.com/stenvik/anbud/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the anbud API server",
		Long:  "Launches the JSON/SSE API server and the background provisioning sweep.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	ensurer := folderEnsurer(cfg)
	if ensurer != nil {
		stopSweeper, err := provision.StartSweeper(gormDB, ensurer, cfg.Sweep.Schedule)
		if err != nil {
			return err
		}
		defer stopSweeper()
	}

	notifier := buildNotifier(cfg)
	if notifier != nil {
		defer notifier.Close()
	}

	return server.Start(ctx, server.StartOpts{
		DB:             gormDB,
		CompanyID:      cfg.Company,
		Port:           port,
		Out:            cmd.OutOrStdout(),
		Ensurer:        ensurer,
		SharePointRoot: cfg.SharePoint.Root,
		Notifier:       notifier,
	})
}
