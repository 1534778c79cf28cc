package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stenvik/anbud/internal/config"
	"github.com/stenvik/anbud/internal/db"
	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/notify"
	"github.com/stenvik/anbud/internal/notify/discord"
	"github.com/stenvik/anbud/internal/notify/slack"
	"github.com/stenvik/anbud/internal/sharepoint"
	"gorm.io/gorm"
)

const defaultConfigPath = "anbud.yaml"

// connectFromConfig loads the config and opens the store.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database.Path, cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}

	return cfg, gormDB, nil
}

// cliActor builds the write-stamping identity from config.
func cliActor(cfg *config.Config) models.Actor {
	return models.Actor{UID: cfg.Actor.UID, Name: cfg.Actor.Name}
}

// folderClient builds the provisioning client, or nil when SharePoint
// is not configured. Provisioning stays best-effort either way.
func folderClient(cfg *config.Config) *sharepoint.Client {
	if cfg.SharePoint.BaseURL == "" {
		return nil
	}
	client, err := sharepoint.New(sharepoint.Options{
		BaseURL:      cfg.SharePoint.BaseURL,
		Tenant:       cfg.SharePoint.Tenant,
		ClientID:     cfg.SharePoint.ClientID,
		ClientSecret: cfg.SharePoint.ClientSecret,
		CompanyID:    cfg.Company,
	})
	if err != nil {
		return nil
	}
	return client
}

// folderEnsurer adapts folderClient's possibly-nil pointer to the
// interface without producing a non-nil interface holding nil.
func folderEnsurer(cfg *config.Config) sharepoint.FolderEnsurer {
	if c := folderClient(cfg); c != nil {
		return c
	}
	return nil
}

// buildNotifier assembles configured chat notifiers, or nil when none
// is configured.
func buildNotifier(cfg *config.Config) notify.Notifier {
	var multi notify.Multi
	if cfg.Notify.Slack.BotToken != "" {
		if a, err := slack.New(slack.AdapterOpts{
			BotToken:  cfg.Notify.Slack.BotToken,
			ChannelID: cfg.Notify.Slack.ChannelID,
		}); err == nil {
			multi = append(multi, a)
		}
	}
	if cfg.Notify.Discord.BotToken != "" {
		if a, err := discord.New(discord.AdapterOpts{
			BotToken:  cfg.Notify.Discord.BotToken,
			ChannelID: cfg.Notify.Discord.ChannelID,
		}); err == nil {
			multi = append(multi, a)
		}
	}
	if len(multi) == 0 {
		return nil
	}
	return multi
}

func newMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long:  "Runs the GORM auto-migration for all anbud tables. Safe to run multiple times.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(gormDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}
