// Package config provides YAML-based configuration loading for anbud.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level anbud configuration, loaded from anbud.yaml.
type Config struct {
	Company    string           `yaml:"company"`
	Project    string           `yaml:"project"`
	Actor      ActorConfig      `yaml:"actor"`
	Database   DatabaseConfig   `yaml:"database"`
	SharePoint SharePointConfig `yaml:"sharepoint"`
	Notify     NotifyConfig     `yaml:"notify"`
	Sweep      SweepConfig      `yaml:"sweep"`
}

// ActorConfig identifies the CLI user for write stamping.
type ActorConfig struct {
	UID  string `yaml:"uid"`
	Name string `yaml:"name"`
}

// DatabaseConfig holds storage settings. An empty host selects the
// embedded SQLite store at Path.
type DatabaseConfig struct {
	Path     string `yaml:"path"`
	User     string `yaml:"user"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
}

// SharePointConfig holds settings for the folder-provisioning API.
// Provisioning is best-effort; leaving BaseURL empty disables it.
type SharePointConfig struct {
	BaseURL      string `yaml:"base_url"`
	Tenant       string `yaml:"tenant"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Root         string `yaml:"root"` // site-relative root for project folders
}

// NotifyConfig holds chat-notification settings. Both platforms are
// optional; sends are best-effort.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds the Slack bot token and target channel.
type SlackConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DiscordConfig holds the Discord bot token and target channel.
type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// SweepConfig schedules the background provisioning sweep.
type SweepConfig struct {
	Schedule string `yaml:"schedule"` // 5-field cron expression
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Actor.UID == "" {
		c.Actor.UID = "local"
	}
	if c.Actor.Name == "" {
		c.Actor.Name = c.Actor.UID
	}
	if c.Database.Path == "" {
		c.Database.Path = "anbud.db"
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.Database == "" && c.Company != "" {
		c.Database.Database = "anbud_" + c.Company
	}
	if c.SharePoint.Root == "" {
		c.SharePoint.Root = "Projekt"
	}
	if c.Sweep.Schedule == "" {
		c.Sweep.Schedule = "*/15 * * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Company == "" {
		errs = append(errs, "company is required")
	}
	if c.Database.Host != "" && c.Database.Database == "" {
		errs = append(errs, "database.database is required when database.host is set")
	}
	if c.SharePoint.BaseURL != "" {
		if c.SharePoint.ClientID == "" {
			errs = append(errs, "sharepoint.client_id is required when sharepoint.base_url is set")
		}
		if c.SharePoint.ClientSecret == "" {
			errs = append(errs, "sharepoint.client_secret is required when sharepoint.base_url is set")
		}
	}
	if c.Notify.Slack.BotToken != "" && c.Notify.Slack.ChannelID == "" {
		errs = append(errs, "notify.slack.channel_id is required when notify.slack.bot_token is set")
	}
	if c.Notify.Discord.BotToken != "" && c.Notify.Discord.ChannelID == "" {
		errs = append(errs, "notify.discord.channel_id is required when notify.discord.bot_token is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ProjectRoot returns the site-relative root folder for a project,
// e.g. "Projekt/husby-12".
func (c *Config) ProjectRoot(projectID string) string {
	return c.SharePoint.Root + "/" + projectID
}
