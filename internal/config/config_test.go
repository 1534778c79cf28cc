package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
company: acme
project: husby-12
actor:
  uid: u-1
  name: Anna Andersson
database:
  host: db.internal
  port: 3307
  user: anbud
  database: anbud_acme
sharepoint:
  base_url: https://acme.sharepoint.test
  tenant: acme.onmicrosoft.test
  client_id: client-1
  client_secret: s3cret
  root: Projekt
notify:
  slack:
    bot_token: xoxb-test
    channel_id: C123
  discord:
    bot_token: discord-test
    channel_id: "456"
sweep:
  schedule: "*/5 * * * *"
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Company != "acme" || cfg.Project != "husby-12" {
		t.Errorf("scope = %q/%q", cfg.Company, cfg.Project)
	}
	if cfg.Actor.Name != "Anna Andersson" {
		t.Errorf("Actor.Name = %q", cfg.Actor.Name)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 3307 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.SharePoint.ClientSecret != "s3cret" {
		t.Errorf("SharePoint.ClientSecret = %q", cfg.SharePoint.ClientSecret)
	}
	if cfg.Notify.Slack.ChannelID != "C123" || cfg.Notify.Discord.ChannelID != "456" {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	if cfg.Sweep.Schedule != "*/5 * * * *" {
		t.Errorf("Sweep.Schedule = %q", cfg.Sweep.Schedule)
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("company: acme\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Actor.UID != "local" || cfg.Actor.Name != "local" {
		t.Errorf("actor defaults = %+v", cfg.Actor)
	}
	if cfg.Database.Path != "anbud.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port = %d", cfg.Database.Port)
	}
	if cfg.Database.Database != "anbud_acme" {
		t.Errorf("Database.Database = %q", cfg.Database.Database)
	}
	if cfg.SharePoint.Root != "Projekt" {
		t.Errorf("SharePoint.Root = %q", cfg.SharePoint.Root)
	}
	if cfg.Sweep.Schedule != "*/15 * * * *" {
		t.Errorf("Sweep.Schedule = %q", cfg.Sweep.Schedule)
	}
}

func TestParse_ActorNameFallsBackToUID(t *testing.T) {
	cfg, err := Parse([]byte("company: acme\nactor:\n  uid: u-9\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Actor.Name != "u-9" {
		t.Errorf("Actor.Name = %q, want uid fallback", cfg.Actor.Name)
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing company", "project: p1\n", "company is required"},
		{
			"sharepoint without credentials",
			"company: acme\nsharepoint:\n  base_url: https://x.test\n",
			"sharepoint.client_id is required",
		},
		{
			"slack token without channel",
			"company: acme\nnotify:\n  slack:\n    bot_token: xoxb-x\n",
			"notify.slack.channel_id is required",
		},
		{
			"discord token without channel",
			"company: acme\nnotify:\n  discord:\n    bot_token: x\n",
			"notify.discord.channel_id is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestParse_CollectsAllErrors(t *testing.T) {
	_, err := Parse([]byte("sharepoint:\n  base_url: https://x.test\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"company is required", "client_id", "client_secret"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %v missing %q", err, want)
		}
	}
}

func TestParse_BadYAML(t *testing.T) {
	if _, err := Parse([]byte("company: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anbud.yaml")
	if err := os.WriteFile(path, []byte("company: acme\nproject: p1\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Company != "acme" || cfg.Project != "p1" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestProjectRoot(t *testing.T) {
	cfg, err := Parse([]byte("company: acme\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.ProjectRoot("husby-12"); got != "Projekt/husby-12" {
		t.Errorf("ProjectRoot = %q", got)
	}
}
