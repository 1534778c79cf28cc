package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func newAuthCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store the SharePoint client secret in the config file",
		Long:  "Prompts for the SharePoint client secret without echoing it and writes it into the config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to anbud config file")
	return cmd
}

func runAuth(cmd *cobra.Command, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("auth: read %s: %w", configPath, err)
	}

	// Operate on the raw document so unrelated keys and comments'
	// ordering survive the rewrite.
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("auth: parse %s: %w", configPath, err)
	}

	fmt.Fprint(cmd.OutOrStdout(), "SharePoint client secret: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("auth: read secret: %w", err)
	}
	if len(secret) == 0 {
		return fmt.Errorf("auth: secret is empty")
	}

	sp, _ := doc["sharepoint"].(map[string]interface{})
	if sp == nil {
		sp = map[string]interface{}{}
	}
	sp["client_secret"] = string(secret)
	doc["sharepoint"] = sp

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("auth: marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0600); err != nil {
		return fmt.Errorf("auth: write %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Secret stored in %s\n", configPath)
	return nil
}
