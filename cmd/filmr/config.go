package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yzays8/filmr/pkg/config"
	"github.com/yzays8/filmr/pkg/ui"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Create, show or validate the filmr configuration.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings to --config, or to
$XDG_CONFIG_HOME/filmr/config.yaml when no path is given.
An existing file is never replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return fmt.Errorf("failed to resolve config path: %w", err)
			}
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}

		ui.PrintSuccess(fmt.Sprintf("Config file created at %s", path))
		ui.PrintInfo("Next", "set target.user_id, then run `filmr scrape`")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after file, .env and environment overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, globalOverrides())
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		if src := config.FindFile(configFile); src != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", src)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := config.FindFile(configFile)
		if src == "" {
			return errors.New("no config file found")
		}

		cfg, err := config.Load(configFile, nil)
		if err != nil {
			return err
		}

		ui.PrintSuccess(fmt.Sprintf("%s is valid", src))
		if cfg.Target.UserID != "" {
			ui.PrintInfo("User", cfg.Target.UserID)
		}
		ui.PrintInfo("Category", cfg.Target.Category)
		ui.PrintInfo("Format", cfg.Output.Format)
		ui.PrintInfo("Rate limit", cfg.RateLimit.Interval.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}
