package main

import (
	"fmt"
	"strconv"

	"github.com/matsen/preprint/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set global configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	RunE:  runConfigGet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		fmt.Printf("config:   %s\n", config.Path())
		fmt.Printf("db_path:  %s\n", config.DBPath())
		if cfg.UserAgent != "" {
			fmt.Printf("user_agent: %s\n", cfg.UserAgent)
		}
		if cfg.MinIntervalSeconds > 0 {
			fmt.Printf("min_interval_seconds: %g\n", cfg.MinIntervalSeconds)
		}
		return nil
	}

	return outputJSON(map[string]any{
		"config_path":          config.Path(),
		"db_path":              config.DBPath(),
		"user_agent":           cfg.UserAgent,
		"min_interval_seconds": cfg.MinIntervalSeconds,
	})
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the global config file.

Keys: db_path, user_agent, min_interval_seconds`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "db_path":
		cfg.DBPath = value
	case "user_agent":
		cfg.UserAgent = value
	case "min_interval_seconds":
		secs, err := strconv.ParseFloat(value, 64)
		if err != nil || secs < 0 {
			exitWithError(ExitError, "invalid min_interval_seconds: %s", value)
		}
		cfg.MinIntervalSeconds = secs
	default:
		exitWithError(ExitError, "unknown config key: %s (valid: db_path, user_agent, min_interval_seconds)", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("%s = %s\n", key, value)
		return nil
	}

	return outputJSON(map[string]string{"status": "updated", "key": key, "value": value})
}
