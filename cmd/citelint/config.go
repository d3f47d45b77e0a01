package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citelint/citelint/internal/config"
	"github.com/citelint/citelint/internal/format"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit global configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the global config file.

Keys: author_format, ai_api_key, ai_base_url, ai_model, reports_db`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// ConfigResult is the response for config commands. The API key is
// reported as set or unset, never echoed.
type ConfigResult struct {
	Path         string `json:"path"`
	AuthorFormat string `json:"author_format,omitempty"`
	AIAPIKeySet  bool   `json:"ai_api_key_set"`
	AIBaseURL    string `json:"ai_base_url,omitempty"`
	AIModel      string `json:"ai_model,omitempty"`
	ReportsDB    string `json:"reports_db"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	result := ConfigResult{
		Path:         config.Path(),
		AuthorFormat: cfg.AuthorFormat,
		AIAPIKeySet:  cfg.AIAPIKey != "",
		AIBaseURL:    cfg.AIBaseURL,
		AIModel:      cfg.AIModel,
		ReportsDB:    config.ReportsDBPath(),
	}

	if humanOutput {
		fmt.Printf("Config file:   %s\n", result.Path)
		fmt.Printf("author_format: %s\n", orDefault(result.AuthorFormat, "full"))
		fmt.Printf("ai_api_key:    %s\n", setOrUnset(result.AIAPIKeySet))
		fmt.Printf("ai_base_url:   %s\n", orDefault(result.AIBaseURL, "(default)"))
		fmt.Printf("ai_model:      %s\n", orDefault(result.AIModel, "(default)"))
		fmt.Printf("reports_db:    %s\n", result.ReportsDB)
	} else {
		outputJSON(result)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "author_format":
		if _, err := format.ParseAuthorFormat(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.AuthorFormat = value
	case "ai_api_key":
		cfg.AIAPIKey = value
	case "ai_base_url":
		cfg.AIBaseURL = value
	case "ai_model":
		cfg.AIModel = value
	case "reports_db":
		cfg.ReportsDB = value
	default:
		exitWithError(ExitConfigError, "unknown config key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s\n", key)
	} else {
		outputJSON(map[string]string{"set": key})
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.Path())
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func setOrUnset(set bool) string {
	if set {
		return "(set)"
	}
	return "(unset)"
}
