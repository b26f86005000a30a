package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/config"
	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/structure"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View, validate, and initialize Docuforge configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current config (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fmt.Println("Current configuration:")
		fmt.Println()
		fmt.Printf("  Generate:\n")
		fmt.Printf("    Target:         %s\n", cfg.Generate.Target)
		fmt.Printf("    Structure:      %s\n", cfg.Generate.Structure)
		fmt.Printf("    Output Dir:     %s\n", cfg.Generate.OutputDir)
		fmt.Println()
		fmt.Printf("  Target:\n")
		fmt.Printf("    Connection:     %s\n", maskSecret(cfg.Target.ConnectionString))
		fmt.Printf("    Database:       %s\n", cfg.Target.Database)
		fmt.Println()
		fmt.Printf("  Logging:\n")
		fmt.Printf("    Level:          %s\n", cfg.Logging.Level)
		fmt.Printf("    Directory:      %s\n", cfg.Logging.Directory)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}

		var problems []string

		if _, err := dialect.ParseTarget(cfg.Generate.Target); err != nil {
			problems = append(problems, fmt.Sprintf("generate.target: %v", err))
		}
		if _, err := structure.ParsePolicy(cfg.Generate.Structure); err != nil {
			problems = append(problems, fmt.Sprintf("generate.structure: %v", err))
		}
		if cfg.Target.Type != "" && cfg.Target.Type != "mongodb" {
			problems = append(problems, fmt.Sprintf("target.type %q is not supported for index apply", cfg.Target.Type))
		}

		if len(problems) > 0 {
			fmt.Println("Validation errors:")
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			return fmt.Errorf("%d validation error(s)", len(problems))
		}

		fmt.Println("Configuration is valid.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := cfg.Save(cfgFile); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.ExpandHome(config.DefaultPath)
		}
		fmt.Printf("Default configuration written to %s\n", path)
		return nil
	},
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
