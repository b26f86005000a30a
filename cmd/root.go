package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/config"
	"github.com/docuforge/docuforge/internal/wizard"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "docuforge",
	Short: "Docuforge — JSON document to NoSQL insert-code generator",
	Long: `Docuforge turns a sample JSON document into ready-to-run insert code
for MongoDB, Firestore, DynamoDB, or CouchDB, with optional generated
ids, timestamps, and index suggestions.

Running without a subcommand launches the interactive wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wizard.New("")
		if err != nil {
			return err
		}
		return w.Run()
	},
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfigOrDefault loads the config file, falling back to built-in
// defaults when none exists.
func loadConfigOrDefault() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Default()
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.docuforge/docuforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
