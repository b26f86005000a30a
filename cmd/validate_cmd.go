package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/document"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document.json>",
	Short: "Check that a JSON document is usable as generator input",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}

		root, err := document.Parse(data)
		if err == nil {
			err = document.ValidateRoot(root)
		}
		if err != nil {
			var syn *document.SyntaxError
			if errors.As(err, &syn) {
				return fmt.Errorf("%s:%d:%d: %s", args[0], syn.Line, syn.Column, syn.Msg)
			}
			return fmt.Errorf("%s: %w", args[0], err)
		}

		fmt.Printf("%s is valid.\n", args[0])
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
