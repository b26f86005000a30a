package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/emit"
	"github.com/docuforge/docuforge/internal/structure"
)

var (
	generateTarget     string
	generateStructure  string
	generateName       string
	generateAddIDs     bool
	generateTimestamps bool
	generateIndexes    bool
	generateOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <document.json>",
	Short: "Generate insert code from a JSON document",
	Long: `Generate insert code for the chosen backend from a sample JSON
document. The code is printed to stdout unless --output names a file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfigOrDefault()

		targetStr := generateTarget
		if targetStr == "" {
			targetStr = cfg.Generate.Target
		}
		target, err := dialect.ParseTarget(targetStr)
		if err != nil {
			return err
		}

		structureStr := generateStructure
		if structureStr == "" {
			structureStr = cfg.Generate.Structure
		}
		policy, err := structure.ParsePolicy(structureStr)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		root, err := document.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}

		gen, err := emit.New(target)
		if err != nil {
			return err
		}

		code, err := gen.Generate(root, policy, emit.Options{
			AddIDs:        generateAddIDs,
			AddTimestamps: generateTimestamps,
			AddIndexes:    generateIndexes,
			Name:          generateName,
		})
		if err != nil {
			return fmt.Errorf("generating insert code: %w", err)
		}

		if generateOutput == "" {
			fmt.Print(code)
			return nil
		}

		if dir := filepath.Dir(generateOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		if err := os.WriteFile(generateOutput, []byte(code), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		fmt.Printf("Insert code written to %s\n", generateOutput)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateTarget, "target", "", "backend target (mongodb, firestore, dynamodb, couchdb)")
	generateCmd.Flags().StringVar(&generateStructure, "structure", "", "document structure (nested, flat, references, array)")
	generateCmd.Flags().StringVar(&generateName, "name", "", "collection/table name override")
	generateCmd.Flags().BoolVar(&generateAddIDs, "add-ids", false, "inject generated ids")
	generateCmd.Flags().BoolVar(&generateTimestamps, "add-timestamps", false, "inject created/updated timestamps")
	generateCmd.Flags().BoolVar(&generateIndexes, "indexes", false, "append index suggestions")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "write the code to a file instead of stdout")
	rootCmd.AddCommand(generateCmd)
}
