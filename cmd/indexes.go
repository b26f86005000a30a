package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/emit"
	"github.com/docuforge/docuforge/internal/structure"
	"github.com/docuforge/docuforge/internal/target"
)

var (
	indexesTarget    string
	indexesStructure string
	indexesName      string
	indexesOut       string
	indexesApply     bool
)

var indexesCmd = &cobra.Command{
	Use:   "indexes <document.json>",
	Short: "Suggest indexes for a JSON document",
	Long: `Analyze a sample JSON document and print suggested indexes. With
--out the suggestions are written as a YAML index plan; with --apply
they are created on the configured MongoDB target.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfigOrDefault()

		targetStr := indexesTarget
		if targetStr == "" {
			targetStr = cfg.Generate.Target
		}
		tgt, err := dialect.ParseTarget(targetStr)
		if err != nil {
			return err
		}

		structureStr := indexesStructure
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

		gen, err := emit.New(tgt)
		if err != nil {
			return err
		}

		suggestion, err := gen.Suggest(root, policy)
		if err != nil {
			return fmt.Errorf("analyzing document: %w", err)
		}

		collection := indexesName
		if collection == "" {
			collection = document.FirstKey(root)
		}
		if collection == "" {
			collection = gen.Dialect.DefaultName
		}

		if suggestion.Empty() {
			fmt.Printf("No index candidates found for %s.\n", collection)
			return nil
		}

		fmt.Printf("Index candidates for %s (%s):\n", collection, tgt)
		for _, f := range suggestion.Fields {
			fmt.Printf("  - %s\n", f)
		}
		if len(suggestion.Compound) == 2 {
			fmt.Printf("  - compound: (%s)\n", strings.Join(suggestion.Compound, ", "))
		}

		plan := target.PlanFromSuggestion(collection, suggestion)

		if indexesOut != "" {
			if err := plan.WriteYAML(indexesOut); err != nil {
				return err
			}
			fmt.Printf("\nIndex plan written to %s\n", indexesOut)
		}

		if indexesApply {
			return applyIndexPlan(cfg.Target.ConnectionString, cfg.Target.Database, plan)
		}

		return nil
	},
}

func applyIndexPlan(connectionString, database string, plan *target.IndexPlan) error {
	if connectionString == "" || database == "" {
		return fmt.Errorf("target.connection_string and target.database must be configured for --apply")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	op, err := target.NewMongoOperator(ctx, connectionString, database)
	if err != nil {
		return err
	}
	defer op.Close(context.Background())

	if err := op.CreateIndexes(ctx, plan.Indexes); err != nil {
		return err
	}

	fmt.Printf("\nCreated %d indexes on %s.\n", len(plan.Indexes), database)
	return nil
}

func init() {
	indexesCmd.Flags().StringVar(&indexesTarget, "target", "", "backend target (mongodb, firestore, dynamodb, couchdb)")
	indexesCmd.Flags().StringVar(&indexesStructure, "structure", "", "document structure (nested, flat, references, array)")
	indexesCmd.Flags().StringVar(&indexesName, "name", "", "collection/table name override")
	indexesCmd.Flags().StringVar(&indexesOut, "out", "", "write the index plan to a YAML file")
	indexesCmd.Flags().BoolVar(&indexesApply, "apply", false, "create the indexes on the configured MongoDB target")
	rootCmd.AddCommand(indexesCmd)
}
