package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docuforge/docuforge/internal/dialect"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List supported backend targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Supported targets:")
		fmt.Println()
		for _, t := range dialect.All() {
			d, err := dialect.For(t)
			if err != nil {
				return err
			}
			fmt.Printf("  %-12s %s\n", d.Target, d.Term)
			fmt.Printf("    id field:    %s\n", d.IDField)
			fmt.Printf("    timestamps:  %s, %s\n", d.CreatedField, d.UpdatedField)
			fmt.Printf("    flatten sep: %q\n", d.FlattenSep)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
