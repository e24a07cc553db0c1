// Package cmd - validate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"window-quote/core/engine"
	"window-quote/core/types"
)

// validateCmd checks the tariff and catalog without quoting
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the tariff and catalog",
	Long: `Load the configured tariff and catalog and run every construction-time
check: missing tariff constants, malformed catalog rows and catalog
commission coverage. Prints catalog statistics on success.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tariffFile, catalogFile := resolvePaths()

	t, err := loadTariff(tariffFile)
	if err != nil {
		return err
	}
	if tariffFile == "" {
		tariffFile = "(built-in)"
	}
	fmt.Fprintf(out, "✓ tariff  %s\n", tariffFile)

	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return err
	}
	if _, err := engine.New(cat, t); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ catalog %s\n\n", catalogFile)

	stats := cat.Stats()
	for _, c := range types.AllCategories() {
		rows, ok := stats.Rows[c]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-18s %5d rows", c, rows)
		if dups := stats.Duplicates[c]; dups > 0 {
			line += fmt.Sprintf(" (%d duplicate keys, first row wins)", dups)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "  %-18s %5d entries\n", "glass_params", stats.GlassParams)
	fmt.Fprintf(out, "  %-18s %5d rows\n", "total", stats.Total)
	return nil
}
