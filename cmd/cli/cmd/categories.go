// Package cmd - categories command
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"window-quote/core/catalog"
	"window-quote/core/types"
)

var optionsKey string

// categoriesCmd lists quotable categories, or the catalog options of one
var categoriesCmd = &cobra.Command{
	Use:   "categories [category]",
	Short: "List categories and their catalog keys",
	Long: `Without arguments, list every category with its lookup keys.

With a category and --key, list the catalog values of that key; further
--attr name=value flags narrow the list to matching rows.

Examples:
  window-quote categories
  window-quote categories roller_blinds --key fabric --attr "system_type=Mini открытый"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().StringVar(&optionsKey, "key", "", "list the catalog values of this key")
	categoriesCmd.Flags().StringArrayVarP(&quoteAttrs, "attr", "a", nil, "filter as name=value (repeatable)")
}

func runCategories(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, c := range types.AllCategories() {
			dim := "area"
			if c.LengthBased() {
				dim = "length"
			}
			keys := strings.Join(catalog.KeyNames(c), ", ")
			if keys == "" {
				keys = "-"
			}
			fmt.Fprintf(out, "%-18s %-20s %-7s %s\n", c, c.DisplayName(), dim, keys)
		}
		return nil
	}

	category := types.Category(args[0])
	if !category.IsValid() {
		return fmt.Errorf("unknown category %q", category)
	}
	if optionsKey == "" {
		fmt.Fprintln(out, strings.Join(catalog.KeyNames(category), "\n"))
		return nil
	}

	q, err := buildQuery(category)
	if err != nil {
		return err
	}
	_, catalogFile := resolvePaths()
	cat, err := loadCatalog(catalogFile)
	if err != nil {
		return err
	}
	for _, v := range cat.Options(category, optionsKey, q.Attributes) {
		fmt.Fprintln(out, v)
	}
	return nil
}
