// Package cmd - batch command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"window-quote/internal/config"

	"window-quote/core/output"
	"window-quote/core/types"
)

var batchConcurrency int

// batchFile is the YAML document read by the batch command
type batchFile struct {
	Quotes []types.Query `yaml:"quotes"`
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <queries.yaml>",
	Short: "Quote many products from a YAML file",
	Long: `Quote every query listed in a YAML file. Results are printed in file
order; a failing query does not stop the others.

Example file:
  quotes:
    - category: osb
      width: 2.0
      height: 1.5
    - category: drip
      attributes: {width_mm: "150"}
      length: 3`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "parallel quotes (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	queries, err := readBatchFile(args[0])
	if err != nil {
		return err
	}
	f, err := formatter(outputFormat)
	if err != nil {
		return err
	}
	d, err := loadDispatcher()
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = config.Get().Server.BatchConcurrency
	}
	items, err := d.Batch(context.Background(), queries, concurrency)
	if err != nil {
		return err
	}

	report := &output.Report{
		Quotes:   make([]output.Quote, len(items)),
		ShowNote: config.Get().Output.ShowNote,
	}
	for i, it := range items {
		report.Quotes[i] = output.Quote{Query: it.Query, Result: it.Result, Error: output.NewErrorReport(it.Err)}
	}
	if err := f.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if report.Failed() > 0 {
		return errQuoteFailed
	}
	return nil
}

func readBatchFile(path string) ([]types.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc batchFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(doc.Quotes) == 0 {
		return nil, fmt.Errorf("%s: no quotes", path)
	}
	return doc.Quotes, nil
}
