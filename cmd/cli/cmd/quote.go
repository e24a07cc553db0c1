// Package cmd - quote command
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"window-quote/internal/config"

	"window-quote/core/output"
	"window-quote/core/types"
)

var (
	quoteWidth           string
	quoteHeight          string
	quoteLength          string
	quoteAttrs           []string
	quoteCaps            int
	quoteCornerCut       bool
	quoteAlternateFinish bool
	outputFormat         string
)

// errQuoteFailed signals that the failure was already rendered
var errQuoteFailed = errors.New("quote failed")

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote <category>",
	Short: "Quote one product",
	Long: `Compute the itemized quote of one product.

Dimensions are in meters. Area categories take --width and --height;
windowsill and drip take --length. Catalog selections are passed as
repeated --attr name=value flags.

Examples:
  window-quote quote osb --width 2 --height 1.5
  window-quote quote horizontal_blinds --attr blind_type=Стандарт --attr color=Білий --width 1.2 --height 1.4
  window-quote quote roller_blinds --attr "system_type=Mini открытый" --attr fabric=Льон --attr "shaft_diameter=19 мм" --width 2 --height 1
  window-quote quote windowsill --attr city=Київ --attr brand=Danke --attr color=Білий --attr texture=Матовий --attr width_mm=300 --length 1.5 --caps 2`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteWidth, "width", "", "width in meters")
	quoteCmd.Flags().StringVar(&quoteHeight, "height", "", "height in meters")
	quoteCmd.Flags().StringVar(&quoteLength, "length", "", "length in meters (windowsill, drip)")
	quoteCmd.Flags().StringArrayVarP(&quoteAttrs, "attr", "a", nil, "catalog selection as name=value (repeatable)")
	quoteCmd.Flags().IntVar(&quoteCaps, "caps", 0, "windowsill end caps")
	quoteCmd.Flags().BoolVar(&quoteCornerCut, "corner-cut", false, "mosquito net corner cut")
	quoteCmd.Flags().BoolVar(&quoteAlternateFinish, "alternate-finish", false, "roller blind alternate finish")
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	q, err := buildQuery(types.Category(args[0]))
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

	result, quoteErr := d.Quote(q)
	report := output.Single(q, result, quoteErr)
	report.ShowNote = config.Get().Output.ShowNote
	if err := f.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if quoteErr != nil {
		return errQuoteFailed
	}
	return nil
}

// buildQuery assembles a query from the quote flags
func buildQuery(category types.Category) (types.Query, error) {
	q := types.Query{
		Category:        category,
		Attributes:      make(map[string]string, len(quoteAttrs)),
		Caps:            quoteCaps,
		CornerCut:       quoteCornerCut,
		AlternateFinish: quoteAlternateFinish,
	}
	for _, kv := range quoteAttrs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return q, fmt.Errorf("invalid --attr %q: want name=value", kv)
		}
		q.Attributes[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	var err error
	if q.Width, err = parseDimension("width", quoteWidth); err != nil {
		return q, err
	}
	if q.Height, err = parseDimension("height", quoteHeight); err != nil {
		return q, err
	}
	if q.Length, err = parseDimension("length", quoteLength); err != nil {
		return q, err
	}
	return q, nil
}

// parseDimension accepts both decimal separators; an empty flag is zero
func parseDimension(name, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	return v, nil
}
