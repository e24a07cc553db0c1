package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders quotes as markdown tables, one per quote
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder
	for i, q := range report.Quotes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s\n\n", displayCategory(q.Query.Category))
		if q.Error != nil {
			fmt.Fprintf(&b, "**%s**: %s\n", q.Error.Type, q.Error.Message)
			continue
		}
		b.WriteString("| Component | Amount |\n|---|---:|\n")
		for _, c := range q.Result.Components {
			fmt.Fprintf(&b, "| %s | %s |\n", c.Label, c.Amount.StringFixed(2))
		}
		fmt.Fprintf(&b, "| **Total** | **%s %s** |\n", q.Result.Total.StringFixed(2), q.Result.Currency)
		if report.ShowNote && q.Result.Note != "" {
			fmt.Fprintf(&b, "\n_%s_\n", q.Result.Note)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
