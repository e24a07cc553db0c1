package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"window-quote/core/types"
)

const tableWidth = 60

// CLIFormatter renders quotes as boxed terminal tables
type CLIFormatter struct{}

func (f *CLIFormatter) Format() Format { return FormatCLI }

func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	p := &printer{w: w}
	for i, q := range report.Quotes {
		if i > 0 {
			p.line("")
		}
		if q.Error != nil {
			p.renderError(q)
			continue
		}
		p.renderResult(q, report.ShowNote)
	}
	if len(report.Quotes) > 1 {
		p.line("")
		p.line(fmt.Sprintf("%d quotes, %d failed", len(report.Quotes), report.Failed()))
	}
	return p.err
}

// printer remembers the first write error so rendering code stays linear
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) rule(left, right string) {
	p.line(left + strings.Repeat("─", tableWidth-2) + right)
}

func (p *printer) row(label, amount string) {
	label = truncate(label, tableWidth-6-utf8.RuneCountInString(amount))
	pad := tableWidth - 4 - utf8.RuneCountInString(label) - utf8.RuneCountInString(amount)
	if pad < 1 {
		pad = 1
	}
	p.line("│ " + label + strings.Repeat(" ", pad) + amount + " │")
}

func (p *printer) renderResult(q Quote, showNote bool) {
	res := q.Result
	p.rule("┌", "┐")
	p.row(strings.ToUpper(res.Category.DisplayName()), "")
	if attrs := describeAttributes(q.Query); attrs != "" {
		p.row(attrs, "")
	}
	p.rule("├", "┤")
	for _, c := range res.Components {
		p.row(c.Label, c.Amount.StringFixed(2))
	}
	p.rule("├", "┤")
	p.row("TOTAL", types.Money{Amount: res.Total, Currency: res.Currency}.String())
	p.rule("└", "┘")
	if showNote && res.Note != "" {
		p.line("Note: " + res.Note)
	}
}

func (p *printer) renderError(q Quote) {
	e := q.Error
	p.line(fmt.Sprintf("✗ %s: %s", displayCategory(q.Query.Category), e.Type))
	p.line("  " + e.Message)
}

func displayCategory(c types.Category) string {
	if c == "" {
		return "quote"
	}
	return c.DisplayName()
}

// describeAttributes lists the query attributes in name order
func describeAttributes(q types.Query) string {
	names := make([]string, 0, len(q.Attributes))
	for k := range q.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = q.Attributes[k]
	}
	return strings.Join(parts, " / ")
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
