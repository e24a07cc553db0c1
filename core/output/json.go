package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders reports as JSON. Amounts are exact decimal strings.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) Format() Format { return FormatJSON }

func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
