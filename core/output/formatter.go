// Package output provides output formatting for quotes.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is the rendered outcome of one or more quote requests
type Report struct {
	// Quotes holds one entry per request, in request order
	Quotes []Quote `json:"quotes"`

	// ShowNote includes the quote notes in human-readable output
	ShowNote bool `json:"-"`
}

// Quote is one request and its outcome; exactly one of Result and Error
// is set
type Quote struct {
	Query  types.Query        `json:"query"`
	Result *types.QuoteResult `json:"result,omitempty"`
	Error  *ErrorReport       `json:"error,omitempty"`
}

// ErrorReport is the serializable form of a quote error
type ErrorReport struct {
	Type     apperrors.Type    `json:"type"`
	Message  string            `json:"message"`
	Category string            `json:"category,omitempty"`
	Key      string            `json:"key,omitempty"`
	Value    string            `json:"value,omitempty"`
	Keys     map[string]string `json:"keys,omitempty"`
}

// NewErrorReport converts err for rendering
func NewErrorReport(err error) *ErrorReport {
	if err == nil {
		return nil
	}
	e, ok := apperrors.As(err)
	if !ok {
		return &ErrorReport{Type: apperrors.TypeInternal, Message: err.Error()}
	}
	r := &ErrorReport{
		Type:     e.Type,
		Message:  e.Error(),
		Category: e.Category(),
		Keys:     e.Keys(),
	}
	r.Key, _ = e.Context[apperrors.ContextKey].(string)
	r.Value, _ = e.Context[apperrors.ContextValue].(string)
	return r
}

// Single builds a report for one query outcome
func Single(q types.Query, result *types.QuoteResult, err error) *Report {
	return &Report{Quotes: []Quote{{Query: q, Result: result, Error: NewErrorReport(err)}}}
}

// Failed counts the quotes that carry an error
func (r *Report) Failed() int {
	n := 0
	for _, q := range r.Quotes {
		if q.Error != nil {
			n++
		}
	}
	return n
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.mustRegister(&CLIFormatter{})
	r.mustRegister(&JSONFormatter{Indent: true})
	r.mustRegister(&MarkdownFormatter{})
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[formatter.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", formatter.Format())
	}
	r.formatters[formatter.Format()] = formatter
	return nil
}

func (r *Registry) mustRegister(formatter Formatter) {
	if err := r.Register(formatter); err != nil {
		panic(err)
	}
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	return f, ok
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
