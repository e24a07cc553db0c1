// Package errors provides the typed error used for every failed quote.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates malformed or non-positive query input
	TypeInput Type = "INVALID"

	// TypeConfig indicates a required tariff constant is absent
	TypeConfig Type = "CONFIG_MISSING"

	// TypeNotFound indicates no catalog row matches the query keys
	TypeNotFound Type = "NOT_FOUND"

	// TypeParsing indicates a tariff or catalog document could not be decoded
	TypeParsing Type = "PARSING_ERROR"

	// TypeInternal indicates a calculator fault converted at the dispatch boundary
	TypeInternal Type = "INTERNAL_ERROR"
)

// Context keys shared by all quote errors.
const (
	ContextCategory = "category"
	ContextKeys     = "keys"
	ContextKey      = "key"
	ContextValue    = "value"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Category returns the category recorded in the context, if any.
func (e *Error) Category() string {
	s, _ := e.Context[ContextCategory].(string)
	return s
}

// Keys returns the attempted key values recorded in the context.
func (e *Error) Keys() map[string]string {
	m, _ := e.Context[ContextKeys].(map[string]string)
	return m
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := As(err); ok {
		return e.Type == t
	}
	return false
}

// TypeOf returns the type of err, or TypeInternal for foreign errors.
func TypeOf(err error) Type {
	if e, ok := As(err); ok {
		return e.Type
	}
	return TypeInternal
}

// NotFoundKeys reports that no catalog row matched. key/value name the
// filter that emptied the candidate set; keys holds every attempted value.
func NotFoundKeys(category, key, value string, keys map[string]string) *Error {
	return Newf(TypeNotFound, "no %s product matches %s", category, describe(keys)).
		WithContext(ContextCategory, category).
		WithContext(ContextKey, key).
		WithContext(ContextValue, value).
		WithContext(ContextKeys, copyKeys(keys))
}

// ConfigMissing reports an absent tariff constant.
func ConfigMissing(category, key string) *Error {
	return Newf(TypeConfig, "%s: missing tariff constant %q", category, key).
		WithContext(ContextCategory, category).
		WithContext(ContextKey, key)
}

// Invalid reports malformed query input.
func Invalid(category, key, message string) *Error {
	return Newf(TypeInput, "%s: %s: %s", category, key, message).
		WithContext(ContextCategory, category).
		WithContext(ContextKey, key)
}

// Internal wraps an unexpected calculator fault.
func Internal(category string, cause error) *Error {
	return Wrap(TypeInternal, category+": calculation failed", cause).
		WithContext(ContextCategory, category)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

func describe(keys map[string]string) string {
	if len(keys) == 0 {
		return "the query"
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%q", k, keys[k])
	}
	return strings.Join(parts, ", ")
}

func copyKeys(keys map[string]string) map[string]string {
	out := make(map[string]string, len(keys))
	for k, v := range keys {
		out[k] = v
	}
	return out
}
