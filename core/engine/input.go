package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "window-quote/internal/errors"

	"window-quote/core/catalog"
	"window-quote/core/types"
)

// integerKeys are catalog keys stored as whole numbers
var integerKeys = map[string]bool{
	types.AttrWidthMM:   true,
	types.AttrThickness: true,
}

// requireArea validates width and height
func requireArea(q types.Query) (width, height decimal.Decimal, err error) {
	if err := requirePositive(q.Category, "width", q.Width); err != nil {
		return width, height, err
	}
	if err := requirePositive(q.Category, "height", q.Height); err != nil {
		return width, height, err
	}
	return q.Width, q.Height, nil
}

// requireLength validates the running length
func requireLength(q types.Query) (decimal.Decimal, error) {
	if err := requirePositive(q.Category, "length", q.Length); err != nil {
		return decimal.Zero, err
	}
	return q.Length, nil
}

func requirePositive(category types.Category, name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return apperrors.Invalid(string(category), name, "must be greater than zero, got "+v.String())
	}
	return nil
}

// requireAttr returns a non-empty attribute
func requireAttr(q types.Query, name string) (string, error) {
	v, ok := q.Attr(name)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", apperrors.Invalid(string(q.Category), name, "attribute is required")
	}
	return v, nil
}

// lookupKeys collects the category's catalog keys from q. Whole-number keys
// are normalized so "0600" matches a 600 mm row; their parsed values are
// returned in ints.
func lookupKeys(q types.Query) (keys map[string]string, ints map[string]int, err error) {
	names := catalog.KeyNames(q.Category)
	keys = make(map[string]string, len(names))
	ints = make(map[string]int)
	for _, name := range names {
		v, err := requireAttr(q, name)
		if err != nil {
			return nil, nil, err
		}
		if integerKeys[name] {
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n <= 0 {
				return nil, nil, apperrors.Invalid(string(q.Category), name, "must be a positive whole number, got "+strconv.Quote(v))
			}
			ints[name] = n
			v = strconv.Itoa(n)
		}
		keys[name] = v
	}
	return keys, ints, nil
}
