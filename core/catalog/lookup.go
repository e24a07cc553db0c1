package catalog

import (
	"sort"

	apperrors "window-quote/internal/errors"

	"window-quote/core/types"
)

// Find filters rows by the category's key columns in order and returns the
// first surviving row in catalog order. When a filter empties the candidate
// set the NotFound error names that key and the value attempted.
//
// Key tuples are not unique in supplier data; first-in-catalog-order is the
// tie-break.
func Find[E Entry](category types.Category, rows []E, keys map[string]string) (E, error) {
	var zero E
	candidates := rows
	for _, name := range KeyNames(category) {
		want := keys[name]
		matched := make([]E, 0, len(candidates))
		for _, row := range candidates {
			if row.Key(name) == want {
				matched = append(matched, row)
			}
		}
		if len(matched) == 0 {
			return zero, apperrors.NotFoundKeys(string(category), name, want, keys)
		}
		candidates = matched
	}
	if len(candidates) == 0 {
		return zero, apperrors.NotFoundKeys(string(category), "", "", keys)
	}
	return candidates[0], nil
}

// Options lists the distinct values of key among rows matching filters, in
// first-seen catalog order. It backs option pickers; quoting never needs it.
func (c *Catalog) Options(category types.Category, key string, filters map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range c.entries(category) {
		if !matchesAll(row, filters) {
			continue
		}
		v := row.Key(key)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// GlassParamKeys returns the auxiliary glass table keys, sorted
func (c *Catalog) GlassParamKeys() []string {
	keys := make([]string, 0, len(c.tables.GlassParams))
	for k := range c.tables.GlassParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func matchesAll(row Entry, filters map[string]string) bool {
	for k, v := range filters {
		if row.Key(k) != v {
			return false
		}
	}
	return true
}
