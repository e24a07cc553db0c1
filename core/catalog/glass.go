package catalog

import "strings"

const (
	glassCommissionPrefix = "commission:"
	glassMarkupPrefix     = "markup:"
)

// GlassCommissionKey builds the glass parameter key of the installer
// commission for a chamber count and profile system. Two-chamber units have
// their own entries; every other count shares the single-chamber entry.
func GlassCommissionKey(chambers int, profileSystem string) string {
	kind := "single_chamber"
	if chambers == 2 {
		kind = "two_chamber"
	}
	return glassCommissionPrefix + kind + ":" + strings.ToLower(strings.TrimSpace(profileSystem))
}

// GlassMarkupKey builds the glass parameter key of the markup multiplier
func GlassMarkupKey(profileSystem string) string {
	return glassMarkupPrefix + strings.ToLower(strings.TrimSpace(profileSystem))
}
