// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Category identifies one product line with its own catalog schema and formula
type Category string

const (
	CategoryHorizontalBlinds Category = "horizontal_blinds"
	CategoryRollerBlinds     Category = "roller_blinds"
	CategoryMosquitoNet      Category = "mosquito_net"
	CategoryGlassUnit        Category = "glass_unit"
	CategoryWindowsill       Category = "windowsill"
	CategoryDrip             Category = "drip"
	CategorySecurityFilm     Category = "security_film"
	CategoryOSB              Category = "osb"
)

// AllCategories returns the closed set of categories in display order
func AllCategories() []Category {
	return []Category{
		CategoryHorizontalBlinds,
		CategoryRollerBlinds,
		CategoryMosquitoNet,
		CategoryGlassUnit,
		CategoryWindowsill,
		CategoryDrip,
		CategorySecurityFilm,
		CategoryOSB,
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is one of the known categories
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// LengthBased reports whether the category bills by running length
func (c Category) LengthBased() bool {
	return c == CategoryWindowsill || c == CategoryDrip
}

// DisplayName returns a human-readable category name
func (c Category) DisplayName() string {
	switch c {
	case CategoryHorizontalBlinds:
		return "Horizontal blinds"
	case CategoryRollerBlinds:
		return "Roller blinds"
	case CategoryMosquitoNet:
		return "Mosquito net"
	case CategoryGlassUnit:
		return "Glass unit"
	case CategoryWindowsill:
		return "Windowsill"
	case CategoryDrip:
		return "Drip cap"
	case CategorySecurityFilm:
		return "Security film"
	case CategoryOSB:
		return "OSB sheeting"
	default:
		return string(c)
	}
}

// Query attribute names.
const (
	AttrBlindType     = "blind_type"
	AttrColor         = "color"
	AttrSystemType    = "system_type"
	AttrFabric        = "fabric"
	AttrShaftDiameter = "shaft_diameter"
	AttrProfile       = "profile"
	AttrCity          = "city"
	AttrGlassType     = "glass_type"
	AttrProfileSystem = "profile_system"
	AttrBrand         = "brand"
	AttrTexture       = "texture"
	AttrWidthMM       = "width_mm"
	AttrThickness     = "thickness"
)
