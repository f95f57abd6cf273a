package utils

import (
	"strings"
)

// MapLegacyToneToHex maps the tone labels stored by older clients to their paint colors
// Input is normalized to lowercase before mapping
// Returns "" when the label is unknown
func MapLegacyToneToHex(name string) string {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	legacyMap := map[string]string{
		"fair":             "#F2C49B",
		"medium":           "#E1B07E",
		"dark":             "#8D5524",
		"light":            "#F9D7B5",
		"olive":            "#D1A38A",
		"warm":             "#E0A878",
		"custom skin tone": "#D4A67C",
	}

	if hex, exists := legacyMap[nameLower]; exists {
		return hex
	}
	return ""
}

// MapFilterToPrefixes maps a palette filter group to the id prefixes it contains
// Input is normalized to lowercase before mapping
// Returns nil for "all" or unknown groups (no filtering)
func MapFilterToPrefixes(filter string) []string {
	filterLower := strings.ToLower(strings.TrimSpace(filter))

	filterMap := map[string][]string{
		"fitzpatrick": {"fitzpatrick-"},
		"regional": {
			"nordic-", "celtic-", "mediterranean-", "south-asian-", "east-asian-",
			"southeast-asian-", "middle-eastern-", "north-african-", "sub-saharan-", "melanesian-",
		},
		"foundation": {"foundation-"},
	}

	if prefixes, exists := filterMap[filterLower]; exists {
		return prefixes
	}
	return nil
}

// MapLightnessToBucket maps a CIE L* value in [0,1] to a recommendation bucket
func MapLightnessToBucket(l float64) string {
	switch {
	case l >= 0.90:
		return "very-light"
	case l >= 0.82:
		return "light"
	case l >= 0.75:
		return "medium-light"
	case l >= 0.65:
		return "medium"
	case l >= 0.50:
		return "medium-dark"
	case l >= 0.35:
		return "dark"
	default:
		return "very-dark"
	}
}

// MapBucketToRecommendedColors returns the clothing colors recommended for a lightness bucket
func MapBucketToRecommendedColors(bucket string) []string {
	recommendations := map[string][]string{
		"very-light":   {"#000000", "#2C3E50", "#8E44AD", "#E74C3C", "#F39C12"},
		"light":        {"#34495E", "#8E44AD", "#E67E22", "#D35400", "#C0392B"},
		"medium-light": {"#2C3E50", "#8E44AD", "#E67E22", "#F39C12", "#F1C40F"},
		"medium":       {"#34495E", "#8E44AD", "#E74C3C", "#F39C12", "#F1C40F"},
		"medium-dark":  {"#ECF0F1", "#BDC3C7", "#95A5A6", "#7F8C8D", "#34495E"},
		"dark":         {"#ECF0F1", "#BDC3C7", "#95A5A6", "#F1C40F", "#F39C12"},
		"very-dark":    {"#ECF0F1", "#BDC3C7", "#95A5A6", "#F1C40F", "#E67E22"},
	}

	if colors, exists := recommendations[bucket]; exists {
		out := make([]string, len(colors))
		copy(out, colors)
		return out
	}
	return []string{}
}
