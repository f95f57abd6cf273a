package utils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex    = regexp.MustCompile(`\s`)
	reservedCharsRegex = regexp.MustCompile(`[\[\]\.:/]`)
)

// SanitizeNodeName normalizes a scene node name so identifiers derived from it match the
// ones a browser viewer derives: whitespace becomes '_' and the path reserved
// characters []\.:/ are removed
func SanitizeNodeName(name string) string {
	name = whitespaceRegex.ReplaceAllString(name, "_")
	return reservedCharsRegex.ReplaceAllString(name, "")
}

// IsPlaceholderMaterialName reports whether an authored material name is missing or one
// of the exporter placeholders ("None", "None.001", ...)
func IsPlaceholderMaterialName(name string) bool {
	return name == "" || strings.HasPrefix(name, "None")
}

// DeriveMaterialName builds the identifier of a synthesized material for a mesh
// Example: "Sleeve" -> "Sleeve_Material", "" -> "Mesh_Material"
func DeriveMaterialName(meshName string) string {
	if meshName == "" {
		meshName = "Mesh"
	}
	return meshName + "_Material"
}
