package models

import "strings"

// MaterialValueType tells how a MaterialValue.Value must be interpreted
type MaterialValueType string

const (
	MaterialValueColor    MaterialValueType = "color"    // Value is a hex color
	MaterialValueSkinTone MaterialValueType = "skinTone" // Value is a palette id (including "custom")
)

// MaterialValue is the customization assigned to one paintable surface
type MaterialValue struct {
	Type  MaterialValueType `json:"type"`
	Value string            `json:"value"`
}

// IsSet reports whether the value holds something other than blanks
func (v MaterialValue) IsSet() bool {
	return strings.TrimSpace(v.Value) != ""
}

// MaterialValues maps a material identifier to its customization for one product
type MaterialValues map[string]MaterialValue

// Clone returns an independent copy of the mapping
func (m MaterialValues) Clone() MaterialValues {
	out := make(MaterialValues, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MaterialSetRequest represents the request body for PUT /api/products/:id/customization/materials/:material
// Example: {"type": "skinTone", "value": "fitzpatrick-3b"}
// An empty value clears the material (reverts to the authored color)
type MaterialSetRequest struct {
	Type  MaterialValueType `json:"type"`
	Value string            `json:"value"`
}

// SelectionRequest represents the request body for PUT /api/products/:id/customization/selection
// Example: {"material": "Sleeve_Material"}; an empty material clears the selection
type SelectionRequest struct {
	Material string `json:"material"`
}

// CustomizationResponse describes the customization state of one product for one session
// Example response:
//
//	{
//	  "productId": "prod_01",
//	  "selectedMaterial": "Sleeve_Material",
//	  "materials": {"Sleeve_Material": {"type": "color", "value": "#ff0000"}},
//	  "requiredMaterials": ["Sleeve_Material", "Collar_Material"],
//	  "missingMaterials": ["Collar_Material"],
//	  "complete": false,
//	  "message": "Color all materials to add to cart"
//	}
type CustomizationResponse struct {
	ProductID         string         `json:"productId"`
	SelectedMaterial  *string        `json:"selectedMaterial"`
	Materials         MaterialValues `json:"materials"`
	RequiredMaterials []string       `json:"requiredMaterials"`
	MissingMaterials  []string       `json:"missingMaterials"`
	Complete          bool           `json:"complete"`
	Message           string         `json:"message,omitempty"`
}

// SceneMaterialsResponse lists the paintable parts of a product model
// status is "ready" or "unavailable" (model could not be loaded; customization disabled)
type SceneMaterialsResponse struct {
	ProductID      string            `json:"productId"`
	Viewer         string            `json:"viewer"`
	Status         string            `json:"status"`
	Materials      []string          `json:"materials"`
	OriginalColors map[string]string `json:"originalColors,omitempty"`
	Message        string            `json:"message,omitempty"`
}
