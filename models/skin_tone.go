package models

// Undertone classifies the underlying hue of a skin tone
type Undertone string

const (
	UndertoneWarm    Undertone = "warm"
	UndertoneCool    Undertone = "cool"
	UndertoneNeutral Undertone = "neutral"
	UndertoneOlive   Undertone = "olive"
)

// CustomSkinToneID is the palette sentinel whose real color is supplied out-of-band
// (captured photo or profile custom color)
const CustomSkinToneID = "custom"

// DefaultSkinHex is the fallback paint color when a skin tone cannot be resolved
const DefaultSkinHex = "#D4A67C"

// SkinTone represents a palette entry
type SkinTone struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"` // #RRGGBB
	Description string    `json:"description"`
	Undertone   Undertone `json:"undertone"`
}

// SkinToneResult is the classifier output for one analyzed image
// Example response:
//
//	{
//	  "skinToneId": "custom",
//	  "confidence": 0.9,
//	  "dominantColors": ["#c87850", "#c47a52"],
//	  "undertone": "warm",
//	  "customColor": "#c87850"
//	}
type SkinToneResult struct {
	SkinToneID     string    `json:"skinToneId"`
	Confidence     float64   `json:"confidence"`
	DominantColors []string  `json:"dominantColors"`
	Undertone      Undertone `json:"undertone,omitempty"`
	CustomColor    string    `json:"customColor,omitempty"` // Only set when SkinToneID == "custom"
}

// IsCustom reports whether the result carries a captured color instead of a palette match
func (r SkinToneResult) IsCustom() bool {
	return r.SkinToneID == CustomSkinToneID
}

// SkinToneAnalysisRequest represents the request body for POST /api/skin-tone-analysis
// Example: {"image": "data:image/jpeg;base64,/9j/4AAQ...", "analysisType": "skin_tone"}
type SkinToneAnalysisRequest struct {
	Image        string `json:"image"`
	AnalysisType string `json:"analysisType"`
}

// SkinToneDetail is a palette entry with its recommended clothing colors
type SkinToneDetail struct {
	SkinTone
	RecommendedColors []string `json:"recommendedColors"`
}

// SkinToneListResponse represents the response for the palette listing
type SkinToneListResponse struct {
	Filter string     `json:"filter"`
	Tones  []SkinTone `json:"tones"`
}
