package models

// ProductSkinToneSelection is the page level skin tone choice cached per product
// Example: {"skinToneId": "custom", "skinToneName": "Custom Skin Tone", "customColor": "#c87850", "timestamp": 1735689600000}
type ProductSkinToneSelection struct {
	SkinToneID   string `json:"skinToneId"`
	SkinToneName string `json:"skinToneName,omitempty"`
	CustomColor  string `json:"customColor,omitempty"`
	Timestamp    int64  `json:"timestamp"` // unix millis
}

// MaterialSkinToneSelection is the skin tone choice cached per product material
// Example: {"skinToneId": "custom", "material": "Bodice", "customColor": "#c87850"}
type MaterialSkinToneSelection struct {
	SkinToneID  string `json:"skinToneId"`
	Material    string `json:"material"`
	CustomColor string `json:"customColor,omitempty"`
}

// SkinToneSelectionRequest represents the request body for PUT /api/products/:id/skin-tone
// Example: {"skinToneId": "custom", "customColor": "#c87850"}
type SkinToneSelectionRequest struct {
	SkinToneID  string `json:"skinToneId"`
	CustomColor string `json:"customColor,omitempty"`
}

// EffectiveSkinToneResponse is the skin tone a product page shows
type EffectiveSkinToneResponse struct {
	ProductID string `json:"productId"`
	SkinTone  string `json:"skinTone"`
	Hex       string `json:"hex,omitempty"`
}
