package models

// CustomerMetadata is the part of the commerce customer metadata this service reads and writes
type CustomerMetadata struct {
	SkinTone         string `json:"skin_tone,omitempty"`
	CustomSkinColor  string `json:"custom_skin_color,omitempty"` // Only meaningful when SkinTone == "custom"
	ProfileCompleted string `json:"profile_completed,omitempty"`
}

// IsComplete reports whether onboarding can be considered done for this customer
func (m *CustomerMetadata) IsComplete() bool {
	if m == nil {
		return false
	}
	return m.SkinTone != "" || m.ProfileCompleted == "true"
}

// ProfileSkinToneRequest represents the request body for PUT /api/customers/:id/skin-tone
// Example: {"skinTone": "custom", "customColor": "#c87850"}
type ProfileSkinToneRequest struct {
	SkinTone    string `json:"skinTone"`
	CustomColor string `json:"customColor,omitempty"`
}

// ProfileSkinToneResponse represents the profile skin tone view
type ProfileSkinToneResponse struct {
	CustomerID      string    `json:"customerId"`
	SkinTone        string    `json:"skinTone"`
	CustomSkinColor string    `json:"customSkinColor,omitempty"`
	Hex             string    `json:"hex,omitempty"`
	ProfileComplete bool      `json:"profileComplete"`
	Tone            *SkinTone `json:"tone,omitempty"`
}
