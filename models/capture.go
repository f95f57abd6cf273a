package models

// CaptureTarget tells where a confirmed capture result is written
type CaptureTarget string

const (
	CaptureTargetProfile  CaptureTarget = "profile"
	CaptureTargetMaterial CaptureTarget = "material"
)

// CaptureSessionResponse describes an open capture session
type CaptureSessionResponse struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Status string          `json:"status"` // open, analyzed, confirmed, canceled
	Result *SkinToneResult `json:"result,omitempty"`
}

// CaptureOpenRequest represents the request body for POST /api/capture/sessions
// Example: {"source": "upload"}
type CaptureOpenRequest struct {
	Source string `json:"source"` // "camera" or "upload"
}

// CaptureFrameRequest carries one image for analysis
type CaptureFrameRequest struct {
	Image string `json:"image"`
}

// CaptureConfirmRequest represents the request body for POST /api/capture/sessions/:id/confirm
// Example: {"target": "material", "productId": "prod_01", "material": "Bodice"}
// Example: {"target": "profile", "customerId": "cus_01"}
type CaptureConfirmRequest struct {
	Target     CaptureTarget `json:"target"`
	CustomerID string        `json:"customerId,omitempty"`
	ProductID  string        `json:"productId,omitempty"`
	Material   string        `json:"material,omitempty"`
}

// CaptureConfirmResponse reports where a confirmed result was applied
type CaptureConfirmResponse struct {
	Session       CaptureSessionResponse   `json:"session"`
	Profile       *ProfileSkinToneResponse `json:"profile,omitempty"`
	Customization *CustomizationResponse   `json:"customization,omitempty"`
}
