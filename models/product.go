package models

// Product3D holds the 3D related product metadata read from the commerce backend
type Product3D struct {
	ProductID       string `json:"productId"`
	ModelURL        string `json:"modelUrl"`
	SkinnedModelURL string `json:"skinnedModelUrl,omitempty"`
}

// Supports3D reports whether the product exposes 3D customization at all
func (p *Product3D) Supports3D() bool {
	return p != nil && p.ModelURL != ""
}
