package service

import (
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/scene"
	"skintone-studio/utils"
)

// PaintResolver turns stored skin tone values into paint colors
type PaintResolver struct {
	palette *palette.Palette
}

// NewPaintResolver creates a new PaintResolver
func NewPaintResolver(p *palette.Palette) *PaintResolver {
	return &PaintResolver{palette: p}
}

// SkinToneHex resolves a skin tone value. The custom sentinel takes customColor, falling
// back to the default skin color; unknown values yield ""
func (r *PaintResolver) SkinToneHex(value, customColor string) string {
	if r.palette.IsCustomValue(value) {
		if hex, ok := utils.NormalizeHex(customColor); ok {
			return hex
		}
		return models.DefaultSkinHex
	}
	hex, _ := r.palette.ResolveHex(value)
	return hex
}

// ForRenderer builds a scene.SkinToneResolver. customColor returns the custom color of a
// material and is only called for the custom sentinel
func (r *PaintResolver) ForRenderer(customColor func(material string) string) scene.SkinToneResolver {
	return func(material, value string) string {
		if r.palette.IsCustomValue(value) && customColor != nil {
			return r.SkinToneHex(value, customColor(material))
		}
		return r.SkinToneHex(value, "")
	}
}
