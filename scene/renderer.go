package scene

import (
	"sync"

	"skintone-studio/models"
	"skintone-studio/utils"
)

// FrameLoop is the render scheduling mode of a viewer
type FrameLoop string

const (
	FrameLoopAlways FrameLoop = "always"
	FrameLoopDemand FrameLoop = "demand"
)

// SkinToneResolver maps the skinTone value of a material (palette id, label or "custom") to
// a hex color. The material is passed so custom colors can be resolved per material
type SkinToneResolver func(material, value string) string

// Renderer applies customization state to the materials of one or more scenes
type Renderer struct {
	mu          sync.Mutex
	scenes      []*Scene
	identifiers []string
	original    map[string]string
	inView      bool
	docVisible  bool
}

// NewRenderer resolves material identifiers of every scene and captures the authored
// color of each identifier. When scenes disagree the first captured color wins
func NewRenderer(scenes ...*Scene) *Renderer {
	r := &Renderer{
		original:   make(map[string]string),
		inView:     true,
		docVisible: true,
	}
	seen := make(map[string]bool)
	for _, s := range scenes {
		if s == nil {
			continue
		}
		r.scenes = append(r.scenes, s)
		for _, id := range ResolveMaterialIdentifiers(s) {
			if !seen[id] {
				seen[id] = true
				r.identifiers = append(r.identifiers, id)
			}
		}
		s.Traverse(func(n *Node) {
			for _, m := range n.Materials {
				if _, ok := r.original[m.Name]; !ok {
					r.original[m.Name] = m.Color
				}
			}
		})
	}
	return r
}

// Identifiers returns the paintable material identifiers in first appearance order
func (r *Renderer) Identifiers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.identifiers))
	copy(out, r.identifiers)
	return out
}

// OriginalColor returns the authored color of an identifier
func (r *Renderer) OriginalColor(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.original[id]
	return c, ok
}

// OriginalColors returns a copy of every authored color
func (r *Renderer) OriginalColors() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.original))
	for k, v := range r.original {
		out[k] = v
	}
	return out
}

// Apply recolors every identifier from values: color values are used as-is, skinTone
// values go through resolve, absent or unusable values revert to the authored color
// Applying the same values twice leaves materials unchanged
func (r *Renderer) Apply(values models.MaterialValues, resolve SkinToneResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.identifiers {
		color := r.colorFor(id, values, resolve)
		for _, s := range r.scenes {
			for _, m := range s.MaterialsByName(id) {
				m.SetColor(color)
			}
		}
	}
}

func (r *Renderer) colorFor(id string, values models.MaterialValues, resolve SkinToneResolver) string {
	fallback := r.original[id]
	v, ok := values[id]
	if !ok || !v.IsSet() {
		return fallback
	}
	switch v.Type {
	case models.MaterialValueColor:
		if hex, ok := utils.NormalizeHex(v.Value); ok {
			return hex
		}
	case models.MaterialValueSkinTone:
		if resolve != nil {
			if hex, ok := utils.NormalizeHex(resolve(id, v.Value)); ok {
				return hex
			}
		}
	}
	return fallback
}

// ColorOf returns the current color of an identifier, "" when unknown
func (r *Renderer) ColorOf(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.scenes {
		if ms := s.MaterialsByName(id); len(ms) > 0 {
			return ms[0].Color
		}
	}
	return ""
}

// SetInView records whether the viewer intersects the viewport
func (r *Renderer) SetInView(inView bool) {
	r.mu.Lock()
	r.inView = inView
	r.mu.Unlock()
}

// SetDocumentVisible records whether the hosting document is visible
func (r *Renderer) SetDocumentVisible(visible bool) {
	r.mu.Lock()
	r.docVisible = visible
	r.mu.Unlock()
}

// FrameLoop renders continuously only while in view and visible
func (r *Renderer) FrameLoop() FrameLoop {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inView && r.docVisible {
		return FrameLoopAlways
	}
	return FrameLoopDemand
}

// Scenes returns the mounted scenes
func (r *Renderer) Scenes() []*Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Scene, len(r.scenes))
	copy(out, r.scenes)
	return out
}
