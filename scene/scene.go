// Package scene models a loaded glTF product as a tree of nodes whose mesh slots point at
// (possibly shared) materials, and recolors those materials from customization state.
package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// DefaultMaterialColor is the base color of materials that declare none
const DefaultMaterialColor = "#ffffff"

// SceneLoadError is returned when a model cannot be fetched or parsed. Customization for
// that model is disabled
type SceneLoadError struct {
	Source string
	Err    error
}

func (e *SceneLoadError) Error() string {
	return fmt.Sprintf("failed to load scene %s: %v", e.Source, e.Err)
}

func (e *SceneLoadError) Unwrap() error {
	return e.Err
}

// Material is a mutable surface description. Several mesh slots may point at the same
// Material until identifiers are resolved
type Material struct {
	Name        string
	Color       string // #rrggbb, sRGB
	NeedsUpdate bool
	Version     int

	source int // index into the document materials, -1 for the implicit default material
}

// Clone returns an independent copy of the material
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// SetColor updates the base color and flags the material for upload when it changed
func (m *Material) SetColor(hex string) {
	if m.Color == hex {
		return
	}
	m.Color = hex
	m.NeedsUpdate = true
	m.Version++
}

// Node is a scene graph node. Mesh nodes have one material slot per primitive
type Node struct {
	Name      string
	Materials []*Material
	Children  []*Node

	index int // index into the document nodes, -1 for the synthetic root
}

// IsMesh reports whether the node renders geometry
func (n *Node) IsMesh() bool {
	return len(n.Materials) > 0
}

// slotName is the mesh name a material slot derives its identifier from
func (n *Node) slotName(slot int) string {
	if len(n.Materials) > 1 {
		return fmt.Sprintf("%s_%d", n.Name, slot)
	}
	return n.Name
}

// Scene is a loaded model
type Scene struct {
	Source string
	Root   *Node

	doc *gltf.Document
}

// Traverse visits every node depth first, parents before children
func (s *Scene) Traverse(fn func(*Node)) {
	var walk func(*Node)
	walk = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	if s.Root != nil {
		walk(s.Root)
	}
}

// MaterialsByName returns every distinct material carrying name
func (s *Scene) MaterialsByName(name string) []*Material {
	var out []*Material
	seen := map[*Material]bool{}
	s.Traverse(func(n *Node) {
		for _, m := range n.Materials {
			if m.Name == name && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	})
	return out
}
