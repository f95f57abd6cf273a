package scene

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/qmuntal/gltf"

	"skintone-studio/utils"
)

// Load parses a glTF (JSON with embedded buffers) or GLB model
// source only labels errors and the resulting scene
func Load(ctx context.Context, source string, r io.Reader) (*Scene, error) {
	if err := ctx.Err(); err != nil {
		return nil, &SceneLoadError{Source: source, Err: err}
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, &SceneLoadError{Source: source, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &SceneLoadError{Source: source, Err: err}
	}
	s, err := FromDocument(source, doc)
	if err != nil {
		return nil, &SceneLoadError{Source: source, Err: err}
	}
	return s, nil
}

// LoadBytes is Load over an in-memory model
func LoadBytes(ctx context.Context, source string, data []byte) (*Scene, error) {
	return Load(ctx, source, bytes.NewReader(data))
}

// FromDocument builds the scene graph of the document's active scene. Primitives that share
// a document material share one *Material; primitives without a material share one default
// material
func FromDocument(source string, doc *gltf.Document) (*Scene, error) {
	b := &graphBuilder{
		doc:       doc,
		materials: make(map[uint32]*Material),
		names:     make(map[string]int),
		visiting:  make(map[uint32]bool),
	}

	roots, err := rootNodes(doc)
	if err != nil {
		return nil, err
	}

	root := &Node{Name: "Scene", index: -1}
	for _, idx := range roots {
		child, err := b.build(idx)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return &Scene{Source: source, Root: root, doc: doc}, nil
}

func rootNodes(doc *gltf.Document) ([]uint32, error) {
	if len(doc.Scenes) > 0 {
		active := uint32(0)
		if doc.Scene != nil {
			active = *doc.Scene
		}
		if int(active) >= len(doc.Scenes) {
			return nil, fmt.Errorf("scene index %d out of range", active)
		}
		return doc.Scenes[active].Nodes, nil
	}

	// No scenes: every node that is nobody's child is a root
	isChild := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots, nil
}

type graphBuilder struct {
	doc             *gltf.Document
	materials       map[uint32]*Material
	defaultMaterial *Material
	names           map[string]int
	visiting        map[uint32]bool
}

func (b *graphBuilder) build(idx uint32) (*Node, error) {
	if int(idx) >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if b.visiting[idx] {
		return nil, fmt.Errorf("node %d is part of a cycle", idx)
	}
	b.visiting[idx] = true
	defer delete(b.visiting, idx)

	src := b.doc.Nodes[idx]
	node := &Node{index: int(idx)}

	name := src.Name
	if src.Mesh != nil {
		if int(*src.Mesh) >= len(b.doc.Meshes) {
			return nil, fmt.Errorf("node %d references missing mesh %d", idx, *src.Mesh)
		}
		mesh := b.doc.Meshes[*src.Mesh]
		if name == "" {
			name = mesh.Name
		}
		for _, prim := range mesh.Primitives {
			m, err := b.material(prim.Material)
			if err != nil {
				return nil, err
			}
			node.Materials = append(node.Materials, m)
		}
	}
	node.Name = b.uniqueName(utils.SanitizeNodeName(name))

	for _, c := range src.Children {
		child, err := b.build(c)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// uniqueName suffixes repeated non-empty node names with _1, _2, ...
func (b *graphBuilder) uniqueName(name string) string {
	if name == "" {
		return ""
	}
	n, seen := b.names[name]
	b.names[name] = n + 1
	if !seen {
		return name
	}
	return fmt.Sprintf("%s_%d", name, n)
}

func (b *graphBuilder) material(idx *uint32) (*Material, error) {
	if idx == nil {
		if b.defaultMaterial == nil {
			b.defaultMaterial = &Material{Color: DefaultMaterialColor, source: -1}
		}
		return b.defaultMaterial, nil
	}
	if m, ok := b.materials[*idx]; ok {
		return m, nil
	}
	if int(*idx) >= len(b.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *idx)
	}
	src := b.doc.Materials[*idx]
	m := &Material{
		Name:   src.Name,
		Color:  baseColorHex(src),
		source: int(*idx),
	}
	b.materials[*idx] = m
	return m, nil
}

// baseColorHex converts the linear base color factor to an sRGB hex string
func baseColorHex(m *gltf.Material) string {
	if m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorFactor == nil {
		return DefaultMaterialColor
	}
	f := m.PBRMetallicRoughness.BaseColorFactor
	return colorful.LinearRgb(float64(f[0]), float64(f[1]), float64(f[2])).Clamped().Hex()
}

// linearFactor converts an sRGB hex color to a glTF base color factor keeping alpha
func linearFactor(hex string, alpha float32) [4]float32 {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultMaterialColor)
	}
	r, g, b := c.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), alpha}
}
