package scene

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
)

// ExportGLB writes the scene as a binary glTF carrying the current material colors. Every
// mesh node gets its own mesh so slots that were split by identifier resolution keep their
// own material
func (s *Scene) ExportGLB(w io.Writer) error {
	doc, err := s.exportDocument()
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode glb: %w", err)
	}
	return nil
}

func (s *Scene) exportDocument() (*gltf.Document, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("scene %s has no source document", s.Source)
	}
	out := *s.doc
	out.Nodes = make([]*gltf.Node, len(s.doc.Nodes))
	for i, n := range s.doc.Nodes {
		c := *n
		out.Nodes[i] = &c
	}
	out.Materials = nil
	out.Meshes = nil

	materialIndex := make(map[*Material]uint32)
	exportMaterial := func(m *Material) uint32 {
		if idx, ok := materialIndex[m]; ok {
			return idx
		}
		var gm gltf.Material
		if m.source >= 0 && m.source < len(s.doc.Materials) {
			gm = *s.doc.Materials[m.source]
		}
		var pbr gltf.PBRMetallicRoughness
		if gm.PBRMetallicRoughness != nil {
			pbr = *gm.PBRMetallicRoughness
		}
		alpha := float32(1)
		if pbr.BaseColorFactor != nil {
			alpha = pbr.BaseColorFactor[3]
		}
		factor := linearFactor(m.Color, alpha)
		pbr.BaseColorFactor = &factor
		gm.PBRMetallicRoughness = &pbr
		gm.Name = m.Name

		idx := uint32(len(out.Materials))
		out.Materials = append(out.Materials, &gm)
		materialIndex[m] = idx
		return idx
	}

	var walkErr error
	s.Traverse(func(n *Node) {
		if walkErr != nil || n.index < 0 || !n.IsMesh() {
			return
		}
		node := out.Nodes[n.index]
		if node.Mesh == nil || int(*node.Mesh) >= len(s.doc.Meshes) {
			walkErr = fmt.Errorf("node %d lost its mesh", n.index)
			return
		}
		src := s.doc.Meshes[*node.Mesh]
		mesh := *src
		mesh.Primitives = make([]*gltf.Primitive, len(src.Primitives))
		for i, p := range src.Primitives {
			prim := *p
			if i < len(n.Materials) {
				prim.Material = gltf.Index(exportMaterial(n.Materials[i]))
			}
			mesh.Primitives[i] = &prim
		}
		node.Mesh = gltf.Index(uint32(len(out.Meshes)))
		out.Meshes = append(out.Meshes, &mesh)
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// Mesh nodes outside the active scene no longer point at valid meshes
	for i, n := range out.Nodes {
		if n.Mesh != nil && !s.nodeInScene(i) {
			n.Mesh = nil
		}
	}
	return &out, nil
}

func (s *Scene) nodeInScene(index int) bool {
	found := false
	s.Traverse(func(n *Node) {
		if n.index == index {
			found = true
		}
	})
	return found
}
