package scene

import "skintone-studio/utils"

// Slot is one material slot of a mesh node and the identifier it resolves to
type Slot struct {
	Node       *Node
	Index      int
	Identifier string
	// Rename is set when the authored name is missing, a placeholder or shared
	Rename bool
	// NeedsClone is set when the material instance is used by more than one slot
	NeedsClone bool
}

// Plan is the identifier assignment for a scene, computed without touching it
type Plan struct {
	Slots       []Slot
	Identifiers []string // unique, first appearance order
}

// PlanMaterialIdentifiers computes the identifier of every material slot. A slot keeps the
// authored material name unless the name is missing or a placeholder, or the material is
// used by more than one slot; then it becomes "<mesh name>_Material"
func PlanMaterialIdentifiers(s *Scene) *Plan {
	usage := make(map[*Material]int)
	s.Traverse(func(n *Node) {
		for _, m := range n.Materials {
			usage[m]++
		}
	})

	plan := &Plan{}
	seen := make(map[string]bool)
	s.Traverse(func(n *Node) {
		for i, m := range n.Materials {
			shared := usage[m] > 1
			slot := Slot{Node: n, Index: i, Identifier: m.Name, NeedsClone: shared}
			if shared || utils.IsPlaceholderMaterialName(m.Name) {
				slot.Identifier = utils.DeriveMaterialName(n.slotName(i))
				slot.Rename = true
			}
			plan.Slots = append(plan.Slots, slot)
			if !seen[slot.Identifier] {
				seen[slot.Identifier] = true
				plan.Identifiers = append(plan.Identifiers, slot.Identifier)
			}
		}
	})
	return plan
}

// Apply clones shared materials and renames synthesized ones. After Apply no two slots
// with different identifiers share a material instance
func (p *Plan) Apply() {
	for _, slot := range p.Slots {
		m := slot.Node.Materials[slot.Index]
		if slot.NeedsClone {
			m = m.Clone()
			slot.Node.Materials[slot.Index] = m
		}
		if slot.Rename {
			m.Name = slot.Identifier
		}
	}
}

// ResolveMaterialIdentifiers plans and applies identifiers and returns them
// Running it again on the same scene returns the same identifiers
func ResolveMaterialIdentifiers(s *Scene) []string {
	plan := PlanMaterialIdentifiers(s)
	plan.Apply()
	return plan.Identifiers
}
