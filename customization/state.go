// Package customization holds the per-product material customization state and the
// persistence guards around it.
package customization

import (
	"sort"
	"strings"

	"skintone-studio/models"
)

// IncompleteMessage is shown while required materials are still unpainted
const IncompleteMessage = "Color all materials to add to cart"

// State is the customization of one product: which material is selected and the value
// of every painted material. Not safe for concurrent use
type State struct {
	selected *string
	values   models.MaterialValues
}

// NewState returns an empty state
func NewState() *State {
	return &State{values: make(models.MaterialValues)}
}

// Select makes material the active one
func (s *State) Select(material string) {
	m := material
	s.selected = &m
}

// ClearSelection deselects any material
func (s *State) ClearSelection() {
	s.selected = nil
}

// Selected returns the active material
func (s *State) Selected() (string, bool) {
	if s.selected == nil {
		return "", false
	}
	return *s.selected, true
}

// SetColor paints material with a hex color; an empty color clears it
func (s *State) SetColor(material, color string) {
	s.set(material, models.MaterialValue{Type: models.MaterialValueColor, Value: color})
}

// SetSkinTone paints material with a palette id; an empty id clears it. For "custom" only
// the id is stored, the color is resolved at paint time
func (s *State) SetSkinTone(material, skinToneID string) {
	s.set(material, models.MaterialValue{Type: models.MaterialValueSkinTone, Value: skinToneID})
}

// Set stores v, deleting the key when v carries no value
func (s *State) Set(material string, v models.MaterialValue) {
	s.set(material, v)
}

func (s *State) set(material string, v models.MaterialValue) {
	if !v.IsSet() {
		delete(s.values, material)
		return
	}
	v.Value = strings.TrimSpace(v.Value)
	s.values[material] = v
}

// Clear deletes the value of material, reverting it to its authored color
func (s *State) Clear(material string) {
	delete(s.values, material)
}

// Get returns the value of material
func (s *State) Get(material string) (models.MaterialValue, bool) {
	v, ok := s.values[material]
	return v, ok
}

// Values returns a copy of every painted material
func (s *State) Values() models.MaterialValues {
	return s.values.Clone()
}

// Replace swaps the whole mapping, used when restoring a snapshot
func (s *State) Replace(values models.MaterialValues) {
	s.values = make(models.MaterialValues, len(values))
	for k, v := range values {
		s.set(k, v)
	}
}

// Len returns the number of painted materials
func (s *State) Len() int {
	return len(s.values)
}

// IsComplete reports whether every required material holds a non-blank value. An empty
// requirement is complete
func (s *State) IsComplete(required []string) bool {
	return len(s.Missing(required)) == 0
}

// Missing returns the required materials without a value, sorted
func (s *State) Missing(required []string) []string {
	missing := []string{}
	for _, m := range required {
		if v, ok := s.values[m]; !ok || !v.IsSet() {
			missing = append(missing, m)
		}
	}
	sort.Strings(missing)
	return missing
}
