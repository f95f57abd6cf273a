// Package palette holds the skin tone swatch catalogue and the matching logic
// run against it.
package palette

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"skintone-studio/models"
	"skintone-studio/utils"
)

const (
	// MinConfidence and MaxConfidence bound the match confidence
	MinConfidence = 0.5
	MaxConfidence = 0.95
)

// Palette is an immutable, validated list of skin tones
type Palette struct {
	tones  []models.SkinTone
	byID   map[string]int
	custom int
}

// Match is the result of FindClosest
type Match struct {
	ID         string
	Confidence float64
	Undertone  models.Undertone
	Distance   float64
}

var (
	defaultOnce    sync.Once
	defaultPalette *Palette
)

// New validates tones and builds a Palette: ids must be unique, colors valid hex and
// exactly one entry must be the custom sentinel
func New(tones []models.SkinTone) (*Palette, error) {
	p := &Palette{
		tones:  make([]models.SkinTone, len(tones)),
		byID:   make(map[string]int, len(tones)),
		custom: -1,
	}
	copy(p.tones, tones)

	for i, tone := range p.tones {
		if tone.ID == "" {
			return nil, fmt.Errorf("skin tone at index %d has empty id", i)
		}
		if _, dup := p.byID[tone.ID]; dup {
			return nil, fmt.Errorf("duplicate skin tone id: %s", tone.ID)
		}
		if !utils.IsHexColor(tone.Color) {
			return nil, fmt.Errorf("skin tone %s has invalid color %q", tone.ID, tone.Color)
		}
		p.byID[tone.ID] = i
		if tone.ID == models.CustomSkinToneID {
			p.custom = i
		}
	}
	if p.custom < 0 {
		return nil, fmt.Errorf("palette has no %q entry", models.CustomSkinToneID)
	}
	if len(p.tones) < 2 {
		return nil, fmt.Errorf("palette needs at least one matchable tone")
	}
	return p, nil
}

// Default returns the built-in catalogue
func Default() *Palette {
	defaultOnce.Do(func() {
		p, err := New(catalogue)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in palette: %v", err))
		}
		defaultPalette = p
	})
	return defaultPalette
}

// All returns a copy of every tone, catalogue order
func (p *Palette) All() []models.SkinTone {
	out := make([]models.SkinTone, len(p.tones))
	copy(out, p.tones)
	return out
}

// Len returns the number of tones including the custom sentinel
func (p *Palette) Len() int {
	return len(p.tones)
}

// ByID looks a tone up by id
func (p *Palette) ByID(id string) (models.SkinTone, bool) {
	i, ok := p.byID[id]
	if !ok {
		return models.SkinTone{}, false
	}
	return p.tones[i], true
}

// IsValid reports whether id names a palette entry
func (p *Palette) IsValid(id string) bool {
	_, ok := p.byID[id]
	return ok
}

// ByName looks a tone up by display name, case-insensitive
func (p *Palette) ByName(name string) (models.SkinTone, bool) {
	name = strings.TrimSpace(name)
	for _, tone := range p.tones {
		if strings.EqualFold(tone.Name, name) {
			return tone, true
		}
	}
	return models.SkinTone{}, false
}

// Custom returns the custom sentinel entry
func (p *Palette) Custom() models.SkinTone {
	return p.tones[p.custom]
}

// Filter returns the tones of a group: all, fitzpatrick, regional or foundation
// Unknown groups behave like "all"
func (p *Palette) Filter(group string) []models.SkinTone {
	prefixes := utils.MapFilterToPrefixes(group)
	if prefixes == nil {
		return p.All()
	}
	out := []models.SkinTone{}
	for _, tone := range p.tones {
		for _, prefix := range prefixes {
			if strings.HasPrefix(tone.ID, prefix) {
				out = append(out, tone)
				break
			}
		}
	}
	return out
}

// ResolveHex returns the paint color of a stored skin tone value: a palette id, a display
// name or a legacy label. The custom sentinel is never resolved here, its color lives
// outside the palette
func (p *Palette) ResolveHex(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == models.CustomSkinToneID {
		return "", false
	}
	if tone, ok := p.ByID(value); ok {
		return tone.Color, true
	}
	if tone, ok := p.ByName(value); ok && tone.ID != models.CustomSkinToneID {
		return tone.Color, true
	}
	if hex := utils.MapLegacyToneToHex(value); hex != "" && !strings.EqualFold(value, p.Custom().Name) {
		return hex, true
	}
	return "", false
}

// FindClosest matches colors against every tone except the custom sentinel. For each tone
// the mean distance to the colors is computed; the smallest mean wins (first entry on ties)
// and confidence is 1 - best/average clamped to [MinConfidence, MaxConfidence]
// Returns false when colors is empty
func (p *Palette) FindClosest(colors []string) (Match, bool) {
	if len(colors) == 0 {
		return Match{}, false
	}

	best := -1
	bestDistance := math.Inf(1)
	total := 0.0
	count := 0
	for i, tone := range p.tones {
		if i == p.custom {
			continue
		}
		sum := 0.0
		for _, c := range colors {
			sum += utils.ColorDistance(c, tone.Color)
		}
		mean := sum / float64(len(colors))
		if mean < bestDistance {
			bestDistance = mean
			best = i
		}
		total += mean
		count++
	}

	average := total / float64(count)
	confidence := MaxConfidence
	if average > 0 {
		confidence = clamp(1-bestDistance/average, MinConfidence, MaxConfidence)
	}

	tone := p.tones[best]
	return Match{
		ID:         tone.ID,
		Confidence: confidence,
		Undertone:  tone.Undertone,
		Distance:   bestDistance,
	}, true
}

// RecommendedColors returns clothing colors that suit a tone, bucketed by lightness
// Unknown ids yield an empty list
func (p *Palette) RecommendedColors(id string) []string {
	tone, ok := p.ByID(id)
	if !ok {
		return []string{}
	}
	return utils.MapBucketToRecommendedColors(utils.MapLightnessToBucket(utils.Lightness(tone.Color)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// IsCustomValue reports whether a stored skin tone value designates the custom sentinel,
// by id or by its display label
func (p *Palette) IsCustomValue(value string) bool {
	value = strings.TrimSpace(value)
	return value == models.CustomSkinToneID || strings.EqualFold(value, p.Custom().Name)
}
