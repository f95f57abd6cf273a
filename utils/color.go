package utils

import (
	"fmt"
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"

	"skintone-studio/models"
)

var hexColorRegex = regexp.MustCompile(`(?i)^#?([a-f\d]{6})$`)

// Skin-likeness filter bounds. Heuristic values, kept together so they can be recalibrated.
const (
	skinMinRed        = 80
	skinMinGreen      = 40
	skinMaxGreen      = 220
	skinMinBlue       = 20
	skinMaxBlue       = 180
	skinMinRedGreen   = 1.05
	skinMaxRedGreen   = 3.0
	skinMinRedBlue    = 1.3
	skinMaxRedBlue    = 5.0
	skinMinSaturation = 0.1
	skinMaxSaturation = 0.8
	skinMinBrightness = 40
	skinMaxBrightness = 220
)

// Undertone ratio thresholds
const (
	warmMinRedGreen   = 1.3
	warmMinRedBlue    = 2.0
	coolMaxRedGreen   = 1.1
	coolMaxRedBlue    = 1.8
	oliveMinGreenBlue = 1.2
	oliveMaxRedGreen  = 1.2
)

// NormalizeHex validates a #RRGGBB (or RRGGBB) string and returns it with a leading '#'
// Returns false when the input is not a 6 digit hex color
func NormalizeHex(hex string) (string, bool) {
	m := hexColorRegex.FindStringSubmatch(hex)
	if m == nil {
		return "", false
	}
	return "#" + m[1], true
}

// IsHexColor reports whether s is a 6 digit hex color, with or without '#'
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// HexToRGB parses a 6 digit hex color. Invalid input yields black (0,0,0)
func HexToRGB(hex string) (r, g, b int) {
	normalized, ok := NormalizeHex(hex)
	if !ok {
		return 0, 0, 0
	}
	c, err := colorful.Hex(normalized)
	if err != nil {
		return 0, 0, 0
	}
	r8, g8, b8 := c.RGB255()
	return int(r8), int(g8), int(b8)
}

// RGBToHex formats components as lowercase #rrggbb. Components are not range checked
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ColorDistance returns the Euclidean distance between two hex colors in RGB space
func ColorDistance(a, b string) float64 {
	r1, g1, b1 := HexToRGB(a)
	r2, g2, b2 := HexToRGB(b)
	dr := float64(r1 - r2)
	dg := float64(g1 - g2)
	db := float64(b1 - b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ratio divides two channels the way a float division on raw components would
// (x/0 is +Inf, 0/0 is NaN)
func ratio(x, y int) float64 {
	return float64(x) / float64(y)
}

// DetermineUndertone classifies an RGB color by its channel ratios
func DetermineUndertone(r, g, b int) models.Undertone {
	redGreen := ratio(r, g)
	redBlue := ratio(r, b)
	greenBlue := ratio(g, b)

	if redGreen > warmMinRedGreen && redBlue > warmMinRedBlue {
		return models.UndertoneWarm
	}
	if redGreen < coolMaxRedGreen && redBlue < coolMaxRedBlue {
		return models.UndertoneCool
	}
	if greenBlue > oliveMinGreenBlue && redGreen < oliveMaxRedGreen {
		return models.UndertoneOlive
	}
	return models.UndertoneNeutral
}

// DetermineUndertoneFromHex is DetermineUndertone on a hex color
func DetermineUndertoneFromHex(hex string) models.Undertone {
	r, g, b := HexToRGB(hex)
	return DetermineUndertone(r, g, b)
}

// IsLikelySkinTone reports whether a pixel passes the skin-likeness filter
func IsLikelySkinTone(r, g, b int) bool {
	if r < g || r < b {
		return false
	}
	if r < skinMinRed || r > 255 {
		return false
	}
	if g < skinMinGreen || g > skinMaxGreen {
		return false
	}
	if b < skinMinBlue || b > skinMaxBlue {
		return false
	}

	redGreen := ratio(r, g)
	redBlue := ratio(r, b)
	if redGreen < skinMinRedGreen || redGreen > skinMaxRedGreen {
		return false
	}
	if redBlue < skinMinRedBlue || redBlue > skinMaxRedBlue {
		return false
	}

	maxC := max(r, g, b)
	minC := min(r, g, b)
	saturation := float64(maxC-minC) / float64(maxC)
	if saturation < skinMinSaturation || saturation > skinMaxSaturation {
		return false
	}

	brightness := float64(r+g+b) / 3
	if brightness < skinMinBrightness || brightness > skinMaxBrightness {
		return false
	}
	return true
}

// Lightness returns the CIE L* of a hex color in [0,1]
func Lightness(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	l, _, _ := c.Lab()
	return l
}
