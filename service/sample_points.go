package service

import (
	"image"
	"math"
)

// Sampling layout. Heuristic values, kept together so they can be recalibrated.
const (
	polarSampleCount    = 800
	faceRadiusFactor    = 0.25
	gridHalfWidth       = 0.3
	gridAbove           = 0.4
	gridBelow           = 0.2
	gridMinStep         = 5.0
	gridStepDivisor     = 50.0
	gridKeepProbability = 0.3
	uniformSampleCount  = 200
)

// RandomSource yields uniform values in [0,1). *rand.Rand from math/rand/v2 satisfies it
type RandomSource interface {
	Float64() float64
}

// samplePoints returns the pixel coordinates to inspect in a w x h image:
// polar samples around the center (face), a sparse grid over the upper center
// (face and neck) and uniform samples over the whole frame
// Every returned point lies inside the image
func samplePoints(width, height int, rnd RandomSource) []image.Point {
	w := float64(width)
	h := float64(height)
	centerX := w / 2
	centerY := h / 2
	points := make([]image.Point, 0, polarSampleCount+uniformSampleCount)

	faceRadius := math.Min(w, h) * faceRadiusFactor
	for i := 0; i < polarSampleCount; i++ {
		angle := rnd.Float64() * 2 * math.Pi
		radius := rnd.Float64() * faceRadius
		x := int(math.Floor(centerX + radius*math.Cos(angle)))
		y := int(math.Floor(centerY + radius*math.Sin(angle)))
		if x >= 0 && x < width && y >= 0 && y < height {
			points = append(points, image.Pt(x, y))
		}
	}

	startX := math.Max(0, centerX-w*gridHalfWidth)
	endX := math.Min(w, centerX+w*gridHalfWidth)
	startY := math.Max(0, centerY-h*gridAbove)
	endY := math.Min(h, centerY+h*gridBelow)
	step := math.Max(gridMinStep, math.Min(w, h)/gridStepDivisor)
	for x := startX; x < endX; x += step {
		for y := startY; y < endY; y += step {
			if rnd.Float64() < gridKeepProbability {
				points = append(points, image.Pt(int(math.Floor(x)), int(math.Floor(y))))
			}
		}
	}

	for i := 0; i < uniformSampleCount; i++ {
		x := int(math.Floor(rnd.Float64() * w))
		y := int(math.Floor(rnd.Float64() * h))
		points = append(points, image.Pt(x, y))
	}

	return points
}
