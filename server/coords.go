package server

import (
	"fmt"
	"math"
)

// DisplayRect is the rendered bounding rectangle of the screenshot image in
// viewport coordinates, as reported by the browser for the very click being
// translated. It is captured per click, never reused across clicks.
type DisplayRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NaturalSize is the screenshot's native pixel resolution.
type NaturalSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a coordinate in device pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Translate converts a click at viewport coordinates (clientX, clientY) on a
// possibly CSS-scaled screenshot into device pixel coordinates:
//
//	scaleX = naturalWidth / rect.width
//	deviceX = round((clientX - rect.left) * scaleX)
//
// Rounding is to the nearest integer, ties away from zero. For clicks inside
// the rect the result always falls within [0, naturalWidth) x
// [0, naturalHeight); boundary rounding is clamped back into that range.
func Translate(rect DisplayRect, natural NaturalSize, clientX, clientY float64) (Point, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return Point{}, fmt.Errorf("rendered rect has no area: %.1fx%.1f", rect.Width, rect.Height)
	}
	if natural.Width <= 0 || natural.Height <= 0 {
		return Point{}, fmt.Errorf("no screenshot loaded: natural size %dx%d", natural.Width, natural.Height)
	}

	scaleX := float64(natural.Width) / rect.Width
	scaleY := float64(natural.Height) / rect.Height

	x := int(math.Round((clientX - rect.Left) * scaleX))
	y := int(math.Round((clientY - rect.Top) * scaleY))

	return Point{
		X: clampInt(x, 0, natural.Width-1),
		Y: clampInt(y, 0, natural.Height-1),
	}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
