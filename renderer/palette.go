// Package renderer draws the world in a raylib window or a terminal.
package renderer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Hue used for every food when taste does not evolve.
const staticFoodHue = 0.33 * 360

// FoodColor returns a food's fill colour. Hue follows taste; richer food is
// darker.
func FoodColor(taste, energy float64, evolveTaste bool) color.RGBA {
	hue := staticFoodHue
	if evolveTaste {
		hue = taste
	}
	lum := 0.82
	if energy > 20 {
		lum = 0.9 - energy*0.004
	}
	return rgba(colorful.Hsl(hue, 1, lum))
}

// BugColor returns the colour of a bug's centre dot. Bugs are red when
// taste does not evolve.
func BugColor(taste float64, evolveTaste bool) color.RGBA {
	if !evolveTaste {
		return color.RGBA{R: 255, A: 255}
	}
	return rgba(colorful.Hsl(taste, 1, 0.5))
}

// BugSize returns a bug's diameter as a fraction of one cell.
func BugSize(energy float64) float64 {
	return min(max(energy*0.01, 0.3), 1.0)
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
