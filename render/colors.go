package render

import "image/color"

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Grey  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	Pink  = color.RGBA{R: 255, G: 0, B: 255, A: 255}

	// spriteFallbackColors paint assets that could not be loaded
	spriteFallbackColors = map[string]color.RGBA{
		"CatEye_left_open.png":   {R: 144, G: 238, B: 144, A: 255},
		"CatEye_left_closed.png": Grey,
		"CatNose.png":            {R: 255, G: 182, B: 193, A: 255},
	}
)

// visible returns true if a color would paint anything
func visible(c color.RGBA) bool {
	return c.A > 0
}
