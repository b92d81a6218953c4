package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// StatusFont defines how the mode and sensor status line is drawn in the
// top left corner of a rendered view
type StatusFont struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	// Background fills the bar behind the text
	Background color.RGBA
	// Margin is the space in pixels between the text and the bar edges
	Margin int
}

// DefaultStatusFont returns small white text on a black bar
func DefaultStatusFont() StatusFont {
	return StatusFont{
		Face:       gocv.FontHersheySimplex,
		Scale:      0.5,
		Color:      White,
		Thickness:  1,
		Background: Black,
		Margin:     4,
	}
}

// statusBar returns the bar covering a line of text and the baseline
// origin of the text within it
func (f StatusFont) statusBar(text string) (image.Rectangle, image.Point) {

	size := gocv.GetTextSize(text, f.Face, f.Scale, f.Thickness)

	// descenders hang below the baseline by about a quarter of the height
	descent := size.Y/4 + f.Thickness

	bar := image.Rect(0, 0, size.X+2*f.Margin, size.Y+descent+2*f.Margin)

	return bar, image.Pt(f.Margin, f.Margin+size.Y)
}

// faceCache holds TrueType faces of the Go Regular font by pixel size, text
// drawables request sizes derived from the canvas height so only a few are
// ever created
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

// newFaceCache parses the embedded Go Regular font
func newFaceCache() (*faceCache, error) {

	f, err := opentype.Parse(goregular.TTF)

	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return &faceCache{
		font:  f,
		faces: make(map[int]font.Face),
	}, nil
}

// Face returns the type face for a pixel size
func (c *faceCache) Face(size int) (font.Face, error) {

	if size < 1 {
		size = 1
	}

	if face, ok := c.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create type face: %w", err)
	}

	c.faces[size] = face
	return face, nil
}

// Close releases all type faces
func (c *faceCache) Close() error {

	for size, face := range c.faces {
		face.Close()
		delete(c.faces, size)
	}

	return nil
}
