// Package scene defines the drawable primitives an overlay is built from.
// A Scene is retained between frames, overlays mutate their drawables in
// place and a renderer paints whatever is visible.
package scene

import (
	"image/color"
	"math"
)

// Kind is the type of primitive a Drawable renders as
type Kind int

const (
	Ellipse Kind = iota
	Line
	Rectangle
	Text
	Sprite
)

// Point is a location on the drawing surface
type Point struct {
	X float64
	Y float64
}

// IsInf returns true if either coordinate is infinite
func (p Point) IsInf() bool {
	return math.IsInf(p.X, 0) || math.IsInf(p.Y, 0)
}

// Drawable is a single primitive on the drawing surface
type Drawable struct {
	Kind Kind
	// Left and Top position the bounding box of an Ellipse, Rectangle,
	// Text or Sprite
	Left float64
	Top  float64
	// Width and Height size the bounding box
	Width  float64
	Height float64
	// From and To are the end points of a Line
	From Point
	To   Point
	// Fill is the interior color, a zero alpha means no fill
	Fill color.RGBA
	// Stroke is the outline color and StrokeWidth its thickness
	Stroke      color.RGBA
	StrokeWidth float64
	// Visible drawables are rendered, collapsed ones are skipped
	Visible bool
	// Text and FontSize are used by a Text drawable
	Text     string
	FontSize float64
	// Asset names the image a Sprite renders, FlipX mirrors it horizontally
	Asset string
	FlipX bool
}

// CenterOn positions the bounding box so it is centered on p
func (d *Drawable) CenterOn(p Point) {
	d.Left = p.X - d.Width/2
	d.Top = p.Y - d.Height/2
}

// Center returns the center of the bounding box
func (d *Drawable) Center() Point {
	return Point{X: d.Left + d.Width/2, Y: d.Top + d.Height/2}
}

// Scene is an ordered list of drawables, painted first to last, on a
// surface of a given size
type Scene struct {
	Width  float64
	Height float64
	items  []*Drawable
}

// New returns an empty scene for a surface of the given size
func New(width, height float64) *Scene {
	return &Scene{
		Width:  width,
		Height: height,
		items:  make([]*Drawable, 0),
	}
}

// Add appends drawables to the scene and returns the last one added
func (s *Scene) Add(d ...*Drawable) *Drawable {
	s.items = append(s.items, d...)

	if len(d) == 0 {
		return nil
	}

	return d[len(d)-1]
}

// Clear removes all drawables, keeping the allocated capacity
func (s *Scene) Clear() {
	for i := range s.items {
		s.items[i] = nil
	}
	s.items = s.items[:0]
}

// Items returns the drawables in paint order
func (s *Scene) Items() []*Drawable {
	return s.items
}

// Len returns the number of drawables
func (s *Scene) Len() int {
	return len(s.items)
}

// Visible returns the number of visible drawables
func (s *Scene) Visible() int {
	n := 0

	for _, d := range s.items {
		if d.Visible {
			n++
		}
	}

	return n
}
