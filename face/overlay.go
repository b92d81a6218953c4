// Package face draws face tracking results, bounding boxes, landmarks and a
// text block of rotation angles and face properties, onto a scene.
package face

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/swdee/go-kinectviz/scene"
)

// Params defines how face results are drawn
type Params struct {
	// BoxStrokeWidth is the outline thickness of a bounding box, the box is
	// also grown by this amount so the stroke does not cover the face
	BoxStrokeWidth int
	// ColorPointSize and InfraredPointSize are the landmark diameters
	ColorPointSize    float64
	InfraredPointSize float64
	// FontScale is the text size as a fraction of the canvas height
	FontScale float64
	// Colors are assigned to body slots in order
	Colors []color.RGBA
}

// DefaultParams returns the standard face drawing parameters
func DefaultParams() Params {
	return Params{
		BoxStrokeWidth:    7,
		ColorPointSize:    10,
		InfraredPointSize: 3,
		FontScale:         0.023,
		Colors: []color.RGBA{
			scene.Red,
			scene.Orange,
			scene.Green,
			scene.LightBlue,
			scene.Indigo,
			scene.Violet,
		},
	}
}

// textProperties is the order properties are listed in the text block
var textProperties = []struct {
	feature  Features
	property Property
}{
	{FaceEngagement, PropertyEngaged},
	{Glasses, PropertyWearingGlasses},
	{Happy, PropertyHappy},
	{LeftEyeClosed, PropertyLeftEyeClosed},
	{RightEyeClosed, PropertyRightEyeClosed},
	{LookingAway, PropertyLookingAway},
	{MouthMoved, PropertyMouthMoved},
	{MouthOpen, PropertyMouthOpen},
}

// Overlay redraws the face canvas from the latest results of every slot
type Overlay struct {
	params Params
	canvas *scene.Scene
}

// NewOverlay returns an overlay drawing onto canvas
func NewOverlay(canvas *scene.Scene, p Params) *Overlay {

	if len(p.Colors) == 0 {
		p.Colors = DefaultParams().Colors
	}

	return &Overlay{
		params: p,
		canvas: canvas,
	}
}

// Update clears the canvas then draws the requested features of every
// result.  results are indexed by body slot and nil entries are skipped.
func (o *Overlay) Update(results []*Result, features Features) {

	o.canvas.Clear()

	if !drawable(o.canvas) {
		return
	}

	for i, res := range results {
		if res == nil {
			continue
		}

		o.drawResult(res, features, o.params.Colors[i%len(o.params.Colors)], i)
	}
}

// drawable returns false for a canvas without a usable size
func drawable(s *scene.Scene) bool {
	return s.Width > 0 && s.Height > 0 &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

// drawResult adds the drawables of a single face
func (o *Overlay) drawResult(res *Result, features Features, clr color.RGBA,
	slot int) {

	fontSize := int(o.canvas.Height * o.params.FontScale)
	msgPos := scene.Point{X: float64(fontSize * slot * 10), Y: 0}

	// the text block follows the last bounding box drawn
	if features.Has(BoundingBoxInColorSpace) {
		msgPos = o.drawBox(res.BoxColor, clr)
	}

	if features.Has(BoundingBoxInInfraredSpace) {
		msgPos = o.drawBox(res.BoxInfrared, clr)
	}

	if features.Has(PointsInColorSpace) {
		o.drawPoints(res.PointsColor, o.params.ColorPointSize, clr)
	}

	if features.Has(PointsInInfraredSpace) {
		o.drawPoints(res.PointsInfrared, o.params.InfraredPointSize, clr)
	}

	msg, ok := Messages(res, features)

	if !ok {
		return
	}

	o.canvas.Add(&scene.Drawable{
		Kind:     scene.Text,
		Left:     msgPos.X,
		Top:      msgPos.Y,
		Text:     msg,
		FontSize: float64(fontSize),
		Fill:     clr,
		Visible:  true,
	})
}

// drawBox adds a bounding box outline and returns the position below it
func (o *Overlay) drawBox(r Rect, clr color.RGBA) scene.Point {

	stroke := o.params.BoxStrokeWidth
	width := r.Right - r.Left + stroke
	height := r.Bottom - r.Top + stroke

	o.canvas.Add(&scene.Drawable{
		Kind:        scene.Rectangle,
		Left:        float64(r.Left),
		Top:         float64(r.Top),
		Width:       float64(width),
		Height:      float64(height),
		Stroke:      clr,
		StrokeWidth: float64(stroke),
		Visible:     true,
	})

	return scene.Point{X: float64(r.Left), Y: float64(r.Top + height)}
}

// drawPoints adds a filled circle per landmark, in PointType order
func (o *Overlay) drawPoints(points map[PointType]scene.Point, size float64,
	clr color.RGBA) {

	for pt := PointType(0); pt < PointCount; pt++ {
		p, ok := points[pt]

		if !ok {
			continue
		}

		d := &scene.Drawable{
			Kind:    scene.Ellipse,
			Width:   size,
			Height:  size,
			Fill:    clr,
			Visible: true,
		}
		d.CenterOn(p)

		o.canvas.Add(d)
	}
}

// Messages returns the text block of a face, the rotation angles followed
// by the requested properties.  ok is false if no text was requested.
func Messages(res *Result, features Features) (msg string, ok bool) {

	var sb strings.Builder

	if features.Has(RotationOrientation) {
		pitch, yaw, roll := ExtractRotationInDegrees(res.Rotation)

		fmt.Fprintf(&sb, "Rotation Pitch: %d\n", pitch)
		fmt.Fprintf(&sb, "Rotation Yaw: %d\n", yaw)
		fmt.Fprintf(&sb, "Rotation Roll: %d\n", roll)
		ok = true
	}

	for _, tp := range textProperties {
		if !features.Has(tp.feature) {
			continue
		}

		fmt.Fprintf(&sb, "%s: %s\n", tp.property, res.Property(tp.property))
		ok = true
	}

	return sb.String(), ok
}
