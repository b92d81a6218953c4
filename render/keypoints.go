package render

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/swdee/go-kinectviz/scene"
)

// Ellipse renders an ellipse drawable, joints, hands and face landmarks
func Ellipse(img *gocv.Mat, d *scene.Drawable) {

	c := d.Center()

	if c.IsInf() || math.IsNaN(c.X) || math.IsNaN(c.Y) {
		return
	}

	center := image.Pt(round(c.X), round(c.Y))
	axes := image.Pt(int(math.Max(1, math.Round(d.Width/2))),
		int(math.Max(1, math.Round(d.Height/2))))

	if visible(d.Fill) {
		gocv.Ellipse(img, center, axes, 0, 0, 360, d.Fill, -1)
	}

	if visible(d.Stroke) && d.StrokeWidth > 0 {
		gocv.Ellipse(img, center, axes, 0, 0, 360, d.Stroke, thickness(d.StrokeWidth))
	}
}

// Line renders a line drawable, the bones of a skeleton
func Line(img *gocv.Mat, d *scene.Drawable) {

	if d.From.IsInf() || d.To.IsInf() || !visible(d.Stroke) {
		return
	}

	gocv.Line(img, image.Pt(round(d.From.X), round(d.From.Y)),
		image.Pt(round(d.To.X), round(d.To.Y)), d.Stroke, thickness(d.StrokeWidth))
}

// thickness converts a stroke width to a whole pixel line thickness
func thickness(w float64) int {
	return int(math.Max(1, math.Round(w)))
}
