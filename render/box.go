package render

import (
	"image"
	"math"

	clipper "github.com/ctessum/go.clipper"
	"gocv.io/x/gocv"

	"github.com/swdee/go-kinectviz/scene"
)

// clipperScale is the fixed point scale used for clipper's integer
// coordinates
const clipperScale = 16

// Rectangle renders a rectangle drawable.  The fill covers the bounding box
// and the stroke is drawn inside it with rounded outer corners.
func Rectangle(img *gocv.Mat, d *scene.Drawable) {

	if visible(d.Fill) {
		rect := image.Rect(round(d.Left), round(d.Top),
			round(d.Left+d.Width), round(d.Top+d.Height))
		gocv.Rectangle(img, rect, d.Fill, -1)
	}

	if !visible(d.Stroke) || d.StrokeWidth <= 0 {
		return
	}

	contours := strokeOutline(d.Left, d.Top, d.Width, d.Height, d.StrokeWidth)

	if len(contours) == 0 {
		return
	}

	pv := gocv.NewPointsVectorFromPoints(contours)
	defer pv.Close()

	// the inner contour leaves a hole in the outer one
	gocv.FillPoly(img, pv, d.Stroke)
}

// strokeOutline returns the outer and inner contours of a stroke of the
// given thickness running inside a rectangle.  The outer corners are
// rounded, the inner contour is omitted when the stroke fills the box.
func strokeOutline(left, top, width, height, stroke float64) [][]image.Point {

	half := stroke / 2

	// the stroke center line
	l, t := left+half, top+half
	r, b := left+width-half, top+height-half

	if r < l {
		r = l
	}

	if b < t {
		b = t
	}

	path := clipper.Path{
		clipperPoint(l, t),
		clipperPoint(r, t),
		clipperPoint(r, b),
		clipperPoint(l, b),
	}

	outer := offsetPath(path, half)
	inner := offsetPath(path, -half)

	contours := make([][]image.Point, 0, len(outer)+len(inner))
	contours = append(contours, outer...)
	contours = append(contours, inner...)

	return contours
}

// offsetPath grows (or shrinks for a negative delta) a closed path with
// round joins
func offsetPath(path clipper.Path, delta float64) [][]image.Point {

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	solution := co.Execute(delta * clipperScale)

	contours := make([][]image.Point, 0, len(solution))

	for _, sol := range solution {
		if len(sol) < 3 {
			continue
		}

		points := make([]image.Point, 0, len(sol))

		for _, pt := range sol {
			points = append(points, image.Point{
				X: round(float64(pt.X) / clipperScale),
				Y: round(float64(pt.Y) / clipperScale),
			})
		}

		contours = append(contours, points)
	}

	return contours
}

func clipperPoint(x, y float64) *clipper.IntPoint {
	return &clipper.IntPoint{
		X: clipper.CInt(math.Round(x * clipperScale)),
		Y: clipper.CInt(math.Round(y * clipperScale)),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
