package face

import (
	"github.com/swdee/go-kinectviz/scene"
)

// sprite asset names
const (
	AssetEyeOpen   = "CatEye_left_open.png"
	AssetEyeClosed = "CatEye_left_closed.png"
	AssetNose      = "CatNose.png"
)

// CatMaskParams sizes the mask sprites
type CatMaskParams struct {
	EyeWidth   float64
	EyeHeight  float64
	NoseWidth  float64
	NoseHeight float64
}

// DefaultCatMaskParams returns the standard sprite sizes
func DefaultCatMaskParams() CatMaskParams {
	return CatMaskParams{
		EyeWidth:   30,
		EyeHeight:  20,
		NoseWidth:  40,
		NoseHeight: 25,
	}
}

// CatMask draws cat eyes and a nose over the infrared landmarks of every
// face.  Eyes switch to the closed sprite when the tracker reports the eye
// as closed or maybe closed.
type CatMask struct {
	params CatMaskParams
	canvas *scene.Scene
}

// NewCatMask returns a mask drawing onto canvas
func NewCatMask(canvas *scene.Scene, p CatMaskParams) *CatMask {
	return &CatMask{
		params: p,
		canvas: canvas,
	}
}

// Update clears the canvas and draws the mask of every non nil result
func (c *CatMask) Update(results []*Result) {

	c.canvas.Clear()

	for _, res := range results {
		if res == nil {
			continue
		}

		c.drawEye(res, EyeLeft, PropertyLeftEyeClosed, false)
		// the left eye asset is mirrored for the right eye
		c.drawEye(res, EyeRight, PropertyRightEyeClosed, true)
		c.drawNose(res)
	}
}

func (c *CatMask) drawEye(res *Result, pt PointType, prop Property, flip bool) {

	p, ok := res.PointsInfrared[pt]

	if !ok {
		return
	}

	asset := AssetEyeOpen

	if eyeClosed(res.Property(prop)) {
		asset = AssetEyeClosed
	}

	d := &scene.Drawable{
		Kind:    scene.Sprite,
		Width:   c.params.EyeWidth,
		Height:  c.params.EyeHeight,
		Asset:   asset,
		FlipX:   flip,
		Visible: true,
	}
	d.CenterOn(p)

	c.canvas.Add(d)
}

// drawNose hangs the nose sprite below the nose landmark
func (c *CatMask) drawNose(res *Result) {

	p, ok := res.PointsInfrared[Nose]

	if !ok {
		return
	}

	c.canvas.Add(&scene.Drawable{
		Kind:    scene.Sprite,
		Left:    p.X - c.params.NoseWidth/2,
		Top:     p.Y,
		Width:   c.params.NoseWidth,
		Height:  c.params.NoseHeight,
		Asset:   AssetNose,
		Visible: true,
	})
}

func eyeClosed(d DetectionResult) bool {
	return d == DetectionYes || d == DetectionMaybe
}
