package source

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/face"
	"github.com/swdee/go-kinectviz/scene"
)

// face geometry relative to the Head joint, in meters
const (
	faceWidth  = 0.16
	faceHeight = 0.22
)

// landmarks are the face points relative to the Head joint
var landmarks = [face.PointCount]r3.Vec{
	face.EyeLeft:          {X: -0.035, Y: 0.03},
	face.EyeRight:         {X: 0.035, Y: 0.03},
	face.Nose:             {X: 0, Y: -0.01},
	face.MouthCornerLeft:  {X: -0.03, Y: -0.055},
	face.MouthCornerRight: {X: 0.03, Y: -0.055},
}

// FaceTracker produces face results for the bodies whose tracking ids have
// been bound to its slots.  A slot is released once its body is lost.
type FaceTracker struct {
	mapper *PinholeMapper

	mu      sync.Mutex
	ids     []uint64
	results []*face.Result
}

// NewFaceTracker returns a tracker with one slot per body
func NewFaceTracker(mapper *PinholeMapper, slots int) *FaceTracker {
	return &FaceTracker{
		mapper:  mapper,
		ids:     make([]uint64, slots),
		results: make([]*face.Result, slots),
	}
}

// TrackingIDValid reports whether a body is bound to slot
func (f *FaceTracker) TrackingIDValid(slot int) bool {

	f.mu.Lock()
	defer f.mu.Unlock()

	if slot < 0 || slot >= len(f.ids) {
		return false
	}

	return f.ids[slot] != 0
}

// SetTrackingID binds the body with tracking id to slot
func (f *FaceTracker) SetTrackingID(slot int, id uint64) {

	f.mu.Lock()
	defer f.mu.Unlock()

	if slot < 0 || slot >= len(f.ids) {
		return
	}

	f.ids[slot] = id
}

// LatestResults returns the face result of every slot, nil where no face is
// tracked
func (f *FaceTracker) LatestResults() []*face.Result {

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*face.Result, len(f.results))
	copy(out, f.results)

	return out
}

// update recomputes the result of every bound slot from the bodies at time
// t seconds
func (f *FaceTracker) update(bodies []kinectviz.Body, t float64) {

	f.mu.Lock()
	defer f.mu.Unlock()

	for slot := range f.ids {
		f.results[slot] = nil

		if f.ids[slot] == 0 {
			continue
		}

		if slot >= len(bodies) || !bodies[slot].IsTracked ||
			bodies[slot].TrackingID != f.ids[slot] {
			f.ids[slot] = 0
			continue
		}

		f.results[slot] = f.compute(slot, &bodies[slot], t)
	}
}

func (f *FaceTracker) compute(slot int, b *kinectviz.Body, t float64) *face.Result {

	head := b.Joints[kinectviz.Head]

	if head.TrackingState == kinectviz.NotTracked || head.Position.Z <= 0 {
		return nil
	}

	phase := t + float64(slot)

	res := &face.Result{
		TrackingID:     b.TrackingID,
		PointsColor:    make(map[face.PointType]scene.Point, face.PointCount),
		PointsInfrared: make(map[face.PointType]scene.Point, face.PointCount),
		Rotation: quat.Mul(
			axisAngle(r3.Vec{Y: 1}, 20*math.Sin(phase*0.8)),
			axisAngle(r3.Vec{X: 1}, 10*math.Sin(phase*0.5)),
		),
		Properties: map[face.Property]face.DetectionResult{
			face.PropertyHappy:          detect(math.Sin(phase * 0.3)),
			face.PropertyEngaged:        face.DetectionYes,
			face.PropertyWearingGlasses: face.DetectionNo,
			face.PropertyLeftEyeClosed:  blink(phase),
			face.PropertyRightEyeClosed: blink(phase),
			face.PropertyMouthOpen:      detect(math.Sin(phase * 1.1)),
			face.PropertyMouthMoved:     detect(math.Sin(phase * 1.7)),
			face.PropertyLookingAway:    face.DetectionMaybe,
		},
	}

	tl := f.mapper.MapCameraPointToDepthSpace(r3.Add(head.Position,
		r3.Vec{X: -faceWidth / 2, Y: faceHeight / 2}))
	br := f.mapper.MapCameraPointToDepthSpace(r3.Add(head.Position,
		r3.Vec{X: faceWidth / 2, Y: -faceHeight / 2}))

	res.BoxInfrared = face.Rect{
		Left:   int(math.Round(float64(tl.X))),
		Top:    int(math.Round(float64(tl.Y))),
		Right:  int(math.Round(float64(br.X))),
		Bottom: int(math.Round(float64(br.Y))),
	}

	l, tp := f.mapper.DepthToColor(float64(tl.X), float64(tl.Y))
	r, bt := f.mapper.DepthToColor(float64(br.X), float64(br.Y))

	res.BoxColor = face.Rect{
		Left:   int(math.Round(l)),
		Top:    int(math.Round(tp)),
		Right:  int(math.Round(r)),
		Bottom: int(math.Round(bt)),
	}

	for pt, off := range landmarks {
		p := f.mapper.MapCameraPointToDepthSpace(r3.Add(head.Position, off))
		x, y := float64(p.X), float64(p.Y)

		res.PointsInfrared[face.PointType(pt)] = scene.Point{X: x, Y: y}

		cx, cy := f.mapper.DepthToColor(x, y)
		res.PointsColor[face.PointType(pt)] = scene.Point{X: cx, Y: cy}
	}

	return res
}

// axisAngle returns the unit quaternion rotating deg degrees about axis
func axisAngle(axis r3.Vec, deg float64) quat.Number {

	half := deg * math.Pi / 360
	s := math.Sin(half)

	return quat.Number{
		Real: math.Cos(half),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}
}

// detect maps a signal in -1..1 to a detection result
func detect(v float64) face.DetectionResult {

	switch {
	case v > 0.5:
		return face.DetectionYes
	case v > 0.2:
		return face.DetectionMaybe
	}

	return face.DetectionNo
}

// blink closes the eyes for a short time every few seconds
func blink(phase float64) face.DetectionResult {

	if math.Mod(phase, 4) < 0.25 {
		return face.DetectionYes
	}

	return face.DetectionNo
}
