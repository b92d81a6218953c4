// Package skeleton renders tracked bodies as joints, bones and hand state
// indicators, plus indicators for the frame edges bodies are clipped by.
package skeleton

import (
	"fmt"
	"image/color"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/scene"
)

// Params defines the sizes used when drawing bodies
type Params struct {
	// JointSize is the diameter of a joint
	JointSize float64
	// TrackedBoneThickness is used for bones with both joints tracked
	TrackedBoneThickness float64
	// InferredBoneThickness is used for bones with an inferred joint
	InferredBoneThickness float64
	// HighConfidenceHandSize and LowConfidenceHandSize are the diameters of
	// the hand state indicators
	HighConfidenceHandSize float64
	LowConfidenceHandSize  float64
	// ClipBoundsThickness is the thickness of the clipped edge indicators
	ClipBoundsThickness float64
	// InferredZPositionClamp replaces negative joint depths, which the
	// coordinate mapper can not project
	InferredZPositionClamp float64
}

// DefaultParams returns the standard body drawing sizes
func DefaultParams() Params {
	return Params{
		JointSize:              8.0,
		TrackedBoneThickness:   4.0,
		InferredBoneThickness:  1.0,
		HighConfidenceHandSize: 40,
		LowConfidenceHandSize:  20,
		ClipBoundsThickness:    5,
		InferredZPositionClamp: 0.1,
	}
}

// bodyColors are assigned to tracking slots in order
var bodyColors = []color.RGBA{
	scene.Red,
	scene.Orange,
	scene.Green,
	scene.Blue,
	scene.Indigo,
	scene.Violet,
}

// Overlay keeps the drawables of every tracking slot in sync with the
// latest body frame
type Overlay struct {
	params Params
	mapper kinectviz.CoordinateMapper
	canvas *scene.Scene
	// bodies is the fixed arena of slot visuals
	bodies []*BodyVisual
	// edges are the clip indicators indexed by edgeLeft..edgeBottom
	edges [4]*scene.Drawable
	// points is scratch space for the mapped joints of the current body
	points [kinectviz.JointCount]scene.Point
}

const (
	edgeLeft = iota
	edgeRight
	edgeTop
	edgeBottom
)

// NewOverlay creates the drawables for bodyCount tracking slots and the
// clip edge indicators and adds them to canvas, all collapsed
func NewOverlay(mapper kinectviz.CoordinateMapper, canvas *scene.Scene,
	bodyCount int, p Params) (*Overlay, error) {

	if bodyCount <= 0 {
		return nil, fmt.Errorf("body count must be > 0, got %d", bodyCount)
	}

	if mapper == nil {
		return nil, fmt.Errorf("coordinate mapper is required")
	}

	o := &Overlay{
		params: p,
		mapper: mapper,
		canvas: canvas,
		bodies: make([]*BodyVisual, bodyCount),
	}

	for i := range o.bodies {
		o.bodies[i] = newBodyVisual(bodyColors[i%len(bodyColors)], p.JointSize)
		o.bodies[i].attach(canvas)
	}

	thick := p.ClipBoundsThickness

	o.edges[edgeLeft] = &scene.Drawable{
		Kind: scene.Rectangle, Fill: scene.Red,
		Left: 0, Top: 0, Width: thick, Height: canvas.Height,
	}
	o.edges[edgeRight] = &scene.Drawable{
		Kind: scene.Rectangle, Fill: scene.Red,
		Left: canvas.Width - thick, Top: 0, Width: thick, Height: canvas.Height,
	}
	o.edges[edgeTop] = &scene.Drawable{
		Kind: scene.Rectangle, Fill: scene.Red,
		Left: 0, Top: 0, Width: canvas.Width, Height: thick,
	}
	o.edges[edgeBottom] = &scene.Drawable{
		Kind: scene.Rectangle, Fill: scene.Red,
		Left: 0, Top: canvas.Height - thick, Width: canvas.Width, Height: thick,
	}

	canvas.Add(o.edges[:]...)

	return o, nil
}

// BodyCount returns the number of tracking slots
func (o *Overlay) BodyCount() int {
	return len(o.bodies)
}

// Body returns the visual state of a tracking slot
func (o *Overlay) Body(slot int) *BodyVisual {
	return o.bodies[slot]
}

// ClipEdge returns the indicator for a single frame edge, one of EdgeLeft,
// EdgeRight, EdgeTop or EdgeBottom
func (o *Overlay) ClipEdge(edge kinectviz.FrameEdges) *scene.Drawable {
	switch edge {
	case kinectviz.EdgeLeft:
		return o.edges[edgeLeft]
	case kinectviz.EdgeRight:
		return o.edges[edgeRight]
	case kinectviz.EdgeTop:
		return o.edges[edgeTop]
	case kinectviz.EdgeBottom:
		return o.edges[edgeBottom]
	}
	return nil
}

// UpdateBodies updates all joints, bones, hands and clip edges from the
// bodies of a single frame.  bodies are indexed by tracking slot; bodies
// beyond the slot count are ignored and slots without a body collapse.
func (o *Overlay) UpdateBodies(bodies []kinectviz.Body) {

	hasTrackedBody := false

	for i := range bodies {

		if i >= len(o.bodies) {
			break
		}

		body := &bodies[i]

		if body.IsTracked {
			o.updateClippedEdges(body.ClippedEdges, hasTrackedBody)
			o.updateBody(body, o.bodies[i])
			hasTrackedBody = true
		} else {
			// collapse the body as it goes out of view
			o.bodies[i].collapse()
		}
	}

	for i := len(bodies); i < len(o.bodies); i++ {
		o.bodies[i].collapse()
	}

	if !hasTrackedBody {
		o.clearClippedEdges()
	}
}

// updateBody maps every joint to depth space then updates the drawables of
// the slot
func (o *Overlay) updateBody(body *kinectviz.Body, b *BodyVisual) {

	b.Tracked = true

	for jt := range body.Joints {
		joint := &body.Joints[jt]

		// the depth of an inferred joint may show as negative, which maps
		// to (-inf, -inf)
		pos := joint.Position

		if pos.Z < 0 {
			pos.Z = o.params.InferredZPositionClamp
		}

		dsp := o.mapper.MapCameraPointToDepthSpace(pos)
		o.points[jt] = scene.Point{X: float64(dsp.X), Y: float64(dsp.Y)}

		o.updateJoint(b.Joints[jt], joint.TrackingState, o.points[jt])
	}

	o.updateHand(b.HandLeft, body.HandLeftState, body.HandLeftConfidence,
		o.points[kinectviz.HandLeft])
	o.updateHand(b.HandRight, body.HandRightState, body.HandRightConfidence,
		o.points[kinectviz.HandRight])

	for i, bone := range bones {
		o.updateBone(b.Bones[i],
			body.Joints[bone.Start].TrackingState, body.Joints[bone.End].TrackingState,
			o.points[bone.Start], o.points[bone.End])
	}
}

// updateJoint shows tracked joints green and inferred ones yellow
func (o *Overlay) updateJoint(d *scene.Drawable, state kinectviz.TrackingState,
	pt scene.Point) {

	if state == kinectviz.NotTracked {
		d.Visible = false
		return
	}

	if state == kinectviz.Tracked {
		d.Fill = scene.Green
	} else {
		d.Fill = scene.Yellow
	}

	d.CenterOn(pt)
	d.Visible = true
}

// updateBone hides a bone unless both joints are at least inferred.  The
// bone is only drawn thick when both joints are tracked.
func (o *Overlay) updateBone(d *scene.Drawable, start, end kinectviz.TrackingState,
	from, to scene.Point) {

	if start == kinectviz.NotTracked || end == kinectviz.NotTracked {
		d.Visible = false
		return
	}

	d.StrokeWidth = o.params.InferredBoneThickness

	if start == kinectviz.Tracked && end == kinectviz.Tracked {
		d.StrokeWidth = o.params.TrackedBoneThickness
	}

	d.From = from
	d.To = to
	d.Visible = true
}

// updateHand colors the hand indicator by state and sizes it by confidence.
// An unmapped hand keeps its previous position.
func (o *Overlay) updateHand(d *scene.Drawable, state kinectviz.HandState,
	confidence kinectviz.TrackingConfidence, pt scene.Point) {

	d.Fill = HandStateColor(state)

	size := o.params.HighConfidenceHandSize

	if confidence == kinectviz.ConfidenceLow {
		size = o.params.LowConfidenceHandSize
	}

	d.Width = size
	d.Height = size
	d.Visible = true

	if !pt.IsInf() {
		d.CenterOn(pt)
	}
}

// updateClippedEdges shows the edges the body is clipped by.  An edge the
// body does not clip is only hidden while no earlier body in the frame was
// tracked, so a later body never clears an edge set by an earlier one.
func (o *Overlay) updateClippedEdges(clipped kinectviz.FrameEdges,
	hasTrackedBody bool) {

	set := func(d *scene.Drawable, edge kinectviz.FrameEdges) {
		if clipped.Has(edge) {
			d.Visible = true
		} else if !hasTrackedBody {
			d.Visible = false
		}
	}

	set(o.edges[edgeLeft], kinectviz.EdgeLeft)
	set(o.edges[edgeRight], kinectviz.EdgeRight)
	set(o.edges[edgeTop], kinectviz.EdgeTop)
	set(o.edges[edgeBottom], kinectviz.EdgeBottom)
}

// clearClippedEdges hides all clip indicators
func (o *Overlay) clearClippedEdges() {
	for _, d := range o.edges {
		d.Visible = false
	}
}

// HandStateColor returns the indicator color of a hand state
func HandStateColor(state kinectviz.HandState) color.RGBA {
	switch state {
	case kinectviz.HandOpen:
		return scene.Green
	case kinectviz.HandClosed:
		return scene.Red
	case kinectviz.HandLasso:
		return scene.Blue
	}

	return scene.Transparent
}
