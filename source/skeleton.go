package source

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/swdee/go-kinectviz"
)

// pose is the standing pose joints are animated from, in meters relative to
// SpineBase with Y up
var pose = [kinectviz.JointCount]r3.Vec{
	kinectviz.SpineBase:     {X: 0, Y: 0, Z: 0},
	kinectviz.SpineMid:      {X: 0, Y: 0.30, Z: 0},
	kinectviz.Neck:          {X: 0, Y: 0.58, Z: 0},
	kinectviz.Head:          {X: 0, Y: 0.72, Z: 0},
	kinectviz.ShoulderLeft:  {X: -0.18, Y: 0.50, Z: 0},
	kinectviz.ElbowLeft:     {X: -0.25, Y: 0.25, Z: 0},
	kinectviz.WristLeft:     {X: -0.28, Y: 0.02, Z: 0},
	kinectviz.HandLeft:      {X: -0.29, Y: -0.05, Z: 0},
	kinectviz.ShoulderRight: {X: 0.18, Y: 0.50, Z: 0},
	kinectviz.ElbowRight:    {X: 0.25, Y: 0.25, Z: 0},
	kinectviz.WristRight:    {X: 0.28, Y: 0.02, Z: 0},
	kinectviz.HandRight:     {X: 0.29, Y: -0.05, Z: 0},
	kinectviz.HipLeft:       {X: -0.10, Y: -0.05, Z: 0},
	kinectviz.KneeLeft:      {X: -0.11, Y: -0.45, Z: 0},
	kinectviz.AnkleLeft:     {X: -0.11, Y: -0.85, Z: 0},
	kinectviz.FootLeft:      {X: -0.13, Y: -0.90, Z: -0.08},
	kinectviz.HipRight:      {X: 0.10, Y: -0.05, Z: 0},
	kinectviz.KneeRight:     {X: 0.11, Y: -0.45, Z: 0},
	kinectviz.AnkleRight:    {X: 0.11, Y: -0.85, Z: 0},
	kinectviz.FootRight:     {X: 0.13, Y: -0.90, Z: -0.08},
	kinectviz.SpineShoulder: {X: 0, Y: 0.52, Z: 0},
	kinectviz.HandTipLeft:   {X: -0.30, Y: -0.13, Z: 0},
	kinectviz.ThumbLeft:     {X: -0.25, Y: -0.06, Z: 0},
	kinectviz.HandTipRight:  {X: 0.30, Y: -0.13, Z: 0},
	kinectviz.ThumbRight:    {X: 0.25, Y: -0.06, Z: 0},
}

// rightHand are the joints raised when a body waves
var rightHand = []kinectviz.JointType{
	kinectviz.WristRight, kinectviz.HandRight, kinectviz.HandTipRight,
	kinectviz.ThumbRight,
}

// handStates are cycled through every two seconds
var handStates = []kinectviz.HandState{
	kinectviz.HandOpen, kinectviz.HandClosed, kinectviz.HandLasso,
}

// trackingIDBase offsets body tracking ids so they are never zero
const trackingIDBase = 1000

// animateBody returns the body of a tracking slot at time t seconds.  Each
// body sways side to side at its own phase and waves its right hand.
func animateBody(slot int, t float64) kinectviz.Body {

	phase := t + float64(slot)
	origin := r3.Vec{
		X: -0.6 + 0.6*float64(slot%3) + 0.3*math.Sin(phase*0.5),
		Y: 0,
		Z: 2.0 + 0.4*float64(slot/3),
	}

	wave := 0.35 * math.Max(0, math.Sin(phase*1.3))

	b := kinectviz.Body{
		TrackingID:          trackingIDBase + uint64(slot),
		IsTracked:           true,
		HandLeftState:       handStates[int(t/2)%len(handStates)],
		HandLeftConfidence:  kinectviz.ConfidenceHigh,
		HandRightState:      handStates[(int(t/2)+1)%len(handStates)],
		HandRightConfidence: kinectviz.ConfidenceLow,
	}

	for jt := range b.Joints {
		b.Joints[jt] = kinectviz.Joint{
			Position:      r3.Add(origin, pose[jt]),
			TrackingState: kinectviz.Tracked,
		}
	}

	for _, jt := range rightHand {
		b.Joints[jt].Position.Y += wave
	}

	// feet drop to inferred now and then
	if math.Sin(phase*0.7) > 0.8 {
		b.Joints[kinectviz.FootLeft].TrackingState = kinectviz.Inferred
		b.Joints[kinectviz.FootRight].TrackingState = kinectviz.Inferred
	}

	return b
}

// clippedEdges returns the frame edges the projected joints fall outside of
func clippedEdges(points []kinectviz.DepthSpacePoint, width, height int) kinectviz.FrameEdges {

	var edges kinectviz.FrameEdges

	for _, p := range points {
		if p.IsUnmapped() {
			continue
		}

		if p.X < 0 {
			edges |= kinectviz.EdgeLeft
		}

		if p.X >= float32(width) {
			edges |= kinectviz.EdgeRight
		}

		if p.Y < 0 {
			edges |= kinectviz.EdgeTop
		}

		if p.Y >= float32(height) {
			edges |= kinectviz.EdgeBottom
		}
	}

	return edges
}
