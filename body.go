package kinectviz

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// JointType identifies a joint of a tracked body
type JointType int

const (
	SpineBase JointType = iota
	SpineMid
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	SpineShoulder
	HandTipLeft
	ThumbLeft
	HandTipRight
	ThumbRight
)

// JointCount is the number of joints reported for every body
const JointCount = 25

var jointNames = [JointCount]string{
	"SpineBase", "SpineMid", "Neck", "Head", "ShoulderLeft", "ElbowLeft",
	"WristLeft", "HandLeft", "ShoulderRight", "ElbowRight", "WristRight",
	"HandRight", "HipLeft", "KneeLeft", "AnkleLeft", "FootLeft", "HipRight",
	"KneeRight", "AnkleRight", "FootRight", "SpineShoulder", "HandTipLeft",
	"ThumbLeft", "HandTipRight", "ThumbRight",
}

// String returns the joint name
func (j JointType) String() string {
	if j < 0 || int(j) >= JointCount {
		return "Unknown"
	}
	return jointNames[j]
}

// TrackingState is the tracking quality of a single joint
type TrackingState int

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

// HandState is the gesture state of a hand
type HandState int

const (
	HandUnknown HandState = iota
	HandNotTracked
	HandOpen
	HandClosed
	HandLasso
)

// TrackingConfidence is the confidence of a reported HandState
type TrackingConfidence int

const (
	ConfidenceLow TrackingConfidence = iota
	ConfidenceHigh
)

// FrameEdges is a bit set of the frame edges a body is clipped by
type FrameEdges int

const (
	EdgeNone   FrameEdges = 0
	EdgeRight  FrameEdges = 1
	EdgeLeft   FrameEdges = 2
	EdgeTop    FrameEdges = 4
	EdgeBottom FrameEdges = 8
)

// Has returns true if all the edges in e are set
func (f FrameEdges) Has(e FrameEdges) bool {
	return f&e == e
}

// Joint is a single body joint in camera space
type Joint struct {
	// Position in camera space, in meters
	Position r3.Vec
	// TrackingState of the joint position
	TrackingState TrackingState
}

// Body holds the skeletal data of a single tracking slot.  A Body which is
// not tracked keeps its slot, it is simply reported with IsTracked false.
type Body struct {
	// TrackingID is stable for as long as the body is tracked
	TrackingID uint64
	// IsTracked is true when the sensor is tracking a body in this slot
	IsTracked bool
	// Joints indexed by JointType
	Joints [JointCount]Joint
	// hand gesture states and their confidence
	HandLeftState       HandState
	HandLeftConfidence  TrackingConfidence
	HandRightState      HandState
	HandRightConfidence TrackingConfidence
	// ClippedEdges are the frame edges the body geometry touches
	ClippedEdges FrameEdges
}
