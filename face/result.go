package face

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/scene"
)

// Property is a face state the tracker classifies
type Property int

const (
	PropertyHappy Property = iota
	PropertyEngaged
	PropertyWearingGlasses
	PropertyLeftEyeClosed
	PropertyRightEyeClosed
	PropertyMouthOpen
	PropertyMouthMoved
	PropertyLookingAway
)

var propertyNames = [...]string{
	"Happy", "Engaged", "WearingGlasses", "LeftEyeClosed", "RightEyeClosed",
	"MouthOpen", "MouthMoved", "LookingAway",
}

// String returns the property name
func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return "Unknown"
	}
	return propertyNames[p]
}

// DetectionResult is the classification of a Property
type DetectionResult int

const (
	DetectionUnknown DetectionResult = iota
	DetectionNo
	DetectionMaybe
	DetectionYes
)

// String returns the result name
func (d DetectionResult) String() string {
	switch d {
	case DetectionNo:
		return "No"
	case DetectionMaybe:
		return "Maybe"
	case DetectionYes:
		return "Yes"
	}
	return "Unknown"
}

// PointType identifies a face landmark
type PointType int

const (
	EyeLeft PointType = iota
	EyeRight
	Nose
	MouthCornerLeft
	MouthCornerRight
)

// PointCount is the number of face landmarks
const PointCount = 5

// Rect is a face bounding box in pixels
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Result is the latest face tracking result of a single slot
type Result struct {
	// TrackingID of the body the face belongs to
	TrackingID uint64
	// BoxColor and BoxInfrared are the bounding boxes in color and infrared
	// space
	BoxColor    Rect
	BoxInfrared Rect
	// PointsColor and PointsInfrared are the landmarks in color and
	// infrared space, landmarks not detected are absent
	PointsColor    map[PointType]scene.Point
	PointsInfrared map[PointType]scene.Point
	// Rotation of the face as a unit quaternion
	Rotation quat.Number
	// Properties missing from the map are DetectionUnknown
	Properties map[Property]DetectionResult
}

// Property returns the detection result of a face property
func (r *Result) Property(p Property) DetectionResult {
	return r.Properties[p]
}

// Source delivers face tracking results, one face tracker per body slot
type Source interface {
	// TrackingIDValid returns true if the slot tracker is bound to a body
	TrackingIDValid(slot int) bool
	// SetTrackingID binds the slot tracker to a body
	SetTrackingID(slot int, id uint64)
	// LatestResults returns the newest result of every slot, nil where no
	// face is tracked
	LatestResults() []*Result
}

// BindTrackingIDs binds every unbound face tracker to the tracked body in
// the same slot
func BindTrackingIDs(src Source, bodies []kinectviz.Body) {

	for i := range bodies {
		if src.TrackingIDValid(i) {
			continue
		}

		if bodies[i].IsTracked {
			src.SetTrackingID(i, bodies[i].TrackingID)
		}
	}
}
