package face

import (
	"fmt"
	"strings"
)

// Features is a bit set of the face tracking results requested from the
// tracker and drawn by the Overlay
type Features int

const (
	BoundingBoxInInfraredSpace Features = 1 << iota
	PointsInInfraredSpace
	BoundingBoxInColorSpace
	PointsInColorSpace
	RotationOrientation
	Happy
	RightEyeClosed
	LeftEyeClosed
	MouthOpen
	MouthMoved
	LookingAway
	Glasses
	FaceEngagement
)

// featureNames in bit order
var featureNames = []struct {
	feature Features
	name    string
}{
	{BoundingBoxInInfraredSpace, "BoundingBoxInInfraredSpace"},
	{PointsInInfraredSpace, "PointsInInfraredSpace"},
	{BoundingBoxInColorSpace, "BoundingBoxInColorSpace"},
	{PointsInColorSpace, "PointsInColorSpace"},
	{RotationOrientation, "RotationOrientation"},
	{Happy, "Happy"},
	{RightEyeClosed, "RightEyeClosed"},
	{LeftEyeClosed, "LeftEyeClosed"},
	{MouthOpen, "MouthOpen"},
	{MouthMoved, "MouthMoved"},
	{LookingAway, "LookingAway"},
	{Glasses, "Glasses"},
	{FaceEngagement, "FaceEngagement"},
}

// ColorFeatures is the feature set drawn over color frames
const ColorFeatures = BoundingBoxInColorSpace | PointsInColorSpace |
	RotationOrientation | FaceEngagement | Glasses | Happy | LeftEyeClosed |
	RightEyeClosed | LookingAway | MouthMoved | MouthOpen

// InfraredFeatures is the feature set drawn over infrared frames
const InfraredFeatures = BoundingBoxInInfraredSpace | PointsInInfraredSpace |
	RotationOrientation

// Has returns true if all the features in f are set
func (s Features) Has(f Features) bool {
	return s&f == f
}

// String returns the set feature names joined with '|'
func (s Features) String() string {

	parts := make([]string, 0, len(featureNames))

	for _, fn := range featureNames {
		if s.Has(fn.feature) {
			parts = append(parts, fn.name)
		}
	}

	if len(parts) == 0 {
		return "None"
	}

	return strings.Join(parts, "|")
}

// ParseFeatures combines features given by name, names are matched case
// insensitively
func ParseFeatures(names []string) (Features, error) {

	var f Features

next:
	for _, name := range names {
		name = strings.TrimSpace(name)

		for _, fn := range featureNames {
			if strings.EqualFold(fn.name, name) {
				f |= fn.feature
				continue next
			}
		}

		return 0, fmt.Errorf("unknown face feature %q", name)
	}

	return f, nil
}
