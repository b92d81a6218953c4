package skeleton

import (
	"image/color"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/scene"
)

// BodyVisual holds the drawables of a single tracking slot.  They are
// created once and collapsed rather than removed when the body is lost.
type BodyVisual struct {
	// Color assigned to the slot
	Color color.RGBA
	// Tracked is the current state of the slot
	Tracked bool
	// Joints indexed by JointType
	Joints [kinectviz.JointCount]*scene.Drawable
	// Bones in the same order as Bones()
	Bones [BoneCount]*scene.Drawable
	// HandLeft and HandRight show the hand states
	HandLeft  *scene.Drawable
	HandRight *scene.Drawable
}

// newBodyVisual creates the collapsed drawables for a slot
func newBodyVisual(clr color.RGBA, jointSize float64) *BodyVisual {

	b := &BodyVisual{
		Color:     clr,
		HandLeft:  &scene.Drawable{Kind: scene.Ellipse},
		HandRight: &scene.Drawable{Kind: scene.Ellipse},
	}

	for i := range b.Joints {
		b.Joints[i] = &scene.Drawable{
			Kind:   scene.Ellipse,
			Fill:   clr,
			Width:  jointSize,
			Height: jointSize,
		}
	}

	for i := range b.Bones {
		b.Bones[i] = &scene.Drawable{
			Kind:   scene.Line,
			Stroke: clr,
		}
	}

	return b
}

// attach adds the slot drawables to the scene, hands first so joints and
// bones paint over them
func (b *BodyVisual) attach(s *scene.Scene) {

	s.Add(b.HandLeft, b.HandRight)

	for _, j := range b.Joints {
		s.Add(j)
	}

	for _, l := range b.Bones {
		s.Add(l)
	}
}

// collapse hides every drawable of the slot
func (b *BodyVisual) collapse() {

	b.Tracked = false

	for _, j := range b.Joints {
		j.Visible = false
	}

	for _, l := range b.Bones {
		l.Visible = false
	}

	b.HandLeft.Visible = false
	b.HandRight.Visible = false
}
