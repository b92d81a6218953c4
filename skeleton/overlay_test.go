package skeleton

import (
	"image/color"
	"math"
	"testing"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// fakeMapper projects camera X to depth X and camera Z to depth Y, points
// with X below unmappedX map to UnmappedPoint
type fakeMapper struct{}

const unmappedX = -1000

func (fakeMapper) MapCameraPointToDepthSpace(p r3.Vec) kinectviz.DepthSpacePoint {
	if p.X < unmappedX {
		return kinectviz.UnmappedPoint
	}
	return kinectviz.DepthSpacePoint{X: float32(p.X), Y: float32(p.Z)}
}

func (fakeMapper) MapColorFrameToDepthSpace(depth []uint16,
	out []kinectviz.DepthSpacePoint) error {
	return nil
}

func newTestOverlay(t *testing.T, bodyCount int) (*Overlay, *scene.Scene) {
	t.Helper()

	canvas := scene.New(512, 424)

	o, err := NewOverlay(fakeMapper{}, canvas, bodyCount, DefaultParams())

	if err != nil {
		t.Fatalf("NewOverlay failed: %v", err)
	}

	return o, canvas
}

// trackedBody returns a body with every joint tracked at (x, 0, 2)
func trackedBody(x float64, edges kinectviz.FrameEdges) kinectviz.Body {

	b := kinectviz.Body{
		TrackingID:          1,
		IsTracked:           true,
		HandLeftState:       kinectviz.HandOpen,
		HandLeftConfidence:  kinectviz.ConfidenceHigh,
		HandRightState:      kinectviz.HandClosed,
		HandRightConfidence: kinectviz.ConfidenceHigh,
		ClippedEdges:        edges,
	}

	for i := range b.Joints {
		b.Joints[i] = kinectviz.Joint{
			Position:      r3.Vec{X: x, Y: 0, Z: 2},
			TrackingState: kinectviz.Tracked,
		}
	}

	return b
}

func edgeState(o *Overlay) map[kinectviz.FrameEdges]bool {
	return map[kinectviz.FrameEdges]bool{
		kinectviz.EdgeLeft:   o.ClipEdge(kinectviz.EdgeLeft).Visible,
		kinectviz.EdgeRight:  o.ClipEdge(kinectviz.EdgeRight).Visible,
		kinectviz.EdgeTop:    o.ClipEdge(kinectviz.EdgeTop).Visible,
		kinectviz.EdgeBottom: o.ClipEdge(kinectviz.EdgeBottom).Visible,
	}
}

func TestNewOverlay(t *testing.T) {

	o, canvas := newTestOverlay(t, 6)

	want := 6*(2+kinectviz.JointCount+BoneCount) + 4

	if canvas.Len() != want {
		t.Errorf("expected %d drawables, got %d", want, canvas.Len())
	}

	if canvas.Visible() != 0 {
		t.Errorf("expected all drawables collapsed, got %d visible", canvas.Visible())
	}

	if o.Body(0).Color != scene.Red || o.Body(5).Color != scene.Violet {
		t.Errorf("unexpected slot colors %v, %v", o.Body(0).Color, o.Body(5).Color)
	}

	right := o.ClipEdge(kinectviz.EdgeRight)

	if right.Left != 512-5 || right.Width != 5 || right.Height != 424 {
		t.Errorf("unexpected right edge geometry %+v", right)
	}

	bottom := o.ClipEdge(kinectviz.EdgeBottom)

	if bottom.Top != 424-5 || bottom.Height != 5 || bottom.Width != 512 {
		t.Errorf("unexpected bottom edge geometry %+v", bottom)
	}

	if _, err := NewOverlay(fakeMapper{}, canvas, 0, DefaultParams()); err == nil {
		t.Errorf("expected error for zero body count")
	}

	if _, err := NewOverlay(nil, canvas, 6, DefaultParams()); err == nil {
		t.Errorf("expected error for nil mapper")
	}
}

func TestClippedEdges(t *testing.T) {

	tests := []struct {
		name   string
		bodies []kinectviz.Body
		want   map[kinectviz.FrameEdges]bool
	}{
		{
			name: "tracked bodies either side of an untracked one",
			bodies: []kinectviz.Body{
				trackedBody(10, kinectviz.EdgeLeft),
				{},
				trackedBody(20, kinectviz.EdgeTop),
			},
			want: map[kinectviz.FrameEdges]bool{
				kinectviz.EdgeLeft: true, kinectviz.EdgeRight: false,
				kinectviz.EdgeTop: true, kinectviz.EdgeBottom: false,
			},
		},
		{
			name: "later body does not clear an earlier edge",
			bodies: []kinectviz.Body{
				trackedBody(10, kinectviz.EdgeRight|kinectviz.EdgeBottom),
				trackedBody(20, kinectviz.EdgeNone),
			},
			want: map[kinectviz.FrameEdges]bool{
				kinectviz.EdgeLeft: false, kinectviz.EdgeRight: true,
				kinectviz.EdgeTop: false, kinectviz.EdgeBottom: true,
			},
		},
		{
			name:   "no tracked bodies",
			bodies: []kinectviz.Body{{}, {}, {}},
			want: map[kinectviz.FrameEdges]bool{
				kinectviz.EdgeLeft: false, kinectviz.EdgeRight: false,
				kinectviz.EdgeTop: false, kinectviz.EdgeBottom: false,
			},
		},
	}

	for _, tc := range tests {
		o, _ := newTestOverlay(t, 6)

		// start from every edge shown so stale state is observable
		o.UpdateBodies([]kinectviz.Body{trackedBody(0,
			kinectviz.EdgeLeft|kinectviz.EdgeRight|kinectviz.EdgeTop|kinectviz.EdgeBottom)})

		o.UpdateBodies(tc.bodies)

		got := edgeState(o)

		for edge, want := range tc.want {
			if got[edge] != want {
				t.Errorf("%s: edge %d expected visible=%v, got %v",
					tc.name, edge, want, got[edge])
			}
		}
	}
}

func TestFirstTrackedBodyResetsEdges(t *testing.T) {

	o, _ := newTestOverlay(t, 6)

	o.UpdateBodies([]kinectviz.Body{trackedBody(0, kinectviz.EdgeLeft)})

	if !o.ClipEdge(kinectviz.EdgeLeft).Visible {
		t.Fatalf("expected left edge visible")
	}

	// body moves to slot 1 and is no longer clipped
	o.UpdateBodies([]kinectviz.Body{{}, trackedBody(0, kinectviz.EdgeNone)})

	if o.ClipEdge(kinectviz.EdgeLeft).Visible {
		t.Errorf("expected left edge hidden by first tracked body")
	}
}

func TestJointStates(t *testing.T) {

	o, _ := newTestOverlay(t, 6)

	body := trackedBody(100, kinectviz.EdgeNone)
	body.Joints[kinectviz.Head].TrackingState = kinectviz.Inferred
	body.Joints[kinectviz.FootLeft].TrackingState = kinectviz.NotTracked

	o.UpdateBodies([]kinectviz.Body{body})

	b := o.Body(0)

	if !b.Tracked {
		t.Errorf("expected slot to be tracked")
	}

	if b.Joints[kinectviz.SpineBase].Fill != scene.Green || !b.Joints[kinectviz.SpineBase].Visible {
		t.Errorf("expected tracked joint visible and green")
	}

	if b.Joints[kinectviz.Head].Fill != scene.Yellow || !b.Joints[kinectviz.Head].Visible {
		t.Errorf("expected inferred joint visible and yellow")
	}

	if b.Joints[kinectviz.FootLeft].Visible {
		t.Errorf("expected not tracked joint hidden")
	}

	c := b.Joints[kinectviz.SpineBase].Center()

	if math.Abs(c.X-100) > 1e-6 || math.Abs(c.Y-2) > 1e-6 {
		t.Errorf("expected joint centered on (100, 2), got %v", c)
	}
}

func TestBoneThickness(t *testing.T) {

	o, _ := newTestOverlay(t, 6)

	body := trackedBody(50, kinectviz.EdgeNone)
	body.Joints[kinectviz.Head].TrackingState = kinectviz.Inferred
	body.Joints[kinectviz.FootLeft].TrackingState = kinectviz.NotTracked

	o.UpdateBodies([]kinectviz.Body{body})

	b := o.Body(0)

	for i, bone := range Bones() {
		d := b.Bones[i]

		start := body.Joints[bone.Start].TrackingState
		end := body.Joints[bone.End].TrackingState

		switch {
		case start == kinectviz.NotTracked || end == kinectviz.NotTracked:
			if d.Visible {
				t.Errorf("bone %v-%v expected hidden", bone.Start, bone.End)
			}
		case start == kinectviz.Tracked && end == kinectviz.Tracked:
			if !d.Visible || d.StrokeWidth != 4 {
				t.Errorf("bone %v-%v expected thick, got visible=%v width=%v",
					bone.Start, bone.End, d.Visible, d.StrokeWidth)
			}
		default:
			if !d.Visible || d.StrokeWidth != 1 {
				t.Errorf("bone %v-%v expected thin, got visible=%v width=%v",
					bone.Start, bone.End, d.Visible, d.StrokeWidth)
			}
		}
	}

	headNeck := b.Bones[0]

	if headNeck.StrokeWidth != 1 {
		t.Errorf("expected Head-Neck bone thin, got %v", headNeck.StrokeWidth)
	}

	if headNeck.Stroke != scene.Red {
		t.Errorf("expected bone stroked with slot color, got %v", headNeck.Stroke)
	}
}

func TestNegativeDepthClamped(t *testing.T) {

	o, _ := newTestOverlay(t, 6)

	body := trackedBody(30, kinectviz.EdgeNone)
	body.Joints[kinectviz.Head].Position.Z = -0.5

	o.UpdateBodies([]kinectviz.Body{body})

	c := o.Body(0).Joints[kinectviz.Head].Center()

	if math.Abs(c.Y-0.1) > 1e-6 {
		t.Errorf("expected clamped depth 0.1, got %v", c.Y)
	}
}

func TestHands(t *testing.T) {

	tests := []struct {
		state      kinectviz.HandState
		confidence kinectviz.TrackingConfidence
		wantFill   color.RGBA
		wantSize   float64
	}{
		{kinectviz.HandOpen, kinectviz.ConfidenceHigh, scene.Green, 40},
		{kinectviz.HandClosed, kinectviz.ConfidenceLow, scene.Red, 20},
		{kinectviz.HandLasso, kinectviz.ConfidenceHigh, scene.Blue, 40},
		{kinectviz.HandUnknown, kinectviz.ConfidenceLow, scene.Transparent, 20},
		{kinectviz.HandNotTracked, kinectviz.ConfidenceHigh, scene.Transparent, 40},
	}

	for _, tc := range tests {
		o, _ := newTestOverlay(t, 6)

		body := trackedBody(70, kinectviz.EdgeNone)
		body.HandRightState = tc.state
		body.HandRightConfidence = tc.confidence

		o.UpdateBodies([]kinectviz.Body{body})

		hand := o.Body(0).HandRight

		if hand.Fill != tc.wantFill {
			t.Errorf("state %d: unexpected fill %v", tc.state, hand.Fill)
		}

		if hand.Width != tc.wantSize || hand.Height != tc.wantSize {
			t.Errorf("state %d: expected size %v, got %vx%v",
				tc.state, tc.wantSize, hand.Width, hand.Height)
		}

		if !hand.Visible {
			t.Errorf("state %d: expected hand visible", tc.state)
		}
	}
}

func TestUnmappedHandKeepsPosition(t *testing.T) {

	o, _ := newTestOverlay(t, 6)

	o.UpdateBodies([]kinectviz.Body{trackedBody(70, kinectviz.EdgeNone)})

	before := o.Body(0).HandLeft.Center()

	body := trackedBody(70, kinectviz.EdgeNone)
	body.Joints[kinectviz.HandLeft].Position.X = unmappedX * 2

	o.UpdateBodies([]kinectviz.Body{body})

	after := o.Body(0).HandLeft.Center()

	if after != before {
		t.Errorf("expected hand to stay at %v, got %v", before, after)
	}

	if !o.Body(0).HandLeft.Visible {
		t.Errorf("expected hand to remain visible")
	}
}

func TestUntrackedBodyCollapses(t *testing.T) {

	o, canvas := newTestOverlay(t, 6)

	o.UpdateBodies([]kinectviz.Body{trackedBody(10, kinectviz.EdgeLeft)})

	if canvas.Visible() == 0 {
		t.Fatalf("expected visible drawables for tracked body")
	}

	o.UpdateBodies([]kinectviz.Body{{}})

	if canvas.Visible() != 0 {
		t.Errorf("expected everything collapsed, got %d visible", canvas.Visible())
	}

	if o.Body(0).Tracked {
		t.Errorf("expected slot to be untracked")
	}
}

func TestExtraBodiesIgnored(t *testing.T) {

	o, _ := newTestOverlay(t, 2)

	bodies := []kinectviz.Body{{}, {}, trackedBody(10, kinectviz.EdgeTop)}

	o.UpdateBodies(bodies)

	if o.ClipEdge(kinectviz.EdgeTop).Visible {
		t.Errorf("expected body beyond slot count to be ignored")
	}
}

func TestMissingBodiesCollapse(t *testing.T) {

	o, canvas := newTestOverlay(t, 3)

	o.UpdateBodies([]kinectviz.Body{
		trackedBody(10, kinectviz.EdgeNone),
		trackedBody(20, kinectviz.EdgeNone),
	})

	if !o.Body(1).Tracked {
		t.Fatalf("expected slot 1 tracked")
	}

	visibleBoth := canvas.Visible()

	o.UpdateBodies([]kinectviz.Body{trackedBody(10, kinectviz.EdgeNone)})

	if o.Body(1).Tracked {
		t.Errorf("expected slot 1 without a body to be untracked")
	}

	if got := canvas.Visible(); got*2 != visibleBoth {
		t.Errorf("expected only slot 0 drawables visible, got %d of %d", got, visibleBoth)
	}

	o.UpdateBodies(nil)

	if got := canvas.Visible(); got != 0 {
		t.Errorf("expected everything collapsed for no bodies, got %d visible", got)
	}
}
