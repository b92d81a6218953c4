package face

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/num/quat"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/scene"
)

// axisRotation returns the unit quaternion rotating deg degrees about the
// given axis, 0=X, 1=Y, 2=Z
func axisRotation(axis int, deg float64) quat.Number {

	half := deg * math.Pi / 180 / 2
	q := quat.Number{Real: math.Cos(half)}

	switch axis {
	case 0:
		q.Imag = math.Sin(half)
	case 1:
		q.Jmag = math.Sin(half)
	case 2:
		q.Kmag = math.Sin(half)
	}

	return q
}

func TestQuantize(t *testing.T) {

	tests := []struct {
		deg  float64
		want int
	}{
		{0, 0},
		{2.4, 0},
		{-2.4, 0},
		{2.5, 5},
		{-2.5, -5},
		{12.4, 10},
		{12.5, 15},
		{-12.5, -15},
		{-12.6, -15},
		{90, 90},
		{177.6, 180},
	}

	for _, tc := range tests {
		if got := quantize(tc.deg); got != tc.want {
			t.Errorf("quantize(%v) expected %d, got %d", tc.deg, tc.want, got)
		}
	}
}

func TestExtractRotationInDegrees(t *testing.T) {

	tests := []struct {
		name                        string
		q                           quat.Number
		wantPitch, wantYaw, wantRoll int
	}{
		{"identity", quat.Number{Real: 1}, 0, 0, 0},
		{"pitch 12.4", axisRotation(0, 12.4), 10, 0, 0},
		{"pitch -12.6", axisRotation(0, -12.6), -15, 0, 0},
		{"yaw 31", axisRotation(1, 31), 0, 30, 0},
		{"roll -47.9", axisRotation(2, -47.9), 0, 0, -50},
		{"unnormalized", quat.Scale(3, axisRotation(0, 21)), 20, 0, 0},
		{"zero", quat.Number{}, 0, 0, 0},
	}

	for _, tc := range tests {
		pitch, yaw, roll := ExtractRotationInDegrees(tc.q)

		if pitch != tc.wantPitch || yaw != tc.wantYaw || roll != tc.wantRoll {
			t.Errorf("%s: expected (%d, %d, %d), got (%d, %d, %d)", tc.name,
				tc.wantPitch, tc.wantYaw, tc.wantRoll, pitch, yaw, roll)
		}
	}
}

func TestFeatures(t *testing.T) {

	f, err := ParseFeatures([]string{"boundingboxincolorspace", " Happy", "FaceEngagement"})

	if err != nil {
		t.Fatalf("ParseFeatures failed: %v", err)
	}

	if f != BoundingBoxInColorSpace|Happy|FaceEngagement {
		t.Errorf("unexpected features %v", f)
	}

	if !f.Has(Happy) || f.Has(Glasses) {
		t.Errorf("unexpected Has result for %v", f)
	}

	if f.String() != "BoundingBoxInColorSpace|Happy|FaceEngagement" {
		t.Errorf("unexpected String %q", f.String())
	}

	if Features(0).String() != "None" {
		t.Errorf("expected None for empty set")
	}

	if _, err := ParseFeatures([]string{"Whiskers"}); err == nil {
		t.Errorf("expected error for unknown feature")
	}

	if FaceEngagement != 4096 || PointsInColorSpace != 8 {
		t.Errorf("unexpected feature bit values")
	}
}

func testResult() *Result {
	return &Result{
		TrackingID:  7,
		BoxColor:    Rect{Left: 100, Top: 50, Right: 200, Bottom: 180},
		BoxInfrared: Rect{Left: 10, Top: 20, Right: 40, Bottom: 60},
		PointsColor: map[PointType]scene.Point{
			EyeLeft:  {X: 120, Y: 90},
			EyeRight: {X: 170, Y: 90},
			Nose:     {X: 145, Y: 120},
		},
		PointsInfrared: map[PointType]scene.Point{
			EyeLeft:  {X: 20, Y: 30},
			EyeRight: {X: 32, Y: 30},
			Nose:     {X: 26, Y: 40},
		},
		Rotation: quat.Number{Real: 1},
		Properties: map[Property]DetectionResult{
			PropertyHappy:         DetectionYes,
			PropertyLeftEyeClosed: DetectionMaybe,
		},
	}
}

func TestMessages(t *testing.T) {

	res := testResult()

	msg, ok := Messages(res, RotationOrientation|Happy|FaceEngagement|LeftEyeClosed|MouthOpen)

	if !ok {
		t.Fatalf("expected messages")
	}

	want := "Rotation Pitch: 0\n" +
		"Rotation Yaw: 0\n" +
		"Rotation Roll: 0\n" +
		"Engaged: Unknown\n" +
		"Happy: Yes\n" +
		"LeftEyeClosed: Maybe\n" +
		"MouthOpen: Unknown\n"

	if diff := cmp.Diff(want, msg); diff != "" {
		t.Errorf("unexpected messages (-want +got):\n%s", diff)
	}

	if _, ok := Messages(res, BoundingBoxInColorSpace|PointsInColorSpace); ok {
		t.Errorf("expected no messages without text features")
	}
}

func countKind(s *scene.Scene, k scene.Kind) int {
	n := 0
	for _, d := range s.Items() {
		if d.Kind == k {
			n++
		}
	}
	return n
}

func TestOverlayUpdate(t *testing.T) {

	canvas := scene.New(1920, 1080)
	o := NewOverlay(canvas, DefaultParams())

	o.Update([]*Result{nil, testResult()}, ColorFeatures)

	if got := countKind(canvas, scene.Rectangle); got != 1 {
		t.Errorf("expected 1 box, got %d", got)
	}

	if got := countKind(canvas, scene.Ellipse); got != 3 {
		t.Errorf("expected 3 landmarks, got %d", got)
	}

	if got := countKind(canvas, scene.Text); got != 1 {
		t.Errorf("expected 1 text block, got %d", got)
	}

	var box, text *scene.Drawable

	for _, d := range canvas.Items() {
		switch d.Kind {
		case scene.Rectangle:
			box = d
		case scene.Text:
			text = d
		}
	}

	if box.Left != 100 || box.Top != 50 || box.Width != 107 || box.Height != 137 {
		t.Errorf("unexpected box geometry %+v", box)
	}

	if box.StrokeWidth != 7 || box.Stroke != scene.Orange || box.Fill.A != 0 {
		t.Errorf("unexpected box style %+v", box)
	}

	// text sits below the box, font is 2.3% of the canvas height
	if text.Left != 100 || text.Top != 187 || text.FontSize != 24 {
		t.Errorf("unexpected text placement %+v", text)
	}

	// a second update replaces the previous drawables
	o.Update([]*Result{testResult()}, PointsInInfraredSpace)

	if canvas.Len() != 3 {
		t.Errorf("expected 3 drawables after redraw, got %d", canvas.Len())
	}

	for _, d := range canvas.Items() {
		if d.Width != 3 || d.Fill != scene.Red {
			t.Errorf("unexpected infrared landmark %+v", d)
		}
	}
}

func TestOverlayDefaultTextPosition(t *testing.T) {

	canvas := scene.New(512, 424)
	o := NewOverlay(canvas, DefaultParams())

	o.Update([]*Result{nil, nil, testResult()}, RotationOrientation)

	if canvas.Len() != 1 {
		t.Fatalf("expected only a text block, got %d drawables", canvas.Len())
	}

	text := canvas.Items()[0]

	// font size int(424*0.023) = 9, slot 2
	if text.Left != 180 || text.Top != 0 || text.FontSize != 9 {
		t.Errorf("unexpected text placement %+v", text)
	}
}

func TestOverlayInfraredBoxMovesText(t *testing.T) {

	canvas := scene.New(512, 424)
	o := NewOverlay(canvas, DefaultParams())

	o.Update([]*Result{testResult()},
		BoundingBoxInColorSpace|BoundingBoxInInfraredSpace|Happy)

	var text *scene.Drawable

	for _, d := range canvas.Items() {
		if d.Kind == scene.Text {
			text = d
		}
	}

	// infrared box is drawn last so the text follows it
	if text == nil || text.Left != 10 || text.Top != 67 {
		t.Errorf("unexpected text placement %+v", text)
	}
}

func TestOverlayZeroCanvas(t *testing.T) {

	canvas := scene.New(0, 0)
	o := NewOverlay(canvas, DefaultParams())

	o.Update([]*Result{testResult()}, ColorFeatures)

	if canvas.Len() != 0 {
		t.Errorf("expected nothing drawn on a zero sized canvas, got %d", canvas.Len())
	}
}

func TestCatMask(t *testing.T) {

	canvas := scene.New(512, 424)
	m := NewCatMask(canvas, DefaultCatMaskParams())

	res := testResult()
	res.Properties[PropertyRightEyeClosed] = DetectionNo

	m.Update([]*Result{res, nil})

	items := canvas.Items()

	if len(items) != 3 {
		t.Fatalf("expected 3 sprites, got %d", len(items))
	}

	type sprite struct {
		Asset     string
		Left, Top float64
		FlipX     bool
	}

	got := make([]sprite, len(items))

	for i, d := range items {
		got[i] = sprite{d.Asset, d.Left, d.Top, d.FlipX}
	}

	want := []sprite{
		{AssetEyeClosed, 20 - 15, 30 - 10, false},
		{AssetEyeOpen, 32 - 15, 30 - 10, true},
		{AssetNose, 26 - 20, 40, false},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected sprites (-want +got):\n%s", diff)
	}
}

type fakeSource struct {
	ids   map[int]uint64
	valid map[int]bool
}

func (f *fakeSource) TrackingIDValid(slot int) bool {
	return f.valid[slot]
}

func (f *fakeSource) SetTrackingID(slot int, id uint64) {
	f.ids[slot] = id
	f.valid[slot] = true
}

func (f *fakeSource) LatestResults() []*Result {
	return nil
}

func TestBindTrackingIDs(t *testing.T) {

	src := &fakeSource{
		ids:   map[int]uint64{1: 99},
		valid: map[int]bool{1: true},
	}

	bodies := []kinectviz.Body{
		{TrackingID: 10, IsTracked: true},
		{TrackingID: 11, IsTracked: true},
		{TrackingID: 12, IsTracked: false},
	}

	BindTrackingIDs(src, bodies)

	want := map[int]uint64{0: 10, 1: 99}

	if diff := cmp.Diff(want, src.ids); diff != "" {
		t.Errorf("unexpected tracking ids (-want +got):\n%s", diff)
	}
}
