package render

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/display"
	"github.com/swdee/go-kinectviz/scene"
)

func bounds(points []image.Point) image.Rectangle {

	r := image.Rectangle{Min: points[0], Max: points[0]}

	for _, p := range points {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}

	return r
}

func TestStrokeOutline(t *testing.T) {

	contours := strokeOutline(0, 0, 20, 10, 4)

	if len(contours) != 2 {
		t.Fatalf("expected outer and inner contours, got %d", len(contours))
	}

	var outer, inner []image.Point

	// the larger contour is the outer edge of the stroke
	if bounds(contours[0]).Dx() > bounds(contours[1]).Dx() {
		outer, inner = contours[0], contours[1]
	} else {
		outer, inner = contours[1], contours[0]
	}

	if got := bounds(outer); got != image.Rect(0, 0, 20, 10) {
		t.Errorf("expected outer bounds (0,0)-(20,10), got %v", got)
	}

	if got := bounds(inner); got != image.Rect(4, 4, 16, 6) {
		t.Errorf("expected inner bounds (4,4)-(16,6), got %v", got)
	}

	// round joins add arc points to the corners
	if len(outer) <= 4 {
		t.Errorf("expected rounded outer corners, got %d points", len(outer))
	}
}

func TestLetterbox(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		resizeWidth   int
		resizeHeight  int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1920, 1080, 1280, 1080, 0, 180, 0.6666667},
		{512, 424, 1024, 424, 256, 0, 1.0},
		{512, 424, 1024, 848, 0, 0, 2.0},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC3)

		resizedImg := gocv.NewMat()

		lb := NewLetterbox(tc.srcWidth, tc.srcHeight, tc.resizeWidth, tc.resizeHeight)

		lb.Resize(img, &resizedImg, Black)

		if lb.XPad() != tc.expectedXPad || lb.YPad() != tc.expectedYPad {
			t.Errorf("Test failed for src (%d, %d): Padding values wrong, expected XPad=%d, YPad=%d, got xPad=%d, yPad=%d",
				tc.srcWidth, tc.srcHeight, tc.expectedXPad, tc.expectedYPad, lb.XPad(), lb.YPad())
		}

		if lb.ScaleFactor() != tc.expectedScale {
			t.Errorf("Test failed for src (%d, %d): Scalefactor incorrect, expected %f, got %f",
				tc.srcWidth, tc.srcHeight, tc.expectedScale, lb.ScaleFactor())
		}

		if resizedImg.Cols() != tc.resizeWidth || resizedImg.Rows() != tc.resizeHeight {
			t.Errorf("Test failed for src (%d, %d): output size %dx%d",
				tc.srcWidth, tc.srcHeight, resizedImg.Cols(), resizedImg.Rows())
		}

		img.Close()
		resizedImg.Close()
		lb.Close()
	}
}

func TestParseColormap(t *testing.T) {

	if cm, err := ParseColormap(""); err != nil || cm != GrayscaleMap {
		t.Errorf("expected grayscale default, got %v, %v", cm, err)
	}

	if cm, err := ParseColormap("Jet"); err != nil || cm != gocv.ColormapJet {
		t.Errorf("expected jet, got %v, %v", cm, err)
	}

	if _, err := ParseColormap("plaid"); err == nil {
		t.Errorf("expected error for unknown colormap")
	}
}

func TestTextBlock(t *testing.T) {

	faces, err := newFaceCache()

	if err != nil {
		t.Fatalf("newFaceCache failed: %v", err)
	}

	defer faces.Close()

	face, err := faces.Face(20)

	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}

	one := textBlock(face, &scene.Drawable{Text: "Happy: Yes\n", Fill: scene.Red})
	two := textBlock(face, &scene.Drawable{Text: "Happy: Yes\nRotation Yaw: 10\n", Fill: scene.Red})

	if one == nil || two == nil {
		t.Fatalf("expected text blocks")
	}

	if two.Bounds().Dy() != 2*one.Bounds().Dy() {
		t.Errorf("expected two lines to be twice the height, got %d and %d",
			one.Bounds().Dy(), two.Bounds().Dy())
	}

	if two.Bounds().Dx() <= one.Bounds().Dx() {
		t.Errorf("expected block width of the longest line")
	}

	inked := false

	for i := 3; i < len(one.Pix); i += 4 {
		if one.Pix[i] > 0 {
			inked = true
			break
		}
	}

	if !inked {
		t.Errorf("expected text pixels to be drawn")
	}

	if textBlock(face, &scene.Drawable{Text: "", Fill: scene.Red}) != nil {
		t.Errorf("expected no block for empty text")
	}
}

func bgrAt(img gocv.Mat, x, y int) [3]uint8 {
	v := img.GetVecbAt(y, x)
	return [3]uint8{v[0], v[1], v[2]}
}

func TestPaint(t *testing.T) {

	r, err := New(DefaultParams(), nil)

	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	defer r.Close()

	img := gocv.NewMatWithSize(20, 20, gocv.MatTypeCV8UC3)
	defer img.Close()

	img.SetTo(gocv.NewScalar(0, 0, 0, 0))

	s := scene.New(20, 20)
	s.Add(
		&scene.Drawable{Kind: scene.Rectangle, Left: 2, Top: 2, Width: 4, Height: 4,
			Fill: scene.Red, Visible: true},
		&scene.Drawable{Kind: scene.Ellipse, Left: 12, Top: 12, Width: 6, Height: 6,
			Fill: scene.Green, Visible: true},
		&scene.Drawable{Kind: scene.Rectangle, Left: 12, Top: 2, Width: 4, Height: 4,
			Fill: scene.Blue, Visible: false},
	)

	if err := r.Paint(&img, s); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}

	if got := bgrAt(img, 3, 3); got != [3]uint8{0, 0, 255} {
		t.Errorf("expected red rectangle, got %v", got)
	}

	if got := bgrAt(img, 15, 15); got != [3]uint8{0, 128, 0} {
		t.Errorf("expected green ellipse, got %v", got)
	}

	if got := bgrAt(img, 13, 3); got != [3]uint8{0, 0, 0} {
		t.Errorf("expected hidden rectangle not painted, got %v", got)
	}
}

func TestRender(t *testing.T) {

	p := DefaultParams()
	p.ShowStatus = false

	r, err := New(p, nil)

	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	defer r.Close()

	desc := kinectviz.FrameDescription{Width: 2, Height: 2}
	pixels := []byte{
		10, 20, 30, 255, 10, 20, 30, 255,
		10, 20, 30, 255, 10, 20, 30, 255,
	}

	dst := gocv.NewMat()
	defer dst.Close()

	err = r.Render(&display.View{Mode: display.Color, Description: desc, Pixels: pixels}, &dst)

	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if dst.Cols() != 2 || dst.Rows() != 2 || dst.Channels() != 3 {
		t.Fatalf("unexpected output %dx%d with %d channels", dst.Cols(), dst.Rows(), dst.Channels())
	}

	if got := bgrAt(dst, 1, 1); got != [3]uint8{10, 20, 30} {
		t.Errorf("expected view pixel, got %v", got)
	}

	// overlay only views render on black
	err = r.Render(&display.View{Mode: display.BodyJoints,
		Description: kinectviz.FrameDescription{Width: 3, Height: 2}}, &dst)

	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if dst.Cols() != 3 || bgrAt(dst, 2, 1) != [3]uint8{0, 0, 0} {
		t.Errorf("expected black 3x2 frame")
	}

	err = r.Render(&display.View{Mode: display.Color, Description: desc, Pixels: pixels[:8]}, &dst)

	if err == nil {
		t.Errorf("expected error for short pixel buffer")
	}
}

func TestStatusBar(t *testing.T) {

	font := DefaultStatusFont()
	bar, origin := font.statusBar("Depth - Running")

	if bar.Min != image.Pt(0, 0) {
		t.Errorf("expected bar at top left, got %v", bar)
	}

	if origin.X != font.Margin || origin.Y <= font.Margin || origin.Y >= bar.Max.Y {
		t.Errorf("text origin %v outside bar %v", origin, bar)
	}

	short, _ := font.statusBar("Depth")

	if short.Dx() >= bar.Dx() {
		t.Errorf("expected shorter text to give a narrower bar, %d >= %d", short.Dx(), bar.Dx())
	}
}

func TestRenderStatus(t *testing.T) {

	p := DefaultParams()
	p.Status.Background = Grey

	r, err := New(p, nil)

	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	defer r.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	v := &display.View{Mode: display.BodyJoints, Status: "Running",
		Description: kinectviz.FrameDescription{Width: 200, Height: 40}}

	if err := r.Render(v, &dst); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := bgrAt(dst, 1, 1); got != [3]uint8{128, 128, 128} {
		t.Errorf("expected status bar background, got %v", got)
	}

	if got := bgrAt(dst, 199, 39); got != [3]uint8{0, 0, 0} {
		t.Errorf("expected frame outside the bar untouched, got %v", got)
	}
}

// failingWriter fails every write after the first n
type failingWriter struct {
	n      int
	writes int
	buf    bytes.Buffer
}

func (f *failingWriter) Write(p []byte) (int, error) {

	f.writes++

	if f.writes > f.n {
		return 0, errors.New("client gone")
	}

	return f.buf.Write(p)
}

func TestWritePart(t *testing.T) {

	w := &failingWriter{n: 4}

	if err := writePart(w, []byte("jpg")); err != nil {
		t.Fatalf("writePart failed: %v", err)
	}

	want := "--frame\r\nContent-Type: image/jpeg\r\n\r\njpg\r\n"

	if got := w.buf.String(); got != want {
		t.Errorf("expected part %q, got %q", want, got)
	}

	// a dropped client stops the part at the first write
	w = &failingWriter{n: 0}

	if err := writePart(w, []byte("jpg")); err == nil {
		t.Fatalf("expected write error")
	}

	if w.writes != 1 {
		t.Errorf("expected 1 write attempt, got %d", w.writes)
	}
}
