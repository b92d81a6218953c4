// Package render rasterizes display views with GoCV.  Pixel buffers become
// BGR Mats, overlay scenes are painted on top and the result is shown in a
// window, written to disk or streamed as MJPEG.
package render

import (
	"fmt"
	"image/color"

	"gocv.io/x/gocv"
	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/display"
	"github.com/swdee/go-kinectviz/scene"
)

// Params defines how views are rendered
type Params struct {
	// Colormap applied to Depth mode images, GrayscaleMap leaves them grey
	Colormap gocv.ColormapTypes
	// AssetDir is the directory sprite images are loaded from
	AssetDir string
	// Width and Height of the output image, frames are letterboxed to fit.
	// Zero keeps the frame size.
	Width  int
	Height int
	// Background is the letterbox padding color
	Background color.RGBA
	// ShowStatus draws the mode and sensor status in the top left corner
	ShowStatus bool
	// Status is the style of the status line
	Status StatusFont
}

// DefaultParams returns the default render parameters
func DefaultParams() Params {
	return Params{
		Colormap:   GrayscaleMap,
		Background: Black,
		ShowStatus: true,
		Status:     DefaultStatusFont(),
	}
}

// Renderer converts views into BGR images.  It is not safe for concurrent
// use.
type Renderer struct {
	params    Params
	faces     *faceCache
	sprites   *Sprites
	frame     gocv.Mat
	letterbox *Letterbox
	log       *zap.SugaredLogger
}

// New returns a renderer
func New(p Params, log *zap.SugaredLogger) (*Renderer, error) {

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	faces, err := newFaceCache()

	if err != nil {
		return nil, err
	}

	return &Renderer{
		params:  p,
		faces:   faces,
		sprites: NewSprites(p.AssetDir, log),
		frame:   gocv.NewMat(),
		log:     log,
	}, nil
}

// Close frees the renderer resources
func (r *Renderer) Close() error {

	r.faces.Close()
	r.sprites.Close()

	if r.letterbox != nil {
		r.letterbox.Close()
	}

	return r.frame.Close()
}

// Render draws a view into dst
func (r *Renderer) Render(v *display.View, dst *gocv.Mat) error {

	if err := r.base(v); err != nil {
		return err
	}

	if v.Mode == display.Depth {
		applyColormap(&r.frame, r.params.Colormap)
	}

	for _, s := range v.Overlays {
		if err := r.Paint(&r.frame, s); err != nil {
			return err
		}
	}

	r.fit(dst)

	if r.params.ShowStatus {
		r.status(dst, fmt.Sprintf("%s - %s", v.Mode, v.Status))
	}

	return nil
}

// base loads the view pixels into the working frame, views without pixels
// get a black frame
func (r *Renderer) base(v *display.View) error {

	w, h := v.Description.Width, v.Description.Height

	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid view size %dx%d", w, h)
	}

	if v.Pixels == nil {
		if r.frame.Cols() != w || r.frame.Rows() != h || r.frame.Type() != gocv.MatTypeCV8UC3 {
			r.frame.Close()
			r.frame = gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
		}

		r.frame.SetTo(gocv.NewScalar(0, 0, 0, 0))
		return nil
	}

	if len(v.Pixels) != w*h*kinectviz.BytesPerPixel {
		return fmt.Errorf("view pixels %d for %dx%d: %w", len(v.Pixels), w, h,
			kinectviz.ErrBufferSize)
	}

	src, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, v.Pixels)

	if err != nil {
		return fmt.Errorf("error creating Mat from view: %w", err)
	}

	defer src.Close()

	gocv.CvtColor(src, &r.frame, gocv.ColorBGRAToBGR)

	return nil
}

// fit copies the working frame to dst, letterboxed if an output size is set
func (r *Renderer) fit(dst *gocv.Mat) {

	if r.params.Width <= 0 || r.params.Height <= 0 {
		r.frame.CopyTo(dst)
		return
	}

	w, h := r.frame.Cols(), r.frame.Rows()

	if r.letterbox == nil || !r.letterbox.Fits(w, h, r.params.Width, r.params.Height) {
		if r.letterbox != nil {
			r.letterbox.Close()
		}
		r.letterbox = NewLetterbox(w, h, r.params.Width, r.params.Height)
	}

	r.letterbox.Resize(r.frame, dst, r.params.Background)
}

// Paint draws the visible drawables of a scene onto img in order
func (r *Renderer) Paint(img *gocv.Mat, s *scene.Scene) error {

	for _, d := range s.Items() {
		if !d.Visible {
			continue
		}

		switch d.Kind {
		case scene.Ellipse:
			Ellipse(img, d)

		case scene.Line:
			Line(img, d)

		case scene.Rectangle:
			Rectangle(img, d)

		case scene.Text:
			if err := r.Text(img, d); err != nil {
				return fmt.Errorf("error rendering text: %w", err)
			}

		case scene.Sprite:
			if err := r.sprites.Sprite(img, d); err != nil {
				return fmt.Errorf("error rendering sprite: %w", err)
			}
		}
	}

	return nil
}

// status draws a line of text on a bar in the top left corner
func (r *Renderer) status(img *gocv.Mat, text string) {

	font := r.params.Status
	bar, origin := font.statusBar(text)

	gocv.Rectangle(img, bar, font.Background, -1)

	gocv.PutTextWithParams(img, text, origin, font.Face, font.Scale, font.Color,
		font.Thickness, gocv.LineAA, false)
}
