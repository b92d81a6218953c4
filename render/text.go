package render

import (
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/swdee/go-kinectviz/scene"
)

// textBlock rasterizes a multi line text drawable into an RGBA image, lines
// are spaced by the font height
func textBlock(face font.Face, d *scene.Drawable) *image.RGBA {

	lines := strings.Split(strings.TrimRight(d.Text, "\n"), "\n")

	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	width := 0

	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}

	if width == 0 || lineH == 0 {
		return nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, lineH*len(lines)))

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(d.Fill),
		Face: face,
	}

	for i, l := range lines {
		dr.Dot = fixed.Point26_6{
			X: 0,
			Y: fixed.Int26_6((ascent + i*lineH) * 64),
		}
		dr.DrawString(l)
	}

	return rgba
}

// Text renders a text drawable with its top left corner at the drawable
// position
func (r *Renderer) Text(img *gocv.Mat, d *scene.Drawable) error {

	if d.Text == "" || !visible(d.Fill) {
		return nil
	}

	face, err := r.faces.Face(int(d.FontSize))

	if err != nil {
		return err
	}

	rgba := textBlock(face, d)

	if rgba == nil {
		return nil
	}

	at := image.Pt(round(d.Left), round(d.Top))

	return overlayRGBA(img, rgba, at)
}

// overlayRGBA copies the non transparent pixels of an RGBA image onto a BGR
// image at the given position, clipped to the image bounds
func overlayRGBA(img *gocv.Mat, rgba *image.RGBA, at image.Point) error {

	block := rgba.Bounds().Add(at)
	clip := block.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))

	if clip.Empty() {
		return nil
	}

	src, err := gocv.NewMatFromBytes(rgba.Bounds().Dy(), rgba.Bounds().Dx(),
		gocv.MatTypeCV8UC4, rgba.Pix)

	if src.Empty() || err != nil {
		return fmt.Errorf("error creating Mat from RGBA: %w", err)
	}

	defer src.Close()

	srcROI := src.Region(clip.Sub(at))
	defer srcROI.Close()

	return overlayWithAlpha(img, srcROI, clip, gocv.ColorRGBAToBGR)
}

// overlayWithAlpha copies a four channel image onto the region of a BGR
// image using its alpha channel as the mask
func overlayWithAlpha(img *gocv.Mat, src gocv.Mat, region image.Rectangle,
	code gocv.ColorConversionCode) error {

	bgr := gocv.NewMat()
	defer bgr.Close()

	gocv.CvtColor(src, &bgr, code)

	channels := gocv.Split(src)

	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()

	if len(channels) != 4 {
		return fmt.Errorf("expected 4 channels, got %d", len(channels))
	}

	dst := img.Region(region)
	defer dst.Close()

	bgr.CopyToWithMask(&dst, channels[3])

	return nil
}
