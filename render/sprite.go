package render

import (
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"
	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz/scene"
)

// Sprites holds the images sprite drawables refer to by asset name
type Sprites struct {
	dir    string
	images map[string]gocv.Mat
	log    *zap.SugaredLogger
}

// NewSprites returns a sprite set loading assets from dir on first use
func NewSprites(dir string, log *zap.SugaredLogger) *Sprites {

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Sprites{
		dir:    dir,
		images: make(map[string]gocv.Mat),
		log:    log,
	}
}

// load returns the named asset, an empty Mat if it can not be read
func (s *Sprites) load(name string) gocv.Mat {

	if img, ok := s.images[name]; ok {
		return img
	}

	img := gocv.NewMat()

	if s.dir != "" {
		img.Close()
		img = gocv.IMRead(filepath.Join(s.dir, name), gocv.IMReadUnchanged)
	}

	if img.Empty() {
		s.log.Warnw("sprite asset not loaded, using fallback", "asset", name,
			"dir", s.dir)
	}

	s.images[name] = img
	return img
}

// Sprite renders a sprite drawable, scaled to its bounding box.  Assets
// which could not be loaded are drawn as a filled ellipse.
func (s *Sprites) Sprite(img *gocv.Mat, d *scene.Drawable) error {

	w, h := round(d.Width), round(d.Height)

	if w <= 0 || h <= 0 {
		return nil
	}

	asset := s.load(d.Asset)

	if asset.Empty() {
		fb := *d
		fb.Fill = spriteFallbackColors[d.Asset]

		if !visible(fb.Fill) {
			fb.Fill = Pink
		}

		Ellipse(img, &fb)
		return nil
	}

	scaled := gocv.NewMat()
	defer scaled.Close()

	gocv.Resize(asset, &scaled, image.Pt(w, h), 0, 0, gocv.InterpolationArea)

	if d.FlipX {
		gocv.Flip(scaled, &scaled, 1)
	}

	at := image.Pt(round(d.Left), round(d.Top))
	block := image.Rect(0, 0, w, h).Add(at)
	clip := block.Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))

	if clip.Empty() {
		return nil
	}

	src := scaled.Region(clip.Sub(at))
	defer src.Close()

	switch src.Channels() {
	case 4:
		return overlayWithAlpha(img, src, clip, gocv.ColorBGRAToBGR)

	case 3:
		dst := img.Region(clip)
		defer dst.Close()
		src.CopyTo(&dst)
		return nil
	}

	return fmt.Errorf("sprite %q has %d channels", d.Asset, src.Channels())
}

// Close frees the loaded assets
func (s *Sprites) Close() error {

	for name, img := range s.images {
		img.Close()
		delete(s.images, name)
	}

	return nil
}
