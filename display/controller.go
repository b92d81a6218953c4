// Package display routes multi-source frames to the pixel converters and
// overlays of the active display mode and presents the result on a Surface.
package display

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/convert"
	"github.com/swdee/go-kinectviz/face"
	"github.com/swdee/go-kinectviz/scene"
	"github.com/swdee/go-kinectviz/skeleton"
)

// status text values
const (
	StatusRunning      = "Running"
	StatusNotAvailable = "Not Available"
)

// View is a rendered frame handed to a Surface
type View struct {
	// Mode the view was rendered in
	Mode Mode
	// Description is the size of the displayed image
	Description kinectviz.FrameDescription
	// Pixels is the BGRA image, nil when only overlays are drawn
	Pixels []byte
	// Overlays are drawn over the image in order
	Overlays []*scene.Scene
	// Status of the sensor
	Status string
}

// Surface presents rendered views
type Surface interface {
	Present(v *View) error
}

// Availability is implemented by frame sources able to report whether the
// sensor is connected
type Availability interface {
	IsAvailable() bool
}

// Params configures the controller
type Params struct {
	// BackgroundThreshold is the depth in millimeters beyond which pixels
	// are removed in BackgroundRemoved mode
	BackgroundThreshold uint16
	// FaceColorFeatures are drawn in FaceOnColor mode
	FaceColorFeatures face.Features
	// FaceInfraredFeatures are drawn in FaceOnInfrared mode, in addition to
	// the cat mask
	FaceInfraredFeatures face.Features
	// CatMask enables the cat mask in FaceOnInfrared mode
	CatMask bool
	// Skeleton, Face and Cat are the overlay parameters
	Skeleton skeleton.Params
	Face     face.Params
	Cat      face.CatMaskParams
}

// DefaultParams returns the standard controller parameters
func DefaultParams() Params {
	return Params{
		BackgroundThreshold: 8000,
		FaceColorFeatures:   face.ColorFeatures,
		CatMask:             true,
		Skeleton:            skeleton.DefaultParams(),
		Face:                face.DefaultParams(),
		Cat:                 face.DefaultCatMaskParams(),
	}
}

// Controller processes frames for the active display mode.  It is not safe
// for concurrent use, frames are handled one at a time.
type Controller struct {
	src     kinectviz.FrameSource
	mapper  kinectviz.CoordinateMapper
	surface Surface
	faces   face.Source
	params  Params
	log     *zap.SugaredLogger

	mode Mode
	// desc is the size of the displayed image
	desc kinectviz.FrameDescription
	bufs *bufferSet

	bodyCanvas *scene.Scene
	bodies     *skeleton.Overlay

	faceCanvas  *scene.Scene
	faceOverlay *face.Overlay
	catCanvas   *scene.Scene
	catMask     *face.CatMask

	view View
}

// New returns a controller reading from src and presenting on surface.
// faces may be nil in which case the face modes only show the underlying
// stream.  The controller starts in Infrared mode.
func New(src kinectviz.FrameSource, surface Surface, faces face.Source,
	p Params, log *zap.SugaredLogger) (*Controller, error) {

	if src == nil {
		return nil, fmt.Errorf("frame source is required")
	}

	if surface == nil {
		return nil, fmt.Errorf("surface is required")
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	c := &Controller{
		src:     src,
		mapper:  src.CoordinateMapper(),
		surface: surface,
		faces:   faces,
		params:  p,
		log:     log,
	}

	if err := c.SetMode(Infrared); err != nil {
		return nil, err
	}

	return c, nil
}

// Mode returns the active display mode
func (c *Controller) Mode() Mode {
	return c.mode
}

// Description returns the size of the displayed image
func (c *Controller) Description() kinectviz.FrameDescription {
	return c.desc
}

// StatusText returns "Running" while the sensor is available
func (c *Controller) StatusText() string {

	if a, ok := c.src.(Availability); ok && !a.IsAvailable() {
		return StatusNotAvailable
	}

	return StatusRunning
}

// SetMode switches the display mode.  The buffers and overlays of the new
// mode are allocated from the frame descriptions of the source and replace
// those of the previous mode once all of them were created.  On error the
// previous mode stays active.
func (c *Controller) SetMode(m Mode) error {

	if !m.valid() {
		return fmt.Errorf("mode %d: %w", int(m), ErrUnknownMode)
	}

	desc := c.src.Description(m.displaySource())
	bufs := newBufferSet()

	var (
		bodyCanvas, faceCanvas, catCanvas *scene.Scene
		bodies                            *skeleton.Overlay
		faceOverlay                       *face.Overlay
		catMask                           *face.CatMask
		err                               error
	)

	switch m {
	case Infrared, Color, Depth:
		err = bufs.CreatePixels(bufPixels, desc)

	case BodyMask, BackgroundRemoved:
		if err = bufs.CreatePixels(bufPixels, desc); err == nil {
			err = bufs.CreatePoints(bufMapped, desc)
		}

	case BodyJoints:
		bodyCanvas = scene.New(float64(desc.Width), float64(desc.Height))
		bodies, err = skeleton.NewOverlay(c.mapper, bodyCanvas,
			c.src.BodyCount(), c.params.Skeleton)

	case FaceOnColor, FaceOnInfrared:
		err = bufs.CreatePixels(bufPixels, desc)

		w, h := float64(desc.Width), float64(desc.Height)
		faceCanvas = scene.New(w, h)
		faceOverlay = face.NewOverlay(faceCanvas, c.params.Face)

		if m == FaceOnInfrared && c.params.CatMask {
			catCanvas = scene.New(w, h)
			catMask = face.NewCatMask(catCanvas, c.params.Cat)
		}
	}

	if err != nil {
		return fmt.Errorf("error setting up %s mode: %w", m, err)
	}

	c.mode = m
	c.desc = desc
	c.bufs = bufs
	c.bodyCanvas, c.bodies = bodyCanvas, bodies
	c.faceCanvas, c.faceOverlay = faceCanvas, faceOverlay
	c.catCanvas, c.catMask = catCanvas, catMask

	c.view = View{
		Mode:        m,
		Description: desc,
		Pixels:      bufs.Pixels(bufPixels),
	}

	for _, s := range []*scene.Scene{bodyCanvas, faceCanvas, catCanvas} {
		if s != nil {
			c.view.Overlays = append(c.view.Overlays, s)
		}
	}

	c.log.Infow("display mode set", "mode", m, "sources", m.Sources(),
		"width", desc.Width, "height", desc.Height,
		"bufferBytes", bufs.Size())

	return nil
}

// Bodies returns the skeleton overlay, nil outside BodyJoints mode
func (c *Controller) Bodies() *skeleton.Overlay {
	return c.bodies
}

// View returns the most recently rendered view
func (c *Controller) View() *View {
	return &c.view
}

// HandleFrame renders a single frame in the active mode and presents it.
// Frames missing a required stream or with unexpected dimensions are
// skipped and nil returned.  A depth frame with an unusable reliable range
// returns convert.ErrZeroDepthRange.
func (c *Controller) HandleFrame(frame *kinectviz.MultiSourceFrame) error {

	if frame == nil {
		c.log.Debugw("skipping empty frame", "mode", c.mode)
		return nil
	}

	var (
		rendered bool
		err      error
	)

	switch c.mode {
	case Infrared:
		rendered, err = c.showInfrared(frame.Infrared)
	case Color:
		rendered, err = c.showColor(frame.Color)
	case Depth:
		rendered, err = c.showDepth(frame.Depth)
	case BodyMask:
		rendered, err = c.showBodyMask(frame)
	case BodyJoints:
		rendered = c.showBodyJoints(frame.Body)
	case BackgroundRemoved:
		rendered, err = c.showBackgroundRemoved(frame)
	case FaceOnColor:
		if rendered, err = c.showColor(frame.Color); rendered {
			c.drawFaces(frame.Body)
		}
	case FaceOnInfrared:
		if rendered, err = c.showInfrared(frame.Infrared); rendered {
			c.drawFaces(frame.Body)
		}
	}

	if err != nil {
		if errors.Is(err, kinectviz.ErrBufferSize) {
			c.log.Debugw("skipping frame", "mode", c.mode, "error", err)
			return nil
		}
		return err
	}

	if !rendered {
		return nil
	}

	c.view.Status = c.StatusText()

	if err := c.surface.Present(&c.view); err != nil {
		return fmt.Errorf("error presenting %s frame: %w", c.mode, err)
	}

	return nil
}

// Run acquires and handles frames until ctx is done or presentation fails.
// Expired frames are skipped and depth range faults logged.
func (c *Controller) Run(ctx context.Context) error {

	for {
		frame, err := c.src.AcquireFrame(ctx)

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if errors.Is(err, kinectviz.ErrFrameExpired) {
				c.log.Debugw("frame expired", "mode", c.mode)
				continue
			}

			return fmt.Errorf("error acquiring frame: %w", err)
		}

		if err := c.HandleFrame(frame); err != nil {
			if errors.Is(err, convert.ErrZeroDepthRange) {
				c.log.Warnw("dropping depth frame", "error", err)
				continue
			}
			return err
		}
	}
}

// matches returns true if a frame has the dimensions of the displayed image
func (c *Controller) matches(desc kinectviz.FrameDescription, src string) bool {

	if desc != c.desc {
		c.log.Debugw("skipping frame with unexpected size", "stream", src,
			"width", desc.Width, "height", desc.Height,
			"wantWidth", c.desc.Width, "wantHeight", c.desc.Height)
		return false
	}

	return true
}

func (c *Controller) missing(src string) bool {
	c.log.Debugw("skipping frame without stream", "mode", c.mode, "stream", src)
	return false
}

func (c *Controller) showInfrared(f *kinectviz.InfraredFrame) (bool, error) {

	if f == nil {
		return c.missing("infrared"), nil
	}

	if !c.matches(f.Description, "infrared") {
		return false, nil
	}

	if err := convert.ConvertInfrared(f.Samples, c.bufs.Pixels(bufPixels)); err != nil {
		return false, err
	}

	return true, nil
}

func (c *Controller) showColor(f *kinectviz.ColorFrame) (bool, error) {

	if f == nil {
		return c.missing("color"), nil
	}

	if !c.matches(f.Description, "color") {
		return false, nil
	}

	pixels := c.bufs.Pixels(bufPixels)

	if len(f.Pixels) != len(pixels) {
		return false, fmt.Errorf("color frame %d bytes for %d pixel buffer: %w",
			len(f.Pixels), len(pixels), kinectviz.ErrBufferSize)
	}

	copy(pixels, f.Pixels)

	return true, nil
}

func (c *Controller) showDepth(f *kinectviz.DepthFrame) (bool, error) {

	if f == nil {
		return c.missing("depth"), nil
	}

	if !c.matches(f.Description, "depth") {
		return false, nil
	}

	err := convert.ConvertDepth(f.Samples, f.MinReliableDistance,
		f.MaxReliableDistance, c.bufs.Pixels(bufPixels))

	if err != nil {
		return false, err
	}

	return true, nil
}

// mapColor copies the color frame into the pixel buffer and maps every
// color pixel into depth space
func (c *Controller) mapColor(color *kinectviz.ColorFrame,
	depth *kinectviz.DepthFrame) (bool, error) {

	if depth == nil {
		return c.missing("depth"), nil
	}

	if ok, err := c.showColor(color); !ok || err != nil {
		return false, err
	}

	mapped := c.bufs.Points(bufMapped)

	if err := c.mapper.MapColorFrameToDepthSpace(depth.Samples, mapped); err != nil {
		return false, fmt.Errorf("error mapping color frame: %w", err)
	}

	return true, nil
}

func (c *Controller) showBodyMask(frame *kinectviz.MultiSourceFrame) (bool, error) {

	if frame.BodyIndex == nil {
		return c.missing("body index"), nil
	}

	ok, err := c.mapColor(frame.Color, frame.Depth)

	if !ok || err != nil {
		return false, err
	}

	d := frame.BodyIndex.Description

	err = convert.MaskBackground(c.bufs.Pixels(bufPixels), c.bufs.Points(bufMapped),
		frame.BodyIndex.Indexes, nil, d.Width, d.Height, 0)

	return err == nil, err
}

func (c *Controller) showBackgroundRemoved(frame *kinectviz.MultiSourceFrame) (bool, error) {

	ok, err := c.mapColor(frame.Color, frame.Depth)

	if !ok || err != nil {
		return false, err
	}

	d := frame.Depth.Description

	err = convert.MaskBackground(c.bufs.Pixels(bufPixels), c.bufs.Points(bufMapped),
		nil, frame.Depth.Samples, d.Width, d.Height, c.params.BackgroundThreshold)

	return err == nil, err
}

func (c *Controller) showBodyJoints(f *kinectviz.BodyFrame) bool {

	if f == nil {
		return c.missing("body")
	}

	c.bodies.UpdateBodies(f.Bodies)

	return true
}

// drawFaces binds face trackers to new bodies and redraws the face
// overlays
func (c *Controller) drawFaces(body *kinectviz.BodyFrame) {

	if c.faces == nil {
		return
	}

	if body != nil {
		face.BindTrackingIDs(c.faces, body.Bodies)
	}

	results := c.faces.LatestResults()

	switch c.mode {
	case FaceOnColor:
		c.faceOverlay.Update(results, c.params.FaceColorFeatures)

	case FaceOnInfrared:
		c.faceOverlay.Update(results, c.params.FaceInfraredFeatures)

		if c.catMask != nil {
			c.catMask.Update(results)
		}
	}
}
