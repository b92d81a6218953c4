// Package source provides a synthetic multi-source frame generator and a
// pinhole coordinate mapper, standing in for a depth sensor.
package source

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz"
	"github.com/swdee/go-kinectviz/convert"
	"github.com/swdee/go-kinectviz/skeleton"
)

// Params configures the synthetic sensor
type Params struct {
	// FPS is the frame rate frames are delivered at
	FPS int
	// BodyCount is the number of body tracking slots
	BodyCount int
	// TrackedBodies is the number of slots holding a tracked body
	TrackedBodies int
	// Depth, Infrared and Color are the stream frame sizes, infrared must
	// match depth
	Depth    kinectviz.FrameDescription
	Infrared kinectviz.FrameDescription
	Color    kinectviz.FrameDescription
	// MinReliableDistance and MaxReliableDistance in millimeters are
	// reported with every depth frame
	MinReliableDistance uint16
	MaxReliableDistance uint16
	// BackgroundDistance is the depth of the back wall in millimeters
	BackgroundDistance uint16
	// ExpireEvery makes every Nth frame expire before it is acquired, zero
	// disables expiry
	ExpireEvery int
}

// DefaultParams returns the stream sizes and ranges of a Kinect v2 sensor
func DefaultParams() Params {
	return Params{
		FPS:                 30,
		BodyCount:           6,
		TrackedBodies:       2,
		Depth:               kinectviz.FrameDescription{Width: 512, Height: 424},
		Infrared:            kinectviz.FrameDescription{Width: 512, Height: 424},
		Color:               kinectviz.FrameDescription{Width: 1920, Height: 1080},
		MinReliableDistance: 500,
		MaxReliableDistance: 4500,
		BackgroundDistance:  4000,
	}
}

// bone and head radius of a body silhouette in meters
const (
	limbRadius = 0.06
	headRadius = 0.10
)

// shirtColors paint the bodies in the color stream, BGR
var shirtColors = [][3]byte{
	{40, 40, 200},
	{30, 140, 230},
	{60, 170, 60},
	{200, 90, 30},
	{130, 0, 75},
	{200, 120, 200},
}

// Synthetic is a FrameSource generating animated bodies in front of a wall.
// Frame buffers are reused, a frame is only valid until the next call to
// AcquireFrame.
type Synthetic struct {
	params Params
	mapper *PinholeMapper
	faces  *FaceTracker
	log    *zap.SugaredLogger

	ticker    *time.Ticker
	start     time.Time
	seq       uint64
	available bool

	infrared  kinectviz.InfraredFrame
	depth     kinectviz.DepthFrame
	color     kinectviz.ColorFrame
	bodyIndex kinectviz.BodyIndexFrame
	body      kinectviz.BodyFrame
	points    [kinectviz.JointCount]kinectviz.DepthSpacePoint
}

// NewSynthetic returns a synthetic sensor
func NewSynthetic(p Params, log *zap.SugaredLogger) (*Synthetic, error) {

	if p.FPS <= 0 {
		return nil, fmt.Errorf("fps must be > 0")
	}

	if p.BodyCount <= 0 {
		return nil, fmt.Errorf("body count must be > 0")
	}

	if p.TrackedBodies < 0 || p.TrackedBodies > p.BodyCount {
		return nil, fmt.Errorf("tracked bodies %d must be within 0..%d",
			p.TrackedBodies, p.BodyCount)
	}

	if p.Infrared != p.Depth {
		return nil, fmt.Errorf("infrared size %dx%d must match depth size %dx%d",
			p.Infrared.Width, p.Infrared.Height, p.Depth.Width, p.Depth.Height)
	}

	for _, d := range []kinectviz.FrameDescription{p.Depth, p.Color} {
		if d.Width <= 0 || d.Height <= 0 {
			return nil, fmt.Errorf("invalid frame size %dx%d", d.Width, d.Height)
		}
	}

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	mapper := NewPinholeMapper(DepthIntrinsics(), p.Depth, p.Color)

	s := &Synthetic{
		params:    p,
		mapper:    mapper,
		faces:     NewFaceTracker(mapper, p.BodyCount),
		log:       log,
		available: true,
		infrared: kinectviz.InfraredFrame{
			Description: p.Infrared,
			Samples:     make([]uint16, p.Infrared.PixelCount()),
		},
		depth: kinectviz.DepthFrame{
			Description:         p.Depth,
			Samples:             make([]uint16, p.Depth.PixelCount()),
			MinReliableDistance: p.MinReliableDistance,
			MaxReliableDistance: p.MaxReliableDistance,
		},
		color: kinectviz.ColorFrame{
			Description: p.Color,
			Pixels:      make([]byte, p.Color.PixelCount()*kinectviz.BytesPerPixel),
		},
		bodyIndex: kinectviz.BodyIndexFrame{
			Description: p.Depth,
			Indexes:     make([]byte, p.Depth.PixelCount()),
		},
		body: kinectviz.BodyFrame{
			Bodies: make([]kinectviz.Body, p.BodyCount),
		},
	}

	return s, nil
}

// Description returns the frame size of a stream
func (s *Synthetic) Description(src kinectviz.SourceType) kinectviz.FrameDescription {

	switch src {
	case kinectviz.SourceInfrared:
		return s.params.Infrared
	case kinectviz.SourceColor:
		return s.params.Color
	case kinectviz.SourceDepth, kinectviz.SourceBodyIndex:
		return s.params.Depth
	}

	return kinectviz.FrameDescription{}
}

// BodyCount returns the number of body tracking slots
func (s *Synthetic) BodyCount() int {
	return s.params.BodyCount
}

// CoordinateMapper returns the pinhole mapper
func (s *Synthetic) CoordinateMapper() kinectviz.CoordinateMapper {
	return s.mapper
}

// Faces returns the face tracker fed by the generated bodies
func (s *Synthetic) Faces() *FaceTracker {
	return s.faces
}

// IsAvailable returns false once the sensor is closed
func (s *Synthetic) IsAvailable() bool {
	return s.available
}

// Close stops frame delivery
func (s *Synthetic) Close() error {

	if s.ticker != nil {
		s.ticker.Stop()
	}

	s.available = false
	return nil
}

// AcquireFrame waits for the next frame interval and generates a frame
func (s *Synthetic) AcquireFrame(ctx context.Context) (*kinectviz.MultiSourceFrame, error) {

	if !s.available {
		return nil, fmt.Errorf("synthetic sensor closed")
	}

	if s.ticker == nil {
		s.ticker = time.NewTicker(time.Second / time.Duration(s.params.FPS))
		s.start = time.Now()

		s.log.Infow("synthetic sensor started", "fps", s.params.FPS,
			"bodies", s.params.TrackedBodies,
			"depth", fmt.Sprintf("%dx%d", s.params.Depth.Width, s.params.Depth.Height),
			"color", fmt.Sprintf("%dx%d", s.params.Color.Width, s.params.Color.Height))
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.ticker.C:
	}

	seq := s.seq
	s.seq++

	if s.params.ExpireEvery > 0 && seq%uint64(s.params.ExpireEvery) == uint64(s.params.ExpireEvery-1) {
		return nil, kinectviz.ErrFrameExpired
	}

	return s.Generate(time.Since(s.start).Seconds()), nil
}

// Generate renders every stream at time t seconds
func (s *Synthetic) Generate(t float64) *kinectviz.MultiSourceFrame {

	s.generateBodies(t)
	s.generateDepth()
	s.generateInfrared()
	s.generateColor()
	s.faces.update(s.body.Bodies, t)

	return &kinectviz.MultiSourceFrame{
		Infrared:  &s.infrared,
		Depth:     &s.depth,
		Color:     &s.color,
		BodyIndex: &s.bodyIndex,
		Body:      &s.body,
	}
}

func (s *Synthetic) generateBodies(t float64) {

	for i := range s.body.Bodies {
		if i >= s.params.TrackedBodies {
			s.body.Bodies[i] = kinectviz.Body{}
			continue
		}

		b := animateBody(i, t)

		for jt := range b.Joints {
			s.points[jt] = s.mapper.MapCameraPointToDepthSpace(b.Joints[jt].Position)
		}

		b.ClippedEdges = clippedEdges(s.points[:], s.params.Depth.Width,
			s.params.Depth.Height)

		s.body.Bodies[i] = b
	}
}

// generateDepth draws the back wall then every tracked body as capsules
// along its bones
func (s *Synthetic) generateDepth() {

	d := s.params.Depth

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			i := y*d.Width + x

			// a strip of unknown depth down the left edge, as cast by the
			// emitter offset
			if x < 8 {
				s.depth.Samples[i] = 0
			} else {
				s.depth.Samples[i] = s.params.BackgroundDistance
			}

			s.bodyIndex.Indexes[i] = convert.NoBody
		}
	}

	in := s.mapper.in

	for slot, b := range s.body.Bodies {
		if !b.IsTracked {
			continue
		}

		for _, bone := range skeleton.Bones() {
			p0 := b.Joints[bone.Start].Position
			p1 := b.Joints[bone.End].Position

			radius := limbRadius * in.FocalX / ((p0.Z + p1.Z) / 2)

			s.fillCapsule(s.mapper.MapCameraPointToDepthSpace(p0),
				s.mapper.MapCameraPointToDepthSpace(p1), radius,
				millimeters((p0.Z+p1.Z)/2), byte(slot))
		}

		head := b.Joints[kinectviz.Head].Position
		hp := s.mapper.MapCameraPointToDepthSpace(head)

		s.fillCapsule(hp, hp, headRadius*in.FocalX/head.Z, millimeters(head.Z),
			byte(slot))
	}
}

// fillCapsule sets the depth and body index of every pixel within radius of
// the segment a-b, keeping nearer surfaces already drawn
func (s *Synthetic) fillCapsule(a, b kinectviz.DepthSpacePoint, radius float64,
	depth uint16, index byte) {

	if a.IsUnmapped() || b.IsUnmapped() {
		return
	}

	d := s.params.Depth
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)

	minX := int(math.Max(0, math.Floor(math.Min(ax, bx)-radius)))
	maxX := int(math.Min(float64(d.Width-1), math.Ceil(math.Max(ax, bx)+radius)))
	minY := int(math.Max(0, math.Floor(math.Min(ay, by)-radius)))
	maxY := int(math.Min(float64(d.Height-1), math.Ceil(math.Max(ay, by)+radius)))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if segmentDistance(float64(x), float64(y), ax, ay, bx, by) > radius {
				continue
			}

			i := y*d.Width + x

			if s.bodyIndex.Indexes[i] != convert.NoBody && s.depth.Samples[i] <= depth {
				continue
			}

			s.depth.Samples[i] = depth
			s.bodyIndex.Indexes[i] = index
		}
	}
}

// generateInfrared derives reflectivity from depth, near surfaces return
// more light
func (s *Synthetic) generateInfrared() {

	for i, d := range s.depth.Samples {
		if d == 0 {
			s.infrared.Samples[i] = 0
			continue
		}

		v := 9000 * 1000 / float64(d)
		s.infrared.Samples[i] = uint16(math.Min(v, math.MaxUint16))
	}
}

// generateColor paints a gradient backdrop with each body in its shirt
// color
func (s *Synthetic) generateColor() {

	c := s.params.Color
	d := s.params.Depth
	px := s.color.Pixels

	for y := 0; y < c.Height; y++ {
		dy := y * d.Height / c.Height

		for x := 0; x < c.Width; x++ {
			dx := x * d.Width / c.Width
			i := (y*c.Width + x) * kinectviz.BytesPerPixel

			if idx := s.bodyIndex.Indexes[dy*d.Width+dx]; idx != convert.NoBody {
				shirt := shirtColors[int(idx)%len(shirtColors)]
				px[i], px[i+1], px[i+2] = shirt[0], shirt[1], shirt[2]
			} else {
				px[i] = byte(80 + y*100/c.Height)
				px[i+1] = 60
				px[i+2] = byte(40 + x*120/c.Width)
			}

			px[i+3] = 0xff
		}
	}
}

// segmentDistance returns the distance from point p to the segment a-b
func segmentDistance(px, py, ax, ay, bx, by float64) float64 {

	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy

	t := 0.0

	if l2 > 0 {
		t = math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/l2))
	}

	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

func millimeters(m float64) uint16 {
	return uint16(math.Round(m * 1000))
}
