package kinectviz

import (
	"context"
	"errors"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BytesPerPixel is the size of a BGRA pixel in a display buffer
const BytesPerPixel = 4

var (
	// ErrFrameExpired is returned by a FrameSource when the frame it was
	// notified of has been released before it could be acquired
	ErrFrameExpired = errors.New("frame expired before it was acquired")
	// ErrBufferSize is returned when a buffer does not match the dimensions
	// it is being used with
	ErrBufferSize = errors.New("buffer size mismatch")
)

// SourceType is a bit set of the sensor streams requested from a FrameSource
type SourceType int

const (
	SourceColor     SourceType = 1
	SourceInfrared  SourceType = 2
	SourceDepth     SourceType = 8
	SourceBodyIndex SourceType = 16
	SourceBody      SourceType = 32
)

// Has returns true if all the sources in s are requested
func (t SourceType) Has(s SourceType) bool {
	return t&s == s
}

// String returns the requested stream names joined with '|'
func (t SourceType) String() string {

	names := []struct {
		src  SourceType
		name string
	}{
		{SourceColor, "Color"},
		{SourceInfrared, "Infrared"},
		{SourceDepth, "Depth"},
		{SourceBodyIndex, "BodyIndex"},
		{SourceBody, "Body"},
	}

	parts := make([]string, 0, len(names))

	for _, n := range names {
		if t.Has(n.src) {
			parts = append(parts, n.name)
		}
	}

	if len(parts) == 0 {
		return "None"
	}

	return strings.Join(parts, "|")
}

// FrameDescription holds the fixed dimensions of a stream
type FrameDescription struct {
	Width  int
	Height int
}

// PixelCount returns the number of pixels in a frame
func (d FrameDescription) PixelCount() int {
	return d.Width * d.Height
}

// InfraredFrame is a single infrared frame, one sample per pixel
type InfraredFrame struct {
	Description FrameDescription
	Samples     []uint16
}

// DepthFrame is a single depth frame, one sample in millimeters per pixel
type DepthFrame struct {
	Description FrameDescription
	Samples     []uint16
	// MinReliableDistance and MaxReliableDistance bound the range the sensor
	// currently considers reliable
	MinReliableDistance uint16
	MaxReliableDistance uint16
}

// ColorFrame is a single color frame already converted to BGRA
type ColorFrame struct {
	Description FrameDescription
	Pixels      []byte
}

// BodyIndexFrame is a per depth pixel map of which body occupies the pixel
type BodyIndexFrame struct {
	Description FrameDescription
	Indexes     []byte
}

// BodyFrame holds one Body per tracking slot
type BodyFrame struct {
	Bodies []Body
}

// MultiSourceFrame is the set of frames delivered together by a FrameSource.
// Streams that were not requested or not available are nil.
type MultiSourceFrame struct {
	Infrared  *InfraredFrame
	Depth     *DepthFrame
	Color     *ColorFrame
	BodyIndex *BodyIndexFrame
	Body      *BodyFrame
}

// FrameSource delivers multi-source frames from a sensor
type FrameSource interface {
	// Description returns the frame dimensions of a single stream
	Description(src SourceType) FrameDescription
	// BodyCount is the number of body tracking slots
	BodyCount() int
	// CoordinateMapper returns the sensor's coordinate mapper
	CoordinateMapper() CoordinateMapper
	// AcquireFrame blocks until the next frame is available.  A frame that
	// has expired returns ErrFrameExpired.
	AcquireFrame(ctx context.Context) (*MultiSourceFrame, error)
}

// DepthSpacePoint is a 2D location in the depth image
type DepthSpacePoint struct {
	X float32
	Y float32
}

// UnmappedPoint is the sentinel returned for points with no correspondence
var UnmappedPoint = DepthSpacePoint{
	X: float32(math.Inf(-1)),
	Y: float32(math.Inf(-1)),
}

// IsUnmapped returns true if the point is the sentinel (-inf, -inf)
func (p DepthSpacePoint) IsUnmapped() bool {
	return math.IsInf(float64(p.X), -1) && math.IsInf(float64(p.Y), -1)
}

// CoordinateMapper projects points between the sensor coordinate spaces
type CoordinateMapper interface {
	// MapCameraPointToDepthSpace projects a camera space point onto the
	// depth image
	MapCameraPointToDepthSpace(p r3.Vec) DepthSpacePoint
	// MapColorFrameToDepthSpace fills out with the depth space location of
	// every color pixel, using UnmappedPoint where there is none
	MapColorFrameToDepthSpace(depth []uint16, out []DepthSpacePoint) error
}
