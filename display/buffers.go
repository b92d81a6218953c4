package display

import (
	"fmt"

	"github.com/swdee/go-kinectviz"
)

// bufferSet holds the named working buffers of the active mode.  Buffers
// are allocated once when a mode is entered and reused for every frame.
type bufferSet struct {
	pixels map[string][]byte
	points map[string][]kinectviz.DepthSpacePoint
}

// buffer names
const (
	bufPixels = "pixels"
	bufMapped = "mapped"
)

// newBufferSet returns an empty bufferSet
func newBufferSet() *bufferSet {
	return &bufferSet{
		pixels: make(map[string][]byte),
		points: make(map[string][]kinectviz.DepthSpacePoint),
	}
}

// CreatePixels allocates a BGRA buffer for a frame of the given size.
// Calling it twice with the same name returns an error.
func (b *bufferSet) CreatePixels(name string, desc kinectviz.FrameDescription) error {

	if _, exists := b.pixels[name]; exists {
		return fmt.Errorf("pixel buffer %q already exists", name)
	}

	b.pixels[name] = make([]byte, desc.PixelCount()*kinectviz.BytesPerPixel)
	return nil
}

// CreatePoints allocates a coordinate mapping buffer for a frame of the
// given size
func (b *bufferSet) CreatePoints(name string, desc kinectviz.FrameDescription) error {

	if _, exists := b.points[name]; exists {
		return fmt.Errorf("point buffer %q already exists", name)
	}

	b.points[name] = make([]kinectviz.DepthSpacePoint, desc.PixelCount())
	return nil
}

// Pixels returns the named BGRA buffer, nil if it was not created
func (b *bufferSet) Pixels(name string) []byte {
	return b.pixels[name]
}

// Points returns the named mapping buffer, nil if it was not created
func (b *bufferSet) Points(name string) []kinectviz.DepthSpacePoint {
	return b.points[name]
}

// Size returns the total number of bytes held
func (b *bufferSet) Size() int {

	n := 0

	for _, p := range b.pixels {
		n += len(p)
	}

	for _, p := range b.points {
		n += len(p) * 8
	}

	return n
}
