package convert

import (
	"fmt"
	"math"

	"github.com/swdee/go-kinectviz"
)

// NoBody is the body index value of a depth pixel not occupied by a body
const NoBody = 0xff

// MaskBackground zeroes every color pixel (all four bytes) which does not
// correspond to a foreground depth pixel.  mapped holds the depth space
// location of each color pixel.
//
// A color pixel is background when its mapping is the unmapped sentinel,
// falls outside the depth image, or, at the mapped depth pixel, bodyIndex
// holds NoBody or depth exceeds threshold.  Either bodyIndex or depth may be
// nil to skip that test.
func MaskBackground(pixels []byte, mapped []kinectviz.DepthSpacePoint,
	bodyIndex []byte, depth []uint16, depthWidth, depthHeight int,
	threshold uint16) error {

	if len(pixels) != len(mapped)*kinectviz.BytesPerPixel {
		return fmt.Errorf("color pixels %d for %d mapped points: %w",
			len(pixels), len(mapped), kinectviz.ErrBufferSize)
	}

	depthPixels := depthWidth * depthHeight

	if bodyIndex != nil && len(bodyIndex) != depthPixels {
		return fmt.Errorf("body index %d for %dx%d depth: %w",
			len(bodyIndex), depthWidth, depthHeight, kinectviz.ErrBufferSize)
	}

	if depth != nil && len(depth) != depthPixels {
		return fmt.Errorf("depth %d for %dx%d depth: %w",
			len(depth), depthWidth, depthHeight, kinectviz.ErrBufferSize)
	}

	for colorIndex, pt := range mapped {

		if isForeground(pt, bodyIndex, depth, depthWidth, depthHeight, threshold) {
			continue
		}

		// no matching body, make it black and transparent
		pos := colorIndex * kinectviz.BytesPerPixel
		pixels[pos+0] = 0
		pixels[pos+1] = 0
		pixels[pos+2] = 0
		pixels[pos+3] = 0
	}

	return nil
}

// isForeground checks a single mapped color pixel against the depth data
func isForeground(pt kinectviz.DepthSpacePoint, bodyIndex []byte,
	depth []uint16, depthWidth, depthHeight int, threshold uint16) bool {

	if pt.IsUnmapped() {
		return false
	}

	x, ok := nearestPixel(pt.X)

	if !ok || x < 0 || x >= depthWidth {
		return false
	}

	y, ok := nearestPixel(pt.Y)

	if !ok || y < 0 || y >= depthHeight {
		return false
	}

	depthIndex := y*depthWidth + x

	if bodyIndex != nil && bodyIndex[depthIndex] == NoBody {
		return false
	}

	if depth != nil && depth[depthIndex] > threshold {
		return false
	}

	return true
}

// nearestPixel rounds a depth space coordinate to a pixel index.  Returns
// false for coordinates that are not finite.
func nearestPixel(v float32) (int, bool) {

	f := math.Floor(float64(v) + 0.5)

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}

	// anything this large is off the image anyway
	if f > math.MaxInt32 || f < math.MinInt32 {
		return -1, true
	}

	return int(f), true
}
