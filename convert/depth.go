package convert

import (
	"errors"
	"fmt"

	"github.com/swdee/go-kinectviz"
)

// ErrZeroDepthRange is returned when the reliable depth range is too small
// to be mapped onto the byte range
var ErrZeroDepthRange = errors.New("reliable depth range maps to a zero divisor")

// DepthByteDivisor returns the divisor which shapes depth values up to
// maxReliable onto the range of a byte
func DepthByteDivisor(maxReliable uint16) (uint16, error) {

	divisor := maxReliable / 256

	if divisor == 0 {
		return 0, fmt.Errorf("max reliable distance %d: %w", maxReliable,
			ErrZeroDepthRange)
	}

	return divisor, nil
}

// ConvertDepth writes the BGRA gray scale representation of the depth
// samples to pixels.  Depths outside of [minReliable, maxReliable] are
// rendered black.  If the range can not be mapped ErrZeroDepthRange is
// returned and pixels are left untouched.
func ConvertDepth(samples []uint16, minReliable, maxReliable uint16,
	pixels []byte) error {

	if len(pixels) != len(samples)*kinectviz.BytesPerPixel {
		return fmt.Errorf("depth pixels %d for %d samples: %w",
			len(pixels), len(samples), kinectviz.ErrBufferSize)
	}

	divisor, err := DepthByteDivisor(maxReliable)

	if err != nil {
		return err
	}

	pos := 0

	for _, d := range samples {

		var intensity byte

		if d >= minReliable && d <= maxReliable {
			// values above 255*divisor wrap, as a byte cast does
			intensity = byte(d / divisor)
		}

		pixels[pos+0] = intensity
		pixels[pos+1] = intensity
		pixels[pos+2] = intensity
		pixels[pos+3] = 255
		pos += kinectviz.BytesPerPixel
	}

	return nil
}
