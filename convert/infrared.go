package convert

import (
	"fmt"
	"math"

	"github.com/swdee/go-kinectviz"
)

const (
	// InfraredSourceValueMaximum is the highest value an infrared sample
	// can hold
	InfraredSourceValueMaximum = float64(math.MaxUint16)
	// InfraredSceneValueAverage is the average infrared value of a typical
	// scene, as a ratio of the maximum
	InfraredSceneValueAverage = 0.08
	// InfraredSceneStandardDeviations is the number of standard deviations
	// above the average scene value mapped to full brightness
	InfraredSceneStandardDeviations = 3.0
	// InfraredOutputValueMinimum is the lower limit of the normalized
	// output, setting a brightness floor
	InfraredOutputValueMinimum = 0.01
	// InfraredOutputValueMaximum is the upper limit of the normalized output
	InfraredOutputValueMaximum = 1.0
)

// InfraredIntensity normalizes a single infrared sample to a gray level
func InfraredIntensity(sample uint16) byte {

	// scale the sample against the source range, then against the
	// expected scene brightness
	ratio := float64(sample) / InfraredSourceValueMaximum
	ratio /= InfraredSceneValueAverage * InfraredSceneStandardDeviations

	ratio = math.Min(InfraredOutputValueMaximum, ratio)
	ratio = math.Max(InfraredOutputValueMinimum, ratio)

	return byte(math.Round(ratio * 255))
}

// ConvertInfrared writes the BGRA representation of the infrared samples to
// pixels, which must hold exactly 4 bytes per sample
func ConvertInfrared(samples []uint16, pixels []byte) error {

	if len(pixels) != len(samples)*kinectviz.BytesPerPixel {
		return fmt.Errorf("infrared pixels %d for %d samples: %w",
			len(pixels), len(samples), kinectviz.ErrBufferSize)
	}

	pos := 0

	for _, s := range samples {
		intensity := InfraredIntensity(s)

		pixels[pos+0] = intensity // blue
		pixels[pos+1] = intensity // green
		pixels[pos+2] = intensity // red
		pixels[pos+3] = 255       // alpha
		pos += kinectviz.BytesPerPixel
	}

	return nil
}
