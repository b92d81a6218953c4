package render

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// GrayscaleMap leaves depth images as grey scale
const GrayscaleMap = gocv.ColormapTypes(9999)

var colormapNames = map[string]gocv.ColormapTypes{
	"grayscale": GrayscaleMap,
	"autumn":    gocv.ColormapAutumn,
	"bone":      gocv.ColormapBone,
	"jet":       gocv.ColormapJet,
	"winter":    gocv.ColormapWinter,
	"rainbow":   gocv.ColormapRainbow,
	"ocean":     gocv.ColormapOcean,
	"summer":    gocv.ColormapSummer,
	"spring":    gocv.ColormapSpring,
	"cool":      gocv.ColormapCool,
	"hsv":       gocv.ColormapHsv,
	"pink":      gocv.ColormapPink,
	"hot":       gocv.ColormapHot,
	"parula":    gocv.ColormapParula,
}

// ParseColormap returns the colormap with the given name
func ParseColormap(name string) (gocv.ColormapTypes, error) {

	if name == "" {
		return GrayscaleMap, nil
	}

	cm, ok := colormapNames[strings.ToLower(name)]

	if !ok {
		return 0, fmt.Errorf("unknown colormap %q", name)
	}

	return cm, nil
}

// applyColormap colors a grey scale BGR image in place
func applyColormap(img *gocv.Mat, cm gocv.ColormapTypes) {

	if cm == GrayscaleMap {
		return
	}

	grey := gocv.NewMat()
	defer grey.Close()

	gocv.CvtColor(*img, &grey, gocv.ColorBGRToGray)
	gocv.ApplyColorMap(grey, img, cm)
}
