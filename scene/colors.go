package scene

import "image/color"

// named colors used by the overlays
var (
	Transparent = color.RGBA{}
	Black       = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}       // #FF0000
	Orange      = color.RGBA{R: 255, G: 165, B: 0, A: 255}     // #FFA500
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}     // #FFFF00
	Green       = color.RGBA{R: 0, G: 128, B: 0, A: 255}       // #008000
	Blue        = color.RGBA{R: 0, G: 0, B: 255, A: 255}       // #0000FF
	LightBlue   = color.RGBA{R: 173, G: 216, B: 230, A: 255}   // #ADD8E6
	Indigo      = color.RGBA{R: 75, G: 0, B: 130, A: 255}      // #4B0082
	Violet      = color.RGBA{R: 238, G: 130, B: 238, A: 255}   // #EE82EE
)
