package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Letterbox scales frames to fit an output size whilst keeping their aspect
// ratio, padding the remainder
type Letterbox struct {
	frame  image.Point
	output image.Point
	// scaled is the frame size after scaling, before padding
	scaled image.Point
	// pad is the left and top padding
	pad       image.Point
	scale     float32
	scaledMat gocv.Mat
}

// NewLetterbox returns a letterbox fitting frames of frameWidth x
// frameHeight into an output of outWidth x outHeight
func NewLetterbox(frameWidth, frameHeight, outWidth, outHeight int) *Letterbox {

	lb := &Letterbox{
		frame:     image.Pt(frameWidth, frameHeight),
		output:    image.Pt(outWidth, outHeight),
		scaledMat: gocv.NewMat(),
	}

	lb.fit()

	return lb
}

// Close frees the scaled frame
func (lb *Letterbox) Close() error {
	return lb.scaledMat.Close()
}

// fit picks the axis that limits scaling and centers the frame on the other
func (lb *Letterbox) fit() {

	sx := float32(lb.output.X) / float32(lb.frame.X)
	sy := float32(lb.output.Y) / float32(lb.frame.Y)

	lb.scaled = lb.output

	if sx < sy {
		lb.scale = sx
		lb.scaled.Y = int(float32(lb.frame.Y) * sx)
	} else {
		lb.scale = sy
		lb.scaled.X = int(float32(lb.frame.X) * sy)
	}

	lb.pad = lb.output.Sub(lb.scaled).Div(2)
}

// Fits returns true if the letterbox was calculated for the given sizes
func (lb *Letterbox) Fits(frameWidth, frameHeight, outWidth, outHeight int) bool {
	return lb.frame == image.Pt(frameWidth, frameHeight) &&
		lb.output == image.Pt(outWidth, outHeight)
}

// Resize scales frame into out, padding with color
func (lb *Letterbox) Resize(frame gocv.Mat, out *gocv.Mat, color color.RGBA) {

	gocv.Resize(frame, &lb.scaledMat, lb.scaled, 0, 0, gocv.InterpolationArea)

	rest := lb.output.Sub(lb.scaled).Sub(lb.pad)

	gocv.CopyMakeBorder(lb.scaledMat, out, lb.pad.Y, rest.Y, lb.pad.X, rest.X,
		gocv.BorderConstant, color)
}

// ScaleFactor returns the frame to output scale
func (lb *Letterbox) ScaleFactor() float32 {
	return lb.scale
}

// XPad returns the left padding
func (lb *Letterbox) XPad() int {
	return lb.pad.X
}

// YPad returns the top padding
func (lb *Letterbox) YPad() int {
	return lb.pad.Y
}
