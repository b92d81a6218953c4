package source

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/swdee/go-kinectviz"
)

// Intrinsics are the pinhole camera parameters of the depth camera, in
// depth pixels
type Intrinsics struct {
	FocalX     float64
	FocalY     float64
	PrincipalX float64
	PrincipalY float64
}

// DepthIntrinsics returns intrinsics approximating a 512x424 time of flight
// depth camera
func DepthIntrinsics() Intrinsics {
	return Intrinsics{
		FocalX:     365.5,
		FocalY:     365.5,
		PrincipalX: 256,
		PrincipalY: 212,
	}
}

// PinholeMapper projects camera space onto the depth image with a pinhole
// model.  The color camera is treated as sharing the depth camera's optical
// axis and field of view, so color pixels map proportionally.
type PinholeMapper struct {
	in    Intrinsics
	depth kinectviz.FrameDescription
	color kinectviz.FrameDescription
}

// NewPinholeMapper returns a mapper for the given stream sizes
func NewPinholeMapper(in Intrinsics, depth, color kinectviz.FrameDescription) *PinholeMapper {
	return &PinholeMapper{
		in:    in,
		depth: depth,
		color: color,
	}
}

// MapCameraPointToDepthSpace projects a camera space point, in meters with
// Y up, onto the depth image.  Points at or behind the camera are unmapped.
func (m *PinholeMapper) MapCameraPointToDepthSpace(p r3.Vec) kinectviz.DepthSpacePoint {

	if p.Z <= 0 {
		return kinectviz.UnmappedPoint
	}

	n := r3.Scale(1/p.Z, p)

	return kinectviz.DepthSpacePoint{
		X: float32(m.in.PrincipalX + m.in.FocalX*n.X),
		Y: float32(m.in.PrincipalY - m.in.FocalY*n.Y),
	}
}

// MapDepthPointToCameraSpace is the inverse projection of a depth pixel at
// the given depth in millimeters
func (m *PinholeMapper) MapDepthPointToCameraSpace(x, y float64, depthMM uint16) r3.Vec {

	z := float64(depthMM) / 1000

	return r3.Vec{
		X: (x - m.in.PrincipalX) / m.in.FocalX * z,
		Y: (m.in.PrincipalY - y) / m.in.FocalY * z,
		Z: z,
	}
}

// DepthToColor returns the color image location of a depth pixel
func (m *PinholeMapper) DepthToColor(x, y float64) (float64, float64) {
	return x * float64(m.color.Width) / float64(m.depth.Width),
		y * float64(m.color.Height) / float64(m.depth.Height)
}

// MapColorFrameToDepthSpace fills out with the depth location of every
// color pixel, pixels whose depth sample is zero are unmapped
func (m *PinholeMapper) MapColorFrameToDepthSpace(depth []uint16,
	out []kinectviz.DepthSpacePoint) error {

	if len(depth) != m.depth.PixelCount() {
		return fmt.Errorf("depth samples %d for %dx%d: %w", len(depth),
			m.depth.Width, m.depth.Height, kinectviz.ErrBufferSize)
	}

	if len(out) != m.color.PixelCount() {
		return fmt.Errorf("mapped points %d for %dx%d: %w", len(out),
			m.color.Width, m.color.Height, kinectviz.ErrBufferSize)
	}

	cw, ch := m.color.Width, m.color.Height
	dw, dh := m.depth.Width, m.depth.Height

	for y := 0; y < ch; y++ {
		dy := y * dh / ch

		for x := 0; x < cw; x++ {
			dx := x * dw / cw

			i := y*cw + x

			if depth[dy*dw+dx] == 0 {
				out[i] = kinectviz.UnmappedPoint
				continue
			}

			out[i] = kinectviz.DepthSpacePoint{X: float32(dx), Y: float32(dy)}
		}
	}

	return nil
}
