package renderer

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// Camera generates primary rays using a pinhole model. The right/up/forward
// basis is cached and recomputed whenever the position changes.
type Camera struct {
	Eye     core.Vec3
	Target  core.Vec3
	Up      core.Vec3
	VFovDeg float64 // Vertical field of view in degrees
	forward core.Vec3
	right   core.Vec3
	upBasis core.Vec3
}

// NewCamera creates a camera looking from eye toward target
func NewCamera(eye, target, up core.Vec3, vfovDeg float64) *Camera {
	c := &Camera{
		Eye:     eye,
		Target:  target,
		Up:      up,
		VFovDeg: vfovDeg,
	}
	c.updateBasis()
	return c
}

// SetPosition moves the camera and recomputes its basis
func (c *Camera) SetPosition(eye, target core.Vec3) {
	c.Eye = eye
	c.Target = target
	c.updateBasis()
}

// Forward returns the camera's unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}

// Right returns the camera's unit right vector
func (c *Camera) Right() core.Vec3 {
	return c.right
}

func (c *Camera) updateBasis() {
	c.forward = c.Target.Subtract(c.Eye).Normalize()
	c.right = c.forward.Cross(c.Up).Normalize()
	c.upBasis = c.right.Cross(c.forward)
}

// FrameCamera places a camera framing the whole grid: offset from the grid
// center at 2.5x its bounding radius, looking back at the center
func FrameCamera(center core.Vec3, radius float64) *Camera {
	distance := radius * 2.5
	eye := center.Add(core.NewVec3(distance*0.7, distance*0.4, distance*0.7))
	return NewCamera(eye, center, core.NewVec3(0, 1, 0), 45.0)
}

// GetRay returns the unit-direction ray through pixel (x, y) of a
// width x height viewport. Pixel centers map to normalized device
// coordinates in [-1, 1], scaled by the aspect ratio and tan(fov/2).
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	aspect := float64(width) / float64(height)
	fovScale := math.Tan(c.VFovDeg * math.Pi / 180.0 / 2.0)

	ndcX := (float64(x)+0.5)/float64(width)*2.0 - 1.0
	ndcY := 1.0 - (float64(y)+0.5)/float64(height)*2.0

	direction := c.right.Multiply(ndcX * aspect * fovScale).
		Add(c.upBasis.Multiply(ndcY * fovScale)).
		Add(c.forward)

	return core.NewRay(c.Eye, direction.Normalize())
}
