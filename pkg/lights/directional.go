package lights

import (
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// Directional is a fixed directional light. It is rebuilt each frame from
// constant configuration and never mutated by the engine.
type Directional struct {
	Dir       core.Vec3 // Unit direction the light travels (toward the scene)
	Color     core.Vec3
	Intensity float64
}

// NewDirectional creates a directional light with a normalized direction
func NewDirectional(dir, color core.Vec3, intensity float64) Directional {
	return Directional{
		Dir:       dir.Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}
