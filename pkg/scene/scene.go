package scene

import (
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/lights"
)

// Scene is the immutable per-frame snapshot read by the render workers.
// It is assembled once before a frame starts; nothing mutates it while the
// parallel render pass reads it, so no locking is needed.
type Scene struct {
	Grid       *geometry.VoxelGrid
	Sun        lights.Directional
	SkyEnabled bool
}

// NewSnapshot assembles a fresh scene snapshot for one frame
func NewSnapshot(grid *geometry.VoxelGrid, skyEnabled bool) *Scene {
	return &Scene{
		Grid:       grid,
		Sun:        NewSun(),
		SkyEnabled: skyEnabled,
	}
}

// NewSun builds the frame's directional light from constant configuration
func NewSun() lights.Directional {
	return lights.NewDirectional(
		core.NewVec3(-0.6, -0.8, -0.4),
		core.NewVec3(1, 1, 1),
		1.2,
	)
}

// Center returns the center of the grid's padded bounds, for camera placement
func (s *Scene) Center() core.Vec3 {
	return s.Grid.Center()
}

// BoundingRadius returns the grid's bounding sphere radius
func (s *Scene) BoundingRadius() float64 {
	return s.Grid.BoundingRadius()
}
