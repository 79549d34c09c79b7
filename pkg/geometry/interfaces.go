package geometry

import (
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// Intersection contains information about a ray-surface intersection.
// Material is a copy, not a reference into the scene.
type Intersection struct {
	Point    core.Vec3         // World-space point of intersection
	Normal   core.Vec3         // Unit surface normal at the intersection
	T        float64           // Parameter t along the ray, always > 0
	Material material.Material // Material of the hit surface
	U, V     float64           // Surface coordinates, each in [0, 1)
}

// Intersectable is the shared intersection capability implemented by every
// shape. Callers hold this interface, never a concrete shape.
type Intersectable interface {
	Intersect(ray core.Ray) (Intersection, bool)
}
