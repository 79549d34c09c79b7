package geometry

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Normal vector (normalized on construction)
	Material material.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Intersect tests the ray against the plane. The returned normal always
// faces the incoming ray.
func (p *Plane) Intersect(ray core.Ray) (Intersection, bool) {
	denom := p.Normal.Dot(ray.Direction)

	// Near-parallel rays never produce a stable intersection
	if math.Abs(denom) < 1e-6 {
		return Intersection{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denom
	if t <= 0 {
		return Intersection{}, false
	}

	normal := p.Normal
	if denom > 0 {
		normal = normal.Negate()
	}

	return Intersection{
		Point:    ray.At(t),
		Normal:   normal,
		T:        t,
		Material: p.Material,
	}, true
}
