package geometry

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// Box represents an axis-aligned cube defined by a center and edge length
type Box struct {
	Center   core.Vec3
	Size     float64 // Edge length
	Material material.Material
}

// NewBox creates a new axis-aligned box
func NewBox(center core.Vec3, size float64, mat material.Material) *Box {
	return &Box{Center: center, Size: size, Material: mat}
}

// Intersect tests the ray against the box using the slab method
func (b *Box) Intersect(ray core.Ray) (Intersection, bool) {
	halfSize := b.Size / 2.0
	minBounds := b.Center.Subtract(core.NewVec3(halfSize, halfSize, halfSize))
	maxBounds := b.Center.Add(core.NewVec3(halfSize, halfSize, halfSize))

	invDir := core.NewVec3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)

	t1 := (minBounds.X - ray.Origin.X) * invDir.X
	t2 := (maxBounds.X - ray.Origin.X) * invDir.X
	t3 := (minBounds.Y - ray.Origin.Y) * invDir.Y
	t4 := (maxBounds.Y - ray.Origin.Y) * invDir.Y
	t5 := (minBounds.Z - ray.Origin.Z) * invDir.Z
	t6 := (maxBounds.Z - ray.Origin.Z) * invDir.Z

	tmin := max(min(t1, t2), min(t3, t4), min(t5, t6))
	tmax := min(max(t1, t2), max(t3, t4), max(t5, t6))

	if tmax < 0 || tmin > tmax {
		return Intersection{}, false
	}

	t := tmin
	if t <= 0 {
		t = tmax
	}
	if t <= 0 {
		return Intersection{}, false
	}

	point := ray.At(t)
	local := point.Subtract(b.Center)
	absLocal := core.NewVec3(math.Abs(local.X), math.Abs(local.Y), math.Abs(local.Z))

	// The face is the axis with the largest local offset; UVs come from the
	// other two axes rescaled from [-halfSize, halfSize] to [0, 1].
	var normal core.Vec3
	var u, v float64
	switch {
	case absLocal.X > absLocal.Y && absLocal.X > absLocal.Z:
		normal = core.NewVec3(math.Copysign(1, local.X), 0, 0)
		u = (local.Z/halfSize + 1) * 0.5
		v = (local.Y/halfSize + 1) * 0.5
	case absLocal.Y > absLocal.Z:
		normal = core.NewVec3(0, math.Copysign(1, local.Y), 0)
		u = (local.X/halfSize + 1) * 0.5
		v = (local.Z/halfSize + 1) * 0.5
	default:
		normal = core.NewVec3(0, 0, math.Copysign(1, local.Z))
		u = (local.X/halfSize + 1) * 0.5
		v = (local.Y/halfSize + 1) * 0.5
	}

	return Intersection{
		Point:    point,
		Normal:   normal,
		T:        t,
		Material: b.Material,
		U:        u,
		V:        v,
	}, true
}
