package geometry

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// Default traversal budgets for primary rays
const (
	DefaultMaxDistance = 50.0
	DefaultMaxSteps    = 100
)

// CellKey identifies a unit-size grid cell. A cell occupies the world-space
// region [X, X+1) x [Y, Y+1) x [Z, Z+1).
type CellKey struct {
	X, Y, Z int
}

// VoxelGrid is a sparse map of integer cell coordinates to materials.
// It is populated once at scene-construction time and read-only afterwards;
// the center/radius caches are recomputed on demand and invalidated by the
// next insertion, so they must not be first read concurrently with a render.
type VoxelGrid struct {
	cells        map[CellKey]material.Material
	boundsMin    core.Vec3
	boundsMax    core.Vec3
	hasBounds    bool
	center       core.Vec3
	radius       float64
	boundsCached bool
}

// NewVoxelGrid creates an empty grid
func NewVoxelGrid() *VoxelGrid {
	return &VoxelGrid{
		cells: make(map[CellKey]material.Material),
	}
}

// Insert stores a material at the given cell, maintaining the running
// min/max bounds in O(1) and invalidating the cached center/radius
func (g *VoxelGrid) Insert(x, y, z int, m material.Material) {
	g.cells[CellKey{x, y, z}] = m
	g.boundsCached = false

	p := core.NewVec3(float64(x), float64(y), float64(z))
	if !g.hasBounds {
		g.boundsMin = p
		g.boundsMax = p
		g.hasBounds = true
		return
	}
	g.boundsMin.X = min(g.boundsMin.X, p.X)
	g.boundsMin.Y = min(g.boundsMin.Y, p.Y)
	g.boundsMin.Z = min(g.boundsMin.Z, p.Z)
	g.boundsMax.X = max(g.boundsMax.X, p.X)
	g.boundsMax.Y = max(g.boundsMax.Y, p.Y)
	g.boundsMax.Z = max(g.boundsMax.Z, p.Z)
}

// Len returns the number of occupied cells
func (g *VoxelGrid) Len() int {
	return len(g.cells)
}

// At returns the material stored at the given cell, if any
func (g *VoxelGrid) At(x, y, z int) (material.Material, bool) {
	m, ok := g.cells[CellKey{x, y, z}]
	return m, ok
}

// Bounds returns the grid's padded world-space bounding box. Cells occupy
// [k, k+1) per axis, so the maximum corner is padded by 1.1 and the minimum
// by 0.1 as a safety margin. An empty grid yields a degenerate zero box.
func (g *VoxelGrid) Bounds() (core.Vec3, core.Vec3) {
	if !g.hasBounds || len(g.cells) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	bmin := g.boundsMin.Subtract(core.NewVec3(0.1, 0.1, 0.1))
	bmax := g.boundsMax.Add(core.NewVec3(1.1, 1.1, 1.1))
	return bmin, bmax
}

// updateCachedValues recomputes the cached center and bounding radius
func (g *VoxelGrid) updateCachedValues() {
	if g.boundsCached {
		return
	}
	bmin, bmax := g.Bounds()
	g.center = bmin.Add(bmax).Multiply(0.5)
	g.radius = bmax.Subtract(g.center).Length()
	g.boundsCached = true
}

// Center returns the center of the padded bounding box
func (g *VoxelGrid) Center() core.Vec3 {
	g.updateCachedValues()
	return g.center
}

// BoundingRadius returns the distance from the center to the padded
// maximum corner
func (g *VoxelGrid) BoundingRadius() float64 {
	g.updateCachedValues()
	return g.radius
}

// Intersect implements the shared intersection contract with the default
// distance and step budgets
func (g *VoxelGrid) Intersect(ray core.Ray) (Intersection, bool) {
	return g.IntersectRay(ray.Origin, ray.Direction, DefaultMaxDistance, DefaultMaxSteps)
}

// IntersectRay walks the ray through the grid cell by cell and returns the
// first occupied cell it enters. Traversal is bounded by tMax along the ray
// and by maxSteps cell visits, so it terminates on any input.
func (g *VoxelGrid) IntersectRay(origin, dir core.Vec3, tMax float64, maxSteps int) (Intersection, bool) {
	if len(g.cells) == 0 {
		return Intersection{}, false
	}

	bmin, bmax := g.Bounds()

	// Slab test against the padded bounding box, clipped to [0, tMax].
	// Axis-parallel directions are tested for containment instead of
	// intersection to keep NaN/Inf out of the comparisons.
	tmin, tmaxBox := 0.0, tMax
	for axis := 0; axis < 3; axis++ {
		ro := axisComponent(origin, axis)
		rd := axisComponent(dir, axis)
		lo := axisComponent(bmin, axis)
		hi := axisComponent(bmax, axis)

		if math.Abs(rd) < 1e-6 {
			if ro < lo || ro > hi {
				return Intersection{}, false
			}
			continue
		}

		invD := 1.0 / rd
		t0 := (lo - ro) * invD
		t1 := (hi - ro) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		tmin = max(tmin, t0)
		tmaxBox = min(tmaxBox, t1)
		if tmaxBox < tmin {
			return Intersection{}, false
		}
	}

	tEntry := max(tmin, 0)
	start := origin.Add(dir.Multiply(tEntry))

	cx := int(math.Floor(start.X))
	cy := int(math.Floor(start.Y))
	cz := int(math.Floor(start.Z))

	stepX, tDeltaX, tMaxX := axisStepping(start.X, dir.X, cx)
	stepY, tDeltaY, tMaxY := axisStepping(start.Y, dir.Y, cy)
	stepZ, tDeltaZ, tMaxZ := axisStepping(start.Z, dir.Z, cz)

	limitMinX, limitMaxX := int(math.Floor(bmin.X)), int(math.Ceil(bmax.X))
	limitMinY, limitMaxY := int(math.Floor(bmin.Y)), int(math.Ceil(bmax.Y))
	limitMinZ, limitMaxZ := int(math.Floor(bmin.Z)), int(math.Ceil(bmax.Z))

	// Axis stepped into the current cell: 0=X, 1=Y, 2=Z, 3=entry cell
	hitFace := 3

	for step := 0; step < maxSteps; step++ {
		if cx < limitMinX || cy < limitMinY || cz < limitMinZ ||
			cx > limitMaxX || cy > limitMaxY || cz > limitMaxZ {
			break
		}

		if mat, ok := g.cells[CellKey{cx, cy, cz}]; ok {
			// Crossing parameter of the face just entered, in absolute
			// ray parameter. For the entry cell the box entry itself is
			// the crossing.
			var tHit float64
			switch hitFace {
			case 0:
				tHit = tMaxX - tDeltaX + tEntry
			case 1:
				tHit = tMaxY - tDeltaY + tEntry
			case 2:
				tHit = tMaxZ - tDeltaZ + tEntry
			default:
				tHit = tEntry
			}

			if tHit > tMax {
				break
			}

			point := origin.Add(dir.Multiply(tHit))

			var normal core.Vec3
			switch hitFace {
			case 0:
				normal = core.NewVec3(-math.Copysign(1, dir.X), 0, 0)
			case 1:
				normal = core.NewVec3(0, -math.Copysign(1, dir.Y), 0)
			case 2:
				normal = core.NewVec3(0, 0, -math.Copysign(1, dir.Z))
			default:
				normal = core.NewVec3(0, 1, 0)
			}

			u, v := faceUV(point, cx, cy, cz, normal)

			return Intersection{
				Point:    point,
				Normal:   normal,
				T:        tHit,
				Material: mat,
				U:        u,
				V:        v,
			}, true
		}

		// Advance along the axis with the nearest boundary crossing,
		// ties resolved X, then Y, then Z
		if tMaxX <= tMaxY && tMaxX <= tMaxZ {
			cx += stepX
			tMaxX += tDeltaX
			hitFace = 0
		} else if tMaxY <= tMaxZ {
			cy += stepY
			tMaxY += tDeltaY
			hitFace = 1
		} else {
			cz += stepZ
			tMaxZ += tDeltaZ
			hitFace = 2
		}
	}

	return Intersection{}, false
}

// axisComponent selects a vector component by axis index
func axisComponent(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// axisStepping precomputes the grid-stepping state for one axis: the step
// direction, the per-unit-distance parameter increment, and the parameter
// at which the ray first crosses the next cell boundary
func axisStepping(start, dir float64, cell int) (step int, tDelta, tMax float64) {
	step = -1
	if dir > 0 {
		step = 1
	}

	if math.Abs(dir) < 1e-6 {
		return step, math.Inf(1), math.Inf(1)
	}

	tDelta = 1.0 / math.Abs(dir)

	nextBoundary := float64(cell)
	if dir > 0 {
		nextBoundary = float64(cell) + 1.0
	}
	tMax = math.Abs(nextBoundary-start) / math.Abs(dir)
	return step, tDelta, tMax
}

// faceUV derives surface coordinates from the hit point's fractional
// position within the cell face
func faceUV(hit core.Vec3, cx, cy, cz int, normal core.Vec3) (float64, float64) {
	fx := hit.X - float64(cx)
	fy := hit.Y - float64(cy)
	fz := hit.Z - float64(cz)

	switch {
	case math.Abs(normal.X) > 0.5:
		return wrap01(fz), wrap01(1.0 - wrap01(fy))
	case math.Abs(normal.Y) > 0.5:
		return wrap01(fx), wrap01(1.0 - wrap01(fz))
	default:
		return wrap01(fx), wrap01(1.0 - wrap01(fy))
	}
}

// wrap01 wraps a value into [0, 1) using a floor-based wrap so negative
// fractions map correctly
func wrap01(v float64) float64 {
	w := v - math.Floor(v)
	if w < 0 {
		w += 1.0
	}
	return w
}
