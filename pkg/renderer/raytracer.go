package renderer

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/scene"
)

// MaxReflections bounds the reflective recursion depth
const MaxReflections = 3

// Raytracer casts rays into a scene snapshot. It holds no mutable state,
// so one instance may be shared by all render workers.
type Raytracer struct {
	scene *scene.Scene
}

// NewRaytracer creates a raytracer for the given scene snapshot
func NewRaytracer(s *scene.Scene) *Raytracer {
	return &Raytracer{scene: s}
}

// CastRay traces a ray into the scene and returns its color. Misses fall
// back to the procedural sky (or flat black when the sky is disabled), and
// reflective surfaces recurse up to MaxReflections levels deep.
func (rt *Raytracer) CastRay(ray core.Ray, depth int) core.Vec3 {
	if depth > MaxReflections {
		return rt.background(ray)
	}

	hit, ok := rt.scene.Grid.IntersectRay(ray.Origin, ray.Direction,
		geometry.DefaultMaxDistance, geometry.DefaultMaxSteps)
	if !ok {
		return rt.background(ray)
	}

	base := Shade(hit.Point, hit.Normal, hit.Material, hit.U, hit.V,
		rt.scene.Sun, rt.scene.Grid, ray.Origin)

	final := base

	reflectivity := hit.Material.Reflectivity()
	if reflectivity > 0.01 && depth < MaxReflections {
		reflectDir := ray.Direction.Reflect(hit.Normal)
		reflectOrigin := hit.Point.Add(hit.Normal.Multiply(surfaceBias))
		reflected := rt.CastRay(core.NewRay(reflectOrigin, reflectDir), depth+1)

		if hit.Material.Metallic > 0.5 {
			// Metals tint the reflection strongly with their own color
			tinted := core.Vec3{
				X: reflected.X * (0.3 + base.X*0.7),
				Y: reflected.Y * (0.3 + base.Y*0.7),
				Z: reflected.Z * (0.3 + base.Z*0.7),
			}
			mix := reflectivity * 0.5
			final = base.Multiply(1 - mix).Add(tinted.Multiply(mix))
		} else {
			tinted := core.Vec3{
				X: reflected.X * (0.5 + base.X*0.5),
				Y: reflected.Y * (0.5 + base.Y*0.5),
				Z: reflected.Z * (0.5 + base.Z*0.5),
			}
			mix := reflectivity * 0.4
			final = base.Multiply(1 - mix).Add(tinted.Multiply(mix))
		}
	}

	return final.Clamp(0, 1)
}

// background returns the miss color for a ray direction
func (rt *Raytracer) background(ray core.Ray) core.Vec3 {
	if rt.scene.SkyEnabled {
		return SkyColor(ray.Direction)
	}
	return core.Vec3{}
}

// SkyColor evaluates the procedural sky for a unit ray direction: a
// non-linear horizon/zenith blend above the horizon and a nadir/horizon
// blend below it, with a small periodic perturbation from the horizontal
// components.
func SkyColor(dir core.Vec3) core.Vec3 {
	t := max(0, min(1, dir.Y*0.5+0.5))

	horizon := core.NewVec3(1.0, 0.9, 0.8)
	zenith := core.NewVec3(0.2, 0.5, 1.0)
	nadir := core.NewVec3(0.3, 0.4, 0.6)

	var sky core.Vec3
	if t > 0.5 {
		smoothT := math.Pow((t-0.5)*2.0, 0.6)
		sky = horizon.Add(zenith.Subtract(horizon).Multiply(smoothT))
	} else {
		smoothT := math.Pow(t*2.0, 1.4)
		sky = nadir.Add(horizon.Subtract(nadir).Multiply(smoothT))
	}

	noise := math.Sin(dir.X*5.0+dir.Z*3.0) * 0.02
	sky = sky.Add(core.NewVec3(noise, noise*0.5, noise*0.3))

	return sky.Clamp(0, 1)
}
