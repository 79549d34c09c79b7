package renderer

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/lights"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// Direct lighting constants
const (
	ambientTerm     = 0.25
	diffuseScale    = 0.75
	shadowFactorHit = 0.3 // Soft minimum, not full occlusion
	shadowMaxDist   = 20.0
	shadowMaxSteps  = 50
	surfaceBias     = 1e-4
)

// Shade evaluates direct lighting at a surface point: ambient + diffuse +
// specular with a soft shadow test, plus emission, followed by per-channel
// tone compression.
func Shade(point, normal core.Vec3, mat material.Material, u, v float64,
	sun lights.Directional, grid *geometry.VoxelGrid, cameraPos core.Vec3) core.Vec3 {

	albedo := mat.DiffuseColor(u, v)

	ndotl := max(0, normal.Dot(sun.Dir.Negate()))
	diffuse := ndotl * diffuseScale

	// Shadow rays are only worth casting when the surface actually faces
	// the light
	shadowFactor := 1.0
	if ndotl > 0.05 {
		shadowOrigin := point.Add(normal.Multiply(surfaceBias))
		if _, blocked := grid.IntersectRay(shadowOrigin, sun.Dir.Negate(), shadowMaxDist, shadowMaxSteps); blocked {
			shadowFactor = shadowFactorHit
		}
	}

	specular := 0.0
	if mat.Specular > 5 {
		viewDir := cameraPos.Subtract(point).Normalize()
		reflectDir := sun.Dir.Reflect(normal)
		specDot := max(0, viewDir.Dot(reflectDir))
		roughnessFactor := 1.0 / (mat.Roughness*50.0 + 1.0)
		specular = math.Pow(specDot, mat.Specular*roughnessFactor) * 0.5 * shadowFactor
	}

	// Emission ignores the shadow factor
	emission := mat.EmissionColor(u, v)

	total := ambientTerm + (diffuse+specular)*shadowFactor
	litColor := albedo.Multiply(total).Add(emission)

	return toneCompress(litColor)
}

// toneCompress applies a soft highlight rolloff per channel so emission and
// specular spikes cannot push channels unboundedly high
func toneCompress(c core.Vec3) core.Vec3 {
	return core.Vec3{
		X: c.X / (1.0 + c.X*0.8),
		Y: c.Y / (1.0 + c.Y*0.8),
		Z: c.Z / (1.0 + c.Z*0.8),
	}
}
