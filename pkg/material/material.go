package material

import (
	"math"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// Material describes how a voxel surface responds to light.
// Materials are plain values: once constructed they are never mutated,
// and intersection results carry copies rather than references.
type Material struct {
	Diffuse   core.Vec3  // Flat base color
	Weights   [4]float64 // Diffuse, specular, reflective, transmissive weights (transmissive unused)
	Specular  float64    // Specular exponent
	Roughness float64
	Metallic  float64
	Emission  float64  // Emission strength, 0 for non-emissive surfaces
	Texture   *Texture // Optional texture, nil means flat Diffuse color
}

// New creates an untextured material
func New(diffuse core.Vec3, specular float64, weights [4]float64) Material {
	return Material{
		Diffuse:   diffuse,
		Weights:   weights,
		Specular:  specular,
		Roughness: 0.5,
	}
}

// Reflectivity returns the mirror-reflection weight of the material
func (m Material) Reflectivity() float64 {
	return m.Weights[2]
}

// DiffuseColor returns the albedo at the given surface coordinates.
// Textured surfaces keep a 2% blend of the flat base color so a material
// never loses its intrinsic tint entirely.
func (m Material) DiffuseColor(u, v float64) core.Vec3 {
	if m.Texture == nil {
		return m.Diffuse
	}
	return m.Texture.NearestColor(u, v).Multiply(0.98).Add(m.Diffuse.Multiply(0.02))
}

// EmissionColor returns the emitted light at the given surface coordinates,
// already scaled by the emission strength
func (m Material) EmissionColor(u, v float64) core.Vec3 {
	if m.Emission <= 0 {
		return core.Vec3{}
	}
	if m.Texture != nil {
		return m.Diffuse.Add(m.Texture.NearestColor(u, v).Multiply(0.3)).Multiply(m.Emission)
	}
	return m.proceduralVariation(u, v).Multiply(m.Emission)
}

// proceduralVariation perturbs the flat base color with a small periodic
// term so untextured surfaces still show some spatial variation
func (m Material) proceduralVariation(u, v float64) core.Vec3 {
	noise := math.Sin(u*23.0+v*17.0) * 0.005
	return m.Diffuse.Multiply(1.0 + noise)
}
