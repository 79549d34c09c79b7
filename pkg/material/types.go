package material

import (
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// Type identifies one of the built-in voxel material presets
type Type int

const (
	Grass Type = iota
	Netherrack
	Dirt
	Stone
	Magma
	Gold
	Obsidian
	GlowingObsidian
	StoneStairs
	StoneSlab
	StonePillar
	WoodChest
)

// preset holds the static parameters of a material type
type preset struct {
	texture   string
	diffuse   core.Vec3
	weights   [4]float64
	specular  float64
	roughness float64
	metallic  float64
	emission  float64
}

var presets = map[Type]preset{
	Grass: {
		texture:   "grass.png",
		diffuse:   core.NewVec3(0.4, 0.7, 0.2),
		weights:   [4]float64{0.85, 0.1, 0.02, 0},
		specular:  8.0,
		roughness: 0.8,
	},
	Netherrack: {
		texture:   "netherrack.png",
		diffuse:   core.NewVec3(0.6, 0.2, 0.2),
		weights:   [4]float64{0.9, 0.05, 0, 0},
		specular:  4.0,
		roughness: 0.9,
		emission:  0.15,
	},
	Dirt: {
		texture:   "dirt.png",
		diffuse:   core.NewVec3(0.5, 0.3, 0.2),
		weights:   [4]float64{0.95, 0.05, 0, 0},
		specular:  2.0,
		roughness: 0.95,
	},
	Stone: {
		texture:   "stone.png",
		diffuse:   core.NewVec3(0.5, 0.5, 0.5),
		weights:   [4]float64{0.8, 0.15, 0.05, 0},
		specular:  18.0,
		roughness: 0.6,
	},
	Magma: {
		texture:   "magma.png",
		diffuse:   core.NewVec3(0.8, 0.3, 0.1),
		weights:   [4]float64{0.7, 0.1, 0.1, 0},
		specular:  25.0,
		roughness: 0.3,
		emission:  0.8,
	},
	Gold: {
		texture:   "gold.png",
		diffuse:   core.NewVec3(1.0, 0.8, 0.0),
		weights:   [4]float64{0.3, 0.4, 0.3, 0},
		specular:  120.0,
		roughness: 0.15,
		metallic:  1.0,
	},
	Obsidian: {
		texture:   "obsidian.png",
		diffuse:   core.NewVec3(0.15, 0.1, 0.25),
		weights:   [4]float64{0.5, 0.3, 0.2, 0},
		specular:  90.0,
		roughness: 0.15,
	},
	GlowingObsidian: {
		texture:   "glowing_obsidian.png",
		diffuse:   core.NewVec3(0.5, 0.3, 0.9),
		weights:   [4]float64{0.4, 0.3, 0.3, 0},
		specular:  120.0,
		roughness: 0.1,
		emission:  1.2,
	},
	StoneStairs: {
		texture:   "stone_stairs.png",
		diffuse:   core.NewVec3(0.6, 0.6, 0.6),
		weights:   [4]float64{0.8, 0.15, 0.05, 0},
		specular:  15.0,
		roughness: 0.7,
	},
	StoneSlab: {
		texture:   "stone_slab.png",
		diffuse:   core.NewVec3(0.55, 0.55, 0.55),
		weights:   [4]float64{0.8, 0.15, 0.05, 0},
		specular:  12.0,
		roughness: 0.65,
	},
	StonePillar: {
		texture:   "stone_pillar.png",
		diffuse:   core.NewVec3(0.7, 0.7, 0.7),
		weights:   [4]float64{0.75, 0.2, 0.05, 0},
		specular:  22.0,
		roughness: 0.4,
	},
	WoodChest: {
		texture:   "wood_chest.png",
		diffuse:   core.NewVec3(0.6, 0.4, 0.2),
		weights:   [4]float64{0.85, 0.1, 0.05, 0},
		specular:  6.0,
		roughness: 0.75,
	},
}

// NewTyped creates a material of a built-in type, loading its texture
// through the given cache
func NewTyped(t Type, cache *TextureCache) Material {
	p := presets[t]
	return Material{
		Diffuse:   p.diffuse,
		Weights:   p.weights,
		Specular:  p.specular,
		Roughness: p.roughness,
		Metallic:  p.metallic,
		Emission:  p.emission,
		Texture:   cache.Load(p.texture, p.diffuse),
	}
}
