package renderer

import (
	"math"
	"testing"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/lights"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// overhead sun simplifies the expected-value math in these tests
func testSun() lights.Directional {
	return lights.NewDirectional(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1), 1.0)
}

func whiteMatte() material.Material {
	return material.New(core.NewVec3(1, 1, 1), 0, [4]float64{1, 0, 0, 0})
}

func TestShade_FullyLitSurface(t *testing.T) {
	grid := geometry.NewVoxelGrid()
	grid.Insert(0, 0, 0, whiteMatte())

	// Top face of cell (0,0,0), nothing between it and the sun.
	// ambient 0.25 + diffuse 0.75, tone compressed: 1.0/1.8
	got := Shade(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0),
		whiteMatte(), 0.5, 0.5, testSun(), grid, core.NewVec3(0.5, 5, 0.5))

	expected := 1.0 / 1.8
	for _, ch := range []float64{got.X, got.Y, got.Z} {
		if math.Abs(ch-expected) > 1e-9 {
			t.Errorf("Expected %f per channel, got %v", expected, got)
		}
	}
}

func TestShade_ShadowedSurface(t *testing.T) {
	grid := geometry.NewVoxelGrid()
	grid.Insert(0, 0, 0, whiteMatte())
	grid.Insert(0, 3, 0, whiteMatte()) // blocker between the surface and the sun

	got := Shade(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0),
		whiteMatte(), 0.5, 0.5, testSun(), grid, core.NewVec3(0.5, 5, 0.5))

	// ambient 0.25 + diffuse 0.75 * shadow 0.3, tone compressed
	expected := 0.475 / (1.0 + 0.475*0.8)
	if math.Abs(got.X-expected) > 1e-9 {
		t.Errorf("Expected %f, got %f", expected, got.X)
	}

	lit := Shade(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0),
		whiteMatte(), 0.5, 0.5, testSun(), geometry.NewVoxelGrid(), core.NewVec3(0.5, 5, 0.5))
	if got.X >= lit.X {
		t.Errorf("Expected shadowed %f darker than lit %f", got.X, lit.X)
	}
}

func TestShade_SurfaceFacingAwayFromSun(t *testing.T) {
	grid := geometry.NewVoxelGrid()

	// Normal pointing away: no diffuse, ambient only
	got := Shade(core.NewVec3(0.5, 0, 0.5), core.NewVec3(0, -1, 0),
		whiteMatte(), 0.5, 0.5, testSun(), grid, core.NewVec3(0.5, -5, 0.5))

	expected := 0.25 / 1.2
	if math.Abs(got.X-expected) > 1e-9 {
		t.Errorf("Expected ambient-only %f, got %f", expected, got.X)
	}
}

func TestShade_SpecularHighlight(t *testing.T) {
	grid := geometry.NewVoxelGrid()
	grid.Insert(0, 0, 0, whiteMatte())

	shiny := material.New(core.NewVec3(1, 1, 1), 50, [4]float64{0.6, 0.4, 0, 0})

	// Camera straight above the point, so the view direction coincides with
	// the reflected sun direction and the highlight is at full strength:
	// ambient 0.25 + (diffuse 0.75 + specular 0.5), tone compressed
	got := Shade(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0),
		shiny, 0.5, 0.5, testSun(), grid, core.NewVec3(0.5, 5, 0.5))

	expected := 1.5 / (1.0 + 1.5*0.8)
	if math.Abs(got.X-expected) > 1e-9 {
		t.Errorf("Expected %f with full specular, got %f", expected, got.X)
	}

	matte := Shade(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0),
		whiteMatte(), 0.5, 0.5, testSun(), grid, core.NewVec3(0.5, 5, 0.5))
	if got.X <= matte.X {
		t.Errorf("Expected specular %f brighter than matte %f", got.X, matte.X)
	}
}

func TestShade_EmissiveSurface(t *testing.T) {
	grid := geometry.NewVoxelGrid()

	glowing := material.New(core.NewVec3(1, 0, 0), 0, [4]float64{1, 0, 0, 0})
	glowing.Emission = 2.0

	// Facing away from the sun: lighting contributes ambient only, so the
	// output is dominated by the emission term
	got := Shade(core.NewVec3(0.5, 0, 0.5), core.NewVec3(0, -1, 0),
		glowing, 0, 0, testSun(), grid, core.NewVec3(0.5, -5, 0.5))

	// u=v=0 zeroes the procedural variation: lit = 0.25 + 2.0 on red
	expected := 2.25 / (1.0 + 2.25*0.8)
	if math.Abs(got.X-expected) > 1e-9 {
		t.Errorf("Expected red channel %f, got %f", expected, got.X)
	}
	if got.Y != 0 || got.Z != 0 {
		t.Errorf("Expected pure red emission, got %v", got)
	}
}

func TestToneCompress_BoundsChannels(t *testing.T) {
	bright := toneCompress(core.NewVec3(10, 100, 1000))
	for _, ch := range []float64{bright.X, bright.Y, bright.Z} {
		if ch <= 0 || ch >= 1.25 {
			t.Errorf("Expected compressed channel in (0, 1.25), got %f", ch)
		}
	}

	if toneCompress(core.Vec3{}) != (core.Vec3{}) {
		t.Error("Expected black to stay black")
	}

	dim := toneCompress(core.NewVec3(0.1, 0.1, 0.1))
	mid := toneCompress(core.NewVec3(0.5, 0.5, 0.5))
	if dim.X >= mid.X {
		t.Error("Expected tone compression to preserve ordering")
	}
}
