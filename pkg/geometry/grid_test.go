package geometry

import (
	"math"
	"testing"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

func TestVoxelGrid_IntersectRay_SingleCellFromAbove(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())

	// Straight down through the center of cell (0,0,0)
	hit, isHit := grid.IntersectRay(
		core.NewVec3(0.5, 5, 0.5), core.NewVec3(0, -1, 0),
		DefaultMaxDistance, DefaultMaxSteps)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4, got t=%f", hit.T)
	}
	expectedPoint := core.NewVec3(0.5, 1, 0.5)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
	expectedNormal := core.NewVec3(0, 1, 0)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if math.Abs(hit.U-0.5) > 1e-9 || math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected UV (0.5,0.5), got (%f,%f)", hit.U, hit.V)
	}
}

func TestVoxelGrid_IntersectRay_SideFace(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())

	// Along +X into the -X face of cell (0,0,0)
	hit, isHit := grid.IntersectRay(
		core.NewVec3(-2, 0.5, 0.25), core.NewVec3(1, 0, 0),
		DefaultMaxDistance, DefaultMaxSteps)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-2.0) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	expectedNormal := core.NewVec3(-1, 0, 0)
	if hit.Normal.Subtract(expectedNormal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
	if hit.Normal.Dot(core.NewVec3(1, 0, 0)) >= 0 {
		t.Error("Normal does not face the incoming ray")
	}
	if math.Abs(hit.U-0.25) > 1e-9 || math.Abs(hit.V-0.5) > 1e-9 {
		t.Errorf("Expected UV (0.25,0.5), got (%f,%f)", hit.U, hit.V)
	}
}

func TestVoxelGrid_IntersectRay_Miss(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())

	tests := []struct {
		name         string
		rayOrigin    core.Vec3
		rayDirection core.Vec3
	}{
		{
			name:         "outside the bounds",
			rayOrigin:    core.NewVec3(5, 5, 5),
			rayDirection: core.NewVec3(0, -1, 0),
		},
		{
			name:         "pointing away",
			rayOrigin:    core.NewVec3(0.5, 5, 0.5),
			rayDirection: core.NewVec3(0, 1, 0),
		},
		{
			name:         "skims past the padded box",
			rayOrigin:    core.NewVec3(-2, 2, 0.5),
			rayDirection: core.NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := grid.IntersectRay(tt.rayOrigin, tt.rayDirection,
				DefaultMaxDistance, DefaultMaxSteps); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestVoxelGrid_IntersectRay_EmptyGrid(t *testing.T) {
	grid := NewVoxelGrid()

	if _, isHit := grid.IntersectRay(
		core.NewVec3(0.5, 5, 0.5), core.NewVec3(0, -1, 0),
		DefaultMaxDistance, DefaultMaxSteps); isHit {
		t.Error("Expected miss on empty grid")
	}
}

func TestVoxelGrid_IntersectRay_OriginInsideCell(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())

	origin := core.NewVec3(0.5, 0.5, 0.5)
	hit, isHit := grid.IntersectRay(origin, core.NewVec3(0, -1, 0),
		DefaultMaxDistance, DefaultMaxSteps)
	if !isHit {
		t.Fatal("Expected hit when starting inside an occupied cell")
	}
	if hit.T != 0 {
		t.Errorf("Expected t=0 for an origin inside the cell, got %f", hit.T)
	}
	if hit.Point.Subtract(origin).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", origin, hit.Point)
	}
	// Entry cells have no crossed face, the up normal is the convention
	if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-9 {
		t.Errorf("Expected up normal for entry cell, got %v", hit.Normal)
	}
}

func TestVoxelGrid_IntersectRay_MaxDistanceClipsHit(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())

	origin := core.NewVec3(0.5, 5, 0.5)
	down := core.NewVec3(0, -1, 0)

	if _, isHit := grid.IntersectRay(origin, down, 3.0, DefaultMaxSteps); isHit {
		t.Error("Expected miss when the hit lies beyond tMax")
	}
	if _, isHit := grid.IntersectRay(origin, down, 5.0, DefaultMaxSteps); !isHit {
		t.Error("Expected hit when tMax covers the cell")
	}
}

func TestVoxelGrid_IntersectRay_StepBudgetTerminates(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(20, 0, 0, testMaterial())

	origin := core.NewVec3(0, 0.5, 0.5)
	along := core.NewVec3(1, 0, 0)

	if _, isHit := grid.IntersectRay(origin, along, DefaultMaxDistance, 1); isHit {
		t.Error("Expected miss when the step budget runs out before the cell")
	}
	if _, isHit := grid.IntersectRay(origin, along, DefaultMaxDistance, 5); !isHit {
		t.Error("Expected hit with a sufficient step budget")
	}
}

func TestVoxelGrid_IntersectRay_UVStaysInRange(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())
	grid.Insert(1, 0, 0, testMaterial())
	grid.Insert(0, 0, 1, testMaterial())

	offsets := []float64{0.05, 0.25, 0.5, 0.75, 0.95}
	for _, ox := range offsets {
		for _, oz := range offsets {
			hit, isHit := grid.IntersectRay(
				core.NewVec3(ox, 5, oz), core.NewVec3(0, -1, 0),
				DefaultMaxDistance, DefaultMaxSteps)
			if !isHit {
				t.Fatalf("Expected hit at offset (%f,%f)", ox, oz)
			}
			if hit.U < 0 || hit.U >= 1 || hit.V < 0 || hit.V >= 1 {
				t.Errorf("UV (%f,%f) out of [0,1) at offset (%f,%f)", hit.U, hit.V, ox, oz)
			}
		}
	}
}

func TestVoxelGrid_IntersectRay_NearestCellWins(t *testing.T) {
	grid := NewVoxelGrid()
	nearMat := testMaterial()
	grid.Insert(0, 0, 0, nearMat)
	grid.Insert(0, 0, 3, nearMat)

	hit, isHit := grid.IntersectRay(
		core.NewVec3(0.5, 0.5, -2), core.NewVec3(0, 0, 1),
		DefaultMaxDistance, DefaultMaxSteps)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Point.Z > 0.5 {
		t.Errorf("Expected the nearest cell to win, hit point %v", hit.Point)
	}
}

func TestVoxelGrid_Bounds(t *testing.T) {
	grid := NewVoxelGrid()

	bmin, bmax := grid.Bounds()
	if bmin != (core.Vec3{}) || bmax != (core.Vec3{}) {
		t.Errorf("Expected degenerate bounds on empty grid, got %v %v", bmin, bmax)
	}

	grid.Insert(0, 0, 0, testMaterial())
	grid.Insert(2, 3, 4, testMaterial())

	bmin, bmax = grid.Bounds()
	expectedMin := core.NewVec3(-0.1, -0.1, -0.1)
	expectedMax := core.NewVec3(3.1, 4.1, 5.1)
	if bmin.Subtract(expectedMin).Length() > 1e-9 {
		t.Errorf("Expected min %v, got %v", expectedMin, bmin)
	}
	if bmax.Subtract(expectedMax).Length() > 1e-9 {
		t.Errorf("Expected max %v, got %v", expectedMax, bmax)
	}
}

func TestVoxelGrid_CenterAndRadius(t *testing.T) {
	grid := NewVoxelGrid()
	grid.Insert(0, 0, 0, testMaterial())
	grid.Insert(2, 3, 4, testMaterial())

	center := grid.Center()
	expectedCenter := core.NewVec3(1.5, 2.0, 2.5)
	if center.Subtract(expectedCenter).Length() > 1e-9 {
		t.Errorf("Expected center %v, got %v", expectedCenter, center)
	}

	radius := grid.BoundingRadius()
	expectedRadius := core.NewVec3(1.6, 2.1, 2.6).Length()
	if math.Abs(radius-expectedRadius) > 1e-9 {
		t.Errorf("Expected radius %f, got %f", expectedRadius, radius)
	}

	// Inserting invalidates the cache
	grid.Insert(10, 0, 0, testMaterial())
	if grid.BoundingRadius() <= radius {
		t.Error("Expected bounding radius to grow after insertion")
	}
}

func TestVoxelGrid_Len(t *testing.T) {
	grid := NewVoxelGrid()
	if grid.Len() != 0 {
		t.Errorf("Expected 0 cells, got %d", grid.Len())
	}

	grid.Insert(0, 0, 0, testMaterial())
	grid.Insert(0, 0, 0, testMaterial()) // overwrite, not a new cell
	grid.Insert(1, 0, 0, testMaterial())
	if grid.Len() != 2 {
		t.Errorf("Expected 2 cells, got %d", grid.Len())
	}
}
