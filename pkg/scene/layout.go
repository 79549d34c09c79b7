package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/voxelray/go-voxel-raytracer/pkg/geometry"
	"github.com/voxelray/go-voxel-raytracer/pkg/material"
)

// LayerCount is the number of layer files a diorama is built from
const LayerCount = 9

// materialFor maps a layout character to a material type. The second return
// is false for empty cells; unrecognized characters are treated as empty.
func materialFor(ch rune) (material.Type, bool) {
	switch ch {
	case 'M':
		return material.Dirt, true
	case 'T':
		return material.Grass, true
	case 'P':
		return material.Netherrack, true
	case 'R':
		return material.Stone, true
	case 'L':
		return material.Magma, true
	case 'O':
		return material.Gold, true
	case 'B':
		return material.Obsidian, true
	case 'S':
		return material.StoneStairs, true
	case 'Z':
		return material.StoneSlab, true
	case 'J':
		return material.StonePillar, true
	case 'C':
		return material.WoodChest, true
	case 'W':
		return material.GlowingObsidian, true
	default:
		return 0, false
	}
}

// LoadLayeredGrid builds a voxel grid from per-layer text files under dir.
// Layer n (1-based) supplies the cells at y = n-1: each line is a row of
// cells along Z and each character a cell along X. Missing or unreadable
// layer files are not fatal; layer 1 falls back to a deterministic test
// pattern so the scene is never empty.
func LoadLayeredGrid(dir string, cache *material.TextureCache) *geometry.VoxelGrid {
	grid := geometry.NewVoxelGrid()

	for layer := 1; layer <= LayerCount; layer++ {
		filename := filepath.Join(dir, fmt.Sprintf("layer_%d.txt", layer))
		y := layer - 1

		content, err := os.ReadFile(filename)
		if err != nil {
			logs.WithTag("layer", filename).
				Warn(errors.New("loading layer failed").Wrap(err))
			if layer == 1 {
				insertTestPattern(grid, cache)
			}
			continue
		}

		for z, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
			for x, ch := range line {
				if t, ok := materialFor(ch); ok {
					grid.Insert(x, y, z, material.NewTyped(t, cache))
				}
			}
		}
	}

	logs.WithTag("voxels", grid.Len()).Info("voxel grid built")
	return grid
}

// insertTestPattern fills y=0 with a 16x16 checkerboard of presets
func insertTestPattern(grid *geometry.VoxelGrid, cache *material.TextureCache) {
	pattern := []material.Type{
		material.Grass,
		material.Stone,
		material.Gold,
		material.GlowingObsidian,
		material.Dirt,
	}
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			t := pattern[(x+z)%len(pattern)]
			grid.Insert(x, 0, z, material.NewTyped(t, cache))
		}
	}
}
