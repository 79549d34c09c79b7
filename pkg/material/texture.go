package material

import (
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// Texture provides color lookups for a material surface.
// Pixels are stored row-major: Pixels[y*Width + x].
type Texture struct {
	Width    int
	Height   int
	Pixels   []core.Vec3
	Fallback core.Vec3 // Returned when no usable pixel data exists
}

// NewTexture creates a texture from raw pixel data
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewSolidTexture creates a single-pixel texture of a flat color
func NewSolidTexture(color core.Vec3) *Texture {
	return &Texture{
		Width:    1,
		Height:   1,
		Pixels:   []core.Vec3{color},
		Fallback: color,
	}
}

// wrapUV wraps a texture coordinate into [0, 1) using floor-based wrapping
// so negative coordinates map correctly
func wrapUV(v float64) float64 {
	w := v - math.Floor(v)
	if w < 0 {
		w += 1.0
	}
	return w
}

// NearestColor samples the texture at (u, v) with nearest-neighbor filtering
func (t *Texture) NearestColor(u, v float64) core.Vec3 {
	if len(t.Pixels) <= 1 {
		return t.Fallback
	}

	x := int(wrapUV(u) * float64(t.Width))
	y := int(wrapUV(v) * float64(t.Height))
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}

// BilinearColor samples the texture at (u, v) with bilinear filtering
func (t *Texture) BilinearColor(u, v float64) core.Vec3 {
	if len(t.Pixels) <= 1 {
		return t.Fallback
	}

	tx := wrapUV(u) * float64(t.Width-1)
	ty := wrapUV(v) * float64(t.Height-1)

	x0 := int(math.Floor(tx))
	y0 := int(math.Floor(ty))
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)

	fx := tx - float64(x0)
	fy := ty - float64(y0)

	c00 := t.Pixels[y0*t.Width+x0]
	c10 := t.Pixels[y0*t.Width+x1]
	c01 := t.Pixels[y1*t.Width+x0]
	c11 := t.Pixels[y1*t.Width+x1]

	c0 := c00.Multiply(1 - fx).Add(c10.Multiply(fx))
	c1 := c01.Multiply(1 - fx).Add(c11.Multiply(fx))
	return c0.Multiply(1 - fy).Add(c1.Multiply(fy))
}

// loadTexture reads a PNG file into a texture
func loadTexture(path string, fallback core.Vec3) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			pixels = append(pixels, core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}

	t := NewTexture(width, height, pixels)
	t.Fallback = fallback
	return t, nil
}

// proceduralTexture synthesizes a small deterministic pattern for a texture
// that could not be loaded. The pattern is chosen by texture name so each
// material family keeps a recognizable look.
func proceduralTexture(name string, base core.Vec3) *Texture {
	const size = 16
	pixels := make([]core.Vec3, 0, size*size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pattern := patternFor(name, x, y, size)
			pixels = append(pixels, base.Multiply(pattern).Clamp(0, 1))
		}
	}

	t := NewTexture(size, size, pixels)
	t.Fallback = base
	return t
}

// patternFor returns the brightness multiplier at (x, y) for a named pattern
func patternFor(name string, x, y, size int) float64 {
	fx := float64(x) / float64(size)
	fy := float64(y) / float64(size)

	switch {
	case strings.Contains(name, "grass"):
		return 0.8 + math.Sin(fx*8.0+fy*6.0)*0.2
	case strings.Contains(name, "glowing"):
		return 1.2 + math.Sin(fx*6.0+fy*6.0)*0.4
	case strings.Contains(name, "stone"):
		checker := math.Mod(math.Floor(fx*4.0)+math.Floor(fy*4.0), 2.0) * 0.1
		return 0.9 + checker
	case strings.Contains(name, "gold"):
		return 1.0 + math.Sin(fx*16.0)*math.Cos(fy*16.0)*0.15
	case strings.Contains(name, "obsidian"):
		return 0.7 + math.Sin(fx*12.0+fy*8.0)*0.3
	case strings.Contains(name, "magma"):
		return 1.0 + math.Sin(fx*10.0)*math.Cos(fy*8.0)*0.3
	case strings.Contains(name, "dirt"):
		return 0.85 + math.Sin(fx*12.0+fy*10.0)*0.15
	case strings.Contains(name, "netherrack"):
		return 0.9 + math.Cos(fx*14.0)*math.Sin(fy*11.0)*0.25
	default:
		return 0.9 + math.Sin(fx*8.0+fy*8.0)*0.1
	}
}
