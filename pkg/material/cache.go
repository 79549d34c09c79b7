package material

import (
	"path/filepath"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/voxelray/go-voxel-raytracer/pkg/core"
)

// TextureCache loads textures by name and shares them across material
// instances. It is owned by the scene-construction phase and injected into
// material creation; it is never written during a render pass.
type TextureCache struct {
	mu       sync.Mutex
	dir      string
	textures map[string]*Texture
}

// NewTextureCache creates a cache that resolves texture names under dir
func NewTextureCache(dir string) *TextureCache {
	return &TextureCache{
		dir:      dir,
		textures: make(map[string]*Texture),
	}
}

// Load returns the texture for the given file name, loading it on first
// use. A missing or unreadable file is not fatal: a procedural pattern
// derived from the name and fallback color is substituted.
func (c *TextureCache) Load(name string, fallback core.Vec3) *Texture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.textures[name]; ok {
		return t
	}

	path := filepath.Join(c.dir, name)
	t, err := loadTexture(path, fallback)
	if err != nil {
		logs.WithTag("texture", name).
			Warn(errors.New("loading texture failed, using procedural pattern").Wrap(err))
		t = proceduralTexture(name, fallback)
	}

	c.textures[name] = t
	return t
}

// Clear drops all cached textures, for test isolation
func (c *TextureCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textures = make(map[string]*Texture)
}

// Stats reports the number of cached textures and their total pixel count
func (c *TextureCache) Stats() (textures, pixels int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.textures {
		pixels += len(t.Pixels)
	}
	return len(c.textures), pixels
}
