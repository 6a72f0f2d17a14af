package sprite

import (
	"fmt"
	"path/filepath"

	"github.com/memmaker/outpost/engine/util"
)

// ModelsDir is the directory below the asset root that holds the textures.
const ModelsDir = "models"

// Mesh is the shared quad geometry. *glhf.VertexSlice satisfies it.
type Mesh interface {
	Begin()
	Draw()
	End()
	Release()
}

// Texture is a GPU texture. *glhf.Texture satisfies it.
type Texture interface {
	Begin()
	End()
	Release()
}

// Shader is the program quads are drawn with. It has to declare the uniforms
// "model" (mat4), "useTex" (int) and "color" (vec3).
type Shader interface {
	UniformIndex(name string) int
	SetUniformAttr(uniform int, value interface{}) bool
}

// Backend creates the GPU resources of a RenderContext.
type Backend interface {
	NewQuadMesh(vertices []float32, indices []uint32) Mesh
	NewTexture(width, height int, pixels []uint8) Texture
	// NewBlankTexture stands in for textures that could not be loaded.
	NewBlankTexture() Texture
}

// RenderContext owns what all quads share: one mesh sized to the tile size and a texture
// cache keyed by file name. It must only be used on the rendering thread.
type RenderContext struct {
	backend   Backend
	assetRoot string
	tileSize  float32
	quad      Mesh
	textures  map[string]Texture
}

func NewRenderContext(assetRoot string, backend Backend) *RenderContext {
	return &RenderContext{
		backend:   backend,
		assetRoot: assetRoot,
		textures:  make(map[string]Texture),
	}
}

// QuadVertices returns a quad of edge tileSize centered on the origin, formatted as
// x, y, z, u, v per vertex, and the indices of its two triangles.
func QuadVertices(tileSize float32) ([]float32, []uint32) {
	half := tileSize / 2
	corners := [4][2]float32{{-half, half}, {half, half}, {half, -half}, {-half, -half}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	vertices := make([]float32, 0, 4*5)
	for i, corner := range corners {
		vertices = append(vertices, corner[0], corner[1], 0, uvs[i][0], uvs[i][1])
	}
	return vertices, []uint32{0, 1, 2, 0, 2, 3}
}

// SetTileSize builds the shared quad mesh. Calling it again replaces the mesh for every object.
func (c *RenderContext) SetTileSize(tileSize float32) {
	if c.quad != nil {
		c.quad.Release()
	}
	c.tileSize = tileSize
	vertices, indices := QuadVertices(tileSize)
	c.quad = c.backend.NewQuadMesh(vertices, indices)
	util.LogGlInfo(fmt.Sprintf("[RenderContext] Quad mesh built for tile size %.1f", tileSize))
}

func (c *RenderContext) TileSize() float32 {
	return c.tileSize
}

func (c *RenderContext) IsReady() bool {
	return c.quad != nil
}

// Asset returns the cached texture for textureFile, loading it from <assetRoot>/models on first use.
// A file that cannot be loaded is replaced by a blank texture, which is cached as well.
func (c *RenderContext) Asset(textureFile string) Texture {
	if texture, ok := c.textures[textureFile]; ok {
		return texture
	}
	filePath := filepath.Join(c.assetRoot, ModelsDir, textureFile)
	var texture Texture
	img, err := LoadRGBA(filePath, false)
	if err != nil {
		util.LogTextureWarning(fmt.Sprintf("[RenderContext] %s, using a blank texture", err.Error()))
		texture = c.backend.NewBlankTexture()
	} else {
		util.LogTextureDebug(fmt.Sprintf("[RenderContext] Loaded %s (%dx%d)", filePath, img.Bounds().Dx(), img.Bounds().Dy()))
		texture = c.backend.NewTexture(img.Bounds().Dx(), img.Bounds().Dy(), img.Pix)
	}
	c.textures[textureFile] = texture
	return texture
}

func (c *RenderContext) TextureCount() int {
	return len(c.textures)
}

// NewTextured creates a textured quad at the origin. SetTileSize must have been called.
func (c *RenderContext) NewTextured(textureFile string) *GLObject {
	if c.quad == nil {
		panic("sprite: SetTileSize must be called before creating objects")
	}
	return &GLObject{
		texture:       c.Asset(textureFile),
		renderTexture: true,
	}
}

// Release frees the shared mesh and every cached texture. Later calls do nothing.
func (c *RenderContext) Release() {
	if c.quad == nil && len(c.textures) == 0 {
		return
	}
	if c.quad != nil {
		c.quad.Release()
		c.quad = nil
	}
	for name, texture := range c.textures {
		texture.Release()
		delete(c.textures, name)
	}
	util.LogGlInfo("[RenderContext] Released shared buffers")
}
