package main

import (
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/glhf"
	"github.com/memmaker/outpost/engine/sprite"
	"github.com/memmaker/outpost/game"
)

// glhfBackend creates the GPU resources of the sprite package. It must only be used on the
// main thread.
type glhfBackend struct {
	shader *glhf.Shader
}

func (b glhfBackend) NewQuadMesh(vertices []float32, indices []uint32) sprite.Mesh {
	data := make([]glhf.GlFloat, len(vertices))
	for i, v := range vertices {
		data[i] = glhf.GlFloat(v)
	}
	vertexCount := len(vertices) * glhf.SizeOfFloat32 / b.shader.VertexFormat().Size()
	mesh := glhf.MakeIndexedVertexSlice(b.shader, vertexCount, vertexCount, indices)
	mesh.Begin()
	mesh.SetVertexData(data)
	mesh.End()
	return mesh
}

func (b glhfBackend) NewTexture(width, height int, pixels []uint8) sprite.Texture {
	return glhf.NewTexture(width, height, false, pixels)
}

func (b glhfBackend) NewBlankTexture() sprite.Texture {
	return glhf.NewBlankTexture()
}

// spriteFactory gives entities a textured quad when their texture file exists and a quad in
// their faction color otherwise.
type spriteFactory struct {
	ctx      *sprite.RenderContext
	settings config.Settings
}

func (f spriteFactory) NewSprite(texture string, faction game.Faction) *sprite.GLObject {
	if texture != "" {
		if _, err := os.Stat(filepath.Join(f.settings.AssetRoot, sprite.ModelsDir, texture)); err == nil {
			return f.ctx.NewTextured(texture)
		}
	}
	return sprite.NewColored(f.settings.FactionColor(string(faction)))
}

var terrainColors = map[game.Terrain]mgl32.Vec3{
	game.TerrainGround: {0.22, 0.3, 0.16},
	game.TerrainRock:   {0.42, 0.4, 0.38},
	game.TerrainWater:  {0.15, 0.3, 0.6},
}

// terrainLayer is one colored quad per tile. Ground tiles are left to the clear color.
type terrainLayer struct {
	tiles []*sprite.GLObject
}

func newTerrainLayer(grid *game.Grid, tileSize float32) *terrainLayer {
	layer := &terrainLayer{}
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			terrain := grid.Terrain([2]int{x, y})
			if terrain == game.TerrainGround {
				continue
			}
			tile := sprite.NewColored(terrainColors[terrain])
			tile.SetPosition(game.TileCenter([2]int{x, y}).Mul(tileSize))
			layer.tiles = append(layer.tiles, tile)
		}
	}
	return layer
}

func (l *terrainLayer) Render(ctx *sprite.RenderContext, shader sprite.Shader) {
	for _, tile := range l.tiles {
		tile.Render(ctx, shader)
	}
}
