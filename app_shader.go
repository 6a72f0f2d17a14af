package main

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/glhf"
)

var (
	//go:embed shader/quad.vert
	quadVertexShaderSource string

	//go:embed shader/quad.frag
	quadFragmentShaderSource string

	//go:embed shader/line.vert
	lineVertexShaderSource string

	//go:embed shader/line.frag
	lineFragmentShaderSource string
)

// pixelProjection maps pixel coordinates to clip space with 0,0 at the top left.
func pixelProjection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}

func loadQuadShader(width, height int) *glhf.Shader {
	var (
		vertexFormat = glhf.AttrFormat{
			{Name: "position", Type: glhf.Vec3},
			{Name: "texCoord", Type: glhf.Vec2},
		}
		uniformFormat = glhf.AttrFormat{
			glhf.Attr{Name: "projection", Type: glhf.Mat4},
			glhf.Attr{Name: "model", Type: glhf.Mat4},
			glhf.Attr{Name: "useTex", Type: glhf.Int},
			glhf.Attr{Name: "color", Type: glhf.Vec3},
		}
	)
	shader, err := glhf.NewShader(vertexFormat, uniformFormat, quadVertexShaderSource, quadFragmentShaderSource)
	if err != nil {
		panic(err)
	}

	shader.Begin()
	shader.SetUniformAttr(shader.UniformIndex("projection"), pixelProjection(width, height))
	shader.SetUniformAttr(shader.UniformIndex("useTex"), int32(0))
	shader.End()
	return shader
}

func loadLineShader(width, height int) *glhf.Shader {
	var (
		vertexFormat = glhf.AttrFormat{
			{Name: "position", Type: glhf.Vec3},
			{Name: "color", Type: glhf.Vec3},
		}
		uniformFormat = glhf.AttrFormat{
			glhf.Attr{Name: "projection", Type: glhf.Mat4},
		}
	)
	shader, err := glhf.NewShader(vertexFormat, uniformFormat, lineVertexShaderSource, lineFragmentShaderSource)
	if err != nil {
		panic(err)
	}

	shader.Begin()
	shader.SetUniformAttr(0, pixelProjection(width, height))
	shader.End()
	return shader
}
