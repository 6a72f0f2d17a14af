package sprite

import (
	"github.com/go-gl/mathgl/mgl32"
)

const objectScale = 0.65

// GLObject is a quad drawn with the shared mesh of a RenderContext, either textured or
// filled with a flat color.
type GLObject struct {
	position      mgl32.Vec3
	color         mgl32.Vec3
	texture       Texture
	renderTexture bool
}

// NewColored creates an untextured quad at the origin.
func NewColored(color mgl32.Vec3) *GLObject {
	return &GLObject{color: color}
}

func (o *GLObject) SetPosition(pos mgl32.Vec3) {
	o.position = pos
}

func (o *GLObject) GetPosition() mgl32.Vec3 {
	return o.position
}

func (o *GLObject) SetColor(color mgl32.Vec3) {
	o.color = color
}

func (o *GLObject) GetColor() mgl32.Vec3 {
	return o.color
}

func (o *GLObject) IsTextured() bool {
	return o.renderTexture
}

func (o *GLObject) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.position.X(), o.position.Y(), o.position.Z()).Mul4(mgl32.Scale3D(objectScale, objectScale, objectScale))
}

// Render draws the quad. The shader must already be bound. useTex is left at false afterwards.
func (o *GLObject) Render(ctx *RenderContext, shader Shader) {
	if ctx.quad == nil {
		panic("sprite: render without a quad mesh, call SetTileSize first")
	}
	useTex := shader.UniformIndex("useTex")

	shader.SetUniformAttr(shader.UniformIndex("model"), o.ModelMatrix())

	if o.renderTexture {
		shader.SetUniformAttr(useTex, int32(1))
		o.texture.Begin()
	} else {
		shader.SetUniformAttr(useTex, int32(0))
		shader.SetUniformAttr(shader.UniformIndex("color"), o.color)
	}

	ctx.quad.Begin()
	ctx.quad.Draw()
	ctx.quad.End()

	if o.renderTexture {
		o.texture.End()
	}
	shader.SetUniformAttr(useTex, int32(0))
}
