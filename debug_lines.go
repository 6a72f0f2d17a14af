package main

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/glhf"
	"github.com/memmaker/outpost/engine/util"
)

// lineBatch collects the debug shapes of one frame and draws them as GL_LINES with a single
// draw call. Positions arrive in tiles and are scaled to pixels.
type lineBatch struct {
	shader   *glhf.Shader
	tileSize float32
	vertices []glhf.GlFloat
	slice    *glhf.VertexSlice[glhf.GlFloat]
}

const lineVertexStride = 6

func newLineBatch(shader *glhf.Shader, tileSize float32) *lineBatch {
	return &lineBatch{
		shader:   shader,
		tileSize: tileSize,
	}
}

func (l *lineBatch) Line(from, to mgl32.Vec3, color mgl32.Vec3) {
	l.addVertex(from, color)
	l.addVertex(to, color)
}

func (l *lineBatch) Circle(center mgl32.Vec3, radius float32, color mgl32.Vec3) {
	points := util.CirclePoints(center, radius, config.DebugCircleSegments)
	for i := 1; i < len(points); i++ {
		l.Line(points[i-1], points[i], color)
	}
}

func (l *lineBatch) addVertex(pos mgl32.Vec3, color mgl32.Vec3) {
	pos = pos.Mul(l.tileSize)
	l.vertices = append(l.vertices,
		glhf.GlFloat(pos.X()), glhf.GlFloat(pos.Y()), glhf.GlFloat(pos.Z()),
		glhf.GlFloat(color.X()), glhf.GlFloat(color.Y()), glhf.GlFloat(color.Z()),
	)
}

func (l *lineBatch) VertexCount() int {
	return len(l.vertices) / lineVertexStride
}

// Flush draws everything collected since the last flush. The vertex buffer only grows.
func (l *lineBatch) Flush() {
	count := l.VertexCount()
	if count == 0 {
		return
	}
	if l.slice == nil || l.slice.Cap() < count {
		if l.slice != nil {
			l.slice.Release()
		}
		l.slice = glhf.MakeVertexSlice(l.shader, count, count*2)
		l.slice.SetPrimitiveType(gl.LINES)
	}
	l.slice.SetLen(count)

	l.shader.Begin()
	l.slice.Begin()
	l.slice.SetVertexData(l.vertices)
	l.slice.Draw()
	l.slice.End()
	l.shader.End()

	l.vertices = l.vertices[:0]
}

func (l *lineBatch) Release() {
	if l.slice != nil {
		l.slice.Release()
		l.slice = nil
	}
}
