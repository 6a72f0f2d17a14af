package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func EucledianDistance3D(one, two mgl32.Vec3) float32 {
	return one.Sub(two).Len()
}

func Clamp32(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// StepTowards moves from current towards target by at most maxStep and never overshoots.
func StepTowards(current, target mgl32.Vec3, maxStep float32) mgl32.Vec3 {
	delta := target.Sub(current)
	distance := delta.Len()
	if distance <= maxStep || distance == 0 {
		return target
	}
	return current.Add(delta.Mul(maxStep / distance))
}

// CirclePoints returns segments+1 points on a circle in the XY plane, first and last equal.
func CirclePoints(center mgl32.Vec3, radius float32, segments int) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := float32(i) / float32(segments) * 2 * math.Pi
		points = append(points, center.Add(mgl32.Vec3{Cos(angle) * radius, Sin(angle) * radius, 0}))
	}
	return points
}
