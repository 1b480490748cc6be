// Package transform advances the cube's rotation and builds its matrices.
package transform

import (
	"github.com/adinfinit/g"
	m "github.com/go-gl/mathgl/mgl32"
)

const (
	FieldOfView = 45 // degrees, vertical
	Near        = 0.1
	Far         = 100.0
	Distance    = 6.0
)

// Rotation rates about each axis relative to the base angle.
const (
	RateZ = 1.0
	RateY = 0.7
	RateX = 0.3
)

// Matrices are the per-frame uniform values.
type Matrices struct {
	Projection m.Mat4
	ModelView  m.Mat4
	Normal     m.Mat4
}

// Transformer owns the rotation state for one renderer.
type Transformer struct {
	// Angle is the accumulated rotation in radians.
	Angle float64
	// Previous is the timestamp of the last Advance, in seconds.
	Previous float64
	// DeltaTime is the time between the last two Advance calls.
	DeltaTime float64

	Viewport   g.Vec2
	projection m.Mat4
}

// New creates a transformer with zeroed rotation state.
func New(viewport g.Vec2) *Transformer {
	transformer := &Transformer{}
	transformer.UpdateViewport(viewport)
	return transformer
}

// Advance moves time forward to now (seconds) and returns the elapsed
// time and the new angle. The angle grows by one radian per second.
func (transformer *Transformer) Advance(now float64) (deltaTime, angle float64) {
	transformer.DeltaTime = now - transformer.Previous
	transformer.Angle += transformer.DeltaTime
	transformer.Previous = now
	return transformer.DeltaTime, transformer.Angle
}

// UpdateViewport recomputes the projection when the viewport changes.
// It reports whether anything changed. Empty viewports are ignored.
func (transformer *Transformer) UpdateViewport(size g.Vec2) bool {
	if size == transformer.Viewport || size.X <= 0 || size.Y <= 0 {
		return false
	}
	transformer.Viewport = size
	transformer.projection = Projection(size.X / size.Y)
	return true
}

// Matrices returns the matrices for the current angle.
func (transformer *Transformer) Matrices() Matrices {
	modelView := ModelView(float32(transformer.Angle))
	return Matrices{
		Projection: transformer.projection,
		ModelView:  modelView,
		Normal:     NormalMatrix(modelView),
	}
}

// Projection is a perspective projection with the fixed field of view
// and clip planes.
func Projection(aspect float32) m.Mat4 {
	return m.Perspective(g.DegToRad(FieldOfView), aspect, Near, Far)
}

// ModelView places the cube in front of the camera and rotates it about
// Z, then Y, then X. Each rotation is multiplied on the right.
func ModelView(angle float32) m.Mat4 {
	modelView := m.Ident4()
	modelView = modelView.Mul4(m.Translate3D(0, 0, -Distance))
	modelView = modelView.Mul4(m.HomogRotate3DZ(angle * RateZ))
	modelView = modelView.Mul4(m.HomogRotate3DY(angle * RateY))
	modelView = modelView.Mul4(m.HomogRotate3DX(angle * RateX))
	return modelView
}

// NormalMatrix is the inverse transpose of modelView.
func NormalMatrix(modelView m.Mat4) m.Mat4 {
	return modelView.Inv().Transpose()
}
