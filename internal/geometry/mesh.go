// Package geometry builds the static quad and cube meshes and uploads them once.
package geometry

import (
	"fmt"

	m "github.com/go-gl/mathgl/mgl32"
)

// Shape selects which mesh Build produces.
type Shape int

const (
	Quad Shape = iota
	Cube
)

func (shape Shape) String() string {
	switch shape {
	case Quad:
		return "quad"
	case Cube:
		return "cube"
	}
	return fmt.Sprintf("Shape(%d)", int(shape))
}

// Mesh holds tightly packed per-vertex streams. Streams a shape does
// not provide are left empty.
type Mesh struct {
	Shape Shape

	// PositionSize is the number of components per position, 2 or 3.
	PositionSize int32

	Positions     []float32
	Normals       []float32
	TextureCoords []float32
	Colors        []float32
	Indices       []uint16
}

// VertexCount returns the number of vertices in the mesh.
func (mesh *Mesh) VertexCount() int {
	if mesh.PositionSize == 0 {
		return 0
	}
	return len(mesh.Positions) / int(mesh.PositionSize)
}

// Build creates the mesh for shape.
func Build(shape Shape) Mesh {
	switch shape {
	case Quad:
		return buildQuad()
	case Cube:
		return buildCube()
	}
	panic(fmt.Sprintf("geometry: unknown shape %v", shape))
}

var (
	white  = m.Vec4{1, 1, 1, 1}
	red    = m.Vec4{1, 0, 0, 1}
	green  = m.Vec4{0, 1, 0, 1}
	blue   = m.Vec4{0, 0, 1, 1}
	yellow = m.Vec4{1, 1, 0, 1}
	purple = m.Vec4{1, 0, 1, 1}
)

// buildQuad returns a triangle-strip square in the XY plane.
func buildQuad() Mesh {
	mesh := Mesh{Shape: Quad, PositionSize: 2}
	corners := []m.Vec2{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	colors := []m.Vec4{white, red, green, blue}
	for i, corner := range corners {
		mesh.Positions = append(mesh.Positions, corner[:]...)
		mesh.Colors = append(mesh.Colors, colors[i][:]...)
	}
	return mesh
}

type face struct {
	normal  m.Vec3
	color   m.Vec4
	corners [4]m.Vec3
}

// Corners are listed counter-clockwise when seen from outside the cube.
var cubeFaces = [6]face{
	{ // front
		normal:  m.Vec3{0, 0, 1},
		color:   white,
		corners: [4]m.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	},
	{ // back
		normal:  m.Vec3{0, 0, -1},
		color:   red,
		corners: [4]m.Vec3{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}},
	},
	{ // top
		normal:  m.Vec3{0, 1, 0},
		color:   green,
		corners: [4]m.Vec3{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
	},
	{ // bottom
		normal:  m.Vec3{0, -1, 0},
		color:   blue,
		corners: [4]m.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	},
	{ // right
		normal:  m.Vec3{1, 0, 0},
		color:   yellow,
		corners: [4]m.Vec3{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},
	},
	{ // left
		normal:  m.Vec3{-1, 0, 0},
		color:   purple,
		corners: [4]m.Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
	},
}

var faceUV = [4]m.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Vertex appends a single vertex and returns its index.
func (mesh *Mesh) Vertex(position, normal m.Vec3, uv m.Vec2, color m.Vec4) uint16 {
	index := uint16(mesh.VertexCount())
	mesh.Positions = append(mesh.Positions, position[:]...)
	mesh.Normals = append(mesh.Normals, normal[:]...)
	mesh.TextureCoords = append(mesh.TextureCoords, uv[:]...)
	mesh.Colors = append(mesh.Colors, color[:]...)
	return index
}

// Triangle appends one triangle.
func (mesh *Mesh) Triangle(a, b, c uint16) {
	mesh.Indices = append(mesh.Indices, a, b, c)
}

// buildCube uses four vertices per face so every face has its own normal,
// texture coordinates and color.
func buildCube() Mesh {
	mesh := Mesh{Shape: Cube, PositionSize: 3}
	for _, f := range cubeFaces {
		var corner [4]uint16
		for i, position := range f.corners {
			corner[i] = mesh.Vertex(position, f.normal, faceUV[i], f.color)
		}
		mesh.Triangle(corner[0], corner[1], corner[2])
		mesh.Triangle(corner[0], corner[2], corner[3])
	}
	return mesh
}
