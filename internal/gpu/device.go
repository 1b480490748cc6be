// Package gpu describes the subset of OpenGL the cube pipeline talks to.
//
// Constants carry the real GL enum values, so a backend can hand them to
// the driver unchanged.
package gpu

import (
	"errors"
	"fmt"

	m "github.com/go-gl/mathgl/mgl32"
)

// ErrResourceCreation is returned when the driver refuses to allocate an object.
var ErrResourceCreation = errors.New("gpu: resource creation failed")

// CreationFailed wraps ErrResourceCreation with the kind of object that failed.
func CreationFailed(kind string) error {
	return fmt.Errorf("%w: %s", ErrResourceCreation, kind)
}

const (
	TRIANGLES      uint32 = 0x0004
	TRIANGLE_STRIP uint32 = 0x0005

	UNSIGNED_SHORT uint32 = 0x1403
	FLOAT          uint32 = 0x1406

	ARRAY_BUFFER         uint32 = 0x8892
	ELEMENT_ARRAY_BUFFER uint32 = 0x8893
	STATIC_DRAW          uint32 = 0x88E4

	FRAGMENT_SHADER uint32 = 0x8B30
	VERTEX_SHADER   uint32 = 0x8B31

	TEXTURE_2D uint32 = 0x0DE1
	TEXTURE0   uint32 = 0x84C0

	TEXTURE_MAG_FILTER uint32 = 0x2800
	TEXTURE_MIN_FILTER uint32 = 0x2801
	TEXTURE_WRAP_S     uint32 = 0x2802
	TEXTURE_WRAP_T     uint32 = 0x2803

	LINEAR               int32 = 0x2601
	LINEAR_MIPMAP_LINEAR int32 = 0x2703
	REPEAT               int32 = 0x2901
	CLAMP_TO_EDGE        int32 = 0x812F

	DEPTH_BUFFER_BIT uint32 = 0x0100
	COLOR_BUFFER_BIT uint32 = 0x4000

	DEPTH_TEST uint32 = 0x0B71
	LEQUAL     uint32 = 0x0203
)

// Device is the GL call surface used by the pipeline.
//
// Create* methods return 0 when the driver could not allocate the object.
// Location queries return -1 for names the program does not expose.
type Device interface {
	CreateShader(kind uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	UniformMatrix4fv(location int32, v m.Mat4)

	CreateVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	CreateBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferFloat32(target uint32, data []float32, usage uint32)
	BufferUint16(target uint32, data []uint16, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)

	CreateTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexImage2D(target uint32, level int32, width, height int32, pixels []uint8)
	TexParameteri(target, pname uint32, param int32)
	GenerateMipmap(target uint32)
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	Clear(mask uint32)
	Enable(capability uint32)
	DepthFunc(fn uint32)

	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawArrays(mode uint32, first, count int32)
}
