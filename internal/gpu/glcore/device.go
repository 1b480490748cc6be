// Package glcore implements gpu.Device on top of the OpenGL 4.1 core profile.
//
// All calls must happen on the thread that owns the current GL context.
package glcore

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	m "github.com/go-gl/mathgl/mgl32"

	"github.com/cypresslf/test-webgl/internal/gpu"
)

// Device forwards gpu.Device calls to the bound GL context.
type Device struct{}

var _ gpu.Device = Device{}

// Init loads the GL function pointers and returns the driver version string.
func Init() (Device, string, error) {
	if err := gl.Init(); err != nil {
		return Device{}, "", err
	}
	return Device{}, gl.GoStr(gl.GetString(gl.VERSION)), nil
}

func cstr(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func (Device) CreateShader(kind uint32) uint32 { return gl.CreateShader(kind) }

func (Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(cstr(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (Device) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(cstr(name)))
}

func (Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(cstr(name)))
}

func (Device) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (Device) UniformMatrix4fv(location int32, v m.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &v[0])
}

func (Device) CreateVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Device) CreateBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (Device) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Device) BufferFloat32(target uint32, data []float32, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*4, gl.Ptr(data), usage)
}

func (Device) BufferUint16(target uint32, data []uint16, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data)*2, gl.Ptr(data), usage)
}

func (Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Device) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (Device) CreateTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (Device) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (Device) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (Device) TexImage2D(target uint32, level int32, width, height int32, pixels []uint8) {
	gl.TexImage2D(target, level, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (Device) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (Device) GenerateMipmap(target uint32) { gl.GenerateMipmap(target) }

func (Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Device) ClearDepth(depth float64) { gl.ClearDepth(depth) }

func (Device) Clear(mask uint32) { gl.Clear(mask) }

func (Device) Enable(capability uint32) { gl.Enable(capability) }

func (Device) DepthFunc(fn uint32) { gl.DepthFunc(fn) }

func (Device) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (Device) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }
