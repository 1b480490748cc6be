// Package gputest provides an in-memory gpu.Device that records every call.
package gputest

import (
	"fmt"
	"strings"

	m "github.com/go-gl/mathgl/mgl32"

	"github.com/cypresslf/test-webgl/internal/gpu"
)

// Call is a single recorded device call.
type Call struct {
	Name string
	Args []interface{}
}

func (call Call) String() string {
	return fmt.Sprintf("%s%v", call.Name, call.Args)
}

// Device records calls and simulates just enough GL state for tests.
//
// Shader stages fail to compile when their source contains FailMarker.
// Attribute and uniform locations are assigned from `in` and `uniform`
// declarations found in the attached sources, in declaration order.
type Device struct {
	Calls []Call

	// FailCreate makes Create* return 0 for the named kind:
	// "shader", "program", "vertexArray", "buffer" or "texture".
	FailCreate map[string]bool
	FailMarker string
	FailLink   bool
	CompileLog string
	LinkLog    string

	next     uint32
	live     map[uint32]string
	sources  map[uint32]string
	kinds    map[uint32]uint32
	attached map[uint32][]uint32
	linked   map[uint32]bool

	bound    map[uint32]uint32
	Params   map[uint32]map[uint32]int32
	Mipmaps  map[uint32]int
	Images   map[uint32][2]int32
	Uniforms map[int32]interface{}
}

var _ gpu.Device = (*Device)(nil)

// New returns a recording device with an "#error" compile-failure marker.
func New() *Device {
	return &Device{
		FailCreate: map[string]bool{},
		FailMarker: "#error",
		CompileLog: "0:1(1): error: syntax error",
		LinkLog:    "error: vertex output not consumed",

		live:     map[uint32]string{},
		sources:  map[uint32]string{},
		kinds:    map[uint32]uint32{},
		attached: map[uint32][]uint32{},
		linked:   map[uint32]bool{},
		bound:    map[uint32]uint32{},
		Params:   map[uint32]map[uint32]int32{},
		Mipmaps:  map[uint32]int{},
		Images:   map[uint32][2]int32{},
		Uniforms: map[int32]interface{}{},
	}
}

func (device *Device) record(name string, args ...interface{}) {
	device.Calls = append(device.Calls, Call{Name: name, Args: args})
}

func (device *Device) create(kind string) uint32 {
	device.record("Create"+strings.ToUpper(kind[:1])+kind[1:], kind)
	if device.FailCreate[kind] {
		return 0
	}
	device.next++
	device.live[device.next] = kind
	return device.next
}

func (device *Device) destroy(name string, handle uint32) {
	device.record(name, handle)
	delete(device.live, handle)
}

// Live returns the number of live objects of the given kind.
func (device *Device) Live(kind string) int {
	n := 0
	for _, k := range device.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Count returns how many times the named call was recorded.
func (device *Device) Count(name string) int {
	n := 0
	for _, call := range device.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls with the given name.
func (device *Device) Find(name string) []Call {
	var calls []Call
	for _, call := range device.Calls {
		if call.Name == name {
			calls = append(calls, call)
		}
	}
	return calls
}

// Names lists the recorded call names in order.
func (device *Device) Names() []string {
	names := make([]string, 0, len(device.Calls))
	for _, call := range device.Calls {
		names = append(names, call.Name)
	}
	return names
}

// Reset forgets recorded calls but keeps object state.
func (device *Device) Reset() { device.Calls = nil }

func (device *Device) CreateShader(kind uint32) uint32 {
	shader := device.create("shader")
	if shader != 0 {
		device.kinds[shader] = kind
	}
	return shader
}

func (device *Device) ShaderSource(shader uint32, source string) {
	device.record("ShaderSource", shader)
	device.sources[shader] = source
}

func (device *Device) CompileShader(shader uint32) { device.record("CompileShader", shader) }

func (device *Device) ShaderCompiled(shader uint32) bool {
	return device.FailMarker == "" || !strings.Contains(device.sources[shader], device.FailMarker)
}

func (device *Device) ShaderInfoLog(shader uint32) string {
	if device.ShaderCompiled(shader) {
		return ""
	}
	return device.CompileLog
}

func (device *Device) DeleteShader(shader uint32) { device.destroy("DeleteShader", shader) }

func (device *Device) CreateProgram() uint32 { return device.create("program") }

func (device *Device) AttachShader(program, shader uint32) {
	device.record("AttachShader", program, shader)
	device.attached[program] = append(device.attached[program], shader)
}

func (device *Device) LinkProgram(program uint32) {
	device.record("LinkProgram", program)
	device.linked[program] = !device.FailLink
}

func (device *Device) ProgramLinked(program uint32) bool { return device.linked[program] }

func (device *Device) ProgramInfoLog(program uint32) string {
	if device.linked[program] {
		return ""
	}
	return device.LinkLog
}

func (device *Device) DeleteProgram(program uint32) { device.destroy("DeleteProgram", program) }

func (device *Device) UseProgram(program uint32) { device.record("UseProgram", program) }

// declarations returns names declared with the given qualifier in the
// program's attached stages, optionally restricted to one stage kind.
func (device *Device) declarations(program uint32, qualifier string, kind uint32) []string {
	var names []string
	for _, shader := range device.attached[program] {
		if kind != 0 && device.kinds[shader] != kind {
			continue
		}
		for _, line := range strings.Split(device.sources[shader], "\n") {
			fields := strings.Fields(line)
			if len(fields) < 3 || fields[0] != qualifier {
				continue
			}
			names = append(names, strings.TrimSuffix(fields[len(fields)-1], ";"))
		}
	}
	return names
}

func (device *Device) location(names []string, name string) int32 {
	for i, declared := range names {
		if declared == name {
			return int32(i)
		}
	}
	return -1
}

func (device *Device) GetAttribLocation(program uint32, name string) int32 {
	device.record("GetAttribLocation", program, name)
	if !device.linked[program] {
		return -1
	}
	return device.location(device.declarations(program, "in", gpu.VERTEX_SHADER), name)
}

func (device *Device) GetUniformLocation(program uint32, name string) int32 {
	device.record("GetUniformLocation", program, name)
	if !device.linked[program] {
		return -1
	}
	return device.location(device.declarations(program, "uniform", 0), name)
}

func (device *Device) Uniform1i(location int32, v int32) {
	device.record("Uniform1i", location, v)
	device.Uniforms[location] = v
}

func (device *Device) UniformMatrix4fv(location int32, v m.Mat4) {
	device.record("UniformMatrix4fv", location, v)
	device.Uniforms[location] = v
}

func (device *Device) CreateVertexArray() uint32 { return device.create("vertexArray") }

func (device *Device) BindVertexArray(vao uint32) { device.record("BindVertexArray", vao) }

func (device *Device) DeleteVertexArray(vao uint32) { device.destroy("DeleteVertexArray", vao) }

func (device *Device) CreateBuffer() uint32 { return device.create("buffer") }

func (device *Device) BindBuffer(target, buffer uint32) {
	device.record("BindBuffer", target, buffer)
	device.bound[target] = buffer
}

func (device *Device) BufferFloat32(target uint32, data []float32, usage uint32) {
	device.record("BufferFloat32", target, len(data), usage)
}

func (device *Device) BufferUint16(target uint32, data []uint16, usage uint32) {
	device.record("BufferUint16", target, len(data), usage)
}

func (device *Device) DeleteBuffer(buffer uint32) { device.destroy("DeleteBuffer", buffer) }

func (device *Device) EnableVertexAttribArray(index uint32) {
	device.record("EnableVertexAttribArray", index)
}

func (device *Device) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	device.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (device *Device) CreateTexture() uint32 { return device.create("texture") }

func (device *Device) ActiveTexture(unit uint32) { device.record("ActiveTexture", unit) }

func (device *Device) BindTexture(target, texture uint32) {
	device.record("BindTexture", target, texture)
	device.bound[target] = texture
}

func (device *Device) TexImage2D(target uint32, level int32, width, height int32, pixels []uint8) {
	device.record("TexImage2D", target, level, width, height, len(pixels))
	device.Images[device.bound[target]] = [2]int32{width, height}
}

func (device *Device) TexParameteri(target, pname uint32, param int32) {
	device.record("TexParameteri", target, pname, param)
	texture := device.bound[target]
	if device.Params[texture] == nil {
		device.Params[texture] = map[uint32]int32{}
	}
	device.Params[texture][pname] = param
}

func (device *Device) GenerateMipmap(target uint32) {
	device.record("GenerateMipmap", target)
	device.Mipmaps[device.bound[target]]++
}

func (device *Device) DeleteTexture(texture uint32) { device.destroy("DeleteTexture", texture) }

func (device *Device) Viewport(x, y, width, height int32) {
	device.record("Viewport", x, y, width, height)
}

func (device *Device) ClearColor(r, g, b, a float32) { device.record("ClearColor", r, g, b, a) }

func (device *Device) ClearDepth(depth float64) { device.record("ClearDepth", depth) }

func (device *Device) Clear(mask uint32) { device.record("Clear", mask) }

func (device *Device) Enable(capability uint32) { device.record("Enable", capability) }

func (device *Device) DepthFunc(fn uint32) { device.record("DepthFunc", fn) }

func (device *Device) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	device.record("DrawElements", mode, count, xtype, offset)
}

func (device *Device) DrawArrays(mode uint32, first, count int32) {
	device.record("DrawArrays", mode, first, count)
}
