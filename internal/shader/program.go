// Package shader compiles and links GLSL programs and resolves their bindings.
package shader

import (
	"github.com/cypresslf/test-webgl/internal/gpu"
)

// Absent is the location of an attribute or uniform the program does not expose.
const Absent int32 = -1

// Kind is a shader stage type.
type Kind uint32

const (
	Vertex   = Kind(gpu.VERTEX_SHADER)
	Fragment = Kind(gpu.FRAGMENT_SHADER)
)

func (kind Kind) String() string {
	switch kind {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return "unknown"
}

// Stage is a successfully compiled shader stage.
type Stage struct {
	ID   uint32
	Kind Kind
}

// Compile compiles a single stage. On failure the stage object is
// deleted and the compiler log is returned as *CompileError.
func Compile(device gpu.Device, source string, kind Kind) (Stage, error) {
	shader := device.CreateShader(uint32(kind))
	if shader == 0 {
		return Stage{}, gpu.CreationFailed(kind.String() + " shader")
	}

	device.ShaderSource(shader, source)
	device.CompileShader(shader)

	if !device.ShaderCompiled(shader) {
		log := device.ShaderInfoLog(shader)
		device.DeleteShader(shader)
		return Stage{}, &CompileError{Kind: kind, Log: log}
	}

	return Stage{ID: shader, Kind: kind}, nil
}

// Link links a vertex and fragment stage into a program. The stages
// stay owned by the caller. On failure the program object is deleted.
func Link(device gpu.Device, vertex, fragment Stage) (uint32, error) {
	if vertex.ID == 0 || vertex.Kind != Vertex {
		return 0, &LinkError{Log: "invalid vertex stage"}
	}
	if fragment.ID == 0 || fragment.Kind != Fragment {
		return 0, &LinkError{Log: "invalid fragment stage"}
	}

	program := device.CreateProgram()
	if program == 0 {
		return 0, gpu.CreationFailed("program")
	}

	device.AttachShader(program, vertex.ID)
	device.AttachShader(program, fragment.ID)
	device.LinkProgram(program)

	if !device.ProgramLinked(program) {
		log := device.ProgramInfoLog(program)
		device.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}

	return program, nil
}

// Program is a linked program together with its binding table.
type Program struct {
	ID      uint32
	Variant Variant

	device     gpu.Device
	attributes map[string]int32
	uniforms   map[string]int32
}

// New builds the program for variant from its built-in sources.
func New(device gpu.Device, variant Variant) (*Program, error) {
	vertexSource, fragmentSource := variant.Sources()
	return Build(device, variant, vertexSource, fragmentSource)
}

// Build compiles, links and resolves a program from custom sources that
// follow the variant's naming contract.
func Build(device gpu.Device, variant Variant, vertexSource, fragmentSource string) (*Program, error) {
	vertex, err := Compile(device, vertexSource, Vertex)
	if err != nil {
		return nil, err
	}
	defer device.DeleteShader(vertex.ID)

	fragment, err := Compile(device, fragmentSource, Fragment)
	if err != nil {
		return nil, err
	}
	defer device.DeleteShader(fragment.ID)

	id, err := Link(device, vertex, fragment)
	if err != nil {
		return nil, err
	}

	program := &Program{
		ID:         id,
		Variant:    variant,
		device:     device,
		attributes: make(map[string]int32),
		uniforms:   make(map[string]int32),
	}
	if err := program.resolve(); err != nil {
		program.Delete()
		return nil, err
	}
	return program, nil
}

func (program *Program) resolve() error {
	var missing []string

	for _, binding := range program.Variant.Attributes() {
		location := program.lookup(binding, program.device.GetAttribLocation)
		program.attributes[binding.Name] = location
		if location == Absent {
			missing = append(missing, binding.Name)
		}
	}

	for _, binding := range program.Variant.Uniforms() {
		location := program.lookup(binding, program.device.GetUniformLocation)
		program.uniforms[binding.Name] = location
		if location == Absent {
			missing = append(missing, binding.Name)
		}
	}

	if len(missing) > 0 {
		return &BindingError{Variant: program.Variant, Names: missing}
	}
	return nil
}

func (program *Program) lookup(binding Binding, locate func(uint32, string) int32) int32 {
	location := locate(program.ID, binding.Name)
	if location < 0 && binding.Alias != "" {
		location = locate(program.ID, binding.Alias)
	}
	if location < 0 {
		return Absent
	}
	return location
}

// Attribute returns the slot resolved for name, or Absent.
func (program *Program) Attribute(name string) int32 {
	if program == nil {
		return Absent
	}
	location, ok := program.attributes[name]
	if !ok {
		return Absent
	}
	return location
}

// Uniform returns the location resolved for name, or Absent.
func (program *Program) Uniform(name string) int32 {
	if program == nil {
		return Absent
	}
	location, ok := program.uniforms[name]
	if !ok {
		return Absent
	}
	return location
}

// Delete releases the program object.
func (program *Program) Delete() {
	if program.ID == 0 {
		return
	}
	program.device.DeleteProgram(program.ID)
	program.ID = 0
}
