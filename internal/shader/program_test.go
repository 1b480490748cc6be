package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/cypresslf/test-webgl/internal/gpu"
	"github.com/cypresslf/test-webgl/internal/gpu/gputest"
)

func TestNewResolvesVariantBindings(t *testing.T) {
	for _, variant := range []Variant{Flat, Textured, TexturedLit} {
		t.Run(variant.String(), func(t *testing.T) {
			device := gputest.New()
			program, err := New(device, variant)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer program.Delete()

			for _, binding := range variant.Attributes() {
				if program.Attribute(binding.Name) == Absent {
					t.Errorf("attribute %q unresolved", binding.Name)
				}
			}
			for _, binding := range variant.Uniforms() {
				if program.Uniform(binding.Name) == Absent {
					t.Errorf("uniform %q unresolved", binding.Name)
				}
			}

			if got := device.Live("shader"); got != 0 {
				t.Errorf("live shader stages = %d, want 0", got)
			}
			if got := device.Live("program"); got != 1 {
				t.Errorf("live programs = %d, want 1", got)
			}
		})
	}
}

func TestUnknownNameIsAbsent(t *testing.T) {
	device := gputest.New()
	program, err := New(device, TexturedLit)
	if err != nil {
		t.Fatal(err)
	}

	if got := program.Attribute("tangent"); got != Absent {
		t.Errorf("Attribute(tangent) = %d, want Absent", got)
	}
	if got := program.Uniform("fogColor"); got != Absent {
		t.Errorf("Uniform(fogColor) = %d, want Absent", got)
	}

	var missing *Program
	if got := missing.Uniform(Sampler); got != Absent {
		t.Errorf("nil program Uniform = %d, want Absent", got)
	}
}

func TestCompileErrorReleasesStages(t *testing.T) {
	tests := []struct {
		name     string
		vertex   string
		fragment string
		kind     Kind
	}{
		{name: "vertex", vertex: "#error broken\n", fragment: flatFragmentShader, kind: Vertex},
		{name: "fragment", vertex: flatVertexShader, fragment: "#error broken\n", kind: Fragment},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			device := gputest.New()
			_, err := Build(device, Flat, test.vertex, test.fragment)

			var compileErr *CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("Build error = %v, want *CompileError", err)
			}
			if compileErr.Kind != test.kind {
				t.Errorf("Kind = %v, want %v", compileErr.Kind, test.kind)
			}
			if !strings.Contains(err.Error(), device.CompileLog) {
				t.Errorf("error %q does not carry compiler log", err)
			}
			if !errors.Is(err, ErrCompile) {
				t.Errorf("error does not wrap ErrCompile")
			}
			if device.Count("LinkProgram") != 0 {
				t.Errorf("link attempted after compile failure")
			}
			if got := device.Live("shader"); got != 0 {
				t.Errorf("live shader stages = %d, want 0", got)
			}
		})
	}
}

func TestLinkErrorReleasesEverything(t *testing.T) {
	device := gputest.New()
	device.FailLink = true

	_, err := New(device, TexturedLit)

	var linkErr *LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("New error = %v, want *LinkError", err)
	}
	if linkErr.Log != device.LinkLog {
		t.Errorf("Log = %q, want %q", linkErr.Log, device.LinkLog)
	}
	if device.Live("shader") != 0 || device.Live("program") != 0 {
		t.Errorf("leaked objects: %d shaders, %d programs", device.Live("shader"), device.Live("program"))
	}
	if device.Count("GetAttribLocation")+device.Count("GetUniformLocation") != 0 {
		t.Errorf("locations queried on a program that failed to link")
	}
}

func TestLinkRejectsInvalidStages(t *testing.T) {
	device := gputest.New()
	vertex, err := Compile(device, flatVertexShader, Vertex)
	if err != nil {
		t.Fatal(err)
	}
	defer device.DeleteShader(vertex.ID)

	_, err = Link(device, vertex, Stage{})
	if !errors.Is(err, ErrLink) {
		t.Fatalf("Link error = %v, want ErrLink", err)
	}
	_, err = Link(device, vertex, vertex)
	if !errors.Is(err, ErrLink) {
		t.Fatalf("Link with two vertex stages = %v, want ErrLink", err)
	}
	if device.Count("CreateProgram") != 0 {
		t.Errorf("program created for invalid stages")
	}
}

func TestCreationFailure(t *testing.T) {
	device := gputest.New()
	device.FailCreate["shader"] = true

	_, err := New(device, Flat)
	if !errors.Is(err, gpu.ErrResourceCreation) {
		t.Fatalf("New error = %v, want ErrResourceCreation", err)
	}
}

func TestUniformAliases(t *testing.T) {
	vertex := strings.NewReplacer(
		"modelViewMatrix", "modelView",
		"projectionMatrix", "projection",
	).Replace(flatVertexShader)

	device := gputest.New()
	program, err := Build(device, Flat, vertex, flatFragmentShader)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if program.Uniform(ProjectionMatrix) == Absent {
		t.Errorf("projection alias not resolved")
	}
	if program.Uniform(ModelViewMatrix) == Absent {
		t.Errorf("modelView alias not resolved")
	}
}

func TestMissingRequiredBinding(t *testing.T) {
	vertex := strings.Replace(litVertexShader, "uniform mat4 normalMatrix;", "const mat4 normalMatrix = mat4(1.0);", 1)

	device := gputest.New()
	_, err := Build(device, TexturedLit, vertex, litFragmentShader)

	var bindingErr *BindingError
	if !errors.As(err, &bindingErr) {
		t.Fatalf("Build error = %v, want *BindingError", err)
	}
	if len(bindingErr.Names) != 1 || bindingErr.Names[0] != NormalMatrix {
		t.Errorf("Names = %v, want [%v]", bindingErr.Names, NormalMatrix)
	}
	if device.Live("program") != 0 {
		t.Errorf("program not released after binding error")
	}
}

func TestParseVariant(t *testing.T) {
	for _, variant := range []Variant{Flat, Textured, TexturedLit} {
		got, err := ParseVariant(variant.String())
		if err != nil || got != variant {
			t.Errorf("ParseVariant(%q) = %v, %v", variant.String(), got, err)
		}
	}
	if _, err := ParseVariant("wireframe"); err == nil {
		t.Errorf("ParseVariant(wireframe) succeeded")
	}
}
