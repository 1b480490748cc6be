package shader

import "fmt"

// Names shared between shader sources and the renderer.
const (
	Position     = "position"
	Normal       = "normal"
	TextureCoord = "textureCoord"
	Color        = "color"

	ProjectionMatrix = "projectionMatrix"
	ModelViewMatrix  = "modelViewMatrix"
	NormalMatrix     = "normalMatrix"
	Sampler          = "sampler"
)

// Binding is an attribute or uniform the renderer expects to find.
// Alias is an accepted alternative declaration name. Size is the
// component count of an attribute.
type Binding struct {
	Name  string
	Alias string
	Size  int32
}

// Variant selects which inputs the pipeline binds.
type Variant int

const (
	// Flat draws a vertex-colored quad.
	Flat Variant = iota
	// Textured draws an unlit textured cube.
	Textured
	// TexturedLit draws a textured cube with ambient and directional light.
	TexturedLit
)

var variantNames = [...]string{
	Flat:        "flat",
	Textured:    "textured",
	TexturedLit: "textured-lit",
}

func (variant Variant) String() string {
	if variant < 0 || int(variant) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(variant))
	}
	return variantNames[variant]
}

// ParseVariant parses a name produced by Variant.String.
func ParseVariant(name string) (Variant, error) {
	for variant, s := range variantNames {
		if s == name {
			return Variant(variant), nil
		}
	}
	return 0, fmt.Errorf("unknown pipeline %q, expected one of %v", name, variantNames)
}

// Textured reports whether the variant samples a texture.
func (variant Variant) Textured() bool { return variant == Textured || variant == TexturedLit }

// Lit reports whether the variant uses normals and the normal matrix.
func (variant Variant) Lit() bool { return variant == TexturedLit }

var transformUniforms = []Binding{
	{Name: ProjectionMatrix, Alias: "projection"},
	{Name: ModelViewMatrix, Alias: "modelView"},
}

// Attributes lists the vertex inputs the variant binds.
func (variant Variant) Attributes() []Binding {
	switch variant {
	case Flat:
		return []Binding{
			{Name: Position, Size: 2},
			{Name: Color, Size: 4},
		}
	case Textured:
		return []Binding{
			{Name: Position, Size: 3},
			{Name: TextureCoord, Size: 2},
		}
	case TexturedLit:
		return []Binding{
			{Name: Position, Size: 3},
			{Name: Normal, Size: 3},
			{Name: TextureCoord, Size: 2},
		}
	}
	return nil
}

// Uniforms lists the uniforms the variant sets.
func (variant Variant) Uniforms() []Binding {
	uniforms := append([]Binding{}, transformUniforms...)
	if variant.Lit() {
		uniforms = append(uniforms, Binding{Name: NormalMatrix})
	}
	if variant.Textured() {
		uniforms = append(uniforms, Binding{Name: Sampler})
	}
	return uniforms
}

// Sources returns the built-in vertex and fragment sources.
func (variant Variant) Sources() (vertex, fragment string) {
	switch variant {
	case Flat:
		return flatVertexShader, flatFragmentShader
	case Textured:
		return texturedVertexShader, texturedFragmentShader
	case TexturedLit:
		return litVertexShader, litFragmentShader
	}
	return "", ""
}

var flatVertexShader = `
#version 410 core

in vec4 position;
in vec4 color;

uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;

out vec4 vColor;

void main() {
	gl_Position = projectionMatrix * modelViewMatrix * position;
	vColor = color;
}
`

var flatFragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 fragColor;

void main() {
	fragColor = vColor;
}
`

var texturedVertexShader = `
#version 410 core

in vec4 position;
in vec2 textureCoord;

uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;

out vec2 vTextureCoord;

void main() {
	gl_Position = projectionMatrix * modelViewMatrix * position;
	vTextureCoord = textureCoord;
}
`

var texturedFragmentShader = `
#version 410 core

in vec2 vTextureCoord;

uniform sampler2D sampler;
out vec4 fragColor;

void main() {
	fragColor = texture(sampler, vTextureCoord);
}
`

var litVertexShader = `
#version 410 core

in vec4 position;
in vec3 normal;
in vec2 textureCoord;

uniform mat4 normalMatrix;
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;

out vec2 vTextureCoord;
out vec3 vLighting;

const vec3 AMBIENT_LIGHT = vec3(0.3, 0.3, 0.3);
const vec3 DIRECTIONAL_LIGHT_COLOR = vec3(1, 1, 1);
const vec3 DIRECTIONAL_VECTOR = vec3(0.85, 0.8, 0.75);

void main() {
	gl_Position = projectionMatrix * modelViewMatrix * position;
	vTextureCoord = textureCoord;

	vec4 transformedNormal = normalMatrix * vec4(normal, 1.0);
	float directional = max(dot(transformedNormal.xyz, normalize(DIRECTIONAL_VECTOR)), 0.0);
	vLighting = AMBIENT_LIGHT + DIRECTIONAL_LIGHT_COLOR * directional;
}
`

var litFragmentShader = `
#version 410 core

in vec2 vTextureCoord;
in vec3 vLighting;

uniform sampler2D sampler;
out vec4 fragColor;

void main() {
	vec4 texelColor = texture(sampler, vTextureCoord);
	fragColor = vec4(texelColor.rgb * vLighting, texelColor.a);
}
`
