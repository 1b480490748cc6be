// Package texture manages the cube's texture: a placeholder pixel at
// startup, replaced in place once decoded image data arrives.
package texture

import (
	"fmt"
	"image/color"

	"github.com/cypresslf/test-webgl/internal/gpu"
)

// DefaultPlaceholder is the opaque blue pixel shown until real content arrives.
var DefaultPlaceholder = color.RGBA{R: 0, G: 0, B: 255, A: 255}

// Texture is a 2D RGBA texture whose handle never changes.
type Texture struct {
	ID uint32

	Width     int
	Height    int
	Mipmapped bool

	device gpu.Device
}

// NewPlaceholder allocates a texture holding a single pixel of the given color.
func NewPlaceholder(device gpu.Device, placeholder color.RGBA) (*Texture, error) {
	texture := &Texture{device: device}
	texture.ID = device.CreateTexture()
	if texture.ID == 0 {
		return nil, gpu.CreationFailed("texture")
	}

	pixel := []uint8{placeholder.R, placeholder.G, placeholder.B, placeholder.A}
	if err := texture.Replace(pixel, 1, 1); err != nil {
		texture.Delete()
		return nil, err
	}
	return texture, nil
}

// IsPowerOf2 reports whether v is a positive power of two.
func IsPowerOf2(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// Replace uploads width×height RGBA pixels into the existing texture.
//
// Power-of-two content gets mipmaps and repeat wrapping. Anything else is
// clamped to edge with plain linear filtering, which the base API requires
// for non-power-of-two textures.
func (texture *Texture) Replace(pixels []uint8, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("texture: invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return fmt.Errorf("texture: got %d bytes for %dx%d RGBA", len(pixels), width, height)
	}

	device := texture.device
	device.ActiveTexture(gpu.TEXTURE0)
	device.BindTexture(gpu.TEXTURE_2D, texture.ID)
	device.TexImage2D(gpu.TEXTURE_2D, 0, int32(width), int32(height), pixels)

	texture.Width, texture.Height = width, height
	texture.Mipmapped = IsPowerOf2(width) && IsPowerOf2(height)

	if texture.Mipmapped {
		device.GenerateMipmap(gpu.TEXTURE_2D)
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_WRAP_S, gpu.REPEAT)
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_WRAP_T, gpu.REPEAT)
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_MIN_FILTER, gpu.LINEAR_MIPMAP_LINEAR)
	} else {
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_WRAP_S, gpu.CLAMP_TO_EDGE)
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_WRAP_T, gpu.CLAMP_TO_EDGE)
		device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_MIN_FILTER, gpu.LINEAR)
	}
	device.TexParameteri(gpu.TEXTURE_2D, gpu.TEXTURE_MAG_FILTER, gpu.LINEAR)

	return nil
}

// Delete releases the texture object.
func (texture *Texture) Delete() {
	if texture.ID == 0 {
		return
	}
	texture.device.DeleteTexture(texture.ID)
	texture.ID = 0
}
