package geometry

import (
	"github.com/cypresslf/test-webgl/internal/gpu"
	"github.com/cypresslf/test-webgl/internal/shader"
)

// Stream is one uploaded vertex attribute buffer.
type Stream struct {
	Buffer uint32
	Size   int32
}

// Buffers are the GPU-resident copies of a Mesh.
type Buffers struct {
	Shape Shape

	VAO     uint32
	Streams map[string]Stream

	IBO        uint32
	IndexCount int32

	VertexCount int32

	device gpu.Device
}

// Upload copies mesh into static buffers, one per non-empty stream. On
// failure every object created so far is released.
func Upload(device gpu.Device, mesh Mesh) (*Buffers, error) {
	buffers := &Buffers{
		Shape:       mesh.Shape,
		Streams:     make(map[string]Stream),
		VertexCount: int32(mesh.VertexCount()),
		device:      device,
	}

	buffers.VAO = device.CreateVertexArray()
	if buffers.VAO == 0 {
		return nil, gpu.CreationFailed("vertex array")
	}
	device.BindVertexArray(buffers.VAO)

	streams := []struct {
		name string
		data []float32
		size int32
	}{
		{shader.Position, mesh.Positions, mesh.PositionSize},
		{shader.Normal, mesh.Normals, 3},
		{shader.TextureCoord, mesh.TextureCoords, 2},
		{shader.Color, mesh.Colors, 4},
	}

	for _, stream := range streams {
		if len(stream.data) == 0 {
			continue
		}
		buffer := device.CreateBuffer()
		if buffer == 0 {
			buffers.Delete()
			return nil, gpu.CreationFailed(stream.name + " buffer")
		}
		device.BindBuffer(gpu.ARRAY_BUFFER, buffer)
		device.BufferFloat32(gpu.ARRAY_BUFFER, stream.data, gpu.STATIC_DRAW)
		buffers.Streams[stream.name] = Stream{Buffer: buffer, Size: stream.size}
	}

	if len(mesh.Indices) > 0 {
		buffers.IBO = device.CreateBuffer()
		if buffers.IBO == 0 {
			buffers.Delete()
			return nil, gpu.CreationFailed("index buffer")
		}
		device.BindBuffer(gpu.ELEMENT_ARRAY_BUFFER, buffers.IBO)
		device.BufferUint16(gpu.ELEMENT_ARRAY_BUFFER, mesh.Indices, gpu.STATIC_DRAW)
		buffers.IndexCount = int32(len(mesh.Indices))
	}

	device.BindVertexArray(0)
	return buffers, nil
}

// Stream returns the uploaded stream for an attribute name.
func (buffers *Buffers) Stream(name string) (Stream, bool) {
	stream, ok := buffers.Streams[name]
	return stream, ok
}

// Delete releases every buffer and the vertex array.
func (buffers *Buffers) Delete() {
	for name, stream := range buffers.Streams {
		buffers.device.DeleteBuffer(stream.Buffer)
		delete(buffers.Streams, name)
	}
	if buffers.IBO != 0 {
		buffers.device.DeleteBuffer(buffers.IBO)
		buffers.IBO = 0
	}
	if buffers.VAO != 0 {
		buffers.device.DeleteVertexArray(buffers.VAO)
		buffers.VAO = 0
	}
}
