package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/intersect/internal/mesh"
)

const vertexStride = mesh.FloatsPerVertex * 4 // bytes

// vertexBuffer is a VBO+VAO pair holding one triangle list. The buffer is
// reallocated only when an upload outgrows it.
type vertexBuffer struct {
	vao, vbo    uint32
	capacity    int // in vertices
	vertexCount int
}

func newVertexBuffer() *vertexBuffer {
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	// Position (vec2) followed by colour (vec4).
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexStride, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return &vertexBuffer{vao: vao, vbo: vbo}
}

// upload replaces the buffer contents with vertices.
func (b *vertexBuffer) upload(vertices []float32) {
	count := len(vertices) / mesh.FloatsPerVertex
	b.vertexCount = count
	if count == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if count > b.capacity {
		// Grow with headroom so small rebuilds don't reallocate.
		b.capacity = count + count/2
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*vertexStride, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, count*vertexStride, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *vertexBuffer) draw() {
	if b.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(b.vertexCount))
	gl.BindVertexArray(0)
}

func (b *vertexBuffer) release() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	b.capacity, b.vertexCount = 0, 0
}

// bytes returns the GPU memory held by the buffer.
func (b *vertexBuffer) bytes() int64 { return int64(b.capacity) * vertexStride }
