// Package render draws a scene and its intersection points with OpenGL.
//
// Geometry is triangulated once per Prepare in canvas space (see package
// mesh) and uploaded to a single vertex buffer; pan and zoom only change the
// transformation matrix handed to the shader, so they never re-upload.
package render

import (
	"fmt"
	"time"

	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/mesh"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/scene"
)

type Renderer struct {
	w, h int
	view geom.Affine // canvas to screen

	shaderManager *ShaderManager
	buffer        *vertexBuffer
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
	Vertices          int     // vertices uploaded by the last Prepare()
	GPUBytes          int64   // vertex buffer allocation
}

// NewRenderer compiles the shaders and allocates the vertex buffer. A GL
// context must be current.
func NewRenderer() (*Renderer, error) {
	sm, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		view:          geom.MakeAffine(1, 0, 0, 0, 1, 0),
		shaderManager: sm,
		buffer:        newVertexBuffer(),
	}, nil
}

// SetView sets the framebuffer size and the canvas to screen transform.
func (r *Renderer) SetView(w, h int, view geom.Affine) {
	r.w, r.h = w, h
	r.view = view
}

// Prepare triangulates the scene and its points and uploads the result.
// layout maps scene coordinates onto the canvas.
func (r *Renderer) Prepare(sc scene.Scene, points []geom.Point, layout geom.Affine, scheme palette.Scheme, style mesh.Style) error {
	startTime := time.Now()

	b, err := mesh.Build(sc, points, layout, scheme, style)
	if err != nil {
		return fmt.Errorf("cannot prepare renderer: %w", err)
	}
	r.buffer.upload(b.Vertices())

	r.stats.Vertices = b.VertexCount()
	r.stats.GPUBytes = r.buffer.bytes()
	r.stats.LastPrepareTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	return nil
}

// Draw renders the last prepared geometry.
func (r *Renderer) Draw() {
	startTime := time.Now()

	if r.w > 0 && r.h > 0 {
		r.shaderManager.SetTransform(r.computeTransformMatrix())
		r.buffer.draw()
	}

	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Release frees the GPU resources.
func (r *Renderer) Release() {
	r.buffer.release()
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// computeTransformMatrix computes the complete transformation matrix from
// canvas coordinates to OpenGL NDC.
func (r *Renderer) computeTransformMatrix() [16]float32 {
	transform := r.applyScreenToNDCTransform(r.view)
	return affineToMatrix4(transform)
}

// applyScreenToNDCTransform converts screen coordinates to OpenGL NDC.
func (r *Renderer) applyScreenToNDCTransform(baseTransform geom.Affine) geom.Affine {
	screenToNDC := geom.MakeAffine(
		2.0/float64(r.w), 0, -1,
		0, -2.0/float64(r.h), 1,
	)
	return screenToNDC.Mul(baseTransform)
}

// affineToMatrix4 converts an affine transform to OpenGL 4x4 matrix format.
func affineToMatrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.D), 0, 0,
		float32(transform.B), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
