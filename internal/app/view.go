package app

import (
	"github.com/irfansharif/intersect/internal/geom"
)

const (
	minZoom = 0.05
	maxZoom = 500.0
)

// View manages the current view state including zoom, pan, and viewport.
// Canvas coordinates are framebuffer pixels at zoom 1 with no pan.
type View struct {
	Zoom          float64
	PanX, PanY    float64
	Width, Height int
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetPan sets the pan position to the given coordinates.
func (vs *View) SetPan(x, y float64) {
	vs.PanX = x
	vs.PanY = y
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// ResetTo resets zoom to 1.0 and pans to center the given canvas point in the
// viewport.
func (vs *View) ResetTo(pos geom.Point) {
	vs.Zoom = 1.0
	vs.PanX = float64(vs.Width)/2.0 - pos.X
	vs.PanY = float64(vs.Height)/2.0 - pos.Y
}

// Pan moves the view by (dx, dy) screen pixels scaled by the inverse zoom, so
// a pan step covers the same canvas distance at every zoom level.
func (vs *View) Pan(dx, dy, distance float64) {
	scaled := distance / vs.Zoom
	vs.SetPan(vs.PanX+dx*scaled, vs.PanY+dy*scaled)
}

// ZoomAt multiplies the zoom by factor while keeping the canvas point under
// the cursor (in screen pixels) fixed.
func (vs *View) ZoomAt(cursor geom.Point, factor float64) {
	center := geom.MakePoint(float64(vs.Width)/2, float64(vs.Height)/2)
	offset := cursor.Sub(center)

	// Canvas point (relative to center, before zoom) under the cursor.
	oldZoom := vs.Zoom
	canvasOffset := offset.Sub(geom.MakePoint(vs.PanX, vs.PanY)).Scale(1 / oldZoom)

	vs.SetZoom(oldZoom * factor)
	pan := offset.Sub(canvasOffset.Scale(vs.Zoom))
	vs.SetPan(pan.X, pan.Y)
}

// Transform maps canvas coordinates to screen coordinates: zoom about the
// viewport center followed by the pan translation.
func (vs *View) Transform() geom.Affine {
	transform := geom.MakeAffine(1, 0, 0, 0, 1, 0)
	transform = vs.applyZoomTransform(transform)
	return vs.applyPanTransform(transform)
}

// ScreenToCanvas maps a screen position back onto the canvas.
func (vs *View) ScreenToCanvas(p geom.Point) geom.Point {
	inv, err := vs.Transform().Inv()
	if err != nil {
		return p // zoom is clamped away from zero
	}
	return inv.MulPoint(p)
}

// applyZoomTransform applies zoom scaling around the viewport center.
func (vs *View) applyZoomTransform(baseTransform geom.Affine) geom.Affine {
	viewportCenterX := float64(vs.Width) / 2.0
	viewportCenterY := float64(vs.Height) / 2.0

	translateToOrigin := geom.MakeAffine(1, 0, -viewportCenterX, 0, 1, -viewportCenterY)
	uniformScale := geom.MakeAffine(vs.Zoom, 0, 0, 0, vs.Zoom, 0)
	translateBack := geom.MakeAffine(1, 0, viewportCenterX, 0, 1, viewportCenterY)

	return translateBack.Mul(uniformScale.Mul(translateToOrigin.Mul(baseTransform)))
}

// applyPanTransform applies pan translation in screen space.
func (vs *View) applyPanTransform(baseTransform geom.Affine) geom.Affine {
	panTranslation := geom.MakeAffine(1, 0, vs.PanX, 0, 1, vs.PanY)
	return panTranslation.Mul(baseTransform)
}
