package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/intersect/internal/app"
	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/render"
)

const repeatInterval = 125 * time.Millisecond // time between successive pans when pressed down
const basePanDistance = 100.0
const zoomStep = 0.15 // zoom factor change per scroll unit

// EventHandlers manages all event handling for the application.
type EventHandlers struct {
	window      *glfw.Window
	application *app.App
	renderer    *render.Renderer

	// J/K/H/L allow panning across through keypresses. They also do so
	// continuously if held.
	panKeyHeld                   bool
	panDirectionX, panDirectionY float64
	lastPanTime                  time.Time

	// Drag/pan state (per-gesture), captured on mouse press.
	isDragging                       bool
	dragStartMouseX, dragStartMouseY float64
	dragStartPanX, dragStartPanY     float64

	// Current mouse position in scene coordinates.
	mouseScene geom.Point
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(window *glfw.Window, application *app.App, renderer *render.Renderer) *EventHandlers {
	eh := &EventHandlers{
		window:      window,
		application: application,
		renderer:    renderer,
		lastPanTime: time.Now(),
	}
	eh.SetupCallbacks(window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(key, action, mods) // for various actions
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // for panning
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos) // for tracking where the mouse currently is (used by R)
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.performZoom(zoomDelta) // for zooming
	})
	window.SetFramebufferSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.handleFramebufferSize(newW, newH) // for window resize
	})
}

// updateRendererView updates the renderer with the current view state.
func (eh *EventHandlers) updateRendererView() {
	view := eh.application.View
	eh.renderer.SetView(view.Width, view.Height, view.Transform())
}

// handleFramebufferSize handles window resize events.
func (eh *EventHandlers) handleFramebufferSize(newW, newH int) {
	eh.application.View.SetViewport(newW, newH)
	eh.updateRendererView()
}

// handleKey handles keyboard input events.
func (eh *EventHandlers) handleKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		if action == glfw.Press {
			eh.window.SetShouldClose(true)
		}
	case glfw.KeyR:
		if action == glfw.Press {
			eh.handleResetKey(mods&glfw.ModShift != 0)
		}
	case glfw.KeyTab:
		if action == glfw.Press {
			next := true
			if (mods & glfw.ModShift) != 0 {
				next = false
			}
			eh.handlePointNavigation(next)
		}
	case glfw.KeyJ:
		eh.handlePanKeys(action, 0 /*dx*/, -1 /*dy*/) // pan down
	case glfw.KeyK:
		eh.handlePanKeys(action, 0 /*dx*/, 1 /*dy*/) // pan up
	case glfw.KeyH:
		eh.handlePanKeys(action, 1 /*dx*/, 0 /*dy*/) // pan right
	case glfw.KeyL:
		eh.handlePanKeys(action, -1 /*dx*/, 0 /*dy*/) // pan left
	case glfw.KeyEqual:
		if action == glfw.Press && (mods&glfw.ModSuper) != 0 {
			eh.performZoom(1) // zoom in
		}
	case glfw.KeyMinus:
		if action == glfw.Press && (mods&glfw.ModSuper) != 0 {
			eh.performZoom(-1) // zoom out
		}
	}
}

// handlePanKeys handles j/k/h/l key presses, and also releases for
// continuous panning.
func (eh *EventHandlers) handlePanKeys(action glfw.Action, dx, dy float64) {
	switch action {
	case glfw.Press:
		eh.panKeyHeld = true
		eh.panDirectionX = dx
		eh.panDirectionY = dy
		eh.performPan(dx, dy)
		eh.lastPanTime = time.Now()

	case glfw.Release:
		eh.panKeyHeld = false

	case glfw.Repeat:
		// Ignore repeat events - we handle continuous panning ourselves to
		// ensure consistent timing.
	}
}

// performPan executes a single pan operation.
func (eh *EventHandlers) performPan(dx, dy float64) {
	eh.application.View.Pan(dx, dy, basePanDistance)
	eh.updateRendererView()

	mouseX, mouseY := eh.window.GetCursorPos()
	eh.updateMouseScenePos(mouseX, mouseY)
}

// handleResetKey handles R key presses. R resets zoom and pan to the whole
// scene; Shift+R centers the intersection point closest to the mouse and
// selects it for subsequent tabs/shift+tabs.
func (eh *EventHandlers) handleResetKey(closest bool) {
	a := eh.application
	if !closest {
		a.ResetView()
	} else if i, ok := a.Cursor.Nearest(eh.mouseScene); ok {
		a.Cursor.Select(i)
		p, _, _ := a.Cursor.Current()
		a.Focus(p)
	}

	eh.updateRendererView()
	mouseX, mouseY := eh.window.GetCursorPos()
	eh.updateMouseScenePos(mouseX, mouseY)
}

// handleContinuousPanning handles continuous panning while pan keys are held.
func (eh *EventHandlers) handleContinuousPanning() {
	if !eh.panKeyHeld {
		return // nothing to do
	}

	now := time.Now()
	if now.Sub(eh.lastPanTime) < repeatInterval {
		return // not enough time has passed since the last pan
	}

	eh.performPan(eh.panDirectionX, eh.panDirectionY)
	eh.lastPanTime = now
}

// handleMouseButton handles mouse button events for panning.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	switch action {
	case glfw.Press:
		eh.startPanning()
	case glfw.Release:
		eh.stopPanning()
	}
}

// framebufferPos converts a window cursor position to framebuffer pixels.
func (eh *EventHandlers) framebufferPos(mouseX, mouseY float64) geom.Point {
	scaleX, scaleY := eh.window.GetContentScale()
	return geom.MakePoint(mouseX*float64(scaleX), mouseY*float64(scaleY))
}

// updateMouseScenePos recalculates the mouse position in scene coordinates
// after view changes.
func (eh *EventHandlers) updateMouseScenePos(mouseX, mouseY float64) {
	eh.mouseScene = eh.application.ScreenToScene(eh.framebufferPos(mouseX, mouseY))
}

// handleCursorPos handles mouse movement for panning.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	eh.updateMouseScenePos(xpos, ypos)
	eh.updatePanning(xpos, ypos)
}

// startPanning starts the panning operation.
func (eh *EventHandlers) startPanning() {
	eh.isDragging = true
	eh.dragStartMouseX, eh.dragStartMouseY = eh.window.GetCursorPos()
	view := eh.application.View
	eh.dragStartPanX, eh.dragStartPanY = view.PanX, view.PanY
}

// stopPanning ends panning operation.
func (eh *EventHandlers) stopPanning() {
	eh.isDragging = false
}

// updatePanning updates pan position based on mouse movement.
func (eh *EventHandlers) updatePanning(xpos, ypos float64) {
	if !eh.isDragging {
		return
	}

	scaleX, scaleY := eh.window.GetContentScale()
	dx := (xpos - eh.dragStartMouseX) * float64(scaleX)
	dy := (ypos - eh.dragStartMouseY) * float64(scaleY)

	eh.application.View.SetPan(eh.dragStartPanX+dx, eh.dragStartPanY+dy)
	eh.updateRendererView() // direct update for maximum smoothness
}

// performZoom handles zoom operations with cursor-centered zooming.
func (eh *EventHandlers) performZoom(zoomDelta float64) {
	cursor := eh.framebufferPos(eh.window.GetCursorPos())
	eh.application.View.ZoomAt(cursor, 1.0+zoomDelta*zoomStep)
	eh.updateRendererView() // direct update for maximum smoothness
}

// handlePointNavigation handles tab and shift+tab key presses, centering the
// next or previous intersection point.
func (eh *EventHandlers) handlePointNavigation(next bool) {
	p, ok := eh.application.Cursor.Iter(next)
	if !ok {
		return // nothing to do
	}

	eh.application.Focus(p)
	eh.updateRendererView()

	// After tabbing, treat the mouse as being on the selected point so that
	// Shift+R keeps it selected.
	eh.mouseScene = p
}
