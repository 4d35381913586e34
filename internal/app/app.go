// Package app holds the viewer's state: a solved scene, where it sits on the
// canvas, and the interactive view and point cursor layered over it. It has
// no windowing or GL dependencies; cmd/viewer wires it to both.
package app

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/irfansharif/intersect/internal/config"
	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/pointset"
	"github.com/irfansharif/intersect/internal/scene"
	"github.com/irfansharif/intersect/internal/solver"
)

const viewportScaleFactor = 0.7 // share of the viewport the scene fills at zoom 1

// App encapsulates the main application state.
type App struct {
	Scene  scene.Scene
	Points []geom.Point // distinct intersection points, sorted
	Count  int
	Stats  solver.Stats
	Scheme palette.Scheme

	View   *View
	Cursor *Cursor
	Layout geom.Affine // scene to canvas
}

// Load parses the scene at path and solves it.
func Load(ctx context.Context, path string, cfg config.Config, scheme palette.Scheme) (*App, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := scene.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(ctx, sc, cfg, scheme)
}

// New solves sc and returns an application with a zero-sized view; call
// SetLayout once the framebuffer size is known.
func New(ctx context.Context, sc scene.Scene, cfg config.Config, scheme palette.Scheme) (*App, error) {
	set := pointset.New(pointset.WithEquality(cfg.PointEquality()))
	s := solver.New(cfg)
	count, err := s.Solve(ctx, sc, set)
	if err != nil {
		return nil, err
	}
	return &App{
		Scene:  sc,
		Points: set.Points(),
		Count:  count,
		Stats:  s.Stats(),
		Scheme: scheme,
		View:   NewView(0, 0),
		Cursor: NewCursor(set.Points()),
		Layout: geom.MakeAffine(1, 0, 0, 0, 1, 0),
	}, nil
}

// SetLayout places the scene in the middle of a w×h canvas and resets the
// view onto it.
func (app *App) SetLayout(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid viewport dimensions %dx%d", w, h)
	}

	bounds, ok := app.Scene.Bounds()
	if !ok {
		bounds = geom.MakeBox(-1, -1, 2, 2)
	}
	bounds = bounds.Expand(math.Max(0.1*math.Max(bounds.W, bounds.H), 1))

	fw, fh := float64(w), float64(h)
	margin := (1 - viewportScaleFactor) / 2
	dst := geom.MakeBox(margin*fw, margin*fh, viewportScaleFactor*fw, viewportScaleFactor*fh)
	layout, err := geom.FitBox(bounds, dst)
	if err != nil {
		return err
	}

	app.Layout = layout
	app.View = NewView(w, h)
	return nil
}

// ResetView resets zoom and pan so that the scene is centered again.
func (app *App) ResetView() {
	app.View.ResetTo(geom.MakePoint(float64(app.View.Width)/2, float64(app.View.Height)/2))
	app.Cursor.Select(-1)
}

// Focus centers the view on the given scene point at zoom 1.
func (app *App) Focus(p geom.Point) {
	app.View.ResetTo(app.Layout.MulPoint(p))
}

// SceneToScreen maps a scene point to screen pixels under the current view.
func (app *App) SceneToScreen(p geom.Point) geom.Point {
	return app.View.Transform().MulPoint(app.Layout.MulPoint(p))
}

// ScreenToScene maps screen pixels back to scene coordinates.
func (app *App) ScreenToScene(p geom.Point) geom.Point {
	inv, err := app.Layout.Inv()
	if err != nil {
		return p
	}
	return inv.MulPoint(app.View.ScreenToCanvas(p))
}

// Summary describes the scene for the window title.
func (app *App) Summary() string {
	s := fmt.Sprintf("%d distinct points, %d lines, %d circles",
		app.Count, len(app.Scene.Lines), len(app.Scene.Circles))
	if p, i, ok := app.Cursor.Current(); ok {
		s += fmt.Sprintf(", point %d/%d at %s", i+1, app.Cursor.Len(), p)
	}
	return s
}
