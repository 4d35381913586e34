// Command viewer solves a scene and shows it in a window, with every distinct
// intersection point marked.
//
//	viewer -i input.txt [-config engine.toml]
//
// Drag or use H/J/K/L to pan, scroll (or Cmd +/-) to zoom, Tab/Shift+Tab to
// step through the intersection points, R to reset and Esc or Q to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/intersect/internal/app"
	"github.com/irfansharif/intersect/internal/config"
	"github.com/irfansharif/intersect/internal/mesh"
	"github.com/irfansharif/intersect/internal/palette"
	"github.com/irfansharif/intersect/internal/render"
	"github.com/irfansharif/intersect/internal/solver"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("INTERSECT_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func makeTitle(fps float64, avgFrameTime float64, application *app.App, renderStats render.Stats) string {
	return fmt.Sprintf("Intersect (%s; %.1f FPS, %.2fms/frame, %d triangles, %.2fms/prepare)",
		application.Summary(),
		fps,
		avgFrameTime,
		renderStats.Vertices/3,
		renderStats.LastPrepareTimeMs,
	)
}

func main() {
	input := flag.String("i", "", "input `file` with the line and circle records")
	configPath := flag.String("config", "", "engine configuration `file` (.toml, .yaml or .yml)")
	flag.Parse()
	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: viewer -i input.txt")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	scheme, err := palette.FromSeed(os.Getenv("INTERSECT_SEED"))
	if err != nil {
		log.Fatalf("Invalid INTERSECT_SEED value: %v", err)
	}

	solveStart := time.Now()
	application, err := app.Load(context.Background(), *input, cfg, scheme)
	if err != nil {
		log.Fatalf("Failed to solve scene: %v", err)
	}
	log.Printf("%d distinct intersection points (%s)", application.Count, time.Since(solveStart))

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(
		1280, // width
		960,  // height
		"Intersect",
		nil, nil,
	)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Release()

	cw, ch := window.GetFramebufferSize()
	if err := application.SetLayout(cw, ch); err != nil {
		log.Fatalf("Failed to lay out scene: %v", err)
	}
	if err := renderer.Prepare(application.Scene, application.Points, application.Layout, scheme, mesh.DefaultStyle()); err != nil {
		log.Fatalf("Failed to prepare renderer: %v", err)
	}

	// Initialize event handlers.
	eventHandlers := NewEventHandlers(window, application, renderer)
	eventHandlers.updateRendererView()

	bg := palette.Float32(scheme.Background)
	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !window.ShouldClose() {
		frameStart := time.Now()

		eventHandlers.handleContinuousPanning()

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)

		renderer.Draw()
		window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			renderStats := renderer.Stats()
			window.SetTitle(makeTitle(fps, avgFrameTime, application, renderStats))

			runtimeLogger.Println("=== Performance statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", fps, avgFrameTime)
			runtimeLogger.Printf("Shapes:         %d triangles, %d vertices", renderStats.Vertices/3, renderStats.Vertices)
			runtimeLogger.Printf("GPU memory:     %.2f MiB", float64(renderStats.GPUBytes)/(1024.0*1024.0))
			runtimeLogger.Printf("Render time:    %.2f µs (last draw), %.2f ms (last prepare)", renderStats.LastDrawTimeUs, renderStats.LastPrepareTimeMs)
			for i, ps := range application.Stats.Phases {
				runtimeLogger.Printf("Solve %-13s %d rows, %d pairs, %d points, %d compactions, %.2f ms",
					solver.Phase(i).String()+":", ps.Rows, ps.Pairs, ps.PointsFound, ps.Compactions, ps.DurationMs)
			}
			runtimeLogger.Println("==============================")
		}
	}
}
