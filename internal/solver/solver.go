// Package solver runs the three pairwise scan phases over a scene and reports
// the number of distinct intersection points.
//
// Phases run strictly in order (lines × lines, circles × circles,
// lines × circles), all feeding one caller-owned accumulator. After every
// row of a phase the accumulator is compacted if it has grown past the
// configured bound; if it is still over the bound the run is aborted with
// ErrTooManyPoints.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/irfansharif/intersect/internal/config"
	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/intersect"
	"github.com/irfansharif/intersect/internal/pointset"
	"github.com/irfansharif/intersect/internal/scene"
)

var solverLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("INTERSECT_DEBUG_SOLVER") == "1" {
		solverLogger = log.New(os.Stdout, "[solver] ", log.Ltime|log.Lmsgprefix)
	}
}

// ErrTooManyPoints is returned when the distinct points found so far exceed
// the configured bound even after compaction.
var ErrTooManyPoints = errors.New("too many points")

// Phase identifies one of the three scan phases.
type Phase int

const (
	PhaseLines Phase = iota
	PhaseCircles
	PhaseLinesCircles
)

func (p Phase) String() string {
	switch p {
	case PhaseLines:
		return "lines"
	case PhaseCircles:
		return "circles"
	case PhaseLinesCircles:
		return "lines-circles"
	default:
		return "unknown"
	}
}

// PhaseStats describes the work done in one phase.
type PhaseStats struct {
	Rows        int
	Pairs       int64
	PointsFound int64
	Compactions int
	DurationMs  float64
}

// Stats aggregates per-phase statistics of a run.
type Stats struct {
	Phases [3]PhaseStats
	Count  int
}

// Solver computes intersection counts. A Solver is not safe for concurrent
// use; each Solve call runs to completion before returning.
type Solver struct {
	cfg   config.Config
	stats Stats
}

func New(cfg config.Config) *Solver {
	return &Solver{cfg: cfg}
}

// Stats returns the statistics of the most recent Solve.
func (s *Solver) Stats() Stats { return s.stats }

// Solve feeds every intersection of sc into set and returns the distinct
// count after a final compaction. The set is left compacted, so its points
// can be read afterwards.
func (s *Solver) Solve(ctx context.Context, sc scene.Scene, set *pointset.Set) (int, error) {
	if err := s.cfg.Validate(); err != nil {
		return 0, fmt.Errorf("invalid config: %w", err)
	}
	s.stats = Stats{}

	lines, circles := sc.Lines, sc.Circles
	eps := s.cfg.Epsilon

	phases := []struct {
		phase Phase
		rows  int
		row   func(i int, emit func(...geom.Point)) int
	}{
		{PhaseLines, max(len(lines)-1, 0), func(i int, emit func(...geom.Point)) int {
			for j := i + 1; j < len(lines); j++ {
				if p, ok := intersect.LineLine(lines[i], lines[j]); ok {
					emit(p)
				}
			}
			return len(lines) - i - 1
		}},
		{PhaseCircles, max(len(circles)-1, 0), func(i int, emit func(...geom.Point)) int {
			for j := i + 1; j < len(circles); j++ {
				emit(intersect.CircleCircle(circles[i], circles[j], eps)...)
			}
			return len(circles) - i - 1
		}},
		{PhaseLinesCircles, len(lines), func(i int, emit func(...geom.Point)) int {
			for j := range circles {
				emit(intersect.LineCircle(lines[i], circles[j], eps)...)
			}
			return len(circles)
		}},
	}

	for _, p := range phases {
		if err := s.scan(ctx, p.phase, p.rows, p.row, set); err != nil {
			return 0, err
		}
	}

	set.Compact()
	s.stats.Count = set.Distinct()
	solverLogger.Printf("%d distinct points from %d lines and %d circles", s.stats.Count, len(lines), len(circles))
	return s.stats.Count, nil
}

// scan runs one phase. Each row emits into a row-local buffer which is then
// merged into the shared set, followed by the bound check.
func (s *Solver) scan(
	ctx context.Context,
	phase Phase,
	rows int,
	row func(i int, emit func(...geom.Point)) int,
	set *pointset.Set,
) error {
	start := time.Now()
	stats := &s.stats.Phases[phase]
	stats.Rows = rows

	var mu sync.Mutex // guards set and stats
	merge := func(buf []geom.Point, pairs int) error {
		mu.Lock()
		defer mu.Unlock()

		set.Add(buf...)
		stats.Pairs += int64(pairs)
		stats.PointsFound += int64(len(buf))
		if set.Len() > s.cfg.MaxPoints {
			set.Compact()
			stats.Compactions++
		}
		if n := set.Len(); n > s.cfg.MaxPoints {
			return fmt.Errorf("%w: %d distinct points exceed the bound of %d during the %s phase",
				ErrTooManyPoints, n, s.cfg.MaxPoints, phase)
		}
		return nil
	}

	runRow := func(i int, buf []geom.Point) ([]geom.Point, error) {
		buf = buf[:0]
		pairs := row(i, func(points ...geom.Point) { buf = append(buf, points...) })
		return buf, merge(buf, pairs)
	}

	var err error
	if s.cfg.Workers <= 1 {
		var buf []geom.Point
		for i := 0; i < rows; i++ {
			if err = ctx.Err(); err != nil {
				break
			}
			if buf, err = runRow(i, buf); err != nil {
				break
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Workers)
		for i := 0; i < rows; i++ {
			if gctx.Err() != nil {
				break // a row failed; stop scheduling
			}
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				_, err := runRow(i, nil)
				return err
			})
		}
		err = g.Wait()
		if err == nil {
			err = ctx.Err()
		}
	}

	stats.DurationMs = float64(time.Since(start).Microseconds()) / 1000.0
	solverLogger.Printf("[%s] %d rows, %d pairs, %d points emitted, %d compactions, %.2fms (working set %d)",
		phase, stats.Rows, stats.Pairs, stats.PointsFound, stats.Compactions, stats.DurationMs, set.Len())
	return err
}
