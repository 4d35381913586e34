package solver

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/intersect/internal/config"
	"github.com/irfansharif/intersect/internal/geom"
	"github.com/irfansharif/intersect/internal/intersect"
	"github.com/irfansharif/intersect/internal/pointset"
	"github.com/irfansharif/intersect/internal/scene"
)

func parse(t *testing.T, input string) scene.Scene {
	t.Helper()
	sc, err := scene.Parse(strings.NewReader(input))
	require.NoError(t, err)
	return sc
}

func solve(t *testing.T, cfg config.Config, sc scene.Scene) (int, *pointset.Set) {
	t.Helper()
	set := pointset.New(pointset.WithEquality(cfg.PointEquality()))
	n, err := New(cfg).Solve(context.Background(), sc, set)
	require.NoError(t, err)
	return n, set
}

func TestSolveCrossFamily(t *testing.T) {
	sc := parse(t, "3\nL 0 0 2 2\nL 0 2 2 0\nC 1 1 1\n")

	// Build the expected set by running every formula directly.
	eps := config.DefaultEpsilon
	expected := pointset.New()
	p, ok := intersect.LineLine(sc.Lines[0], sc.Lines[1])
	require.True(t, ok)
	expected.Add(p)
	for _, l := range sc.Lines {
		expected.Add(intersect.LineCircle(l, sc.Circles[0], eps)...)
	}
	expected.Compact()

	n, set := solve(t, config.Default(), sc)
	assert.Equal(t, expected.Len(), n)
	assert.Equal(t, expected.Points(), set.Points())

	// The lines cross at the circle's center, which is not on the circle, and
	// each diagonal is a secant: one crossing plus four boundary points.
	assert.Equal(t, 5, n)
}

func TestSolveMergesAcrossFamilies(t *testing.T) {
	// Both lines meet at the origin, which also lies on the circle: the
	// horizontal line is a secant through it and the vertical one is tangent
	// there. All three derivations agree bit for bit.
	sc := parse(t, "3\nL 0 0 2 0\nL 0 0 0 2\nC 1 0 1\n")
	n, set := solve(t, config.Default(), sc)
	assert.Equal(t, 2, n)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}, set.Points())
}

func TestSolveEmptyAndDegenerate(t *testing.T) {
	n, _ := solve(t, config.Default(), scene.Scene{})
	assert.Zero(t, n)

	sc := parse(t, "4\nL 0 0 1 0\nL 0 1 1 1\nC 0 0 3\nC 0 0 3\n")
	n, _ = solve(t, config.Default(), sc)
	// Parallel lines and identical circles contribute nothing; each line cuts
	// the circle twice.
	assert.Equal(t, 4, n)
}

func TestSolveTooManyPoints(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 2

	sc := parse(t, "3\nL 0 0 1 0\nL 0 0 0 1\nL 0 1 1 0\n")
	set := pointset.New()
	_, err := New(cfg).Solve(context.Background(), sc, set)
	require.ErrorIs(t, err, ErrTooManyPoints)
	assert.Contains(t, err.Error(), "during the lines phase")
}

func TestSolveTooManyPointsInLaterPhase(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 3

	// One line-line point and two circle-circle points fit; the horizontal
	// line then cuts both circles twice.
	sc := parse(t, "4\nL 0 0 1 0\nL 0 0 0 1\nC 5 0 2\nC 8 0 2\n")
	_, err := New(cfg).Solve(context.Background(), sc, pointset.New())
	require.ErrorIs(t, err, ErrTooManyPoints)
	assert.Contains(t, err.Error(), "during the lines-circles phase")
}

func TestSolveCompactionKeepsRunWithinBound(t *testing.T) {
	cfg := config.Default()
	cfg.MaxPoints = 1

	// Concurrent lines: every pair meets at the origin.
	sc := parse(t, "4\nL 0 0 1 1\nL 0 0 1 2\nL 0 0 1 3\nL 0 0 2 1\n")
	s := New(cfg)
	set := pointset.New()
	n, err := s.Solve(context.Background(), sc, set)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats := s.Stats().Phases[PhaseLines]
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, int64(6), stats.Pairs)
	assert.Equal(t, int64(6), stats.PointsFound)
	assert.Equal(t, 3, stats.Compactions)
}

func randomScene(r *rand.Rand, lines, circles int) scene.Scene {
	coord := func() int64 { return int64(r.Intn(41) - 20) }
	var sc scene.Scene
	for i := 0; i < lines; i++ {
		sc.Lines = append(sc.Lines, geom.NewLine(coord(), coord(), coord(), coord()))
	}
	for i := 0; i < circles; i++ {
		sc.Circles = append(sc.Circles, geom.NewCircle(coord(), coord(), int64(r.Intn(10)+1)))
	}
	return sc
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	sc := randomScene(rand.New(rand.NewSource(1)), 40, 25)

	sequential, seqSet := solve(t, config.Default(), sc)

	cfg := config.Default()
	cfg.Workers = 4
	parallel, parSet := solve(t, cfg, sc)

	assert.Equal(t, sequential, parallel)
	assert.Equal(t, seqSet.Points(), parSet.Points())
}

func TestSolveParallelTooManyPoints(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 3
	cfg.MaxPoints = 10

	sc := randomScene(rand.New(rand.NewSource(2)), 30, 0)
	_, err := New(cfg).Solve(context.Background(), sc, pointset.New())
	assert.ErrorIs(t, err, ErrTooManyPoints)
}

func TestSolveEpsilonNeverCountsMore(t *testing.T) {
	sc := randomScene(rand.New(rand.NewSource(3)), 25, 25)
	exact, _ := solve(t, config.Default(), sc)

	cfg := config.Default()
	cfg.Equality = config.EqualityEpsilon
	loose, _ := solve(t, cfg, sc)
	assert.LessOrEqual(t, loose, exact)
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc := randomScene(rand.New(rand.NewSource(4)), 10, 10)
	_, err := New(config.Default()).Solve(ctx, sc, pointset.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 0
	_, err := New(cfg).Solve(context.Background(), scene.Scene{}, pointset.New())
	assert.ErrorContains(t, err, "invalid config")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "lines", PhaseLines.String())
	assert.Equal(t, "circles", PhaseCircles.String())
	assert.Equal(t, "lines-circles", PhaseLinesCircles.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
