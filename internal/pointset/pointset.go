// Package pointset accumulates intersection points and deduplicates them.
//
// Points are appended as they are produced and only deduplicated when the
// owner asks for it through Compact, which sorts the working slice and drops
// duplicates in place. Callers compact periodically to bound memory and once
// more before reading the final count from Distinct.
package pointset

import (
	"cmp"
	"io"
	"log"
	"math"
	"os"
	"slices"
	"time"

	"github.com/irfansharif/intersect/internal/geom"
)

var compactionLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("INTERSECT_DEBUG_COMPACTION") == "1" {
		compactionLogger = log.New(os.Stdout, "[compaction] ", log.Ltime|log.Lmsgprefix)
	}
}

// Equality decides whether two points, adjacent in sort order, are the same
// point.
type Equality interface {
	Equal(a, b geom.Point) bool
	String() string
}

type exact struct{}

func (exact) Equal(a, b geom.Point) bool { return a.X == b.X && a.Y == b.Y }
func (exact) String() string             { return "exact" }

// Exact merges points only if their coordinates compare equal. Points that
// are geometrically the same but were derived through different formulas can
// differ in their last bits and then stay distinct.
var Exact Equality = exact{}

type within float64

func (w within) Equal(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) <= float64(w) && math.Abs(a.Y-b.Y) <= float64(w)
}
func (w within) String() string { return "epsilon" }

// Within merges points whose coordinates both differ by at most tol. Only
// neighbours in (x, y) order are compared, so two close points separated in
// sort order by a third point with a far-off y stay distinct.
func Within(tol float64) Equality { return within(tol) }

// Compare orders points lexicographically by x, then y.
func Compare(a, b geom.Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Stats tracks compaction activity.
type Stats struct {
	PointsAdded          int64
	CompactionEvents     int
	PointsDropped        int64
	LastCompactionTimeUs float64
}

// Set is a growing sequence of points with explicit compaction. It is not
// safe for concurrent use.
type Set struct {
	points   []geom.Point
	equal    Equality
	stats    Stats
	distinct int // length right after the last Compact
}

// Option configures a Set.
type Option func(*Set)

// WithEquality sets the strategy used to merge adjacent points. Defaults to
// Exact.
func WithEquality(eq Equality) Option {
	return func(s *Set) { s.equal = eq }
}

// WithCapacity preallocates room for n points.
func WithCapacity(n int) Option {
	return func(s *Set) { s.points = make([]geom.Point, 0, n) }
}

func New(opts ...Option) *Set {
	s := &Set{equal: Exact}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends points to the working sequence. It never compacts.
func (s *Set) Add(points ...geom.Point) {
	s.points = append(s.points, points...)
	s.stats.PointsAdded += int64(len(points))
}

// Len returns the length of the working sequence, duplicates added since the
// last Compact included. Bound checks use it.
func (s *Set) Len() int { return len(s.points) }

// Distinct returns the distinct-point count as of the most recent Compact;
// points added since are not reflected. It is zero before the first Compact.
func (s *Set) Distinct() int { return s.distinct }

// Points returns the working sequence. The slice is owned by the set and is
// only valid until the next Add or Compact.
func (s *Set) Points() []geom.Point { return s.points }

// Equality returns the merge strategy in use.
func (s *Set) Equality() Equality { return s.equal }

// Stats returns compaction counters.
func (s *Set) Stats() Stats { return s.stats }

// Compact sorts the working sequence by (x, y) and removes duplicates in
// place. Each point is compared against the last point kept, so the result is
// strictly increasing and compacting again changes nothing.
func (s *Set) Compact() {
	start := time.Now()
	before := len(s.points)

	slices.SortFunc(s.points, Compare)
	kept := 0
	for i := range s.points {
		if kept > 0 && s.equal.Equal(s.points[kept-1], s.points[i]) {
			continue
		}
		s.points[kept] = s.points[i]
		kept++
	}
	s.points = s.points[:kept]
	s.distinct = kept

	dropped := before - kept
	s.stats.CompactionEvents++
	s.stats.PointsDropped += int64(dropped)
	s.stats.LastCompactionTimeUs = float64(time.Since(start).Nanoseconds()) / 1000.0

	compactionLogger.Printf("compacted %d -> %d points (%d dropped, %s equality) in %.2fµs",
		before, kept, dropped, s.equal, s.stats.LastCompactionTimeUs)
}
