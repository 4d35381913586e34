// Package scene reads the textual description of lines and circles and writes
// the final count.
//
// The input is a sequence of whitespace-separated tokens: a record count N
// followed by N records, each either
//
//	L x1 y1 x2 y2   a line through (x1, y1) and (x2, y2)
//	C x y r         a circle centred at (x, y) with radius r
//
// with integer fields of magnitude at most MaxCoordinate.
package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/irfansharif/intersect/internal/geom"
)

// ErrInvalidInput is returned, wrapped with the offending record, for any
// malformed input.
var ErrInvalidInput = errors.New("invalid input")

// MaxCoordinate bounds the magnitude of every coordinate and radius. Within it
// line directions, cross terms and line-line denominators are exact in int64.
const MaxCoordinate = 500_000_000

// Scene holds the primitives of a single run, in input order.
type Scene struct {
	Lines   []geom.Line
	Circles []geom.Circle
}

// Size returns the number of primitives.
func (sc Scene) Size() int { return len(sc.Lines) + len(sc.Circles) }

// Bounds returns the box containing every circle and every line's defining
// points. It returns false for an empty scene.
func (sc Scene) Bounds() (geom.Box, bool) {
	var b geom.Box
	first := true
	add := func(o geom.Box) {
		if first {
			b, first = o, false
			return
		}
		b = b.Union(o)
	}
	for _, l := range sc.Lines {
		add(geom.MakeBox(float64(l.X1), float64(l.Y1), 0, 0))
		add(geom.MakeBox(float64(l.X2), float64(l.Y2), 0, 0))
	}
	for _, c := range sc.Circles {
		add(c.Bounds())
	}
	return b, !first
}

type tokenizer struct {
	scanner *bufio.Scanner
	record  int
}

func (t *tokenizer) next(what string) (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: record %d: %v", ErrInvalidInput, t.record, err)
		}
		return "", fmt.Errorf("%w: record %d: unexpected end of input, want %s", ErrInvalidInput, t.record, what)
	}
	return t.scanner.Text(), nil
}

func (t *tokenizer) int(what string) (int64, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: record %d: malformed %s %q", ErrInvalidInput, t.record, what, tok)
	}
	return v, nil
}

func (t *tokenizer) coord(what string) (int64, error) {
	v, err := t.int(what)
	if err != nil {
		return 0, err
	}
	if v < -MaxCoordinate || v > MaxCoordinate {
		return 0, fmt.Errorf("%w: record %d: %s %d out of range [-%d, %d]",
			ErrInvalidInput, t.record, what, v, MaxCoordinate, MaxCoordinate)
	}
	return v, nil
}

func (t *tokenizer) ints(names ...string) ([]int64, error) {
	vs := make([]int64, len(names))
	for i, name := range names {
		v, err := t.coord(name)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// Parse reads a scene. Tokens after the last declared record are ignored.
func Parse(r io.Reader) (Scene, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	t := &tokenizer{scanner: scanner}

	n, err := t.int("record count")
	if err != nil {
		return Scene{}, err
	}
	if n < 0 {
		return Scene{}, fmt.Errorf("%w: negative record count %d", ErrInvalidInput, n)
	}

	var sc Scene
	for t.record = 1; t.record <= int(n); t.record++ {
		tag, err := t.next("record tag")
		if err != nil {
			return Scene{}, err
		}

		switch tag {
		case "L":
			v, err := t.ints("x1", "y1", "x2", "y2")
			if err != nil {
				return Scene{}, err
			}
			sc.Lines = append(sc.Lines, geom.NewLine(v[0], v[1], v[2], v[3]))
		case "C":
			v, err := t.ints("x", "y", "r")
			if err != nil {
				return Scene{}, err
			}
			if v[2] < 0 {
				return Scene{}, fmt.Errorf("%w: record %d: negative radius %d", ErrInvalidInput, t.record, v[2])
			}
			sc.Circles = append(sc.Circles, geom.NewCircle(v[0], v[1], v[2]))
		default:
			return Scene{}, fmt.Errorf("%w: record %d: unknown tag %q", ErrInvalidInput, t.record, tag)
		}
	}
	return sc, nil
}

// WriteCount writes the distinct-point count followed by a newline.
func WriteCount(w io.Writer, n int) error {
	_, err := fmt.Fprintln(w, n)
	return err
}
