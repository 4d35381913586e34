package mesh

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/intersect/internal/geom"
)

// earClip triangulates a polygon with optional holes using the earcut
// algorithm. It returns a slice of triangles, each represented as a
// [3]geom.Point.
func earClip(outer []geom.Point, holes ...[]geom.Point) ([][3]geom.Point, error) {
	if len(outer) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(outer))
	}

	// Flatten the outer ring followed by every hole into the coordinate array
	// required by earcut, recording where each hole starts (in vertices).
	// Format: [x0, y0, x1, y1, ..., xn, yn]
	total := len(outer)
	for _, hole := range holes {
		total += len(hole)
	}
	vertexCoords := make([]float64, 0, total*2)
	appendRing := func(ring []geom.Point) {
		for _, p := range ring {
			vertexCoords = append(vertexCoords, p.X, p.Y)
		}
	}

	appendRing(outer)
	var holeIndices []int
	for _, hole := range holes {
		if len(hole) < 3 {
			return nil, fmt.Errorf("degenerate hole (%d vertices < 3)", len(hole))
		}
		holeIndices = append(holeIndices, len(vertexCoords)/2)
		appendRing(hole)
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, holeIndices, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulation failed for %d-vertex polygon: %v", total, err)
	}
	if len(triangleIndices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(triangleIndices))
	}

	vertex := func(i int) geom.Point {
		return geom.Point{X: vertexCoords[i*2], Y: vertexCoords[i*2+1]}
	}
	triangles := make([][3]geom.Point, len(triangleIndices)/3)
	for t := range triangles {
		base := t * 3
		triangles[t] = [3]geom.Point{
			vertex(triangleIndices[base]),
			vertex(triangleIndices[base+1]),
			vertex(triangleIndices[base+2]),
		}
	}
	return triangles, nil
}
