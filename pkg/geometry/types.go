// Package geometry builds deduplicated terrain meshes and river paths from
// irregular cell grids.
package geometry

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapmesh/pkg/azgaar"
)

// Geometry errors.
var (
	// ErrOrphanVertex means a canonical vertex is referenced by no cell.
	// This is an internal invariant violation: ids derived from cell
	// references always have at least one incident cell.
	ErrOrphanVertex = errors.New("canonical vertex has no incident cell")

	// ErrCornerOutOfRange means a cell references a shared vertex outside
	// the vertex list.
	ErrCornerOutOfRange = errors.New("cell corner reference out of range")
)

// Point is a 2D grid coordinate. Dedup is by exact key equality on the
// stored float64 representation; there is no tolerance matching.
type Point struct {
	X, Y float64
}

// Polygon is one cell boundary as an ordered list of canonical vertex ids
// with no immediately-repeated ids. A valid polygon has at least 3 ids.
type Polygon []int

// MeshModel is a finished mesh: vertex coordinates with elevation, the
// polygon list, and an optional per-vertex color list aligned with the
// vertices. It carries no reference back to the raw input.
type MeshModel struct {
	Name     string
	Vertices []mgl64.Vec3
	Faces    []Polygon
	Colors   []azgaar.RGBA
}

// RiverPath is an ordered list of grid cell ids with sentinels removed and
// consecutive repeats collapsed, plus the river's width parameters.
type RiverPath struct {
	Cells       []int
	Width       float64
	WidthFactor float64
	SourceWidth float64
}
