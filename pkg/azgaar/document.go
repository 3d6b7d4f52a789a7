// Package azgaar parses "full" JSON exports from the Azgaar Fantasy Map
// Generator into typed in-memory documents.
package azgaar

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned when a required field of the export is
// absent, has the wrong type, or is internally inconsistent. Document
// structure errors are fatal: no partial result is produced from them.
var ErrMalformedDocument = errors.New("malformed map document")

// Info holds map-level metadata.
type Info struct {
	MapName string  `json:"mapName"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// GridCell is one cell of the coarse height/biome grid.
type GridCell struct {
	Height  float64 `json:"h"`
	Feature int     `json:"f"`
	// Vertices holds corner references into Grid.Vertices. Older exports
	// omit it, in which case the grid is a regular lattice addressed by
	// cell index alone.
	Vertices []int `json:"v"`
}

// GridVertex is one entry of the shared-vertex list.
type GridVertex struct {
	P [2]float64 `json:"p"`
}

// Grid is the coarse cell grid of the export.
type Grid struct {
	CellsX   int          `json:"cellsX"`
	CellsY   int          `json:"cellsY"`
	Cells    []GridCell   `json:"cells"`
	Vertices []GridVertex `json:"vertices"`
}

// PackCell is one cell of the fine "pack" graph. G back-references the
// coarse grid cell the pack cell belongs to.
type PackCell struct {
	G     int `json:"g"`
	Biome int `json:"biome"`
}

// River is one river of the pack, described as an ordered list of pack
// cell ids. A -1 entry means "no cell".
type River struct {
	Cells       []int   `json:"cells"`
	Width       float64 `json:"width"`
	WidthFactor float64 `json:"widthFactor"`
	SourceWidth float64 `json:"sourceWidth"`
}

// Pack holds the fine-grained cell graph and the features derived from it.
type Pack struct {
	Cells  []PackCell `json:"cells"`
	Rivers []River    `json:"rivers"`
}

// BiomesData holds the biome palette. Color is indexed by biome id.
type BiomesData struct {
	Color []string `json:"color"`
}

// Document is the subset of an Azgaar full JSON export needed to build
// terrain geometry.
type Document struct {
	Info   Info       `json:"info"`
	Grid   Grid       `json:"grid"`
	Pack   Pack       `json:"pack"`
	Biomes BiomesData `json:"biomesData"`
}

// RiverSentinel marks "no cell" in a river's path list.
const RiverSentinel = -1

// Parse decodes and validates a full JSON export.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the structural invariants the geometry pipeline relies
// on. Returns ErrMalformedDocument (wrapped with detail) on the first
// violation.
func (d *Document) Validate() error {
	w, h := d.Grid.CellsX, d.Grid.CellsY
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: grid dimensions %dx%d", ErrMalformedDocument, w, h)
	}
	if len(d.Grid.Cells) == 0 {
		return fmt.Errorf("%w: grid has no cells", ErrMalformedDocument)
	}
	if !d.HasCellGeometry() && len(d.Grid.Cells) != w*h {
		return fmt.Errorf("%w: lattice grid %dx%d with %d cells",
			ErrMalformedDocument, w, h, len(d.Grid.Cells))
	}

	if d.HasCellGeometry() {
		for i, c := range d.Grid.Cells {
			if len(c.Vertices) == 0 {
				return fmt.Errorf("%w: grid cell %d has no corner references",
					ErrMalformedDocument, i)
			}
			for _, v := range c.Vertices {
				if v < 0 || v >= len(d.Grid.Vertices) {
					return fmt.Errorf("%w: grid cell %d references vertex %d of %d",
						ErrMalformedDocument, i, v, len(d.Grid.Vertices))
				}
			}
		}
	}

	for i, c := range d.Pack.Cells {
		if c.G < 0 || c.G >= len(d.Grid.Cells) {
			return fmt.Errorf("%w: pack cell %d references grid cell %d of %d",
				ErrMalformedDocument, i, c.G, len(d.Grid.Cells))
		}
	}

	return nil
}

// GridDims returns the grid dimensions in cells.
func (d *Document) GridDims() (w, h int) {
	return d.Grid.CellsX, d.Grid.CellsY
}

// CanvasDims returns the source canvas size in pixels, zero when the
// export carries no canvas metadata.
func (d *Document) CanvasDims() (w, h float64) {
	return d.Info.Width, d.Info.Height
}

// FeatureCount returns the number of distinct feature ids on the grid.
func (d *Document) FeatureCount() int {
	seen := make(map[int]struct{}, len(d.Grid.Cells))
	for _, c := range d.Grid.Cells {
		seen[c.Feature] = struct{}{}
	}
	return len(seen)
}

// HasCellGeometry reports whether the export carries explicit cell corner
// geometry (shared-vertex encoding) rather than a bare lattice.
func (d *Document) HasCellGeometry() bool {
	return len(d.Grid.Vertices) > 0 && len(d.Grid.Cells) > 0 && len(d.Grid.Cells[0].Vertices) > 0
}

// BiomeByGridCell returns the biome id per grid cell: zero by default,
// overlaid from pack cells through their grid back-reference.
func (d *Document) BiomeByGridCell() []int {
	biomes := make([]int, len(d.Grid.Cells))
	for _, c := range d.Pack.Cells {
		biomes[c.G] = c.Biome
	}
	return biomes
}

// CellToGrid returns the pack-to-grid mapping table: entry i is the grid
// cell id of pack cell i.
func (d *Document) CellToGrid() []int {
	table := make([]int, len(d.Pack.Cells))
	for i, c := range d.Pack.Cells {
		table[i] = c.G
	}
	return table
}
