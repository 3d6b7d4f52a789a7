// Package terrain converts parsed Azgaar map documents into terrain
// geometry: a heightmap mesh, an ocean plane, and river paths.
package terrain

import (
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/mapmesh/pkg/azgaar"
	"github.com/Faultbox/mapmesh/pkg/geometry"
)

// Options controls the conversion. Zero values mean "flat mesh at sea
// level zero"; use DefaultOptions for the importer's usual settings.
type Options struct {
	// ZScale multiplies every elevation value.
	ZScale float64
	// SeaLevel is the ocean plane height in Azgaar height units (0-100).
	SeaLevel float64
	// InsertCentroids appends one extra vertex per cell at the cell's
	// center, carrying the cell's own raw height. Only meaningful for
	// exports with explicit cell geometry.
	InsertCentroids bool
}

// DefaultOptions mirrors the defaults of the original importer.
func DefaultOptions() Options {
	return Options{ZScale: 0.1, SeaLevel: 10}
}

// Summary counts the per-element defects tolerated during a conversion.
// These never abort the build; callers surface them to the user.
type Summary struct {
	DroppedCells  int
	DroppedRivers int
	InvalidColors int
}

// Result is the complete output of one conversion. It is a plain value
// with no reference to the source document.
type Result struct {
	Name      string
	Heightmap *geometry.MeshModel
	Ocean     *geometry.MeshModel
	Rivers    []geometry.RiverPath

	// CellAnchors holds one reference position per grid cell, in final
	// mesh coordinates with z fixed to 0. River paths are projected to
	// coordinates through it; draping onto the surface is the host's job.
	CellAnchors []mgl64.Vec3

	Summary Summary
}

// RiverPoints resolves a river path to coordinates via the cell anchors.
func (r *Result) RiverPoints(path geometry.RiverPath) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(path.Cells))
	for i, cell := range path.Cells {
		points[i] = r.CellAnchors[cell]
	}
	return points
}

// Build runs the full conversion pipeline over a validated document.
// Document-structure errors abort with no partial result; per-element
// defects (bad colors, degenerate cells and rivers) are dropped and
// counted in the summary.
func Build(doc *azgaar.Document, opts Options) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	w, h := doc.GridDims()
	norm := geometry.Normalizer{GridW: w, GridH: h, ZScale: opts.ZScale}

	res := &Result{Name: doc.Info.MapName}

	palette, invalid := azgaar.DecodePalette(doc.Biomes.Color)
	res.Summary.InvalidColors = invalid
	biomes := doc.BiomeByGridCell()

	heights := make([]float64, len(doc.Grid.Cells))
	for i, c := range doc.Grid.Cells {
		heights[i] = c.Height
	}

	var err error
	if doc.HasCellGeometry() {
		err = buildPolygonHeightmap(doc, norm, heights, biomes, palette, opts, res)
	} else {
		err = buildLatticeHeightmap(norm, heights, biomes, palette, res)
	}
	if err != nil {
		return nil, err
	}

	res.Ocean = buildOcean(norm, opts.SeaLevel, palette)

	if err := buildRivers(doc, res); err != nil {
		return nil, err
	}

	return res, nil
}

// buildLatticeHeightmap reproduces the classic export layout: one vertex
// per grid cell at the cell's lattice position carrying the cell's own
// height, with quad faces knitting neighboring cell centers together.
func buildLatticeHeightmap(norm geometry.Normalizer, heights []float64, biomes []int, palette []azgaar.RGBA, res *Result) error {
	w, h := norm.GridW, norm.GridH

	coords := make([]geometry.Point, len(heights))
	colors := make([]azgaar.RGBA, len(heights))
	for i := range heights {
		coords[i] = geometry.Point{X: float64(i % w), Y: float64(i / w)}
		colors[i] = paletteColor(palette, biomes[i])
	}

	faces := make([]geometry.Polygon, 0, (w-1)*(h-1))
	for yi := 0; yi < h-1; yi++ {
		for xi := 0; xi < w-1; xi++ {
			faces = append(faces, geometry.Polygon{
				w*(yi+1) + xi,
				w*(yi+1) + xi + 1,
				w*yi + xi + 1,
				w*yi + xi,
			})
		}
	}

	vertices := norm.Apply(coords, heights)
	res.Heightmap = &geometry.MeshModel{
		Name:     "Heightmap",
		Vertices: vertices,
		Faces:    faces,
		Colors:   colors,
	}

	// Lattice vertices double as the per-cell river anchors.
	res.CellAnchors = flatten(vertices)
	return nil
}

// buildPolygonHeightmap handles exports with explicit cell corner
// geometry: corners are deduplicated into canonical vertices, border
// elevations are blended from the incident cells, and each cell becomes
// one polygon face.
func buildPolygonHeightmap(doc *azgaar.Document, norm geometry.Normalizer, heights []float64, biomes []int, palette []azgaar.RGBA, opts Options, res *Result) error {
	shared := make([]geometry.Point, len(doc.Grid.Vertices))
	for i, v := range doc.Grid.Vertices {
		shared[i] = geometry.Point{X: v.P[0], Y: v.P[1]}
	}
	refs := make([][]int, len(doc.Grid.Cells))
	for i, c := range doc.Grid.Cells {
		refs[i] = c.Vertices
	}

	idx, err := geometry.IndexShared(shared, refs)
	if err != nil {
		// Validate() checks corner references, so this is unreachable on
		// parsed documents; fail loudly for hand-built ones.
		return fmt.Errorf("%w: %v", azgaar.ErrMalformedDocument, err)
	}

	elevations, err := geometry.BuildElevations(len(idx.Coords), idx.Cells, heights)
	if err != nil {
		return err
	}

	fs := geometry.AssembleFaces(idx.Cells)
	res.Summary.DroppedCells = fs.Dropped

	// A border vertex takes the biome color of its first incident cell
	// in canonical order; deterministic and cheap. Centroids below carry
	// their own cell's biome exactly.
	colors := make([]azgaar.RGBA, len(idx.Coords))
	assigned := make([]bool, len(idx.Coords))
	for c, ids := range idx.Cells {
		for _, id := range ids {
			if !assigned[id] {
				assigned[id] = true
				colors[id] = paletteColor(palette, biomes[c])
			}
		}
	}

	coords := idx.Coords
	if opts.InsertCentroids {
		for _, cent := range geometry.Centroids(fs, idx.Coords, heights) {
			coords = append(coords, cent.Pos)
			elevations = append(elevations, cent.Elevation)
			colors = append(colors, paletteColor(palette, biomes[cent.Cell]))
		}
	}

	res.Heightmap = &geometry.MeshModel{
		Name:     "Heightmap",
		Vertices: norm.Apply(coords, elevations),
		Faces:    fs.Polygons,
		Colors:   colors,
	}

	res.CellAnchors = cellAnchors(norm, idx)
	return nil
}

// cellAnchors computes one reference position per grid cell (the mean of
// its corner coordinates) in final mesh space with z = 0.
func cellAnchors(norm geometry.Normalizer, idx *geometry.Index) []mgl64.Vec3 {
	centers := make([]geometry.Point, len(idx.Cells))
	for c, ids := range idx.Cells {
		var cx, cy float64
		for _, id := range ids {
			cx += idx.Coords[id].X
			cy += idx.Coords[id].Y
		}
		n := float64(len(ids))
		centers[c] = geometry.Point{X: cx / n, Y: cy / n}
	}
	return norm.Apply(centers, make([]float64, len(centers)))
}

// buildOcean creates the sea plane: four canvas corners, one quad, all
// vertices colored with the marine biome (id 0).
func buildOcean(norm geometry.Normalizer, seaLevel float64, palette []azgaar.RGBA) *geometry.MeshModel {
	corners := norm.OceanCorners(seaLevel)
	marine := paletteColor(palette, 0)

	return &geometry.MeshModel{
		Name:     "Ocean",
		Vertices: corners[:],
		Faces:    []geometry.Polygon{{0, 1, 2, 3}},
		Colors:   []azgaar.RGBA{marine, marine, marine, marine},
	}
}

// buildRivers reduces every river path independently. Rivers are fanned
// out across cores into preallocated slots so output order never depends
// on scheduling.
func buildRivers(doc *azgaar.Document, res *Result) error {
	cellToGrid := doc.CellToGrid()
	slots := make([][]int, len(doc.Pack.Rivers))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, river := range doc.Pack.Rivers {
		i, river := i, river
		g.Go(func() error {
			slots[i] = geometry.ReducePath(river.Cells, cellToGrid, azgaar.RiverSentinel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, cells := range slots {
		if len(cells) < geometry.MinRiverCells {
			res.Summary.DroppedRivers++
			continue
		}
		river := doc.Pack.Rivers[i]
		res.Rivers = append(res.Rivers, geometry.RiverPath{
			Cells:       cells,
			Width:       river.Width,
			WidthFactor: river.WidthFactor,
			SourceWidth: river.SourceWidth,
		})
	}

	return nil
}

// paletteColor looks up a biome color, falling back to the default for
// biome ids outside the palette.
func paletteColor(palette []azgaar.RGBA, biome int) azgaar.RGBA {
	if biome < 0 || biome >= len(palette) {
		return azgaar.DefaultColor
	}
	return palette[biome]
}

// flatten projects vertices onto the z = 0 plane.
func flatten(vertices []mgl64.Vec3) []mgl64.Vec3 {
	flat := make([]mgl64.Vec3, len(vertices))
	for i, v := range vertices {
		flat[i] = mgl64.Vec3{v.X(), v.Y(), 0}
	}
	return flat
}
