package geometry

// FaceSet is the polygon list produced from per-cell canonical id lists.
// Cells maps each polygon back to its source cell index; Dropped counts
// cells that collapsed below 3 vertices and were skipped.
type FaceSet struct {
	Polygons []Polygon
	Cells    []int
	Dropped  int
}

// AssembleFaces turns per-cell canonical id lists into polygons. Each
// cell's list is collapsed for immediately-consecutive duplicate ids
// (degenerate source corners can map two raw corners to one canonical
// point), treating the boundary as cyclic so a trailing id equal to the
// leading one is also dropped. Cells left with fewer than 3 ids are
// degenerate: they are dropped and counted, not fatal.
func AssembleFaces(cells [][]int) *FaceSet {
	fs := &FaceSet{}
	for c, ids := range cells {
		poly := collapseRuns(ids)
		if len(poly) < 3 {
			fs.Dropped++
			continue
		}
		fs.Polygons = append(fs.Polygons, poly)
		fs.Cells = append(fs.Cells, c)
	}
	return fs
}

// Centroid is an extra vertex inserted at a cell's reference position,
// carrying the cell's own raw height rather than the averaged border
// elevation. It pins the cell-center value exactly, independent of any
// subdivision applied downstream.
type Centroid struct {
	Pos       Point
	Elevation float64
	Cell      int
}

// Centroids computes one centroid per surviving polygon: the mean of the
// rim vertex positions, with elevation taken directly from the source
// cell's height.
func Centroids(fs *FaceSet, coords []Point, heights []float64) []Centroid {
	centroids := make([]Centroid, len(fs.Polygons))
	for i, poly := range fs.Polygons {
		var cx, cy float64
		for _, id := range poly {
			cx += coords[id].X
			cy += coords[id].Y
		}
		n := float64(len(poly))
		cell := fs.Cells[i]
		centroids[i] = Centroid{
			Pos:       Point{X: cx / n, Y: cy / n},
			Elevation: heights[cell],
			Cell:      cell,
		}
	}
	return centroids
}

// collapseRuns removes immediately-repeated ids, cyclically.
func collapseRuns(ids []int) Polygon {
	if len(ids) == 0 {
		return nil
	}
	poly := Polygon{ids[0]}
	for _, id := range ids[1:] {
		if id != poly[len(poly)-1] {
			poly = append(poly, id)
		}
	}
	for len(poly) > 1 && poly[len(poly)-1] == poly[0] {
		poly = poly[:len(poly)-1]
	}
	return poly
}
