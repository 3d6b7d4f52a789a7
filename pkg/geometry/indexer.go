package geometry

import "fmt"

// Index is the canonical vertex table for one conversion: deduplicated
// coordinates in first-encounter order, and per-cell lists of canonical
// vertex ids. Cell lists are not collapsed for consecutive repeats; that
// is face assembly's job.
type Index struct {
	Coords []Point
	Cells  [][]int
}

// IndexCorners deduplicates per-corner coordinates, where each cell stores
// its own copies of its corner positions. Two corners with equal
// coordinates always map to the same canonical id.
func IndexCorners(cells [][]Point) *Index {
	idx := &Index{Cells: make([][]int, len(cells))}
	seen := make(map[Point]int)

	for i, corners := range cells {
		ids := make([]int, len(corners))
		for j, p := range corners {
			id, ok := seen[p]
			if !ok {
				id = len(idx.Coords)
				seen[p] = id
				idx.Coords = append(idx.Coords, p)
			}
			ids[j] = id
		}
		idx.Cells[i] = ids
	}

	return idx
}

// IndexShared deduplicates a shared-vertex encoding: one vertex list plus
// per-cell corner references into it. The vertex list itself may contain
// coordinate duplicates, which merge to a single canonical vertex.
func IndexShared(vertices []Point, cellRefs [][]int) (*Index, error) {
	idx := &Index{Cells: make([][]int, len(cellRefs))}
	seen := make(map[Point]int)

	// Canonical id per shared-list entry, assigned in first-encounter
	// order over the cells so that unreferenced entries get no id.
	canon := make([]int, len(vertices))
	for i := range canon {
		canon[i] = -1
	}

	for i, refs := range cellRefs {
		ids := make([]int, len(refs))
		for j, ref := range refs {
			if ref < 0 || ref >= len(vertices) {
				return nil, fmt.Errorf("%w: cell %d corner %d of %d vertices",
					ErrCornerOutOfRange, i, ref, len(vertices))
			}
			id := canon[ref]
			if id == -1 {
				p := vertices[ref]
				var ok bool
				id, ok = seen[p]
				if !ok {
					id = len(idx.Coords)
					seen[p] = id
					idx.Coords = append(idx.Coords, p)
				}
				canon[ref] = id
			}
			ids[j] = id
		}
		idx.Cells[i] = ids
	}

	return idx, nil
}
