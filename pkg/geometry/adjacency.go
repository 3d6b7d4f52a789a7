package geometry

import "fmt"

// BuildElevations derives per-vertex elevation as the arithmetic mean of
// the heights of the cells incident to each canonical vertex. A cell that
// lists the same vertex more than once still counts once. Cell centers
// keep one crisp height each; shared border vertices blend their
// neighbors so adjoining cells meet at a consistent elevation.
//
// cells holds canonical vertex ids per cell, aligned with heights. The
// returned slice is aligned by id with the canonical coordinate list.
func BuildElevations(vertexCount int, cells [][]int, heights []float64) ([]float64, error) {
	sums := make([]float64, vertexCount)
	counts := make([]int, vertexCount)

	// lastCell[id] marks the most recent cell that contributed to id, so
	// repeated references within one cell are counted once.
	lastCell := make([]int, vertexCount)
	for i := range lastCell {
		lastCell[i] = -1
	}

	for c, ids := range cells {
		h := heights[c]
		for _, id := range ids {
			if lastCell[id] == c {
				continue
			}
			lastCell[id] = c
			sums[id] += h
			counts[id]++
		}
	}

	elevations := make([]float64, vertexCount)
	for id := range elevations {
		if counts[id] == 0 {
			return nil, fmt.Errorf("%w: id %d", ErrOrphanVertex, id)
		}
		elevations[id] = sums[id] / float64(counts[id])
	}

	return elevations, nil
}
