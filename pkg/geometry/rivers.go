package geometry

// ReducePath maps a river's fine pack-cell ids to coarse grid-cell ids and
// strips the redundancy that mapping introduces. Sentinel and out-of-range
// ids are dropped first; consecutive duplicates are then collapsed on the
// filtered sequence, keeping the first id of each run. The filter-then-
// collapse order matters: a sentinel sitting between two equal coarse ids
// must not keep both.
//
// The reduction is idempotent: a path with no sentinels and no
// consecutive repeats passes through unchanged.
func ReducePath(fine []int, fineToCoarse []int, sentinel int) []int {
	var path []int
	for _, id := range fine {
		if id == sentinel || id < 0 || id >= len(fineToCoarse) {
			continue
		}
		coarse := fineToCoarse[id]
		if len(path) > 0 && path[len(path)-1] == coarse {
			continue
		}
		path = append(path, coarse)
	}
	return path
}

// MinRiverCells is the smallest path that can still form a curve.
const MinRiverCells = 2
