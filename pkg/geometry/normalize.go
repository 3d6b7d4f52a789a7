package geometry

import "github.com/go-gl/mathgl/mgl64"

// Normalizer recenters grid coordinates on the origin, flips the row axis
// to a right-handed Y-up convention, and scales elevation uniformly.
type Normalizer struct {
	GridW  int
	GridH  int
	ZScale float64
}

// Apply transforms every vertex the same way:
//
//	x' = x - (w-1)/2
//	y' = -y + (h-1)/2
//	z' = elevation * ZScale
func (n Normalizer) Apply(coords []Point, elevations []float64) []mgl64.Vec3 {
	cx := (float64(n.GridW) - 1) / 2
	cy := (float64(n.GridH) - 1) / 2

	out := make([]mgl64.Vec3, len(coords))
	for i, p := range coords {
		out[i] = mgl64.Vec3{p.X - cx, -p.Y + cy, elevations[i] * n.ZScale}
	}
	return out
}

// OceanCorners returns the four canvas corners of the sea plane, wound
// counter-clockwise, at a fixed elevation of seaLevel * ZScale.
func (n Normalizer) OceanCorners(seaLevel float64) [4]mgl64.Vec3 {
	w := float64(n.GridW)
	h := float64(n.GridH)
	z := seaLevel * n.ZScale

	return [4]mgl64.Vec3{
		{-w / 2, -h / 2, z},
		{w / 2, -h / 2, z},
		{w / 2, h / 2, z},
		{-w / 2, h / 2, z},
	}
}
