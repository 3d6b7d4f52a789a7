package export

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/Faultbox/mapmesh/pkg/terrain"
)

// RenderPreview draws a top-down biome-colored view of a build result:
// filled cell polygons over an ocean background, with river centerlines
// stroked on top. width is the image width in pixels; height follows the
// map's aspect ratio.
func RenderPreview(res *terrain.Result, width int) image.Image {
	hm := res.Heightmap

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range hm.Vertices {
		minX = math.Min(minX, v.X())
		maxX = math.Max(maxX, v.X())
		minY = math.Min(minY, v.Y())
		maxY = math.Max(maxY, v.Y())
	}
	if width < 1 {
		width = 1
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX <= 0 || spanY <= 0 {
		spanX, spanY = 1, 1
	}
	scale := float64(width) / spanX
	height := int(math.Ceil(spanY * scale))
	if height < 1 {
		height = 1
	}

	// Mesh Y grows upward, image Y grows downward.
	px := func(x, y float64) (float64, float64) {
		return (x - minX) * scale, (maxY - y) * scale
	}

	dc := gg.NewContext(width, height)

	ocean := res.Ocean.Colors[0]
	dc.SetRGB(ocean.R, ocean.G, ocean.B)
	dc.Clear()

	for _, face := range hm.Faces {
		first := hm.Vertices[face[0]]
		dc.MoveTo(px(first.X(), first.Y()))
		for _, id := range face[1:] {
			v := hm.Vertices[id]
			dc.LineTo(px(v.X(), v.Y()))
		}
		dc.ClosePath()

		c := hm.Colors[face[0]]
		dc.SetRGB(c.R, c.G, c.B)
		dc.Fill()
	}

	dc.SetColor(colornames.Steelblue)
	for _, river := range res.Rivers {
		points := res.RiverPoints(river)
		dc.MoveTo(px(points[0].X(), points[0].Y()))
		for _, p := range points[1:] {
			dc.LineTo(px(p.X(), p.Y()))
		}
		dc.SetLineWidth(math.Max(1, river.Width*scale/10))
		dc.Stroke()
	}

	return dc.Image()
}

// WritePreview renders a preview and saves it as a PNG.
func WritePreview(path string, res *terrain.Result, width int) error {
	return gg.SavePNG(path, RenderPreview(res, width))
}
