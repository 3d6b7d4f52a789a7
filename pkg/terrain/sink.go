package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapmesh/pkg/azgaar"
	"github.com/Faultbox/mapmesh/pkg/geometry"
)

// MeshHandle is an opaque reference to a mesh materialized by a sink.
type MeshHandle any

// CurveHandle is an opaque reference to a curve materialized by a sink.
type CurveHandle any

// MeshSink materializes vertex and face lists into a host-specific mesh
// object. It is the only boundary where mesh data leaves this package.
type MeshSink interface {
	BuildMesh(name string, vertices []mgl64.Vec3, faces []geometry.Polygon) (MeshHandle, error)
	ApplyVertexColors(handle MeshHandle, colors []azgaar.RGBA, layerName string) error
}

// CurveSink materializes an ordered point list into a host-specific curve
// object. Width is a hint for the curve's bevel or stroke.
type CurveSink interface {
	BuildCurve(name string, points []mgl64.Vec3, width float64) (CurveHandle, error)
}

// Emit pushes a build result into the given sinks: ocean plane first, then
// the heightmap, then one curve per river (matching the original importer's
// object creation order).
func Emit(res *Result, meshes MeshSink, curves CurveSink) error {
	ocean, err := meshes.BuildMesh(res.Ocean.Name, res.Ocean.Vertices, res.Ocean.Faces)
	if err != nil {
		return fmt.Errorf("building ocean mesh: %w", err)
	}
	if err := meshes.ApplyVertexColors(ocean, res.Ocean.Colors, "Ocean"); err != nil {
		return fmt.Errorf("coloring ocean mesh: %w", err)
	}

	heightmap, err := meshes.BuildMesh(res.Heightmap.Name, res.Heightmap.Vertices, res.Heightmap.Faces)
	if err != nil {
		return fmt.Errorf("building heightmap mesh: %w", err)
	}
	if err := meshes.ApplyVertexColors(heightmap, res.Heightmap.Colors, "Biomes"); err != nil {
		return fmt.Errorf("coloring heightmap mesh: %w", err)
	}

	for i, river := range res.Rivers {
		name := fmt.Sprintf("River %03d", i)
		if _, err := curves.BuildCurve(name, res.RiverPoints(river), river.Width); err != nil {
			return fmt.Errorf("building %s: %w", name, err)
		}
	}

	return nil
}
