// Package export materializes terrain build results into files: Wavefront
// OBJ geometry and PNG map previews.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapmesh/pkg/azgaar"
	"github.com/Faultbox/mapmesh/pkg/geometry"
	"github.com/Faultbox/mapmesh/pkg/terrain"
)

// OBJ writer errors.
var (
	ErrForeignHandle      = errors.New("mesh handle was not created by this writer")
	ErrColorCountMismatch = errors.New("color list not aligned with vertices")
)

// OBJWriter implements terrain.MeshSink and terrain.CurveSink by writing
// Wavefront OBJ files. Meshes and curves accumulate in memory until Flush,
// since vertex colors arrive after the mesh itself.
type OBJWriter struct {
	dir    string
	meshes []*objMesh
	curves []*objCurve
}

type objMesh struct {
	name     string
	vertices []mgl64.Vec3
	faces    []geometry.Polygon
	colors   []azgaar.RGBA
}

type objCurve struct {
	name   string
	points []mgl64.Vec3
}

// NewOBJWriter creates a writer that places one .obj file per mesh, plus a
// combined rivers.obj, under dir.
func NewOBJWriter(dir string) *OBJWriter {
	return &OBJWriter{dir: dir}
}

// BuildMesh registers a mesh for writing. The returned handle accepts
// vertex colors until Flush.
func (w *OBJWriter) BuildMesh(name string, vertices []mgl64.Vec3, faces []geometry.Polygon) (terrain.MeshHandle, error) {
	m := &objMesh{name: name, vertices: vertices, faces: faces}
	w.meshes = append(w.meshes, m)
	return m, nil
}

// ApplyVertexColors attaches a per-vertex color list to a registered mesh.
// OBJ carries colors as extra components on "v" lines, so the layer name
// is recorded only as a comment.
func (w *OBJWriter) ApplyVertexColors(handle terrain.MeshHandle, colors []azgaar.RGBA, layerName string) error {
	m, ok := handle.(*objMesh)
	if !ok {
		return ErrForeignHandle
	}
	if len(colors) != len(m.vertices) {
		return fmt.Errorf("%w: %d colors for %d vertices", ErrColorCountMismatch, len(colors), len(m.vertices))
	}
	m.colors = colors
	return nil
}

// BuildCurve registers a river polyline for writing.
func (w *OBJWriter) BuildCurve(name string, points []mgl64.Vec3, width float64) (terrain.CurveHandle, error) {
	c := &objCurve{name: name, points: points}
	w.curves = append(w.curves, c)
	return c, nil
}

// Flush writes all registered geometry and returns the file paths written.
func (w *OBJWriter) Flush() ([]string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, m := range w.meshes {
		path := filepath.Join(w.dir, fileSlug(m.name)+".obj")
		if err := os.WriteFile(path, encodeMesh(m), 0644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	if len(w.curves) > 0 {
		path := filepath.Join(w.dir, "rivers.obj")
		if err := os.WriteFile(path, encodeCurves(w.curves), 0644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// encodeMesh renders one mesh as OBJ text. When colors are present, each
// vertex line carries the common "v x y z r g b" extension.
func encodeMesh(m *objMesh) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "o %s\n", m.name)

	for i, v := range m.vertices {
		if m.colors != nil {
			c := m.colors[i]
			fmt.Fprintf(&buf, "v %g %g %g %g %g %g\n", v.X(), v.Y(), v.Z(), c.R, c.G, c.B)
		} else {
			fmt.Fprintf(&buf, "v %g %g %g\n", v.X(), v.Y(), v.Z())
		}
	}

	for _, face := range m.faces {
		buf.WriteString("f")
		for _, id := range face {
			fmt.Fprintf(&buf, " %d", id+1)
		}
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// encodeCurves renders all rivers into one OBJ, one object per river with
// an "l" polyline element. Vertex indices are global across the file.
func encodeCurves(curves []*objCurve) []byte {
	var buf bytes.Buffer
	offset := 1
	for _, c := range curves {
		fmt.Fprintf(&buf, "o %s\n", c.name)
		for _, p := range c.points {
			fmt.Fprintf(&buf, "v %g %g %g\n", p.X(), p.Y(), p.Z())
		}
		buf.WriteString("l")
		for i := range c.points {
			fmt.Fprintf(&buf, " %d", offset+i)
		}
		buf.WriteByte('\n')
		offset += len(c.points)
	}
	return buf.Bytes()
}

// fileSlug turns an object name into a safe lowercase file stem.
func fileSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	if slug == "" {
		slug = "mesh"
	}
	return slug
}
