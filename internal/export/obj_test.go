package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/mapmesh/pkg/azgaar"
	"github.com/Faultbox/mapmesh/pkg/geometry"
)

func TestOBJWriterMesh(t *testing.T) {
	dir := t.TempDir()
	w := NewOBJWriter(dir)

	vertices := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0.5}, {0, 1, 0.5}}
	faces := []geometry.Polygon{{0, 1, 2, 3}}

	h, err := w.BuildMesh("Heightmap", vertices, faces)
	if err != nil {
		t.Fatalf("BuildMesh failed: %v", err)
	}

	colors := []azgaar.RGBA{
		{R: 1, A: 1}, {G: 1, A: 1}, {B: 1, A: 1}, {R: 1, G: 1, B: 1, A: 1},
	}
	if err := w.ApplyVertexColors(h, colors, "Biomes"); err != nil {
		t.Fatalf("ApplyVertexColors failed: %v", err)
	}

	paths, err := w.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 file, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "heightmap.obj" {
		t.Errorf("expected heightmap.obj, got %s", paths[0])
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "o Heightmap\n") {
		t.Error("missing object name line")
	}
	// Colored vertices carry six components.
	if !strings.Contains(text, "v 0 0 0 1 0 0\n") {
		t.Errorf("missing colored vertex line, got:\n%s", text)
	}
	// Face indices are 1-based.
	if !strings.Contains(text, "f 1 2 3 4\n") {
		t.Errorf("missing face line, got:\n%s", text)
	}
}

func TestOBJWriterColorMismatch(t *testing.T) {
	w := NewOBJWriter(t.TempDir())

	h, err := w.BuildMesh("Ocean", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, nil)
	if err != nil {
		t.Fatalf("BuildMesh failed: %v", err)
	}

	err = w.ApplyVertexColors(h, []azgaar.RGBA{{R: 1}}, "Ocean")
	if !errors.Is(err, ErrColorCountMismatch) {
		t.Errorf("expected ErrColorCountMismatch, got %v", err)
	}

	if err := w.ApplyVertexColors("bogus", nil, "Ocean"); !errors.Is(err, ErrForeignHandle) {
		t.Errorf("expected ErrForeignHandle, got %v", err)
	}
}

func TestOBJWriterCurves(t *testing.T) {
	dir := t.TempDir()
	w := NewOBJWriter(dir)

	if _, err := w.BuildCurve("River 000", []mgl64.Vec3{{0, 0, 0}, {1, 1, 0}}, 2); err != nil {
		t.Fatalf("BuildCurve failed: %v", err)
	}
	if _, err := w.BuildCurve("River 001", []mgl64.Vec3{{2, 2, 0}, {3, 3, 0}, {4, 4, 0}}, 1); err != nil {
		t.Fatalf("BuildCurve failed: %v", err)
	}

	paths, err := w.Flush()
	if err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "rivers.obj" {
		t.Fatalf("expected rivers.obj, got %v", paths)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "l 1 2\n") {
		t.Errorf("first polyline wrong, got:\n%s", text)
	}
	// Second river's indices continue after the first river's vertices.
	if !strings.Contains(text, "l 3 4 5\n") {
		t.Errorf("second polyline offset wrong, got:\n%s", text)
	}
}

func TestFileSlug(t *testing.T) {
	cases := map[string]string{
		"Heightmap":  "heightmap",
		"River 000":  "river_000",
		"  Ocean  ":  "ocean",
		"":           "mesh",
		"Map (Test)": "map__test_",
	}
	for in, want := range cases {
		if got := fileSlug(in); got != want {
			t.Errorf("fileSlug(%q) = %q, want %q", in, got, want)
		}
	}
}
