// mapmesh is a CLI utility that converts Azgaar Fantasy Map Generator JSON
// exports into terrain geometry (Wavefront OBJ meshes, river polylines,
// and PNG map previews).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/mapmesh/internal/config"
	"github.com/Faultbox/mapmesh/internal/export"
	"github.com/Faultbox/mapmesh/internal/logger"
	"github.com/Faultbox/mapmesh/pkg/azgaar"
	"github.com/Faultbox/mapmesh/pkg/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "convert":
		cmdConvert(args)
	case "preview":
		cmdPreview(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mapmesh - Azgaar fantasy map to terrain mesh converter

Usage:
  mapmesh <command> [options]

Commands:
  info <map.json>                         Show map information
  convert <map.json> [-o dir] [options]   Convert to OBJ meshes and rivers
  preview <map.json> [-o file.png]        Render a top-down PNG preview
  config init [path]                      Write the default config file

Convert options:
  -o dir          Output directory
  -zscale f       Elevation multiplier
  -sealevel f     Ocean plane height (0-100)
  -centroids      Insert cell-center vertices
  -preview        Also render a PNG preview

Examples:
  mapmesh info mymap.json
  mapmesh convert mymap.json -o ./out -zscale 0.1 -sealevel 10
  mapmesh preview mymap.json -o mymap.png -size 2048`)
}

// loadDocument reads and parses a map export, exiting on failure.
func loadDocument(path string) *azgaar.Document {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	doc, err := azgaar.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return doc
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mapmesh info <map.json>")
		os.Exit(1)
	}

	doc := loadDocument(args[0])

	w, h := doc.GridDims()
	mode := "lattice"
	if doc.HasCellGeometry() {
		mode = "polygon"
	}

	fmt.Printf("Map:      %s\n", doc.Info.MapName)
	if cw, ch := doc.CanvasDims(); cw > 0 && ch > 0 {
		fmt.Printf("Canvas:   %gx%g px\n", cw, ch)
	}
	fmt.Printf("Grid:     %dx%d (%s mode)\n", w, h, mode)
	fmt.Printf("Cells:    %d grid / %d pack\n", len(doc.Grid.Cells), len(doc.Pack.Cells))
	fmt.Printf("Features: %d\n", doc.FeatureCount())
	fmt.Printf("Rivers:   %d\n", len(doc.Pack.Rivers))
	fmt.Printf("Biomes:   %d\n", len(doc.Biomes.Color))
}

func cmdConvert(args []string) {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	out := fs.String("o", cfg.Output.Dir, "output directory")
	zscale := fs.Float64("zscale", cfg.Convert.ZScale, "elevation multiplier")
	seaLevel := fs.Float64("sealevel", cfg.Convert.SeaLevel, "ocean plane height (0-100)")
	centroids := fs.Bool("centroids", cfg.Convert.InsertCentroids, "insert cell-center vertices")
	preview := fs.Bool("preview", cfg.Output.Preview, "also render a PNG preview")

	input, rest := splitInput(args, "Usage: mapmesh convert <map.json> [options]")
	if err := fs.Parse(rest); err != nil {
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	doc := loadDocument(input)

	res, err := terrain.Build(doc, terrain.Options{
		ZScale:          *zscale,
		SeaLevel:        *seaLevel,
		InsertCentroids: *centroids,
	})
	if err != nil {
		logger.Log.Fatal("conversion failed", zap.Error(err))
	}

	writer := export.NewOBJWriter(*out)
	if err := terrain.Emit(res, writer, writer); err != nil {
		logger.Log.Fatal("emitting geometry failed", zap.Error(err))
	}
	paths, err := writer.Flush()
	if err != nil {
		logger.Log.Fatal("writing geometry failed", zap.Error(err))
	}

	if *preview {
		path := filepath.Join(*out, "preview.png")
		if err := export.WritePreview(path, res, cfg.Output.PreviewSize); err != nil {
			logger.Log.Fatal("writing preview failed", zap.Error(err))
		}
		paths = append(paths, path)
	}

	logger.Sugar.Infow("conversion finished",
		"map", res.Name,
		"vertices", len(res.Heightmap.Vertices),
		"polygons", len(res.Heightmap.Faces),
		"rivers", len(res.Rivers),
		"dropped_cells", res.Summary.DroppedCells,
		"dropped_rivers", res.Summary.DroppedRivers,
		"invalid_colors", res.Summary.InvalidColors,
		"files", paths,
	)
}

func cmdPreview(args []string) {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	out := fs.String("o", "preview.png", "output PNG path")
	size := fs.Int("size", cfg.Output.PreviewSize, "preview width in pixels")

	input, rest := splitInput(args, "Usage: mapmesh preview <map.json> [options]")
	if err := fs.Parse(rest); err != nil {
		os.Exit(1)
	}

	doc := loadDocument(input)

	res, err := terrain.Build(doc, terrain.Options{
		ZScale:   cfg.Convert.ZScale,
		SeaLevel: cfg.Convert.SeaLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := export.WritePreview(*out, res, *size); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func cmdConfig(args []string) {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintln(os.Stderr, "Usage: mapmesh config init [path]")
		os.Exit(1)
	}

	path := "./mapmesh.yaml"
	if len(args) > 1 {
		path = args[1]
	}

	if err := config.Default().SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// splitInput pulls the positional input file out of args so flags may
// appear after it.
func splitInput(args []string, usage string) (string, []string) {
	if len(args) < 1 || len(args[0]) == 0 || args[0][0] == '-' {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	return args[0], args[1:]
}
