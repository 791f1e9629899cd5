// meshsplit cuts OBJ meshes into connected parts with a bounded vertex count.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshsplit/internal/config"
	"github.com/Faultbox/meshsplit/internal/logger"
	"github.com/Faultbox/meshsplit/internal/preview"
	"github.com/Faultbox/meshsplit/internal/split"
	"github.com/Faultbox/meshsplit/pkg/formats"
	"github.com/Faultbox/meshsplit/pkg/mesh"
	"github.com/Faultbox/meshsplit/pkg/partition"
)

func main() {
	config.ParseFlags()
	command, args, err := parseCommand(config.Args())
	if err != nil {
		printUsage()
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	code := 0
	switch command {
	case "split":
		code = cmdSplit(cfg, args)
	case "info":
		code = cmdInfo(cfg, args)
	case "preview":
		code = cmdPreview(cfg, args)
	case "config":
		code = cmdConfig(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		code = 1
	}

	logger.Sync()
	os.Exit(code)
}

// parseCommand splits the command name off args and parses the flags that
// follow it.
func parseCommand(args []string) (string, []string, error) {
	if len(args) < 1 {
		return "", nil, errors.New("no command given")
	}
	fs := config.CommandFlags(args[0])
	if err := fs.Parse(args[1:]); err != nil {
		return "", nil, err
	}
	return args[0], fs.Args(), nil
}

func printUsage() {
	fmt.Println(`meshsplit - split meshes into connected parts under a vertex budget

Usage:
  meshsplit [flags] <command> [flags] [args]

Commands:
  split <in.obj>...            Split every object, write parts to the output dir
  info <in.obj>...             Show objects, connectivity and oversized faces
  preview <in.obj> [out.webp]  Render the objects of a file
  config [path]                Write the effective config as YAML

Flags:
  -config <path>   Config file (default ./meshsplit.yaml)
  -max-verts <n>   Vertex budget per part
  -out <dir>       Output directory
  -preview         Write a WebP preview next to each split
  -plane <p>       Preview plane: xy, xz or yz
  -debug           Debug logging

Examples:
  meshsplit split -max-verts 256 terrain.obj
  meshsplit -out parts -preview split scene.obj
  meshsplit info scene.obj`)
}

func cmdSplit(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshsplit split <in.obj>...")
		return 1
	}

	code := 0
	for _, path := range args {
		report, err := splitFile(cfg, path)
		if err != nil {
			logger.Error("split failed", zap.String("file", path), zap.Error(err))
			code = 1
			continue
		}
		fmt.Printf("%s:\n", path)
		report.WriteSummary(os.Stdout)
	}
	return code
}

// splitFile splits every object in one OBJ file and writes the resulting
// scene, report and preview under cfg.Output.Dir.
func splitFile(cfg *config.Config, path string) (*split.Report, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	scene := mesh.NewScene()
	for _, o := range obj.Objects() {
		if err := scene.LinkToScene(o); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	opts := split.Options{
		NameFormat:       cfg.Split.NameFormat,
		CopyVertexColors: cfg.Split.CopyVertexColors,
	}
	splitter := split.New(scene, opts, logger.Named("split"))
	_, report := splitter.SplitSelected(obj.Objects(), cfg.Split.MaxVerts)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outBase := filepath.Join(cfg.Output.Dir, base)

	var wopts formats.WriteOptions
	if len(obj.MaterialLibs) > 0 {
		wopts.MaterialLib = obj.MaterialLibs[0]
	}
	if err := formats.WriteOBJFile(outBase+".obj", scene.Objects(), wopts); err != nil {
		return report, fmt.Errorf("writing %s.obj: %w", outBase, err)
	}
	logger.Info("wrote parts", zap.String("file", outBase+".obj"), zap.Int("objects", scene.Len()))

	if cfg.Output.Report {
		if err := report.WriteYAML(outBase + ".report.yaml"); err != nil {
			return report, fmt.Errorf("writing report: %w", err)
		}
	}

	if cfg.Preview.Enabled {
		if err := renderTo(cfg, scene.Objects(), outBase+".webp"); err != nil {
			return report, err
		}
	}
	return report, nil
}

func renderTo(cfg *config.Config, objects []*mesh.Object, path string) error {
	opts := preview.DefaultOptions()
	opts.Size = cfg.Preview.Size
	opts.Plane = cfg.Preview.Plane

	img, err := preview.Render(objects, opts)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	if err := preview.WriteWebP(path, img); err != nil {
		return fmt.Errorf("writing preview: %w", err)
	}
	logger.Debug("wrote preview", zap.String("file", path))
	return nil
}

func cmdInfo(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshsplit info <in.obj>...")
		return 1
	}

	code := 0
	for _, path := range args {
		objects, err := formats.ReadObjects(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
			continue
		}

		fmt.Printf("File:    %s\n", path)
		fmt.Printf("Objects: %d\n", len(objects))
		fmt.Printf("Budget:  %d vertices\n", cfg.Split.MaxVerts)
		fmt.Println()
		fmt.Printf("  %-24s %8s %8s %8s %6s %9s  %s\n", "Name", "Verts", "Faces", "Edges", "Parts", "Oversized", "Size")
		for _, o := range objects {
			faces := o.Faces()
			adj := partition.BuildAdjacency(faces)

			oversized := 0
			for _, f := range faces {
				if mesh.FaceVertexCount(f) > cfg.Split.MaxVerts {
					oversized++
				}
			}

			size := "-"
			if lo, hi, ok := o.WorldBounds(); ok {
				ext := hi.Sub(lo)
				size = fmt.Sprintf("%.3g x %.3g x %.3g (diag %.3g)", ext.X, ext.Y, ext.Z, ext.Length())
			}
			fmt.Printf("  %-24s %8d %8d %8d %6d %9d  %s\n",
				o.Name, len(o.Vertices()), len(faces), adj.Edges(), len(partition.Components(adj)), oversized, size)
		}
		fmt.Println()
	}
	return code
}

func cmdPreview(cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshsplit preview <in.obj> [out.webp]")
		return 1
	}

	objects, err := formats.ReadObjects(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".webp"
	if len(args) > 1 {
		out = args[1]
	}
	if err := renderTo(cfg, objects, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s\n", out)
	return 0
}

func cmdConfig(cfg *config.Config, args []string) int {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote %s\n", args[0])
		return 0
	}

	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}
