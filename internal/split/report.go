package split

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// Report summarizes one SplitSelected run.
type Report struct {
	MaxVerts    int          `yaml:"max_verts"`
	Meshes      []MeshReport `yaml:"meshes"`
	Diagnostics []string     `yaml:"diagnostics,omitempty"`
}

// MeshReport summarizes the split of one source object.
type MeshReport struct {
	Name           string          `yaml:"name"`
	SourceVertices int             `yaml:"source_vertices"`
	SourceFaces    int             `yaml:"source_faces"`
	Transform      TransformReport `yaml:"transform"`
	Regions        []RegionReport  `yaml:"regions"`
	Warnings       []string        `yaml:"warnings,omitempty"`
	Error          string          `yaml:"error,omitempty"`
	Removed        bool            `yaml:"removed"`
}

// RegionReport describes one emitted part.
type RegionReport struct {
	Name     string `yaml:"name"`
	Vertices int    `yaml:"vertices"`
	Faces    int    `yaml:"faces"`
}

// TransformReport is the placement shared by a source object and its parts.
type TransformReport struct {
	Location [3]float32 `yaml:"location,flow"`
	Rotation [3]float32 `yaml:"rotation,flow"`
	Scale    [3]float32 `yaml:"scale,flow"`
}

func newTransformReport(t mesh.Transform) TransformReport {
	return TransformReport{
		Location: [3]float32{t.Location.X, t.Location.Y, t.Location.Z},
		Rotation: [3]float32{t.Rotation.X, t.Rotation.Y, t.Rotation.Z},
		Scale:    [3]float32{t.Scale.X, t.Scale.Y, t.Scale.Z},
	}
}

// Parts returns the number of emitted parts across all meshes.
func (r *Report) Parts() int {
	n := 0
	for _, m := range r.Meshes {
		n += len(m.Regions)
	}
	return n
}

// Warnings returns the number of warnings across all meshes.
func (r *Report) Warnings() int {
	n := len(r.Diagnostics)
	for _, m := range r.Meshes {
		n += len(m.Warnings)
		if m.Error != "" {
			n++
		}
	}
	return n
}

// WriteSummary prints a human-readable summary.
func (r *Report) WriteSummary(w io.Writer) {
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
	for _, m := range r.Meshes {
		fmt.Fprintf(w, "%s: %d vertices, %d faces\n", m.Name, m.SourceVertices, m.SourceFaces)
		if m.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", m.Error)
			continue
		}
		for _, reg := range m.Regions {
			fmt.Fprintf(w, "  %-32s %5d vertices %5d faces\n", reg.Name, reg.Vertices, reg.Faces)
		}
		for _, warn := range m.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
		fmt.Fprintf(w, "  created %d submeshes\n", len(m.Regions))
	}
}

// WriteYAML writes the report to path.
func (r *Report) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
