// Package split cuts mesh objects into vertex-budgeted parts and replaces
// the originals in the scene.
package split

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshsplit/pkg/mesh"
	"github.com/Faultbox/meshsplit/pkg/partition"
)

// Selection errors.
var (
	ErrNotAMesh       = errors.New("object is not a mesh")
	ErrEmptySelection = errors.New("no mesh objects selected")
)

// DefaultNameFormat names parts after their source object and region number.
const DefaultNameFormat = "%s_part_%03d"

// Scene is the host scene the splitter writes to.
type Scene interface {
	mesh.Writer
	Remove(obj *mesh.Object) bool
}

// Options configures a Splitter.
type Options struct {
	// NameFormat receives the source object name and the region number.
	NameFormat       string
	CopyVertexColors bool
}

// DefaultOptions returns the options used by the CLI when no config is given.
func DefaultOptions() Options {
	return Options{NameFormat: DefaultNameFormat, CopyVertexColors: true}
}

// Splitter runs the partition and emit pipeline over a selection.
type Splitter struct {
	scene   Scene
	emitter Emitter
	opts    Options
	log     *zap.Logger
}

// New creates a Splitter writing to scene. A nil logger discards output.
func New(scene Scene, opts Options, log *zap.Logger) *Splitter {
	if opts.NameFormat == "" {
		opts.NameFormat = DefaultNameFormat
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Splitter{
		scene:   scene,
		emitter: Emitter{Writer: scene, CopyVertexColors: opts.CopyVertexColors},
		opts:    opts,
		log:     log,
	}
}

// SplitSelected splits every mesh object in entities into parts of at most
// maxVerts vertices (DefaultMaxVerts when zero). Non-mesh entities are
// skipped. A source object is removed from the scene once all of its parts
// were linked. The returned objects are the created parts in order.
func (s *Splitter) SplitSelected(entities []*mesh.Object, maxVerts int) ([]*mesh.Object, *Report) {
	if maxVerts == 0 {
		maxVerts = partition.DefaultMaxVerts
	}
	report := &Report{MaxVerts: maxVerts}

	var selected []*mesh.Object
	for _, obj := range entities {
		if !obj.IsMesh() {
			err := fmt.Errorf("%s: %w", describe(obj), ErrNotAMesh)
			report.Diagnostics = append(report.Diagnostics, err.Error())
			s.log.Warn("skipping object", zap.Error(err))
			continue
		}
		selected = append(selected, obj)
	}

	if len(selected) == 0 {
		report.Diagnostics = append(report.Diagnostics, ErrEmptySelection.Error())
		s.log.Warn("nothing to split", zap.Error(ErrEmptySelection))
		return nil, report
	}

	var created []*mesh.Object
	for _, obj := range selected {
		parts, mr := s.splitObject(obj, maxVerts)
		created = append(created, parts...)
		report.Meshes = append(report.Meshes, mr)
	}
	return created, report
}

func (s *Splitter) splitObject(obj *mesh.Object, maxVerts int) ([]*mesh.Object, MeshReport) {
	mr := MeshReport{
		Name:           obj.Name,
		SourceVertices: len(obj.Vertices()),
		SourceFaces:    len(obj.Faces()),
		Transform:      newTransformReport(obj.Transform()),
	}
	log := s.log.With(zap.String("object", obj.Name))
	log.Info("processing object", zap.Int("vertices", mr.SourceVertices), zap.Int("faces", mr.SourceFaces))

	res, err := partition.Partition(obj, maxVerts)
	if err != nil {
		mr.Error = err.Error()
		log.Error("partition failed", zap.Error(err))
		return nil, mr
	}
	for _, issue := range res.Issues {
		mr.Warnings = append(mr.Warnings, issue.Error())
		log.Warn("face excluded", zap.Int("face", issue.Face), zap.Error(issue.Err))
	}

	var parts []*mesh.Object
	failed := false
	for i, reg := range res.Regions {
		name := fmt.Sprintf(s.opts.NameFormat, obj.Name, i)
		part, issues, err := s.emitter.Emit(obj, reg, name)
		for _, issue := range issues {
			mr.Warnings = append(mr.Warnings, fmt.Sprintf("%s: %v", name, issue))
			log.Warn("face rejected", zap.String("part", name), zap.Int("face", issue.Face), zap.Error(issue.Err))
		}
		if err != nil {
			failed = true
			mr.Warnings = append(mr.Warnings, fmt.Sprintf("%s: %v", name, err))
			log.Error("emitting part failed", zap.String("part", name), zap.Error(err))
			continue
		}

		parts = append(parts, part)
		mr.Regions = append(mr.Regions, RegionReport{
			Name:     part.Name,
			Vertices: len(part.Data.Vertices),
			Faces:    len(part.Data.Faces),
		})
		log.Info("created submesh", zap.String("part", part.Name), zap.Int("vertices", len(part.Data.Vertices)))
	}

	// The source is kept when any part failed or nothing was emitted.
	if !failed && len(parts) > 0 {
		mr.Removed = s.scene.Remove(obj)
	}
	log.Info("object split", zap.Int("parts", len(parts)), zap.Int("warnings", len(mr.Warnings)))
	return parts, mr
}

func describe(obj *mesh.Object) string {
	if obj == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s)", obj.Name, obj.Kind)
}
