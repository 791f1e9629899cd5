package split

import (
	"fmt"

	"github.com/Faultbox/meshsplit/pkg/mesh"
	"github.com/Faultbox/meshsplit/pkg/partition"
)

// Emitter turns sealed regions into new, independent mesh objects.
type Emitter struct {
	Writer mesh.Writer

	// CopyVertexColors transfers per-vertex color values. Color layers are
	// always created; without this they stay empty.
	CopyVertexColors bool
}

// Emit builds an object named name from region reg of src and links it to
// the scene. Faces the writer rejects are skipped and returned as issues;
// an error means no object was linked.
func (e *Emitter) Emit(src mesh.Reader, reg *partition.Region, name string) (*mesh.Object, []partition.FaceIssue, error) {
	b := e.Writer.NewMesh(name, layoutOf(src))

	verts := src.Vertices()
	for _, sv := range reg.Vertices() {
		b.AddVertex(verts[sv])
	}

	if e.CopyVertexColors {
		for layer := range src.VertexColorLayerNames() {
			values := src.VertexColors(layer)
			if values == nil {
				continue
			}
			for local, sv := range reg.Vertices() {
				if err := b.SetVertexColor(layer, local, values[sv]); err != nil {
					return nil, nil, fmt.Errorf("copying vertex colors: %w", err)
				}
			}
		}
	}

	var issues []partition.FaceIssue
	faces := src.Faces()
	for i, fi := range reg.Faces() {
		f := faces[fi]
		err := b.AddFace(mesh.Face{
			Verts:    reg.LocalFace(i),
			Smooth:   f.Smooth,
			Material: f.Material,
			UVs:      f.UVs,
		})
		if err != nil {
			issues = append(issues, partition.FaceIssue{Face: fi, Err: err})
		}
	}

	obj, err := e.Writer.CreateObject(name, b.Build(), src.Transform())
	if err != nil {
		return nil, issues, err
	}
	if err := e.Writer.LinkToScene(obj); err != nil {
		return nil, issues, err
	}
	return obj, issues, nil
}

func layoutOf(r mesh.Reader) mesh.Layout {
	l := mesh.Layout{
		Materials:   append([]string(nil), r.Materials()...),
		UVLayers:    append([]string(nil), r.UVLayerNames()...),
		ColorLayers: append([]string(nil), r.VertexColorLayerNames()...),
	}
	if angle, ok := r.SmoothingAngle(); ok {
		l.AutoSmooth = &angle
	}
	return l
}
