// Package mesh defines the polygon mesh model shared by the readers, the
// partitioner and the writers.
package mesh

import (
	"errors"

	"github.com/Faultbox/meshsplit/pkg/math"
)

// Mesh construction errors.
var (
	ErrDuplicateFace  = errors.New("face already exists")
	ErrDegenerateFace = errors.New("face has fewer than 3 distinct vertices")
	ErrVertexIndex    = errors.New("vertex index out of range")
	ErrNameTaken      = errors.New("object name already linked")
	ErrNoMeshData     = errors.New("object has no mesh data")
)

// Vertex is a mesh vertex. Its identity is its index in Mesh.Vertices.
type Vertex struct {
	Position math.Vec3
}

// Color is a linear RGBA vertex color.
type Color struct {
	R, G, B, A float32
}

// ColorLayer is a named vertex color layer. Values is either empty (the
// layer exists but carries no data) or holds one color per vertex.
type ColorLayer struct {
	Name   string
	Values []Color
}

// Face is a polygon. Verts lists vertex indices in loop order; UVs holds one
// coordinate per loop for every UV layer of the owning mesh, indexed
// [layer][loop].
type Face struct {
	Verts    []int
	Smooth   bool
	Material int
	UVs      [][]math.Vec2
}

// Transform is an object's placement. Rotation is an XYZ Euler rotation in
// radians.
type Transform struct {
	Location math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Matrix returns the local-to-world matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Location, t.Rotation, t.Scale)
}

// Reader is read access to a source mesh.
type Reader interface {
	Vertices() []Vertex
	Faces() []Face
	Materials() []string
	UVLayerNames() []string
	VertexColorLayerNames() []string
	// VertexColors returns the per-vertex values of a color layer, or nil
	// when the layer holds no values.
	VertexColors(layer int) []Color
	Transform() Transform
	SmoothingAngle() (float32, bool)
}

// Mesh is an in-memory polygon mesh.
type Mesh struct {
	Name        string
	Vertices    []Vertex
	Faces       []Face
	Materials   []string
	UVLayers    []string
	ColorLayers []ColorLayer

	// AutoSmooth is the auto smooth angle in radians, nil when unset.
	AutoSmooth *float32
}

// FaceVertexCount returns the number of distinct vertices used by a face.
func FaceVertexCount(f Face) int {
	n := 0
	for i, v := range f.Verts {
		dup := false
		for _, w := range f.Verts[:i] {
			if w == v {
				dup = true
				break
			}
		}
		if !dup {
			n++
		}
	}
	return n
}
