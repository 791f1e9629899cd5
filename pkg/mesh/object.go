package mesh

import "github.com/Faultbox/meshsplit/pkg/math"

// Kind is the type of data an object carries.
type Kind int

const (
	KindMesh Kind = iota
	KindEmpty
	KindCurve
	KindCamera
	KindLight
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "Mesh"
	case KindEmpty:
		return "Empty"
	case KindCurve:
		return "Curve"
	case KindCamera:
		return "Camera"
	case KindLight:
		return "Light"
	default:
		return "Unknown"
	}
}

// Object is a named, placed scene entity. Only KindMesh objects with Data
// set are mesh-bearing.
type Object struct {
	Name      string
	Kind      Kind
	Data      *Mesh
	Placement Transform
}

// NewMeshObject wraps m in an object with an identity placement.
func NewMeshObject(name string, m *Mesh) *Object {
	return &Object{Name: name, Kind: KindMesh, Data: m, Placement: Identity()}
}

// IsMesh reports whether o carries mesh data.
func (o *Object) IsMesh() bool {
	return o != nil && o.Kind == KindMesh && o.Data != nil
}

// Compile-time interface check.
var _ Reader = (*Object)(nil)

func (o *Object) Vertices() []Vertex { return o.Data.Vertices }

func (o *Object) Faces() []Face { return o.Data.Faces }

func (o *Object) Materials() []string { return o.Data.Materials }

func (o *Object) UVLayerNames() []string { return o.Data.UVLayers }

func (o *Object) VertexColorLayerNames() []string {
	names := make([]string, len(o.Data.ColorLayers))
	for i, l := range o.Data.ColorLayers {
		names[i] = l.Name
	}
	return names
}

func (o *Object) VertexColors(layer int) []Color {
	layers := o.Data.ColorLayers
	if layer < 0 || layer >= len(layers) {
		return nil
	}
	if len(layers[layer].Values) != len(o.Data.Vertices) {
		return nil
	}
	return layers[layer].Values
}

func (o *Object) Transform() Transform { return o.Placement }

func (o *Object) SmoothingAngle() (float32, bool) {
	if o.Data.AutoSmooth == nil {
		return 0, false
	}
	return *o.Data.AutoSmooth, true
}

// WorldPositions returns the vertex positions with the placement applied.
func (o *Object) WorldPositions() []math.Vec3 {
	xf := o.Placement.Matrix()
	out := make([]math.Vec3, len(o.Data.Vertices))
	for i, v := range o.Data.Vertices {
		out[i] = xf.TransformVec3(v.Position)
	}
	return out
}

// WorldBounds returns the world-space bounding box. ok is false for a mesh
// without vertices.
func (o *Object) WorldBounds() (lo, hi math.Vec3, ok bool) {
	world := o.WorldPositions()
	if len(world) == 0 {
		return lo, hi, false
	}
	lo, hi = world[0], world[0]
	for _, p := range world[1:] {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return lo, hi, true
}
