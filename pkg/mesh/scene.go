package mesh

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Faultbox/meshsplit/pkg/math"
)

// White is the fill color for vertices without an explicit color.
var White = Color{1, 1, 1, 1}

// Layout describes the materials and attribute layers of a mesh under
// construction.
type Layout struct {
	Materials   []string
	UVLayers    []string
	ColorLayers []string
	AutoSmooth  *float32
}

// MeshBuilder assembles a mesh one vertex and face at a time. A rejected
// face leaves the mesh unchanged.
type MeshBuilder interface {
	AddVertex(v Vertex) int
	SetVertexColor(layer, vertex int, c Color) error
	AddFace(f Face) error
	Build() *Mesh
}

// Writer creates meshes and objects in a host scene.
type Writer interface {
	NewMesh(name string, layout Layout) MeshBuilder
	CreateObject(name string, data *Mesh, t Transform) (*Object, error)
	LinkToScene(obj *Object) error
}

type builder struct {
	m     *Mesh
	faces map[string]struct{}
}

// NewBuilder returns a MeshBuilder for a mesh with the given layout.
func NewBuilder(name string, layout Layout) MeshBuilder {
	m := &Mesh{
		Name:       name,
		Materials:  append([]string(nil), layout.Materials...),
		UVLayers:   append([]string(nil), layout.UVLayers...),
		AutoSmooth: layout.AutoSmooth,
	}
	for _, n := range layout.ColorLayers {
		m.ColorLayers = append(m.ColorLayers, ColorLayer{Name: n})
	}
	return &builder{m: m, faces: make(map[string]struct{})}
}

func (b *builder) AddVertex(v Vertex) int {
	b.m.Vertices = append(b.m.Vertices, v)
	return len(b.m.Vertices) - 1
}

func (b *builder) SetVertexColor(layer, vertex int, c Color) error {
	if layer < 0 || layer >= len(b.m.ColorLayers) {
		return fmt.Errorf("color layer %d: %w", layer, ErrVertexIndex)
	}
	if vertex < 0 || vertex >= len(b.m.Vertices) {
		return fmt.Errorf("vertex %d: %w", vertex, ErrVertexIndex)
	}
	l := &b.m.ColorLayers[layer]
	for len(l.Values) <= vertex {
		l.Values = append(l.Values, White)
	}
	l.Values[vertex] = c
	return nil
}

func (b *builder) AddFace(f Face) error {
	for _, v := range f.Verts {
		if v < 0 || v >= len(b.m.Vertices) {
			return fmt.Errorf("vertex %d: %w", v, ErrVertexIndex)
		}
	}
	if FaceVertexCount(f) < 3 {
		return ErrDegenerateFace
	}

	key := faceKey(f.Verts)
	if _, ok := b.faces[key]; ok {
		return ErrDuplicateFace
	}
	b.faces[key] = struct{}{}

	face := Face{
		Verts:    append([]int(nil), f.Verts...),
		Smooth:   f.Smooth,
		Material: f.Material,
		UVs:      make([][]math.Vec2, len(b.m.UVLayers)),
	}
	for i := range face.UVs {
		face.UVs[i] = make([]math.Vec2, len(f.Verts))
		if i < len(f.UVs) {
			copy(face.UVs[i], f.UVs[i])
		}
	}
	b.m.Faces = append(b.m.Faces, face)
	return nil
}

func (b *builder) Build() *Mesh {
	for i := range b.m.ColorLayers {
		l := &b.m.ColorLayers[i]
		if len(l.Values) == 0 {
			continue
		}
		for len(l.Values) < len(b.m.Vertices) {
			l.Values = append(l.Values, White)
		}
	}
	return b.m
}

// faceKey identifies a face by its vertex set, ignoring loop order.
func faceKey(verts []int) string {
	sorted := slices.Clone(verts)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var sb strings.Builder
	for i, v := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Scene is an ordered set of uniquely named objects.
type Scene struct {
	objects []*Object
	byName  map[string]*Object
}

// Compile-time interface check.
var _ Writer = (*Scene)(nil)

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{byName: make(map[string]*Object)}
}

// NewMesh starts building a mesh that can be attached to an object.
func (s *Scene) NewMesh(name string, layout Layout) MeshBuilder {
	return NewBuilder(name, layout)
}

// CreateObject creates an unlinked mesh object.
func (s *Scene) CreateObject(name string, data *Mesh, t Transform) (*Object, error) {
	if data == nil {
		return nil, fmt.Errorf("creating object %s: %w", name, ErrNoMeshData)
	}
	return &Object{Name: name, Kind: KindMesh, Data: data, Placement: t}, nil
}

// LinkToScene adds obj to the scene.
func (s *Scene) LinkToScene(obj *Object) error {
	if _, ok := s.byName[obj.Name]; ok {
		return fmt.Errorf("linking %s: %w", obj.Name, ErrNameTaken)
	}
	s.byName[obj.Name] = obj
	s.objects = append(s.objects, obj)
	return nil
}

// Remove unlinks obj. It returns false if obj was not linked.
func (s *Scene) Remove(obj *Object) bool {
	if s.byName[obj.Name] != obj {
		return false
	}
	delete(s.byName, obj.Name)
	s.objects = slices.DeleteFunc(s.objects, func(o *Object) bool { return o == obj })
	return true
}

// Lookup returns the linked object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.byName[name]
}

// Objects returns the linked objects in link order.
func (s *Scene) Objects() []*Object {
	return slices.Clone(s.objects)
}

// Len returns the number of linked objects.
func (s *Scene) Len() int {
	return len(s.objects)
}
