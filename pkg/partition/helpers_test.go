package partition

import (
	"github.com/Faultbox/meshsplit/pkg/math"
	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// Helper functions for creating test meshes

func makeObject(vertCount int, faces []mesh.Face) *mesh.Object {
	m := &mesh.Mesh{Name: "test", Vertices: make([]mesh.Vertex, vertCount), Faces: faces}
	for i := range m.Vertices {
		m.Vertices[i].Position = math.Vec3{X: float32(i)}
	}
	return mesh.NewMeshObject("test", m)
}

func tri(a, b, c int) mesh.Face {
	return mesh.Face{Verts: []int{a, b, c}}
}

// makeGrid returns the quads of a w x h grid whose vertices start at base.
// The grid uses (w+1)*(h+1) vertices.
func makeGrid(w, h, base int) []mesh.Face {
	var faces []mesh.Face
	idx := func(x, y int) int { return base + y*(w+1) + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			faces = append(faces, mesh.Face{Verts: []int{idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)}})
		}
	}
	return faces
}

// makeTorus returns the triangles of an n x m torus whose vertices start at
// base. The torus uses n*m vertices and 2*n*m triangles.
func makeTorus(n, m, base int) []mesh.Face {
	var faces []mesh.Face
	idx := func(i, j int) int { return base + (i%n)*m + (j % m) }
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			a, b, c, d := idx(i, j), idx(i+1, j), idx(i+1, j+1), idx(i, j+1)
			faces = append(faces, tri(a, b, c), tri(a, c, d))
		}
	}
	return faces
}

// makeStrip returns n triangles (i, i+1, i+2), using n+2 vertices.
func makeStrip(n int) []mesh.Face {
	faces := make([]mesh.Face, n)
	for i := range faces {
		faces[i] = tri(i, i+1, i+2)
	}
	return faces
}
