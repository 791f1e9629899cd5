// Package partition splits a mesh into connected, vertex-budgeted regions.
package partition

import (
	"slices"

	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// Edge is an unordered vertex pair, stored as (min, max).
type Edge struct {
	A, B int
}

// NewEdge returns the normalized edge between two vertices.
func NewEdge(a, b int) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{a, b}
}

// FaceEdges returns the edges of a face in loop order, closing edge last.
// Zero-length edges from repeated vertices are skipped.
func FaceEdges(f mesh.Face) []Edge {
	n := len(f.Verts)
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		a, b := f.Verts[i], f.Verts[(i+1)%n]
		if a == b {
			continue
		}
		edges = append(edges, NewEdge(a, b))
	}
	return edges
}

// Adjacency is the face connectivity index of a mesh: two faces are
// adjacent when they share an edge. It is read-only once built.
type Adjacency struct {
	edgeFaces map[Edge][]int
	neighbors [][]int
}

// BuildAdjacency indexes faces by shared edges. Neighbors of a face are
// listed in the order its edges are walked, then by ascending face index.
func BuildAdjacency(faces []mesh.Face) *Adjacency {
	adj := &Adjacency{
		edgeFaces: make(map[Edge][]int),
		neighbors: make([][]int, len(faces)),
	}

	for fi, f := range faces {
		for _, e := range FaceEdges(f) {
			owners := adj.edgeFaces[e]
			// A face walking the same edge twice is recorded once.
			if len(owners) > 0 && owners[len(owners)-1] == fi {
				continue
			}
			adj.edgeFaces[e] = append(owners, fi)
		}
	}

	for fi, f := range faces {
		var ns []int
		for _, e := range FaceEdges(f) {
			for _, other := range adj.edgeFaces[e] {
				if other == fi || slices.Contains(ns, other) {
					continue
				}
				ns = append(ns, other)
			}
		}
		adj.neighbors[fi] = ns
	}

	return adj
}

// Neighbors returns the faces sharing an edge with face f.
func (a *Adjacency) Neighbors(f int) []int {
	if f < 0 || f >= len(a.neighbors) {
		return nil
	}
	return a.neighbors[f]
}

// Adjacent reports whether faces f and g share an edge.
func (a *Adjacency) Adjacent(f, g int) bool {
	return slices.Contains(a.Neighbors(f), g)
}

// EdgeFaces returns the faces that contain edge e, in ascending order.
func (a *Adjacency) EdgeFaces(e Edge) []int {
	return a.edgeFaces[NewEdge(e.A, e.B)]
}

// Edges returns the number of distinct edges.
func (a *Adjacency) Edges() int {
	return len(a.edgeFaces)
}

// FaceCount returns the number of indexed faces.
func (a *Adjacency) FaceCount() int {
	return len(a.neighbors)
}

// Components returns the connected components of the face graph, each as
// ascending face indices, ordered by their lowest face.
func Components(a *Adjacency) [][]int {
	seen := make([]bool, a.FaceCount())
	var comps [][]int
	queue := make([]int, 0, 64)

	for seed := range seen {
		if seen[seed] {
			continue
		}
		seen[seed] = true
		queue = append(queue[:0], seed)
		var comp []int

		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			comp = append(comp, f)
			for _, n := range a.Neighbors(f) {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}

		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}
