package partition

import "github.com/Faultbox/meshsplit/pkg/mesh"

// Region is a connected group of faces whose distinct vertices fit the
// vertex budget. Source vertices are remapped to a zero-based local index
// space in the order they were first used.
type Region struct {
	faces      []int
	localFaces [][]int
	verts      []int
	remap      map[int]int
	sealed     bool
}

func newRegion() *Region {
	return &Region{remap: make(map[int]int)}
}

// need returns how many vertices of f are not yet in the region.
func (r *Region) need(f mesh.Face) int {
	n := 0
	for i, v := range f.Verts {
		if _, ok := r.remap[v]; ok {
			continue
		}
		// Count a vertex repeated within the face once.
		seen := false
		for _, w := range f.Verts[:i] {
			if w == v {
				seen = true
				break
			}
		}
		if !seen {
			n++
		}
	}
	return n
}

// add appends face fi, assigning local indices to its new vertices in loop
// order.
func (r *Region) add(fi int, f mesh.Face) {
	if r.sealed {
		panic("partition: add to sealed region")
	}
	local := make([]int, len(f.Verts))
	for i, v := range f.Verts {
		idx, ok := r.remap[v]
		if !ok {
			idx = len(r.verts)
			r.remap[v] = idx
			r.verts = append(r.verts, v)
		}
		local[i] = idx
	}
	r.faces = append(r.faces, fi)
	r.localFaces = append(r.localFaces, local)
}

func (r *Region) seal() {
	r.sealed = true
}

// Sealed reports whether the region is complete.
func (r *Region) Sealed() bool {
	return r.sealed
}

// Faces returns the source face indices in inclusion order.
func (r *Region) Faces() []int {
	return r.faces
}

// Vertices returns the source vertex indices in local index order.
func (r *Region) Vertices() []int {
	return r.verts
}

// VertexCount returns the number of distinct vertices in the region.
func (r *Region) VertexCount() int {
	return len(r.verts)
}

// Local returns the local index of source vertex src.
func (r *Region) Local(src int) (int, bool) {
	idx, ok := r.remap[src]
	return idx, ok
}

// LocalFace returns the i-th face of the region with its vertices rewritten
// to local indices, in the source loop order.
func (r *Region) LocalFace(i int) []int {
	return r.localFaces[i]
}
