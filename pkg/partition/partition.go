package partition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// DefaultMaxVerts is the vertex budget used when none is configured.
const DefaultMaxVerts = 128

// Partition errors.
var (
	ErrInvalidBudget  = errors.New("vertex budget must be positive")
	ErrOversizedFace  = errors.New("face has more vertices than the budget")
	ErrDegenerateFace = mesh.ErrDegenerateFace
	ErrVertexIndex    = mesh.ErrVertexIndex
)

// FaceIssue records a face that was left out of the output.
type FaceIssue struct {
	Face int
	Err  error
}

func (i FaceIssue) Error() string {
	return fmt.Sprintf("face %d: %v", i.Face, i.Err)
}

func (i FaceIssue) Unwrap() error {
	return i.Err
}

// Result is the outcome of partitioning one mesh.
type Result struct {
	Regions []*Region
	Issues  []FaceIssue
}

// Covered returns the number of faces placed in a region.
func (r *Result) Covered() int {
	n := 0
	for _, reg := range r.Regions {
		n += len(reg.Faces())
	}
	return n
}

// Excluded returns the faces that were left out, in ascending order.
func (r *Result) Excluded() []int {
	faces := make([]int, len(r.Issues))
	for i, issue := range r.Issues {
		faces[i] = issue.Face
	}
	slices.Sort(faces)
	return faces
}

// Partition grows regions of at most maxVerts distinct vertices over the
// faces of m. Each region starts at the lowest face not yet placed and grows
// breadth-first across shared edges. A face that would overflow the current
// region is skipped, not re-queued; it seeds or joins a later region.
//
// Faces with fewer than 3 distinct vertices, or with more distinct vertices
// than maxVerts, can never be placed and are reported in Result.Issues.
// Every other face ends up in exactly one region.
func Partition(m mesh.Reader, maxVerts int) (*Result, error) {
	if maxVerts <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, maxVerts)
	}

	faces := m.Faces()
	vertCount := len(m.Vertices())
	for fi, f := range faces {
		for _, v := range f.Verts {
			if v < 0 || v >= vertCount {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", fi, v, vertCount, ErrVertexIndex)
			}
		}
	}

	result := &Result{}
	excluded := make([]bool, len(faces))
	done := 0
	for fi, f := range faces {
		n := mesh.FaceVertexCount(f)
		switch {
		case n < 3:
			result.Issues = append(result.Issues, FaceIssue{fi, ErrDegenerateFace})
		case n > maxVerts:
			result.Issues = append(result.Issues, FaceIssue{fi, fmt.Errorf("%w: %d > %d", ErrOversizedFace, n, maxVerts)})
		default:
			continue
		}
		excluded[fi] = true
		done++
	}

	adj := BuildAdjacency(faces)
	processed := make([]bool, len(faces))
	// queuedIn[f] holds the 1-based number of the region whose queue f
	// entered last.
	queuedIn := make([]int, len(faces))
	cursor := 0
	queue := make([]int, 0, 64)

	for gen := 1; done < len(faces); gen++ {
		for cursor < len(faces) && (processed[cursor] || excluded[cursor]) {
			cursor++
		}
		if cursor == len(faces) {
			break
		}

		reg := newRegion()
		queue = append(queue[:0], cursor)
		queuedIn[cursor] = gen

		for len(queue) > 0 && reg.VertexCount() < maxVerts {
			fi := queue[0]
			queue = queue[1:]

			f := faces[fi]
			if reg.VertexCount()+reg.need(f) > maxVerts {
				continue
			}

			processed[fi] = true
			done++
			reg.add(fi, f)

			for _, n := range adj.Neighbors(fi) {
				if processed[n] || excluded[n] || queuedIn[n] == gen {
					continue
				}
				queuedIn[n] = gen
				queue = append(queue, n)
			}
		}

		reg.seal()
		if len(reg.Faces()) > 0 {
			result.Regions = append(result.Regions, reg)
		}
	}

	return result, nil
}
