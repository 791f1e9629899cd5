package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/meshsplit/pkg/encoding"
	"github.com/Faultbox/meshsplit/pkg/math"
	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// OBJ format errors.
var (
	ErrMalformedOBJ    = errors.New("malformed OBJ statement")
	ErrInvalidOBJIndex = errors.New("OBJ index out of range")
)

// Layer names used for OBJ attributes.
const (
	OBJUVLayer    = "UVMap"
	OBJColorLayer = "Col"
)

// OBJ is a parsed Wavefront OBJ file.
type OBJ struct {
	MaterialLibs []string
	objects      []*mesh.Object
}

// Objects returns the mesh objects in file order.
func (o *OBJ) Objects() []*mesh.Object {
	return o.objects
}

// objState accumulates one object while parsing.
type objState struct {
	m        *mesh.Mesh
	global   []int       // local vertex -> global position index
	remap    map[int]int // global position index -> local vertex
	matIndex map[string]int
	hasUV    bool
}

func newObjState(name string) *objState {
	return &objState{
		m:        &mesh.Mesh{Name: name},
		remap:    make(map[int]int),
		matIndex: make(map[string]int),
	}
}

// useMaterial returns the index of a material in the object's list,
// appending it on first use.
func (st *objState) useMaterial(name string) int {
	idx, ok := st.matIndex[name]
	if !ok {
		idx = len(st.m.Materials)
		st.matIndex[name] = idx
		st.m.Materials = append(st.m.Materials, name)
	}
	return idx
}

// objParser holds file-wide state. The current material and smoothing
// carry across o and g statements.
type objParser struct {
	positions []math.Vec3
	colors    []mesh.Color
	hasColor  bool
	texcoords []math.Vec2

	libs     []string
	material string
	hasMtl   bool
	smooth   bool

	cur     *objState
	objects []*objState
}

// ParseOBJ parses OBJ data. Objects without an `o` or `g` statement are
// named defaultName. Names that are not UTF-8 are decoded as EUC-KR.
// Each object gets its own vertex list holding the positions its faces
// use, in first-use order.
func ParseOBJ(data []byte, defaultName string) (*OBJ, error) {
	p := &objParser{cur: newObjState(defaultName)}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		if err := p.statement(strings.Fields(text)); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	p.flush()

	result := &OBJ{MaterialLibs: p.libs}
	used := make(map[string]bool)
	for _, st := range p.objects {
		st.m.Name = uniqueName(st.m.Name, used)
		result.objects = append(result.objects, p.finish(st))
	}
	return result, nil
}

// ParseOBJFile parses an OBJ file from disk. The default object name is the
// file name without extension.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseOBJ(data, name)
}

func (p *objParser) statement(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "v":
		return p.vertex(args)
	case "vt":
		if len(args) < 2 {
			return fmt.Errorf("%w: vt needs 2 coordinates", ErrMalformedOBJ)
		}
		uv, err := parseFloats(args[:2])
		if err != nil {
			return err
		}
		p.texcoords = append(p.texcoords, math.Vec2{X: uv[0], Y: uv[1]})
	case "f":
		return p.face(args)
	case "o", "g":
		name := encoding.Name(strings.Join(args, " "))
		if len(p.cur.m.Faces) == 0 {
			if name != "" {
				p.cur.m.Name = name
			}
			return nil
		}
		p.flush()
		if name == "" {
			name = fmt.Sprintf("object_%d", len(p.objects))
		}
		p.cur = newObjState(name)
		if p.hasMtl {
			p.cur.useMaterial(p.material)
		}
	case "usemtl":
		p.material = encoding.Name(strings.Join(args, " "))
		p.hasMtl = true
		p.cur.useMaterial(p.material)
	case "s":
		p.smooth = len(args) > 0 && args[0] != "off" && args[0] != "0"
	case "mtllib":
		p.libs = append(p.libs, encoding.Name(strings.Join(args, " ")))
	}
	// Normals, lines, curves and other statements carry nothing we keep.
	return nil
}

func (p *objParser) vertex(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: v needs 3 coordinates", ErrMalformedOBJ)
	}
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	p.positions = append(p.positions, math.Vec3{X: vals[0], Y: vals[1], Z: vals[2]})

	// x y z [w] or x y z r g b [a]
	c := mesh.White
	if len(vals) >= 6 {
		c = mesh.Color{R: vals[3], G: vals[4], B: vals[5], A: 1}
		if len(vals) >= 7 {
			c.A = vals[6]
		}
		p.hasColor = true
	}
	p.colors = append(p.colors, c)
	return nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: face needs 3 vertices, got %d", ErrMalformedOBJ, len(args))
	}

	st := p.cur
	f := mesh.Face{
		Verts:    make([]int, len(args)),
		Smooth:   p.smooth,
		Material: st.matIndex[p.material],
		UVs:      [][]math.Vec2{make([]math.Vec2, len(args))},
	}

	for i, ref := range args {
		parts := strings.Split(ref, "/")
		pos, err := resolveIndex(parts[0], len(p.positions))
		if err != nil {
			return fmt.Errorf("vertex %q: %w", ref, err)
		}
		local, ok := st.remap[pos]
		if !ok {
			local = len(st.m.Vertices)
			st.remap[pos] = local
			st.global = append(st.global, pos)
			st.m.Vertices = append(st.m.Vertices, mesh.Vertex{Position: p.positions[pos]})
		}
		f.Verts[i] = local

		if len(parts) > 1 && parts[1] != "" {
			vt, err := resolveIndex(parts[1], len(p.texcoords))
			if err != nil {
				return fmt.Errorf("texcoord %q: %w", ref, err)
			}
			f.UVs[0][i] = p.texcoords[vt]
			st.hasUV = true
		}
	}

	st.m.Faces = append(st.m.Faces, f)
	return nil
}

func (p *objParser) flush() {
	if len(p.cur.m.Faces) > 0 {
		p.objects = append(p.objects, p.cur)
	}
}

func (p *objParser) finish(st *objState) *mesh.Object {
	m := st.m
	if st.hasUV {
		m.UVLayers = []string{OBJUVLayer}
	} else {
		for i := range m.Faces {
			m.Faces[i].UVs = nil
		}
	}
	if p.hasColor {
		layer := mesh.ColorLayer{Name: OBJColorLayer, Values: make([]mesh.Color, len(st.global))}
		for local, g := range st.global {
			layer.Values[local] = p.colors[g]
		}
		m.ColorLayers = []mesh.ColorLayer{layer}
	}
	return mesh.NewMeshObject(m.Name, m)
}

// uniqueName suffixes repeated object names with .001, .002 and so on.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 1; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s.%03d", name, i)
	}
	used[candidate] = true
	return candidate
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based index into a list of length n.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidOBJIndex, i, n)
	}
}

func parseFloats(args []string) ([]float32, error) {
	vals := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
		}
		vals[i] = float32(f)
	}
	return vals, nil
}

// WriteOptions controls OBJ output.
type WriteOptions struct {
	// MaterialLib is referenced with an mtllib statement when set.
	MaterialLib string
	// ApplyTransform bakes each object's placement into its positions.
	// OBJ has no transforms, so without it positions stay in local space.
	ApplyTransform bool
}

// WriteOBJ writes mesh objects as OBJ. Non-mesh objects are skipped. Only
// the first UV layer and the first color layer can be represented.
func WriteOBJ(w io.Writer, objects []*mesh.Object, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# meshsplit")
	if opts.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", opts.MaterialLib)
	}

	vBase, vtBase := 1, 1
	for _, obj := range objects {
		if !obj.IsMesh() {
			continue
		}
		m := obj.Data
		fmt.Fprintf(bw, "o %s\n", obj.Name)

		xf := obj.Placement.Matrix()
		colors := obj.VertexColors(0)
		for i, v := range m.Vertices {
			pos := v.Position
			if opts.ApplyTransform {
				pos = xf.TransformVec3(pos)
			}
			bw.WriteString("v " + ff(pos.X) + " " + ff(pos.Y) + " " + ff(pos.Z))
			if colors != nil {
				c := colors[i]
				bw.WriteString(" " + ff(c.R) + " " + ff(c.G) + " " + ff(c.B))
			}
			bw.WriteByte('\n')
		}

		hasUV := len(m.UVLayers) > 0
		if hasUV {
			for _, f := range m.Faces {
				for loop := range f.Verts {
					var uv math.Vec2
					if len(f.UVs) > 0 && loop < len(f.UVs[0]) {
						uv = f.UVs[0][loop]
					}
					bw.WriteString("vt " + ff(uv.X) + " " + ff(uv.Y) + "\n")
				}
			}
		}

		material, smooth := -1, false
		first := true
		vt := vtBase
		for _, f := range m.Faces {
			if f.Material != material && f.Material >= 0 && f.Material < len(m.Materials) {
				fmt.Fprintf(bw, "usemtl %s\n", m.Materials[f.Material])
				material = f.Material
			}
			if first || f.Smooth != smooth {
				if f.Smooth {
					bw.WriteString("s 1\n")
				} else {
					bw.WriteString("s off\n")
				}
				smooth, first = f.Smooth, false
			}

			bw.WriteString("f")
			for _, v := range f.Verts {
				bw.WriteString(" " + strconv.Itoa(vBase+v))
				if hasUV {
					bw.WriteString("/" + strconv.Itoa(vt))
					vt++
				}
			}
			bw.WriteByte('\n')
		}

		vBase += len(m.Vertices)
		vtBase = vt
	}

	return bw.Flush()
}

// WriteOBJFile writes objects to an OBJ file, creating parent directories.
func WriteOBJFile(path string, objects []*mesh.Object, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, objects, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ff(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
