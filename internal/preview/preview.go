// Package preview renders a flat projection of mesh objects, one color per
// object, so a split can be checked at a glance.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/Faultbox/meshsplit/pkg/math"
	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// Preview errors.
var (
	ErrUnknownPlane = errors.New("unknown projection plane")
	ErrNoGeometry   = errors.New("no faces to render")
)

// Projection planes.
const (
	PlaneXY = "xy"
	PlaneXZ = "xz"
	PlaneYZ = "yz"
)

// Options controls rendering.
type Options struct {
	Size        int    // output width and height in pixels
	Plane       string // xy, xz or yz
	Supersample int    // render scale before downsampling, 1 disables
	Background  color.RGBA
}

// DefaultOptions returns a 512px front (xz) view on white.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Plane:       PlaneXZ,
		Supersample: 2,
		Background:  color.RGBA{255, 255, 255, 255},
	}
}

func project(plane string) (func(math.Vec3) math.Vec2, error) {
	switch plane {
	case PlaneXY:
		return math.Vec3.XY, nil
	case PlaneXZ:
		return math.Vec3.XZ, nil
	case PlaneYZ:
		return math.Vec3.YZ, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlane, plane)
}

// Render draws every face of the mesh objects in world space. Object i is
// filled with Palette(i); non-mesh objects keep their slot in the palette
// but draw nothing.
func Render(objects []*mesh.Object, opts Options) (*image.RGBA, error) {
	proj, err := project(opts.Plane)
	if err != nil {
		return nil, err
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid preview size %d", opts.Size)
	}
	ss := max(opts.Supersample, 1)

	// Project once, tracking bounds.
	polys := make([][][]math.Vec2, len(objects))
	var lo, hi math.Vec2
	faces := 0
	for i, obj := range objects {
		if !obj.IsMesh() {
			continue
		}
		world := obj.WorldPositions()
		flat := make([]math.Vec2, len(world))
		for j, p := range world {
			flat[j] = proj(p)
		}
		for _, f := range obj.Data.Faces {
			poly := make([]math.Vec2, 0, len(f.Verts))
			for _, v := range f.Verts {
				if v >= 0 && v < len(flat) {
					poly = append(poly, flat[v])
				}
			}
			if len(poly) < 3 {
				continue
			}
			if faces == 0 {
				lo, hi = poly[0], poly[0]
			}
			for _, q := range poly {
				lo, hi = lo.Min(q), hi.Max(q)
			}
			polys[i] = append(polys[i], poly)
			faces++
		}
	}
	if faces == 0 {
		return nil, ErrNoGeometry
	}

	size := opts.Size * ss
	margin := float32(size) / 20
	extent := hi.Sub(lo)
	span := max(extent.X, extent.Y)
	scale := float32(1)
	if span > 0 {
		scale = (float32(size) - 2*margin) / span
	}
	// Center the drawing; image y grows downward.
	offset := math.Vec2{X: float32(size), Y: float32(size)}.Sub(extent.Scale(scale)).Scale(0.5)
	toPixel := func(q math.Vec2) (float32, float32) {
		p := offset.Add(q.Sub(lo).Scale(scale))
		return p.X, float32(size) - p.Y
	}

	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := vector.NewRasterizer(size, size)
	for i, objPolys := range polys {
		src := image.NewUniform(Palette(i))
		for _, poly := range objPolys {
			r.Reset(size, size)
			x, y := toPixel(poly[0])
			r.MoveTo(x, y)
			for _, p := range poly[1:] {
				x, y = toPixel(p)
				r.LineTo(x, y)
			}
			r.ClosePath()
			r.Draw(canvas, canvas.Bounds(), src, image.Point{})
		}
	}

	if ss == 1 {
		return canvas, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), draw.Src, nil)
	return out, nil
}

// Palette returns the fill color for object i. Hues step by the golden
// angle so neighbouring parts stay distinguishable.
func Palette(i int) color.RGBA {
	const goldenAngle = 137.50776
	h := float32(i) * goldenAngle
	h -= float32(int(h/360)) * 360
	return hsv(h, 0.55, 0.9)
}

func hsv(h, s, v float32) color.RGBA {
	c := v * s
	hp := h / 60
	// x = c * (1 - |hp mod 2 - 1|)
	m2 := hp - float32(int(hp/2))*2
	d := m2 - 1
	if d < 0 {
		d = -d
	}
	x := c * (1 - d)

	var r, g, b float32
	switch int(hp) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := v - c
	return color.RGBA{
		R: uint8((r+m)*255 + 0.5),
		G: uint8((g+m)*255 + 0.5),
		B: uint8((b+m)*255 + 0.5),
		A: 255,
	}
}

// WriteWebP encodes img as lossless WebP at path, creating parent
// directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
