package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"runtime"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"planet-synth/internal/shader"
)

// Camera is a perspective camera looking down -Z at the origin.
type Camera struct {
	Position mgl64.Vec3
	FOV      float64 // vertical, degrees

	// PixelAspect is pixel height over width; 0 means square pixels.
	PixelAspect float64
}

// DefaultCamera matches the preview framing: planet centred, 2.7 units away.
func DefaultCamera() Camera {
	return Camera{Position: mgl64.Vec3{0, 0, 2.7}, FOV: 45}
}

// Raster is a software Collaborator that shades every pixel of the submitted
// spheres with the bound programs. Rows are shaded concurrently.
type Raster struct {
	*Store
	Camera  Camera
	workers int
}

// NewRaster returns a rasterizer using up to workers goroutines (<=0 means
// one per CPU).
func NewRaster(workers int, log *slog.Logger) *Raster {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Raster{Store: NewStore(log), Camera: DefaultCamera(), workers: workers}
}

// Workers reports the shading concurrency.
func (r *Raster) Workers() int { return r.workers }

type drawItem struct {
	sphere   Sphere
	material Material
	model    mgl64.Mat3
	inverse  mgl64.Mat3
}

// Draw shades objects into dst. The outermost opaque sphere hit by a ray
// wins; transparent shells are then composited from the inside out.
func (r *Raster) Draw(dst *image.RGBA, objects []Object) error {
	items := make([]drawItem, 0, len(objects))
	for _, o := range objects {
		if !o.Visible {
			continue
		}
		sphere, ok := r.Mesh(o.Mesh)
		if !ok {
			return fmt.Errorf("draw mesh %d: %w", o.Mesh, ErrUnknownHandle)
		}
		mat, ok := r.Material(o.Material)
		if !ok {
			return fmt.Errorf("draw material %d: %w", o.Material, ErrUnknownHandle)
		}
		model := mgl64.Rotate3DY(o.RotationY)
		items = append(items, drawItem{sphere: sphere, material: mat, model: model, inverse: model.Transpose()})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].material.Transparent != items[j].material.Transparent {
			return !items[i].material.Transparent
		}
		if items[i].material.Transparent {
			return items[i].sphere.Radius < items[j].sphere.Radius
		}
		return items[i].sphere.Radius > items[j].sphere.Radius
	})

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	tanHalf := math.Tan(mgl64.DegToRad(r.Camera.FOV) / 2)
	aspect := float64(w) / float64(h)
	if r.Camera.PixelAspect > 0 {
		aspect /= r.Camera.PixelAspect
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	for y := 0; y < h; y++ {
		y := y
		g.Go(func() error {
			for x := 0; x < w; x++ {
				ndcX := (2*(float64(x)+0.5)/float64(w) - 1) * tanHalf * aspect
				ndcY := (1 - 2*(float64(y)+0.5)/float64(h)) * tanHalf
				dir := mgl64.Vec3{ndcX, ndcY, -1}.Normalize()
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, toRGBA(r.shadePixel(dir, items)))
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Raster) shadePixel(dir mgl64.Vec3, items []drawItem) mgl64.Vec3 {
	var out mgl64.Vec3
	covered := false
	for _, it := range items {
		hit, ok := intersect(r.Camera.Position, dir, it.sphere.Radius)
		if !ok {
			continue
		}
		if !it.material.Transparent && covered {
			continue
		}
		normal := hit.Normalize()
		obj := it.inverse.Mul3x1(normal)
		in := shader.VertexIn{Position: obj, Normal: obj, Model: it.model}
		vary := it.material.Program.Vertex(in, it.material.Params)
		c := it.material.Program.Fragment(shader.FragmentIn{Varyings: vary, Camera: r.Camera.Position}, it.material.Params)
		if it.material.Transparent {
			out = blend(out, c.RGB, c.Alpha)
		} else {
			out = c.RGB
			covered = true
		}
	}
	return out
}

// intersect returns the nearest hit of a ray with a sphere at the origin.
func intersect(origin, dir mgl64.Vec3, radius float64) (mgl64.Vec3, bool) {
	bq := origin.Dot(dir)
	c := origin.Dot(origin) - radius*radius
	disc := bq*bq - c
	if disc < 0 {
		return mgl64.Vec3{}, false
	}
	t := -bq - math.Sqrt(disc)
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}
