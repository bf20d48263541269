package render

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"planet-synth/internal/shader"
)

// flatProgram paints a constant color so raster geometry is easy to check.
type flatProgram struct {
	rgb   mgl64.Vec3
	alpha float64
}

func (flatProgram) Name() string       { return "flat" }
func (flatProgram) Uniforms() []string { return []string{"tint"} }
func (flatProgram) Vertex(in shader.VertexIn, _ *shader.Table) shader.Varyings {
	return shader.Varyings{ObjectPos: in.Position, Normal: in.Normal, WorldNormal: in.Normal}
}
func (p flatProgram) Fragment(_ shader.FragmentIn, t *shader.Table) shader.Color {
	return shader.Color{RGB: p.rgb.Mul(t.Float("tint")), Alpha: p.alpha}
}

func tintTable() *shader.Table {
	t := shader.NewTable()
	t.Declare("tint", shader.Scalar(1))
	return t
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore(nil)
	mesh, err := s.RequestSphere(1, 64)
	if err != nil {
		t.Fatalf("RequestSphere: %v", err)
	}
	mat, err := s.BindMaterial(flatProgram{}, tintTable(), MaterialOptions{})
	if err != nil {
		t.Fatalf("BindMaterial: %v", err)
	}
	if m, n := s.Live(); m != 1 || n != 1 {
		t.Fatalf("live = %d meshes %d materials", m, n)
	}
	if err := s.Release(mesh, mat); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := s.Release(mesh, mat); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("double release err = %v, want ErrUnknownHandle", err)
	}
	if s.Released() != 1 {
		t.Fatalf("released = %d, want 1", s.Released())
	}
}

func TestStoreRejects(t *testing.T) {
	s := NewStore(nil)
	if _, err := s.RequestSphere(0, 64); !errors.Is(err, ErrInvalidMesh) {
		t.Fatalf("zero radius err = %v", err)
	}
	if _, err := s.BindMaterial(flatProgram{}, shader.NewTable(), MaterialOptions{}); !errors.Is(err, ErrProgramRejected) {
		t.Fatalf("missing uniform err = %v", err)
	}
	if _, err := s.BindMaterial(nil, tintTable(), MaterialOptions{}); !errors.Is(err, ErrProgramRejected) {
		t.Fatalf("nil program err = %v", err)
	}
}

func TestRasterCoversDisc(t *testing.T) {
	r := NewRaster(4, nil)
	mesh, _ := r.RequestSphere(1, 32)
	mat, _ := r.BindMaterial(flatProgram{rgb: mgl64.Vec3{1, 0, 0}, alpha: 1}, tintTable(), MaterialOptions{})

	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	if err := r.Draw(img, []Object{{Mesh: mesh, Material: mat, Visible: true}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if c := img.RGBAAt(20, 20); c != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("centre pixel = %v, want red", c)
	}
	if c := img.RGBAAt(0, 0); c.R != 0 {
		t.Fatalf("corner pixel = %v, want background", c)
	}
}

func TestRasterSkipsHidden(t *testing.T) {
	r := NewRaster(2, nil)
	mesh, _ := r.RequestSphere(1, 32)
	mat, _ := r.BindMaterial(flatProgram{rgb: mgl64.Vec3{1, 1, 1}, alpha: 1}, tintTable(), MaterialOptions{})
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if err := r.Draw(img, []Object{{Mesh: mesh, Material: mat}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if c := img.RGBAAt(5, 5); c.R != 0 {
		t.Fatalf("hidden object drawn: %v", c)
	}
}

func TestRasterBlendsTransparentShell(t *testing.T) {
	r := NewRaster(2, nil)
	surface, _ := r.RequestSphere(1, 32)
	shell, _ := r.RequestSphere(1.02, 16)
	solid, _ := r.BindMaterial(flatProgram{rgb: mgl64.Vec3{0, 0, 1}, alpha: 1}, tintTable(), MaterialOptions{})
	cloud, _ := r.BindMaterial(flatProgram{rgb: mgl64.Vec3{1, 1, 1}, alpha: 0.5}, tintTable(), MaterialOptions{Transparent: true})

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	objects := []Object{
		{Mesh: shell, Material: cloud, Visible: true},
		{Mesh: surface, Material: solid, Visible: true},
	}
	if err := r.Draw(img, objects); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	c := img.RGBAAt(10, 10)
	if c.B != 255 || c.R < 120 || c.R > 135 {
		t.Fatalf("blended pixel = %v, want half white over blue", c)
	}
}

func TestRasterTableWritesVisible(t *testing.T) {
	r := NewRaster(1, nil)
	mesh, _ := r.RequestSphere(1, 32)
	tbl := tintTable()
	mat, _ := r.BindMaterial(flatProgram{rgb: mgl64.Vec3{1, 1, 1}, alpha: 1}, tbl, MaterialOptions{})
	tbl.Set("tint", shader.Scalar(0))

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if err := r.Draw(img, []Object{{Mesh: mesh, Material: mat, Visible: true}}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if c := img.RGBAAt(4, 4); c.R != 0 {
		t.Fatalf("tint write not visible: %v", c)
	}
}

func TestRasterUnknownHandle(t *testing.T) {
	r := NewRaster(1, nil)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := r.Draw(img, []Object{{Mesh: 99, Visible: true}}); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("err = %v, want ErrUnknownHandle", err)
	}
}

func TestASCII(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if got := ASCII(img); got != " @\n" {
		t.Fatalf("ASCII = %q", got)
	}
	if lines := strings.Count(ASCII(image.NewRGBA(image.Rect(0, 0, 3, 4))), "\n"); lines != 4 {
		t.Fatalf("lines = %d, want 4", lines)
	}
}

func TestStoreReleasesHalfBuiltShell(t *testing.T) {
	s := NewStore(nil)
	mesh, _ := s.RequestSphere(1, 8)
	if err := s.Release(mesh, 0); err != nil {
		t.Fatalf("Release(mesh, 0): %v", err)
	}
	if m, _ := s.Live(); m != 0 {
		t.Fatalf("mesh still live")
	}
	if err := s.Release(0, 0); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Release(0, 0) err = %v", err)
	}
}
