package road

import (
	gomath "math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testParams() Params {
	p := DefaultParams()
	p.Width = 2
	p.Thickness = 1
	p.Smoothing = Smoothing{Policy: SmoothNone}
	return p
}

func straightPath(n int) []mgl32.Vec3 {
	points := make([]mgl32.Vec3, n)
	for i := range points {
		points[i] = mgl32.Vec3{0, 0, float32(i)}
	}
	return points
}

func TestGenerate_EmptyPath(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath(nil)

	mesh := b.Generate()
	if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("empty path should produce an empty mesh, got %d vertices, %d indices",
			len(mesh.Vertices), len(mesh.Indices))
	}
}

func TestGenerate_SinglePoint(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath([]mgl32.Vec3{{0, 0, 0}})

	mesh := b.Generate()
	if len(mesh.Vertices) != 4 {
		t.Errorf("single section should have 4 vertices, got %d", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 0 {
		t.Errorf("single section is not drawable, got %d indices", len(mesh.Indices))
	}
}

func TestGenerate_BufferSizes(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath(straightPath(6))

	mesh := b.Generate()
	if len(mesh.Vertices) != 6*4 {
		t.Errorf("vertices = %d, want %d", len(mesh.Vertices), 6*4)
	}
	wantTris := (6-1)*8 + 4
	if len(mesh.Indices) != wantTris*3 {
		t.Errorf("indices = %d, want %d triangles", len(mesh.Indices), wantTris)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath([]mgl32.Vec3{{0, 0, 0}, {1, 0.5, 2}, {0.5, 0.2, 4}, {2, 0, 6}})

	first := b.Generate()
	second := b.Generate()
	if !reflect.DeepEqual(first, second) {
		t.Error("two Generate calls with the same centerline must produce identical meshes")
	}
}

func TestGenerate_Clear(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath(straightPath(4))
	b.Generate()

	b.Clear()
	if !b.Mesh().Empty() {
		t.Error("Clear should leave an empty mesh")
	}
	if len(b.Mesh().Vertices) != 0 {
		t.Errorf("Clear left %d vertices", len(b.Mesh().Vertices))
	}
}

func TestGenerate_DuplicatePointsNoNaN(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath([]mgl32.Vec3{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 1}, {0, 0, 1}, {1, 0, 2},
	})

	mesh := b.Generate()
	if len(mesh.Vertices) != 3*4 {
		t.Fatalf("duplicates not collapsed: %d vertices", len(mesh.Vertices))
	}
	for i, v := range mesh.Vertices {
		for j := 0; j < 3; j++ {
			if gomath.IsNaN(float64(v.Position[j])) || gomath.IsNaN(float64(v.Normal[j])) {
				t.Fatalf("vertex %d contains NaN: %+v", i, v)
			}
		}
	}
}

func TestGenerate_WindingFacesOutward(t *testing.T) {
	// A straight tube is convex, so every face normal must point away
	// from the tube's center.
	b := NewBuilder(testParams())
	b.SetPath(straightPath(5))
	mesh := b.Generate()

	center := mesh.Bounds.Min.Add(mesh.Bounds.Max).Mul(0.5)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		bb := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position

		normal := bb.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(bb).Add(c).Mul(1.0 / 3.0)
		if normal.Dot(centroid.Sub(center)) <= 0 {
			t.Errorf("triangle %d (%d,%d,%d) winds inward", i/3,
				mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2])
		}
	}
}

func TestGenerate_NormalsAreUnit(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath([]mgl32.Vec3{{0, 0, 0}, {0, 0, 2}, {1, 0, 4}, {3, 0, 5}})
	mesh := b.Generate()

	for i, v := range mesh.Vertices {
		l := v.Normal.Len()
		if l < 0.999 || l > 1.001 {
			t.Errorf("vertex %d normal length = %v, want ~1", i, l)
		}
	}
}

func TestDirections_AveragedBisector(t *testing.T) {
	// Right-angle corner: the middle direction must bisect the turn.
	points := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}}
	dirs := directions(points, DirAveraged)

	inv := float32(1 / gomath.Sqrt2)
	if !approxEqual(dirs[0], mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("first direction = %v, want (0,0,1)", dirs[0])
	}
	if !approxEqual(dirs[1], mgl32.Vec3{inv, 0, inv}, 1e-5) {
		t.Errorf("middle direction = %v, want (%v,0,%v)", dirs[1], inv, inv)
	}
	if !approxEqual(dirs[2], mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("last direction = %v, want (1,0,0)", dirs[2])
	}
}

func TestDirections_Forward(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {1, 0, 1}}
	dirs := directions(points, DirForward)

	if !approxEqual(dirs[0], mgl32.Vec3{0, 0, 1}, 1e-6) {
		t.Errorf("first direction = %v, want (0,0,1)", dirs[0])
	}
	// Last point reuses the previous segment's direction.
	if dirs[2] != dirs[1] {
		t.Errorf("last direction = %v, want %v", dirs[2], dirs[1])
	}
}

func TestDirections_FullReversal(t *testing.T) {
	// A hairpin that doubles back: the bisector vanishes, but the
	// directions must stay finite.
	points := []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 0.0001}}
	dirs := directions(points, DirAveraged)
	for i, d := range dirs {
		if gomath.IsNaN(float64(d.X() + d.Y() + d.Z())) {
			t.Fatalf("direction %d is NaN", i)
		}
	}
}

func TestSetPath_AppliesFrame(t *testing.T) {
	p := testParams()
	b := NewBuilder(p)
	b.SetFrame(OffsetFrame{Origin: mgl32.Vec3{10, 0, 0}})
	b.SetPath([]mgl32.Vec3{{10, 0, 0}, {10, 0, 1}})

	line := b.Centerline()
	if !approxEqual(line[0], mgl32.Vec3{0, 0, 0}, 1e-6) {
		t.Errorf("first local point = %v, want origin", line[0])
	}
}

type recordingSink struct {
	published []*Mesh
}

func (s *recordingSink) PublishMesh(m *Mesh) {
	s.published = append(s.published, m)
}

func TestGenerate_PublishesToSink(t *testing.T) {
	sink := &recordingSink{}
	b := NewBuilder(testParams())
	b.SetSink(sink)

	b.SetPath(straightPath(3))
	mesh := b.Generate()
	b.Clear()

	if len(sink.published) != 2 {
		t.Fatalf("sink received %d meshes, want 2", len(sink.published))
	}
	if sink.published[0] != mesh {
		t.Error("sink should receive the generated mesh")
	}
	if !sink.published[1].Empty() {
		t.Error("Clear should publish an empty mesh")
	}
}

func TestGenerate_ExtendedProfileHitbox(t *testing.T) {
	p := testParams()
	p.Profile = ProfileExtended
	p.HitboxMargin = 0.5

	b := NewBuilder(p)
	b.SetPath(straightPath(4))
	mesh := b.Generate()
	hitbox := b.Hitbox()

	if len(hitbox.Vertices) != len(mesh.Vertices) {
		t.Fatalf("hitbox vertices = %d, want %d", len(hitbox.Vertices), len(mesh.Vertices))
	}
	if len(hitbox.Indices) != len(mesh.Indices) {
		t.Fatalf("hitbox indices = %d, want %d", len(hitbox.Indices), len(mesh.Indices))
	}
	// The hull must strictly contain the render mesh.
	if hitbox.Bounds.Max.X() <= mesh.Bounds.Max.X() {
		t.Error("hitbox should be wider than the render mesh")
	}
	if hitbox.Bounds.Min.Y() >= mesh.Bounds.Min.Y() {
		t.Error("hitbox should be thicker than the render mesh")
	}
}

func TestGenerate_BasicProfileHasNoHitbox(t *testing.T) {
	b := NewBuilder(testParams())
	b.SetPath(straightPath(4))
	b.Generate()

	if !b.Hitbox().Empty() {
		t.Error("basic profile should not produce a hitbox mesh")
	}
}

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(p *Params) {}, false},
		{"negative width", func(p *Params) { p.Width = -1 }, true},
		{"zero up", func(p *Params) { p.Up = mgl32.Vec3{} }, true},
		{"zero window", func(p *Params) { p.Smoothing.Window = 0 }, true},
		{"even window", func(p *Params) { p.Smoothing.Window = 4 }, true},
		{"even window without averaging", func(p *Params) {
			p.Smoothing = Smoothing{Policy: SmoothSimplify, Window: 4}
		}, false},
		{"zero window without averaging", func(p *Params) {
			p.Smoothing = Smoothing{Policy: SmoothNone}
		}, false},
	}

	for _, c := range cases {
		p := DefaultParams()
		c.mutate(&p)
		err := p.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", c.name, err, c.wantErr)
		}
	}
}
