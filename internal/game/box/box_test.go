package box

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/bouncebox/internal/engine/mesh"
	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

type drawCall struct {
	kind     string // "depth", "strip", "wire"
	depth    bool
	model    math.Mat4
	vertices []mesh.Vertex
}

// recordingSurface captures draw calls, copying vertex data since the box
// reuses its buffers between passes.
type recordingSurface struct {
	calls []drawCall
}

func (s *recordingSurface) SetDepthTest(enabled bool) {
	s.calls = append(s.calls, drawCall{kind: "depth", depth: enabled})
}

func (s *recordingSurface) DrawStrip(model math.Mat4, vertices []mesh.Vertex) {
	s.calls = append(s.calls, drawCall{kind: "strip", model: model, vertices: append([]mesh.Vertex(nil), vertices...)})
}

func (s *recordingSurface) DrawWireframe(model math.Mat4, vertices []mesh.Vertex) {
	s.calls = append(s.calls, drawCall{kind: "wire", model: model, vertices: append([]mesh.Vertex(nil), vertices...)})
}

func (s *recordingSurface) byKind(kind string) []drawCall {
	var out []drawCall
	for _, c := range s.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func newTestBox(t *testing.T, side float32, n int) *Box {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SideLength = side
	cfg.Subdivisions = n
	b, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero side", func(c *Config) { c.SideLength = 0 }},
		{"negative side", func(c *Config) { c.SideLength = -5 }},
		{"no subdivisions", func(c *Config) { c.Subdivisions = 0 }},
		{"fade factor one", func(c *Config) { c.FadeFactor = 1 }},
		{"fade factor zero", func(c *Config) { c.FadeFactor = 0 }},
		{"negative fade threshold", func(c *Config) { c.FadeThreshold = -0.1 }},
		{"fade threshold one", func(c *Config) { c.FadeThreshold = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRecordHitFaceSelection(t *testing.T) {
	// side 100, 10 cells of 10 units; (3.2, -10.1, 27) lies in cells x=5, y=3, z=7
	tests := []struct {
		name           string
		hitX, hitY     bool
		hitZ           bool
		point          math.Vec3
		face           Face
		wantRow, wantC int
	}{
		{"front", false, false, true, math.Vec3{X: 3.2, Y: -10.1, Z: 50}, FaceFront, 3, 5},
		{"back", false, false, true, math.Vec3{X: 3.2, Y: -10.1, Z: -50}, FaceBack, 3, 5},
		{"right", true, false, false, math.Vec3{X: 50, Y: -10.1, Z: 27}, FaceRight, 3, 7},
		{"left", true, false, false, math.Vec3{X: -50, Y: -10.1, Z: 27}, FaceLeft, 3, 7},
		{"top", false, true, false, math.Vec3{X: 3.2, Y: 50, Z: 27}, FaceTop, 7, 5},
		{"bottom", false, true, false, math.Vec3{X: 3.2, Y: -50, Z: 27}, FaceBottom, 7, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBox(t, 100, 10)
			b.RecordHit(tt.hitX, tt.hitY, tt.hitZ, tt.point, color.Red)

			if got := b.DecalCount(tt.face); got != 8 {
				t.Fatalf("expected 8 decals on %s, got %d (total %d)", tt.face, got, len(b.Decals()))
			}

			r, c := tt.wantRow, 2*tt.wantC
			want := map[[2]int]bool{
				{r, c}: true, {r, c + 1}: true, {r, c + 2}: true, {r, c + 3}: true,
				{r - 1, c + 1}: true, {r - 1, c + 3}: true,
				{r + 1, c}: true, {r + 1, c + 2}: true,
			}
			for _, d := range b.Decals() {
				if !want[[2]int{d.Row, d.Col}] {
					t.Errorf("unexpected decal at row %d col %d", d.Row, d.Col)
				}
				if d.Color != color.Red {
					t.Errorf("decal color %+v, want opaque red", d.Color)
				}
			}
		})
	}
}

func TestRecordHitClusterAtRowBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		y     float32
		wantN int
	}{
		{"interior row", 10, 0.5, 8},
		{"first row", 10, -49, 6},
		{"last row", 10, 49, 6},
		{"single cell grid", 1, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBox(t, 100, tt.n)
			b.RecordHit(false, false, true, math.Vec3{Y: tt.y, Z: 50}, color.Blue)
			if got := len(b.Decals()); got != tt.wantN {
				t.Errorf("expected %d decals, got %d", tt.wantN, got)
			}
			for _, d := range b.Decals() {
				if d.Row < 0 || d.Row >= tt.n {
					t.Errorf("decal row %d out of range", d.Row)
				}
				if d.Col < 0 || d.Col >= 2*(tt.n+1) {
					t.Errorf("decal col %d out of range", d.Col)
				}
			}
		})
	}
}

func TestRecordHitClampsOutOfRangeCells(t *testing.T) {
	b := newTestBox(t, 100, 10)

	// x beyond the right wall and y beyond the floor, as when a corner is reached
	b.RecordHit(false, false, true, math.Vec3{X: 80, Y: -75, Z: 50}, color.Green)

	for _, d := range b.Decals() {
		if d.Row < 0 || d.Row > 1 {
			t.Errorf("row %d, want clamped to 0 (plus row above)", d.Row)
		}
		if d.Col < 18 || d.Col > 21 {
			t.Errorf("col %d, want cell 9 vertices 18..21", d.Col)
		}
	}
	if got := len(b.Decals()); got != 6 {
		t.Errorf("expected 6 decals for a clamped first-row hit, got %d", got)
	}
}

func TestRecordHitOnWallPlaneOnly(t *testing.T) {
	b := newTestBox(t, 100, 10)

	// The flagged axis coordinate is zero, so no face can be chosen
	b.RecordHit(true, false, false, math.Vec3{X: 0, Y: 10, Z: 10}, color.Red)
	if got := len(b.Decals()); got != 0 {
		t.Errorf("expected no decals, got %d", got)
	}
}

func TestRecordHitForcesFullOpacity(t *testing.T) {
	b := newTestBox(t, 100, 10)
	b.RecordHit(false, false, true, math.Vec3{Z: 50}, color.Red.WithAlpha(0.2))
	for _, d := range b.Decals() {
		if d.Color.A != 1 {
			t.Fatalf("new decal alpha %v, want 1", d.Color.A)
		}
	}
}

func TestDecalLifecycle(t *testing.T) {
	b := newTestBox(t, 100, 10)
	cfg := DefaultConfig()
	surface := &recordingSurface{}

	b.RecordHit(false, false, true, math.Vec3{Z: 50}, color.Red)
	n := int(gomath.Ceil(gomath.Log(float64(cfg.FadeThreshold)) / gomath.Log(float64(cfg.FadeFactor))))

	prev := float32(1)
	for i := 1; i < n; i++ {
		b.RenderFace(surface, math.Identity(), FaceFront)
		if got := b.DecalCount(FaceFront); got != 8 {
			t.Fatalf("after %d renders expected 8 decals, got %d", i, got)
		}
		a := b.Decals()[0].Color.A
		if a > prev {
			t.Fatalf("alpha increased from %v to %v", prev, a)
		}
		prev = a
	}

	b.RenderFace(surface, math.Identity(), FaceFront)
	if got := b.DecalCount(FaceFront); got != 0 {
		t.Errorf("after %d renders expected decals to be purged, got %d", n, got)
	}

	b.RenderFace(surface, math.Identity(), FaceFront)
	if got := len(b.Decals()); got != 0 {
		t.Errorf("purged decals reappeared: %d", got)
	}
}

func TestRenderFaceOnlyFadesItsOwnDecals(t *testing.T) {
	b := newTestBox(t, 100, 10)
	surface := &recordingSurface{}

	b.RecordHit(false, false, true, math.Vec3{Z: 50}, color.Red)
	b.RecordHit(false, true, false, math.Vec3{Y: 50}, color.Blue)

	b.RenderFace(surface, math.Identity(), FaceFront)

	for _, d := range b.Decals() {
		switch d.Face {
		case FaceFront:
			if d.Color.A >= 1 {
				t.Errorf("front decal did not fade: %v", d.Color.A)
			}
		case FaceTop:
			if d.Color.A != 1 {
				t.Errorf("top decal faded while rendering front: %v", d.Color.A)
			}
		}
	}
}

func TestRenderFaceDrawSequence(t *testing.T) {
	const n = 4
	b := newTestBox(t, 100, n)
	surface := &recordingSurface{}

	b.RecordHit(false, false, true, math.Vec3{X: 1, Y: 1, Z: 50}, color.Red)
	b.RenderFace(surface, math.Identity(), FaceFront)

	calls := surface.calls
	if len(calls) != 2*n+2 {
		t.Fatalf("expected %d calls, got %d", 2*n+2, len(calls))
	}
	if calls[0].kind != "depth" || calls[0].depth {
		t.Errorf("first call should disable depth test, got %+v", calls[0].kind)
	}
	if last := calls[len(calls)-1]; last.kind != "depth" || !last.depth {
		t.Errorf("last call should re-enable depth test")
	}
	for i := 1; i <= n; i++ {
		if calls[i].kind != "strip" {
			t.Errorf("call %d = %s, want strip", i, calls[i].kind)
		}
		if calls[n+i].kind != "wire" {
			t.Errorf("call %d = %s, want wire", n+i, calls[n+i].kind)
		}
	}

	// Cell (2, 2): decals at row 2 vertices 4..7, row 1 vertices 5 and 7, row 3 vertices 4 and 6
	lit := map[[2]int]bool{
		{2, 4}: true, {2, 5}: true, {2, 6}: true, {2, 7}: true,
		{1, 5}: true, {1, 7}: true,
		{3, 4}: true, {3, 6}: true,
	}
	for row, call := range surface.byKind("strip") {
		for col, v := range call.vertices {
			if lit[[2]int{row, col}] {
				if v.Color != color.Red {
					t.Errorf("strip row %d vertex %d color %+v, want opaque red", row, col, v.Color)
				}
			} else if v.Color != color.Transparent {
				t.Errorf("strip row %d vertex %d color %+v, want transparent", row, col, v.Color)
			}
		}
	}

	wire := DefaultConfig().WireframeColor
	for row, call := range surface.byKind("wire") {
		for col, v := range call.vertices {
			if v.Color != wire {
				t.Errorf("wire row %d vertex %d color %+v, want %+v", row, col, v.Color, wire)
			}
		}
	}
}

func TestRenderDrawsAllFaces(t *testing.T) {
	const n = 3
	b := newTestBox(t, 10, n)
	surface := &recordingSurface{}

	b.Render(surface, math.Identity())

	if got := len(surface.byKind("strip")); got != NumFaces*n {
		t.Errorf("expected %d strips, got %d", NumFaces*n, got)
	}
	if got := len(surface.byKind("wire")); got != NumFaces*n {
		t.Errorf("expected %d wireframe rows, got %d", NumFaces*n, got)
	}
}

func TestOverlappingDecalsLastWins(t *testing.T) {
	b := newTestBox(t, 100, 10)
	surface := &recordingSurface{}

	p := math.Vec3{X: 1, Y: 1, Z: 50}
	b.RecordHit(false, false, true, p, color.Red)
	b.RecordHit(false, false, true, p, color.Blue)
	if got := len(b.Decals()); got != 16 {
		t.Fatalf("overlapping hits should not merge: expected 16 decals, got %d", got)
	}

	b.RenderFace(surface, math.Identity(), FaceFront)

	strips := surface.byKind("strip")
	if got := strips[5].vertices[10].Color; got != color.Blue {
		t.Errorf("shared vertex color %+v, want the later blue decal", got)
	}
}

func TestPlacementMatchesHitCells(t *testing.T) {
	const side, n = 100, 10
	cell := float32(side / n)
	b := newTestBox(t, side, n)

	tests := []struct {
		name       string
		hitX, hitY bool
		hitZ       bool
		point      math.Vec3
		face       Face
		fixedAxis  int
	}{
		{"front", false, false, true, math.Vec3{X: 3.2, Y: -10.1, Z: 50}, FaceFront, 2},
		{"back", false, false, true, math.Vec3{X: -33, Y: 41, Z: -50}, FaceBack, 2},
		{"right", true, false, false, math.Vec3{X: 50, Y: -10.1, Z: 27}, FaceRight, 0},
		{"left", true, false, false, math.Vec3{X: -50, Y: 12, Z: -44}, FaceLeft, 0},
		{"top", false, true, false, math.Vec3{X: 3.2, Y: 50, Z: 27}, FaceTop, 1},
		{"bottom", false, true, false, math.Vec3{X: -18, Y: -50, Z: 6}, FaceBottom, 1},
	}

	const eps = 0.001
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.decals = nil
			b.RecordHit(tt.hitX, tt.hitY, tt.hitZ, tt.point, color.Red)

			// The first decal is the cell's lower-left vertex
			d := b.Decals()[0]
			local := b.faces[d.Face][d.Row].Vertices[d.Col].Position
			world := b.Placement(d.Face).TransformVec3(local)

			for axis := 0; axis < 3; axis++ {
				w, p := world.Axis(axis), tt.point.Axis(axis)
				if axis == tt.fixedAxis {
					if gomath.Abs(float64(w-p)) > eps {
						t.Errorf("axis %d: vertex at %v, want on wall %v", axis, w, p)
					}
					continue
				}
				if p < w-eps || p > w+cell+eps {
					t.Errorf("axis %d: point %v outside cell starting at %v", axis, p, w)
				}
			}
		})
	}
}

func TestFaceString(t *testing.T) {
	if FaceTop.String() != "top" || Face(42).String() != "unknown" {
		t.Error("unexpected face names")
	}
}
