package mesh

import (
	"testing"

	"github.com/Faultbox/bouncebox/pkg/color"
	"github.com/Faultbox/bouncebox/pkg/math"
)

func TestNewGridLayout(t *testing.T) {
	rows := NewGrid(3, 2, color.White)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	for i, row := range rows {
		if len(row.Vertices) != 8 {
			t.Fatalf("row %d: expected 8 vertices, got %d", i, len(row.Vertices))
		}
		lower := float32(i) * 2
		for j, v := range row.Vertices {
			wantX := float32(j/2) * 2
			wantY := lower
			if j%2 == 1 {
				wantY = lower + 2
			}
			if v.Position != (math.Vec3{X: wantX, Y: wantY}) {
				t.Errorf("row %d vertex %d at %v, want (%v, %v, 0)", i, j, v.Position, wantX, wantY)
			}
			if v.Color != color.White {
				t.Errorf("row %d vertex %d color %+v, want white", i, j, v.Color)
			}
		}
	}
}

func TestStripFillAndSetColor(t *testing.T) {
	rows := NewGrid(2, 1, color.White)
	s := &rows[0]

	s.Fill(color.Transparent)
	s.SetColor(3, color.Red)
	s.SetColor(-1, color.Red)
	s.SetColor(99, color.Red)

	for i, v := range s.Vertices {
		want := color.Transparent
		if i == 3 {
			want = color.Red
		}
		if v.Color != want {
			t.Errorf("vertex %d color %+v, want %+v", i, v.Color, want)
		}
	}
}

func TestNewUVSphere(t *testing.T) {
	s := NewUVSphere(8, 12)

	if want := 9 * 13; len(s.Positions) != want {
		t.Errorf("expected %d positions, got %d", want, len(s.Positions))
	}
	if want := 8 * 12 * 6; len(s.Indices) != want {
		t.Errorf("expected %d indices, got %d", want, len(s.Indices))
	}
	for i, p := range s.Positions {
		if l := p.Length(); l < 0.999 || l > 1.001 {
			t.Fatalf("position %d not on unit sphere: length %v", i, l)
		}
	}
	for _, idx := range s.Indices {
		if int(idx) >= len(s.Positions) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
