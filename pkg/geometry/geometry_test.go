package geometry

import (
	"testing"
)

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a    Rect
		b    Rect
		want Rect
	}{
		{
			name: "adjacent runs on one line",
			a:    Rect{X: 0, Y: 0, Width: 30, Height: 10},
			b:    Rect{X: 30, Y: 0, Width: 30, Height: 10},
			want: Rect{X: 0, Y: 0, Width: 60, Height: 10},
		},
		{
			name: "contained",
			a:    Rect{X: 0, Y: 0, Width: 100, Height: 100},
			b:    Rect{X: 10, Y: 10, Width: 20, Height: 20},
			want: Rect{X: 0, Y: 0, Width: 100, Height: 100},
		},
		{
			name: "disjoint diagonal",
			a:    Rect{X: 0, Y: 0, Width: 10, Height: 10},
			b:    Rect{X: 50, Y: 40, Width: 10, Height: 10},
			want: Rect{X: 0, Y: 0, Width: 60, Height: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %+v, want %+v", got, tt.want)
			}
			// Union is symmetric.
			if got := tt.b.Union(tt.a); got != tt.want {
				t.Errorf("Union() reversed = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContainsPoint(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 50, Height: 20}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 35, 20, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner", 60, 30, true},
		{"left of rect", 9.9, 20, false},
		{"below rect", 35, 30.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ContainsPoint(tt.x, tt.y); got != tt.want {
				t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}

	got := r.Scale(1.5)
	want := Rect{X: 15, Y: 30, Width: 45, Height: 60}
	if got != want {
		t.Errorf("Scale(1.5) = %+v, want %+v", got, want)
	}

	// Scaling down then up by the inverse returns the original.
	if back := r.Scale(0.5).Scale(2); back != r {
		t.Errorf("Scale roundtrip = %+v, want %+v", back, r)
	}
}

func TestClampTo(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{
			name: "negative x clamps to zero",
			r:    Rect{X: -10, Y: 5, Width: 50, Height: 20},
			want: Rect{X: 0, Y: 5, Width: 50, Height: 20},
		},
		{
			name: "overflow right clamps to page edge",
			r:    Rect{X: 580, Y: 5, Width: 50, Height: 20},
			want: Rect{X: 550, Y: 5, Width: 50, Height: 20},
		},
		{
			name: "inside stays put",
			r:    Rect{X: 100, Y: 100, Width: 50, Height: 20},
			want: Rect{X: 100, Y: 100, Width: 50, Height: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.ClampTo(600, 800); got != tt.want {
				t.Errorf("ClampTo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampMinSize(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 5, Height: 100}
	got := r.ClampMinSize(20)
	if got.Width != 20 || got.Height != 100 {
		t.Errorf("ClampMinSize(20) = %+v", got)
	}
}

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Error("expected overlap")
	}
	if a.Intersects(Rect{X: 20, Y: 20, Width: 10, Height: 10}) {
		t.Error("expected no overlap")
	}
}
