// Package geometry provides rectangle math for redaction regions.
// All coordinates are document-native (unscaled) units unless a caller
// explicitly transforms them.
package geometry

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsValid reports whether the rect has positive area.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Area returns width * height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// ContainsPoint reports whether (x, y) lies inside the rect.
// Edges count as inside.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Union returns the smallest rect covering both r and other.
func (r Rect) Union(other Rect) Rect {
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.Right(), other.Right())
	y1 := max(r.Bottom(), other.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Scale returns the rect with all components multiplied by factor.
func (r Rect) Scale(factor float64) Rect {
	return Rect{
		X:      r.X * factor,
		Y:      r.Y * factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	}
}

// ClampTo returns the rect repositioned so it lies fully inside a page
// of the given size. The rect keeps its dimensions; only the origin moves.
func (r Rect) ClampTo(pageWidth, pageHeight float64) Rect {
	out := r
	if out.X < 0 {
		out.X = 0
	}
	if out.Y < 0 {
		out.Y = 0
	}
	if out.X > pageWidth-out.Width {
		out.X = pageWidth - out.Width
	}
	if out.Y > pageHeight-out.Height {
		out.Y = pageHeight - out.Height
	}
	return out
}

// ClampMinSize returns the rect with width/height raised to at least floor.
func (r Rect) ClampMinSize(floor float64) Rect {
	out := r
	if out.Width < floor {
		out.Width = floor
	}
	if out.Height < floor {
		out.Height = floor
	}
	return out
}
