/*
NAME
  rect.go

DESCRIPTION
  A half-open integer rectangle (right/bottom are exclusive), used
  throughout the render package for clipping and bounding boxes.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

// Rect is a half-open rectangle: [Left, Right) x [Top, Bottom).
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Include grows r to cover (x, y), treating it as occupying one dot.
func (r *Rect) Include(x, y int) {
	if x < r.Left {
		r.Left = x
	}
	if y < r.Top {
		r.Top = y
	}
	if x+1 > r.Right {
		r.Right = x + 1
	}
	if y+1 > r.Bottom {
		r.Bottom = y + 1
	}
}

// ClipRect returns the intersection of a and b.
func ClipRect(a, b Rect) Rect {
	return Rect{
		Left:   max(a.Left, b.Left),
		Top:    max(a.Top, b.Top),
		Right:  min(a.Right, b.Right),
		Bottom: min(a.Bottom, b.Bottom),
	}
}
