/*
NAME
  canvas.go

DESCRIPTION
  Canvas draws rectangles and bitmaps onto a target bitmap with clipping
  and source-over blending.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import (
	"image"

	"github.com/ausocean/aribcaption/caption"
)

// Canvas draws onto a single target bitmap. It holds no state of its own
// beyond the target; it is cheap to create per draw operation.
type Canvas struct {
	bitmap *image.RGBA
}

// NewCanvas returns a Canvas drawing onto target.
func NewCanvas(target *image.RGBA) *Canvas {
	return &Canvas{bitmap: target}
}

func (c *Canvas) bounds() Rect {
	r := c.bitmap.Rect
	return Rect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// ClearColor fills every pixel of the canvas with color, replacing rather
// than blending.
func (c *Canvas) ClearColor(color caption.Color) {
	b := c.bounds()
	for y := b.Top; y < b.Bottom; y++ {
		fillLine(c.bitmap, b.Left, y, b.Width(), color)
	}
}

// ClearRect fills rect, clipped to the canvas bounds, with color.
func (c *Canvas) ClearRect(color caption.Color, rect Rect) {
	clipped := ClipRect(c.bounds(), rect)
	if clipped.Width() <= 0 || clipped.Height() <= 0 {
		return
	}
	for y := clipped.Top; y < clipped.Bottom; y++ {
		fillLine(c.bitmap, clipped.Left, y, clipped.Width(), color)
	}
}

// DrawRect source-over blends color onto rect, clipped to the canvas
// bounds.
func (c *Canvas) DrawRect(fgColor caption.Color, rect Rect) {
	clipped := ClipRect(c.bounds(), rect)
	if clipped.Width() <= 0 || clipped.Height() <= 0 {
		return
	}
	for y := clipped.Top; y < clipped.Bottom; y++ {
		blendColorToLine(c.bitmap, clipped.Left, y, clipped.Width(), fgColor)
	}
}

// DrawBitmap source-over blends bmp onto the canvas such that bmp's own
// (0,0) lands at rect's top-left, clipped to both bmp's and the canvas's
// bounds. bmp must be exactly rect's size.
func (c *Canvas) DrawBitmap(bmp *image.RGBA, rect Rect) {
	clipped := ClipRect(c.bounds(), rect)
	if clipped.Width() <= 0 || clipped.Height() <= 0 {
		return
	}

	clipXOffset := clipped.Left - rect.Left
	clipYOffset := clipped.Top - rect.Top

	for y := clipped.Top; y < clipped.Bottom; y++ {
		srcY := clipYOffset + y - clipped.Top
		blendLine(c.bitmap, clipped.Left, y, bmp, clipXOffset, srcY, clipped.Width())
	}
}

// DrawBitmapAt is DrawBitmap with rect derived from bmp's size placed at
// (targetX, targetY).
func (c *Canvas) DrawBitmapAt(bmp *image.RGBA, targetX, targetY int) {
	w, h := bmp.Rect.Dx(), bmp.Rect.Dy()
	c.DrawBitmap(bmp, Rect{Left: targetX, Top: targetY, Right: targetX + w, Bottom: targetY + h})
}
