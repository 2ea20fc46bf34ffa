/*
NAME
  drcs.go

DESCRIPTION
  Rescales and recolors a DRCS packed pixel grid into a bitmap, with an
  optional four-direction stroke halo.

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

// DrawDRCS rescales drcs to (targetWidth, targetHeight) and draws it onto
// target at (x, y), colored textColor, with an optional stroke halo when
// style carries CharStyleStroke. It returns false if drcs has no pixels.
func DrawDRCS(drcs caption.DRCS, style caption.CharStyle, textColor, strokeColor caption.Color,
	strokeWidth, targetWidth, targetHeight int, target *image.RGBA, x, y int) bool {
	if drcs.Width == 0 || drcs.Height == 0 || len(drcs.Pixels) == 0 {
		return false
	}

	canvas := NewCanvas(target)

	if style&caption.CharStyleStroke != 0 {
		strokeBitmap := drcsToColoredBitmap(drcs, targetWidth, targetHeight, strokeColor)
		canvas.DrawBitmapAt(strokeBitmap, x-strokeWidth, y)
		canvas.DrawBitmapAt(strokeBitmap, x+strokeWidth, y)
		canvas.DrawBitmapAt(strokeBitmap, x, y-strokeWidth)
		canvas.DrawBitmapAt(strokeBitmap, x, y+strokeWidth)
	}

	textBitmap := drcsToColoredBitmap(drcs, targetWidth, targetHeight, textColor)
	canvas.DrawBitmapAt(textBitmap, x, y)

	return true
}

// drcsToColoredBitmap nearest-neighbor-rescales drcs's packed bitplane to
// (targetWidth, targetHeight), expanding each pixel value to a grey level
// and using it as color's alpha.
func drcsToColoredBitmap(drcs caption.DRCS, targetWidth, targetHeight int, color caption.Color) *image.RGBA {
	bitmap := NewBitmap(targetWidth, targetHeight)

	xFraction := float32(drcs.Width) / float32(targetWidth)
	yFraction := float32(drcs.Height) / float32(targetHeight)

	for y := 0; y < targetHeight; y++ {
		drcsY := int(yFraction * float32(y))
		for x := 0; x < targetWidth; x++ {
			drcsX := int(xFraction * float32(x))

			pixelIndex := (drcsY*drcs.Width + drcsX) * drcs.DepthBits
			byteIndex := pixelIndex / 8
			bitOffset := pixelIndex % 8

			b := drcs.Pixels[byteIndex]
			value := (b >> (8 - (bitOffset + drcs.DepthBits))) & byte(drcs.Depth-1)
			grey := clamp255(uint32(255) * uint32(value) / uint32(drcs.Depth-1))

			if grey == 0 {
				setPixel(bitmap, x, y, caption.Color{})
				continue
			}
			alpha := (uint32(grey) * uint32(color.A)) >> 8
			setPixel(bitmap, x, y, caption.Color{R: color.R, G: color.G, B: color.B, A: uint8(alpha)})
		}
	}

	return bitmap
}
