/*
NAME
  bitmap.go

DESCRIPTION
  The RGBA8888 pixel buffer used by Canvas, the DRCS rasterizer, and the
  region/renderer core, plus conversions to and from caption.Image.

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

// alignedTo is the stride alignment in bytes, matching the reference
// decoder's Bitmap::kAlignedTo.
const alignedTo = 32

// NewBitmap allocates a width x height RGBA8888 bitmap whose row stride is
// padded up to a multiple of alignedTo bytes. Pixel bytes are straight
// (non-premultiplied) R,G,B,A in that order; callers must not run it
// through image/draw or any stdlib code that assumes alpha-premultiplied
// image.RGBA semantics -- only the Pix/Stride/Rect fields are used here as
// a plain byte-buffer substrate.
func NewBitmap(width, height int) *image.RGBA {
	stride := width * 4
	if rem := stride % alignedTo; rem != 0 {
		stride += alignedTo - rem
	}
	return &image.RGBA{
		Pix:    make([]byte, stride*height),
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// BitmapToImage converts bmp into a caption.Image, transferring ownership
// of its pixel buffer.
func BitmapToImage(bmp *image.RGBA) caption.Image {
	return caption.Image{
		Width:  bmp.Rect.Dx(),
		Height: bmp.Rect.Dy(),
		Stride: bmp.Stride,
		Pixels: bmp.Pix,
	}
}

// ImageToBitmap converts a caption.Image back into a bitmap, transferring
// ownership of its pixel buffer.
func ImageToBitmap(img caption.Image) *image.RGBA {
	return &image.RGBA{
		Pix:    img.Pixels,
		Stride: img.Stride,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// pixelOffset returns the byte offset of pixel (x, y) within bmp's Pix.
func pixelOffset(bmp *image.RGBA, x, y int) int {
	return y*bmp.Stride + x*4
}

func getPixel(bmp *image.RGBA, x, y int) caption.Color {
	o := pixelOffset(bmp, x, y)
	p := bmp.Pix[o : o+4 : o+4]
	return caption.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func setPixel(bmp *image.RGBA, x, y int, c caption.Color) {
	o := pixelOffset(bmp, x, y)
	p := bmp.Pix[o : o+4 : o+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}
