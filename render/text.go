/*
NAME
  text.go

DESCRIPTION
  TextRenderer is the pluggable text-shaping/rasterization collaborator
  (C4). Concrete per-platform backends (FreeType+HarfBuzz, CoreText,
  DirectWrite) are out of scope; NullTextRenderer is the in-repo default.

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

// FallbackPolicy controls what DrawChar does when the requested codepoint
// is missing from every candidate font.
type FallbackPolicy int

const (
	// FallbackAuto lets the backend substitute a fallback font/glyph.
	FallbackAuto FallbackPolicy = iota
	// FallbackFailOnCodePointNotFound returns ErrCodePointNotFound instead
	// of substituting, so the caller can retry with an alternative
	// codepoint (the gaiji/PUA dance in region.go).
	FallbackFailOnCodePointNotFound
)

// Underline describes the underline stripe DrawChar should paint, in
// target-bitmap pixel coordinates. A nil *Underline means the char carries
// no CharStyleUnderline.
type Underline struct {
	StartX int
	Width  int
}

// DrawContext is an opaque per-bitmap drawing session returned by
// BeginDraw and threaded through DrawChar/EndDraw calls for that bitmap.
type DrawContext interface{}

// TextRenderer shapes and rasterizes a single Unicode codepoint into a
// target bitmap, driven by the region renderer (C7) once per CaptionChar.
type TextRenderer interface {
	SetLanguage(iso6392LanguageCode uint32)
	SetFontFamily(familyNames []string) bool

	BeginDraw(target *image.RGBA) DrawContext
	// DrawChar rasterizes codepoint at (x, y) in target's coordinates,
	// sized (charWidth, charHeight) with the given aspectRatio, styled per
	// style/color/strokeColor/strokeWidth, with an optional underline.
	DrawChar(ctx DrawContext, x, y int, codepoint uint32, style caption.CharStyle,
		color, strokeColor caption.Color, strokeWidth int, charWidth, charHeight int,
		aspectRatio float32, underline *Underline, policy FallbackPolicy) error
	EndDraw(ctx DrawContext)
}

// NullTextRenderer is the zero-dependency default: every DrawChar fails
// with ErrCodePointNotFound so callers exercise the region renderer's
// fallback and error-propagation paths without a real shaping backend.
type NullTextRenderer struct{}

func (NullTextRenderer) SetLanguage(iso6392LanguageCode uint32)  {}
func (NullTextRenderer) SetFontFamily(familyNames []string) bool { return true }

func (NullTextRenderer) BeginDraw(target *image.RGBA) DrawContext { return target }

func (NullTextRenderer) DrawChar(ctx DrawContext, x, y int, codepoint uint32, style caption.CharStyle,
	color, strokeColor caption.Color, strokeWidth int, charWidth, charHeight int,
	aspectRatio float32, underline *Underline, policy FallbackPolicy) error {
	return ErrCodePointNotFound
}

func (NullTextRenderer) EndDraw(ctx DrawContext) {}
