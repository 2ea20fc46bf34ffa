/*
NAME
  region.go

DESCRIPTION
  RegionRenderer is the per-region rasterization pipeline (C7): it scales
  a CaptionRegion's plane coordinates into a target caption area, lays out
  backgrounds/enclosures/text/DRCS per char, and returns one RGBA Image.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import (
	"errors"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/utils/logging"
)

// ErrImageTooSmall is returned when a region's scaled bitmap would be
// smaller than 3x3 dots; RendererCore treats it as "skip this region",
// not a hard failure.
var ErrImageTooSmall = errors.New("render: region image too small")

// RegionRenderer rasterizes one CaptionRegion at a time, parameterized by
// the caption's original plane size and the target caption-area rect
// within the video frame. It is not safe for concurrent use.
type RegionRenderer struct {
	log logging.Logger

	fontProvider FontProvider
	textRenderer TextRenderer

	planeInited            bool
	planeWidth, planeHeight int

	captionAreaInited                                   bool
	captionAreaStartX, captionAreaStartY                int
	captionAreaWidth, captionAreaHeight                 int

	strokeWidth      float32
	replaceDRCS      bool
	forceStrokeText  bool
	forceNoBackground bool

	xMag, yMag float32
}

// NewRegionRenderer creates a RegionRenderer. A nil logger discards all
// log output; a nil fontProvider/textRenderer defaults to
// NullFontProvider/NullTextRenderer.
func NewRegionRenderer(log logging.Logger, fontProvider FontProvider, textRenderer TextRenderer) *RegionRenderer {
	if log == nil {
		log = nopLogger{}
	}
	if fontProvider == nil {
		fontProvider = NullFontProvider{}
	}
	if textRenderer == nil {
		textRenderer = NullTextRenderer{}
	}
	return &RegionRenderer{
		log:          log,
		fontProvider: fontProvider,
		textRenderer: textRenderer,
		strokeWidth:  1.5,
		replaceDRCS:  true,
	}
}

// nopLogger satisfies logging.Logger while discarding everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Fatal(string, ...interface{})   {}

// SetFontLanguage forwards the active language to both collaborators.
func (r *RegionRenderer) SetFontLanguage(iso6392LanguageCode uint32) {
	r.fontProvider.SetLanguage(iso6392LanguageCode)
	r.textRenderer.SetLanguage(iso6392LanguageCode)
}

// SetFontFamily forwards a family-name fallback list to the text renderer.
func (r *RegionRenderer) SetFontFamily(familyNames []string) bool {
	return r.textRenderer.SetFontFamily(familyNames)
}

// SetOriginalPlaneSize records the caption's virtual plane size; both
// plane size and caption area must be set before RenderCaptionRegion.
func (r *RegionRenderer) SetOriginalPlaneSize(planeWidth, planeHeight int) {
	r.planeWidth, r.planeHeight = planeWidth, planeHeight
	r.planeInited = true
	r.recomputeMagnification()
}

// SetTargetCaptionAreaRect records the destination rect (in frame
// coordinates) the plane is scaled into.
func (r *RegionRenderer) SetTargetCaptionAreaRect(rect Rect) {
	r.captionAreaStartX, r.captionAreaStartY = rect.Left, rect.Top
	r.captionAreaWidth, r.captionAreaHeight = rect.Width(), rect.Height()
	r.captionAreaInited = true
	r.recomputeMagnification()
}

func (r *RegionRenderer) recomputeMagnification() {
	if !r.planeInited || !r.captionAreaInited {
		return
	}
	r.xMag = float32(r.captionAreaWidth) / float32(r.planeWidth)
	r.yMag = float32(r.captionAreaHeight) / float32(r.planeHeight)
}

func (r *RegionRenderer) SetStrokeWidth(dots float32) {
	if dots >= 0 {
		r.strokeWidth = dots
	}
}

func (r *RegionRenderer) SetReplaceDRCS(replace bool)       { r.replaceDRCS = replace }
func (r *RegionRenderer) SetForceStrokeText(force bool)     { r.forceStrokeText = force }
func (r *RegionRenderer) SetForceNoBackground(force bool)   { r.forceNoBackground = force }

// scaleX/scaleY/scaleWidth/scaleHeight mirror region_renderer.cpp's
// ScaleX/ScaleY/ScaleWidth/ScaleHeight templates exactly: absolute
// positions floor(v*mag), sizes computed as the difference of two scaled
// absolute positions so adjacent cells tile without gaps (§8 property 8).
func (r *RegionRenderer) scaleX(v float32) int { return int(floorf(v * r.xMag)) }
func (r *RegionRenderer) scaleY(v float32) int { return int(floorf(v * r.yMag)) }

func (r *RegionRenderer) scaleWidth(width, x float32) int {
	return r.scaleX(x+width) - r.scaleX(x)
}

func (r *RegionRenderer) scaleHeight(height, y float32) int {
	return r.scaleY(y+height) - r.scaleY(y)
}

func floorf(v float32) float32 {
	i := int(v)
	if v < 0 && float32(i) != v {
		i--
	}
	return float32(i)
}

// RenderCaptionRegion rasterizes region into one Image, resolving DRCS
// glyphs by CaptionChar.DRCSCode against drcsMap.
func (r *RegionRenderer) RenderCaptionRegion(region caption.CaptionRegion, drcsMap map[uint32]caption.DRCS) (caption.Image, error) {
	bmpW := r.scaleWidth(float32(region.Width), float32(region.X))
	bmpH := r.scaleHeight(float32(region.Height), float32(region.Y))
	if bmpW < 3 || bmpH < 3 {
		return caption.Image{}, ErrImageTooSmall
	}

	bitmap := NewBitmap(bmpW, bmpH)
	canvas := NewCanvas(bitmap)
	drawCtx := r.textRenderer.BeginDraw(bitmap)

	var succeed int
	var hasFontNotFound, hasCodepointNotFound, hasOther bool

	for _, ch := range region.Chars {
		sectionX := r.scaleX(float32(ch.X)) - r.scaleX(float32(region.X))
		sectionY := r.scaleY(float32(ch.Y)) - r.scaleY(float32(region.Y))
		sectionRect := Rect{
			Left: sectionX, Top: sectionY,
			Right:  sectionX + r.scaleWidth(float32(ch.SectionWidth()), float32(ch.X)),
			Bottom: sectionY + r.scaleHeight(float32(ch.SectionHeight()), float32(ch.Y)),
		}
		if sectionRect.Width() < 3 || sectionRect.Height() < 3 {
			continue
		}

		if !r.forceNoBackground {
			canvas.ClearRect(ch.BackColor, sectionRect)
		}

		if ch.EnclosureStyle != caption.EnclosureStyleNone {
			w := max(r.scaleX(1), 1)
			h := max(r.scaleY(1), 1)
			if ch.EnclosureStyle&caption.EnclosureStyleTop != 0 {
				canvas.ClearRect(ch.TextColor, Rect{sectionRect.Left, sectionRect.Top, sectionRect.Right, sectionRect.Top + h})
			}
			if ch.EnclosureStyle&caption.EnclosureStyleBottom != 0 {
				canvas.ClearRect(ch.TextColor, Rect{sectionRect.Left, sectionRect.Bottom - h, sectionRect.Right, sectionRect.Bottom})
			}
			if ch.EnclosureStyle&caption.EnclosureStyleLeft != 0 {
				canvas.ClearRect(ch.TextColor, Rect{sectionRect.Left, sectionRect.Top, sectionRect.Left + w, sectionRect.Bottom})
			}
			if ch.EnclosureStyle&caption.EnclosureStyleRight != 0 {
				canvas.ClearRect(ch.TextColor, Rect{sectionRect.Right - w, sectionRect.Top, sectionRect.Right, sectionRect.Bottom})
			}
		}

		charX := r.scaleX(float32(ch.X-region.X) + float32(ch.CharHorizontalSpacing)*ch.CharHorizontalScale/2)
		charY := r.scaleY(float32(ch.Y-region.Y) + float32(ch.CharVerticalSpacing)*ch.CharVerticalScale/2)
		charWidth := r.scaleWidth(float32(ch.CharWidth)*ch.CharHorizontalScale, 0)
		charHeight := r.scaleHeight(float32(ch.CharHeight)*ch.CharVerticalScale, 0)
		aspectRatio := (float32(ch.CharWidth) * ch.CharHorizontalScale) / (float32(ch.CharHeight) * ch.CharVerticalScale)

		if charWidth < 2 || charHeight < 2 {
			continue
		}

		typ := ch.Type
		style := ch.Style
		strokeColor := ch.StrokeColor
		strokeWidth := r.strokeWidth * r.xMag
		var underline *Underline
		if ch.Style&caption.CharStyleUnderline != 0 {
			underline = &Underline{StartX: sectionRect.Left, Width: sectionRect.Width()}
		}

		if r.forceStrokeText && ch.Style&caption.CharStyleStroke == 0 {
			style |= caption.CharStyleStroke
			strokeColor = ch.BackColor
		}

		if typ == caption.CaptionCharTypeText {
			policy := FallbackAuto
			if ch.PUACodepoint != 0 {
				policy = FallbackFailOnCodePointNotFound
			}
			err := r.textRenderer.DrawChar(drawCtx, charX, charY, ch.Codepoint, style, ch.TextColor, strokeColor,
				int(strokeWidth), charWidth, charHeight, aspectRatio, underline, policy)
			if err == nil {
				succeed++
			} else if errors.Is(err, ErrCodePointNotFound) && ch.PUACodepoint != 0 {
				err = r.textRenderer.DrawChar(drawCtx, charX, charY, ch.PUACodepoint, style, ch.TextColor, strokeColor,
					int(strokeWidth), charWidth, charHeight, aspectRatio, underline, FallbackAuto)
				if errors.Is(err, ErrCodePointNotFound) {
					err = r.textRenderer.DrawChar(drawCtx, charX, charY, ch.Codepoint, style, ch.TextColor, strokeColor,
						int(strokeWidth), charWidth, charHeight, aspectRatio, underline, FallbackAuto)
				}
				if err == nil {
					succeed++
				}
			}
			if err != nil {
				r.log.Error("region: DrawChar failed", "err", err)
				switch {
				case errors.Is(err, ErrFontNotFound):
					hasFontNotFound = true
				case errors.Is(err, ErrCodePointNotFound):
					hasCodepointNotFound = true
				default:
					hasOther = true
				}
			}
		} else if r.replaceDRCS && typ == caption.CaptionCharTypeDRCSReplaced {
			err := r.textRenderer.DrawChar(drawCtx, charX, charY, ch.Codepoint, style, ch.TextColor, strokeColor,
				int(strokeWidth), charWidth, charHeight, aspectRatio, underline, FallbackAuto)
			if err == nil {
				succeed++
			} else {
				if errors.Is(err, ErrCodePointNotFound) {
					r.log.Warning("region: alternative codepoint not found, falling back to DRCS", "codepoint", ch.Codepoint)
					hasCodepointNotFound = true
				} else {
					r.log.Error("region: DrawChar failed", "err", err)
					if errors.Is(err, ErrFontNotFound) {
						hasFontNotFound = true
					} else {
						hasOther = true
					}
				}
				typ = caption.CaptionCharTypeDRCS
			}
		} else if !r.replaceDRCS {
			typ = caption.CaptionCharTypeDRCS
		}

		if typ == caption.CaptionCharTypeDRCS {
			drcs, ok := drcsMap[ch.DRCSCode]
			if !ok {
				r.log.Error("region: missing DRCS", "code", ch.DRCSCode)
				continue
			}
			if DrawDRCS(drcs, style, ch.TextColor, strokeColor, int(strokeWidth), charWidth, charHeight, bitmap, charX, charY) {
				succeed++
			} else {
				r.log.Error("region: DrawDRCS failed")
			}
		}
	}

	r.textRenderer.EndDraw(drawCtx)

	if len(region.Chars) > 0 && succeed == 0 {
		switch {
		case hasFontNotFound:
			return caption.Image{}, ErrFontNotFound
		case hasCodepointNotFound:
			return caption.Image{}, ErrCodePointNotFound
		default:
			_ = hasOther
			return caption.Image{}, ErrOther
		}
	}

	image := BitmapToImage(bitmap)
	image.DstX = r.captionAreaStartX + r.scaleX(float32(region.X))
	image.DstY = r.captionAreaStartY + r.scaleY(float32(region.Y))
	return image, nil
}
