/*
NAME
  region_test.go

DESCRIPTION
  Table-driven tests for the region renderer (C7): scale tiling, the
  ImageTooSmall guard, and text/DRCS rendering via fake collaborators.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import (
	"errors"
	"image"
	"testing"

	"github.com/ausocean/aribcaption/caption"
)

// fakeTextRenderer succeeds for every codepoint not listed in missing.
type fakeTextRenderer struct {
	missing map[uint32]bool
	drawn   []uint32
}

func (f *fakeTextRenderer) SetLanguage(uint32)             {}
func (f *fakeTextRenderer) SetFontFamily([]string) bool    { return true }
func (f *fakeTextRenderer) BeginDraw(target *image.RGBA) DrawContext { return target }
func (f *fakeTextRenderer) EndDraw(DrawContext)            {}

func (f *fakeTextRenderer) DrawChar(ctx DrawContext, x, y int, codepoint uint32, style caption.CharStyle,
	color, strokeColor caption.Color, strokeWidth int, charWidth, charHeight int,
	aspectRatio float32, underline *Underline, policy FallbackPolicy) error {
	if f.missing[codepoint] {
		return ErrCodePointNotFound
	}
	f.drawn = append(f.drawn, codepoint)
	return nil
}

func newTestRegionRenderer(tr TextRenderer) *RegionRenderer {
	r := NewRegionRenderer(nil, nil, tr)
	r.SetOriginalPlaneSize(960, 540)
	r.SetTargetCaptionAreaRect(Rect{Left: 0, Top: 0, Right: 960, Bottom: 540})
	return r
}

func simpleChar(x, y int, codepoint uint32) caption.CaptionChar {
	return caption.CaptionChar{
		Type:                caption.CaptionCharTypeText,
		Codepoint:           codepoint,
		X:                   x,
		Y:                   y,
		CharWidth:           36,
		CharHeight:          36,
		CharHorizontalSpacing: 4,
		CharVerticalSpacing:   24,
		CharHorizontalScale:   1.0,
		CharVerticalScale:     1.0,
		TextColor:           caption.Color{R: 255, G: 255, B: 255, A: 255},
		BackColor:           caption.Color{A: 0},
	}
}

func TestScaleTiling(t *testing.T) {
	r := newTestRegionRenderer(&fakeTextRenderer{})
	section := float32(40)
	for _, x0 := range []float32{0, 40, 123, 500} {
		left := r.scaleWidth(section, x0)
		right := r.scaleWidth(section, x0+section)
		whole := r.scaleX(x0+2*section) - r.scaleX(x0)
		if left+right != whole {
			t.Errorf("x0=%v: scaleWidth(s,x0)+scaleWidth(s,x0+s) = %d, want %d", x0, left+right, whole)
		}
	}
}

func TestRenderCaptionRegionTooSmall(t *testing.T) {
	r := newTestRegionRenderer(&fakeTextRenderer{})
	region := caption.CaptionRegion{X: 0, Y: 20, Width: 1, Height: 1}
	_, err := r.RenderCaptionRegion(region, nil)
	if !errors.Is(err, ErrImageTooSmall) {
		t.Fatalf("err = %v, want ErrImageTooSmall", err)
	}
}

func TestRenderCaptionRegionText(t *testing.T) {
	tr := &fakeTextRenderer{missing: map[uint32]bool{}}
	r := newTestRegionRenderer(tr)

	ch := simpleChar(0, 60, 0x3042)
	region := caption.CaptionRegion{
		X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(),
		Chars: []caption.CaptionChar{ch},
	}

	img, err := r.RenderCaptionRegion(region, nil)
	if err != nil {
		t.Fatalf("RenderCaptionRegion() err = %v", err)
	}
	if img.Width <= 0 || img.Height <= 0 {
		t.Fatalf("image dims = %dx%d, want positive", img.Width, img.Height)
	}
	if len(tr.drawn) != 1 || tr.drawn[0] != 0x3042 {
		t.Fatalf("drawn = %v, want [0x3042]", tr.drawn)
	}
}

func TestRenderCaptionRegionPUAFallback(t *testing.T) {
	const primary, pua = 0x7E8A, 0xEC63
	tr := &fakeTextRenderer{missing: map[uint32]bool{primary: true}}
	r := newTestRegionRenderer(tr)

	ch := simpleChar(0, 60, primary)
	ch.PUACodepoint = pua
	region := caption.CaptionRegion{
		X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(),
		Chars: []caption.CaptionChar{ch},
	}

	img, err := r.RenderCaptionRegion(region, nil)
	if err != nil {
		t.Fatalf("RenderCaptionRegion() err = %v", err)
	}
	if img.Width <= 0 {
		t.Fatalf("expected an image to be produced via PUA fallback")
	}
	if len(tr.drawn) != 1 || tr.drawn[0] != pua {
		t.Fatalf("drawn = %v, want fallback to PUA codepoint 0x%X", tr.drawn, pua)
	}
}

func TestRenderCaptionRegionAllCharsFailSurfacesWorstError(t *testing.T) {
	tr := &fakeTextRenderer{missing: map[uint32]bool{0x3042: true}}
	r := newTestRegionRenderer(tr)

	ch := simpleChar(0, 60, 0x3042)
	region := caption.CaptionRegion{
		X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(),
		Chars: []caption.CaptionChar{ch},
	}

	_, err := r.RenderCaptionRegion(region, nil)
	if !errors.Is(err, ErrCodePointNotFound) {
		t.Fatalf("err = %v, want ErrCodePointNotFound", err)
	}
}

func TestRenderCaptionRegionDRCS(t *testing.T) {
	tr := &fakeTextRenderer{}
	r := newTestRegionRenderer(tr)

	ch := simpleChar(0, 60, 0)
	ch.Type = caption.CaptionCharTypeDRCS
	ch.DRCSCode = 0x00010041
	region := caption.CaptionRegion{
		X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(),
		Chars: []caption.CaptionChar{ch},
	}

	drcs := caption.DRCS{
		Width: 2, Height: 2, Depth: 2, DepthBits: 1,
		Pixels: []byte{0b11000000},
	}
	drcsMap := map[uint32]caption.DRCS{ch.DRCSCode: drcs}

	img, err := r.RenderCaptionRegion(region, drcsMap)
	if err != nil {
		t.Fatalf("RenderCaptionRegion() err = %v", err)
	}
	if img.Width <= 0 {
		t.Fatalf("expected DRCS glyph to be rendered")
	}
}

func TestRenderCaptionRegionMissingDRCSIsSkippedNotFatal(t *testing.T) {
	tr := &fakeTextRenderer{}
	r := newTestRegionRenderer(tr)

	ch := simpleChar(0, 60, 0)
	ch.Type = caption.CaptionCharTypeDRCS
	ch.DRCSCode = 0xDEAD
	region := caption.CaptionRegion{
		X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(),
		Chars: []caption.CaptionChar{ch},
	}

	_, err := r.RenderCaptionRegion(region, map[uint32]caption.DRCS{})
	if !errors.Is(err, ErrOther) {
		t.Fatalf("err = %v, want ErrOther (no char succeeded, no specific font error)", err)
	}
}
