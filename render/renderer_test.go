/*
NAME
  renderer_test.go

DESCRIPTION
  Table-driven tests for RendererCore (C8): selection window, cache
  reuse, storage policies, wait-duration propagation, and aspect-fit
  layout.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import (
	"testing"

	"github.com/ausocean/aribcaption/caption"
)

func newTestRenderer(t *testing.T) *RendererCore {
	t.Helper()
	tr := &fakeTextRenderer{}
	r := NewRendererCore(nil, nil, tr)
	if !r.SetFrameSize(1920, 1080) {
		t.Fatal("SetFrameSize failed")
	}
	if !r.SetMargins(0, 0, 0, 0) {
		t.Fatal("SetMargins failed")
	}
	return r
}

func simpleCaption(pts, waitDuration int64) caption.Caption {
	ch := simpleChar(0, 60, 0x3042)
	return caption.Caption{
		PTS:          pts,
		WaitDuration: waitDuration,
		PlaneWidth:   960,
		PlaneHeight:  540,
		Regions: []caption.CaptionRegion{
			{X: 0, Y: 20, Width: ch.SectionWidth(), Height: ch.SectionHeight(), Chars: []caption.CaptionChar{ch}},
		},
		DRCSMap: map[uint32]caption.DRCS{},
	}
}

func TestAppendCaptionRejectsNoPTSOrEmptyPlane(t *testing.T) {
	r := newTestRenderer(t)
	bad := simpleCaption(caption.PTSNoPTS, caption.DurationIndefinite)
	if r.AppendCaption(bad) {
		t.Error("AppendCaption succeeded with PTSNoPTS")
	}
	bad2 := simpleCaption(1000, caption.DurationIndefinite)
	bad2.PlaneWidth = 0
	if r.AppendCaption(bad2) {
		t.Error("AppendCaption succeeded with zero plane width")
	}
}

func TestSelectionWindow(t *testing.T) {
	r := newTestRenderer(t)
	r.AppendCaption(simpleCaption(1000, 500))

	var out RenderResult
	tests := []struct {
		pts  int64
		want RenderStatus
	}{
		{999, RenderStatusNoImage},
		{1000, RenderStatusGotImage},
		{1499, RenderStatusGotImageUnchanged},
		{1500, RenderStatusNoImage},
	}
	for _, tt := range tests {
		status := r.Render(tt.pts, &out)
		if status != tt.want {
			t.Errorf("Render(%d) = %v, want %v", tt.pts, status, tt.want)
		}
	}
}

func TestCacheReuseByteIdentical(t *testing.T) {
	r := newTestRenderer(t)
	r.AppendCaption(simpleCaption(1000, caption.DurationIndefinite))

	var first, second RenderResult
	if status := r.Render(1000, &first); status != RenderStatusGotImage {
		t.Fatalf("first Render status = %v, want GotImage", status)
	}
	if status := r.Render(2000, &second); status != RenderStatusGotImageUnchanged {
		t.Fatalf("second Render status = %v, want GotImageUnchanged", status)
	}
	if len(first.Images) != len(second.Images) {
		t.Fatalf("image count changed: %d vs %d", len(first.Images), len(second.Images))
	}
	for i := range first.Images {
		if string(first.Images[i].Pixels) != string(second.Images[i].Pixels) {
			t.Errorf("image %d pixels differ between cached renders", i)
		}
	}
}

func TestWaitDurationPropagation(t *testing.T) {
	r := newTestRenderer(t)
	r.AppendCaption(simpleCaption(1000, caption.DurationIndefinite))
	r.AppendCaption(simpleCaption(2500, caption.DurationIndefinite))

	if len(r.captions) != 2 {
		t.Fatalf("captions stored = %d, want 2", len(r.captions))
	}
	if got := r.captions[0].caption.WaitDuration; got != 1500 {
		t.Errorf("first caption's WaitDuration = %d, want 1500 (2500-1000)", got)
	}
}

func TestLateInsertInvalidatesCache(t *testing.T) {
	r := newTestRenderer(t)
	r.AppendCaption(simpleCaption(1000, caption.DurationIndefinite))

	var out RenderResult
	if status := r.Render(1000, &out); status != RenderStatusGotImage {
		t.Fatalf("Render status = %v, want GotImage", status)
	}

	r.AppendCaption(simpleCaption(500, 200))

	if status := r.Render(1000, &out); status != RenderStatusGotImage {
		t.Errorf("Render after late insert = %v, want GotImage (cache invalidated)", status)
	}
}

func TestStoragePolicyUpperLimitCount(t *testing.T) {
	r := newTestRenderer(t)
	r.SetStoragePolicy(StoragePolicyUpperLimitCount, 2)

	for _, pts := range []int64{1000, 2000, 3000, 4000} {
		r.AppendCaption(simpleCaption(pts, 500))
		if len(r.captions) > 2 {
			t.Fatalf("after appending pts=%d, store size = %d, want <= 2", pts, len(r.captions))
		}
	}
}

func TestStoragePolicyUpperLimitDuration(t *testing.T) {
	r := newTestRenderer(t)
	r.SetStoragePolicy(StoragePolicyUpperLimitDuration, 1000)

	for _, pts := range []int64{1000, 2000, 3000, 4000} {
		r.AppendCaption(simpleCaption(pts, 500))
	}

	last := r.captions[len(r.captions)-1].pts
	for _, e := range r.captions {
		if last-e.pts > 1000 {
			t.Errorf("caption pts=%d exceeds duration window (last=%d)", e.pts, last)
		}
	}
}

func TestAspectFitLayout(t *testing.T) {
	r := newTestRenderer(t)
	r.AppendCaption(simpleCaption(1000, caption.DurationIndefinite))

	var out RenderResult
	if status := r.Render(1000, &out); status != RenderStatusGotImage {
		t.Fatalf("Render status = %v, want GotImage", status)
	}
	if len(out.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(out.Images))
	}
	// A 960x540 plane fits a 1920x1080 frame at 2x with no offset, so the
	// 40x60 region at (0, 20) lands at (0, 40) sized 80x120.
	img := out.Images[0]
	if img.DstX != 0 || img.DstY != 40 || img.Width != 80 || img.Height != 120 {
		t.Errorf("image at (%d,%d) size %dx%d, want (0,40) size 80x120", img.DstX, img.DstY, img.Width, img.Height)
	}
}
