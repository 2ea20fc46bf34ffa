/*
NAME
  renderer.go

DESCRIPTION
  RendererCore is the caption renderer (C8): it stores decoded captions
  keyed by PTS, resolves which caption is visible at a queried PTS, lays
  the caption's regions out into the target video frame via RegionRenderer
  (C7), and caches the last successful render.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import (
	"errors"
	"math"
	"sort"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/utils/logging"
)

// RenderStatus is the four-way outcome of a Render/TryRender call.
type RenderStatus int

const (
	RenderStatusError RenderStatus = iota
	RenderStatusNoImage
	RenderStatusGotImage
	RenderStatusGotImageUnchanged
)

func (s RenderStatus) String() string {
	switch s {
	case RenderStatusError:
		return "error"
	case RenderStatusNoImage:
		return "no image"
	case RenderStatusGotImage:
		return "got image"
	case RenderStatusGotImageUnchanged:
		return "got image unchanged"
	default:
		return "unknown"
	}
}

// StoragePolicy selects how RendererCore prunes its caption store on
// every append.
type StoragePolicy int

const (
	// StoragePolicyMinimum erases every caption strictly before the
	// last-rendered one.
	StoragePolicyMinimum StoragePolicy = iota
	// StoragePolicyUnlimited never prunes.
	StoragePolicyUnlimited
	// StoragePolicyUpperLimitCount retains at most N captions by pts.
	StoragePolicyUpperLimitCount
	// StoragePolicyUpperLimitDuration erases captions older than D
	// milliseconds relative to the most recent stored pts.
	StoragePolicyUpperLimitDuration
)

var errFrameSizeNotSet = errors.New("render: frame size / margins not set")

// RenderResult is the filled-in output of Render: the selected caption's
// pts/duration and the positioned images produced for it.
type RenderResult struct {
	PTS      int64
	Duration int64
	Images   []caption.Image
}

// captionEntry is one (pts, Caption) pair in the ordered caption store.
type captionEntry struct {
	pts     int64
	caption caption.Caption
}

// RendererCore is the top-level caption renderer (C8). It is not safe for
// concurrent use; the caller serializes calls to one instance.
type RendererCore struct {
	log logging.Logger

	region *RegionRenderer

	// captions is kept sorted ascending by pts -- Go has no built-in
	// ordered map, so the sorted-slice-plus-binary-search shape stands in
	// for the reference decoder's std::map<int64_t, Caption>.
	captions []captionEntry

	languageFontFamily     map[uint32][]string
	forceDefaultFontFamily bool
	forceNoRuby            bool
	mergeRegionImages      bool

	frameWidth, frameHeight int
	frameSizeInited         bool

	marginTop, marginBottom, marginLeft, marginRight int
	videoAreaStartX, videoAreaStartY                 int
	videoAreaWidth, videoAreaHeight                  int
	marginsInited                                     bool

	storagePolicy      StoragePolicy
	upperLimitCount    int
	upperLimitDuration int64

	hasPrevRendered        bool
	prevRenderedPTS         int64
	prevRenderedDuration    int64
	prevRenderedImages      []caption.Image
}

// NewRendererCore creates a RendererCore. A nil logger discards all log
// output.
func NewRendererCore(log logging.Logger, fontProvider FontProvider, textRenderer TextRenderer) *RendererCore {
	if log == nil {
		log = nopLogger{}
	}
	r := &RendererCore{
		log:                log,
		region:             NewRegionRenderer(log, fontProvider, textRenderer),
		languageFontFamily: make(map[uint32][]string),
		storagePolicy:      StoragePolicyMinimum,
		prevRenderedPTS:    caption.PTSNoPTS,
	}
	r.loadDefaultFontFamilies()
	return r
}

func (r *RendererCore) loadDefaultFontFamilies() {
	r.languageFontFamily[0] = []string{"sans-serif"}
	r.languageFontFamily[threeCC("jpn")] = []string{
		"Noto Sans CJK JP", "Noto Sans CJK", "Source Han Sans JP", "sans-serif",
	}
	r.languageFontFamily[threeCC("por")] = []string{"sans-serif"}
	r.languageFontFamily[threeCC("spa")] = []string{"sans-serif"}
}

func threeCC(s string) uint32 {
	return uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2])
}

// SetFontFamily forwards to the region renderer.
func (r *RendererCore) SetFontFamily(familyNames []string) bool {
	return r.region.SetFontFamily(familyNames)
}

// SetStrokeWidth sets C7's stroke halo width, in plane dots, and
// invalidates the render cache.
func (r *RendererCore) SetStrokeWidth(dots float32) {
	r.region.SetStrokeWidth(dots)
	r.invalidate()
}

// SetReplaceDRCS toggles DRCS-to-Unicode substitution and invalidates the
// render cache.
func (r *RendererCore) SetReplaceDRCS(replace bool) {
	r.region.SetReplaceDRCS(replace)
	r.invalidate()
}

// SetForceStrokeText forces every char to render with a stroke outline
// and invalidates the render cache.
func (r *RendererCore) SetForceStrokeText(force bool) {
	r.region.SetForceStrokeText(force)
	r.invalidate()
}

// SetForceNoRuby skips ruby regions entirely and invalidates the render
// cache.
func (r *RendererCore) SetForceNoRuby(force bool) {
	r.forceNoRuby = force
	r.invalidate()
}

// SetForceNoBackground skips per-cell background fills and invalidates
// the render cache.
func (r *RendererCore) SetForceNoBackground(force bool) {
	r.region.SetForceNoBackground(force)
	r.invalidate()
}

// SetMergeRegionImages toggles compositing all of a caption's region
// images into a single bitmap; invalidates the cache only on a real
// change.
func (r *RendererCore) SetMergeRegionImages(merge bool) {
	if r.mergeRegionImages != merge {
		r.mergeRegionImages = merge
		r.invalidate()
	}
}

// SetDefaultFontFamily sets the fallback font family used for any
// language without a specific entry. forceDefault, if true, makes every
// caption use this family regardless of its language.
func (r *RendererCore) SetDefaultFontFamily(familyNames []string, forceDefault bool) bool {
	r.forceDefaultFontFamily = forceDefault
	return r.SetLanguageSpecificFontFamily(0, familyNames)
}

// SetLanguageSpecificFontFamily sets the font family list used for
// captions whose ISO 639-2 code is languageCode.
func (r *RendererCore) SetLanguageSpecificFontFamily(languageCode uint32, familyNames []string) bool {
	if len(familyNames) == 0 {
		return false
	}
	r.languageFontFamily[languageCode] = familyNames
	r.invalidate()
	return true
}

// SetFrameSize sets the target video frame's pixel dimensions and
// invalidates the render cache on a real change. The current margins are
// re-applied to the new frame size.
func (r *RendererCore) SetFrameSize(frameWidth, frameHeight int) bool {
	if frameWidth < 0 || frameHeight < 0 {
		return false
	}
	if r.frameWidth != frameWidth || r.frameHeight != frameHeight {
		r.invalidate()
	}
	r.frameWidth, r.frameHeight = frameWidth, frameHeight
	r.frameSizeInited = true
	return r.SetMargins(r.marginTop, r.marginBottom, r.marginLeft, r.marginRight)
}

// SetMargins sets the caption-area margins within the frame. SetFrameSize
// must be called first.
func (r *RendererCore) SetMargins(top, bottom, left, right int) bool {
	if !r.frameSizeInited {
		return false
	}
	videoWidth := r.frameWidth - left - right
	videoHeight := r.frameHeight - top - bottom
	if videoWidth < 0 || videoHeight < 0 {
		r.log.Error("renderer: invalid margins, video area size would be negative")
		return false
	}
	if r.marginTop != top || r.marginBottom != bottom || r.marginLeft != left || r.marginRight != right {
		r.invalidate()
	}
	r.videoAreaWidth, r.videoAreaHeight = videoWidth, videoHeight
	r.videoAreaStartX, r.videoAreaStartY = left, top
	r.marginTop, r.marginBottom, r.marginLeft, r.marginRight = top, bottom, left, right
	r.marginsInited = true
	return true
}

// SetStoragePolicy selects the caption store's pruning policy. upperLimit
// is the count (StoragePolicyUpperLimitCount) or duration in ms
// (StoragePolicyUpperLimitDuration); ignored otherwise.
func (r *RendererCore) SetStoragePolicy(policy StoragePolicy, upperLimit int64) {
	r.storagePolicy = policy
	switch policy {
	case StoragePolicyUpperLimitCount:
		r.upperLimitCount = int(upperLimit)
	case StoragePolicyUpperLimitDuration:
		r.upperLimitDuration = upperLimit
	}
}

// findInsertIndex returns the index of the first stored entry with
// pts >= target (sort.Search's lower_bound).
func (r *RendererCore) findInsertIndex(target int64) int {
	return sort.Search(len(r.captions), func(i int) bool { return r.captions[i].pts >= target })
}

// AppendCaption inserts cap into the caption store, keyed by cap.PTS. It
// returns false if cap has no pts or a non-positive plane size. A late
// insert may retroactively shorten an earlier indefinite-duration
// caption and/or invalidate the render cache, per §5's ordering
// guarantees.
func (r *RendererCore) AppendCaption(cap caption.Caption) bool {
	if cap.PTS == caption.PTSNoPTS || cap.PlaneWidth <= 0 || cap.PlaneHeight <= 0 {
		return false
	}

	pts := cap.PTS
	idx := r.findInsertIndex(pts)

	if idx > 0 {
		prev := &r.captions[idx-1]
		if prev.pts < pts && prev.caption.WaitDuration == caption.DurationIndefinite {
			prev.caption.WaitDuration = pts - prev.pts
		}
	}

	if idx < len(r.captions) && r.captions[idx].pts == pts {
		r.captions[idx] = captionEntry{pts: pts, caption: cap}
	} else {
		r.captions = append(r.captions, captionEntry{})
		copy(r.captions[idx+1:], r.captions[idx:])
		r.captions[idx] = captionEntry{pts: pts, caption: cap}
	}

	if pts <= r.prevRenderedPTS {
		r.invalidate()
	}

	r.cleanupCaptions()
	return true
}

func (r *RendererCore) cleanupCaptions() {
	switch r.storagePolicy {
	case StoragePolicyUnlimited:
		return
	case StoragePolicyMinimum:
		if !r.hasPrevRendered {
			return
		}
		idx := r.findInsertIndex(r.prevRenderedPTS)
		if idx < len(r.captions) && r.captions[idx].pts == r.prevRenderedPTS {
			r.captions = r.captions[idx:]
		}
	case StoragePolicyUpperLimitCount:
		if len(r.captions) <= r.upperLimitCount {
			return
		}
		r.captions = r.captions[len(r.captions)-r.upperLimitCount:]
	case StoragePolicyUpperLimitDuration:
		if len(r.captions) == 0 {
			return
		}
		lastPTS := r.captions[len(r.captions)-1].pts
		eraseEndPTS := lastPTS - r.upperLimitDuration
		idx := r.findInsertIndex(eraseEndPTS)
		if idx > 0 {
			r.captions = r.captions[idx:]
		}
	}
}

// selectCaption returns the caption visible at pts, or false if none is.
func (r *RendererCore) selectCaption(pts int64) (*caption.Caption, bool) {
	if len(r.captions) == 0 {
		return nil, false
	}
	idx := r.findInsertIndex(pts)
	if idx == len(r.captions) || r.captions[idx].pts > pts {
		idx--
	}
	if idx < 0 {
		return nil, false
	}
	cap := &r.captions[idx].caption
	if pts < cap.PTS || (cap.WaitDuration != caption.DurationIndefinite && pts >= cap.PTS+cap.WaitDuration) {
		return nil, false
	}
	if len(cap.Regions) == 0 {
		return nil, false
	}
	return cap, true
}

// TryRender reports what Render(pts) would return without producing
// images.
func (r *RendererCore) TryRender(pts int64) RenderStatus {
	if !r.frameSizeInited || !r.marginsInited {
		return RenderStatusError
	}
	cap, ok := r.selectCaption(pts)
	if !ok {
		return RenderStatusNoImage
	}
	if r.hasPrevRendered && r.prevRenderedPTS == cap.PTS {
		if len(r.prevRenderedImages) > 0 {
			return RenderStatusGotImageUnchanged
		}
		return RenderStatusNoImage
	}
	return RenderStatusGotImage
}

// Render resolves the caption visible at pts, rasterizes its regions
// (reusing the cached result when the same caption is still selected),
// and fills out.
func (r *RendererCore) Render(pts int64, out *RenderResult) RenderStatus {
	out.PTS, out.Duration, out.Images = 0, 0, nil

	if !r.frameSizeInited || !r.marginsInited {
		return RenderStatusError
	}

	cap, ok := r.selectCaption(pts)
	if !ok {
		r.invalidate()
		return RenderStatusNoImage
	}

	if r.hasPrevRendered && r.prevRenderedPTS == cap.PTS {
		if len(r.prevRenderedImages) > 0 {
			out.PTS, out.Duration, out.Images = r.prevRenderedPTS, r.prevRenderedDuration, r.prevRenderedImages
			return RenderStatusGotImageUnchanged
		}
		r.invalidate()
		return RenderStatusNoImage
	}

	r.region.SetFontLanguage(cap.ISO6392LanguageCode)

	languageCode := cap.ISO6392LanguageCode
	if r.forceDefaultFontFamily {
		languageCode = 0
	} else if _, ok := r.languageFontFamily[languageCode]; !ok {
		languageCode = 0
	}
	r.region.SetFontFamily(r.languageFontFamily[languageCode])

	r.adjustCaptionArea(cap.PlaneWidth, cap.PlaneHeight)

	var images []caption.Image
	for _, region := range cap.Regions {
		if region.IsRuby && r.forceNoRuby {
			continue
		}
		image, err := r.region.RenderCaptionRegion(region, cap.DRCSMap)
		if err == nil {
			images = append(images, image)
		} else if errors.Is(err, ErrImageTooSmall) {
			continue
		} else {
			r.log.Error("renderer: RenderCaptionRegion failed", "err", err)
			r.invalidate()
			return RenderStatusError
		}
	}

	if r.mergeRegionImages && len(images) > 1 {
		images = []caption.Image{MergeImages(images)}
	}

	r.hasPrevRendered = true
	r.prevRenderedPTS = cap.PTS
	r.prevRenderedDuration = cap.WaitDuration
	r.prevRenderedImages = images

	out.PTS, out.Duration, out.Images = cap.PTS, cap.WaitDuration, images
	return RenderStatusGotImage
}

// MergeImages composes images onto a single bitmap spanning their
// combined bounding rect, blending in declaration order -- identical to
// blending them onto the same framebuffer individually.
func MergeImages(images []caption.Image) caption.Image {
	if len(images) == 0 {
		return caption.Image{}
	}

	rect := Rect{Left: images[0].DstX, Top: images[0].DstY, Right: images[0].DstX, Bottom: images[0].DstY}
	for _, img := range images {
		rect.Include(img.DstX, img.DstY)
		rect.Include(img.DstX+img.Width-1, img.DstY+img.Height-1)
	}

	bitmap := NewBitmap(rect.Width(), rect.Height())
	canvas := NewCanvas(bitmap)

	for _, img := range images {
		x := img.DstX - rect.Left
		y := img.DstY - rect.Top
		canvas.DrawBitmapAt(ImageToBitmap(img), x, y)
	}

	merged := BitmapToImage(bitmap)
	merged.DstX, merged.DstY = rect.Left, rect.Top
	return merged
}

func (r *RendererCore) adjustCaptionArea(originPlaneWidth, originPlaneHeight int) {
	xMag := float64(r.videoAreaWidth) / float64(originPlaneWidth)
	yMag := float64(r.videoAreaHeight) / float64(originPlaneHeight)
	mag := math.Min(xMag, yMag)

	captionAreaWidth := int(math.Floor(float64(originPlaneWidth) * mag))
	captionAreaHeight := int(math.Floor(float64(originPlaneHeight) * mag))
	// Centered within the video area, which starts at the left/top margins,
	// so the rect is in frame coordinates.
	captionAreaStartX := r.videoAreaStartX + (r.videoAreaWidth-captionAreaWidth)/2
	captionAreaStartY := r.videoAreaStartY + (r.videoAreaHeight-captionAreaHeight)/2

	r.region.SetOriginalPlaneSize(originPlaneWidth, originPlaneHeight)
	r.region.SetTargetCaptionAreaRect(Rect{
		Left: captionAreaStartX, Top: captionAreaStartY,
		Right: captionAreaStartX + captionAreaWidth, Bottom: captionAreaStartY + captionAreaHeight,
	})
}

// Flush clears the caption store and invalidates the render cache.
func (r *RendererCore) Flush() {
	r.captions = nil
	r.invalidate()
}

func (r *RendererCore) invalidate() {
	r.hasPrevRendered = false
	r.prevRenderedPTS = caption.PTSNoPTS
	r.prevRenderedDuration = 0
	r.prevRenderedImages = nil
}
