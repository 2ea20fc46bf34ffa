/*
NAME
  decoder.go

DESCRIPTION
  Decoder is the ARIB STD-B24 / ABNT NBR 15606-1 caption decoder: a
  byte-oriented state machine that turns an MPEG-TS PES payload into a
  decoded caption.Caption value. See package-level doc comment for the
  overall contract.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the aribcaption-go contributors.
*/

// Package decoder implements the ARIB STD-B24 / ABNT NBR 15606-1
// closed-caption decoder: parsing of the PES payload into data groups and
// data units, and the C0/C1/ESC/CSI control-set interpreter that drives
// the four graphic-set registers, the active-position cursor, and the
// char/region/caption assembly.
//
// A Decoder is not safe for concurrent use; the caller serializes calls to
// a single instance, same as render.RendererCore.
package decoder

import (
	"github.com/pkg/errors"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/codeset"
	"github.com/ausocean/utils/logging"
)

// Status is the three-way outcome of a Decode call.
type Status int

const (
	StatusError Status = iota
	StatusNoCaption
	StatusGotCaption
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusNoCaption:
		return "no caption"
	case StatusGotCaption:
		return "got caption"
	default:
		return "unknown"
	}
}

// languageInfo is one language entry from caption management data.
type languageInfo struct {
	languageID          caption.LanguageID
	dmf                 uint8
	iso6392LanguageCode uint32
	format              uint8
	tcs                 uint8
}

// nopLogger satisfies logging.Logger while discarding everything; used
// when New is given a nil Logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Fatal(string, ...interface{})   {}

// Decoder is one ARIB B24 caption decoder instance.
type Decoder struct {
	log logging.Logger

	requestEncoding caption.EncodingScheme
	activeEncoding  caption.EncodingScheme
	typ             caption.CaptionType
	profile         caption.Profile
	languageID      caption.LanguageID

	replaceMSZFullwidthASCII bool

	languageInfos              []languageInfo
	currentISO6392LanguageCode uint32
	prevDGIGroup               int

	// gX holds the four graphic-set register slots G0..G3.
	gX [4]codeset.Entry
	// gl/gr index into gX, selecting which slot interprets GL/GR bytes.
	gl, gr int

	swf uint8

	captionPlaneWidth, captionPlaneHeight   int
	displayAreaWidth, displayAreaHeight     int
	displayAreaStartX, displayAreaStartY    int
	charWidth, charHeight                   int
	charHorizontalSpacing, charVerticalSpacing int
	charHorizontalScale, charVerticalScale  float32

	activePosInited bool
	activePosX      int
	activePosY      int

	hasUnderline, hasBold, hasItalic, hasStroke bool
	strokeColor                                 caption.Color
	enclosureStyle                               caption.EnclosureStyle

	hasBuiltinSound bool
	builtinSoundID  uint8

	palette   int
	textColor caption.Color
	backColor caption.Color

	// drcsMaps[i] holds DRCS glyphs currently designated to GraphicSet
	// DRCS0+i, keyed by the 1- or 2-byte in-band character code.
	drcsMaps [16]map[uint16]caption.DRCS

	// cap is the Caption currently being assembled by the in-progress
	// Decode call; nil outside of Decode.
	cap *caption.Caption
}

// New creates a Decoder, equivalent to the reference decoder's
// Initialize(). encoding may be caption.EncodingSchemeAuto to defer
// detection to the first management data group.
func New(log logging.Logger, encoding caption.EncodingScheme, typ caption.CaptionType, profile caption.Profile, languageID caption.LanguageID) *Decoder {
	if log == nil {
		log = nopLogger{}
	}
	d := &Decoder{
		log:             log,
		requestEncoding: encoding,
		activeEncoding:  caption.EncodingSchemeARIBJIS,
		typ:             typ,
		profile:         profile,
		languageID:      languageID,
		prevDGIGroup:    -1,
	}
	for i := range d.drcsMaps {
		d.drcsMaps[i] = make(map[uint16]caption.DRCS)
	}
	if encoding != caption.EncodingSchemeAuto {
		d.activeEncoding = encoding
	}
	d.resetInternalState()
	return d
}

// SetEncodingScheme changes the active encoding scheme, re-detecting it
// from known languages when set to Auto. A change of resolved encoding
// forces a full internal state reset.
func (d *Decoder) SetEncodingScheme(encoding caption.EncodingScheme) {
	d.requestEncoding = encoding
	if encoding == caption.EncodingSchemeAuto {
		detected := d.detectEncodingScheme()
		if d.activeEncoding != detected {
			d.activeEncoding = detected
			d.resetInternalState()
		}
		return
	}
	if d.activeEncoding != encoding {
		d.activeEncoding = encoding
		d.resetInternalState()
	}
}

// SetCaptionType changes which data_identifier value Decode expects.
func (d *Decoder) SetCaptionType(t caption.CaptionType) { d.typ = t }

// SetProfile changes the active profile and reapplies the writing-format
// table (not a full reset).
func (d *Decoder) SetProfile(p caption.Profile) {
	d.profile = p
	d.resetWritingFormat()
}

// SwitchLanguage selects which statement-data sub-id Decode accepts.
func (d *Decoder) SwitchLanguage(id caption.LanguageID) {
	if d.languageID != id {
		d.languageID = id
		d.currentISO6392LanguageCode = d.QueryISO6392LanguageCode(id)
	}
}

// SetReplaceMSZFullwidthAlphanumeric toggles substitution of halfwidth
// ASCII for fullwidth ASCII codepoints while under MSZ (1/2 horizontal)
// scale.
func (d *Decoder) SetReplaceMSZFullwidthAlphanumeric(replace bool) {
	d.replaceMSZFullwidthASCII = replace
}

// QueryISO6392LanguageCode returns the ISO 639-2 code last seen for id, or
// 0 if unknown.
func (d *Decoder) QueryISO6392LanguageCode(id caption.LanguageID) uint32 {
	if len(d.languageInfos) == 0 {
		return d.currentISO6392LanguageCode
	}
	index := int(id) - 1
	if index < 0 || index >= len(d.languageInfos) {
		return 0
	}
	return d.languageInfos[index].iso6392LanguageCode
}

// Flush resets the decoder to its post-New state.
func (d *Decoder) Flush() {
	if d.requestEncoding == caption.EncodingSchemeAuto {
		d.activeEncoding = caption.EncodingSchemeARIBJIS
	}
	d.languageInfos = nil
	d.currentISO6392LanguageCode = 0
	d.prevDGIGroup = -1
	d.swf = 0
	for i := range d.drcsMaps {
		d.drcsMaps[i] = make(map[uint16]caption.DRCS)
	}
	d.resetInternalState()
}

// Decode parses one PES payload and, on success, returns the decoded
// Caption. pts is the presentation timestamp in milliseconds to stamp
// onto the result.
func (d *Decoder) Decode(pesData []byte, pts int64) (Status, *caption.Caption) {
	if len(pesData) < 3 {
		d.log.Error("decoder: pes_data size < 3, cannot parse")
		return StatusError, nil
	}

	data := pesData
	dataIdentifier := data[0]
	privateStreamID := data[1]
	pesHeaderLen := int(data[2] & 0x0F)

	if dataIdentifier != 0x80 && dataIdentifier != 0x81 {
		d.log.Error("decoder: invalid data_identifier", "value", dataIdentifier)
		return StatusError, nil
	}
	if dataIdentifier != uint8(d.typ) {
		d.log.Error("decoder: data_identifier mismatch", "found", dataIdentifier, "expected", uint8(d.typ))
		return StatusError, nil
	}
	if privateStreamID != 0xFF {
		d.log.Error("decoder: invalid private_stream_id", "value", privateStreamID)
		return StatusError, nil
	}

	dataGroupBegin := 3 + pesHeaderLen
	if dataGroupBegin+5 > len(data) {
		d.log.Error("decoder: pes_data length insufficient for data_group")
		return StatusError, nil
	}

	dataGroupID := (data[dataGroupBegin] & 0b11111100) >> 2
	dataGroupSize := int(data[dataGroupBegin+3])<<8 | int(data[dataGroupBegin+4])

	if dataGroupSize == 0 {
		return StatusNoCaption, nil
	}
	if dataGroupBegin+5+dataGroupSize > len(data) {
		d.log.Error("decoder: data_group_size exceeds pes_data length")
		return StatusError, nil
	}

	dgiID := dataGroupID & 0x0F
	// dgiGroup deliberately mirrors the reference decoder's literal
	// arithmetic, (data_group_id & 0xF0) >> 8, applied to the already-6-bit
	// data_group_id value. Since data_group_id never exceeds 6 bits, this
	// shift always yields 0 -- see DESIGN.md ("data_group_id retransmission
	// check") for why it's kept rather than "fixed" to >>4.
	dgiGroup := int(dataGroupID&0xF0) >> 8

	d.cap = &caption.Caption{DRCSMap: make(map[uint32]caption.DRCS)}

	var ok bool
	if dgiID == 0 {
		if dgiGroup == d.prevDGIGroup {
			d.cap = nil
			return StatusNoCaption, nil
		}
		d.prevDGIGroup = dgiGroup
		ok = d.parseCaptionManagementData(data[dataGroupBegin+5:dataGroupBegin+5+dataGroupSize])
	} else {
		if dgiID != uint8(d.languageID) {
			d.cap = nil
			return StatusNoCaption, nil
		}
		ok = d.parseCaptionStatementData(data[dataGroupBegin+5 : dataGroupBegin+5+dataGroupSize])
	}

	if !ok {
		d.cap = nil
		return StatusError, nil
	}

	if len(d.cap.Regions) > 0 || d.cap.Flags != caption.FlagsDefault {
		d.cap.Type = d.typ
		d.cap.ISO6392LanguageCode = d.currentISO6392LanguageCode
		d.cap.PlaneWidth = d.captionPlaneWidth
		d.cap.PlaneHeight = d.captionPlaneHeight
		d.cap.HasBuiltinSound = d.hasBuiltinSound
		d.cap.BuiltinSoundID = d.builtinSoundID
		d.cap.PTS = pts
		if d.cap.WaitDuration == 0 {
			d.cap.WaitDuration = caption.DurationIndefinite
		}
		result := d.cap
		d.cap = nil
		return StatusGotCaption, result
	}

	d.cap = nil
	return StatusNoCaption, nil
}

func (d *Decoder) detectEncodingScheme() caption.EncodingScheme {
	encoding := caption.EncodingSchemeARIBJIS
	var hasJPN, hasLatin, hasENG, hasTGL bool
	for _, info := range d.languageInfos {
		switch info.iso6392LanguageCode {
		case threeCC("jpn"):
			hasJPN = true
		case threeCC("por"), threeCC("spa"):
			hasLatin = true
		case threeCC("eng"):
			hasENG = true
		case threeCC("tgl"):
			hasTGL = true
		}
	}
	switch {
	case hasJPN:
		encoding = caption.EncodingSchemeARIBJIS
	case hasLatin:
		encoding = caption.EncodingSchemeABNTLatin
	case hasENG, hasTGL:
		encoding = caption.EncodingSchemeARIBUTF8
	}
	return encoding
}

// threeCC packs a 3-character ISO 639-2 code big-endian, matching the
// encoding used for Caption.ISO6392LanguageCode.
func threeCC(s string) uint32 {
	if len(s) != 3 {
		panic(errors.Errorf("threeCC: %q is not 3 characters", s))
	}
	return uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2])
}

func (d *Decoder) resetGraphicSets() {
	switch {
	case d.activeEncoding == caption.EncodingSchemeABNTLatin:
		d.gX[0] = codeset.Entry{Set: codeset.Alphanumeric, Bytes: 1}
		d.gX[1] = codeset.Entry{Set: codeset.Alphanumeric, Bytes: 1}
		d.gX[2] = codeset.Entry{Set: codeset.LatinExtension, Bytes: 1}
		d.gX[3] = codeset.Entry{Set: codeset.LatinSpecial, Bytes: 1}
	case d.profile == caption.ProfileA:
		d.gX[0] = codeset.Entry{Set: codeset.Kanji, Bytes: 2}
		d.gX[1] = codeset.Entry{Set: codeset.Alphanumeric, Bytes: 1}
		d.gX[2] = codeset.Entry{Set: codeset.Hiragana, Bytes: 1}
		d.gX[3] = codeset.Entry{Set: codeset.Macro, Bytes: 1}
	case d.profile == caption.ProfileC:
		d.gX[0] = codeset.Entry{Set: codeset.DRCS1, Bytes: 1}
		d.gX[1] = codeset.Entry{Set: codeset.Alphanumeric, Bytes: 1}
		d.gX[2] = codeset.Entry{Set: codeset.Kanji, Bytes: 2}
		d.gX[3] = codeset.Entry{Set: codeset.Macro, Bytes: 1}
	}
	d.gl = 0
	d.gr = 2
}

func (d *Decoder) resetWritingFormat() {
	if d.profile == caption.ProfileA {
		switch d.swf {
		case 5: // 1920x1080 horizontal
			d.captionPlaneWidth, d.displayAreaWidth = 1920, 1920
			d.captionPlaneHeight, d.displayAreaHeight = 1080, 1080
			d.charWidth, d.charHeight = 36, 36
			d.charHorizontalSpacing, d.charVerticalSpacing = 4, 24
		case 8: // 960x540 vertical
			d.captionPlaneWidth, d.displayAreaWidth = 960, 960
			d.captionPlaneHeight, d.displayAreaHeight = 540, 540
			d.charWidth, d.charHeight = 36, 36
			d.charHorizontalSpacing, d.charVerticalSpacing = 12, 24
		case 9: // 720x480 horizontal
			d.captionPlaneWidth, d.displayAreaWidth = 720, 720
			d.captionPlaneHeight, d.displayAreaHeight = 480, 480
			d.charWidth, d.charHeight = 36, 36
			d.charHorizontalSpacing, d.charVerticalSpacing = 4, 16
		case 10: // 720x480 vertical
			d.captionPlaneWidth, d.displayAreaWidth = 720, 720
			d.captionPlaneHeight, d.displayAreaHeight = 480, 480
			d.charWidth, d.charHeight = 36, 36
			d.charHorizontalSpacing, d.charVerticalSpacing = 8, 24
		default: // 7: 960x540 horizontal
			d.captionPlaneWidth, d.displayAreaWidth = 960, 960
			d.captionPlaneHeight, d.displayAreaHeight = 540, 540
			d.charWidth, d.charHeight = 36, 36
			d.charHorizontalSpacing, d.charVerticalSpacing = 4, 24
		}
	} else if d.profile == caption.ProfileC {
		d.captionPlaneWidth, d.displayAreaWidth = 320, 320
		d.captionPlaneHeight, d.displayAreaHeight = 180, 180
		d.charWidth, d.charHeight = 18, 18
		d.charHorizontalSpacing, d.charVerticalSpacing = 2, 6
	}

	if d.activeEncoding == caption.EncodingSchemeABNTLatin {
		d.charHorizontalSpacing = 2
		d.charVerticalSpacing = 16
	}
}

func (d *Decoder) resetInternalState() {
	d.resetGraphicSets()
	d.resetWritingFormat()

	d.displayAreaStartX, d.displayAreaStartY = 0, 0
	d.activePosInited = false
	d.activePosX, d.activePosY = 0, 0

	if d.activeEncoding == caption.EncodingSchemeABNTLatin {
		d.charHorizontalScale, d.charVerticalScale = 0.5, 1.0
	} else {
		d.charHorizontalScale, d.charVerticalScale = 1.0, 1.0
	}

	d.hasUnderline, d.hasBold, d.hasItalic, d.hasStroke = false, false, false, false
	d.strokeColor = caption.Color{}
	d.enclosureStyle = caption.EnclosureStyleNone

	d.hasBuiltinSound = false
	d.builtinSoundID = 0

	d.palette = 0
	d.textColor = codeset.B24ColorCLUT[d.palette][7]
	d.backColor = codeset.B24ColorCLUT[d.palette][8]
}
