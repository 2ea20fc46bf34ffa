/*
NAME
  caption.go

DESCRIPTION
  Defines the decoded caption data model: the structures produced by
  package decoder and consumed by package render. The shapes mirror the
  ARIB STD-B24 / ABNT NBR 15606-1 caption object model one-to-one.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the aribcaption-go contributors.
*/

// Package caption defines the data model shared by the ARIB B24 decoder
// and renderer: colors, styled caption characters, DRCS glyphs, regions,
// and the top-level Caption and Image values.
package caption

import "math"

// Color is an 8-bit-per-channel RGBA color in R,G,B,A byte order.
type Color struct {
	R, G, B, A uint8
}

// Uint32 returns a 32-bit little-endian view of c suitable for SIMD-style
// blending, with byte order R,G,B,A (appears as 0xAABBGGRR on LE machines).
func (c Color) Uint32() uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// ColorFromUint32 is the inverse of Color.Uint32.
func ColorFromUint32(u uint32) Color {
	return Color{
		R: uint8(u),
		G: uint8(u >> 8),
		B: uint8(u >> 16),
		A: uint8(u >> 24),
	}
}

// CharStyle is a bit flag set of per-character rendering styles.
type CharStyle uint8

const (
	CharStyleDefault   CharStyle = 0
	CharStyleBold      CharStyle = 1 << 0
	CharStyleItalic    CharStyle = 1 << 1
	CharStyleUnderline CharStyle = 1 << 2
	CharStyleStroke    CharStyle = 1 << 3
)

// EnclosureStyle is a bit flag set of which edges of a character cell carry
// an enclosure (box) stripe.
type EnclosureStyle uint8

const (
	EnclosureStyleNone    EnclosureStyle = 0
	EnclosureStyleTop     EnclosureStyle = 1 << 0
	EnclosureStyleRight   EnclosureStyle = 1 << 1
	EnclosureStyleBottom  EnclosureStyle = 1 << 2
	EnclosureStyleLeft    EnclosureStyle = 1 << 3
	EnclosureStyleDefault                = EnclosureStyleNone
)

// CaptionType distinguishes a normal caption from a superimposed one; the
// numeric values match the ARIB data_identifier byte.
type CaptionType uint8

const (
	CaptionTypeCaption     CaptionType = 0x80
	CaptionTypeSuperimpose CaptionType = 0x81
	CaptionTypeDefault                 = CaptionTypeCaption
)

// CaptionCharType distinguishes a plain text character from a DRCS glyph,
// and a DRCS glyph that was resolved to a known Unicode replacement.
type CaptionCharType uint8

const (
	CaptionCharTypeText CaptionCharType = iota
	CaptionCharTypeDRCS
	CaptionCharTypeDRCSReplaced
	CaptionCharTypeDefault = CaptionCharTypeText
)

// Profile selects the default graphic-set layout and writing-format table:
// full-seg (ProfileA) or one-seg (ProfileC).
type Profile uint8

const (
	ProfileA Profile = iota
	ProfileC
)

// LanguageID selects the first or second language carried in a multi-
// language caption management data group.
type LanguageID uint8

const (
	LanguageIDFirst  LanguageID = 1
	LanguageIDSecond LanguageID = 2
)

// EncodingScheme selects how statement-data bytes are interpreted.
type EncodingScheme uint8

const (
	EncodingSchemeAuto EncodingScheme = iota
	EncodingSchemeARIBJIS
	EncodingSchemeARIBUTF8
	EncodingSchemeABNTLatin
)

// CaptionChar is a single positioned, styled glyph in plane coordinates.
//
// Invariant: a char is rendered in a SectionWidth x SectionHeight cell
// whose top-left corner is (X, Y-SectionHeight()).
type CaptionChar struct {
	Type CaptionCharType

	// Codepoint is the character's Unicode codepoint (UCS-4).
	Codepoint uint32
	// PUACodepoint is the character's Private-Use-Area alternative
	// codepoint, nonzero only for gaiji/additional-symbol characters that
	// have one.
	PUACodepoint uint32
	// DRCSCode is nonzero for DRCS/DRCSReplaced characters; it encodes the
	// DRCS map index in the high 16 bits and the in-map key in the low 16.
	DRCSCode uint32

	X, Y                                 int
	CharWidth, CharHeight                int
	CharHorizontalSpacing                int
	CharVerticalSpacing                  int
	CharHorizontalScale, CharVerticalScale float32

	TextColor   Color
	BackColor   Color
	StrokeColor Color

	Style          CharStyle
	EnclosureStyle EnclosureStyle

	// Text is the UTF-8 encoding of Codepoint (at most 4 bytes).
	Text string
}

// SectionWidth is the floor of (CharWidth+CharHorizontalSpacing)*CharHorizontalScale.
func (c CaptionChar) SectionWidth() int {
	return int(math.Floor(float64(c.CharWidth+c.CharHorizontalSpacing) * float64(c.CharHorizontalScale)))
}

// SectionHeight is the floor of (CharHeight+CharVerticalSpacing)*CharVerticalScale.
func (c CaptionChar) SectionHeight() int {
	return int(math.Floor(float64(c.CharHeight+c.CharVerticalSpacing) * float64(c.CharVerticalScale)))
}

// DRCS is a dynamically redefinable character: a small packed bitmap plus
// an optional resolved Unicode alternative.
type DRCS struct {
	Width, Height int
	Depth         int
	DepthBits     int
	// Pixels holds Width*Height pixel values packed DepthBits bits per
	// pixel, MSB-first, big-endian, row-major.
	Pixels []byte
	// MD5 is the lowercase hex MD5 digest of Pixels.
	MD5 string
	// AlternativeText is the UTF-8 encoding of AlternativeUCS4, if resolved.
	AlternativeText string
	AlternativeUCS4 uint32
}

// CaptionRegion is a run of CaptionChars sharing one line and section
// height, with a bounding box in plane coordinates.
//
// Invariant: all chars in a region share the same Y-SectionHeight() (same
// line) and the same SectionHeight(); consecutive chars tile with no gap
// (next.X == prev.X + prev.SectionWidth()).
type CaptionRegion struct {
	Chars         []CaptionChar
	X, Y          int
	Width, Height int
	IsRuby        bool
}

// Flags is a bit flag set of caption-level signals.
type Flags uint8

const (
	FlagsDefault      Flags = 0
	FlagsClearScreen  Flags = 1 << 0
	FlagsWaitDuration Flags = 1 << 1
)

// Sentinel pts/duration values, matching the ARIB core's PTS_NOPTS and
// DURATION_INDEFINITE constants bit-for-bit (reinterpreted as int64).
const (
	PTSNoPTS           int64 = math.MinInt64
	DurationIndefinite int64 = math.MaxInt64
)

// Caption is one decoded caption: styled text laid out into regions, any
// DRCS glyphs it references, and its presentation timing.
type Caption struct {
	Type  CaptionType
	Flags Flags

	// ISO6392LanguageCode is the ISO 639-2 3-char code packed big-endian,
	// e.g. "jpn" => 0x006A706E.
	ISO6392LanguageCode uint32

	// Text is the concatenated UTF-8 of every non-ruby character.
	Text    string
	Regions []CaptionRegion
	// DRCSMap is keyed by CaptionChar.DRCSCode.
	DRCSMap map[uint32]DRCS

	PTS          int64
	WaitDuration int64
	PlaneWidth   int
	PlaneHeight  int

	HasBuiltinSound bool
	BuiltinSoundID  uint8
}

// Image is a rasterized RGBA8888 overlay positioned in a target frame.
type Image struct {
	Width, Height int
	// Stride is the row pitch in bytes; Stride >= Width*4, aligned to 32.
	Stride int
	DstX, DstY int
	Pixels     []byte
}
