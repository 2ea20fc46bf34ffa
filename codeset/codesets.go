/*
NAME
  codesets.go

DESCRIPTION
  The GraphicSet enumeration, per-set byte widths, and the designator
  F-byte maps used by ESC sequences to assign a graphic set to a G0..G3
  slot.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package codeset

// GraphicSet identifies one of the ARIB graphic sets a G-register slot can
// hold.
type GraphicSet uint8

const (
	Kanji GraphicSet = iota
	Alphanumeric
	LatinExtension
	LatinSpecial
	Hiragana
	Katakana
	MosaicA
	MosaicB
	MosaicC
	MosaicD
	ProportionalAlphanumeric
	ProportionalHiragana
	ProportionalKatakana
	JISX0201Katakana
	JISX02132004Kanji1
	JISX02132004Kanji2
	AdditionalSymbols

	DRCS0
	DRCS1
	DRCS2
	DRCS3
	DRCS4
	DRCS5
	DRCS6
	DRCS7
	DRCS8
	DRCS9
	DRCS10
	DRCS11
	DRCS12
	DRCS13
	DRCS14
	DRCS15
	Macro
)

// Entry pairs a GraphicSet with its code width in bytes (1 or 2).
type Entry struct {
	Set   GraphicSet
	Bytes uint8
}

var (
	kanjiEntry                    = Entry{Kanji, 2}
	alphanumericEntry             = Entry{Alphanumeric, 1}
	latinExtensionEntry           = Entry{LatinExtension, 1}
	latinSpecialEntry             = Entry{LatinSpecial, 1}
	hiraganaEntry                 = Entry{Hiragana, 1}
	katakanaEntry                 = Entry{Katakana, 1}
	mosaicAEntry                  = Entry{MosaicA, 1}
	mosaicBEntry                  = Entry{MosaicB, 1}
	mosaicCEntry                  = Entry{MosaicC, 1}
	mosaicDEntry                  = Entry{MosaicD, 1}
	proportionalAlphanumericEntry = Entry{ProportionalAlphanumeric, 1}
	proportionalHiraganaEntry     = Entry{ProportionalHiragana, 1}
	proportionalKatakanaEntry     = Entry{ProportionalKatakana, 1}
	jisX0201KatakanaEntry         = Entry{JISX0201Katakana, 1}
	jisX02132004Kanji1Entry       = Entry{JISX02132004Kanji1, 2}
	jisX02132004Kanji2Entry       = Entry{JISX02132004Kanji2, 2}
	additionalSymbolsEntry        = Entry{AdditionalSymbols, 2}

	drcs0Entry  = Entry{DRCS0, 2}
	drcs1Entry  = Entry{DRCS1, 1}
	drcs2Entry  = Entry{DRCS2, 1}
	drcs3Entry  = Entry{DRCS3, 1}
	drcs4Entry  = Entry{DRCS4, 1}
	drcs5Entry  = Entry{DRCS5, 1}
	drcs6Entry  = Entry{DRCS6, 1}
	drcs7Entry  = Entry{DRCS7, 1}
	drcs8Entry  = Entry{DRCS8, 1}
	drcs9Entry  = Entry{DRCS9, 1}
	drcs10Entry = Entry{DRCS10, 1}
	drcs11Entry = Entry{DRCS11, 1}
	drcs12Entry = Entry{DRCS12, 1}
	drcs13Entry = Entry{DRCS13, 1}
	drcs14Entry = Entry{DRCS14, 1}
	drcs15Entry = Entry{DRCS15, 1}
	macroEntry  = Entry{Macro, 1}
)

// GCodesetByF maps an ESC designator final byte to the graphic-set entry it
// selects, for the non-DRCS "ESC $ Fn" / "ESC (/)/*/+ Fn" forms.
var GCodesetByF = map[byte]Entry{
	0x42: kanjiEntry,
	0x4a: alphanumericEntry,
	0x4b: latinExtensionEntry,
	0x4c: latinSpecialEntry,
	0x30: hiraganaEntry,
	0x31: katakanaEntry,
	0x32: mosaicAEntry,
	0x33: mosaicBEntry,
	0x34: mosaicCEntry,
	0x35: mosaicDEntry,
	0x36: proportionalAlphanumericEntry,
	0x37: proportionalHiraganaEntry,
	0x38: proportionalKatakanaEntry,
	0x49: jisX0201KatakanaEntry,
	0x39: jisX02132004Kanji1Entry,
	0x3a: jisX02132004Kanji2Entry,
	0x3b: additionalSymbolsEntry,
}

// DRCSCodesetByF maps an ESC designator final byte to the DRCS/Macro entry
// it selects, for the "ESC $ ( 0x20 Fn" 2-byte-DRCS and 1-byte-DRCS/Macro
// designator forms.
var DRCSCodesetByF = map[byte]Entry{
	0x40: drcs0Entry,
	0x41: drcs1Entry,
	0x42: drcs2Entry,
	0x43: drcs3Entry,
	0x44: drcs4Entry,
	0x45: drcs5Entry,
	0x46: drcs6Entry,
	0x47: drcs7Entry,
	0x48: drcs8Entry,
	0x49: drcs9Entry,
	0x4a: drcs10Entry,
	0x4b: drcs11Entry,
	0x4c: drcs12Entry,
	0x4d: drcs13Entry,
	0x4e: drcs14Entry,
	0x4f: drcs15Entry,
	0x70: macroEntry,
}

// DRCSIndex returns the 0..15 map index for a kDRCS_N graphic set, and
// false if set is not a DRCS set.
func DRCSIndex(set GraphicSet) (int, bool) {
	if set < DRCS0 || set > DRCS15 {
		return 0, false
	}
	return int(set - DRCS0), true
}
