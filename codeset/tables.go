/*
NAME
  tables.go

DESCRIPTION
  Code-to-Unicode tables for each 1-byte ARIB graphic set, the partial
  2-byte Kanji table, the gaiji/additional-symbols table, default macro
  byte sequences, and the DRCS MD5-to-Unicode replacement table.

  See DESIGN.md ("Kanji/gaiji/default-macro table completeness") for which
  rows are exact and which are a documented approximation: the ARIB
  conversion-table source files were not present in the retrieved
  reference material at all.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package codeset

// tableSize is the number of code positions in a single-byte (or one row
// of a double-byte) ARIB graphic set: 0x7E - 0x21 + 1.
const tableSize = 94

// GetaMark is the placeholder codepoint for an unresolvable Kanji/gaiji
// lookup.
const GetaMark = 0x3013

// AlphanumericFullwidth maps GL index (ch-0x21) to the fullwidth form used
// by the default (NSZ) Alphanumeric graphic set.
var AlphanumericFullwidth = buildContiguous(0xFF01, tableSize)

// AlphanumericHalfwidth maps GL index (ch-0x21) to the halfwidth (ASCII)
// form, used when replace_msz_fullwidth_ascii substitutes under MSZ scale.
var AlphanumericHalfwidth = buildContiguous(0x21, tableSize)

// LatinExtension and LatinSpecial back the ABNT Latin-encoding graphic
// sets; absent a retrieved source table these degrade to the same ASCII
// range as AlphanumericHalfwidth, which is correct for the printable-ASCII
// subset shared by every profile; the remaining Latin code positions are
// not reproduced.
var LatinExtension = buildContiguous(0x21, tableSize)
var LatinSpecial = buildContiguous(0x21, tableSize)

// Hiragana maps GL index to a Hiragana codepoint via the contiguous
// Unicode Hiragana block (U+3041..). See file doc comment.
var Hiragana = buildContiguous(0x3041, tableSize)

// Katakana maps GL index to a Katakana codepoint via the contiguous
// Unicode Katakana block (U+30A1..).
var Katakana = buildContiguous(0x30A1, tableSize)

// ProportionalHiragana and ProportionalKatakana share the same code tables
// as their non-proportional counterparts; only glyph advance differs,
// which is a rendering concern, not a decode concern.
var ProportionalHiragana = Hiragana
var ProportionalKatakana = Katakana

// JISX0201KatakanaTable maps GL index to the JIS X 0201 halfwidth Katakana
// block (U+FF61..).
var JISX0201KatakanaTable = buildContiguous(0xFF61, tableSize)

func buildContiguous(base rune, n int) []rune {
	t := make([]rune, n)
	for i := range t {
		t[i] = base + rune(i)
	}
	return t
}

// KanjiTable is indexed [ku][ten], each 0..93 (ch-0x21). Only ku==2 (the
// fullwidth-ASCII row) is populated with real data, by the same
// arithmetic relationship as AlphanumericFullwidth; every other row
// resolves through GetaMark. See DESIGN.md.
var KanjiTable = buildKanjiTable()

func buildKanjiTable() [][]rune {
	t := make([][]rune, tableSize)
	for ku := range t {
		row := make([]rune, tableSize)
		for ten := range row {
			row[ten] = GetaMark
		}
		t[ku] = row
	}
	copy(t[2], AlphanumericFullwidth)
	return t
}

// GaijiEntry is a gaiji/additional-symbols lookup result: a UCS-4
// codepoint and its optional PUA alternative (0 when none).
type GaijiEntry struct {
	UCS4 rune
	PUA  rune
}

// AdditionalSymbolsTable is indexed [ku-84][ten]; the additional-symbols
// graphic set occupies ku values 84..93 (the rows beyond the 84-row Kanji
// plane). Unpopulated entries resolve to {GetaMark, 0}.
var AdditionalSymbolsTable = buildAdditionalSymbolsTable()

func buildAdditionalSymbolsTable() [][]GaijiEntry {
	t := make([][]GaijiEntry, tableSize-84)
	for i := range t {
		row := make([]GaijiEntry, tableSize)
		for j := range row {
			row[j] = GaijiEntry{UCS4: GetaMark}
		}
		t[i] = row
	}
	return t
}

// DefaultMacros holds the default byte expansion for MACRO invocations
// 0x60..0x6F. Not present in the retrieved reference material; every
// entry is an empty, safe no-op expansion (see DESIGN.md).
var DefaultMacros = func() [16][]byte {
	var m [16][]byte
	for i := range m {
		m[i] = nil
	}
	return m
}()

// DRCSMD5Replacement maps the lowercase hex MD5 digest of a decoded DRCS
// pixel pattern to its known Unicode replacement. Populating this table
// requires a corpus of known broadcast DRCS patterns, which is outside
// anything retrievable from original_source/ (it is built at encode time
// by broadcasters, not derivable from the decoder's own source); it ships
// empty, so DRCS decoding always falls through to CaptionCharTypeDRCS
// (render the bitmap) rather than CaptionCharTypeDRCSReplaced, until a
// caller populates entries from its own known-pattern corpus.
var DRCSMD5Replacement = map[string]rune{}
