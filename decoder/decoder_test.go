/*
NAME
  decoder_test.go

DESCRIPTION
  Table-driven tests for the ARIB B24 decoder's PES framing, control
  handling, and caption assembly.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package decoder

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/codeset"
)

func md5Hex(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// buildPES wraps a caption statement data_unit body in a minimal PES/
// data_group/data_unit envelope for language 1, with no PES header
// extension and no OTM/OLS fields.
func buildPES(t *testing.T, statementBody []byte) []byte {
	t.Helper()

	dataUnit := []byte{0x1F, 0x20,
		byte(len(statementBody) >> 16), byte(len(statementBody) >> 8), byte(len(statementBody)),
	}
	dataUnit = append(dataUnit, statementBody...)

	// TMD=0b00 (free), no OTM.
	statementData := []byte{0x00}
	statementData = append(statementData,
		byte(len(dataUnit)>>16), byte(len(dataUnit)>>8), byte(len(dataUnit)))
	statementData = append(statementData, dataUnit...)

	// data_group_id: group=0, sub-id(language)=1 -> byte = 1<<2 = 0x04.
	dataGroup := []byte{0x04, 0x00, 0x00,
		byte(len(statementData) >> 8), byte(len(statementData)),
	}
	dataGroup = append(dataGroup, statementData...)

	pes := []byte{0x80, 0xFF, 0x00} // data_identifier, private_stream_id, header_len=0
	pes = append(pes, dataGroup...)
	return pes
}

func newTestDecoder() *Decoder {
	return New(nil, caption.EncodingSchemeARIBJIS, caption.CaptionTypeCaption, caption.ProfileA, caption.LanguageIDFirst)
}

func TestDecodeSimpleHiraganaLine(t *testing.T) {
	d := newTestDecoder()

	// Default G2 is Hiragana, invoked via LS2 (ESC 0x6E), then two chars.
	body := []byte{codeset.ESC, codeset.ESC_LS2, 0x22, 0x23}

	status, cap := d.Decode(buildPES(t, body), 1000)
	if status != StatusGotCaption {
		t.Fatalf("status = %v, want StatusGotCaption", status)
	}
	if len(cap.Regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(cap.Regions))
	}
	region := cap.Regions[0]
	if len(region.Chars) != 2 {
		t.Fatalf("chars = %d, want 2", len(region.Chars))
	}
	wantFirst := rune(codeset.Hiragana[0x22-0x21])
	if got := rune(region.Chars[0].Codepoint); got != wantFirst {
		t.Errorf("first char = %q, want %q", got, wantFirst)
	}
	if cap.PTS != 1000 {
		t.Errorf("pts = %d, want 1000", cap.PTS)
	}
}

func TestDecodeClearScreenSetsFlag(t *testing.T) {
	d := newTestDecoder()
	body := []byte{codeset.CS}

	status, cap := d.Decode(buildPES(t, body), 0)
	if status != StatusGotCaption {
		t.Fatalf("status = %v, want StatusGotCaption", status)
	}
	if cap.Flags&caption.FlagsClearScreen == 0 {
		t.Errorf("FlagsClearScreen not set")
	}
}

func TestDecodeTimeAddsWaitDuration(t *testing.T) {
	d := newTestDecoder()
	// TIME control, 0x20 subtype, p2 = 5 -> 500ms.
	body := []byte{codeset.TIME, 0x20, 0x05}

	status, cap := d.Decode(buildPES(t, body), 0)
	if status != StatusGotCaption {
		t.Fatalf("status = %v, want StatusGotCaption", status)
	}
	if cap.WaitDuration != 500 {
		t.Errorf("WaitDuration = %d, want 500", cap.WaitDuration)
	}
	if cap.Flags&caption.FlagsWaitDuration == 0 {
		t.Errorf("FlagsWaitDuration not set")
	}
}

func TestDecodeRetransmissionManagementDataIgnored(t *testing.T) {
	d := newTestDecoder()

	// Minimal caption management data: TMD=0b00, num_languages=1,
	// language_tag=0/DMF=0b1000 (no OLS), ISO code "jpn", format=1, TCS=0,
	// data_unit_loop_length=0.
	mgmt := []byte{
		0x00,       // TMD
		0x01,       // num_languages
		0b000_1000, // language_tag=0, DMF=8
		'j', 'p', 'n',
		0b0001_0000, // format=1, TCS=0
		0x00, 0x00, 0x00,
	}
	dataGroup := []byte{0x00, 0x00, 0x00, byte(len(mgmt) >> 8), byte(len(mgmt))}
	dataGroup = append(dataGroup, mgmt...)

	pes := []byte{0x80, 0xFF, 0x00}
	pes = append(pes, dataGroup...)

	// The first management data group is parsed: it carries no data units,
	// so there is no caption, but its language code is adopted.
	status, _ := d.Decode(pes, 0)
	if status != StatusNoCaption {
		t.Fatalf("first management data status = %v, want StatusNoCaption (no data units)", status)
	}
	if got := d.QueryISO6392LanguageCode(caption.LanguageIDFirst); got != threeCC("jpn") {
		t.Fatalf("language code after first management data = 0x%06X, want jpn", got)
	}

	// dgiGroup is always 0 (see DESIGN.md, "data_group_id retransmission
	// check"), so the repeated group counts as a retransmission.
	status2, _ := d.Decode(pes, 0)
	if status2 != StatusNoCaption {
		t.Fatalf("second management data status = %v, want StatusNoCaption (retransmission)", status2)
	}
}

func TestDecodeDRCSReplacedCharacter(t *testing.T) {
	// Populate a known DRCS pattern's MD5 replacement before decoding, per
	// the note in codeset/tables.go that DRCSMD5Replacement ships empty.
	pixels := []byte{0xFF, 0x00}
	md5sum := md5Hex(pixels)
	codeset.DRCSMD5Replacement[md5sum] = 'A'
	defer delete(codeset.DRCSMD5Replacement, md5sum)

	d := newTestDecoder()

	// DRCS data_unit (data_unit_parameter 0x30, byte_count=1): one
	// character, font 0, mode 0 (1-bit), depth_param=0 (depth=2, 1 bit/px),
	// width=4, height=4 -> bitmap_size = 4*4*1/8 = 2 bytes. character_code's
	// high byte low nibble (1) selects DRCSCodesetByF[0x41] == DRCS1 when
	// parseDRCS resolves the 1-byte designator index, and its low byte
	// (0x21) becomes the in-map key.
	drcsUnit := []byte{
		0x01,       // number_of_code
		0x01, 0x21, // character_code
		0x01,       // number_of_font
		0x00,       // font_id=0, mode=0
		0x00,       // depth param -> depth=2
		0x04, 0x04, // width, height
		0xFF, 0x00, // bitmap
	}

	dataUnit := []byte{0x1F, 0x30,
		byte(len(drcsUnit) >> 16), byte(len(drcsUnit) >> 8), byte(len(drcsUnit)),
	}
	dataUnit = append(dataUnit, drcsUnit...)

	// Designate G0 to DRCS1 (1-byte form: ESC 0x28 0x20 0x41), then invoke
	// it with GL byte 0x21 matching the stored key.
	designate := []byte{codeset.ESC, 0x28, 0x20, 0x41}
	invoke := []byte{0x21}
	statementBody := append(append([]byte{}, designate...), invoke...)

	statementDataUnit := []byte{0x1F, 0x20,
		byte(len(statementBody) >> 16), byte(len(statementBody) >> 8), byte(len(statementBody)),
	}
	statementDataUnit = append(statementDataUnit, statementBody...)

	full := append(append([]byte{}, dataUnit...), statementDataUnit...)

	statementData := []byte{0x00}
	statementData = append(statementData, byte(len(full)>>16), byte(len(full)>>8), byte(len(full)))
	statementData = append(statementData, full...)

	dataGroup := []byte{0x04, 0x00, 0x00, byte(len(statementData) >> 8), byte(len(statementData))}
	dataGroup = append(dataGroup, statementData...)

	pes := []byte{0x80, 0xFF, 0x00}
	pes = append(pes, dataGroup...)

	status, cap := d.Decode(pes, 0)
	if status != StatusGotCaption {
		t.Fatalf("status = %v, want StatusGotCaption", status)
	}
	if len(cap.Regions) != 1 || len(cap.Regions[0].Chars) != 1 {
		t.Fatalf("unexpected region/char shape: %+v", cap.Regions)
	}
	c := cap.Regions[0].Chars[0]
	if c.Type != caption.CaptionCharTypeDRCSReplaced {
		t.Errorf("char type = %v, want DRCSReplaced", c.Type)
	}
	if c.Text != "A" {
		t.Errorf("text = %q, want %q", c.Text, "A")
	}
}

func TestCaptionCharSectionDimensions(t *testing.T) {
	c := caption.CaptionChar{CharWidth: 36, CharHeight: 36, CharHorizontalSpacing: 4, CharVerticalSpacing: 24, CharHorizontalScale: 1, CharVerticalScale: 1}
	if got, want := c.SectionWidth(), 40; got != want {
		t.Errorf("SectionWidth() = %d, want %d", got, want)
	}
	if got, want := c.SectionHeight(), 60; got != want {
		t.Errorf("SectionHeight() = %d, want %d", got, want)
	}
}

func TestDecodeMismatchedDataIdentifierErrors(t *testing.T) {
	d := New(nil, caption.EncodingSchemeARIBJIS, caption.CaptionTypeSuperimpose, caption.ProfileA, caption.LanguageIDFirst)
	pes := buildPES(t, []byte{codeset.CS})
	status, cap := d.Decode(pes, 0)
	if status != StatusError || cap != nil {
		t.Fatalf("status = %v, cap = %v, want (StatusError, nil)", status, cap)
	}
}

func TestCaptionRegionDiffOption(t *testing.T) {
	a := caption.CaptionRegion{X: 1, Y: 2}
	b := caption.CaptionRegion{X: 1, Y: 2}
	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(caption.CaptionRegion{}, "Chars")); diff != "" {
		t.Errorf("unexpected diff: %s", diff)
	}
}
