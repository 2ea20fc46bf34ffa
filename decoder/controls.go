/*
NAME
  controls.go

DESCRIPTION
  C0, ESC, C1, CSI and GL/GR control-byte handlers, and the plain-UTF8
  character path used under the UTF-8 encoding scheme.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package decoder

import (
	"unicode/utf8"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/codeset"
)

// handleC0 interprets a C0 control byte (and any parameters it consumes),
// returning the number of bytes consumed.
func (d *Decoder) handleC0(data []byte) (ok bool, bytes int) {
	switch data[0] {
	case codeset.NUL, codeset.BEL:
		bytes = 1
	case codeset.APB:
		d.moveRelativeActivePos(-1, 0)
		bytes = 1
	case codeset.APF:
		d.moveRelativeActivePos(1, 0)
		bytes = 1
	case codeset.APD:
		d.moveRelativeActivePos(0, 1)
		bytes = 1
	case codeset.APU:
		d.moveRelativeActivePos(0, -1)
		bytes = 1
	case codeset.CS:
		d.resetInternalState()
		d.cap.Flags |= caption.FlagsClearScreen
		bytes = 1
	case codeset.APR:
		d.cap.Text += "\n"
		d.moveActivePosToNewline()
		bytes = 1
	case codeset.LS1:
		d.gl = 1
		bytes = 1
	case codeset.LS0:
		d.gl = 0
		bytes = 1
	case codeset.PAPF:
		if len(data) < 2 {
			return false, 0
		}
		step := int(data[1] & 0b00111111)
		d.moveRelativeActivePos(step, 0)
		bytes = 2
	case codeset.CAN:
		bytes = 1
	case codeset.SS2:
		if len(data) < 2 {
			return false, 0
		}
		glgrOK, glgrBytes := d.handleGLGR(data[1:], d.gX[2])
		if !glgrOK {
			return false, 0
		}
		bytes = 1 + glgrBytes
	case codeset.ESC:
		if len(data) < 2 {
			return false, 0
		}
		escOK, escBytes := d.handleESC(data[1:])
		if !escOK {
			return false, 0
		}
		bytes = 1 + escBytes
	case codeset.APS:
		if len(data) < 3 {
			return false, 0
		}
		y := int(data[1] & 0b00111111)
		x := int(data[2] & 0b00111111)
		d.setAbsoluteActivePos(x, y)
		bytes = 3
	case codeset.SS3:
		if len(data) < 2 {
			return false, 0
		}
		glgrOK, glgrBytes := d.handleGLGR(data[1:], d.gX[3])
		if !glgrOK {
			return false, 0
		}
		bytes = 1 + glgrBytes
	case codeset.RS, codeset.US:
		bytes = 1
	case codeset.SP:
		if d.activeEncoding == caption.EncodingSchemeABNTLatin || d.activeEncoding == caption.EncodingSchemeARIBUTF8 {
			d.pushCharacter(0x0020, 0)
		} else {
			d.pushCharacter(0x3000, 0)
		}
		d.moveRelativeActivePos(1, 0)
		bytes = 1
	default:
		bytes = 1
	}

	return true, bytes
}

// handleESC interprets an ESC sequence's second byte onward (the leading
// 0x1B has already been consumed by the caller).
func (d *Decoder) handleESC(data []byte) (ok bool, bytes int) {
	switch data[0] {
	case codeset.ESC_LS2:
		d.gl = 2
		return true, 1
	case codeset.ESC_LS3:
		d.gl = 3
		return true, 1
	case codeset.ESC_LS1R:
		d.gr = 1
		return true, 1
	case codeset.ESC_LS2R:
		d.gr = 2
		return true, 1
	case codeset.ESC_LS3R:
		d.gr = 3
		return true, 1
	}

	if data[0] == 0x24 { // 2-byte G set or DRCS
		if len(data) < 2 {
			return false, 0
		}
		if data[1] >= 0x28 && data[1] <= 0x2B {
			if len(data) < 3 {
				return false, 0
			}
			gxIndex := int(data[1] - 0x28)
			if data[2] == 0x20 { // 2-byte DRCS
				if len(data) < 4 {
					return false, 0
				}
				entry, found := codeset.DRCSCodesetByF[data[3]]
				if !found {
					return false, 0
				}
				d.gX[gxIndex] = entry
				return true, 4
			}
			entry, found := codeset.GCodesetByF[data[2]]
			if !found {
				return false, 0
			}
			d.gX[gxIndex] = entry
			return true, 3
		}
		entry, found := codeset.GCodesetByF[data[1]]
		if !found {
			return false, 0
		}
		d.gX[0] = entry
		return true, 2
	}

	if data[0] >= 0x28 && data[0] <= 0x2B { // 1-byte G set or DRCS
		if len(data) < 2 {
			return false, 0
		}
		gxIndex := int(data[0] - 0x28)
		if data[1] == 0x20 { // 1-byte DRCS
			if len(data) < 3 {
				return false, 0
			}
			entry, found := codeset.DRCSCodesetByF[data[2]]
			if !found {
				return false, 0
			}
			d.gX[gxIndex] = entry
			return true, 3
		}
		entry, found := codeset.GCodesetByF[data[1]]
		if !found {
			return false, 0
		}
		d.gX[gxIndex] = entry
		return true, 2
	}

	return true, 0
}

func (d *Decoder) handleC1(data []byte) (ok bool, bytes int) {
	switch data[0] {
	case codeset.DEL:
		bytes = 1
	case codeset.BKF:
		d.textColor = codeset.B24ColorCLUT[d.palette][0]
		bytes = 1
	case codeset.RDF:
		d.textColor = codeset.B24ColorCLUT[d.palette][1]
		bytes = 1
	case codeset.GRF:
		d.textColor = codeset.B24ColorCLUT[d.palette][2]
		bytes = 1
	case codeset.YLF:
		d.textColor = codeset.B24ColorCLUT[d.palette][3]
		bytes = 1
	case codeset.BLF:
		d.textColor = codeset.B24ColorCLUT[d.palette][4]
		bytes = 1
	case codeset.MGF:
		d.textColor = codeset.B24ColorCLUT[d.palette][5]
		bytes = 1
	case codeset.CNF:
		d.textColor = codeset.B24ColorCLUT[d.palette][6]
		bytes = 1
	case codeset.WHF:
		d.textColor = codeset.B24ColorCLUT[d.palette][7]
		bytes = 1
	case codeset.COL:
		if len(data) < 2 {
			return false, 0
		}
		if data[1] == 0x20 {
			if len(data) < 3 {
				return false, 0
			}
			d.palette = int(data[2] & 0x0F)
			bytes = 3
		} else if data[1] >= 0x48 && data[1] <= 0x7F {
			switch data[1] & 0xF0 {
			case 0x40:
				d.textColor = codeset.B24ColorCLUT[d.palette][data[1]&0x0F]
			case 0x50:
				d.backColor = codeset.B24ColorCLUT[d.palette][data[1]&0x0F]
			}
			bytes = 2
		} else {
			return false, 0
		}
	case codeset.POL:
		bytes = 2
	case codeset.SSZ:
		d.charHorizontalScale, d.charVerticalScale = 0.5, 0.5
		bytes = 1
	case codeset.MSZ:
		d.charHorizontalScale, d.charVerticalScale = 0.5, 1.0
		bytes = 1
	case codeset.NSZ:
		d.charHorizontalScale, d.charVerticalScale = 1.0, 1.0
		bytes = 1
	case codeset.SZX:
		if len(data) < 2 {
			return false, 0
		}
		switch data[1] {
		case 0x41: // double height
			d.charVerticalScale = 2.0
		case 0x44: // double width
			d.charHorizontalScale = 2.0
		case 0x45: // double height and width
			d.charHorizontalScale, d.charVerticalScale = 2.0, 2.0
		}
		bytes = 2
	case codeset.FLC:
		bytes = 2
	case codeset.CDC:
		if len(data) < 2 {
			return false, 0
		}
		if data[1] == 0x20 {
			if len(data) < 3 {
				return false, 0
			}
			bytes = 3
		} else {
			bytes = 2
		}
	case codeset.WMM:
		bytes = 2
	case codeset.TIME:
		if len(data) < 2 {
			return false, 0
		}
		switch data[1] {
		case 0x20:
			if len(data) < 3 {
				return false, 0
			}
			p2 := int64(data[2] & 0b00111111)
			d.cap.WaitDuration += p2 * 100
			d.cap.Flags |= caption.FlagsWaitDuration
			bytes = 3
		case 0x28:
			bytes = 3
		default:
			return false, 0
		}
	case codeset.MACRO:
		return false, 0
	case codeset.RPC:
		if len(data) < 2 {
			return false, 0
		}
		bytes = 2
	case codeset.STL:
		d.hasUnderline = true
		bytes = 1
	case codeset.SPL:
		d.hasUnderline = false
		bytes = 1
	case codeset.HLC:
		if len(data) < 2 {
			return false, 0
		}
		d.enclosureStyle = caption.EnclosureStyle(data[1] & 0x0F)
		bytes = 2
	case codeset.CSI:
		csiOK, csiBytes := d.handleCSI(data[1:])
		if !csiOK {
			return false, 0
		}
		bytes = 1 + csiBytes
	default:
		bytes = 1
	}

	return true, bytes
}

func (d *Decoder) handleCSI(data []byte) (ok bool, bytes int) {
	offset := 0
	var param1, param2 uint16
	paramCount := 0

	for offset < len(data) {
		switch {
		case data[offset] >= 0x30 && data[offset] <= 0x39:
			if paramCount <= 1 {
				param2 = param2*10 + uint16(data[offset]&0x0F)
			}
		case data[offset] == 0x20: // I2 / In or I
			if paramCount == 0 {
				param1 = param2
			}
			paramCount++
			offset++
			goto moveToF
		case data[offset] == 0x3B: // I1
			if paramCount == 0 {
				param1 = param2
				param2 = 0
			}
			paramCount++
		}
		offset++
	}

moveToF:
	if offset >= len(data) {
		d.log.Error("decoder: data not enough for handling CSI control character")
		return false, 0
	}

	switch data[offset] {
	case codeset.CSI_GSM:
	case codeset.CSI_SWF:
		if paramCount == 1 {
			d.swf = uint8(param1)
		}
		d.resetWritingFormat()
	case codeset.CSI_CCC:
	case codeset.CSI_SDF:
		d.displayAreaWidth = int(param1)
		d.displayAreaHeight = int(param2)
	case codeset.CSI_SSM:
		d.charWidth = int(param1)
		d.charHeight = int(param2)
	case codeset.CSI_SHS:
		d.charHorizontalSpacing = int(param1)
	case codeset.CSI_SVS:
		d.charVerticalSpacing = int(param1)
	case codeset.CSI_PLD, codeset.CSI_PLU, codeset.CSI_GAA, codeset.CSI_SRC:
	case codeset.CSI_SDP:
		d.displayAreaStartX = int(param1)
		if paramCount >= 2 {
			d.displayAreaStartY = int(param2)
		}
		if !d.activePosInited {
			d.setAbsoluteActivePos(0, 0)
		}
	case codeset.CSI_ACPS:
		d.setAbsoluteActiveCoordinateDot(int(param1), int(param2))
	case codeset.CSI_TCC:
	case codeset.CSI_ORN:
		if param1 == 0 {
			d.hasStroke = false
		} else if param1 == 1 && paramCount >= 2 {
			p2 := param2 / 100
			p3 := param2 % 100
			if p2 >= 8 || p3 >= 16 {
				return false, 0
			}
			d.hasStroke = true
			d.strokeColor = codeset.B24ColorCLUT[p2][p3]
		}
	case codeset.CSI_MDF:
		switch param1 {
		case 0:
			d.hasBold, d.hasItalic = false, false
		case 1:
			d.hasBold = true
		case 2:
			d.hasItalic = true
		case 3:
			d.hasBold, d.hasItalic = true, true
		}
	case codeset.CSI_CFS, codeset.CSI_XCS, codeset.CSI_SCR:
	case codeset.CSI_PRA:
		d.hasBuiltinSound = true
		d.builtinSoundID = uint8(param1)
	case codeset.CSI_ACS, codeset.CSI_UED, codeset.CSI_RCS, codeset.CSI_SCS:
	default:
	}

	return true, offset + 1
}

// handleGLGR interprets one GL or GR invocation under the given graphic-set
// entry (which may be d.gX[d.gl], d.gX[d.gr], or — for SS2/SS3 — d.gX[2]/
// d.gX[3] directly without changing the locking shift state).
func (d *Decoder) handleGLGR(data []byte, entry codeset.Entry) (ok bool, bytes int) {
	ch := data[0] & 0x7F
	if ch < 0x21 || ch >= 0x7F {
		return false, 0
	}

	var ch2 byte
	if entry.Bytes == 2 {
		if len(data) < 2 {
			return false, 0
		}
		ch2 = data[1] & 0x7F
		if ch2 < 0x21 || ch2 >= 0x7F {
			return false, 0
		}
	}

	switch entry.Set {
	case codeset.Hiragana, codeset.ProportionalHiragana:
		d.pushCharacter(uint32(codeset.Hiragana[ch-0x21]), 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.Katakana, codeset.ProportionalKatakana:
		d.pushCharacter(uint32(codeset.Katakana[ch-0x21]), 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.JISX0201Katakana:
		d.pushCharacter(uint32(codeset.JISX0201KatakanaTable[ch-0x21]), 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.Kanji, codeset.JISX02132004Kanji1, codeset.JISX02132004Kanji2, codeset.AdditionalSymbols:
		const gaijiBeginKu = 84
		ku := int(ch - 0x21)
		ten := int(ch2 - 0x21)

		var ucs4, pua uint32
		if ku < gaijiBeginKu {
			ucs4 = uint32(codeset.KanjiTable[ku][ten])
			if ucs4 >= 0xFF01 && ucs4 <= 0xFF5E && d.replaceMSZFullwidthASCII && d.charHorizontalScale*2 == d.charVerticalScale {
				ucs4 = (ucs4 & 0xFF) + 0x20
			}
		} else {
			g := codeset.AdditionalSymbolsTable[ku-gaijiBeginKu][ten]
			ucs4 = uint32(g.UCS4)
			pua = uint32(g.PUA)
			if pua == ucs4 || pua < 0xE000 || pua > 0xF8FF {
				pua = 0
			}
		}
		d.pushCharacter(ucs4, pua)
		d.moveRelativeActivePos(1, 0)
	case codeset.Alphanumeric, codeset.ProportionalAlphanumeric:
		var ucs4 uint32
		switch {
		case d.activeEncoding == caption.EncodingSchemeABNTLatin:
			ucs4 = uint32(codeset.AlphanumericHalfwidth[ch-0x21])
		case d.replaceMSZFullwidthASCII && d.charHorizontalScale*2 == d.charVerticalScale:
			ucs4 = uint32(codeset.AlphanumericHalfwidth[ch-0x21])
		default:
			ucs4 = uint32(codeset.AlphanumericFullwidth[ch-0x21])
		}
		d.pushCharacter(ucs4, 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.LatinExtension:
		d.pushCharacter(uint32(codeset.LatinExtension[ch-0x21]), 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.LatinSpecial:
		d.pushCharacter(uint32(codeset.LatinSpecial[ch-0x21]), 0)
		d.moveRelativeActivePos(1, 0)
	case codeset.Macro:
		key := ch
		if key >= 0x60 && key <= 0x6F {
			body := codeset.DefaultMacros[key&0x0F]
			if len(body) > 0 && !d.parseStatementBody(body) {
				return false, 0
			}
		}
	default:
		if mapIndex, isDRCS := codeset.DRCSIndex(entry.Set); isDRCS {
			key := uint16(ch)
			if entry.Bytes == 2 {
				key = key<<8 | uint16(ch2)
			}
			if drcs, found := d.drcsMaps[mapIndex][key]; found {
				code := uint32(mapIndex)<<16 | uint32(key)
				d.pushDRCSCharacter(code, drcs)
			} else {
				d.pushCharacter(codeset.GetaMark, 0)
			}
			d.moveRelativeActivePos(1, 0)
		}
	}

	return true, int(entry.Bytes)
}

func (d *Decoder) handleUTF8(data []byte) (ok bool, bytes int) {
	if len(data) == 0 {
		return false, 0
	}
	r, n := utf8.DecodeRune(data)
	if r == utf8.RuneError && n <= 1 {
		return false, 0
	}
	d.pushCharacter(uint32(r), 0)
	d.moveRelativeActivePos(1, 0)
	return true, n
}
