/*
NAME
  statement.go

DESCRIPTION
  Caption management/statement data group parsing, the data_unit loop, and
  DRCS data_unit parsing.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package decoder

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/codeset"
)

func (d *Decoder) parseCaptionManagementData(data []byte) bool {
	if len(data) < 10 {
		d.log.Error("decoder: data not enough for parsing caption management data")
		return false
	}

	tmd := (data[0] & 0b11000000) >> 6
	offset := 1
	if tmd == 0b10 {
		offset += 5 // skip OTM
	}

	numLanguages := int(data[offset])
	offset++
	if numLanguages == 0 || numLanguages > 2 {
		d.log.Error("decoder: invalid num_languages", "value", numLanguages)
		return false
	}
	d.languageInfos = make([]languageInfo, numLanguages)

	for i := 0; i < numLanguages; i++ {
		if offset+5 > len(data) {
			d.log.Error("decoder: data not enough for parsing language info")
			return false
		}

		languageTag := int((data[offset] & 0b11100000) >> 5)
		info := languageInfo{languageID: caption.LanguageID(languageTag + 1)}
		dmf := data[offset] & 0b00001111
		info.dmf = dmf
		offset++

		if dmf == 0b1100 || dmf == 0b1101 || dmf == 0b1110 {
			offset++ // skip OLS
		}

		if offset+4 > len(data) {
			d.log.Error("decoder: data not enough for parsing language info")
			return false
		}
		info.iso6392LanguageCode = uint32(data[offset])<<16 | uint32(data[offset+1])<<8 | uint32(data[offset+2])
		offset += 3
		info.format = (data[offset] & 0b11110000) >> 4
		info.tcs = (data[offset] & 0b00001100) >> 2
		offset++

		if info.languageID == d.languageID {
			d.currentISO6392LanguageCode = info.iso6392LanguageCode
			d.swf = info.format - 1
			d.resetGraphicSets()
			d.resetWritingFormat()
		}

		if languageTag < len(d.languageInfos) {
			d.languageInfos[languageTag] = info
		}
	}

	if d.requestEncoding == caption.EncodingSchemeAuto {
		detected := d.detectEncodingScheme()
		if d.activeEncoding != detected {
			d.activeEncoding = detected
			d.resetInternalState()
		}
	}

	if offset+3 > len(data) {
		d.log.Error("decoder: data not enough for parsing caption management data")
		return false
	}
	dataUnitLoopLength := int(data[offset])<<16 | int(data[offset+1])<<8 | int(data[offset+2])
	offset += 3

	if dataUnitLoopLength == 0 {
		return true
	}
	if offset+dataUnitLoopLength > len(data) {
		d.log.Error("decoder: data not enough for parsing caption management data")
		return false
	}
	return d.parseDataUnit(data[offset : offset+dataUnitLoopLength])
}

func (d *Decoder) parseCaptionStatementData(data []byte) bool {
	if len(data) < 4 {
		d.log.Error("decoder: data not enough for parsing caption statement data")
		return false
	}

	tmd := (data[0] & 0b11000000) >> 6
	offset := 1
	if tmd == 0b01 || tmd == 0b10 {
		offset += 5
	}

	if offset+4 > len(data) {
		d.log.Error("decoder: data not enough for parsing caption statement data")
		return false
	}
	dataUnitLoopLength := int(data[offset])<<16 | int(data[offset+1])<<8 | int(data[offset+2])
	offset += 3

	if dataUnitLoopLength == 0 {
		return true
	}
	if offset+dataUnitLoopLength > len(data) {
		d.log.Error("decoder: data not enough for parsing caption statement data")
		return false
	}
	return d.parseDataUnit(data[offset : offset+dataUnitLoopLength])
}

func (d *Decoder) parseDataUnit(data []byte) bool {
	if len(data) < 5 {
		d.log.Error("decoder: data not enough for parsing data unit")
		return false
	}

	offset := 0
	for offset < len(data) {
		if offset+5 > len(data) {
			d.log.Error("decoder: data not enough for parsing data unit")
			return false
		}
		unitSeparator := data[offset]
		dataUnitParameter := data[offset+1]
		dataUnitSize := int(data[offset+2])<<16 | int(data[offset+3])<<8 | int(data[offset+4])

		if unitSeparator != 0x1F {
			d.log.Error("decoder: invalid unit_separator", "value", unitSeparator)
			return false
		}

		if dataUnitSize == 0 {
			return true
		}
		if offset+5+dataUnitSize > len(data) {
			d.log.Error("decoder: data not enough for parsing data unit")
			return false
		}

		body := data[offset+5 : offset+5+dataUnitSize]
		switch dataUnitParameter {
		case 0x20:
			if !d.parseStatementBody(body) {
				return false
			}
		case 0x30:
			if !d.parseDRCS(body, 1) {
				return false
			}
		case 0x31:
			if !d.parseDRCS(body, 2) {
				return false
			}
		}

		offset += 5 + dataUnitSize
	}

	return true
}

func (d *Decoder) parseStatementBody(data []byte) bool {
	offset := 0
	for offset < len(data) {
		ch := data[offset]
		var ok bool
		bytesProcessed := 0

		switch {
		case d.activeEncoding == caption.EncodingSchemeARIBUTF8:
			switch {
			case ch <= 0x1F:
				ok, bytesProcessed = d.handleC0(data[offset:])
			case ch == 0x7F:
				ok, bytesProcessed = d.handleC1(data[offset:])
			case ch == 0xC2:
				if offset+1 < len(data) && data[offset+1] >= 0x80 && data[offset+1] <= 0x9F {
					ok, bytesProcessed = d.handleC1(data[offset+1:])
					bytesProcessed++
				} else {
					ok, bytesProcessed = d.handleUTF8(data[offset:])
				}
			default:
				ok, bytesProcessed = d.handleUTF8(data[offset:])
			}
		default:
			switch {
			case ch <= 0x20:
				ok, bytesProcessed = d.handleC0(data[offset:])
			case ch < 0x7F:
				ok, bytesProcessed = d.handleGLGR(data[offset:], d.gX[d.gl])
			case ch <= 0xA0:
				ok, bytesProcessed = d.handleC1(data[offset:])
			case ch < 0xFF:
				ok, bytesProcessed = d.handleGLGR(data[offset:], d.gX[d.gr])
			}
		}

		if !ok {
			d.log.Error("decoder: parse character failed", "byte", ch, "offset", offset)
			return false
		}
		offset += bytesProcessed
	}

	return true
}

func popcountZeroBits(n uint8) int {
	count := 0
	for n != 0 {
		if n&1 == 0 {
			count++
		}
		n >>= 1
	}
	return count
}

func (d *Decoder) parseDRCS(data []byte, byteCount int) bool {
	offset := 0
	if offset >= len(data) {
		d.log.Error("decoder: data not enough for parsing DRCS")
		return false
	}
	numberOfCode := int(data[offset])
	offset++

	for i := 0; i < numberOfCode; i++ {
		if offset+3 > len(data) {
			d.log.Error("decoder: data not enough for parsing DRCS")
			return false
		}

		characterCode := uint16(data[offset])<<8 | uint16(data[offset+1])
		numberOfFont := int(data[offset+2])
		offset += 3

		for j := 0; j < numberOfFont; j++ {
			if offset+4 > len(data) {
				d.log.Error("decoder: data not enough for parsing DRCS")
				return false
			}

			mode := data[offset] & 0x0F
			offset++

			if mode == 0b0000 || mode == 0b0001 {
				if offset+3 > len(data) {
					d.log.Error("decoder: data not enough for parsing DRCS")
					return false
				}
				depth := data[offset] + 2
				width := int(data[offset+1])
				height := int(data[offset+2])
				offset += 3

				depthBits := popcountZeroBits(depth)
				bitmapSize := width * height * depthBits / 8

				if offset+bitmapSize > len(data) {
					d.log.Error("decoder: data not enough for parsing DRCS")
					return false
				}

				drcs := caption.DRCS{
					Width:     width,
					Height:    height,
					Depth:     int(depth),
					DepthBits: depthBits,
					Pixels:    append([]byte(nil), data[offset:offset+bitmapSize]...),
				}
				offset += bitmapSize

				sum := md5.Sum(drcs.Pixels)
				drcs.MD5 = hex.EncodeToString(sum[:])

				if ucs4, ok := codeset.DRCSMD5Replacement[drcs.MD5]; ok {
					drcs.AlternativeUCS4 = uint32(ucs4)
					drcs.AlternativeText = string(ucs4)
				} else {
					d.log.Warning("decoder: cannot convert unrecognized DRCS pattern to Unicode", "md5", drcs.MD5)
				}

				switch byteCount {
				case 1:
					index := byte(((characterCode & 0x0F00) >> 8) + 0x40)
					ch := (characterCode & 0x00FF) & 0x7F
					entry, ok := codeset.DRCSCodesetByF[index]
					if !ok {
						d.log.Error("decoder: unknown 1-byte DRCS designator", "index", index)
						return false
					}
					mapIndex, _ := codeset.DRCSIndex(entry.Set)
					d.drcsMaps[mapIndex][ch] = drcs
				case 2:
					ch := characterCode & 0x7F7F
					d.drcsMaps[0][ch] = drcs
				}
			} else {
				if offset+4 > len(data) {
					d.log.Error("decoder: data not enough for parsing DRCS")
					return false
				}
				geometricDataLength := int(data[offset+2])<<8 | int(data[offset+3])
				offset += 4 + geometricDataLength
			}
		}
	}

	return true
}
