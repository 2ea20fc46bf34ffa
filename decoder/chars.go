/*
NAME
  chars.go

DESCRIPTION
  Character/region assembly and active-position cursor arithmetic.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package decoder

import (
	"math"

	"github.com/ausocean/aribcaption/caption"
	"github.com/ausocean/aribcaption/codeset"
)

func (d *Decoder) pushCharacter(ucs4, pua uint32) {
	c := caption.CaptionChar{
		Type:         caption.CaptionCharTypeText,
		Codepoint:    ucs4,
		PUACodepoint: pua,
		Text:         string(rune(ucs4)),
	}

	if !d.isRubyMode() {
		d.cap.Text += string(rune(ucs4))
	}

	d.applyCaptionCharCommonProperties(&c)
	d.pushCaptionChar(c)
}

func (d *Decoder) pushDRCSCharacter(code uint32, drcs caption.DRCS) {
	c := caption.CaptionChar{DRCSCode: code}

	if drcs.AlternativeText == "" {
		c.Type = caption.CaptionCharTypeDRCS
		if !d.isRubyMode() {
			d.cap.Text += string(rune(codeset.GetaMark))
		}
	} else {
		c.Type = caption.CaptionCharTypeDRCSReplaced
		c.Text = drcs.AlternativeText
		c.Codepoint = drcs.AlternativeUCS4
		if !d.isRubyMode() {
			d.cap.Text += drcs.AlternativeText
		}
	}

	if _, ok := d.cap.DRCSMap[code]; !ok {
		d.cap.DRCSMap[code] = drcs
	}

	d.applyCaptionCharCommonProperties(&c)
	d.pushCaptionChar(c)
}

func (d *Decoder) pushCaptionChar(c caption.CaptionChar) {
	if d.needNewCaptionRegion() {
		d.makeNewCaptionRegion()
	}
	region := &d.cap.Regions[len(d.cap.Regions)-1]
	region.Width += c.SectionWidth()
	region.Chars = append(region.Chars, c)
}

func (d *Decoder) applyCaptionCharCommonProperties(c *caption.CaptionChar) {
	c.X = d.activePosX
	c.Y = d.activePosY - d.sectionHeight()
	c.CharWidth = d.charWidth
	c.CharHeight = d.charHeight
	c.CharHorizontalSpacing = d.charHorizontalSpacing
	c.CharVerticalSpacing = d.charVerticalSpacing
	c.CharHorizontalScale = d.charHorizontalScale
	c.CharVerticalScale = d.charVerticalScale
	c.TextColor = d.textColor
	c.BackColor = d.backColor

	if d.hasUnderline {
		c.Style |= caption.CharStyleUnderline
	}
	if d.hasBold {
		c.Style |= caption.CharStyleBold
	}
	if d.hasItalic {
		c.Style |= caption.CharStyleItalic
	}
	if d.hasStroke {
		c.Style |= caption.CharStyleStroke
		c.StrokeColor = d.strokeColor
	}

	c.EnclosureStyle = d.enclosureStyle
}

func (d *Decoder) needNewCaptionRegion() bool {
	if len(d.cap.Regions) == 0 {
		return true
	}

	prevRegion := &d.cap.Regions[len(d.cap.Regions)-1]
	if len(prevRegion.Chars) == 0 {
		return false
	}

	prevChar := &prevRegion.Chars[len(prevRegion.Chars)-1]

	if d.activePosX != prevChar.X+prevChar.SectionWidth() {
		return true
	}
	if d.activePosY-d.sectionHeight() != prevChar.Y {
		return true
	}
	if d.sectionHeight() != prevChar.SectionHeight() {
		return true
	}

	return false
}

func (d *Decoder) makeNewCaptionRegion() {
	if len(d.cap.Regions) == 0 || len(d.cap.Regions[len(d.cap.Regions)-1].Chars) != 0 {
		d.cap.Regions = append(d.cap.Regions, caption.CaptionRegion{})
	}

	region := &d.cap.Regions[len(d.cap.Regions)-1]
	region.X = d.activePosX
	region.Y = d.activePosY - d.sectionHeight()
	region.Height = d.sectionHeight()

	if d.isRubyMode() {
		region.IsRuby = true
	}
}

func (d *Decoder) isRubyMode() bool {
	if d.activeEncoding != caption.EncodingSchemeARIBJIS {
		return false
	}
	if (d.charHorizontalScale == 0.5 && d.charVerticalScale == 0.5) ||
		(d.profile == caption.ProfileA && d.charWidth == 18 && d.charHeight == 18) {
		return true
	}
	return false
}

func (d *Decoder) sectionWidth() int {
	return int(math.Floor(float64(d.charWidth+d.charHorizontalSpacing) * float64(d.charHorizontalScale)))
}

func (d *Decoder) sectionHeight() int {
	return int(math.Floor(float64(d.charHeight+d.charVerticalSpacing) * float64(d.charVerticalScale)))
}

func (d *Decoder) setAbsoluteActivePos(x, y int) {
	d.activePosInited = true
	d.activePosX = d.displayAreaStartX + x*d.sectionWidth()
	d.activePosY = d.displayAreaStartY + (y+1)*d.sectionHeight()
}

func (d *Decoder) setAbsoluteActiveCoordinateDot(x, y int) {
	d.activePosInited = true
	d.activePosX = x
	d.activePosY = y
}

func (d *Decoder) moveRelativeActivePos(x, y int) {
	if d.activePosX < 0 || d.activePosY < 0 {
		d.setAbsoluteActivePos(0, 0)
	}
	d.activePosInited = true

	for x < 0 {
		d.activePosX -= d.sectionWidth()
		x++
		if d.activePosX < d.displayAreaStartX {
			d.activePosX = d.displayAreaStartX + d.displayAreaWidth - d.sectionWidth()
			y--
		}
	}

	for x > 0 {
		d.activePosX += d.sectionWidth()
		x--
		if d.activePosX >= d.displayAreaStartX+d.displayAreaWidth {
			d.activePosX = d.displayAreaStartX
			y++
		}
	}

	for y < 0 {
		d.activePosY -= d.sectionHeight()
		y++
		if d.activePosY < d.displayAreaStartY {
			d.activePosY = d.displayAreaStartY + d.displayAreaHeight
		}
	}

	for y > 0 {
		d.activePosY += d.sectionHeight()
		y--
		if d.activePosY > d.displayAreaStartY+d.displayAreaHeight {
			d.activePosY = d.displayAreaStartY + d.sectionHeight()
		}
	}
}

func (d *Decoder) moveActivePosToNewline() {
	if d.activePosX < 0 || d.activePosY < 0 {
		d.setAbsoluteActivePos(0, 0)
	}
	d.activePosInited = true
	d.activePosX = d.displayAreaStartX
	d.activePosY += d.sectionHeight()
}
