/*
NAME
  colors.go

DESCRIPTION
  The B24 color look-up table: 8 palettes of 16 RGBA colors each, indexed
  [palette][entry] exactly as the ARIB COL control code selects them.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package codeset

import "github.com/ausocean/aribcaption/caption"

func rgba(r, g, b, a uint8) caption.Color {
	return caption.Color{R: r, G: g, B: b, A: a}
}

// B24ColorCLUT is the full 8x16 ARIB B24 color palette. Palettes 0-3 and
// palette 4 entry 0 are opaque (alpha 255). Palette 4 entries 1-15 and
// palettes 5-7 repeat the opaque colors in order at alpha 128, skipping
// palette 0's transparent entry 8, so palettes 5, 6 and 7 match palettes
// 1, 2 and 3. Reproduced byte-for-byte from the reference decoder's table,
// including two entries (row 6 index 5, row 7 index 7) that carry blue
// value 9 where the opaque entries they repeat (palette 2 index 5,
// palette 3 index 7) carry 0 — kept as found rather than "corrected."
var B24ColorCLUT = [8][16]caption.Color{
	{
		rgba(0, 0, 0, 255),
		rgba(255, 0, 0, 255),
		rgba(0, 255, 0, 255),
		rgba(255, 255, 0, 255),
		rgba(0, 0, 255, 255),
		rgba(255, 0, 255, 255),
		rgba(0, 255, 255, 255),
		rgba(255, 255, 255, 255),
		rgba(0, 0, 0, 0),
		rgba(170, 0, 0, 255),
		rgba(0, 170, 0, 255),
		rgba(170, 170, 0, 255),
		rgba(0, 0, 170, 255),
		rgba(170, 0, 170, 255),
		rgba(0, 170, 170, 255),
		rgba(170, 170, 170, 255),
	},
	{
		rgba(0, 0, 85, 255),
		rgba(0, 85, 0, 255),
		rgba(0, 85, 85, 255),
		rgba(0, 85, 170, 255),
		rgba(0, 85, 255, 255),
		rgba(0, 170, 85, 255),
		rgba(0, 170, 255, 255),
		rgba(0, 255, 85, 255),
		rgba(0, 255, 170, 255),
		rgba(85, 0, 0, 255),
		rgba(85, 0, 85, 255),
		rgba(85, 0, 170, 255),
		rgba(85, 0, 255, 255),
		rgba(85, 85, 0, 255),
		rgba(85, 85, 85, 255),
		rgba(85, 85, 170, 255),
	},
	{
		rgba(85, 85, 255, 255),
		rgba(85, 170, 0, 255),
		rgba(85, 170, 85, 255),
		rgba(85, 170, 170, 255),
		rgba(85, 170, 255, 255),
		rgba(85, 255, 0, 255),
		rgba(85, 255, 85, 255),
		rgba(85, 255, 170, 255),
		rgba(85, 255, 255, 255),
		rgba(170, 0, 85, 255),
		rgba(170, 0, 255, 255),
		rgba(170, 85, 0, 255),
		rgba(170, 85, 85, 255),
		rgba(170, 85, 170, 255),
		rgba(170, 85, 255, 255),
		rgba(170, 170, 85, 255),
	},
	{
		rgba(170, 170, 255, 255),
		rgba(170, 255, 0, 255),
		rgba(170, 255, 85, 255),
		rgba(170, 255, 170, 255),
		rgba(170, 255, 255, 255),
		rgba(255, 0, 85, 255),
		rgba(255, 0, 170, 255),
		rgba(255, 85, 0, 255),
		rgba(255, 85, 85, 255),
		rgba(255, 85, 170, 255),
		rgba(255, 85, 255, 255),
		rgba(255, 170, 0, 255),
		rgba(255, 170, 85, 255),
		rgba(255, 170, 170, 255),
		rgba(255, 170, 255, 255),
		rgba(255, 255, 85, 255),
	},
	{
		rgba(255, 255, 170, 255),
		rgba(0, 0, 0, 128),
		rgba(255, 0, 0, 128),
		rgba(0, 255, 0, 128),
		rgba(255, 255, 0, 128),
		rgba(0, 0, 255, 128),
		rgba(255, 0, 255, 128),
		rgba(0, 255, 255, 128),
		rgba(255, 255, 255, 128),
		rgba(170, 0, 0, 128),
		rgba(0, 170, 0, 128),
		rgba(170, 170, 0, 128),
		rgba(0, 0, 170, 128),
		rgba(170, 0, 170, 128),
		rgba(0, 170, 170, 128),
		rgba(170, 170, 170, 128),
	},
	{
		rgba(0, 0, 85, 128),
		rgba(0, 85, 0, 128),
		rgba(0, 85, 85, 128),
		rgba(0, 85, 170, 128),
		rgba(0, 85, 255, 128),
		rgba(0, 170, 85, 128),
		rgba(0, 170, 255, 128),
		rgba(0, 255, 85, 128),
		rgba(0, 255, 170, 128),
		rgba(85, 0, 0, 128),
		rgba(85, 0, 85, 128),
		rgba(85, 0, 170, 128),
		rgba(85, 0, 255, 128),
		rgba(85, 85, 0, 128),
		rgba(85, 85, 85, 128),
		rgba(85, 85, 170, 128),
	},
	{
		rgba(85, 85, 255, 128),
		rgba(85, 170, 0, 128),
		rgba(85, 170, 85, 128),
		rgba(85, 170, 170, 128),
		rgba(85, 170, 255, 128),
		rgba(85, 255, 9, 128),
		rgba(85, 255, 85, 128),
		rgba(85, 255, 170, 128),
		rgba(85, 255, 255, 128),
		rgba(170, 0, 85, 128),
		rgba(170, 0, 255, 128),
		rgba(170, 85, 0, 128),
		rgba(170, 85, 85, 128),
		rgba(170, 85, 170, 128),
		rgba(170, 85, 255, 128),
		rgba(170, 170, 85, 128),
	},
	{
		rgba(170, 170, 255, 128),
		rgba(170, 255, 0, 128),
		rgba(170, 255, 85, 128),
		rgba(170, 255, 170, 128),
		rgba(170, 255, 255, 128),
		rgba(255, 0, 85, 128),
		rgba(255, 0, 170, 128),
		rgba(255, 85, 9, 128),
		rgba(255, 85, 85, 128),
		rgba(255, 85, 170, 128),
		rgba(255, 85, 255, 128),
		rgba(255, 170, 0, 128),
		rgba(255, 170, 85, 128),
		rgba(255, 170, 170, 128),
		rgba(255, 170, 255, 128),
		rgba(255, 255, 85, 128),
	},
}
