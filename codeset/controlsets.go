/*
NAME
  controlsets.go

DESCRIPTION
  C0, C1, ESC and CSI control-byte constants for ARIB STD-B24 caption
  statement bodies.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

// Package codeset holds the static, immutable lookup tables and control-
// byte constants that package decoder dispatches on: the C0/C1/ESC/CSI
// control sets, the graphic-set designator maps, the B24 color CLUT, and
// the code-to-Unicode tables for every ARIB graphic set.
package codeset

// C0 control codes (0x00-0x20).
const (
	NUL  = 0x00
	BEL  = 0x07
	APB  = 0x08
	APF  = 0x09
	APD  = 0x0A
	APU  = 0x0B
	CS   = 0x0C
	APR  = 0x0D
	LS1  = 0x0E
	LS0  = 0x0F
	PAPF = 0x16
	CAN  = 0x18
	SS2  = 0x19
	ESC  = 0x1B
	APS  = 0x1C
	SS3  = 0x1D
	RS   = 0x1E
	US   = 0x1F
	SP   = 0x20
)

// C1 control codes (0x7F-0x9F).
const (
	DEL   = 0x7F
	BKF   = 0x80
	RDF   = 0x81
	GRF   = 0x82
	YLF   = 0x83
	BLF   = 0x84
	MGF   = 0x85
	CNF   = 0x86
	WHF   = 0x87
	SSZ   = 0x88
	MSZ   = 0x89
	NSZ   = 0x8A
	SZX   = 0x8B
	COL   = 0x90
	FLC   = 0x91
	CDC   = 0x92
	POL   = 0x93
	WMM   = 0x94
	MACRO = 0x95
	HLC   = 0x97
	RPC   = 0x98
	SPL   = 0x99
	STL   = 0x9A
	CSI   = 0x9B
	TIME  = 0x9D
)

// ESC-sequence second bytes.
const (
	ESC_LS2  = 0x6E
	ESC_LS3  = 0x6F
	ESC_LS1R = 0x7E
	ESC_LS2R = 0x7D
	ESC_LS3R = 0x7C
)

// CSI final bytes.
const (
	CSI_GSM  = 0x42
	CSI_SWF  = 0x53
	CSI_CCC  = 0x54
	CSI_SDF  = 0x56
	CSI_SSM  = 0x57
	CSI_SHS  = 0x58
	CSI_SVS  = 0x59
	CSI_PLD  = 0x5B
	CSI_PLU  = 0x5C
	CSI_GAA  = 0x5D
	CSI_SRC  = 0x5E
	CSI_SDP  = 0x5F
	CSI_ACPS = 0x61
	CSI_TCC  = 0x62
	CSI_ORN  = 0x63
	CSI_MDF  = 0x64
	CSI_CFS  = 0x65
	CSI_XCS  = 0x66
	CSI_SCR  = 0x67
	CSI_PRA  = 0x68
	CSI_ACS  = 0x69
	CSI_UED  = 0x6A
	CSI_RCS  = 0x6E
	CSI_SCS  = 0x6F
)
