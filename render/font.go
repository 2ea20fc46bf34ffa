/*
NAME
  font.go

DESCRIPTION
  FontProvider is the pluggable font-lookup collaborator (C3). Concrete
  per-platform backends (Fontconfig, CoreText, DirectWrite, Android, GDI)
  are out of scope; NullFontProvider is the in-repo default and test fake.

AUTHORS
  Ariel Kestrel <ariel@aribcaption.dev>

LICENSE
  Copyright (C) 2026 the aribcaption-go contributors.
*/

package render

import "errors"

// FaceInfo describes a font face resolved by a FontProvider. FaceIndex is
// -1 when the face should be matched by PostscriptName instead of index.
// BackendHandle is an opaque value the provider hands back to its paired
// TextRenderer; the core never interprets it.
type FaceInfo struct {
	FamilyName     string
	PostscriptName string
	Filename       string
	FaceIndex      int
	FontBytes      []byte
	ProviderTag    string
	BackendHandle  interface{}
}

// Sentinel FontProvider/TextRenderer errors.
var (
	ErrFontNotFound      = errors.New("render: font not found")
	ErrCodePointNotFound = errors.New("render: codepoint not found in font")
	ErrOther             = errors.New("render: font provider error")
)

// FontProvider resolves a font family name (and optionally a specific
// codepoint it must cover) to a FaceInfo.
type FontProvider interface {
	// Lookup resolves familyName. If hasCodepoint is true, the returned
	// face must cover codepoint, or ErrCodePointNotFound is returned.
	Lookup(familyName string, codepoint uint32, hasCodepoint bool) (FaceInfo, error)
	SetLanguage(iso6392LanguageCode uint32)
}

// NullFontProvider is the zero-dependency default: every lookup fails with
// ErrFontNotFound. It lets the core build and exercise its
// fallback/error-propagation paths without a real font backend.
type NullFontProvider struct{}

func (NullFontProvider) Lookup(familyName string, codepoint uint32, hasCodepoint bool) (FaceInfo, error) {
	return FaceInfo{}, ErrFontNotFound
}

func (NullFontProvider) SetLanguage(iso6392LanguageCode uint32) {}
