// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content holds the site's content model and the rules for merging
// blocks, translations and gallery items into what visitors see.
package content

import "strings"

// Lang is a two-letter language code of the public site.
type Lang string

// Supported languages.
const (
	LangPL Lang = "pl"
	LangEN Lang = "en"
	LangDE Lang = "de"
	LangES Lang = "es"
	LangUK Lang = "uk"
)

// DefaultLang is the source language; all other languages are translated from it.
const DefaultLang = LangPL

// Languages lists the site languages in switcher order.
var Languages = []Lang{LangPL, LangEN, LangDE, LangES, LangUK}

// GalleryLanguages lists the languages that carry gallery captions.
// Ukrainian has no caption column.
var GalleryLanguages = []Lang{LangPL, LangEN, LangDE, LangES}

// ParseLang lower-cases s and reports whether it is a supported language.
func ParseLang(s string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range Languages {
		if l == supported {
			return l, true
		}
	}
	return "", false
}

// NormalizeLang returns the supported language for s, or DefaultLang.
func NormalizeLang(s string) Lang {
	if l, ok := ParseLang(s); ok {
		return l
	}
	return DefaultLang
}

// Upper returns the code as used by translation providers ("EN").
func (l Lang) Upper() string {
	return strings.ToUpper(string(l))
}

// HasGalleryCaption reports whether gallery items carry a caption in l.
func (l Lang) HasGalleryCaption() bool {
	for _, g := range GalleryLanguages {
		if l == g {
			return true
		}
	}
	return false
}
