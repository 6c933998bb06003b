// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName transliterates a user-supplied file name to ASCII and strips
// directory components and characters that are unsafe in URLs.
func SafeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}
	name = unidecode.Unidecode(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "file"
	}
	return name
}

// BlockBackgroundPath returns blocks/{slug}-{id}-{ms}.webp.
func BlockBackgroundPath(slug string, blockID int64, at time.Time) string {
	return fmt.Sprintf("%s%s-%d-%d.webp", PrefixBlocks, SafeName(slug), blockID, at.UnixMilli())
}

// BlockPDFPath returns docs/{slug}-{id}-{ms}.pdf.
func BlockPDFPath(slug string, blockID int64, at time.Time) string {
	return fmt.Sprintf("%s%s-%d-%d.pdf", PrefixDocs, SafeName(slug), blockID, at.UnixMilli())
}

// GalleryPath returns gallery/{ms}-{name}.webp for an original file name.
// The original extension is kept, so "a.jpg" becomes "{ms}-a.jpg.webp".
func GalleryPath(originalName string, at time.Time) string {
	return fmt.Sprintf("%s%d-%s.webp", PrefixGallery, at.UnixMilli(), SafeName(originalName))
}
