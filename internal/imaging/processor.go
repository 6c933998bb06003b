// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging prepares uploaded photos for the public bucket.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// Pipeline defaults.
const (
	DefaultMaxWidth = 1600
	DefaultQuality  = 85
	ContentType     = "image/webp"
)

// ErrUnsupportedFormat is returned for data that is not JPEG, PNG, GIF or WebP.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Result contains an encoded WebP image.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Size returns the encoded size in bytes.
func (r *Result) Size() int64 {
	return int64(len(r.Data))
}

// Reader returns a reader over the encoded bytes.
func (r *Result) Reader() io.Reader {
	return bytes.NewReader(r.Data)
}

// Processor converts images to bounded-width lossy WebP.
type Processor struct {
	MaxWidth int
	Quality  float32
}

// NewProcessor creates a processor with the default width cap and quality.
func NewProcessor() *Processor {
	return &Processor{
		MaxWidth: DefaultMaxWidth,
		Quality:  DefaultQuality,
	}
}

// ToWebP decodes an image, applies its EXIF orientation, scales it down to
// MaxWidth preserving aspect ratio and encodes it as lossy WebP.
// Images narrower than MaxWidth are never upscaled.
func (p *Processor) ToWebP(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if detectFormat(data) == "" {
		return nil, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))
	img = p.fitWidth(img)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	bounds := img.Bounds()
	return &Result{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// fitWidth scales img so its width does not exceed MaxWidth.
func (p *Processor) fitWidth(img image.Image) image.Image {
	width := img.Bounds().Dx()
	if p.MaxWidth <= 0 || width <= p.MaxWidth {
		return img
	}
	// Height 0 keeps the aspect ratio.
	return imaging.Resize(img, p.MaxWidth, 0, imaging.Lanczos)
}

// WebPName replaces a .jpg, .jpeg or .png extension with .webp.
// Other names are returned unchanged.
func WebPName(name string) string {
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return strings.TrimSuffix(name, ext) + ".webp"
	}
	return name
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation rotates or flips img according to an EXIF orientation value.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}
