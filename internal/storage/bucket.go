// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage implements the public object bucket holding block
// backgrounds, gallery photos and PDF documents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Object path prefixes.
const (
	PrefixBlocks  = "blocks/"
	PrefixGallery = "gallery/"
	PrefixDocs    = "docs/"
)

// PublicPathPrefix is the URL path under which bucket objects are served.
const PublicPathPrefix = "/storage/v1/object/public/"

var (
	// ErrInvalidPath is returned for empty, absolute or escaping object paths.
	ErrInvalidPath = errors.New("invalid object path")
	// ErrObjectExists is returned when uploading without upsert over an existing object.
	ErrObjectExists = errors.New("object already exists")
	// ErrNotFound is returned when an object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrContentType is returned when the declared content type contradicts the path extension.
	ErrContentType = errors.New("content type does not match object extension")
)

// UploadOptions controls a single upload.
type UploadOptions struct {
	ContentType string
	Upsert      bool
}

// Bucket is a filesystem-backed public bucket.
type Bucket struct {
	name    string
	root    string
	baseURL string
}

// NewBucket creates the bucket directory if needed.
// publicBaseURL may be empty, in which case public URLs are site-relative.
func NewBucket(name, root, publicBaseURL string) (*Bucket, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("invalid bucket name %q", name)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving bucket root: %w", err)
	}
	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, fmt.Errorf("creating bucket root: %w", err)
	}
	return &Bucket{
		name:    name,
		root:    absRoot,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Upload stores r under objectPath.
func (b *Bucket) Upload(ctx context.Context, objectPath string, r io.Reader, opts UploadOptions) error {
	target, err := b.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.ContentType != "" {
		if byExt := mime.TypeByExtension(path.Ext(objectPath)); byExt != "" && !strings.HasPrefix(byExt, opts.ContentType) {
			return fmt.Errorf("%s as %s: %w", objectPath, opts.ContentType, ErrContentType)
		}
	}

	if !opts.Upsert {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%s: %w", objectPath, ErrObjectExists)
		}
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating object directory: %w", err)
	}

	// Write to a temp file first so readers never see a partial object.
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing object: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting object permissions: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("storing object: %w", err)
	}
	return nil
}

// Remove deletes the given objects. Missing objects are ignored.
func (b *Bucket) Remove(ctx context.Context, objectPaths ...string) error {
	var errs []error
	for _, p := range objectPaths {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := b.resolve(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Open opens an object for reading. Directories are reported as not found.
func (b *Bucket) Open(objectPath string) (*os.File, fs.FileInfo, error) {
	target, err := b.resolve(objectPath)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// List returns the objects under prefix, skipping in-progress uploads.
func (b *Bucket) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	err := filepath.WalkDir(b.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		rel, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !strings.HasPrefix(rel, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{Path: rel, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing bucket %s: %w", b.name, err)
	}
	return objects, nil
}

// PublicURL returns the URL under which objectPath is served.
func (b *Bucket) PublicURL(objectPath string) string {
	return b.baseURL + PublicPathPrefix + b.name + "/" + strings.TrimLeft(objectPath, "/")
}

// ExtractPath reverses PublicURL: it returns the part of the URL path after
// the "/public/{bucket}/" marker. It reports false when the marker is absent
// or the URL cannot be parsed.
func (b *Bucket) ExtractPath(publicURL string) (string, bool) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	marker := "/public/" + b.name + "/"
	i := strings.Index(u.Path, marker)
	if i == -1 {
		return "", false
	}
	p := u.Path[i+len(marker):]
	if p == "" {
		return "", false
	}
	return p, true
}

// ToPublicURLIfNeeded normalizes a stored image reference to a public URL.
// Absolute and root-relative URLs pass through; paths under a known prefix
// resolve as they are; bare names are treated as gallery objects.
func (b *Bucket) ToPublicURLIfNeeded(v string) string {
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "http") || strings.HasPrefix(v, "/") {
		return v
	}
	if !strings.HasPrefix(v, PrefixGallery) && !strings.HasPrefix(v, PrefixBlocks) && !strings.HasPrefix(v, PrefixDocs) {
		v = PrefixGallery + v
	}
	return b.PublicURL(v)
}

// resolve maps an object path to a file inside the bucket root.
func (b *Bucket) resolve(objectPath string) (string, error) {
	if objectPath == "" || strings.HasPrefix(objectPath, "/") || strings.Contains(objectPath, "\\") {
		return "", fmt.Errorf("%q: %w", objectPath, ErrInvalidPath)
	}
	clean := path.Clean(objectPath)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%q: %w", objectPath, ErrInvalidPath)
	}

	target := filepath.Join(b.root, filepath.FromSlash(clean))
	if target != b.root && !strings.HasPrefix(target, b.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", objectPath, ErrInvalidPath)
	}
	return target, nil
}
