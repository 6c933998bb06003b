// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/imaging"
	"github.com/olegiv/rocknbeef-go/internal/storage"
	"github.com/olegiv/rocknbeef-go/internal/store"
	"github.com/olegiv/rocknbeef-go/internal/util"
)

// PDFContentType is the content type of block documents.
const PDFContentType = "application/pdf"

// Upload is one file of a multi-file gallery upload.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// UploadBackground converts the image to WebP, stores it under blocks/ and
// points the block's background at its public URL.
func (e *Editor) UploadBackground(ctx context.Context, st State, id int64, r io.Reader) (State, error) {
	b, ok := st.Block(id)
	if !ok {
		return st, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}

	img, err := e.images.ToWebP(r)
	if err != nil {
		return st, fmt.Errorf("converting background: %w", err)
	}

	now := e.now()
	objectPath := storage.BlockBackgroundPath(b.Slug, b.ID, now)
	if err := e.objects.Upload(ctx, objectPath, img.Reader(), storage.UploadOptions{
		ContentType: imaging.ContentType,
		Upsert:      true,
	}); err != nil {
		return st, fmt.Errorf("uploading background: %w", err)
	}

	publicURL := e.objects.PublicURL(objectPath)
	if err := e.store.UpdateBlockBackground(ctx, store.UpdateBlockBackgroundParams{
		BackgroundImage: publicURL,
		UpdatedAt:       now,
		ID:              b.ID,
	}); err != nil {
		return st, fmt.Errorf("saving background: %w", err)
	}

	e.logger.Info("block background uploaded", "block_id", b.ID, "path", objectPath, "bytes", img.Size())

	b.BackgroundImage = publicURL
	b.UpdatedAt = now
	return st.WithBlock(b), nil
}

// UploadPDF stores a PDF under docs/ and attaches it to the block.
func (e *Editor) UploadPDF(ctx context.Context, st State, id int64, r io.Reader) (State, error) {
	b, ok := st.Block(id)
	if !ok {
		return st, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return st, fmt.Errorf("reading pdf: %w", err)
	}
	if http.DetectContentType(data) != PDFContentType {
		return st, ErrNotPDF
	}

	now := e.now()
	objectPath := storage.BlockPDFPath(b.Slug, b.ID, now)
	if err := e.objects.Upload(ctx, objectPath, bytes.NewReader(data), storage.UploadOptions{
		ContentType: PDFContentType,
		Upsert:      true,
	}); err != nil {
		return st, fmt.Errorf("uploading pdf: %w", err)
	}

	publicURL := e.objects.PublicURL(objectPath)
	if err := e.store.UpdateBlockPDF(ctx, store.UpdateBlockPDFParams{
		PdfUrl:    util.NullStringFromValue(publicURL),
		UpdatedAt: now,
		ID:        b.ID,
	}); err != nil {
		return st, fmt.Errorf("saving pdf: %w", err)
	}

	b.PDFURL = publicURL
	b.UpdatedAt = now
	return st.WithBlock(b), nil
}

// RemovePDF detaches the block's PDF, then removes the stored object.
// A failed object removal is returned as a warning outcome.
func (e *Editor) RemovePDF(ctx context.Context, st State, id int64) (State, Outcome, error) {
	b, ok := st.Block(id)
	if !ok {
		return st, Outcome{}, fmt.Errorf("block %d: %w", id, ErrBlockNotFound)
	}
	if b.PDFURL == "" {
		return st, Outcome{Entity: EntityBlock, ID: id}, nil
	}

	now := e.now()
	if err := e.store.UpdateBlockPDF(ctx, store.UpdateBlockPDFParams{UpdatedAt: now, ID: id}); err != nil {
		return st, Outcome{}, fmt.Errorf("clearing pdf: %w", err)
	}

	outcome := e.removeObject(ctx, id, b.PDFURL)

	b.PDFURL = ""
	b.UpdatedAt = now
	return st.WithBlock(b), outcome, nil
}

// UploadGallery converts and stores each file, then inserts a gallery row
// for it. A failed file does not stop the others. The gallery is reloaded
// from the store afterwards.
func (e *Editor) UploadGallery(ctx context.Context, st State, files []Upload, userID string) (State, []Outcome, error) {
	outcomes := make([]Outcome, 0, len(files))
	position := content.NextPosition(st.Gallery, func(g content.GalleryItem) int64 { return g.Position })
	var last time.Time

	for _, f := range files {
		now := e.now()
		if now.UnixMilli() <= last.UnixMilli() {
			now = last.Add(time.Millisecond)
		}
		last = now

		outcome := Outcome{Entity: EntityGallery, Name: imaging.WebPName(f.Name)}
		row, err := e.uploadGalleryFile(ctx, f, position, userID, now)
		if err != nil {
			outcome.Err = err
			e.logger.Warn("gallery upload failed", "file", f.Name, "error", err)
		} else {
			outcome.ID = row.ID
			position++
		}
		outcomes = append(outcomes, outcome)
	}

	rows, err := e.store.ListGalleryItems(ctx)
	if err != nil {
		return st, outcomes, fmt.Errorf("listing gallery: %w", err)
	}
	return st.WithGallery(e.galleryFromStore(rows)), outcomes, nil
}

func (e *Editor) uploadGalleryFile(ctx context.Context, f Upload, position int64, userID string, now time.Time) (store.GalleryItem, error) {
	rc, err := f.Open()
	if err != nil {
		return store.GalleryItem{}, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	img, err := e.images.ToWebP(rc)
	if err != nil {
		return store.GalleryItem{}, fmt.Errorf("converting %s: %w", f.Name, err)
	}

	objectPath := storage.GalleryPath(f.Name, now)
	if err := e.objects.Upload(ctx, objectPath, img.Reader(), storage.UploadOptions{
		ContentType: imaging.ContentType,
	}); err != nil {
		return store.GalleryItem{}, fmt.Errorf("uploading %s: %w", f.Name, err)
	}

	row, err := e.store.CreateGalleryItem(ctx, store.CreateGalleryItemParams{
		ImageUrl:  e.objects.PublicURL(objectPath),
		Position:  position,
		CreatedBy: userID,
		CreatedAt: now,
	})
	if err != nil {
		return store.GalleryItem{}, fmt.Errorf("saving %s: %w", f.Name, err)
	}
	return row, nil
}

// RemoveGalleryItem deletes the gallery row, then the stored image.
// A failed row delete aborts; a failed image removal is a warning outcome.
func (e *Editor) RemoveGalleryItem(ctx context.Context, st State, id int64) (State, Outcome, error) {
	item, ok := st.GalleryItem(id)
	if !ok {
		return st, Outcome{}, fmt.Errorf("gallery item %d: %w", id, ErrGalleryItemNotFound)
	}

	if err := e.store.DeleteGalleryItem(ctx, id); err != nil {
		return st, Outcome{}, fmt.Errorf("deleting gallery item %d: %w", id, err)
	}

	outcome := e.removeObject(ctx, id, item.ImageURL)
	return st.WithoutGalleryItem(id), outcome, nil
}

// removeObject deletes the object behind a public URL. URLs outside the
// bucket are left alone.
func (e *Editor) removeObject(ctx context.Context, id int64, publicURL string) Outcome {
	outcome := Outcome{Entity: EntityObject, ID: id}
	objectPath, ok := e.objects.ExtractPath(publicURL)
	if !ok {
		return outcome
	}
	outcome.Name = objectPath
	if err := e.objects.Remove(ctx, objectPath); err != nil {
		e.logger.Warn("failed to remove stored object", "path", objectPath, "error", err)
		outcome.Warning = err.Error()
	}
	return outcome
}
