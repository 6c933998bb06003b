package store

import (
	"context"
	"time"
)

const galleryColumns = `id, image_url, caption_pl, caption_en, caption_de, caption_es, position, created_by, created_at`

func scanGalleryItem(row interface{ Scan(...any) error }) (GalleryItem, error) {
	var i GalleryItem
	err := row.Scan(
		&i.ID,
		&i.ImageUrl,
		&i.CaptionPl,
		&i.CaptionEn,
		&i.CaptionDe,
		&i.CaptionEs,
		&i.Position,
		&i.CreatedBy,
		&i.CreatedAt,
	)
	return i, err
}

const listGalleryItems = `-- name: ListGalleryItems :many
SELECT ` + galleryColumns + ` FROM gallery ORDER BY position ASC, id ASC
`

func (q *Queries) ListGalleryItems(ctx context.Context) ([]GalleryItem, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GalleryItem
	for rows.Next() {
		i, err := scanGalleryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getGalleryItem = `-- name: GetGalleryItem :one
SELECT ` + galleryColumns + ` FROM gallery WHERE id = ?
`

func (q *Queries) GetGalleryItem(ctx context.Context, id int64) (GalleryItem, error) {
	return scanGalleryItem(q.db.QueryRowContext(ctx, getGalleryItem, id))
}

const createGalleryItem = `-- name: CreateGalleryItem :one
INSERT INTO gallery (image_url, position, created_by, created_at)
VALUES (?, ?, ?, ?)
RETURNING ` + galleryColumns + `
`

type CreateGalleryItemParams struct {
	ImageUrl  string    `json:"image_url"`
	Position  int64     `json:"position"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *Queries) CreateGalleryItem(ctx context.Context, arg CreateGalleryItemParams) (GalleryItem, error) {
	row := q.db.QueryRowContext(ctx, createGalleryItem,
		arg.ImageUrl,
		arg.Position,
		arg.CreatedBy,
		arg.CreatedAt,
	)
	return scanGalleryItem(row)
}

const updateGalleryCaptions = `-- name: UpdateGalleryCaptions :exec
UPDATE gallery SET caption_pl = ?, caption_en = ?, caption_de = ?, caption_es = ?
WHERE id = ?
`

type UpdateGalleryCaptionsParams struct {
	CaptionPl string `json:"caption_pl"`
	CaptionEn string `json:"caption_en"`
	CaptionDe string `json:"caption_de"`
	CaptionEs string `json:"caption_es"`
	ID        int64  `json:"id"`
}

func (q *Queries) UpdateGalleryCaptions(ctx context.Context, arg UpdateGalleryCaptionsParams) error {
	_, err := q.db.ExecContext(ctx, updateGalleryCaptions,
		arg.CaptionPl,
		arg.CaptionEn,
		arg.CaptionDe,
		arg.CaptionEs,
		arg.ID,
	)
	return err
}

const deleteGalleryItem = `-- name: DeleteGalleryItem :exec
DELETE FROM gallery WHERE id = ?
`

func (q *Queries) DeleteGalleryItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGalleryItem, id)
	return err
}
