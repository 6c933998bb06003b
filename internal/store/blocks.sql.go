package store

import (
	"context"
	"database/sql"
	"time"
)

const blockColumns = `id, slug, visible, background_image, pdf_url, pdf_button_text, link_url, link_text, position, created_by, created_at, updated_at`

func scanBlock(row interface{ Scan(...any) error }) (Block, error) {
	var i Block
	err := row.Scan(
		&i.ID,
		&i.Slug,
		&i.Visible,
		&i.BackgroundImage,
		&i.PdfUrl,
		&i.PdfButtonText,
		&i.LinkUrl,
		&i.LinkText,
		&i.Position,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listBlocks = `-- name: ListBlocks :many
SELECT ` + blockColumns + ` FROM blocks ORDER BY position ASC, id ASC
`

func (q *Queries) ListBlocks(ctx context.Context) ([]Block, error) {
	rows, err := q.db.QueryContext(ctx, listBlocks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Block
	for rows.Next() {
		i, err := scanBlock(rows)
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

const getBlock = `-- name: GetBlock :one
SELECT ` + blockColumns + ` FROM blocks WHERE id = ?
`

func (q *Queries) GetBlock(ctx context.Context, id int64) (Block, error) {
	return scanBlock(q.db.QueryRowContext(ctx, getBlock, id))
}

const createBlock = `-- name: CreateBlock :one
INSERT INTO blocks (slug, visible, position, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + blockColumns + `
`

type CreateBlockParams struct {
	Slug      string    `json:"slug"`
	Visible   bool      `json:"visible"`
	Position  int64     `json:"position"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Queries) CreateBlock(ctx context.Context, arg CreateBlockParams) (Block, error) {
	row := q.db.QueryRowContext(ctx, createBlock,
		arg.Slug,
		arg.Visible,
		arg.Position,
		arg.CreatedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanBlock(row)
}

const updateBlock = `-- name: UpdateBlock :exec
UPDATE blocks SET
    background_image = ?,
    link_url = ?,
    link_text = ?,
    visible = ?,
    position = ?,
    pdf_url = ?,
    pdf_button_text = ?,
    updated_at = ?
WHERE id = ?
`

type UpdateBlockParams struct {
	BackgroundImage string         `json:"background_image"`
	LinkUrl         string         `json:"link_url"`
	LinkText        string         `json:"link_text"`
	Visible         bool           `json:"visible"`
	Position        int64          `json:"position"`
	PdfUrl          sql.NullString `json:"pdf_url"`
	PdfButtonText   sql.NullString `json:"pdf_button_text"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ID              int64          `json:"id"`
}

func (q *Queries) UpdateBlock(ctx context.Context, arg UpdateBlockParams) error {
	_, err := q.db.ExecContext(ctx, updateBlock,
		arg.BackgroundImage,
		arg.LinkUrl,
		arg.LinkText,
		arg.Visible,
		arg.Position,
		arg.PdfUrl,
		arg.PdfButtonText,
		arg.UpdatedAt,
		arg.ID,
	)
	return err
}

const updateBlockPosition = `-- name: UpdateBlockPosition :exec
UPDATE blocks SET position = ?, updated_at = ? WHERE id = ?
`

type UpdateBlockPositionParams struct {
	Position  int64     `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) UpdateBlockPosition(ctx context.Context, arg UpdateBlockPositionParams) error {
	_, err := q.db.ExecContext(ctx, updateBlockPosition, arg.Position, arg.UpdatedAt, arg.ID)
	return err
}

const updateBlockBackground = `-- name: UpdateBlockBackground :exec
UPDATE blocks SET background_image = ?, updated_at = ? WHERE id = ?
`

type UpdateBlockBackgroundParams struct {
	BackgroundImage string    `json:"background_image"`
	UpdatedAt       time.Time `json:"updated_at"`
	ID              int64     `json:"id"`
}

func (q *Queries) UpdateBlockBackground(ctx context.Context, arg UpdateBlockBackgroundParams) error {
	_, err := q.db.ExecContext(ctx, updateBlockBackground, arg.BackgroundImage, arg.UpdatedAt, arg.ID)
	return err
}

const updateBlockPDF = `-- name: UpdateBlockPDF :exec
UPDATE blocks SET pdf_url = ?, updated_at = ? WHERE id = ?
`

type UpdateBlockPDFParams struct {
	PdfUrl    sql.NullString `json:"pdf_url"`
	UpdatedAt time.Time      `json:"updated_at"`
	ID        int64          `json:"id"`
}

func (q *Queries) UpdateBlockPDF(ctx context.Context, arg UpdateBlockPDFParams) error {
	_, err := q.db.ExecContext(ctx, updateBlockPDF, arg.PdfUrl, arg.UpdatedAt, arg.ID)
	return err
}

const deleteBlock = `-- name: DeleteBlock :exec
DELETE FROM blocks WHERE id = ?
`

func (q *Queries) DeleteBlock(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlock, id)
	return err
}

const countBlocks = `-- name: CountBlocks :one
SELECT COUNT(*) FROM blocks
`

func (q *Queries) CountBlocks(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlocks).Scan(&count)
	return count, err
}
