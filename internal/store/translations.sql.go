package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const translationColumns = `id, block_id, lang, title, description, created_by, created_at, updated_at`

func scanTranslation(row interface{ Scan(...any) error }) (Translation, error) {
	var i Translation
	err := row.Scan(
		&i.ID,
		&i.BlockID,
		&i.Lang,
		&i.Title,
		&i.Description,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTranslationsNewestFirst = `-- name: ListTranslationsNewestFirst :many
SELECT ` + translationColumns + ` FROM translations ORDER BY updated_at DESC, id DESC
`

func (q *Queries) ListTranslationsNewestFirst(ctx context.Context) ([]Translation, error) {
	rows, err := q.db.QueryContext(ctx, listTranslationsNewestFirst)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Translation
	for rows.Next() {
		i, err := scanTranslation(rows)
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

const getLatestTranslation = `-- name: GetLatestTranslation :one
SELECT ` + translationColumns + ` FROM translations
WHERE block_id = ? AND lang = ?
ORDER BY updated_at DESC, id DESC
LIMIT 1
`

type GetLatestTranslationParams struct {
	BlockID int64  `json:"block_id"`
	Lang    string `json:"lang"`
}

func (q *Queries) GetLatestTranslation(ctx context.Context, arg GetLatestTranslationParams) (Translation, error) {
	return scanTranslation(q.db.QueryRowContext(ctx, getLatestTranslation, arg.BlockID, arg.Lang))
}

const createTranslation = `-- name: CreateTranslation :one
INSERT INTO translations (block_id, lang, title, description, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + translationColumns + `
`

type CreateTranslationParams struct {
	BlockID     int64     `json:"block_id"`
	Lang        string    `json:"lang"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (q *Queries) CreateTranslation(ctx context.Context, arg CreateTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, createTranslation,
		arg.BlockID,
		arg.Lang,
		arg.Title,
		arg.Description,
		arg.CreatedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanTranslation(row)
}

const updateTranslation = `-- name: UpdateTranslation :one
UPDATE translations SET title = ?, description = ?, updated_at = ?
WHERE id = ?
RETURNING ` + translationColumns + `
`

type UpdateTranslationParams struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          int64     `json:"id"`
}

func (q *Queries) UpdateTranslation(ctx context.Context, arg UpdateTranslationParams) (Translation, error) {
	row := q.db.QueryRowContext(ctx, updateTranslation,
		arg.Title,
		arg.Description,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanTranslation(row)
}

type UpsertTranslationParams struct {
	BlockID     int64     `json:"block_id"`
	Lang        string    `json:"lang"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertTranslation updates the newest row of the (block, lang) pair or
// inserts one when the pair has no rows yet.
func (q *Queries) UpsertTranslation(ctx context.Context, arg UpsertTranslationParams) (Translation, error) {
	current, err := q.GetLatestTranslation(ctx, GetLatestTranslationParams{BlockID: arg.BlockID, Lang: arg.Lang})
	switch {
	case err == nil:
		return q.UpdateTranslation(ctx, UpdateTranslationParams{
			Title:       arg.Title,
			Description: arg.Description,
			UpdatedAt:   arg.UpdatedAt,
			ID:          current.ID,
		})
	case errors.Is(err, sql.ErrNoRows):
		return q.CreateTranslation(ctx, CreateTranslationParams{
			BlockID:     arg.BlockID,
			Lang:        arg.Lang,
			Title:       arg.Title,
			Description: arg.Description,
			CreatedBy:   arg.CreatedBy,
			CreatedAt:   arg.UpdatedAt,
			UpdatedAt:   arg.UpdatedAt,
		})
	default:
		return Translation{}, err
	}
}

const deleteTranslationsByBlock = `-- name: DeleteTranslationsByBlock :exec
DELETE FROM translations WHERE block_id = ?
`

func (q *Queries) DeleteTranslationsByBlock(ctx context.Context, blockID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTranslationsByBlock, blockID)
	return err
}
