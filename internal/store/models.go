package store

import (
	"database/sql"
	"time"
)

type Block struct {
	ID              int64          `json:"id"`
	Slug            string         `json:"slug"`
	Visible         bool           `json:"visible"`
	BackgroundImage string         `json:"background_image"`
	PdfUrl          sql.NullString `json:"pdf_url"`
	PdfButtonText   sql.NullString `json:"pdf_button_text"`
	LinkUrl         string         `json:"link_url"`
	LinkText        string         `json:"link_text"`
	Position        int64          `json:"position"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type GalleryItem struct {
	ID        int64     `json:"id"`
	ImageUrl  string    `json:"image_url"`
	CaptionPl string    `json:"caption_pl"`
	CaptionEn string    `json:"caption_en"`
	CaptionDe string    `json:"caption_de"`
	CaptionEs string    `json:"caption_es"`
	Position  int64     `json:"position"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Translation struct {
	ID          int64     `json:"id"`
	BlockID     int64     `json:"block_id"`
	Lang        string    `json:"lang"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"password_hash"`
	CreatedAt    time.Time    `json:"created_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
}
