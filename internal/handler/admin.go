// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/rocknbeef-go/internal/cache"
	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/editor"
	"github.com/olegiv/rocknbeef-go/internal/i18n"
	"github.com/olegiv/rocknbeef-go/internal/middleware"
	"github.com/olegiv/rocknbeef-go/internal/render"
)

// multipartMemory is the part of an upload kept in memory before spilling to disk.
const multipartMemory = 8 << 20

// AdminHandler handles the content editor routes.
type AdminHandler struct {
	editor         *editor.Editor
	renderer       *render.Renderer
	homeCache      *cache.HomeCache
	maxUploadBytes int64
}

// NewAdminHandler creates a new AdminHandler. homeCache may be nil.
func NewAdminHandler(ed *editor.Editor, renderer *render.Renderer, homeCache *cache.HomeCache, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{
		editor:         ed,
		renderer:       renderer,
		homeCache:      homeCache,
		maxUploadBytes: maxUploadBytes,
	}
}

// DashboardData is the view model of the editor screen.
type DashboardData struct {
	Lang      content.Lang
	Languages []content.Lang
	Blocks    []BlockRow
	Gallery   []GalleryRow
	// Captions is false for languages without gallery caption columns.
	Captions  bool
	UserEmail string
}

// BlockRow is one block as edited in the current language.
type BlockRow struct {
	content.Block
	Title       string
	Description string
	// Source is the Polish text auto-translate starts from.
	Source       content.Text
	CanTranslate bool
	Job          editor.Job
	First        bool
	Last         bool
}

// GalleryRow is one gallery photo as edited in the current language.
type GalleryRow struct {
	content.GalleryItem
	Caption string
}

// Dashboard renders the editor for the language in ?lang=.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.URL.Query().Get(formFieldLang))

	st, err := h.editor.Load(r.Context(), lang)
	if err != nil {
		logAndInternalError(w, "failed to load editor state", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: i18n.T(adminLang, "admin.title"),
		Lang:  adminLang,
		Data:  h.dashboardData(st, middleware.GetUserEmail(r)),
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}

func (h *AdminHandler) dashboardData(st editor.State, email string) DashboardData {
	data := DashboardData{
		Lang:      st.Lang,
		Languages: content.Languages,
		Blocks:    make([]BlockRow, 0, len(st.Blocks)),
		Gallery:   make([]GalleryRow, 0, len(st.Gallery)),
		Captions:  st.Lang.HasGalleryCaption(),
		UserEmail: email,
	}

	jobs := h.editor.Jobs()
	for i, b := range st.Blocks {
		tr := st.Translation(b.ID, st.Lang)
		data.Blocks = append(data.Blocks, BlockRow{
			Block:        b,
			Title:        tr.Title,
			Description:  tr.Description,
			Source:       st.Translation(b.ID, content.DefaultLang).Text(),
			CanTranslate: st.Lang != content.DefaultLang,
			Job:          jobs.Get(b.ID, st.Lang),
			First:        i == 0,
			Last:         i == len(st.Blocks)-1,
		})
	}

	for _, g := range st.Gallery {
		data.Gallery = append(data.Gallery, GalleryRow{GalleryItem: g, Caption: g.CaptionFor(st.Lang)})
	}

	return data
}

// AddBlock handles POST /admin/blocks.
func (h *AdminHandler) AddBlock(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.FormValue(formFieldLang))
	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	if _, err := h.editor.AddBlock(r.Context(), st, middleware.GetUserID(r)); err != nil {
		slog.Error("failed to add block", "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.save_failed", err.Error()))
		return
	}

	h.invalidate(r)
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.block_added"))
}

// DeleteBlock handles POST /admin/blocks/{id}/delete.
func (h *AdminHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.FormValue(formFieldLang))
	id, ok := h.parseID(w, r, lang)
	if !ok {
		return
	}
	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	if _, err := h.editor.DeleteBlock(r.Context(), st, id); err != nil {
		slog.Error("failed to delete block", "block_id", id, "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.block_delete_failed", err.Error()))
		return
	}

	h.invalidate(r)
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.block_deleted"))
}

// MoveBlock handles POST /admin/blocks/{id}/move with dir=-1 or dir=1.
func (h *AdminHandler) MoveBlock(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.FormValue(formFieldLang))
	id, ok := h.parseID(w, r, lang)
	if !ok {
		return
	}
	dir, err := strconv.Atoi(r.FormValue(formFieldDir))
	if err != nil {
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.invalid_form"))
		return
	}
	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	if _, err := h.editor.MoveBlock(r.Context(), st, id, dir); err != nil {
		slog.Error("failed to move block", "block_id", id, "dir", dir, "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.move_failed", err.Error()))
		return
	}

	h.invalidate(r)
	http.Redirect(w, r, adminURL(lang), http.StatusSeeOther)
}

// UploadBackground handles POST /admin/blocks/{id}/background.
func (h *AdminHandler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	h.uploadBlockFile(w, r, h.editor.UploadBackground, "msg.background_uploaded")
}

// UploadPDF handles POST /admin/blocks/{id}/pdf.
func (h *AdminHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.uploadBlockFile(w, r, h.editor.UploadPDF, "msg.pdf_uploaded")
}

type blockUpload func(ctx context.Context, st editor.State, id int64, r io.Reader) (editor.State, error)

func (h *AdminHandler) uploadBlockFile(w http.ResponseWriter, r *http.Request, upload blockUpload, successKey string) {
	if !h.parseMultipart(w, r) {
		return
	}
	lang := editingLang(r.FormValue(formFieldLang))
	id, ok := h.parseID(w, r, lang)
	if !ok {
		return
	}

	file, _, err := r.FormFile(formFieldFile)
	if err != nil {
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.no_files"))
		return
	}
	defer func() { _ = file.Close() }()

	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	if _, err := upload(r.Context(), st, id, file); err != nil {
		slog.Error("block upload failed", "block_id", id, "error", err)
		msg := i18n.T(adminLang, "msg.upload_failed", err.Error())
		if errors.Is(err, editor.ErrNotPDF) {
			msg = i18n.T(adminLang, "msg.not_pdf")
		}
		flashError(w, r, h.renderer, adminURL(lang), msg)
		return
	}

	h.invalidate(r)
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, successKey))
}

// RemovePDF handles POST /admin/blocks/{id}/pdf/delete.
func (h *AdminHandler) RemovePDF(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.FormValue(formFieldLang))
	id, ok := h.parseID(w, r, lang)
	if !ok {
		return
	}
	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	_, outcome, err := h.editor.RemovePDF(r.Context(), st, id)
	if err != nil {
		slog.Error("failed to remove pdf", "block_id", id, "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.save_failed", err.Error()))
		return
	}

	h.invalidate(r)
	if outcome.Warning != "" {
		flashAndRedirect(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.storage_cleanup_failed", outcome.Warning), render.FlashWarning)
		return
	}
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.pdf_removed"))
}

// AutoTranslate handles POST /admin/blocks/{id}/translate/{lang}.
// The target language becomes the editing language of the redirect.
func (h *AdminHandler) AutoTranslate(w http.ResponseWriter, r *http.Request) {
	target := editingLang(chi.URLParam(r, "lang"))
	id, ok := h.parseID(w, r, target)
	if !ok {
		return
	}
	st, ok := h.load(w, r, target)
	if !ok {
		return
	}

	_, err := h.editor.AutoTranslate(r.Context(), st, id, target, middleware.GetUserID(r))
	switch {
	case err == nil:
		h.invalidate(r)
		flashSuccess(w, r, h.renderer, adminURL(target), i18n.T(adminLang, "msg.translated", target.Upper()))
	case errors.Is(err, editor.ErrNoSourceText):
		flashError(w, r, h.renderer, adminURL(target), i18n.T(adminLang, "msg.no_source"))
	case errors.Is(err, editor.ErrJobRunning):
		flashAndRedirect(w, r, h.renderer, adminURL(target), i18n.T(adminLang, "msg.translation_running", target.Upper()), render.FlashWarning)
	case errors.Is(err, editor.ErrBlockNotFound):
		flashError(w, r, h.renderer, adminURL(target), i18n.T(adminLang, "msg.not_found"))
	default:
		flashError(w, r, h.renderer, adminURL(target), i18n.T(adminLang, "msg.translation_failed", err.Error()))
	}
}

// UploadGallery handles POST /admin/gallery with one or more files.
func (h *AdminHandler) UploadGallery(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	lang := editingLang(r.FormValue(formFieldLang))

	headers := r.MultipartForm.File[formFieldFiles]
	if len(headers) == 0 {
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.no_files"))
		return
	}

	uploads := make([]editor.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, editor.Upload{
			Name: fh.Filename,
			Open: openPart(fh),
		})
	}

	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	_, outcomes, err := h.editor.UploadGallery(r.Context(), st, uploads, middleware.GetUserID(r))
	if err != nil {
		slog.Error("failed to reload gallery after upload", "error", err)
	}

	failed := editor.Failed(outcomes)
	if uploaded := len(outcomes) - len(failed); uploaded > 0 {
		h.invalidate(r)
	}

	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, o := range failed {
			names[i] = o.Name
		}
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.photos_failed", strings.Join(names, ", ")))
		return
	}
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.photos_uploaded", len(outcomes)))
}

func openPart(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// RemoveGalleryItem handles POST /admin/gallery/{id}/delete.
func (h *AdminHandler) RemoveGalleryItem(w http.ResponseWriter, r *http.Request) {
	lang := editingLang(r.FormValue(formFieldLang))
	id, ok := h.parseID(w, r, lang)
	if !ok {
		return
	}
	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	_, outcome, err := h.editor.RemoveGalleryItem(r.Context(), st, id)
	if err != nil {
		slog.Error("failed to remove gallery item", "gallery_id", id, "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.photo_delete_failed", err.Error()))
		return
	}

	h.invalidate(r)
	if outcome.Warning != "" {
		flashAndRedirect(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.storage_cleanup_failed", outcome.Warning), render.FlashWarning)
		return
	}
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.photo_deleted"))
}

// SaveAll handles POST /admin/save: every block field, the editing
// language's translations and the gallery captions.
func (h *AdminHandler) SaveAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectAdmin, i18n.T(adminLang, "msg.invalid_form"))
		return
	}
	lang := editingLang(r.PostForm.Get(formFieldLang))

	st, ok := h.load(w, r, lang)
	if !ok {
		return
	}

	st, err := applyForm(st, r.PostForm)
	if err != nil {
		slog.Warn("invalid editor form", "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.invalid_form"))
		return
	}

	_, outcomes := h.editor.SaveAll(r.Context(), st, middleware.GetUserID(r))
	h.invalidate(r)

	if failed := editor.Failed(outcomes); len(failed) > 0 {
		msgs := make([]string, len(failed))
		for i, o := range failed {
			msgs[i] = fmt.Sprintf("%s #%d: %v", o.Entity, o.ID, o.Err)
			slog.Error("save step failed", "entity", o.Entity, "id", o.ID, "error", o.Err)
		}
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.save_failed", strings.Join(msgs, "; ")))
		return
	}
	flashSuccess(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.saved"))
}

// Form field names of the editor screen: b{id}.{block field},
// t{id}.{translation field} and g{id}.caption.
func blockFieldName(id int64, field editor.BlockField) string {
	return fmt.Sprintf("b%d.%s", id, field)
}

func translationFieldName(id int64, field editor.TranslationField) string {
	return fmt.Sprintf("t%d.%s", id, field)
}

func captionFieldName(id int64) string {
	return fmt.Sprintf("g%d.caption", id)
}

// editableBlockFields are the block fields posted by the editor form.
// The background and PDF URL change only through their own uploads.
var editableBlockFields = []editor.BlockField{
	editor.FieldLinkURL,
	editor.FieldLinkText,
	editor.FieldPosition,
	editor.FieldPDFButtonText,
}

// applyForm folds the posted editor form into st. Blocks whose position
// field is absent were not on the submitted page and keep their values.
func applyForm(st editor.State, form url.Values) (editor.State, error) {
	var err error
	for _, b := range st.Blocks {
		if !form.Has(blockFieldName(b.ID, editor.FieldPosition)) {
			continue
		}
		for _, field := range editableBlockFields {
			if st, err = st.WithBlockField(b.ID, field, form.Get(blockFieldName(b.ID, field))); err != nil {
				return st, err
			}
		}
		// Unchecked boxes are not posted.
		if st, err = st.WithBlockField(b.ID, editor.FieldVisible, form.Get(blockFieldName(b.ID, editor.FieldVisible))); err != nil {
			return st, err
		}

		for _, field := range []editor.TranslationField{editor.FieldTitle, editor.FieldDescription} {
			name := translationFieldName(b.ID, field)
			if !form.Has(name) {
				continue
			}
			if st, err = st.WithTranslationField(b.ID, st.Lang, field, form.Get(name)); err != nil {
				return st, err
			}
		}
	}

	for _, g := range st.Gallery {
		if name := captionFieldName(g.ID); form.Has(name) {
			st = st.WithGalleryCaption(g.ID, st.Lang, form.Get(name))
		}
	}
	return st, nil
}

// load reads the editor state, redirecting with an error flash on failure.
func (h *AdminHandler) load(w http.ResponseWriter, r *http.Request, lang content.Lang) (editor.State, bool) {
	st, err := h.editor.Load(r.Context(), lang)
	if err != nil {
		slog.Error("failed to load editor state", "error", err)
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.save_failed", err.Error()))
		return st, false
	}
	return st, true
}

func (h *AdminHandler) parseID(w http.ResponseWriter, r *http.Request, lang content.Lang) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		flashError(w, r, h.renderer, adminURL(lang), i18n.T(adminLang, "msg.not_found"))
		return 0, false
	}
	return id, true
}

func (h *AdminHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		slog.Warn("failed to parse upload", "error", err)
		flashError(w, r, h.renderer, redirectAdmin, i18n.T(adminLang, "msg.upload_failed", err.Error()))
		return false
	}
	return true
}

// invalidate drops the cached public pages after a write.
func (h *AdminHandler) invalidate(r *http.Request) {
	if h.homeCache != nil {
		h.homeCache.Invalidate(r.Context())
	}
}

// editingLang parses a language code, defaulting to Polish.
func editingLang(code string) content.Lang {
	if lang, ok := content.ParseLang(code); ok {
		return lang
	}
	return content.DefaultLang
}

func adminURL(lang content.Lang) string {
	return redirectAdmin + "?lang=" + url.QueryEscape(string(lang))
}
