// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rocknbeef-go/internal/auth"
	"github.com/olegiv/rocknbeef-go/internal/i18n"
	"github.com/olegiv/rocknbeef-go/internal/middleware"
	"github.com/olegiv/rocknbeef-go/internal/render"
	"github.com/olegiv/rocknbeef-go/internal/store"
)

// adminLang is the language of the admin interface.
const adminLang = i18n.DefaultLanguage

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	now             func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// LoginData is the view model of the login page.
type LoginData struct {
	Email string
	Error string
}

// LoginForm renders the login page. Signed-in users go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetString(r.Context(), middleware.SessionKeyUserID); userID != "" {
		if _, err := h.queries.GetUserByID(r.Context(), userID); err == nil {
			http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
			return
		}
	}

	h.renderLogin(w, r, http.StatusOK, LoginData{})
}

// Login handles the login form submission. Failures re-render the form with
// the message shown inline.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, LoginData{Error: i18n.T(adminLang, "msg.invalid_form")})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data := LoginData{Email: email}

	if email == "" || password == "" {
		data.Error = i18n.T(adminLang, "auth.email_password_required")
		h.renderLogin(w, r, http.StatusOK, data)
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "email", email)
			data.Error = i18n.T(adminLang, "auth.account_locked", formatDuration(remaining))
			h.renderLogin(w, r, http.StatusTooManyRequests, data)
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
			auth.SpendCheckTime(password)
		} else {
			slog.Error("database error during login", "error", err)
		}
		h.loginFailed(w, r, data)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		h.loginFailed(w, r, data)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: h.now(),
		ID:          user.ID,
	}); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// New token on login against session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// loginFailed records the failed attempt and re-renders the form.
// Unknown accounts count too, so responses do not reveal which emails exist.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, data LoginData) {
	data.Error = i18n.T(adminLang, "auth.invalid_credentials")
	status := http.StatusUnauthorized

	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(data.Email); locked {
			data.Error = i18n.T(adminLang, "auth.too_many_attempts", formatDuration(lockDuration))
			status = http.StatusTooManyRequests
		} else if remaining := h.loginProtection.GetRemainingAttempts(data.Email); remaining > 0 && remaining <= 3 {
			data.Error = i18n.T(adminLang, "auth.attempts_remaining", remaining)
		}
	}

	h.renderLogin(w, r, status, data)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	if err := h.renderer.RenderStatus(w, r, status, "auth/login", render.TemplateData{
		Title: i18n.T(adminLang, "auth.login_title"),
		Lang:  adminLang,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetString(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)
	flashAndRedirect(w, r, h.renderer, redirectLogin, i18n.T(adminLang, "auth.logged_out"), render.FlashInfo)
}

// formatDuration formats a lockout duration for the Polish admin interface.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d s", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d min", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d godz.", int(d.Hours()))
	}
}
