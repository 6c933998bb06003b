// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/olegiv/rocknbeef-go/internal/i18n"
)

// ContextKeyLanguage holds the visitor's language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "rnb_lang"

// Language detects the visitor's language.
// Priority order:
// 1. Query parameter ?lang=xx (explicit switch, updates the cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. Default language
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""

		if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && i18n.IsSupported(q) {
			lang = q
			SetLanguageCookie(w, lang)
		}

		if lang == "" {
			if cookie, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(cookie.Value) {
				lang = strings.ToLower(cookie.Value)
			}
		}

		if lang == "" {
			if accept := r.Header.Get("Accept-Language"); accept != "" {
				lang = i18n.MatchLanguage(accept)
			}
		}

		if lang == "" {
			lang = i18n.DefaultLanguage
		}

		ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLang returns the request's language, or the default one outside Language.
func GetLang(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
