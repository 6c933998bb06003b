// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/rocknbeef-go/internal/store"
	"github.com/olegiv/rocknbeef-go/internal/testutil"
)

// sessionCookie runs a request that stores userID in a fresh session and
// returns the resulting cookie.
func sessionCookie(t *testing.T, sm *scs.SessionManager, userID string) *http.Cookie {
	t.Helper()

	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, userID)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}
	return cookies[0]
}

func TestAuth(t *testing.T) {
	sm := scs.New()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := sm.LoadAndSave(Auth(sm)(ok))

	t.Run("no session redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		if w.Code != http.StatusSeeOther {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != LoginPath {
			t.Errorf("Location = %q, want %q", loc, LoginPath)
		}
	})

	t.Run("session passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(sessionCookie(t, sm, "u-1"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestLoadUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateTestUser(t, db, "admin@example.com", "correct horse battery")
	user, err := store.New(db).GetUserByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}

	sm := scs.New()
	var got *store.User
	h := sm.LoadAndSave(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("known user is loaded", func(t *testing.T) {
		got = nil
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(sessionCookie(t, sm, user.ID))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if got == nil || got.Email != "admin@example.com" {
			t.Errorf("GetUser() = %v, want admin@example.com", got)
		}
	})

	t.Run("unknown user is logged out", func(t *testing.T) {
		got = nil
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(sessionCookie(t, sm, "missing"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}
		if got != nil {
			t.Error("handler should not run for an unknown user")
		}
	})

	t.Run("anonymous request has no user", func(t *testing.T) {
		got = nil
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if got != nil {
			t.Errorf("GetUser() = %v, want nil", got)
		}
	})
}

func TestGetUserHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(req) != nil || GetUserID(req) != "" || GetUserEmail(req) != "" {
		t.Error("expected empty values without a user in context")
	}

	ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: "abc", Email: "a@b.pl"})
	req = req.WithContext(ctx)
	if GetUserID(req) != "abc" {
		t.Errorf("GetUserID() = %q, want %q", GetUserID(req), "abc")
	}
	if GetUserEmail(req) != "a@b.pl" {
		t.Errorf("GetUserEmail() = %q, want %q", GetUserEmail(req), "a@b.pl")
	}
}
