// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/olegiv/rocknbeef-go/internal/content"
	"github.com/olegiv/rocknbeef-go/internal/editor"
	"github.com/olegiv/rocknbeef-go/internal/handler"
	"github.com/olegiv/rocknbeef-go/internal/i18n"
	"github.com/olegiv/rocknbeef-go/internal/render"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"static/dist/css/site.css", "static/dist/js/admin.js", "static/dist/js/site.js", "static/dist/img/icon.svg"} {
		if _, err := fs.Stat(Static, name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestTemplatesRender(t *testing.T) {
	templates, err := fs.Sub(Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	r, err := render.New(render.Config{TemplatesFS: templates})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	home := content.BuildHome(
		[]content.Block{
			{ID: 1, Slug: "hero", Visible: true, Position: 1, BackgroundImage: "/storage/v1/object/public/rocknbeef/blocks/hero.webp",
				PDFURL: "/storage/v1/object/public/rocknbeef/docs/menu.pdf", LinkURL: "https://example.com", LinkText: "Rezerwacja"},
			{ID: 2, Slug: "gallery", Visible: true, Position: 2},
		},
		[]content.Translation{{ID: 1, BlockID: 1, Lang: content.LangPL, Title: "Witamy", Description: "**Steki** z grilla"}},
		[]content.GalleryItem{{ID: 7, ImageURL: "stek.webp", CaptionPL: "Stek"}},
		content.LangPL,
		nil,
	)

	dashboard := handler.DashboardData{
		Lang:      content.LangEN,
		Languages: content.Languages,
		Captions:  true,
		UserEmail: "admin@example.com",
		Blocks: []handler.BlockRow{
			{
				Block:        content.Block{ID: 1, Slug: "hero", Visible: true, Position: 1, PDFURL: "/docs/menu.pdf"},
				Title:        "Welcome",
				Source:       content.Text{Title: "Witamy"},
				CanTranslate: true,
				Job:          editor.Job{State: editor.JobFailed, Err: "quota exceeded"},
				First:        true,
				Last:         true,
			},
		},
		Gallery: []handler.GalleryRow{{GalleryItem: content.GalleryItem{ID: 7, ImageURL: "/x.webp"}, Caption: "Steak"}},
	}

	tests := []struct {
		name    string
		page    string
		data    render.TemplateData
		want    []string
		notWant []string
	}{
		{
			name: "home",
			page: "site/home",
			data: render.TemplateData{Title: "Rock’n Beef", Lang: "pl", Data: home},
			want: []string{"<h2>Witamy</h2>", "<strong>Steki</strong>", `id="gallery"`, "Zobacz PDF", "Rezerwacja", "Zacisze 5C/1"},
		},
		{
			name: "login",
			page: "auth/login",
			data: render.TemplateData{Lang: "pl", Data: handler.LoginData{Email: "a@b.pl", Error: "Nieprawidłowy e-mail lub hasło"}},
			want: []string{`name="email"`, `value="a@b.pl"`, "Nieprawidłowy e-mail lub hasło"},
		},
		{
			name: "dashboard",
			page: "admin/dashboard",
			data: render.TemplateData{Lang: "pl", Data: dashboard},
			want: []string{
				`name="b1.position"`,
				`name="t1.title"`,
				`value="Welcome"`,
				`name="g7.caption"`,
				`<form id="tr1" method="post" action="/admin/blocks/1/translate/en"`,
				`form="tr1"`,
				"Niezapisane zmiany na stronie przepadną",
				"quota exceeded",
				`id="gallery-upload"`,
			},
			// The editor form must not post its unsaved fields to the translate route.
			notWant: []string{`formaction="/admin/blocks/1/translate`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if err := r.Render(w, req, tt.page, tt.data); err != nil {
				t.Fatalf("Render: %v", err)
			}
			body := w.Body.String()
			for _, want := range tt.want {
				if !strings.Contains(body, want) {
					t.Errorf("%s: missing %q", tt.page, want)
				}
			}
			for _, unwanted := range tt.notWant {
				if strings.Contains(body, unwanted) {
					t.Errorf("%s: unexpected %q", tt.page, unwanted)
				}
			}
		})
	}
}
