// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAdmin is the admin dashboard.
	RouteAdmin = "/admin"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteBlocks is the blocks admin route.
	RouteBlocks = "/blocks"
	// RouteGallery is the gallery admin route.
	RouteGallery = "/gallery"
	// RouteSave saves every edited field at once.
	RouteSave = "/save"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixDelete is the suffix for delete routes.
	RouteSuffixDelete = "/delete"
	// RouteSuffixMove is the suffix for move routes.
	RouteSuffixMove = "/move"
	// RouteSuffixBackground is the suffix for background upload routes.
	RouteSuffixBackground = "/background"
	// RouteSuffixPDF is the suffix for PDF routes.
	RouteSuffixPDF = "/pdf"
	// RouteSuffixTranslate is the suffix for auto-translate routes.
	RouteSuffixTranslate = "/translate/{lang}"

	// RouteAPITranslate is the public translation endpoint.
	RouteAPITranslate = "/api/translate"
	// RouteStorageObject serves public bucket objects.
	RouteStorageObject = "/storage/v1/object/public/{bucket}/*"
)

// Redirect targets.
const (
	redirectAdmin = "/admin"
	redirectLogin = "/admin/login"
)

// Form field names.
const (
	formFieldFile  = "file"
	formFieldFiles = "files"
	formFieldDir   = "dir"
	formFieldLang  = "lang"
)
