package web

import "embed"

// PublicFS holds the freely accessible pages and client-side scripts.
//
//go:embed public
var PublicFS embed.FS

// ProtectedFS holds the paywalled pages, served only behind the
// authentication gate (and the VIP section timer where applicable).
//
//go:embed protected
var ProtectedFS embed.FS
