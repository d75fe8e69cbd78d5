// Package web serves the embedded dashboard UI.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html
var content embed.FS

// Handler serves the dashboard page.
func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
