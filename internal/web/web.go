package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// Handler serves the bundled chat page and its assets.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// static is embedded at build time, so this cannot fail at runtime.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
