package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rook-computer/rainfield/internal/assets"
)

// RegisterAPIV1 registers the control API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1RouterWithDeps(deps)))
}

// RegisterUI serves either the embedded viewer or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the standard mux used by both the device and simulator:
// - /api/v1/* for the API
// - / for the viewer
func NewDefaultMux(staticDir string, deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux, staticDir)
	return mux
}

// StaticUIHandler serves staticDir when it is an existing directory, the
// embedded viewer when staticDir is empty, and 404 otherwise.
func StaticUIHandler(staticDir string) http.Handler {
	var fileServer http.Handler
	switch {
	case staticDir == "":
		fileServer = http.FileServer(http.FS(assets.WebUI))
	default:
		if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
			return http.NotFoundHandler()
		}
		fileServer = http.FileServer(http.Dir(staticDir))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
