// Package web serves the public marketing pages and the dashboard's static
// bundle. Gating of protected prefixes happens in the router via the page
// guard middleware, not here.
package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "index.html"

type spaHandler struct {
	root string
}

// Handler returns a file server over dir with a single-page-app fallback:
// paths that do not resolve to a file serve index.html so client-side
// routes survive a hard reload.
func Handler(dir string) http.Handler {
	return &spaHandler{root: dir}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clean := path.Clean("/" + r.URL.Path)
	target := filepath.Join(h.root, filepath.FromSlash(clean))

	info, err := os.Stat(target)
	if err != nil || info.IsDir() {
		target = filepath.Join(h.root, indexFile)
	}

	http.ServeFile(w, r, target)
}
