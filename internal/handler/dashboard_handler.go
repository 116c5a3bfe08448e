package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// DashboardHandler serves a statically exported dashboard. A route like
// /users/abc resolves to users/abc.html, then users/abc/index.html, and
// finally to the exported 404 page.
type DashboardHandler struct {
	root  fs.FS
	files http.Handler
}

func NewDashboardHandler(root fs.FS) *DashboardHandler {
	return &DashboardHandler{root: root, files: http.FileServerFS(root)}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

	if name == "" {
		h.serveFile(w, r, "index.html", http.StatusOK)
		return
	}
	if h.isFile(name) {
		if strings.HasPrefix(name, "_next/static/") {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		h.files.ServeHTTP(w, r)
		return
	}
	for _, candidate := range []string{name + ".html", path.Join(name, "index.html")} {
		if h.isFile(candidate) {
			h.serveFile(w, r, candidate, http.StatusOK)
			return
		}
	}

	if h.isFile("404.html") {
		h.serveFile(w, r, "404.html", http.StatusNotFound)
		return
	}
	http.NotFound(w, r)
}

func (h *DashboardHandler) isFile(name string) bool {
	info, err := fs.Stat(h.root, name)
	return err == nil && !info.IsDir()
}

func (h *DashboardHandler) serveFile(w http.ResponseWriter, r *http.Request, name string, status int) {
	content, err := fs.ReadFile(h.root, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(content)
	}
}
