// AngelaMos | 2026
// media.go

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/heritage-museum/internal/core"
)

var mediaTypes = map[string]bool{
	"images": true,
	"audio":  true,
}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
}

// MediaHandler serves files from <root>/<media_type>/<category>/<filename>.
type MediaHandler struct {
	root string
}

func NewMediaHandler(root string) *MediaHandler {
	return &MediaHandler{root: root}
}

func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	mediaType := chi.URLParam(r, "media_type")
	filename := chi.URLParam(r, "filename")

	if _, ok := ParseKind(category); !ok {
		core.BadRequest(w, fmt.Sprintf("Sorry, '%s' is not a valid category.", category))
		return
	}
	if !mediaTypes[mediaType] {
		core.BadRequest(w, fmt.Sprintf("Sorry, '%s' is not a valid media type.", mediaType))
		return
	}
	if !validFilename(filename) {
		core.BadRequest(w, "invalid filename")
		return
	}

	path := filepath.Join(h.root, mediaType, category, filename)

	f, err := os.Open(path) //nolint:gosec // G304: path components validated above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.notFound(w, filename)
			return
		}
		core.InternalServerError(w, err)
		return
	}
	defer f.Close() //nolint:errcheck // read-only file

	info, err := f.Stat()
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	if info.IsDir() {
		h.notFound(w, filename)
		return
	}

	w.Header().Set("Content-Type", detectContentType(path, filename))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, filename, info.ModTime(), f)
}

func (h *MediaHandler) notFound(w http.ResponseWriter, filename string) {
	core.JSONError(w, core.NewAppError(
		core.ErrNotFound,
		fmt.Sprintf("We couldn't find the file '%s'.", filename),
		http.StatusNotFound,
		"NOT_FOUND",
	))
}

func validFilename(name string) bool {
	if name == "" || name == "." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// detectContentType trusts the extension for the formats the museum ships
// and sniffs anything else.
func detectContentType(path, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	return mt.String()
}
