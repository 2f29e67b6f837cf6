package handlers

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/bjw5035/family-photo-service/internal/storage"
)

// DownloadHandler serves a stored file by name
// GET /download/{filename}
func DownloadHandler(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")

		path, err := store.Path(filename)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "file not found")
			return
		}
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			writeDetail(w, http.StatusNotFound, "file not found")
			return
		}

		http.ServeFile(w, r, path)
	}
}
