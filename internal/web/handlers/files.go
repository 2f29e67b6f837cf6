package handlers

import (
	"net/http"

	"github.com/bjw5035/family-photo-service/internal/storage"
)

// FilesHandler lists stored files with their metadata, newest first
// GET /files
func FilesHandler(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := store.List(r.Context())
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "failed to list files")
			return
		}
		writeJSON(w, http.StatusOK, files)
	}
}
