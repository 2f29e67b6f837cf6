package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/bjw5035/family-photo-service/internal/storage"
)

// UploadOut is the response for a stored upload. TakenDate is null when
// the file carries no usable EXIF capture date.
type UploadOut struct {
	Filename  string  `json:"filename"`
	TakenDate *string `json:"taken_date"`
}

// UploadHandler stores a multipart upload in the data directory
// POST /upload
func UploadHandler(store *storage.Store, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "multipart field 'file' is required")
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "failed to read upload")
			return
		}

		saved, err := store.Save(header.Filename, content, header.Header.Get("Content-Type"))
		if err != nil {
			if errors.Is(err, storage.ErrInvalidName) {
				writeDetail(w, http.StatusBadRequest, "invalid filename")
				return
			}
			writeDetail(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		taken := store.TakenDate(saved)
		takenStr := ""
		if taken != nil {
			takenStr = *taken
		}
		logger.Info("uploaded", "filename", saved, "taken_date", takenStr)
		writeJSON(w, http.StatusOK, UploadOut{Filename: saved, TakenDate: taken})
	}
}
