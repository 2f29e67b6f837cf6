package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bjw5035/family-photo-service/internal/calendar"
	"github.com/bjw5035/family-photo-service/internal/storage"
)

// CalendarHandler summarizes one month's photos by day
// GET /calendar/{year}/{month}
func CalendarHandler(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := strconv.Atoi(chi.URLParam(r, "year"))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		month, err := strconv.Atoi(chi.URLParam(r, "month"))
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "month must be an integer")
			return
		}

		files, err := store.List(r.Context())
		if err != nil {
			writeDetail(w, http.StatusInternalServerError, "failed to list files")
			return
		}
		writeJSON(w, http.StatusOK, calendar.Summarize(files, year, month))
	}
}
