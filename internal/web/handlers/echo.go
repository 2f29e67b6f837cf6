package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"unicode/utf8"
)

// EchoIn is the request body for the echo endpoint.
type EchoIn struct {
	Text *string `json:"text"`
}

// EchoOut mirrors the input text back with its length in characters.
type EchoOut struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// EchoHandler returns the posted text along with its length
// POST /echo
func EchoHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body EchoIn
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Text == nil {
			writeDetail(w, http.StatusBadRequest, "text is required")
			return
		}

		// Length counts Unicode code points, not bytes.
		result := EchoOut{Text: *body.Text, Length: utf8.RuneCountInString(*body.Text)}
		logger.Info("echo called", "length", result.Length)
		writeJSON(w, http.StatusOK, result)
	}
}
