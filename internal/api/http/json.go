package http

import (
	"encoding/json"
	"net/http"

	"github.com/louisbranch/demesne/internal/platform/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service error to its HTTP status and localized
// message. The error code rides along for programmatic clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)
	writeJSON(w, code.HTTPStatus(), map[string]string{
		"code":  string(code),
		"error": errors.Localize(err, r.Header.Get("Accept-Language")),
	})
}
