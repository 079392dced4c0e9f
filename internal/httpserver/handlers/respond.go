package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kixhq/kix/internal/domain"
	"github.com/kixhq/kix/internal/httpserver/deps"
	"github.com/kixhq/kix/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps the catalog error taxonomy onto HTTP statuses:
// validation -> 400, conflict -> 409, anything else is a backing-store
// failure and surfaces as 500, never as an empty success.
func writeStoreError(w http.ResponseWriter, d deps.Deps, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, validation.Error())
		return
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		writeError(w, http.StatusConflict, conflict.Error())
		return
	}
	d.Logger.Error("store operation failed", logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
