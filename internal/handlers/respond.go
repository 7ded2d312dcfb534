package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses. action completes
// the sentence "unable to ..." for unexpected failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	ctx := r.Context()
	var validation *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		applog.Debug(ctx, "resource not found", "error", err)
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		applog.Debug(ctx, "request rejected", "field", validation.Field, "error", validation.Message)
		status := http.StatusBadRequest
		if validation.Conflict {
			status = http.StatusConflict
		}
		writeJSONError(w, status, validation.Error())
	case errors.Is(err, service.ErrMalformed):
		applog.Debug(ctx, "malformed request", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		applog.Error(ctx, "request failed", "action", action, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to "+action)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		applog.Debug(r.Context(), "invalid request payload", "path", r.URL.Path, "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// resourcePath returns the path segments following prefix.
func resourcePath(r *http.Request, prefix string) []string {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func parseID(w http.ResponseWriter, r *http.Request, identifier string) (uint, bool) {
	value, err := strconv.ParseUint(identifier, 10, 64)
	if err != nil || value == 0 {
		applog.Debug(r.Context(), "invalid identifier", "identifier", identifier, "error", err)
		writeJSONError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(value), true
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "api request without database", "path", r.URL.Path)
	writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
}
