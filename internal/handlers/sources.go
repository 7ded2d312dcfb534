package handlers

import (
	"net/http"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/models"
)

// SourceResource handles REST-style interactions for recipe sources.
func SourceResource(w http.ResponseWriter, r *http.Request) {
	if sourceService == nil {
		serviceUnavailable(w, r)
		return
	}

	segments := resourcePath(r, "/sources")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			sources, err := sourceService.List(r.Context())
			if err != nil {
				writeServiceError(w, r, err, "load sources")
				return
			}
			writeJSON(w, http.StatusOK, nonNil(sources))
		case http.MethodPost:
			createSource(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if len(segments) > 1 {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	sourceID, ok := parseID(w, r, segments[0])
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		source, err := sourceService.Get(r.Context(), sourceID)
		if err != nil {
			writeServiceError(w, r, err, "load source")
			return
		}
		writeJSON(w, http.StatusOK, source)
	case http.MethodPut:
		updateSource(w, r, sourceID)
	case http.MethodDelete:
		if err := sourceService.Delete(r.Context(), sourceID); err != nil {
			writeServiceError(w, r, err, "delete source")
			return
		}
		applog.Info(r.Context(), "source deleted", "id", sourceID)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func createSource(w http.ResponseWriter, r *http.Request) {
	var payload models.Source
	if !decodeJSON(w, r, &payload) {
		return
	}
	created, err := sourceService.Create(r.Context(), &payload)
	if err != nil {
		writeServiceError(w, r, err, "create source")
		return
	}
	applog.Info(r.Context(), "source created", "id", created.ID, "name", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func updateSource(w http.ResponseWriter, r *http.Request, sourceID uint) {
	var payload models.Source
	if !decodeJSON(w, r, &payload) {
		return
	}
	updated, err := sourceService.Update(r.Context(), sourceID, &payload)
	if err != nil {
		writeServiceError(w, r, err, "update source")
		return
	}
	applog.Info(r.Context(), "source updated", "id", updated.ID, "name", updated.Name)
	writeJSON(w, http.StatusOK, updated)
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
