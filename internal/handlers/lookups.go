package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	applog "github.com/larsreed/recipes-sub000/internal/log"
	"github.com/larsreed/recipes-sub000/models"
)

// lookupService is the CRUD surface shared by the conversion and temperature tables.
type lookupService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, value *T) (*T, error)
	Update(ctx context.Context, id uint, value *T) (*T, error)
	Delete(ctx context.Context, id uint) error
}

type convertResponse struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Result float64 `json:"result"`
}

// ConversionResource handles the measure conversion table and the converter.
func ConversionResource(w http.ResponseWriter, r *http.Request) {
	if conversionService == nil {
		serviceUnavailable(w, r)
		return
	}
	segments := resourcePath(r, "/conversions")
	if len(segments) == 1 && segments[0] == "convert" {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		convertAmount(w, r)
		return
	}
	serveLookup[models.Conversion](w, r, segments, conversionService, "conversion")
}

// TemperatureResource handles the reference core temperature table.
func TemperatureResource(w http.ResponseWriter, r *http.Request) {
	if temperatureService == nil {
		serviceUnavailable(w, r)
		return
	}
	serveLookup[models.Temperature](w, r, resourcePath(r, "/temperatures"), temperatureService, "temperature")
}

func serveLookup[T any](w http.ResponseWriter, r *http.Request, segments []string, svc lookupService[T], name string) {
	ctx := r.Context()
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			values, err := svc.List(ctx)
			if err != nil {
				writeServiceError(w, r, err, "load "+name+"s")
				return
			}
			writeJSON(w, http.StatusOK, nonNil(values))
		case http.MethodPost:
			var payload T
			if !decodeJSON(w, r, &payload) {
				return
			}
			created, err := svc.Create(ctx, &payload)
			if err != nil {
				writeServiceError(w, r, err, "create "+name)
				return
			}
			applog.Info(ctx, name+" created")
			writeJSON(w, http.StatusCreated, created)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if len(segments) > 1 {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	id, ok := parseID(w, r, segments[0])
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, err := svc.Get(ctx, id)
		if err != nil {
			writeServiceError(w, r, err, "load "+name)
			return
		}
		writeJSON(w, http.StatusOK, value)
	case http.MethodPut:
		var payload T
		if !decodeJSON(w, r, &payload) {
			return
		}
		updated, err := svc.Update(ctx, id, &payload)
		if err != nil {
			writeServiceError(w, r, err, "update "+name)
			return
		}
		applog.Info(ctx, name+" updated", "id", id)
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := svc.Delete(ctx, id); err != nil {
			writeServiceError(w, r, err, "delete "+name)
			return
		}
		applog.Info(ctx, name+" deleted", "id", id)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func convertAmount(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	amount, err := strconv.ParseFloat(strings.TrimSpace(query.Get("amount")), 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	from := query.Get("from")
	to := query.Get("to")

	result, err := conversionService.Convert(r.Context(), amount, from, to)
	if err != nil {
		writeServiceError(w, r, err, "convert amount")
		return
	}
	writeJSON(w, http.StatusOK, convertResponse{Amount: amount, From: from, To: to, Result: result})
}
