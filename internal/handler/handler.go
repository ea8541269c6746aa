// Package handler stellt die HTTP-Endpunkte des Dienstes bereit.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
)

// maxRequestBody begrenzt die Body-Größe schreibender Anfragen auf 1 MegaByte
const maxRequestBody = 1 << 20

// errorBody ist die einheitliche Fehlerantwort-Struktur.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON setzt den Content-Type-Header und schreibt v als JSON in w.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError bildet die Sentinel-Fehler der Service-Schicht auf
// HTTP-Statuscodes ab.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidValue):
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{err.Error()})
	case errors.Is(err, domain.ErrConstant),
		errors.Is(err, domain.ErrReadOnly),
		errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody{err.Error()})
	case errors.Is(err, domain.ErrCapacityReached):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{err.Error()})
	default:
		logger.Error(msg, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{"interner serverfehler"})
	}
}

// parsePagination liest limit und offset aus den Query-Parametern. Fehlende
// Werte bedeuten unbegrenzt beziehungsweise null.
func parsePagination(r *http.Request) (limit, offset int, err error) {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return 0, 0, errors.New("limit muss eine nichtnegative ganzzahl sein")
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset muss eine nichtnegative ganzzahl sein")
		}
	}
	return limit, offset, nil
}
