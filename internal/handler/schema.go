package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
)

// SchemaService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type SchemaService interface {
	DeclareSchema(ctx context.Context, schema *domain.Schema) error
	Schemas(ctx context.Context, limit, offset int) ([]domain.Schema, error)
	Schema(ctx context.Context, name string) (*domain.Schema, error)
	SetValue(ctx context.Context, schema, field string, value any) (domain.FieldValue, error)
	Value(ctx context.Context, schema, field string) (domain.FieldValue, error)
	Values(ctx context.Context, schema string) ([]domain.FieldValue, error)
	ResetValue(ctx context.Context, schema, field string) error
}

// SchemaHandler stellt Schema- und Wert-Endpunkte über HTTP bereit.
type SchemaHandler struct {
	service SchemaService
	logger  *zap.Logger
}

// NewSchemaHandler erstellt einen neuen SchemaHandler.
func NewSchemaHandler(svc SchemaService, logger *zap.Logger) *SchemaHandler {
	return &SchemaHandler{service: svc, logger: logger}
}

// Declare legt ein neues Schema an. Die Antwort enthält die normalisierten
// Deklarationen.
func (h *SchemaHandler) Declare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var schema domain.Schema
	if err := json.NewDecoder(r.Body).Decode(&schema); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger anfrage-body"})
		return
	}

	if err := h.service.DeclareSchema(r.Context(), &schema); err != nil {
		writeServiceError(w, h.logger, "schema deklarieren", err)
		return
	}
	writeJSON(w, http.StatusCreated, schema)
}

// List gibt alle Schemas zurück, optional paginiert.
func (h *SchemaHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}

	schemas, err := h.service.Schemas(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, h.logger, "schemas auflisten", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas)
}

// Get gibt ein einzelnes Schema zurück.
func (h *SchemaHandler) Get(w http.ResponseWriter, r *http.Request) {
	schema, err := h.service.Schema(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, h.logger, "schema abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

// Values gibt alle wirksamen Feldwerte eines Schemas zurück.
func (h *SchemaHandler) Values(w http.ResponseWriter, r *http.Request) {
	values, err := h.service.Values(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, h.logger, "werte abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// GetValue gibt den wirksamen Wert eines einzelnen Feldes zurück.
func (h *SchemaHandler) GetValue(w http.ResponseWriter, r *http.Request) {
	fv, err := h.service.Value(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "field"))
	if err != nil {
		writeServiceError(w, h.logger, "wert abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, fv)
}

// setValueRequest ist der Body einer Wertzuweisung. json.RawMessage
// unterscheidet einen fehlenden Schlüssel von einem gesetzten null.
type setValueRequest struct {
	Value json.RawMessage `json:"value"`
}

// SetValue weist einem Feld einen neuen Wert zu.
func (h *SchemaHandler) SetValue(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req setValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger anfrage-body"})
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"schlüssel value fehlt"})
		return
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger wert im anfrage-body"})
		return
	}

	fv, err := h.service.SetValue(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "field"), value)
	if err != nil {
		writeServiceError(w, h.logger, "wert setzen", err)
		return
	}
	writeJSON(w, http.StatusOK, fv)
}

// ResetValue verwirft die Zuweisung eines Feldes.
func (h *SchemaHandler) ResetValue(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetValue(r.Context(), chi.URLParam(r, "name"), chi.URLParam(r, "field")); err != nil {
		writeServiceError(w, h.logger, "wert zurücksetzen", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
