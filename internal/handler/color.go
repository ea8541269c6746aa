package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
)

// ColorService definiert den Vertrag der Farb-Endpunkte zur Service-Schicht.
type ColorService interface {
	CheckColor(value string, allowNamed bool) error
	NamedColors(limit, offset int) []domain.PaletteEntry
	NamedColor(name string) (domain.PaletteEntry, error)
	NearestNamedColor(value string) (domain.NearestColor, error)
	WritePalette(w io.Writer) error
}

// ColorHandler stellt die Farbpalette und die Farbvalidierung über HTTP bereit.
type ColorHandler struct {
	service ColorService
	logger  *zap.Logger
}

// NewColorHandler erstellt einen neuen ColorHandler.
func NewColorHandler(svc ColorService, logger *zap.Logger) *ColorHandler {
	return &ColorHandler{service: svc, logger: logger}
}

// validateRequest ist der Body einer Farbvalidierung. allow_named ist
// optional; ohne Angabe sind Farbnamen zugelassen.
type validateRequest struct {
	Value      *string `json:"value"`
	AllowNamed *bool   `json:"allow_named"`
}

type validateResponse struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
}

// Validate prüft einen einzelnen Farbwert, ohne etwas zu speichern.
func (h *ColorHandler) Validate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger anfrage-body"})
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"schlüssel value fehlt"})
		return
	}

	allowNamed := req.AllowNamed == nil || *req.AllowNamed
	if err := h.service.CheckColor(*req.Value, allowNamed); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Value: *req.Value, Valid: true})
}

// List gibt die Palette zurück, optional paginiert.
func (h *ColorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.service.NamedColors(limit, offset))
}

// Get gibt einen einzelnen Paletteneintrag zurück.
func (h *ColorHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.NamedColor(chi.URLParam(r, "name"))
	if err != nil {
		writeServiceError(w, h.logger, "farbe abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// nearestRequest ist der Body einer Nächste-Farbe-Suche.
type nearestRequest struct {
	Value *string `json:"value"`
}

// Nearest bestimmt den farblich nächsten Paletteneintrag zu einem Hex-Wert.
func (h *ColorHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req nearestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"ungültiger anfrage-body"})
		return
	}
	if req.Value == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"schlüssel value fehlt"})
		return
	}

	n, err := h.service.NearestNamedColor(*req.Value)
	if err != nil {
		writeServiceError(w, h.logger, "nächste farbe bestimmen", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// Export liefert die gesamte Palette als CSV-Datei.
func (h *ColorHandler) Export(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="palette.csv"`)
	if err := h.service.WritePalette(w); err != nil {
		// Die Antwort ist hier schon angelaufen, mehr als protokollieren
		// geht nicht.
		h.logger.Error("palette exportieren", zap.Error(err))
	}
}
