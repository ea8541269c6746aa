package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
	"param-registry-backend/internal/palette"
	"param-registry-backend/internal/param"
)

// mockColorService reicht an die Farbregistry durch, die Farblogik selbst ist
// zustandslos.
type mockColorService struct{}

func (mockColorService) CheckColor(value string, allowNamed bool) error {
	return param.ValidateColor(value, allowNamed)
}

func (mockColorService) NamedColors(limit, offset int) []domain.PaletteEntry {
	return palette.List(limit, offset)
}

func (mockColorService) NamedColor(name string) (domain.PaletteEntry, error) {
	entry, ok := palette.Lookup(name)
	if !ok {
		return domain.PaletteEntry{}, fmt.Errorf("farbe %q: %w", name, domain.ErrNotFound)
	}
	return entry, nil
}

func (mockColorService) NearestNamedColor(value string) (domain.NearestColor, error) {
	return palette.Nearest(value)
}

func (mockColorService) WritePalette(w io.Writer) error {
	return palette.WriteCSV(w)
}

func neuerColorRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	h := NewColorHandler(mockColorService{}, logger)

	r := chi.NewRouter()
	r.Post("/colors/validate", h.Validate)
	r.Get("/colors", h.List)
	r.Get("/colors/export", h.Export)
	r.Get("/colors/{name}", h.Get)
	r.Post("/colors/nearest", h.Nearest)
	return r
}

func postJSON(t *testing.T, router *chi.Mux, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_LangesHex(t *testing.T) {
	router := neuerColorRouter(t)

	rec := postJSON(t, router, "/colors/validate", `{"value":"#ffffff"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Value string `json:"value"`
		Valid bool   `json:"valid"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "#ffffff", resp.Value)
	assert.True(t, resp.Valid)
}

func TestValidate_KurzesHex(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/validate", `{"value":"#fff"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidate_NameOhneErlaubnis(t *testing.T) {
	router := neuerColorRouter(t)

	rec := postJSON(t, router, "/colors/validate", `{"value":"red","allow_named":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "red")
}

func TestValidate_NameMitErlaubnis(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/validate", `{"value":"indianred","allow_named":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidate_NameStandardmaessigErlaubt(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/validate", `{"value":"indianred"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidate_FehlenderWert(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/validate", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate_UngueltigesJSON(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/validate", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─── List / Get ───────────────────────────────────────────────────────────────

func TestColors_Liste(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.PaletteEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, palette.Len())
}

func TestColors_ListePaginiert(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors?limit=5&offset=1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.PaletteEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, 5)
}

func TestColors_ListeUngueltigeParameter(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors?offset=-1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColors_Gefunden(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors/indianred", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var entry domain.PaletteEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entry))
	assert.Equal(t, "indianred", entry.Name)
	assert.Equal(t, "#cd5c5c", entry.Hex)
}

func TestColors_NichtGefunden(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors/blurple", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─── Nearest / Export ─────────────────────────────────────────────────────────

func TestNearest_Gueltig(t *testing.T) {
	router := neuerColorRouter(t)

	rec := postJSON(t, router, "/colors/nearest", `{"value":"#ff0000"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var nearest domain.NearestColor
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&nearest))
	assert.Equal(t, "red", nearest.Match.Name)
}

func TestNearest_UngueltigerWert(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/nearest", `{"value":"rot"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearest_FehlenderWert(t *testing.T) {
	router := neuerColorRouter(t)
	rec := postJSON(t, router, "/colors/nearest", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	router := neuerColorRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/colors/export", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "palette.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "name,hex", lines[0])
	assert.Len(t, lines, palette.Len()+1)
}
