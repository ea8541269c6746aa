package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
)

// SchemaRepository implementiert repository.SchemaRepository und hält alle
// Schemas samt Feldwerten im Arbeitsspeicher.
type SchemaRepository struct {
	mu        sync.RWMutex
	schemas   map[string]*domain.Schema
	values    map[string]map[string]any
	maxFields int
	logger    *zap.Logger
}

// NewSchemaRepository legt ein leeres Speicher-Repository an.
// maxFields begrenzt die Gesamtzahl deklarierter Felder; 0 bedeutet unbegrenzt.
func NewSchemaRepository(maxFields int, logger *zap.Logger) *SchemaRepository {
	logger.Info("speicher-repository initialisiert", zap.Int("max_felder", maxFields))
	return &SchemaRepository{
		schemas:   make(map[string]*domain.Schema),
		values:    make(map[string]map[string]any),
		maxFields: maxFields,
		logger:    logger,
	}
}

// SaveSchema legt ein neues Schema ab und prüft die Feldgrenze.
func (r *SchemaRepository) SaveSchema(_ context.Context, schema *domain.Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Name]; exists {
		return fmt.Errorf("schema %q: %w", schema.Name, domain.ErrAlreadyExists)
	}
	if r.maxFields > 0 {
		total := 0
		for _, s := range r.schemas {
			total += len(s.Fields)
		}
		if total+len(schema.Fields) > r.maxFields {
			return fmt.Errorf("max %d felder: %w", r.maxFields, domain.ErrCapacityReached)
		}
	}

	r.schemas[schema.Name] = copySchema(schema)
	r.values[schema.Name] = make(map[string]any)
	return nil
}

// GetSchema sucht ein Schema anhand seines Namens.
func (r *SchemaRepository) GetSchema(_ context.Context, name string) (*domain.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %q: %w", name, domain.ErrNotFound)
	}
	return copySchema(s), nil
}

// ListSchemas gibt alle Schemas alphabetisch sortiert zurück, optional paginiert.
func (r *SchemaRepository) ListSchemas(_ context.Context, limit, offset int) ([]domain.Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(names) {
		return make([]domain.Schema, 0), nil
	}
	names = names[offset:]
	if limit > 0 && limit < len(names) {
		names = names[:limit]
	}

	out := make([]domain.Schema, 0, len(names))
	for _, name := range names {
		out = append(out, *copySchema(r.schemas[name]))
	}
	return out, nil
}

// GetValue liefert den gesetzten Wert eines Feldes, falls vorhanden.
func (r *SchemaRepository) GetValue(_ context.Context, schema, field string) (any, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vals, ok := r.values[schema]
	if !ok {
		return nil, false, fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}
	v, set := vals[field]
	return v, set, nil
}

// GetValues liefert alle gesetzten Werte eines Schemas.
func (r *SchemaRepository) GetValues(_ context.Context, schema string) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vals, ok := r.values[schema]
	if !ok {
		return nil, fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}
	out := make(map[string]any, len(vals))
	for k, v := range vals {
		out[k] = v
	}
	return out, nil
}

// SetValue speichert die Zuweisung eines Feldwertes.
func (r *SchemaRepository) SetValue(_ context.Context, schema, field string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals, ok := r.values[schema]
	if !ok {
		return fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}
	vals[field] = value
	return nil
}

// ClearValue verwirft die Zuweisung eines Feldwertes. Felder ohne Zuweisung
// bleiben unverändert, das ist kein Fehler.
func (r *SchemaRepository) ClearValue(_ context.Context, schema, field string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vals, ok := r.values[schema]
	if !ok {
		return fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}
	delete(vals, field)
	return nil
}

// copySchema gibt eine Kopie zurück, damit Aufrufer den gespeicherten
// Zustand nicht verändern können.
func copySchema(s *domain.Schema) *domain.Schema {
	clone := *s
	clone.Fields = append([]domain.Declaration(nil), s.Fields...)
	return &clone
}
