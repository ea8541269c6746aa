package repository

import (
	"context"

	"param-registry-backend/internal/domain"
)

// SchemaRepository abstrahiert den Datenzugriff auf Schemas und ihre Feldwerte.
// Gespeichert werden nur ausdrückliche Zuweisungen; Standardwerte ergeben sich
// aus den Deklarationen.
type SchemaRepository interface {
	SaveSchema(ctx context.Context, schema *domain.Schema) error
	GetSchema(ctx context.Context, name string) (*domain.Schema, error)
	ListSchemas(ctx context.Context, limit, offset int) ([]domain.Schema, error)

	// GetValue liefert den gesetzten Wert eines Feldes; der zweite
	// Rückgabewert zeigt an, ob überhaupt eine Zuweisung vorliegt.
	GetValue(ctx context.Context, schema, field string) (any, bool, error)
	GetValues(ctx context.Context, schema string) (map[string]any, error)
	SetValue(ctx context.Context, schema, field string, value any) error
	ClearValue(ctx context.Context, schema, field string) error
}
