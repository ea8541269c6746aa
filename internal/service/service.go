package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
	"param-registry-backend/internal/palette"
	"param-registry-backend/internal/param"
	"param-registry-backend/internal/repository"
)

// ParamService kapselt die Geschäftslogik rund um Schemas, Feldwerte und die
// Farbpalette.
type ParamService struct {
	repo   repository.SchemaRepository
	logger *zap.Logger
}

// NewParamService gibt einen einsatzbereiten ParamService zurück.
func NewParamService(repo repository.SchemaRepository, logger *zap.Logger) *ParamService {
	return &ParamService{repo: repo, logger: logger}
}

// DeclareSchema prüft ein Schema samt Standardwerten und legt es ab. Die
// Deklarationen werden dabei normalisiert.
func (s *ParamService) DeclareSchema(ctx context.Context, schema *domain.Schema) error {
	if err := param.CheckSchema(schema); err != nil {
		s.logger.Warn("ungültiges schema abgelehnt",
			zap.String("schema", schema.Name),
			zap.Error(err),
		)
		return err
	}
	return s.repo.SaveSchema(ctx, schema)
}

// Schemas gibt alle deklarierten Schemas zurück, optional paginiert.
func (s *ParamService) Schemas(ctx context.Context, limit, offset int) ([]domain.Schema, error) {
	return s.repo.ListSchemas(ctx, limit, offset)
}

// Schema sucht ein einzelnes Schema anhand seines Namens.
func (s *ParamService) Schema(ctx context.Context, name string) (*domain.Schema, error) {
	return s.repo.GetSchema(ctx, name)
}

// SetValue validiert einen Wert und speichert ihn erst danach unverändert.
// Bei einem Fehler bleibt der bisherige Wert wirksam.
func (s *ParamService) SetValue(ctx context.Context, schemaName, fieldName string, value any) (domain.FieldValue, error) {
	schema, err := s.repo.GetSchema(ctx, schemaName)
	if err != nil {
		return domain.FieldValue{}, err
	}
	decl, ok := schema.Field(fieldName)
	if !ok {
		return domain.FieldValue{}, fmt.Errorf("feld %q: %w", fieldName, domain.ErrNotFound)
	}
	if decl.ReadOnly {
		return domain.FieldValue{}, fmt.Errorf("feld %q: %w", fieldName, domain.ErrReadOnly)
	}
	if decl.Constant {
		return domain.FieldValue{}, fmt.Errorf("feld %q: %w", fieldName, domain.ErrConstant)
	}
	if err := param.CheckValue(decl, value); err != nil {
		s.logger.Warn("wert abgelehnt",
			zap.String("schema", schemaName),
			zap.String("feld", fieldName),
			zap.Error(err),
		)
		return domain.FieldValue{}, fmt.Errorf("feld %q: %w", fieldName, err)
	}
	if err := s.repo.SetValue(ctx, schemaName, fieldName, value); err != nil {
		return domain.FieldValue{}, err
	}
	return domain.FieldValue{
		Schema: schemaName,
		Name:   fieldName,
		Kind:   decl.Kind,
		Value:  value,
		Source: domain.SourceSet,
	}, nil
}

// Value liefert den wirksamen Wert eines Feldes: den gesetzten, sonst den
// deklarierten Standardwert.
func (s *ParamService) Value(ctx context.Context, schemaName, fieldName string) (domain.FieldValue, error) {
	schema, err := s.repo.GetSchema(ctx, schemaName)
	if err != nil {
		return domain.FieldValue{}, err
	}
	decl, ok := schema.Field(fieldName)
	if !ok {
		return domain.FieldValue{}, fmt.Errorf("feld %q: %w", fieldName, domain.ErrNotFound)
	}

	fv := domain.FieldValue{
		Schema: schemaName,
		Name:   fieldName,
		Kind:   decl.Kind,
		Value:  decl.Default,
		Source: domain.SourceDefault,
	}
	v, set, err := s.repo.GetValue(ctx, schemaName, fieldName)
	if err != nil {
		return domain.FieldValue{}, err
	}
	if set {
		fv.Value = v
		fv.Source = domain.SourceSet
	}
	return fv, nil
}

// Values stellt alle Feldwerte eines Schemas in Deklarationsreihenfolge
// zusammen.
func (s *ParamService) Values(ctx context.Context, schemaName string) ([]domain.FieldValue, error) {
	schema, err := s.repo.GetSchema(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.GetValues(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	rec, err := param.NewRecord(schema, stored)
	if err != nil {
		return nil, fmt.Errorf("werte von %q zusammenstellen: %w", schemaName, err)
	}
	return rec.Values(), nil
}

// ResetValue verwirft die Zuweisung eines Feldes, der Standardwert gilt
// wieder. Konstante und schreibgeschützte Felder lehnen das ab.
func (s *ParamService) ResetValue(ctx context.Context, schemaName, fieldName string) error {
	schema, err := s.repo.GetSchema(ctx, schemaName)
	if err != nil {
		return err
	}
	decl, ok := schema.Field(fieldName)
	if !ok {
		return fmt.Errorf("feld %q: %w", fieldName, domain.ErrNotFound)
	}
	if decl.ReadOnly {
		return fmt.Errorf("feld %q: %w", fieldName, domain.ErrReadOnly)
	}
	if decl.Constant {
		return fmt.Errorf("feld %q: %w", fieldName, domain.ErrConstant)
	}
	return s.repo.ClearValue(ctx, schemaName, fieldName)
}

// CheckColor prüft einen einzelnen Farbwert, ohne etwas zu speichern.
func (s *ParamService) CheckColor(value string, allowNamed bool) error {
	return param.ValidateColor(value, allowNamed)
}

// NamedColors listet die Palette alphabetisch, optional paginiert.
func (s *ParamService) NamedColors(limit, offset int) []domain.PaletteEntry {
	return palette.List(limit, offset)
}

// NamedColor sucht einen Paletteneintrag anhand seines Namens.
func (s *ParamService) NamedColor(name string) (domain.PaletteEntry, error) {
	entry, ok := palette.Lookup(name)
	if !ok {
		return domain.PaletteEntry{}, fmt.Errorf("farbe %q: %w", name, domain.ErrNotFound)
	}
	return entry, nil
}

// NearestNamedColor bestimmt den farblich nächsten Paletteneintrag zu einem
// Hex-Wert.
func (s *ParamService) NearestNamedColor(value string) (domain.NearestColor, error) {
	return palette.Nearest(value)
}

// WritePalette schreibt die gesamte Palette als CSV.
func (s *ParamService) WritePalette(w io.Writer) error {
	return palette.WriteCSV(w)
}
