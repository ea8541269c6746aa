package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"param-registry-backend/internal/domain"
)

// SchemaRepository implementiert repository.SchemaRepository auf einer
// SQLite-Datenbank. Deklarationen und Feldwerte werden als JSON abgelegt,
// damit auch Null-Werte unterscheidbar gespeichert werden können.
type SchemaRepository struct {
	db        *sql.DB
	maxFields int
	logger    *zap.Logger
}

// NewSchemaRepository öffnet die SQLite-Datenbank unter dsn, erstellt die
// Tabellen und gibt ein einsatzbereites Repository zurück.
// maxFields begrenzt die Gesamtzahl deklarierter Felder; 0 bedeutet unbegrenzt.
func NewSchemaRepository(dsn string, maxFields int, logger *zap.Logger) (*SchemaRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite öffnen: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schemas (
			name         TEXT PRIMARY KEY,
			doc          TEXT NOT NULL DEFAULT '',
			declarations TEXT NOT NULL,
			field_count  INTEGER NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("tabelle schemas erstellen: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS field_values (
			schema_name TEXT NOT NULL,
			field_name  TEXT NOT NULL,
			value       TEXT NOT NULL,
			PRIMARY KEY (schema_name, field_name)
		)
	`); err != nil {
		return nil, fmt.Errorf("tabelle field_values erstellen: %w", err)
	}

	logger.Info("sqlite-repository initialisiert", zap.String("dsn", dsn))
	return &SchemaRepository{db: db, maxFields: maxFields, logger: logger}, nil
}

// Close schließt die zugrunde liegende Datenbankverbindung.
func (r *SchemaRepository) Close() error {
	return r.db.Close()
}

// SaveSchema legt ein neues Schema ab und prüft die Feldgrenze.
func (r *SchemaRepository) SaveSchema(ctx context.Context, schema *domain.Schema) error {
	declarations, err := json.Marshal(schema.Fields)
	if err != nil {
		return fmt.Errorf("deklarationen kodieren: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaktion starten: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM schemas WHERE name = ?", schema.Name).Scan(&one)
	if err == nil {
		return fmt.Errorf("schema %q: %w", schema.Name, domain.ErrAlreadyExists)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("schema prüfen: %w", err)
	}

	if r.maxFields > 0 {
		var total int
		if err := tx.QueryRowContext(ctx, "SELECT COALESCE(SUM(field_count), 0) FROM schemas").Scan(&total); err != nil {
			return fmt.Errorf("feldanzahl abfragen: %w", err)
		}
		if total+len(schema.Fields) > r.maxFields {
			return fmt.Errorf("max %d felder: %w", r.maxFields, domain.ErrCapacityReached)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schemas (name, doc, declarations, field_count) VALUES (?, ?, ?, ?)",
		schema.Name, schema.Doc, string(declarations), len(schema.Fields),
	); err != nil {
		return fmt.Errorf("schema einfügen: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetSchema sucht ein Schema anhand seines Namens.
func (r *SchemaRepository) GetSchema(ctx context.Context, name string) (*domain.Schema, error) {
	var (
		s            domain.Schema
		declarations string
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT name, doc, declarations FROM schemas WHERE name = ?", name,
	).Scan(&s.Name, &s.Doc, &declarations)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("schema %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("abfrage schema %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(declarations), &s.Fields); err != nil {
		return nil, fmt.Errorf("deklarationen dekodieren: %w", err)
	}
	return &s, nil
}

// ListSchemas gibt alle Schemas alphabetisch sortiert zurück, optional paginiert.
func (r *SchemaRepository) ListSchemas(ctx context.Context, limit, offset int) ([]domain.Schema, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT name, doc, declarations FROM schemas ORDER BY name LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("abfrage schemas: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Schema, 0)
	for rows.Next() {
		var (
			s            domain.Schema
			declarations string
		)
		if err := rows.Scan(&s.Name, &s.Doc, &declarations); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		if err := json.Unmarshal([]byte(declarations), &s.Fields); err != nil {
			return nil, fmt.Errorf("deklarationen dekodieren: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetValue liefert den gesetzten Wert eines Feldes, falls vorhanden.
func (r *SchemaRepository) GetValue(ctx context.Context, schema, field string) (any, bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM field_values WHERE schema_name = ? AND field_name = ?",
		schema, field,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		exists, err := r.schemaExists(ctx, schema)
		if err != nil {
			return nil, false, err
		}
		if !exists {
			return nil, false, fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("abfrage wert %s.%s: %w", schema, field, err)
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false, fmt.Errorf("wert dekodieren: %w", err)
	}
	return v, true, nil
}

// GetValues liefert alle gesetzten Werte eines Schemas.
func (r *SchemaRepository) GetValues(ctx context.Context, schema string) (map[string]any, error) {
	exists, err := r.schemaExists(ctx, schema)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT field_name, value FROM field_values WHERE schema_name = ?", schema)
	if err != nil {
		return nil, fmt.Errorf("abfrage werte: %w", err)
	}
	defer rows.Close()

	out := make(map[string]any)
	for rows.Next() {
		var field, raw string
		if err := rows.Scan(&field, &raw); err != nil {
			return nil, fmt.Errorf("zeile lesen: %w", err)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("wert dekodieren: %w", err)
		}
		out[field] = v
	}
	return out, rows.Err()
}

// SetValue speichert die Zuweisung eines Feldwertes.
func (r *SchemaRepository) SetValue(ctx context.Context, schema, field string, value any) error {
	exists, err := r.schemaExists(ctx, schema)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("wert kodieren: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO field_values (schema_name, field_name, value) VALUES (?, ?, ?)",
		schema, field, string(raw),
	); err != nil {
		return fmt.Errorf("wert speichern: %w", err)
	}
	return nil
}

// ClearValue verwirft die Zuweisung eines Feldwertes. Felder ohne Zuweisung
// bleiben unverändert, das ist kein Fehler.
func (r *SchemaRepository) ClearValue(ctx context.Context, schema, field string) error {
	exists, err := r.schemaExists(ctx, schema)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("schema %q: %w", schema, domain.ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM field_values WHERE schema_name = ? AND field_name = ?",
		schema, field,
	); err != nil {
		return fmt.Errorf("wert löschen: %w", err)
	}
	return nil
}

func (r *SchemaRepository) schemaExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM schemas WHERE name = ?", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("schema prüfen: %w", err)
	}
	return true, nil
}
