package param

import (
	"fmt"
	"sync"

	"param-registry-backend/internal/domain"
)

// Record hält die Laufzeitwerte eines Schemas. Felder ohne explizit
// gesetzten Wert liefern ihren Standardwert. Alle Methoden sind
// nebenläufigkeitssicher.
type Record struct {
	mu     sync.RWMutex
	schema *domain.Schema
	values map[string]any
}

// NewRecord prüft das Schema und legt einen Datensatz an. Konstante Felder
// können nur hier über initial belegt werden, schreibgeschützte Felder gar
// nicht. Auch die Startwerte durchlaufen die Feldvalidierung.
func NewRecord(schema *domain.Schema, initial map[string]any) (*Record, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: schema fehlt", domain.ErrInvalidValue)
	}
	if err := CheckSchema(schema); err != nil {
		return nil, err
	}

	r := &Record{
		schema: schema,
		values: make(map[string]any, len(initial)),
	}
	for name, value := range initial {
		decl, ok := schema.Field(name)
		if !ok {
			return nil, fmt.Errorf("feld %q: %w", name, domain.ErrNotFound)
		}
		if decl.ReadOnly {
			return nil, fmt.Errorf("feld %q: %w", name, domain.ErrReadOnly)
		}
		if err := CheckValue(decl, value); err != nil {
			return nil, fmt.Errorf("feld %q: %w", name, err)
		}
		r.values[name] = value
	}
	return r, nil
}

// Set validiert den Wert und übernimmt ihn erst danach. Schlägt die
// Validierung fehl, bleibt der bisherige Wert unverändert erhalten.
func (r *Record) Set(name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	decl, ok := r.schema.Field(name)
	if !ok {
		return fmt.Errorf("feld %q: %w", name, domain.ErrNotFound)
	}
	if decl.ReadOnly {
		return fmt.Errorf("feld %q: %w", name, domain.ErrReadOnly)
	}
	if decl.Constant {
		return fmt.Errorf("feld %q: %w", name, domain.ErrConstant)
	}
	if err := CheckValue(decl, value); err != nil {
		return fmt.Errorf("feld %q: %w", name, err)
	}
	r.values[name] = value
	return nil
}

// Get liefert den wirksamen Wert eines Feldes: den gesetzten, sonst den
// Standardwert.
func (r *Record) Get(name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	decl, ok := r.schema.Field(name)
	if !ok {
		return nil, fmt.Errorf("feld %q: %w", name, domain.ErrNotFound)
	}
	if v, ok := r.values[name]; ok {
		return v, nil
	}
	return decl.Default, nil
}

// Reset verwirft einen gesetzten Wert, das Feld fällt auf seinen
// Standardwert zurück. Konstante und schreibgeschützte Felder sind davon
// ausgenommen.
func (r *Record) Reset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	decl, ok := r.schema.Field(name)
	if !ok {
		return fmt.Errorf("feld %q: %w", name, domain.ErrNotFound)
	}
	if decl.ReadOnly {
		return fmt.Errorf("feld %q: %w", name, domain.ErrReadOnly)
	}
	if decl.Constant {
		return fmt.Errorf("feld %q: %w", name, domain.ErrConstant)
	}
	delete(r.values, name)
	return nil
}

// Values liefert alle Felder in Deklarationsreihenfolge samt Herkunft des
// wirksamen Wertes.
func (r *Record) Values() []domain.FieldValue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.FieldValue, 0, len(r.schema.Fields))
	for i := range r.schema.Fields {
		decl := &r.schema.Fields[i]
		fv := domain.FieldValue{
			Schema: r.schema.Name,
			Name:   decl.Name,
			Kind:   decl.Kind,
			Value:  decl.Default,
			Source: domain.SourceDefault,
		}
		if v, ok := r.values[decl.Name]; ok {
			fv.Value = v
			fv.Source = domain.SourceSet
		}
		out = append(out, fv)
	}
	return out
}

// Schema liefert die zugrunde liegende Deklaration.
func (r *Record) Schema() *domain.Schema {
	return r.schema
}
