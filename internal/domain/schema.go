package domain

import "errors"

var (
	ErrNotFound        = errors.New("nicht gefunden")
	ErrInvalidValue    = errors.New("ungültiger wert")
	ErrAlreadyExists   = errors.New("existiert bereits")
	ErrConstant        = errors.New("konstanter parameter")
	ErrReadOnly        = errors.New("schreibgeschützter parameter")
	ErrCapacityReached = errors.New("kapazitätsgrenze erreicht")
)

// Kind bezeichnet die Art eines deklarierten Feldes.
type Kind string

const (
	KindColor    Kind = "color"
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindInteger  Kind = "integer"
	KindBoolean  Kind = "boolean"
	KindSelector Kind = "selector"
)

// ValidKinds enthält alle zulässigen Feldarten.
var ValidKinds = map[Kind]bool{
	KindColor:    true,
	KindString:   true,
	KindNumber:   true,
	KindInteger:  true,
	KindBoolean:  true,
	KindSelector: true,
}

// Declaration beschreibt ein einzelnes Feld eines Schemas. Alle Attribute
// stehen bei der Deklaration fest und ändern sich danach nicht mehr.
type Declaration struct {
	Name       string  `json:"name" yaml:"name"`
	Kind       Kind    `json:"kind" yaml:"kind"`
	Doc        string  `json:"doc,omitempty" yaml:"doc,omitempty"`
	Label      string  `json:"label,omitempty" yaml:"label,omitempty"`
	Precedence float64 `json:"precedence,omitempty" yaml:"precedence,omitempty"`
	Default    any     `json:"default,omitempty" yaml:"default,omitempty"`

	// AllowNone erlaubt explizite Null-Werte. Ein fehlender Default erzwingt true.
	AllowNone bool `json:"allow_none,omitempty" yaml:"allow_none,omitempty"`
	// Constant erlaubt eine Wertzuweisung nur bei der Erzeugung eines Records.
	Constant bool `json:"constant,omitempty" yaml:"constant,omitempty"`
	// ReadOnly verbietet jede Zuweisung; impliziert Constant.
	ReadOnly bool `json:"readonly,omitempty" yaml:"readonly,omitempty"`

	// AllowNamed gilt nur für color-Felder; nil bedeutet erlaubt.
	AllowNamed *bool `json:"allow_named,omitempty" yaml:"allow_named,omitempty"`
	// Regex gilt nur für string-Felder und muss den gesamten Wert abdecken.
	Regex string `json:"regex,omitempty" yaml:"regex,omitempty"`
	// Min und Max sind einschließende Grenzen für number- und integer-Felder.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	// Options sind die zulässigen Werte eines selector-Feldes.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// AllowsNamed gibt zurück, ob benannte Farben für dieses Feld zulässig sind.
// Ohne ausdrückliche Angabe sind sie erlaubt.
func (d *Declaration) AllowsNamed() bool {
	return d.AllowNamed == nil || *d.AllowNamed
}

// Schema ist eine benannte, geordnete Menge von Felddeklarationen.
type Schema struct {
	Name   string        `json:"name" yaml:"name"`
	Doc    string        `json:"doc,omitempty" yaml:"doc,omitempty"`
	Fields []Declaration `json:"fields" yaml:"fields"`
}

// Field sucht die Deklaration mit dem angegebenen Namen.
func (s *Schema) Field(name string) (*Declaration, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Quellen eines Feldwertes: entweder der deklarierte Default oder eine
// ausdrückliche Zuweisung.
const (
	SourceDefault = "default"
	SourceSet     = "set"
)

// FieldValue ist die nach außen sichtbare Sicht auf den aktuellen Wert eines Feldes.
type FieldValue struct {
	Schema string `json:"schema"`
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}
