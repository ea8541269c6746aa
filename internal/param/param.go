// Package param implementiert die Validierung von Felddeklarationen und
// Feldwerten. Werte werden ausschließlich über explizite Setter zugewiesen,
// die einen Fehler zurückgeben; ein abgelehnter Wert lässt den bisherigen
// Zustand unverändert.
package param

import (
	"fmt"
	"math"
	"regexp"

	"param-registry-backend/internal/domain"
	"param-registry-backend/internal/palette"
)

// maxNameLen begrenzt Schema- und Feldnamen.
const maxNameLen = 64

var (
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	identRegex    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ValidateColor prüft einen Farbwert. Zulässig sind die Hex-Formate #rgb und
// #rrggbb (Groß- und Kleinschreibung egal) sowie, falls allowNamed gesetzt
// ist, die Namen der CSS-Palette. Der Wert wird nicht verändert, insbesondere
// nicht getrimmt oder normalisiert.
func ValidateColor(value string, allowNamed bool) error {
	if hexColorRegex.MatchString(value) {
		return nil
	}
	if allowNamed {
		if palette.IsNamed(value) {
			return nil
		}
		return fmt.Errorf("%w: %q ist weder ein hex-farbwert noch ein bekannter farbname", domain.ErrInvalidValue, value)
	}
	return fmt.Errorf("%w: %q ist kein hex-farbwert (erwartet #rgb oder #rrggbb)", domain.ErrInvalidValue, value)
}

// CheckSchema normalisiert und prüft ein Schema samt aller Felddeklarationen.
func CheckSchema(s *domain.Schema) error {
	if !identRegex.MatchString(s.Name) || len(s.Name) > maxNameLen {
		return fmt.Errorf("%w: ungültiger schemaname %q", domain.ErrInvalidValue, s.Name)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: schema %q hat keine felder", domain.ErrInvalidValue, s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		d := &s.Fields[i]
		if seen[d.Name] {
			return fmt.Errorf("%w: feldname %q mehrfach vergeben", domain.ErrInvalidValue, d.Name)
		}
		seen[d.Name] = true
		if err := CheckDeclaration(d); err != nil {
			return fmt.Errorf("feld %q: %w", d.Name, err)
		}
	}
	return nil
}

// CheckDeclaration normalisiert eine Felddeklaration und prüft sie auf
// Konsistenz. Schreibgeschützte Felder gelten implizit als konstant, und ein
// fehlender Standardwert erlaubt automatisch Nullwerte. Ein gesetzter
// Standardwert muss die Deklaration selbst bestehen, sonst schlägt bereits
// die Deklaration fehl.
func CheckDeclaration(d *domain.Declaration) error {
	if !identRegex.MatchString(d.Name) || len(d.Name) > maxNameLen {
		return fmt.Errorf("%w: ungültiger feldname %q", domain.ErrInvalidValue, d.Name)
	}
	if _, ok := domain.ValidKinds[d.Kind]; !ok {
		return fmt.Errorf("%w: unbekannte feldart %q", domain.ErrInvalidValue, d.Kind)
	}

	if d.ReadOnly {
		d.Constant = true
	}
	if d.Default == nil {
		d.AllowNone = true
	}

	switch d.Kind {
	case domain.KindString:
		if d.Regex != "" {
			if _, err := regexp.Compile(d.Regex); err != nil {
				return fmt.Errorf("%w: regulärer ausdruck: %v", domain.ErrInvalidValue, err)
			}
		}
	case domain.KindNumber, domain.KindInteger:
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return fmt.Errorf("%w: minimum %v liegt über dem maximum %v", domain.ErrInvalidValue, *d.Min, *d.Max)
		}
	case domain.KindSelector:
		if len(d.Options) == 0 {
			return fmt.Errorf("%w: auswahlfeld ohne optionen", domain.ErrInvalidValue)
		}
		opts := make(map[string]bool, len(d.Options))
		for _, opt := range d.Options {
			if opts[opt] {
				return fmt.Errorf("%w: doppelte option %q", domain.ErrInvalidValue, opt)
			}
			opts[opt] = true
		}
	}

	if d.Default != nil {
		if err := CheckValue(d, d.Default); err != nil {
			return fmt.Errorf("standardwert: %w", err)
		}
	}
	return nil
}

// CheckValue prüft einen Wert gegen eine Felddeklaration. Es findet keine
// Typumwandlung statt: der Wert muss bereits in der erwarteten Form vorliegen.
func CheckValue(d *domain.Declaration, v any) error {
	if v == nil {
		if d.AllowNone {
			return nil
		}
		return fmt.Errorf("%w: nullwert ist nicht erlaubt", domain.ErrInvalidValue)
	}

	switch d.Kind {
	case domain.KindColor:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: zeichenkette erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		return ValidateColor(s, d.AllowsNamed())
	case domain.KindString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: zeichenkette erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		if d.Regex == "" {
			return nil
		}
		re, err := regexp.Compile("^(?:" + d.Regex + ")$")
		if err != nil {
			return fmt.Errorf("%w: regulärer ausdruck: %v", domain.ErrInvalidValue, err)
		}
		if !re.MatchString(s) {
			return fmt.Errorf("%w: %q entspricht nicht dem muster %q", domain.ErrInvalidValue, s, d.Regex)
		}
		return nil
	case domain.KindNumber:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("%w: zahl erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		return checkBounds(d, f)
	case domain.KindInteger:
		f, ok := toFloat(v)
		if !ok {
			return fmt.Errorf("%w: ganze zahl erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		if f != math.Trunc(f) {
			return fmt.Errorf("%w: %v ist keine ganze zahl", domain.ErrInvalidValue, v)
		}
		return checkBounds(d, f)
	case domain.KindBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: wahrheitswert erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		return nil
	case domain.KindSelector:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: zeichenkette erwartet, %T erhalten", domain.ErrInvalidValue, v)
		}
		for _, opt := range d.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("%w: %q ist keine der zulässigen optionen %v", domain.ErrInvalidValue, s, d.Options)
	default:
		return fmt.Errorf("%w: unbekannte feldart %q", domain.ErrInvalidValue, d.Kind)
	}
}

func checkBounds(d *domain.Declaration, f float64) error {
	if d.Min != nil && f < *d.Min {
		return fmt.Errorf("%w: %v unterschreitet das minimum %v", domain.ErrInvalidValue, f, *d.Min)
	}
	if d.Max != nil && f > *d.Max {
		return fmt.Errorf("%w: %v überschreitet das maximum %v", domain.ErrInvalidValue, f, *d.Max)
	}
	return nil
}

// toFloat akzeptiert die Zahlentypen, die JSON- und YAML-Dekodierung
// liefern. Andere Typen gelten nicht als Zahl.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
