// Package manifest lädt Schemadeklarationen aus einer YAML-Datei, damit ein
// fester Satz von Schemas schon beim Programmstart bereitsteht.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"param-registry-backend/internal/domain"
	"param-registry-backend/internal/param"
)

// Manifest ist der Inhalt einer Schemadatei.
type Manifest struct {
	Schemas []domain.Schema `yaml:"schemas"`
}

// Load liest eine Manifestdatei ein und prüft jedes enthaltene Schema.
// Unbekannte Schlüssel und ungültige Deklarationen führen zu einem Fehler,
// es wird dann kein Manifest zurückgegeben.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest öffnen: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if len(m.Schemas) == 0 {
		return nil, fmt.Errorf("manifest %s: keine schemas enthalten", path)
	}

	seen := make(map[string]bool, len(m.Schemas))
	for i := range m.Schemas {
		s := &m.Schemas[i]
		if seen[s.Name] {
			return nil, fmt.Errorf("manifest %s: schema %q mehrfach enthalten", path, s.Name)
		}
		seen[s.Name] = true
		if err := param.CheckSchema(s); err != nil {
			return nil, fmt.Errorf("manifest %s, schema %q: %w", path, s.Name, err)
		}
	}
	return &m, nil
}
