// Package palette hält die prozessweite Registry der benannten Farben.
// Nach der Initialisierung beim Programmstart ist die Registry unveränderlich;
// alle Abfragen sind deshalb ohne weitere Synchronisation nebenläufig sicher.
package palette

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"param-registry-backend/internal/domain"
)

// rgb sind die drei Farbkanäle eines Registry-Eintrags.
type rgb struct {
	r, g, b uint8
}

var (
	mu      sync.RWMutex
	byName  map[string]rgb
	ordered []string
)

// longHexRegex prüft das lange Hex-Format für Palettendateien.
var longHexRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// nameRegex beschränkt Namen in Palettendateien auf Kleinbuchstaben.
var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

func init() {
	reset()
}

// reset baut die Registry aus der einkompilierten CSS-Tabelle neu auf.
func reset() {
	byName = make(map[string]rgb, len(cssColors))
	for name, c := range cssColors {
		byName[name] = c
	}
	rebuildOrder()
}

func rebuildOrder() {
	ordered = make([]string, 0, len(byName))
	for name := range byName {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)
}

// IsNamed gibt zurück, ob name eine bekannte benannte Farbe ist.
// Der Vergleich ist unabhängig von Groß- und Kleinschreibung.
func IsNamed(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byName[strings.ToLower(name)]
	return ok
}

// Lookup sucht den Registry-Eintrag zu name.
func Lookup(name string) (domain.PaletteEntry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := byName[strings.ToLower(name)]
	if !ok {
		return domain.PaletteEntry{}, false
	}
	return entry(strings.ToLower(name), c), true
}

// Len gibt die Anzahl der registrierten Farben zurück.
func Len() int {
	mu.RLock()
	defer mu.RUnlock()

	return len(byName)
}

// List gibt die Einträge alphabetisch sortiert zurück, optional paginiert.
// limit 0 bedeutet unbegrenzt.
func List(limit, offset int) []domain.PaletteEntry {
	mu.RLock()
	defer mu.RUnlock()

	names := ordered
	if offset > 0 {
		if offset >= len(names) {
			return make([]domain.PaletteEntry, 0)
		}
		names = names[offset:]
	}
	if limit > 0 && limit < len(names) {
		names = names[:limit]
	}

	out := make([]domain.PaletteEntry, 0, len(names))
	for _, name := range names {
		out = append(out, entry(name, byName[name]))
	}
	return out
}

// Nearest sucht die benannte Farbe mit dem geringsten CIE-Lab-Abstand zum
// angegebenen Hex-Wert (#rgb oder #rrggbb).
func Nearest(value string) (domain.NearestColor, error) {
	target, err := colorful.Hex(value)
	if err != nil {
		return domain.NearestColor{}, fmt.Errorf("hex-wert %q: %w", value, domain.ErrInvalidValue)
	}

	mu.RLock()
	defer mu.RUnlock()

	best := domain.NearestColor{Value: value, Distance: -1}
	for _, name := range ordered {
		c := byName[name]
		candidate := colorful.Color{
			R: float64(c.r) / 255.0,
			G: float64(c.g) / 255.0,
			B: float64(c.b) / 255.0,
		}
		if d := target.DistanceLab(candidate); best.Distance < 0 || d < best.Distance {
			best.Match = entry(name, c)
			best.Distance = d
		}
	}
	return best, nil
}

// LoadCSV erweitert die Registry einmalig beim Start um die Einträge der
// angegebenen Palettendatei (Spalten name,hex). Eingebaute Namen dürfen nicht
// überschrieben werden. Gibt die Anzahl der übernommenen Einträge zurück.
func LoadCSV(path string, logger *zap.Logger) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("palettendatei öffnen %s: %w", path, err)
	}
	defer file.Close()

	var rows []domain.PaletteEntry
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return 0, fmt.Errorf("palettendatei lesen %s: %w", path, err)
	}

	// Erst alle Zeilen prüfen, dann übernehmen: eine fehlerhafte Datei darf
	// die Registry nicht halb verändert zurücklassen.
	pending := make(map[string]rgb, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		hex := strings.TrimSpace(row.Hex)

		if !nameRegex.MatchString(name) {
			return 0, fmt.Errorf("zeile %d: ungültiger farbname %q", i+1, row.Name)
		}
		if !longHexRegex.MatchString(hex) {
			return 0, fmt.Errorf("zeile %d: ungültiger hex-wert %q (erwartet #rrggbb)", i+1, row.Hex)
		}
		if _, exists := cssColors[name]; exists {
			return 0, fmt.Errorf("zeile %d: eingebaute farbe %q darf nicht überschrieben werden", i+1, name)
		}
		if _, dup := pending[name]; dup {
			return 0, fmt.Errorf("zeile %d: farbe %q mehrfach in der palettendatei", i+1, name)
		}

		c, err := colorful.Hex(hex)
		if err != nil {
			return 0, fmt.Errorf("zeile %d: hex-wert %q: %w", i+1, hex, err)
		}
		pending[name] = rgb{
			r: uint8(c.R*255.0 + 0.5),
			g: uint8(c.G*255.0 + 0.5),
			b: uint8(c.B*255.0 + 0.5),
		}
	}

	mu.Lock()
	defer mu.Unlock()

	for name, c := range pending {
		byName[name] = c
	}
	rebuildOrder()

	logger.Info("palette aus CSV erweitert",
		zap.Int("anzahl", len(pending)),
		zap.String("datei", path),
	)
	return len(pending), nil
}

// WriteCSV schreibt die gesamte Registry als CSV (Spalten name,hex) nach w.
func WriteCSV(w io.Writer) error {
	rows := List(0, 0)
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("palette als csv schreiben: %w", err)
	}
	return nil
}

func entry(name string, c rgb) domain.PaletteEntry {
	return domain.PaletteEntry{
		Name: name,
		Hex:  fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b),
	}
}
