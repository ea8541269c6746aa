package env

import (
	"os"
	"strconv"
)

// Config enthält alle konfigurierbaren Werte der Anwendung, die über Umgebungsvariablen gesetzt werden können.
type Config struct {
	ServerAddr  string  // SERVER_ADDR – Adresse des HTTP-Servers (Standard: ":8082")
	DataSource  string  // DATA_SOURCE – "memory" oder "sqlite" (Standard: "memory")
	SQLiteDSN   string  // SQLITE_DSN – Datenquelle für SQLite (Standard: "param-registry.db")
	SchemaFile  string  // SCHEMA_FILE – YAML-Manifest mit Startschemas (Standard: leer, kein Manifest)
	PaletteFile string  // PALETTE_FILE – CSV mit zusätzlichen Farbnamen (Standard: leer, nur eingebaute)
	RateLimit   float64 // RATE_LIMIT – Erlaubte Anfragen pro Sekunde (Standard: 100)
	MaxFields   int     // MAX_FIELDS – Max. Anzahl Felder über alle Schemas (Standard: 10000)
}

// MustLoad liest die Konfiguration aus Umgebungsvariablen.
func MustLoad() Config {
	return Config{
		ServerAddr:  getOr("SERVER_ADDR", ":8082"),
		DataSource:  getOr("DATA_SOURCE", "memory"),
		SQLiteDSN:   getOr("SQLITE_DSN", "param-registry.db"),
		SchemaFile:  getOr("SCHEMA_FILE", ""),
		PaletteFile: getOr("PALETTE_FILE", ""),
		RateLimit:   getFloatOr("RATE_LIMIT", 100),
		MaxFields:   getIntOr("MAX_FIELDS", 10_000),
	}
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
