package domain

// PaletteEntry ist eine benannte Farbe der Registry mit ihrem langen Hex-Wert.
type PaletteEntry struct {
	Name string `json:"name" csv:"name"`
	Hex  string `json:"hex" csv:"hex"`
}

// NearestColor ist das Ergebnis einer Nächste-Farbe-Suche: der beste Treffer
// aus der Registry samt CIE-Lab-Abstand zum angefragten Wert.
type NearestColor struct {
	Value    string       `json:"value"`
	Match    PaletteEntry `json:"match"`
	Distance float64      `json:"distance"`
}
