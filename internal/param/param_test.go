package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"param-registry-backend/internal/domain"
)

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// ─── ValidateColor ────────────────────────────────────────────────────────────

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		allowNamed bool
		wantErr    bool
	}{
		{name: "langes Hex-Format", value: "#ffffff", allowNamed: false, wantErr: false},
		{name: "kurzes Hex-Format", value: "#fff", allowNamed: false, wantErr: false},
		{name: "Hex in Großbuchstaben", value: "#FFAA00", allowNamed: false, wantErr: false},
		{name: "Hex gemischt", value: "#AbC", allowNamed: false, wantErr: false},
		{name: "Name ohne Erlaubnis", value: "red", allowNamed: false, wantErr: true},
		{name: "Name mit Erlaubnis", value: "indianred", allowNamed: true, wantErr: false},
		{name: "Name in Großschreibung", value: "IndianRed", allowNamed: true, wantErr: false},
		{name: "unbekannter Name", value: "neonpink", allowNamed: true, wantErr: true},
		{name: "Hex ohne Raute", value: "ffffff", allowNamed: true, wantErr: true},
		{name: "vier Stellen", value: "#ffff", allowNamed: false, wantErr: true},
		{name: "sieben Stellen", value: "#fffffff", allowNamed: false, wantErr: true},
		{name: "zwei Stellen", value: "#ff", allowNamed: false, wantErr: true},
		{name: "ungültige Zeichen", value: "#ggg", allowNamed: false, wantErr: true},
		{name: "leerer Wert", value: "", allowNamed: true, wantErr: true},
		{name: "führendes Leerzeichen", value: " #fff", allowNamed: false, wantErr: true},
		{name: "abschließendes Leerzeichen", value: "#fff ", allowNamed: false, wantErr: true},
		{name: "nur Raute", value: "#", allowNamed: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.value, tt.allowNamed)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidValue)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateColor_Wiederholbar(t *testing.T) {
	// Ein einmal angenommener Wert wird bei erneuter Prüfung wieder
	// angenommen, der Wert selbst bleibt dabei unverändert.
	for _, value := range []string{"#fff", "#ffffff", "indianred"} {
		require.NoError(t, ValidateColor(value, true))
		require.NoError(t, ValidateColor(value, true))
	}
}

// ─── CheckValue ───────────────────────────────────────────────────────────────

func TestCheckValue_FarbnamenStandardmaessigErlaubt(t *testing.T) {
	// Ohne explizite Angabe sind Farbnamen zugelassen.
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor}
	assert.NoError(t, CheckValue(&d, "tomato"))
	assert.NoError(t, CheckValue(&d, "#ff6347"))
}

func TestCheckValue_FarbnamenAbgeschaltet(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, AllowNamed: boolPtr(false)}
	err := CheckValue(&d, "red")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	assert.NoError(t, CheckValue(&d, "#ff0000"))
}

func TestCheckValue_FarbeFalscherTyp(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor}
	err := CheckValue(&d, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestCheckValue_NullErlaubt(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, AllowNone: true}
	assert.NoError(t, CheckValue(&d, nil))
}

func TestCheckValue_NullVerboten(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, Default: "#fff"}
	err := CheckValue(&d, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestCheckValue_ZeichenketteMitMuster(t *testing.T) {
	d := domain.Declaration{Name: "code", Kind: domain.KindString, Regex: "[a-z]+"}
	assert.NoError(t, CheckValue(&d, "abc"))

	// Das Muster muss den gesamten Wert abdecken, nicht nur einen Teil.
	err := CheckValue(&d, "abc1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestCheckValue_ZeichenketteOhneMuster(t *testing.T) {
	d := domain.Declaration{Name: "doc", Kind: domain.KindString}
	assert.NoError(t, CheckValue(&d, "beliebiger text"))
	require.Error(t, CheckValue(&d, 1.5))
}

func TestCheckValue_ZahlInnerhalbDerGrenzen(t *testing.T) {
	d := domain.Declaration{Name: "scale", Kind: domain.KindNumber, Min: floatPtr(0), Max: floatPtr(10)}
	assert.NoError(t, CheckValue(&d, 5.5))
	// Die Grenzen selbst sind zulässig.
	assert.NoError(t, CheckValue(&d, 0.0))
	assert.NoError(t, CheckValue(&d, 10.0))
}

func TestCheckValue_ZahlAusserhalbDerGrenzen(t *testing.T) {
	d := domain.Declaration{Name: "scale", Kind: domain.KindNumber, Min: floatPtr(0), Max: floatPtr(10)}
	require.ErrorIs(t, CheckValue(&d, -0.1), domain.ErrInvalidValue)
	require.ErrorIs(t, CheckValue(&d, 10.1), domain.ErrInvalidValue)
}

func TestCheckValue_ZahlTypen(t *testing.T) {
	d := domain.Declaration{Name: "scale", Kind: domain.KindNumber}
	assert.NoError(t, CheckValue(&d, 5))
	assert.NoError(t, CheckValue(&d, int64(5)))
	assert.NoError(t, CheckValue(&d, 5.5))
	require.ErrorIs(t, CheckValue(&d, "5"), domain.ErrInvalidValue)
	require.ErrorIs(t, CheckValue(&d, true), domain.ErrInvalidValue)
}

func TestCheckValue_GanzeZahl(t *testing.T) {
	d := domain.Declaration{Name: "retries", Kind: domain.KindInteger}
	assert.NoError(t, CheckValue(&d, 3))
	// JSON liefert Zahlen als float64, ganzzahlige Werte sind zulässig.
	assert.NoError(t, CheckValue(&d, float64(3)))
	require.ErrorIs(t, CheckValue(&d, 3.5), domain.ErrInvalidValue)
	require.ErrorIs(t, CheckValue(&d, "3"), domain.ErrInvalidValue)
}

func TestCheckValue_Wahrheitswert(t *testing.T) {
	d := domain.Declaration{Name: "active", Kind: domain.KindBoolean}
	assert.NoError(t, CheckValue(&d, true))
	assert.NoError(t, CheckValue(&d, false))
	require.ErrorIs(t, CheckValue(&d, "true"), domain.ErrInvalidValue)
	require.ErrorIs(t, CheckValue(&d, 1), domain.ErrInvalidValue)
}

func TestCheckValue_Auswahl(t *testing.T) {
	d := domain.Declaration{Name: "mode", Kind: domain.KindSelector, Options: []string{"hell", "dunkel"}}
	assert.NoError(t, CheckValue(&d, "hell"))
	require.ErrorIs(t, CheckValue(&d, "grau"), domain.ErrInvalidValue)
	require.ErrorIs(t, CheckValue(&d, 1), domain.ErrInvalidValue)
}

// ─── CheckDeclaration ─────────────────────────────────────────────────────────

func TestCheckDeclaration_SchreibschutzErzwingtKonstanz(t *testing.T) {
	d := domain.Declaration{Name: "build", Kind: domain.KindString, ReadOnly: true, Default: "r1"}
	require.NoError(t, CheckDeclaration(&d))
	assert.True(t, d.Constant)
}

func TestCheckDeclaration_FehlenderStandardErlaubtNull(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor}
	require.NoError(t, CheckDeclaration(&d))
	assert.True(t, d.AllowNone)
}

func TestCheckDeclaration_UngueltigerName(t *testing.T) {
	d := domain.Declaration{Name: "mein feld", Kind: domain.KindString}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)

	leer := domain.Declaration{Name: "", Kind: domain.KindString}
	require.ErrorIs(t, CheckDeclaration(&leer), domain.ErrInvalidValue)
}

func TestCheckDeclaration_UnbekannteArt(t *testing.T) {
	d := domain.Declaration{Name: "x", Kind: "farbe"}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_UngueltigesMuster(t *testing.T) {
	d := domain.Declaration{Name: "code", Kind: domain.KindString, Regex: "["}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_MinimumUeberMaximum(t *testing.T) {
	d := domain.Declaration{Name: "scale", Kind: domain.KindNumber, Min: floatPtr(10), Max: floatPtr(1)}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_AuswahlOhneOptionen(t *testing.T) {
	d := domain.Declaration{Name: "mode", Kind: domain.KindSelector}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_DoppelteOptionen(t *testing.T) {
	d := domain.Declaration{Name: "mode", Kind: domain.KindSelector, Options: []string{"hell", "hell"}}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_StandardwertWirdGeprueft(t *testing.T) {
	// Ein Farbname als Standardwert scheitert, wenn Namen abgeschaltet sind:
	// die Deklaration selbst schlägt fehl.
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, Default: "red", AllowNamed: boolPtr(false)}
	require.ErrorIs(t, CheckDeclaration(&d), domain.ErrInvalidValue)
}

func TestCheckDeclaration_StandardwertMitNamenErlaubt(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, Default: "red"}
	assert.NoError(t, CheckDeclaration(&d))
}

func TestCheckDeclaration_StandardwertHex(t *testing.T) {
	d := domain.Declaration{Name: "accent", Kind: domain.KindColor, Default: "#fff", AllowNamed: boolPtr(false)}
	assert.NoError(t, CheckDeclaration(&d))
}

// ─── CheckSchema ──────────────────────────────────────────────────────────────

func TestCheckSchema_Gueltig(t *testing.T) {
	s := domain.Schema{
		Name: "profil",
		Fields: []domain.Declaration{
			{Name: "accent", Kind: domain.KindColor, Default: "#ff0000"},
			{Name: "active", Kind: domain.KindBoolean, Default: true},
		},
	}
	assert.NoError(t, CheckSchema(&s))
}

func TestCheckSchema_UngueltigerName(t *testing.T) {
	s := domain.Schema{
		Name:   "mein profil",
		Fields: []domain.Declaration{{Name: "accent", Kind: domain.KindColor}},
	}
	require.ErrorIs(t, CheckSchema(&s), domain.ErrInvalidValue)
}

func TestCheckSchema_OhneFelder(t *testing.T) {
	s := domain.Schema{Name: "leer"}
	require.ErrorIs(t, CheckSchema(&s), domain.ErrInvalidValue)
}

func TestCheckSchema_DoppelteFeldnamen(t *testing.T) {
	s := domain.Schema{
		Name: "profil",
		Fields: []domain.Declaration{
			{Name: "accent", Kind: domain.KindColor},
			{Name: "accent", Kind: domain.KindString},
		},
	}
	require.ErrorIs(t, CheckSchema(&s), domain.ErrInvalidValue)
}

func TestCheckSchema_FehlerNenntFeld(t *testing.T) {
	s := domain.Schema{
		Name: "profil",
		Fields: []domain.Declaration{
			{Name: "accent", Kind: domain.KindColor, Default: "red", AllowNamed: boolPtr(false)},
		},
	}
	err := CheckSchema(&s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accent")
}
