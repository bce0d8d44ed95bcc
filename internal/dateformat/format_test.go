package dateformat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPortuguese(t *testing.T) {
	f, err := New("pt-BR", time.UTC)
	require.NoError(t, err)

	ts := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"dd LLL yyyy", "15 mar 2021"},
		{"dd MMM yyyy", "15 mar 2021"},
		{"d 'de' MMMM 'de' yyyy", "15 de março de 2021"},
		{"dd/MM/yy", "15/03/21"},
		{"EEEE, dd", "segunda-feira, 15"},
		{"HH:mm:ss", "00:00:00"},
		{"'it''s' yyyy", "it's 2021"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(&ts, tt.pattern))
		})
	}
}

func TestFormatEnglish(t *testing.T) {
	f, err := New("en-US", nil)
	require.NoError(t, err)

	ts := time.Date(2021, 12, 5, 9, 7, 3, 0, time.UTC)

	assert.Equal(t, "05 Dec 2021", f.Format(&ts, "dd LLL yyyy"))
	assert.Equal(t, "Sunday 09:07", f.Format(&ts, "EEEE HH:mm"))
	assert.Equal(t, "en-US", f.Locale())
}

func TestFormatNilTimestamp(t *testing.T) {
	f, err := New("pt-BR", time.UTC)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.Equal(t, "", f.Format(nil, "dd LLL yyyy"))
	})
}

func TestFormatUsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	f, err := New("pt-BR", saoPaulo)
	require.NoError(t, err)

	ts := time.Date(2021, 3, 15, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, "14 mar 2021", f.Format(&ts, "dd LLL yyyy"))
}

func TestNewUnsupportedLocale(t *testing.T) {
	_, err := New("fr-FR", time.UTC)
	assert.Error(t, err)
}
