package reconciliation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeNameString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"accents and case", "  joão DA-silva ", "JOAO DA SILVA"},
		{"spanish letters", "Muñoz Peña", "MUNOZ PENA"},
		{"whitespace runs", "ana\t\tmaria \n lopez", "ANA MARIA LOPEZ"},
		{"unicode dash", "Gómez—Ruiz", "GOMEZ RUIZ"},
		{"underscore", "carlos_perez", "CARLOS PEREZ"},
		{"non latin dropped", "Иван Lopez", "LOPEZ"},
		{"empty", "", ""},
		{"only spaces", "    ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNameString(tt.input))
		})
	}
}

func TestNormalizeNameNil(t *testing.T) {
	assert.Equal(t, "", NormalizeName(nil))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"  joão DA-silva ", "ÁLVARO  núñez", "Ça va", "O'Brien & Co.", "  ", "mañana-tarde_noche", "Zoë Ñandú",
	}
	for _, input := range inputs {
		once := NormalizeNameString(input)
		assert.Equal(t, once, NormalizeNameString(once), "input %q", input)
	}
}

func TestParseDate(t *testing.T) {
	want := NewDate(2026, time.January, 12)

	tests := []struct {
		name  string
		input string
		mode  DateMode
		want  Date
		err   bool
	}{
		{"iso date", "2026-01-12", DateModeBySeparator, want, false},
		{"iso with time", "2026-01-12 16:05:00", DateModeBySeparator, want, false},
		{"iso with T", "2026-01-12T16:05:00Z", DateModeBySeparator, want, false},
		{"day first", "12/01/2026", DateModeBySeparator, want, false},
		{"day first short", "12/1/2026", DateModeBySeparator, want, false},
		{"day first with time", "12/01/2026 08:30", DateModeBySeparator, want, false},
		{"day first dots", "12.01.2026", DateModeBySeparator, want, false},
		{"two digit year", "12/01/26", DateModeBySeparator, want, false},
		{"forced iso rejects day first", "12/01/2026", DateModeISO, Date{}, true},
		{"forced day first rejects iso", "2026-01-12", DateModeDayFirst, Date{}, true},
		{"invalid calendar date", "31/02/2026", DateModeBySeparator, Date{}, true},
		{"garbage", "mañana", DateModeBySeparator, Date{}, true},
		{"dash but not iso", "12-01-2026", DateModeBySeparator, Date{}, true},
		{"empty", "  ", DateModeBySeparator, Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.mode)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))
				assert.False(t, got.Valid)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestNormalizeDateDualFormat(t *testing.T) {
	iso := NormalizeDate(strPtr("2026-01-12"), DateModeBySeparator)
	dayFirst := NormalizeDate(strPtr("12/01/2026"), DateModeBySeparator)

	assert.True(t, iso.Equal(dayFirst))
	assert.Equal(t, "2026-01-12", iso.String())
}

func TestNormalizeDateNullPropagation(t *testing.T) {
	assert.False(t, NormalizeDate(nil, DateModeBySeparator).Valid)
	assert.False(t, NormalizeDate(strPtr("not a date"), DateModeBySeparator).Valid)
}

func TestInvalidDatesNeverEqual(t *testing.T) {
	assert.False(t, Date{}.Equal(Date{}))
	assert.False(t, Key{Name: "ANA"}.Matchable())
	assert.False(t, Key{Date: NewDate(2026, 1, 1)}.Matchable())
}

func TestParseDateMode(t *testing.T) {
	mode, err := ParseDateMode("ISO")
	require.NoError(t, err)
	assert.Equal(t, DateModeISO, mode)

	mode, err = ParseDateMode("")
	require.NoError(t, err)
	assert.Equal(t, DateModeBySeparator, mode)

	_, err = ParseDateMode("american")
	assert.Error(t, err)
}
