package currency

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"milhar", 1234.5, "R$\u00a01.234,50"},
		{"zero", 0, "R$\u00a00,00"},
		{"negativo", -3, "-R$\u00a03,00"},
		{"milhões", 1234567.891, "R$\u00a01.234.567,89"},
		{"arredonda para cima", 0.005, "R$\u00a00,01"},
		{"centenas", 999.99, "R$\u00a0999,99"},
		{"negativo arredondado a zero", -0.001, "-R$\u00a00,00"},
		{"zero negativo", math.Copysign(0, -1), "-R$\u00a00,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatBRL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_NotNumeric(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := BRL().Format(v)
		require.ErrorIs(t, err, ErrNotNumeric)
	}
}

func TestFormatAny(t *testing.T) {
	f := BRL()

	got, err := f.FormatAny("1234.5")
	require.NoError(t, err)
	assert.Equal(t, "R$\u00a01.234,50", got)

	got, err = f.FormatAny(" -0 ")
	require.NoError(t, err)
	assert.Equal(t, "-R$\u00a00,00", got)

	got, err = f.FormatAny(decimal.RequireFromString("-0.004"))
	require.NoError(t, err)
	assert.Equal(t, "-R$\u00a00,00", got)

	got, err = f.FormatAny(json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, "R$\u00a042,00", got)

	got, err = f.FormatAny(10)
	require.NoError(t, err)
	assert.Equal(t, "R$\u00a010,00", got)

	got, err = f.FormatAny(uint64(1000000))
	require.NoError(t, err)
	assert.Equal(t, "R$\u00a01.000.000,00", got)

	got, err = f.FormatAny(decimal.RequireFromString("-0.5"))
	require.NoError(t, err)
	assert.Equal(t, "-R$\u00a00,50", got)

	for _, bad := range []any{"abc", "", nil, []int{1}, true} {
		_, err := f.FormatAny(bad)
		assert.ErrorIs(t, err, ErrNotNumeric, "input %#v", bad)
	}
}

func TestNewFormatter_EnglishDollar(t *testing.T) {
	f, err := NewFormatter(language.AmericanEnglish, "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", f.Code())

	got, err := f.Format(1234.5)
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", got)
}

func TestNewFormatter_Errors(t *testing.T) {
	_, err := NewFormatter(language.French, "EUR")
	require.ErrorIs(t, err, ErrUnsupportedLocale)

	_, err = NewFormatter(language.BrazilianPortuguese, "nope")
	require.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1", groupThousands("1", "."))
	assert.Equal(t, "123", groupThousands("123", "."))
	assert.Equal(t, "1.234", groupThousands("1234", "."))
	assert.Equal(t, "123.456", groupThousands("123456", "."))
	assert.Equal(t, "12.345.678", groupThousands("12345678", "."))
}
