package currency

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
)

var (
	ErrNotNumeric        = errors.New("currency: value is not numeric")
	ErrUnsupportedLocale = errors.New("currency: unsupported locale")
	ErrUnknownCurrency   = errors.New("currency: unknown currency code")
)

// Formatter formata valores com locale e moeda fixos.
type Formatter struct {
	tag    language.Tag
	unit   xcurrency.Unit
	scale  int32
	loc    localeFormat
	symbol string
}

func NewFormatter(tag language.Tag, code string) (*Formatter, error) {
	loc, ok := locales[tag.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, tag)
	}
	unit, err := xcurrency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	scale, _ := xcurrency.Standard.Rounding(unit)

	return &Formatter{
		tag:    tag,
		unit:   unit,
		scale:  int32(scale),
		loc:    loc,
		symbol: loc.symbol(unit.String()),
	}, nil
}

func (f *Formatter) Locale() language.Tag { return f.tag }
func (f *Formatter) Code() string         { return f.unit.String() }

// Format aceita qualquer float finito; NaN e ±Inf retornam ErrNotNumeric.
func (f *Formatter) Format(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrNotNumeric, v)
	}
	return f.format(decimal.NewFromFloat(v), math.Signbit(v)), nil
}

// FormatDecimal usa o sinal do valor antes do arredondamento, como o
// Intl.NumberFormat: -0.001 vira "-R$ 0,00".
func (f *Formatter) FormatDecimal(d decimal.Decimal) string {
	return f.format(d, d.IsNegative())
}

func (f *Formatter) format(d decimal.Decimal, negative bool) string {
	digits := d.Round(f.scale).Abs().StringFixed(f.scale)
	intPart, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(f.symbol)
	b.WriteString(f.loc.symbolSep)
	b.WriteString(groupThousands(intPart, f.loc.group))
	if f.scale > 0 {
		b.WriteString(f.loc.decimal)
		b.WriteString(frac)
	}
	return b.String()
}

// FormatAny converte o valor como o formatter do navegador faria com um
// número ou string numérica. Qualquer outra coisa vira ErrNotNumeric.
func (f *Formatter) FormatAny(v any) (string, error) {
	switch n := v.(type) {
	case float64:
		return f.Format(n)
	case float32:
		return f.Format(float64(n))
	case int:
		return f.FormatDecimal(decimal.NewFromInt(int64(n))), nil
	case int8:
		return f.FormatDecimal(decimal.NewFromInt(int64(n))), nil
	case int16:
		return f.FormatDecimal(decimal.NewFromInt(int64(n))), nil
	case int32:
		return f.FormatDecimal(decimal.NewFromInt32(n)), nil
	case int64:
		return f.FormatDecimal(decimal.NewFromInt(n)), nil
	case uint:
		return f.FormatDecimal(fromUint(uint64(n))), nil
	case uint8:
		return f.FormatDecimal(fromUint(uint64(n))), nil
	case uint16:
		return f.FormatDecimal(fromUint(uint64(n))), nil
	case uint32:
		return f.FormatDecimal(fromUint(uint64(n))), nil
	case uint64:
		return f.FormatDecimal(fromUint(n)), nil
	case decimal.Decimal:
		return f.FormatDecimal(n), nil
	case json.Number:
		return f.formatString(string(n))
	case string:
		return f.formatString(n)
	default:
		return "", fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

func (f *Formatter) formatString(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	// decimal não tem -0; "-0" ainda leva o sinal
	return f.format(d, strings.HasPrefix(s, "-")), nil
}

func fromUint(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 || sep == "" {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

var (
	brlOnce sync.Once
	brl     *Formatter
)

// BRL é o formatter padrão do painel (pt-BR / BRL).
func BRL() *Formatter {
	brlOnce.Do(func() {
		f, err := NewFormatter(language.BrazilianPortuguese, "BRL")
		if err != nil {
			panic(err)
		}
		brl = f
	})
	return brl
}

func FormatBRL(v float64) (string, error) { return BRL().Format(v) }
