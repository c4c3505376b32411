package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountRequired    = errors.New("valor é obrigatório")
	ErrAmountNotPositive = errors.New("valor deve ser maior que zero")
	ErrAmountNegative    = errors.New("valor não pode ser negativo")
)

// ParseAmount valida um valor monetário vindo de formulário.
//
// Texto vazio é obrigatório; texto que não é número conta como zero.
// O resultado é limitado a 2 casas decimais.
func ParseAmount(raw string, allowZero bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrAmountRequired
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		amount = decimal.Zero
	}

	if !amount.IsPositive() && !allowZero {
		return decimal.Zero, ErrAmountNotPositive
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrAmountNegative
	}
	return amount.Round(2), nil
}
