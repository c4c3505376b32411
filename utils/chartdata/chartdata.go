// Package chartdata valida os dados antes de entregá-los ao gráfico.
package chartdata

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrInvalidSeries = errors.New("chartdata: labels and data must be non-empty and of equal length")

// Valid retorna true se labels e data não estão vazios e têm o mesmo tamanho.
func Valid[L, D any](labels []L, data []D) bool {
	return len(labels) > 0 && len(data) > 0 && len(labels) == len(data)
}

// ValidAny é a versão sem tipo (ex.: JSON decodificado em any).
// Só slices e arrays contam como sequência; nil, map e string não.
func ValidAny(labels, data any) bool {
	l, ok := seqLen(labels)
	if !ok {
		return false
	}
	d, ok := seqLen(data)
	if !ok {
		return false
	}
	return l > 0 && d > 0 && l == d
}

func seqLen(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Len(), true
	case reflect.Array:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// Series é o payload entregue ao gráfico.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

func (s Series) Validate() error {
	if !Valid(s.Labels, s.Data) {
		return fmt.Errorf("%w: labels=%d data=%d", ErrInvalidSeries, len(s.Labels), len(s.Data))
	}
	return nil
}
