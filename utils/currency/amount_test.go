package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		allowZero bool
		want      string
		wantErr   error
	}{
		{name: "vazio", raw: "  ", wantErr: ErrAmountRequired},
		{name: "texto vira zero", raw: "abc", wantErr: ErrAmountNotPositive},
		{name: "texto vira zero permitido", raw: "abc", allowZero: true, want: "0"},
		{name: "zero", raw: "0", wantErr: ErrAmountNotPositive},
		{name: "zero permitido", raw: "0", allowZero: true, want: "0"},
		{name: "negativo", raw: "-5", wantErr: ErrAmountNotPositive},
		{name: "negativo com zero permitido", raw: "-5", allowZero: true, wantErr: ErrAmountNegative},
		{name: "arredonda", raw: "10.456", want: "10.46"},
		{name: "inteiro", raw: "150", want: "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw, tt.allowZero)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
