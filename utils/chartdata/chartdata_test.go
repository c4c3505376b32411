package chartdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid([]string{"jan", "fev"}, []float64{1, 2}))
	assert.False(t, Valid([]string{}, []int{}))
	assert.False(t, Valid([]int{1}, []int{1, 2}))
	assert.False(t, Valid[int, int](nil, []int{1}))
}

func TestValidAny(t *testing.T) {
	tests := []struct {
		name   string
		labels any
		data   any
		want   bool
	}{
		{"iguais", []string{"a"}, []int{1}, true},
		{"array", [2]string{"a", "b"}, []any{1, 2}, true},
		{"vazios", []int{}, []int{}, false},
		{"tamanhos diferentes", []int{1}, []int{1, 2}, false},
		{"nil", nil, []int{1}, false},
		{"slice nil", []int(nil), []int{1}, false},
		{"string não é sequência", "ab", []int{1, 2}, false},
		{"map não é sequência", map[string]int{"a": 1}, []int{1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAny(tt.labels, tt.data))
		})
	}
}

func TestValidAny_DecodedJSON(t *testing.T) {
	var payload struct {
		Labels any `json:"labels"`
		Data   any `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"labels":["jan","fev"],"data":[10,20]}`), &payload))
	assert.True(t, ValidAny(payload.Labels, payload.Data))

	require.NoError(t, json.Unmarshal([]byte(`{"labels":null,"data":[1]}`), &payload))
	assert.False(t, ValidAny(payload.Labels, payload.Data))
}

func TestSeries_Validate(t *testing.T) {
	require.NoError(t, Series{Labels: []string{"a"}, Data: []float64{1}}.Validate())
	require.ErrorIs(t, Series{Labels: []string{"a"}}.Validate(), ErrInvalidSeries)
}
