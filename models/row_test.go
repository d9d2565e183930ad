package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMarshalJSON_KeepsColumnOrder(t *testing.T) {
	row := Row{
		Columns: []string{"Tên thuốc", "id", "Đơn giá trúng thầu (VND)", "Ngày phê duyệt"},
		Values:  []any{"Paracetamol 500mg", int32(7), "1250.50", nil},
	}

	out, err := json.Marshal(row)
	require.NoError(t, err)

	assert.Equal(t,
		`{"Tên thuốc":"Paracetamol 500mg","id":7,"Đơn giá trúng thầu (VND)":"1250.50","Ngày phê duyệt":null}`,
		string(out))
}

func TestRowMarshalJSON_Empty(t *testing.T) {
	out, err := json.Marshal([]Row{{}})
	require.NoError(t, err)
	assert.Equal(t, `[{}]`, string(out))
}

func TestRowGet(t *testing.T) {
	row := Row{Columns: []string{"a", "b"}, Values: []any{1, "x"}}

	v, ok := row.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = row.Get("c")
	assert.False(t, ok)
}
