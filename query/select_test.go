package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultOrderSQL = ` ORDER BY "Ngày phê duyệt" DESC NULLS LAST, "Mã TBMT" ASC`

func TestBuild_NoFilters(t *testing.T) {
	sel := Build(Standard, &Filters{}, nil, 200)

	assert.Equal(t, `SELECT * FROM df1_full`+defaultOrderSQL+` LIMIT 200`, sel.SQL())
	assert.Equal(t, `SELECT COUNT(*) FROM (SELECT * FROM df1_full) AS subq`, sel.CountSQL())
	assert.Equal(t, 0, sel.Params.Len())
}

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		name     string
		ds       Dataset
		rules    []SortRule
		expected string
	}{
		{
			name:     "no rules falls back to default",
			ds:       Standard,
			expected: `"Ngày phê duyệt" DESC NULLS LAST, "Mã TBMT" ASC`,
		},
		{
			name:     "only unknown columns falls back to default",
			ds:       Extended,
			rules:    []SortRule{{Column: "id", Order: "desc"}, {Column: "; DROP TABLE x", Order: "asc"}},
			expected: `"Ngày phê duyệt" DESC NULLS LAST, "Mã TBMT" ASC`,
		},
		{
			name:     "unknown columns are skipped",
			ds:       Standard,
			rules:    []SortRule{{Column: "bogus", Order: "desc"}, {Column: "unitPrice", Order: "desc"}},
			expected: `"Đơn giá trúng thầu (VND)" DESC`,
		},
		{
			name:     "direction is case sensitive",
			ds:       Standard,
			rules:    []SortRule{{Column: "amount", Order: "DESC"}, {Column: "winner", Order: ""}},
			expected: `"Thành tiền (VND)" ASC, "Nhà thầu trúng thầu" ASC`,
		},
		{
			name:     "quantity resolves per dataset",
			ds:       Extended,
			rules:    []SortRule{{Column: "quantity", Order: "desc"}, {Column: "drugName", Order: "asc"}},
			expected: `"Khối lượng" DESC, "Tên hàng hóa" ASC`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var parts []string
			for _, o := range ResolveOrder(tt.ds, tt.rules) {
				parts = append(parts, o.String())
			}
			assert.Equal(t, tt.expected, strings.Join(parts, ", "))
		})
	}
}

func TestBuild_CountSharesPredicate(t *testing.T) {
	f := &Filters{DrugName: `"panadol extra" -expired`, Place: []string{"Hà Nội"}}
	sel := Build(Standard, f, []SortRule{{Column: "unitPrice", Order: "desc"}}, 10)

	dataSQL := sel.SQL()
	countSQL := sel.CountSQL()

	suffix := ` ORDER BY "Đơn giá trúng thầu (VND)" DESC LIMIT 10`
	require.True(t, strings.HasSuffix(dataSQL, suffix))
	predicatePart := strings.TrimSuffix(dataSQL, suffix)

	assert.Equal(t, sel.Base(), predicatePart)
	assert.Equal(t, "SELECT COUNT(*) FROM ("+predicatePart+") AS subq", countSQL)
}

func TestBuild_VietnamScenario(t *testing.T) {
	f := &Filters{Country: "Vietnam", DateFrom: "2024-01-01", DateTo: "2024-06-30"}
	sel := Build(Standard, f, []SortRule{{Column: "unitPrice", Order: "desc"}}, 50)

	assert.Equal(t,
		`SELECT * FROM df1_full WHERE LOWER("Xuất xứ") LIKE LOWER($p1) AND `+
			`"Ngày phê duyệt" >= $p2 AND "Ngày phê duyệt" <= $p3 `+
			`ORDER BY "Đơn giá trúng thầu (VND)" DESC LIMIT 50`,
		sel.SQL())

	sqlText, args, err := Bind(sel.SQL(), sel.Params)
	require.NoError(t, err)
	assert.Equal(t, []any{"%Vietnam%", "2024-01-01", "2024-06-30"}, args)
	assert.Contains(t, sqlText, `LOWER($1)`)

	countText, countArgs, err := Bind(sel.CountSQL(), sel.Params)
	require.NoError(t, err)
	assert.Equal(t, args, countArgs)
	assert.NotContains(t, countText, "ORDER BY")
	assert.NotContains(t, countText, "LIMIT")
}

func TestDump(t *testing.T) {
	assert.Equal(t,
		`SELECT * FROM df1_standard ORDER BY "created_at" DESC, "Mã TBMT" ASC LIMIT 1000`,
		Dump(Standard, 1000).SQL())
	assert.Equal(t,
		`SELECT * FROM df2_extended ORDER BY "created_at" DESC, "Mã TBMT" ASC LIMIT 1000`,
		Dump(Extended, 1000).SQL())
}

func TestDatasetByName(t *testing.T) {
	ds, ok := DatasetByName("df2")
	require.True(t, ok)
	assert.Equal(t, "df2_full", ds.View)

	_, ok = DatasetByName("df3")
	assert.False(t, ok)
}
