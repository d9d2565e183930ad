package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bid-finder/models"
	"bid-finder/query"
	"bid-finder/storage"
)

type statement struct {
	SQL  string
	Args []any
}

type fakeConn struct {
	statements []statement
	rows       map[string][]models.Row
	counts     map[string]int64
	failOn     string
}

func (c *fakeConn) Fetch(_ context.Context, sqlText string, args []any) ([]models.Row, error) {
	c.statements = append(c.statements, statement{sqlText, args})
	if c.failOn != "" && strings.Contains(sqlText, c.failOn) {
		return nil, errors.New("relation does not exist")
	}
	for view, rows := range c.rows {
		if strings.Contains(sqlText, "FROM "+view) {
			return rows, nil
		}
	}
	return []models.Row{}, nil
}

func (c *fakeConn) Count(_ context.Context, sqlText string, args []any) (int64, error) {
	c.statements = append(c.statements, statement{sqlText, args})
	for view, n := range c.counts {
		if strings.Contains(sqlText, "FROM "+view) {
			return n, nil
		}
	}
	return 0, nil
}

type fakeStore struct {
	conn     *fakeConn
	acquired int
	released int
}

func (s *fakeStore) WithConn(_ context.Context, fn func(storage.Conn) error) error {
	s.acquired++
	defer func() { s.released++ }()
	return fn(s.conn)
}

func intPtr(n int) *int { return &n }

func newTestQueryService(conn *fakeConn) (*QueryService, *fakeStore) {
	store := &fakeStore{conn: conn}
	return NewQueryService(store, 200, 10000, zap.NewNop()), store
}

func TestEffectiveLimit(t *testing.T) {
	svc, _ := newTestQueryService(&fakeConn{})

	assert.Equal(t, 200, svc.EffectiveLimit(nil))
	assert.Equal(t, 200, svc.EffectiveLimit(intPtr(0)))
	assert.Equal(t, 200, svc.EffectiveLimit(intPtr(-5)))
	assert.Equal(t, 50, svc.EffectiveLimit(intPtr(50)))
	assert.Equal(t, 10000, svc.EffectiveLimit(intPtr(1_000_000)))
}

func TestEffectiveLimit_NonPositiveDefaultStillBounded(t *testing.T) {
	svc := NewQueryService(&fakeStore{conn: &fakeConn{}}, 0, 0, zap.NewNop())

	assert.Equal(t, 200, svc.EffectiveLimit(nil))
	assert.Equal(t, 200, svc.EffectiveLimit(intPtr(-1)))

	conn := &fakeConn{}
	svc = NewQueryService(&fakeStore{conn: conn}, 0, 10000, zap.NewNop())
	_, err := svc.Query(context.Background(), QueryRequest{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(conn.statements[0].SQL, " LIMIT 200"))
}

func TestQuery_RunsFourStatementsOnOneConnection(t *testing.T) {
	row := models.Row{Columns: []string{"Mã TBMT"}, Values: []any{"IB2400001"}}
	conn := &fakeConn{
		rows:   map[string][]models.Row{"df1_full": {row, row}},
		counts: map[string]int64{"df1_full": 17, "df2_full": 3},
	}
	svc, store := newTestQueryService(conn)

	res, err := svc.Query(context.Background(), QueryRequest{
		Filters: &query.Filters{Country: "Vietnam", DateFrom: "2024-01-01", DateTo: "2024-06-30"},
		Sort:    []query.SortRule{{Column: "unitPrice", Order: "desc"}},
		Limit:   intPtr(50),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, store.acquired)
	assert.Equal(t, 1, store.released)
	require.Len(t, conn.statements, 4)

	assert.Equal(t, int64(17), res.Standard.Count)
	assert.Equal(t, 2, res.Standard.Displayed)
	assert.Len(t, res.Standard.Data, 2)
	assert.Equal(t, int64(3), res.Extended.Count)
	assert.Equal(t, 0, res.Extended.Displayed)
	assert.NotNil(t, res.Extended.Data)

	data := conn.statements[0]
	assert.Contains(t, data.SQL, `LOWER("Xuất xứ") LIKE LOWER($1)`)
	assert.Contains(t, data.SQL, `ORDER BY "Đơn giá trúng thầu (VND)" DESC LIMIT 50`)
	assert.Equal(t, []any{"%Vietnam%", "2024-01-01", "2024-06-30"}, data.Args)

	count := conn.statements[1]
	assert.True(t, strings.HasPrefix(count.SQL, "SELECT COUNT(*) FROM (SELECT * FROM df1_full WHERE "))
	assert.Equal(t, data.Args, count.Args)
	assert.Contains(t, conn.statements[2].SQL, "FROM df2_full")
}

func TestQuery_FailureFailsWholeRequest(t *testing.T) {
	conn := &fakeConn{failOn: "df2_full"}
	svc, store := newTestQueryService(conn)

	res, err := svc.Query(context.Background(), QueryRequest{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "fetch df2")
	assert.Equal(t, 1, store.released)
}

func TestDump(t *testing.T) {
	row := models.Row{Columns: []string{"id"}, Values: []any{int32(1)}}
	conn := &fakeConn{rows: map[string][]models.Row{"df2_extended": {row}}}
	svc, _ := newTestQueryService(conn)

	res, err := svc.Dump(context.Background(), query.Extended)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, conn.statements, 1)
	assert.Equal(t, `SELECT * FROM df2_extended ORDER BY "created_at" DESC, "Mã TBMT" ASC LIMIT 1000`, conn.statements[0].SQL)
	assert.Empty(t, conn.statements[0].Args)
}
