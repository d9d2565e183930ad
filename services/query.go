package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bid-finder/metrics"
	"bid-finder/models"
	"bid-finder/query"
	"bid-finder/storage"
)

// DumpLimit begrenzt die ungefilterten Legacy-Endpunkte.
const DumpLimit = 1000

// ConnProvider reserviert eine Verbindung für die Dauer von fn.
type ConnProvider interface {
	WithConn(ctx context.Context, fn func(storage.Conn) error) error
}

// QueryRequest ist der Body von POST /api/query.
type QueryRequest struct {
	Filters *query.Filters   `json:"filters"`
	Sort    []query.SortRule `json:"sort"`
	Limit   *int             `json:"limit"`
}

// DatasetResult enthält die Treffer eines Datensets.
type DatasetResult struct {
	Data      []models.Row `json:"data"`
	Count     int64        `json:"count"`
	Displayed int          `json:"displayed"`
}

// QueryResult enthält die Ergebnisse beider Datensets.
type QueryResult struct {
	Standard DatasetResult `json:"df1"`
	Extended DatasetResult `json:"df2"`
}

// QueryService führt gefilterte Abfragen über beide Datensets aus.
type QueryService struct {
	Store        ConnProvider
	DefaultLimit int
	MaxLimit     int
	Logger       *zap.Logger
}

// NewQueryService erstellt eine neue Instanz des QueryService.
func NewQueryService(store ConnProvider, defaultLimit, maxLimit int, logger *zap.Logger) *QueryService {
	return &QueryService{
		Store:        store,
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
		Logger:       logger,
	}
}

// fallbackLimit gilt, wenn kein positiver Standardwert konfiguriert ist.
const fallbackLimit = 200

// EffectiveLimit: fehlend oder <= 0 ergibt den Standardwert, zu große Werte werden gekappt.
// Das Ergebnis ist immer positiv, jede Abfrage trägt also ein LIMIT.
func (s *QueryService) EffectiveLimit(limit *int) int {
	n := s.DefaultLimit
	if n <= 0 {
		n = fallbackLimit
	}
	if limit != nil && *limit > 0 {
		n = *limit
	}
	if s.MaxLimit > 0 && n > s.MaxLimit {
		n = s.MaxLimit
	}
	return n
}

// Query führt Daten- und Count-Abfrage für df1 und df2 auf einer einzigen Verbindung aus.
// Schlägt eine der vier Anweisungen fehl, schlägt die ganze Anfrage fehl.
func (s *QueryService) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	limit := s.EffectiveLimit(req.Limit)
	standard := query.Build(query.Standard, req.Filters, req.Sort, limit)
	extended := query.Build(query.Extended, req.Filters, req.Sort, limit)

	var result QueryResult
	err := s.Store.WithConn(ctx, func(conn storage.Conn) error {
		var err error
		if result.Standard, err = s.run(ctx, conn, query.Standard.Name, standard); err != nil {
			return err
		}
		result.Extended, err = s.run(ctx, conn, query.Extended.Name, extended)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Query executed",
		zap.Int("limit", limit),
		zap.Int64("df1_count", result.Standard.Count),
		zap.Int64("df2_count", result.Extended.Count),
	)
	return &result, nil
}

func (s *QueryService) run(ctx context.Context, conn storage.Conn, name string, sel query.Select) (DatasetResult, error) {
	dataSQL, dataArgs, err := query.Bind(sel.SQL(), sel.Params)
	if err != nil {
		return DatasetResult{}, fmt.Errorf("bind %s data: %w", name, err)
	}
	countSQL, countArgs, err := query.Bind(sel.CountSQL(), sel.Params)
	if err != nil {
		return DatasetResult{}, fmt.Errorf("bind %s count: %w", name, err)
	}
	s.Logger.Debug("Running dataset query", zap.String("dataset", name), zap.String("sql", dataSQL), zap.Int("args", len(dataArgs)))

	start := time.Now()
	rows, err := conn.Fetch(ctx, dataSQL, dataArgs)
	metrics.ObserveQuery(name, "data", start)
	if err != nil {
		metrics.QueryErrors.WithLabelValues(name).Inc()
		return DatasetResult{}, fmt.Errorf("fetch %s: %w", name, err)
	}

	start = time.Now()
	count, err := conn.Count(ctx, countSQL, countArgs)
	metrics.ObserveQuery(name, "count", start)
	if err != nil {
		metrics.QueryErrors.WithLabelValues(name).Inc()
		return DatasetResult{}, fmt.Errorf("count %s: %w", name, err)
	}

	return DatasetResult{Data: rows, Count: count, Displayed: len(rows)}, nil
}

// DumpResult ist die Antwort der Legacy-Endpunkte /api/df1 und /api/df2.
type DumpResult struct {
	Data  []models.Row `json:"data"`
	Count int          `json:"count"`
}

// Dump liefert bis zu DumpLimit Zeilen der Basistabelle eines Datensets.
func (s *QueryService) Dump(ctx context.Context, ds query.Dataset) (*DumpResult, error) {
	sel := query.Dump(ds, DumpLimit)
	sqlText, args, err := query.Bind(sel.SQL(), sel.Params)
	if err != nil {
		return nil, fmt.Errorf("bind %s dump: %w", ds.Name, err)
	}

	var rows []models.Row
	err = s.Store.WithConn(ctx, func(conn storage.Conn) error {
		start := time.Now()
		defer metrics.ObserveQuery(ds.Name, "dump", start)
		var err error
		rows, err = conn.Fetch(ctx, sqlText, args)
		return err
	})
	if err != nil {
		metrics.QueryErrors.WithLabelValues(ds.Name).Inc()
		return nil, fmt.Errorf("dump %s: %w", ds.Name, err)
	}
	return &DumpResult{Data: rows, Count: len(rows)}, nil
}
