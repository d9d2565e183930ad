package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"bid-finder/metrics"
	"bid-finder/models"
	"bid-finder/providers"
	"bid-finder/storage"
)

// ErrLoadInProgress meldet, dass bereits ein Ladevorgang läuft.
var ErrLoadInProgress = errors.New("load already in progress")

// loadLockKey ist der Schlüssel der Postgres-Advisory-Lock für Ladevorgänge.
const loadLockKey int64 = 0x62696466

// loadTable ordnet eine Arbeitsmappe ihrer Tabelle zu.
type loadTable struct {
	File  string
	Model any
	Table string
}

var loadTables = []loadTable{
	{File: "columns_19_20.xlsx", Model: &models.StandardRecord{}, Table: models.StandardRecord{}.TableName()},
	{File: "columns_13_14.xlsx", Model: &models.ExtendedRecord{}, Table: models.ExtendedRecord{}.TableName()},
	{File: "additional_info_log.xlsx", Model: &models.TenderInfo{}, Table: models.TenderInfo{}.TableName()},
}

// loadBatch ist der vollständig eingelesene Inhalt eines Laufs.
type loadBatch struct {
	Records map[string][]map[string]any
	Runs    []models.RunHistory
}

// runHistoryEntry ist ein Eintrag der Verlaufsdatei des Crawlers.
type runHistoryEntry struct {
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationSeconds *float64 `json:"duration_seconds"`
	BoxesSelected   *float64 `json:"boxes_selected"`
}

// LoadResult fasst einen erfolgreichen Lauf zusammen.
type LoadResult struct {
	Counts   map[string]int64
	Duration time.Duration
}

// LoadService ersetzt den Tabelleninhalt durch die aktuellen Exporte der Quelle.
type LoadService struct {
	Store     *storage.Store
	Source    providers.Source
	ChunkSize int
	Logger    *zap.Logger

	mu sync.Mutex
}

// NewLoadService erstellt eine neue Instanz des LoadService.
func NewLoadService(store *storage.Store, source providers.Source, chunkSize int, logger *zap.Logger) *LoadService {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &LoadService{Store: store, Source: source, ChunkSize: chunkSize, Logger: logger}
}

// Run liest alle Exporte, leert die vier Tabellen und füllt sie in einer Transaktion neu.
// Ein zweiter gleichzeitiger Lauf (im Prozess oder über die Advisory-Lock) scheitert sofort.
func (l *LoadService) Run(ctx context.Context) (*LoadResult, error) {
	if !l.mu.TryLock() {
		return nil, ErrLoadInProgress
	}
	defer l.mu.Unlock()

	start := time.Now()
	result, err := l.run(ctx)
	if err != nil {
		status := "failed"
		if errors.Is(err, ErrLoadInProgress) {
			status = "skipped"
		}
		metrics.LoaderRuns.WithLabelValues(status).Inc()
		return nil, err
	}
	result.Duration = time.Since(start)
	metrics.LoaderRuns.WithLabelValues("success").Inc()
	l.Logger.Info("Load completed", zap.Duration("duration", result.Duration))
	return result, nil
}

func (l *LoadService) run(ctx context.Context) (*LoadResult, error) {
	l.Logger.Info("Reading source files", zap.String("source", l.Source.Name()))
	batch, err := l.readInputs(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = l.Store.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked bool
		if err := tx.Raw("SELECT pg_try_advisory_xact_lock(?)", loadLockKey).Scan(&locked).Error; err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		if !locked {
			return ErrLoadInProgress
		}

		if err := tx.Exec("TRUNCATE TABLE " + strings.Join(tableNames(), ", ") + " RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("truncate tables: %w", err)
		}
		l.Logger.Info("Tables truncated")

		for _, t := range loadTables {
			records := batch.Records[t.Table]
			for _, rec := range records {
				rec["created_at"] = now
			}
			if err := l.insertChunks(tx, t, records); err != nil {
				return err
			}
		}

		if len(batch.Runs) > 0 {
			if err := tx.CreateInBatches(&batch.Runs, l.ChunkSize).Error; err != nil {
				return fmt.Errorf("insert run_history: %w", err)
			}
			l.Logger.Info("Run history inserted", zap.Int("rows", len(batch.Runs)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.Logger.Info("Data committed")

	db := l.Store.DB.WithContext(ctx)
	for _, table := range tableNames() {
		if err := db.Exec("ANALYZE " + table).Error; err != nil {
			l.Logger.Warn("ANALYZE failed", zap.String("table", table), zap.Error(err))
		}
	}

	counts := make(map[string]int64, len(loadTables)+1)
	for _, table := range tableNames() {
		n, err := l.Store.TableCount(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
		metrics.LoadedRows.WithLabelValues(table).Set(float64(n))
		l.Logger.Info("Table verified", zap.String("table", table), zap.Int64("rows", n))
	}
	return &LoadResult{Counts: counts}, nil
}

func (l *LoadService) insertChunks(tx *gorm.DB, t loadTable, records []map[string]any) error {
	for i := 0; i < len(records); i += l.ChunkSize {
		end := min(i+l.ChunkSize, len(records))
		if err := tx.Model(t.Model).Create(records[i:end]).Error; err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", t.Table, i, end, err)
		}
		l.Logger.Info("Chunk inserted",
			zap.String("table", t.Table),
			zap.Int("chunk", i/l.ChunkSize+1),
			zap.Int("rows", end-i),
		)
	}
	return nil
}

// readInputs liest alle Dateien vor Beginn der Transaktion.
func (l *LoadService) readInputs(ctx context.Context) (*loadBatch, error) {
	batch := &loadBatch{Records: make(map[string][]map[string]any, len(loadTables))}
	for _, t := range loadTables {
		kinds, err := columnKinds(t.Model)
		if err != nil {
			return nil, err
		}
		rc, err := l.Source.Open(ctx, t.File)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", t.File, err)
		}
		records, err := readSheet(rc, kinds)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.File, err)
		}
		batch.Records[t.Table] = records
		l.Logger.Info("Source file read", zap.String("file", t.File), zap.Int("rows", len(records)))
	}

	runs, err := l.readRunHistory(ctx)
	if err != nil {
		return nil, err
	}
	batch.Runs = runs
	return batch, nil
}

// readRunHistory liest die optionale Verlaufsdatei; fehlt sie, bleibt run_history leer.
func (l *LoadService) readRunHistory(ctx context.Context) ([]models.RunHistory, error) {
	rc, err := l.Source.Open(ctx, RunHistoryFile)
	if errors.Is(err, providers.ErrNotFound) {
		l.Logger.Info("No run history file, skipping")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", RunHistoryFile, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", RunHistoryFile, err)
	}
	var entries []runHistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RunHistoryFile, err)
	}

	runs := make([]models.RunHistory, len(entries))
	for i, e := range entries {
		runs[i] = models.RunHistory{
			StartTime:       parseRunTime(e.StartTime),
			EndTime:         parseRunTime(e.EndTime),
			DurationSeconds: roundedInt(e.DurationSeconds),
			BoxesSelected:   roundedInt(e.BoxesSelected),
		}
	}
	return runs, nil
}

func parseRunTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func roundedInt(f *float64) *int {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	n := int(math.Round(*f))
	return &n
}

func tableNames() []string {
	names := make([]string, 0, len(loadTables)+1)
	for _, t := range loadTables {
		names = append(names, t.Table)
	}
	return append(names, models.RunHistory{}.TableName())
}
