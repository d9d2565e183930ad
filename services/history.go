package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"bid-finder/models"
	"bid-finder/providers"
	"bid-finder/storage"
)

// HistoryLimit ist die Anzahl der Läufe in /api/metadata.
const HistoryLimit = 10

// RunHistoryFile ist die vom Crawler geschriebene Verlaufsdatei.
const RunHistoryFile = "run_history.json"

// RunLister liefert die letzten Crawler-Läufe.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]models.RunHistory, error)
}

// RunSummary ist ein Eintrag im Verlauf.
type RunSummary struct {
	EndTime         *string `json:"end_time"`
	DurationSeconds *int    `json:"duration_seconds"`
	BoxesSelected   *int    `json:"boxes_selected"`
}

// Metadata ist die Antwort von /api/metadata.
type Metadata struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	History   any    `json:"history"`
	LastRun   any    `json:"last_run,omitempty"`
	TotalRuns *int   `json:"total_runs,omitempty"`
}

// HistoryService liefert den Aktualisierungsverlauf.
type HistoryService struct {
	Runs   RunLister
	Source providers.Source
	Logger *zap.Logger
}

// NewHistoryService erstellt eine neue Instanz des HistoryService.
func NewHistoryService(runs RunLister, source providers.Source, logger *zap.Logger) *HistoryService {
	return &HistoryService{Runs: runs, Source: source, Logger: logger}
}

// Metadata liest die letzten Läufe aus der Datenbank. Ist die Tabelle leer, wird die
// Verlaufsdatei der Quelle unverändert durchgereicht.
func (s *HistoryService) Metadata(ctx context.Context) (*Metadata, error) {
	runs, err := s.Runs.RecentRuns(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("read run history: %w", err)
	}
	if len(runs) > 0 {
		summaries := make([]RunSummary, len(runs))
		for i, r := range runs {
			summaries[i] = RunSummary{EndTime: formatRunTime(r.EndTime), DurationSeconds: r.DurationSeconds, BoxesSelected: r.BoxesSelected}
		}
		total := len(summaries)
		return &Metadata{Success: true, History: summaries, LastRun: summaries[0], TotalRuns: &total}, nil
	}

	entries, err := s.fileHistory(ctx)
	if err != nil {
		return nil, err
	}
	if entries != nil {
		total := len(entries)
		return &Metadata{Success: true, History: entries, TotalRuns: &total}, nil
	}

	return &Metadata{Success: false, Message: "no update history yet", History: []RunSummary{}}, nil
}

// formatRunTime schreibt Zeitpunkte im selben Format wie die Datenendpunkte.
func formatRunTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(storage.TimestampLayout)
	return &s
}

// fileHistory liefert nil, wenn die Quelle keine Verlaufsdatei hat.
func (s *HistoryService) fileHistory(ctx context.Context) ([]json.RawMessage, error) {
	if s.Source == nil {
		return nil, nil
	}
	rc, err := s.Source.Open(ctx, RunHistoryFile)
	if errors.Is(err, providers.ErrNotFound) {
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
	entries := []json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", RunHistoryFile, err)
	}
	s.Logger.Debug("Run history served from file", zap.String("source", s.Source.Name()), zap.Int("entries", len(entries)))
	return entries, nil
}
