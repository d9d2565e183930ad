package storage

import (
	"context"

	"bid-finder/models"
)

// RecentRuns liefert die letzten Läufe, neueste zuerst.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]models.RunHistory, error) {
	var runs []models.RunHistory
	err := s.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
