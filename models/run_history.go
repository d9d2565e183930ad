package models

import "time"

// RunHistory protokolliert einen Lauf des vorgelagerten Crawlers.
type RunHistory struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	StartTime       *time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime         *time.Time `json:"end_time" gorm:"column:end_time"`
	DurationSeconds *int       `json:"duration_seconds" gorm:"column:duration_seconds"`
	BoxesSelected   *int       `json:"boxes_selected" gorm:"column:boxes_selected"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at;index"`
}

// TableName gibt explizit den Tabellennamen an.
func (RunHistory) TableName() string {
	return "run_history"
}
