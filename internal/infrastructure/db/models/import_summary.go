package models

import "time"

type ImportSummary struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	FileName      string    `gorm:"type:text;not null;index:idx_import_summaries_file_name_created_at,priority:1"`
	InsertedCount int64     `gorm:"not null;default:0"`
	UpdatedCount  int64     `gorm:"not null;default:0"`
	SkippedCount  int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null;index:idx_import_summaries_file_name_created_at,priority:2"`
}

func (ImportSummary) TableName() string {
	return "import_summaries"
}
