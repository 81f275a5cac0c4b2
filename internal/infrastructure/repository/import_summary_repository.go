package repository

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

var (
	_ domain.SummaryStore  = (*ImportSummaryRepository)(nil)
	_ domain.SummaryLister = (*ImportSummaryRepository)(nil)
)

// ImportSummaryRepository is the append-only log of completed import runs.
type ImportSummaryRepository struct {
	db *gorm.DB
}

func NewImportSummaryRepository(db *gorm.DB) *ImportSummaryRepository {
	return &ImportSummaryRepository{db: db}
}

func (r *ImportSummaryRepository) Append(ctx context.Context, summary domain.ImportSummary) error {
	row := models.ImportSummary{
		ID:            summary.ID,
		FileName:      summary.FileName,
		InsertedCount: summary.InsertedCount,
		UpdatedCount:  summary.UpdatedCount,
		SkippedCount:  summary.SkippedCount,
		CreatedAt:     summary.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import summary: %w", err)
	}

	return nil
}

// List returns summaries newest first, optionally narrowed to one file name
// and to runs completed at or after filter.Since.
func (r *ImportSummaryRepository) List(ctx context.Context, filter domain.SummaryFilter) ([]domain.ImportSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportSummary{})
	if filter.FileName != "" {
		query = query.Where("file_name = ?", filter.FileName)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.ImportSummary
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list import summaries: %w", err)
	}

	summaries := make([]domain.ImportSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.ImportSummary{
			ID:            row.ID,
			FileName:      row.FileName,
			InsertedCount: row.InsertedCount,
			UpdatedCount:  row.UpdatedCount,
			SkippedCount:  row.SkippedCount,
			CreatedAt:     row.CreatedAt,
		})
	}

	return summaries, nil
}
