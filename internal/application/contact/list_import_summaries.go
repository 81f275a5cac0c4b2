package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

const (
	defaultSummaryLimit = 50
	maxSummaryLimit     = 200
)

type ListImportSummariesInput struct {
	FileName string
	Since    time.Time
	Limit    int
}

type ImportSummaryOutput struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"`
	InsertedCount int64     `json:"inserted_count"`
	UpdatedCount  int64     `json:"updated_count"`
	SkippedCount  int64     `json:"skipped_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListImportSummariesOutput struct {
	Items []ImportSummaryOutput `json:"items"`
}

type ListImportSummaries interface {
	Execute(ctx context.Context, in ListImportSummariesInput) (ListImportSummariesOutput, error)
}

type listImportSummaries struct {
	repo domain.SummaryLister
}

func NewListImportSummaries(repo domain.SummaryLister) ListImportSummaries {
	return &listImportSummaries{repo: repo}
}

func (uc *listImportSummaries) Execute(ctx context.Context, in ListImportSummariesInput) (ListImportSummariesOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultSummaryLimit
	}
	if limit > maxSummaryLimit {
		limit = maxSummaryLimit
	}

	summaries, err := uc.repo.List(ctx, domain.SummaryFilter{
		FileName: strings.TrimSpace(in.FileName),
		Since:    in.Since,
		Limit:    limit,
	})
	if err != nil {
		return ListImportSummariesOutput{}, fmt.Errorf("%w: %v", ErrListImportSummaries, err)
	}

	items := make([]ImportSummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, ImportSummaryOutput{
			ID:            s.ID,
			FileName:      s.FileName,
			InsertedCount: s.InsertedCount,
			UpdatedCount:  s.UpdatedCount,
			SkippedCount:  s.SkippedCount,
			CreatedAt:     s.CreatedAt,
		})
	}

	return ListImportSummariesOutput{Items: items}, nil
}
