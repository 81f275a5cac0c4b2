package contact

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type SubmitImportInput struct {
	FilePath string
	FileName string
}

type SubmitImportOutput struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

type SubmitImport interface {
	Execute(ctx context.Context, in SubmitImportInput) (SubmitImportOutput, error)
}

type importEnqueuer interface {
	Enqueue(ctx context.Context, run domain.ImportRun) error
}

type submitImport struct {
	queue importEnqueuer
}

func NewSubmitImport(queue importEnqueuer) SubmitImport {
	return &submitImport{queue: queue}
}

func (uc *submitImport) Execute(ctx context.Context, in SubmitImportInput) (SubmitImportOutput, error) {
	filePath := strings.TrimSpace(in.FilePath)
	if filePath == "" || !IsCSVFileName(filePath) {
		return SubmitImportOutput{}, ErrInvalidImportSource
	}

	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		fileName = filepath.Base(filePath)
	}

	run := domain.ImportRun{
		ID:       uuid.NewString(),
		FilePath: filePath,
		FileName: fileName,
	}

	if err := uc.queue.Enqueue(ctx, run); err != nil {
		return SubmitImportOutput{}, fmt.Errorf("%w: %w", ErrEnqueueImport, err)
	}

	return SubmitImportOutput{
		RunID:  run.ID,
		Status: "queued",
	}, nil
}

// IsCSVFileName reports whether name carries an accepted upload extension.
func IsCSVFileName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return true
	default:
		return false
	}
}
