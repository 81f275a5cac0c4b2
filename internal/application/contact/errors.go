package contact

import "errors"

var (
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrEnqueueImport       = errors.New("failed to enqueue import run")
	ErrQueueFull           = errors.New("import queue is full")
	ErrWorkerStopped       = errors.New("import worker stopped")
	ErrRunCanceled         = errors.New("import run canceled")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrContactNotFound     = errors.New("contact not found")
	ErrGetContact          = errors.New("failed to get contact")
	ErrListImportSummaries = errors.New("failed to list import summaries")
)
