package contact

import "time"

const TopicImportCompleted = "import-completed"

type RunState string

const (
	RunCreated    RunState = "created"
	RunReading    RunState = "reading"
	RunFinalizing RunState = "finalizing"
	RunCompleted  RunState = "completed"
	RunAborted    RunState = "aborted"
)

// ImportRun is the unit of work for one uploaded file.
type ImportRun struct {
	ID       string
	FilePath string
	FileName string
}

// Counters accumulate row outcomes for a single run. A Counters value belongs
// to the goroutine executing the run and is never shared.
type Counters struct {
	Inserted int64
	Updated  int64
	Skipped  int64
}

func (c Counters) Total() int64 {
	return c.Inserted + c.Updated + c.Skipped
}

func (c Counters) Summary(id, fileName string, at time.Time) ImportSummary {
	return ImportSummary{
		ID:            id,
		FileName:      fileName,
		InsertedCount: c.Inserted,
		UpdatedCount:  c.Updated,
		SkippedCount:  c.Skipped,
		CreatedAt:     at,
	}
}

// ImportSummary is the immutable outcome record of a completed run.
type ImportSummary struct {
	ID            string
	FileName      string
	InsertedCount int64
	UpdatedCount  int64
	SkippedCount  int64
	CreatedAt     time.Time
}

func (s ImportSummary) Event() ImportCompleted {
	return ImportCompleted{
		FileName:      s.FileName,
		InsertedCount: s.InsertedCount,
		UpdatedCount:  s.UpdatedCount,
		SkippedCount:  s.SkippedCount,
	}
}

// ImportCompleted is the payload published on TopicImportCompleted.
type ImportCompleted struct {
	FileName      string `json:"file_name"`
	InsertedCount int64  `json:"inserted_count"`
	UpdatedCount  int64  `json:"updated_count"`
	SkippedCount  int64  `json:"skipped_count"`
}

type SummaryFilter struct {
	FileName string
	Since    time.Time
	Limit    int
}
