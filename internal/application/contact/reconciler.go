package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

// Reconciler executes a single import run: it upserts every valid row by
// email, then records and announces the outcome.
type Reconciler struct {
	ingestor  *Ingestor
	contacts  domain.ContactUpserter
	summaries domain.SummaryStore
	publisher domain.Publisher
	log       *logger.Logger
	now       func() time.Time
}

func NewReconciler(
	ingestor *Ingestor,
	contacts domain.ContactUpserter,
	summaries domain.SummaryStore,
	publisher domain.Publisher,
	log *logger.Logger,
) *Reconciler {
	return &Reconciler{
		ingestor:  ingestor,
		contacts:  contacts,
		summaries: summaries,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run processes the run's file to completion. Rows are handled strictly in
// file order so the last occurrence of an email wins. On any returned error
// other than a summary append failure, nothing was appended or published.
func (r *Reconciler) Run(ctx context.Context, run domain.ImportRun) (domain.ImportSummary, error) {
	log := r.log.With("run_id", run.ID, "file_name", run.FileName)
	log.Info("import run started", "state", domain.RunReading, "file_path", run.FilePath)

	rows, err := r.ingestor.Open(ctx, run.FilePath)
	if err != nil {
		return domain.ImportSummary{}, r.abort(log, err)
	}
	defer rows.Close()

	var counters domain.Counters
	for {
		if err := ctx.Err(); err != nil {
			return domain.ImportSummary{}, r.abort(log, fmt.Errorf("%w: %v", ErrRunCanceled, err))
		}

		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.ImportSummary{}, r.abort(log, err)
		}

		if row.Err != nil {
			counters.Skipped++
			log.Debug("row skipped", "row", row.Index, "reason", row.Err)
			continue
		}

		created, err := r.contacts.UpsertByEmail(ctx, row.Record.Email, row.Record.Name, row.Record.Phone)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return domain.ImportSummary{}, r.abort(log, fmt.Errorf("%w: %v", ErrRunCanceled, ctxErr))
			}
			return domain.ImportSummary{}, r.abort(log, fmt.Errorf("%w: upsert row %d: %v", domain.ErrStoreUnavailable, row.Index, err))
		}

		if created {
			counters.Inserted++
		} else {
			counters.Updated++
		}
	}

	return r.finalize(ctx, log, run, counters)
}

// finalize appends the summary and publishes the completion event. The two
// side effects are independent: a failure of one does not skip the other.
func (r *Reconciler) finalize(ctx context.Context, log *logger.Logger, run domain.ImportRun, counters domain.Counters) (domain.ImportSummary, error) {
	log.Debug("finalizing import run", "state", domain.RunFinalizing)

	summary := counters.Summary(run.ID, run.FileName, r.now())

	var appendErr error
	if err := r.summaries.Append(ctx, summary); err != nil {
		appendErr = fmt.Errorf("%w: append summary: %v", domain.ErrStoreUnavailable, err)
		log.Error("failed to append import summary", "error", appendErr)
	}

	if err := r.publisher.Publish(ctx, domain.TopicImportCompleted, summary.Event()); err != nil {
		log.Warn("failed to publish import completion",
			"error", fmt.Errorf("%w: %v", domain.ErrNotificationUnavailable, err),
			"topic", domain.TopicImportCompleted,
		)
	}

	if appendErr != nil {
		return summary, appendErr
	}

	log.Info("import run completed",
		"state", domain.RunCompleted,
		"inserted", summary.InsertedCount,
		"updated", summary.UpdatedCount,
		"skipped", summary.SkippedCount,
	)
	return summary, nil
}

func (r *Reconciler) abort(log *logger.Logger, err error) error {
	log.Error("import run aborted", "state", domain.RunAborted, "error", err)
	return err
}
