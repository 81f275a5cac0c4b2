package contact

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/logger"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultQueueSize = 100
)

type runExecutor interface {
	Run(ctx context.Context, run domain.ImportRun) (domain.ImportSummary, error)
}

type ImportWorkerConfig struct {
	Workers    int
	QueueSize  int
	RunTimeout time.Duration
}

// ImportWorker is a fixed pool of goroutines draining a bounded queue of
// import runs. Each enqueued run executes at most once and is never retried;
// callers get no result back, outcomes are only logged.
type ImportWorker struct {
	runner runExecutor
	log    *logger.Logger
	cfg    ImportWorkerConfig

	queue chan domain.ImportRun

	mu     sync.RWMutex
	closed bool
	cancel context.CancelFunc

	once sync.Once
	wg   sync.WaitGroup
}

func NewImportWorker(runner runExecutor, log *logger.Logger, cfg ImportWorkerConfig) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Workers > maxWorkers {
		cfg.Workers = maxWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	return &ImportWorker{
		runner: runner,
		log:    log.With("component", "import_worker"),
		cfg:    cfg,
		queue:  make(chan domain.ImportRun, cfg.QueueSize),
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		w.mu.Lock()
		w.cancel = cancel
		w.mu.Unlock()

		for i := 0; i < w.cfg.Workers; i++ {
			w.wg.Add(1)
			go w.workerLoop(ctx)
		}
	})
}

// Enqueue hands a run to the pool without waiting for it to execute.
func (w *ImportWorker) Enqueue(ctx context.Context, run domain.ImportRun) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrWorkerStopped
	}

	select {
	case w.queue <- run:
		w.log.Debug("import run queued", "run_id", run.ID, "file_name", run.FileName)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Stop refuses new runs and waits until queued and in-flight runs finish
// or the context passed to Start is canceled.
func (w *ImportWorker) Stop() {
	_ = w.Shutdown(context.Background())
}

// Shutdown refuses new runs and drains the queue until ctx is done. After
// that, in-flight runs are canceled, still-queued runs are dropped, and
// ctx.Err() is returned once every worker has exited.
func (w *ImportWorker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	cancel := w.cancel
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
		w.log.Warn("import drain timed out, canceling in-flight runs", "error", err)
	}

	if cancel != nil {
		cancel()
	}
	<-done
	return err
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case run, ok := <-w.queue:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				w.log.Warn("import run dropped", "run_id", run.ID, "file_name", run.FileName)
				continue
			}
			w.process(ctx, run)
		}
	}
}

func (w *ImportWorker) process(ctx context.Context, run domain.ImportRun) {
	runCtx := ctx
	if w.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, w.cfg.RunTimeout)
		defer cancel()
	}

	defer func() {
		if rec := recover(); rec != nil {
			w.log.Error("import run panicked", "run_id", run.ID, "panic", fmt.Sprint(rec))
		}
	}()

	if _, err := w.runner.Run(runCtx, run); err != nil {
		w.log.Error("process import run failed", "run_id", run.ID, "file_name", run.FileName, "error", err)
	}
}
