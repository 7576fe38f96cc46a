package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"subsync/internal/align"
	"subsync/internal/logging"
	"subsync/internal/services"
)

// Status is an item's terminal state.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// ItemOutcome is what a successful item hands back to the orchestrator.
type ItemOutcome struct {
	Transform  align.Transform
	Attempts   int
	OutputPath string
}

// ItemFunc performs the work for one pairing. onState receives the item's
// sync job state transitions and may be ignored.
type ItemFunc func(ctx context.Context, item Pairing, onState align.StateFunc) (ItemOutcome, error)

// ItemResult is the per-pairing record in a batch result. Err is nil only
// when Status is StatusCompleted.
type ItemResult struct {
	Pairing    Pairing
	Status     Status
	Transform  align.Transform
	Attempts   int
	OutputPath string
	Err        error
}

// Result summarizes a finished batch run. Items holds one entry per
// pairing, in pairing order, regardless of which workers ran them.
type Result struct {
	RunID     uuid.UUID
	Items     []ItemResult
	Completed int
	Failed    int
	Cancelled int
	Duration  time.Duration
}

// Orchestrator runs pairings through an ItemFunc with bounded concurrency.
// Construct one per batch run.
type Orchestrator struct {
	concurrency int
	run         ItemFunc
	sink        ProgressSink
	logger      *slog.Logger

	mu        sync.Mutex
	completed int
	failed    int
}

// NewOrchestrator builds an orchestrator. Concurrency below one is raised
// to one; a nil sink gets NopSink.
func NewOrchestrator(concurrency int, run ItemFunc, sink ProgressSink, logger *slog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Orchestrator{
		concurrency: concurrency,
		run:         run,
		sink:        sink,
		logger:      logging.NewComponentLogger(logger, "batch"),
	}
}

// Run executes every pairing and blocks until all workers drain. It always
// returns one result per pairing; cancellation marks unfinished items
// StatusCancelled instead of dropping them.
func (o *Orchestrator) Run(ctx context.Context, pairings []Pairing) Result {
	started := time.Now()
	result := Result{
		RunID: uuid.New(),
		Items: make([]ItemResult, len(pairings)),
	}

	o.logger.Info("batch started", logging.Args(
		logging.String("run_id", result.RunID.String()),
		logging.Int("items", len(pairings)),
		logging.Int("concurrency", o.concurrency),
	)...)

	work := make(chan Pairing)
	var wg sync.WaitGroup
	for w := 0; w < o.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				result.Items[item.Index] = o.runItem(ctx, item, len(pairings))
			}
		}()
	}

feed:
	for _, item := range pairings {
		select {
		case work <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	for i := range result.Items {
		item := &result.Items[i]
		if item.Status == "" {
			// Never handed to a worker before cancellation.
			item.Pairing = pairings[i]
			item.Status = StatusCancelled
			item.Err = services.Wrap(services.ErrCancelled, "batch", "run", "batch cancelled before item started", ctx.Err())
		}
		switch item.Status {
		case StatusCompleted:
			result.Completed++
		case StatusFailed:
			result.Failed++
		case StatusCancelled:
			result.Cancelled++
		}
	}
	result.Duration = time.Since(started)

	o.logger.Info("batch finished", logging.Args(
		logging.String("run_id", result.RunID.String()),
		logging.Int("completed", result.Completed),
		logging.Int("failed", result.Failed),
		logging.Int("cancelled", result.Cancelled),
		logging.Duration("duration", result.Duration),
	)...)
	return result
}

func (o *Orchestrator) runItem(ctx context.Context, item Pairing, total int) ItemResult {
	if err := ctx.Err(); err != nil {
		return ItemResult{
			Pairing: item,
			Status:  StatusCancelled,
			Err:     services.Wrap(services.ErrCancelled, "batch", "run", "batch cancelled before item started", err),
		}
	}

	outcome, err := o.runItemSafely(ctx, item)
	result := ItemResult{
		Pairing:    item,
		Transform:  outcome.Transform,
		Attempts:   outcome.Attempts,
		OutputPath: outcome.OutputPath,
		Err:        err,
	}
	switch {
	case err == nil:
		result.Status = StatusCompleted
		o.logger.Info("item completed", logging.Args(
			logging.Int("item", item.Index),
			logging.String("pairing", item.String()),
			logging.String("transform", outcome.Transform.String()),
		)...)
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		o.logger.Info("item cancelled", logging.Args(logging.Int("item", item.Index))...)
	default:
		result.Status = StatusFailed
		o.logger.Error("item failed", logging.Args(
			logging.Int("item", item.Index),
			logging.String("pairing", item.String()),
			logging.String("kind", services.Kind(err)),
			logging.Error(err),
		)...)
	}

	o.reportProgress(result.Status, total)
	return result
}

// runItemSafely isolates item failures: a panic inside the item function
// becomes an internal error for that item alone.
func (o *Orchestrator) runItemSafely(ctx context.Context, item Pairing) (outcome ItemOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = services.Wrap(services.ErrInternal, "batch", "run",
				fmt.Sprintf("item %d panicked: %v", item.Index, r), nil)
		}
	}()
	onState := func(state align.State) {
		o.mu.Lock()
		o.sink.JobStateChanged(item.Index, state)
		o.mu.Unlock()
	}
	return o.run(ctx, item, onState)
}

func (o *Orchestrator) reportProgress(status Status, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch status {
	case StatusCompleted:
		o.completed++
	default:
		// Cancelled items count as failed for live progress; the final
		// result separates them.
		o.failed++
	}
	o.sink.BatchProgress(o.completed, o.failed, total-o.completed-o.failed)
}
