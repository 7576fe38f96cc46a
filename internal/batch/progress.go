package batch

import "subsync/internal/align"

// ProgressSink receives batch progress events. Calls arrive from worker
// goroutines, serialized by the orchestrator; implementations do not need
// their own locking but must return quickly.
type ProgressSink interface {
	// JobStateChanged reports a per-item sync job state transition.
	JobStateChanged(itemIndex int, state align.State)
	// BatchProgress reports aggregate counts after an item reaches a
	// terminal status.
	BatchProgress(completed, failed, remaining int)
}

// NopSink discards all progress events.
type NopSink struct{}

func (NopSink) JobStateChanged(int, align.State) {}

func (NopSink) BatchProgress(int, int, int) {}
