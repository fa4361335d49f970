package jobs

import (
	"context"
	"sync"

	"go-youtube-download/internal/models"

	log "github.com/sirupsen/logrus"
)

// Backend performs the actual download. The implementation blocks until the
// download finishes, fails, or the context is cancelled, invoking progress
// for every report the external engine produces.
type Backend interface {
	Download(ctx context.Context, url, formatExpr, outputPath string, progress func(models.ProgressEvent)) error
}

// Runner owns the execution of exactly one download job. It runs the backend
// call on its own goroutine so the invoking context never blocks on I/O, and
// publishes progress events into the manager's funnel instead of touching the
// table directly.
type Runner struct {
	jobID      int
	url        string
	formatExpr string
	outputPath string
	backend    Backend
	events     chan<- models.ProgressEvent
	wg         *sync.WaitGroup

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// JobID returns the table row this runner is bound to.
func (r *Runner) JobID() int {
	return r.jobID
}

// Start launches the download goroutine. The backend call is not idempotent,
// so a second Start is a no-op: the guard makes sure the download is issued
// at most once per job no matter how often start is requested.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		log.Debugf("Job %d already started, ignoring start request", r.jobID)
		return
	}
	r.started = true
	ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(ctx)
}

// Stop cancels the running download. The row is left in whatever state it
// last reported; no terminal transition is synthesized for a forced stop.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Runner) run(ctx context.Context) {
	defer r.wg.Done()
	defer r.Stop()

	// First event promotes the row from Queued to Running even before the
	// backend reports anything.
	r.publish(ctx, models.ProgressEvent{
		JobID:           r.jobID,
		Status:          models.EventDownloading,
		DownloadedBytes: -1,
		TotalBytes:      -1,
		ETASeconds:      -1,
	})

	err := r.backend.Download(ctx, r.url, r.formatExpr, r.outputPath, func(ev models.ProgressEvent) {
		ev.JobID = r.jobID
		r.publish(ctx, ev)
	})

	if ctx.Err() != nil {
		// Forced termination: leave the row at its last reported state.
		log.Debugf("Job %d terminated before completion", r.jobID)
		return
	}
	if err != nil {
		// Mid-job failure is data, not control flow: it surfaces as a state
		// transition on the row, never as an error into the owning context.
		log.WithError(err).Errorf("Job %d failed", r.jobID)
		r.publish(ctx, models.ProgressEvent{JobID: r.jobID, Status: models.EventError, DownloadedBytes: -1, TotalBytes: -1, ETASeconds: -1})
		return
	}
	r.publish(ctx, models.ProgressEvent{JobID: r.jobID, Status: models.EventFinished, DownloadedBytes: -1, TotalBytes: -1, ETASeconds: -1})
}

func (r *Runner) publish(ctx context.Context, ev models.ProgressEvent) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
	}
}
