package jobs

import (
	"context"
	"sync"

	"go-youtube-download/internal/models"

	log "github.com/sirupsen/logrus"
)

// eventBuffer sizes the multiplexed progress channel. Producers are serial
// per job, so a small buffer is enough to decouple runner goroutines from the
// consumer without reordering anything.
const eventBuffer = 64

// Manager owns the job table, the runner registry, and the single consumer
// goroutine that applies progress events. All runner-originated table
// mutations go through the manager's event channel, so the table only ever
// has one writing context while any number of runners produce.
type Manager struct {
	table        *Table
	backend      Backend
	events       chan models.ProgressEvent
	consumerDone chan struct{}
	wg           sync.WaitGroup

	mu       sync.Mutex
	runners  []*Runner
	shutdown bool
}

// NewManager creates a manager bound to the given table and backend, and
// starts the event consumer.
func NewManager(table *Table, backend Backend) *Manager {
	m := &Manager{
		table:        table,
		backend:      backend,
		events:       make(chan models.ProgressEvent, eventBuffer),
		consumerDone: make(chan struct{}),
	}
	go m.consume()
	return m
}

// Table returns the job table the manager writes to.
func (m *Manager) Table() *Table {
	return m.table
}

// Enqueue appends a new job row for the given download and returns its
// runner, not yet started. Title may be empty when unknown (raw-URL
// downloads); the row keeps its "N/A" sentinel in that case.
func (m *Manager) Enqueue(url, title, outputPath, formatExpr string) *Runner {
	id := m.table.Append()
	if title != "" {
		if err := m.table.SetField(id, FieldTitle, title); err != nil {
			log.WithError(err).Errorf("Failed to set title on fresh row %d", id)
		}
	}
	if err := m.table.SetField(id, FieldOutputPath, outputPath); err != nil {
		log.WithError(err).Errorf("Failed to set output path on fresh row %d", id)
	}

	r := &Runner{
		jobID:      id,
		url:        url,
		formatExpr: formatExpr,
		outputPath: outputPath,
		backend:    m.backend,
		events:     m.events,
		wg:         &m.wg,
	}

	m.mu.Lock()
	m.runners = append(m.runners, r)
	m.mu.Unlock()

	log.Debugf("Enqueued job %d for %s (format %q)", id, url, formatExpr)
	return r
}

// StartAll starts every runner that has not been started yet. Runners that
// are already running are unaffected (the started guard makes the extra
// start a no-op).
func (m *Manager) StartAll(ctx context.Context) {
	m.mu.Lock()
	runners := append([]*Runner(nil), m.runners...)
	m.mu.Unlock()
	for _, r := range runners {
		r.Start(ctx)
	}
}

// Wait blocks until every started runner goroutine has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Shutdown stops every still-running runner, waits for each to reach a
// stopped state, then drains and closes the event funnel. Safe to call more
// than once; later calls are no-ops.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.shutdown {
		m.mu.Unlock()
		return
	}
	m.shutdown = true
	runners := append([]*Runner(nil), m.runners...)
	m.mu.Unlock()

	for _, r := range runners {
		r.Stop()
	}
	m.wg.Wait()

	close(m.events)
	<-m.consumerDone
	log.Debug("Job manager shut down")
}

func (m *Manager) consume() {
	defer close(m.consumerDone)
	for ev := range m.events {
		// Apply logs unknown-row errors itself; nothing to recover here.
		_ = m.table.Apply(ev)
	}
}
