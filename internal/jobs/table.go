// Package jobs implements the download job engine: an append-only table of
// job rows, per-job runners executing on their own goroutines, and the event
// funnel that marshals runner progress into the table.
package jobs

import (
	"errors"
	"fmt"
	"sync"

	"go-youtube-download/internal/models"

	log "github.com/sirupsen/logrus"
)

// Custom job table errors.
var (
	// ErrUnknownRow means a field update addressed a row id that was never
	// appended. Row ids are never removed or reused, so this signals a
	// programming error elsewhere, not a recoverable condition.
	ErrUnknownRow = errors.New("unknown job row")

	// ErrBadFieldValue means SetField was given a value of the wrong type
	// for the named field, or an unknown field name.
	ErrBadFieldValue = errors.New("bad field value")
)

// Field names a single mutable column of a job row.
type Field string

const (
	FieldTitle           Field = "Title"
	FieldOutputPath      Field = "OutputPath"
	FieldPercent         Field = "Percent"
	FieldETA             Field = "ETA"
	FieldDownloadedBytes Field = "DownloadedBytes"
	FieldTotalBytes      Field = "TotalBytes"
	FieldStatus          Field = "Status"
)

// Observer receives structural change notifications bracketing every table
// mutation. AboutToChange fires before the mutation, Changed after it, so an
// observer that reads between the two never sees a row mid-update. The table
// does not guarantee cross-field atomicity: percent and eta updates from one
// event arrive as two bracketed mutations.
type Observer interface {
	AboutToChange()
	Changed()
}

// ObserverFuncs adapts plain functions to the Observer interface. Nil
// functions are ignored.
type ObserverFuncs struct {
	OnAboutToChange func()
	OnChanged       func()
}

func (o ObserverFuncs) AboutToChange() {
	if o.OnAboutToChange != nil {
		o.OnAboutToChange()
	}
}

func (o ObserverFuncs) Changed() {
	if o.OnChanged != nil {
		o.OnChanged()
	}
}

// Table is the ordered, append-only registry of download jobs. It is the
// single source of truth the display layer renders. Rows are never deleted
// or reordered, so a row id captured at append time addresses the same
// logical job for the job's entire lifetime.
//
// Reads may happen from any goroutine. Field updates are expected to come
// from a single writer (the manager's event consumer, plus the enqueueing
// context before a job starts); the internal lock protects readers, not the
// write discipline.
type Table struct {
	mu   sync.RWMutex
	rows []*models.DownloadJob

	obsMu     sync.Mutex
	observers []Observer
}

// NewTable creates an empty job table.
func NewTable() *Table {
	return &Table{}
}

// RegisterObserver adds an observer for change notifications.
func (t *Table) RegisterObserver(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Append creates a new row in its default state (Queued, unknown percent and
// ETA) and returns its stable id. It never fails.
func (t *Table) Append() int {
	t.notifyAboutToChange()

	t.mu.Lock()
	id := len(t.rows)
	t.rows = append(t.rows, &models.DownloadJob{
		ID:              id,
		Title:           models.UnknownValue,
		Percent:         -1,
		ETASec:          -1,
		DownloadedBytes: -1,
		TotalBytes:      -1,
		Status:          models.JobStatusQueued,
	})
	t.mu.Unlock()

	t.notifyChanged()
	return id
}

// SetField updates exactly one named field of the row addressed by id.
// Validation happens before the observer bracketing: a rejected update emits
// no notifications at all. Rows are append-only, so an id validated here
// still addresses the same row when the mutation is applied.
func (t *Table) SetField(id int, field Field, value interface{}) error {
	t.mu.RLock()
	n := len(t.rows)
	t.mu.RUnlock()
	if id < 0 || id >= n {
		return fmt.Errorf("%w: id %d (have %d rows)", ErrUnknownRow, id, n)
	}

	set, err := setterFor(field, value)
	if err != nil {
		return err
	}

	t.notifyAboutToChange()
	t.mu.Lock()
	set(t.rows[id])
	t.mu.Unlock()
	t.notifyChanged()
	return nil
}

// setterFor type-checks value against field and returns the mutation to apply.
func setterFor(field Field, value interface{}) (func(*models.DownloadJob), error) {
	switch field {
	case FieldTitle:
		s, ok := value.(string)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.Title = s }, nil
	case FieldOutputPath:
		s, ok := value.(string)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.OutputPath = s }, nil
	case FieldPercent:
		n, ok := value.(int)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.Percent = n }, nil
	case FieldETA:
		n, ok := value.(int)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.ETASec = n }, nil
	case FieldDownloadedBytes:
		n, ok := value.(int64)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.DownloadedBytes = n }, nil
	case FieldTotalBytes:
		n, ok := value.(int64)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.TotalBytes = n }, nil
	case FieldStatus:
		s, ok := value.(models.JobStatus)
		if !ok {
			return nil, badValue(field, value)
		}
		return func(row *models.DownloadJob) { row.Status = s }, nil
	default:
		return nil, fmt.Errorf("%w: unknown field %q", ErrBadFieldValue, field)
	}
}

func badValue(field Field, value interface{}) error {
	return fmt.Errorf("%w: field %s cannot hold %T", ErrBadFieldValue, field, value)
}

// RowCount returns the current number of rows.
func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Row returns a copy of the row addressed by id.
func (t *Table) Row(id int) (models.DownloadJob, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.rows) {
		return models.DownloadJob{}, fmt.Errorf("%w: id %d (have %d rows)", ErrUnknownRow, id, len(t.rows))
	}
	return *t.rows[id], nil
}

// Rows returns a snapshot copy of all rows in append order.
func (t *Table) Rows() []models.DownloadJob {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]models.DownloadJob, len(t.rows))
	for i, r := range t.rows {
		rows[i] = *r
	}
	return rows
}

// Apply translates one progress event into field updates on the addressed
// row. Terminal rows are sticky: events arriving after Finished/Error are
// dropped. A downloading event promotes a Queued row to Running, records the
// reported byte counts, updates percent when both counts are present (integer
// truncation, the last-reported pair is authoritative), and updates ETA when
// present. Either, both, or neither field may be present per event.
func (t *Table) Apply(ev models.ProgressEvent) error {
	row, err := t.Row(ev.JobID)
	if err != nil {
		log.WithError(err).Errorf("Progress event for job %d addresses no row", ev.JobID)
		return err
	}
	if row.Status.IsTerminal() {
		log.Debugf("Dropping %s event for job %d: already %s", ev.Status, ev.JobID, row.Status)
		return nil
	}

	switch ev.Status {
	case models.EventFinished:
		return t.SetField(ev.JobID, FieldStatus, models.JobStatusFinished)
	case models.EventError:
		return t.SetField(ev.JobID, FieldStatus, models.JobStatusError)
	default:
		if row.Status == models.JobStatusQueued {
			if err := t.SetField(ev.JobID, FieldStatus, models.JobStatusRunning); err != nil {
				return err
			}
		}
		if ev.DownloadedBytes >= 0 {
			if err := t.SetField(ev.JobID, FieldDownloadedBytes, ev.DownloadedBytes); err != nil {
				return err
			}
		}
		if ev.TotalBytes >= 0 {
			if err := t.SetField(ev.JobID, FieldTotalBytes, ev.TotalBytes); err != nil {
				return err
			}
		}
		if ev.DownloadedBytes >= 0 && ev.TotalBytes > 0 {
			percent := int(ev.DownloadedBytes * 100 / ev.TotalBytes)
			if err := t.SetField(ev.JobID, FieldPercent, percent); err != nil {
				return err
			}
		}
		if ev.ETASeconds >= 0 {
			if err := t.SetField(ev.JobID, FieldETA, int(ev.ETASeconds)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Table) notifyAboutToChange() {
	t.obsMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.obsMu.Unlock()
	for _, o := range observers {
		o.AboutToChange()
	}
}

func (t *Table) notifyChanged() {
	t.obsMu.Lock()
	observers := append([]Observer(nil), t.observers...)
	t.obsMu.Unlock()
	for _, o := range observers {
		o.Changed()
	}
}
