package models

import (
	"fmt"
	"strings"

	"go-youtube-download/internal/helpers"
)

// JobStatus represents the lifecycle state of a download job.
type JobStatus string

const (
	// JobStatusQueued means the job row exists but its runner has not started.
	JobStatusQueued JobStatus = "Queued"

	// JobStatusRunning means the backend download is in progress.
	JobStatusRunning JobStatus = "Running"

	// JobStatusFinished means the download completed successfully.
	JobStatusFinished JobStatus = "Finished"

	// JobStatusError means the download failed.
	JobStatusError JobStatus = "Error"
)

// String returns the string representation of JobStatus.
func (js JobStatus) String() string {
	return string(js)
}

// IsTerminal returns true if no further transitions are allowed out of this state.
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusFinished || js == JobStatusError
}

// UnknownValue is displayed for fields the backend has not reported yet,
// and for titles that cannot be resolved (raw-URL downloads).
const UnknownValue = "N/A"

// DownloadJob is one row of the job table. Rows are append-only: a job is
// created when the user commits to a download and keeps its terminal status
// for the rest of the process lifetime.
type DownloadJob struct {
	ID              int
	Title           string
	OutputPath      string
	Percent         int   // 0 to 100, -1 if unknown
	ETASec          int   // ETA in seconds, -1 if unknown
	DownloadedBytes int64 // -1 if unknown
	TotalBytes      int64 // -1 if unknown
	Status          JobStatus
}

// PercentString returns the percent column for display.
func (j *DownloadJob) PercentString() string {
	if j.Percent < 0 {
		return UnknownValue
	}
	return fmt.Sprintf("%d%%", j.Percent)
}

// SizeString returns the transferred bytes column for display, as
// "downloaded/total" when the backend reported a size estimate.
func (j *DownloadJob) SizeString() string {
	if j.DownloadedBytes < 0 {
		return UnknownValue
	}
	if j.TotalBytes > 0 {
		return fmt.Sprintf("%s/%s", helpers.BytesToSize(uint64(j.DownloadedBytes)), helpers.BytesToSize(uint64(j.TotalBytes)))
	}
	return helpers.BytesToSize(uint64(j.DownloadedBytes))
}

// ETAString returns ETA formatted as mm:ss or hh:mm:ss, or "N/A" if unknown.
func (j *DownloadJob) ETAString() string {
	if j.ETASec < 0 {
		return UnknownValue
	}
	hours := j.ETASec / 3600
	minutes := (j.ETASec % 3600) / 60
	seconds := j.ETASec % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DisplayTitle returns the title, or the base of the output path when the
// title is unknown.
func (j *DownloadJob) DisplayTitle() string {
	if j.Title != "" && j.Title != UnknownValue {
		return j.Title
	}
	if j.OutputPath != "" {
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return UnknownValue
}

// EventStatus classifies a single backend progress report.
type EventStatus string

const (
	EventDownloading EventStatus = "downloading"
	EventFinished    EventStatus = "finished"
	EventError       EventStatus = "error"
)

// ProgressEvent is one backend progress report, tagged with the job row it
// belongs to. Byte counts and ETA are optional per event; -1 means the
// backend did not report the field.
type ProgressEvent struct {
	JobID           int
	Status          EventStatus
	DownloadedBytes int64
	TotalBytes      int64
	ETASeconds      int64
}
