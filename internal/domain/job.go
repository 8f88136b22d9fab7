package domain

import (
	"time"

	"github.com/google/uuid"
)

type JobID string

// Statuses the generation backend is known to report. The set is open: the
// backend may introduce phases that are not listed here, and jobs carry
// whatever string the remote last reported.
const (
	StatusQueued            = "QUEUED"
	StatusAnalyzingScript   = "ANALYZING_SCRIPT"
	StatusGeneratingPrompts = "GENERATING_PROMPTS"
	StatusInvokingBedrock   = "INVOKING_BEDROCK"
	StatusPollingClips      = "POLLING_CLIPS"
	StatusInProgress        = "IN_PROGRESS"
	StatusCompleted         = "COMPLETED"
	StatusFailed            = "FAILED"

	// StatusRetrying never lands on a job record; it only shows up in session
	// status feeds while the poller rides out transport errors.
	StatusRetrying = "RETRYING"
)

// videoPhases orders the known pipeline statuses for progress estimation.
var videoPhases = []string{
	StatusQueued,
	StatusAnalyzingScript,
	StatusGeneratingPrompts,
	StatusInvokingBedrock,
	StatusPollingClips,
	StatusCompleted,
}

type Job struct {
	ID        JobID
	Tool      Tool
	Model     string
	CreatedAt time.Time
	Status    string
	Progress  string
	History   []StatusEntry
	VideoURL  string
	ImageURLs []string
}

// StatusEntry is one timestamped (status, progress) observation in a job's
// history. Entries are immutable once appended.
type StatusEntry struct {
	Status    string
	Progress  string
	Timestamp time.Time
}

// NewLocalJob builds a job with a locally generated identifier, used when a
// submission returns an inline result instead of a remote job handle.
func NewLocalJob(tool Tool, model string, now time.Time) Job {
	return Job{
		ID:        JobID(uuid.NewString()),
		Tool:      tool,
		Model:     model,
		CreatedAt: now,
	}
}

// IsTerminal reports whether a status ends a job's lifecycle. Polling stops
// at terminal statuses and never mutates the job afterwards.
func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

func (j Job) Terminal() bool {
	return IsTerminal(j.Status)
}

func (j Job) LastEntry() (StatusEntry, bool) {
	if len(j.History) == 0 {
		return StatusEntry{}, false
	}
	return j.History[len(j.History)-1], true
}

// AppendEntry records an observation and keeps the job's current status and
// progress in sync. An exact repeat of the previous (status, progress) pair
// updates the current fields but appends nothing, so an unchanged remote
// status held across many polls produces a single history entry.
func (j *Job) AppendEntry(status, progress string, now time.Time) bool {
	j.Status = status
	j.Progress = progress

	if last, ok := j.LastEntry(); ok && last.Status == status && last.Progress == progress {
		return false
	}

	j.History = append(j.History, StatusEntry{Status: status, Progress: progress, Timestamp: now})
	return true
}

// PhasePercent maps a known pipeline status to a 0-100 progress estimate.
// Unknown statuses return ok=false so callers can hold the last known
// position instead of jumping around.
func PhasePercent(status string) (float64, bool) {
	for i, phase := range videoPhases {
		if phase == status {
			return float64(i) / float64(len(videoPhases)-1) * 100, true
		}
	}
	return 0, false
}

func (j Job) clone() Job {
	dup := j
	dup.History = append([]StatusEntry(nil), j.History...)
	dup.ImageURLs = append([]string(nil), j.ImageURLs...)
	return dup
}
