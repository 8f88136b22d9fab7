package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/logging"
	"github.com/bnema/genstudio-cli/internal/ports"
)

const (
	DefaultPollInterval = 5 * time.Second
	maxPollFailures     = 10
)

var (
	ErrJobFailed        = errors.New("generation job failed")
	ErrConnectivityLost = errors.New("lost connection to the generation backend")
)

type Poller struct {
	store  *Store
	client ports.StudioClient
	clock  ports.Clock
	logger *slog.Logger
}

func NewPoller(store *Store, client ports.StudioClient, clock ports.Clock, logger *slog.Logger) *Poller {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Poller{
		store:  store,
		client: client,
		clock:  clock,
		logger: logger,
	}
}

type WatchRequest struct {
	SessionID domain.SessionID
	JobID     domain.JobID
	Interval  time.Duration
	OnUpdate  func(update ports.JobUpdate, changed bool)
}

// Watch polls the backend until the job reaches a terminal state. The
// first query fires immediately. Transport failures keep the job record
// untouched and are retried on the same cadence, giving up once more
// than maxPollFailures land in a row.
func (p *Poller) Watch(ctx context.Context, req WatchRequest) (domain.Job, error) {
	if req.SessionID == "" {
		return domain.Job{}, errors.New("session id is required")
	}
	if req.JobID == "" {
		return domain.Job{}, errors.New("job id is required")
	}

	interval := req.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	failures := 0
	for {
		update, err := p.client.JobStatus(ctx, req.JobID)
		switch {
		case err == nil:
			failures = 0

			changed, updateErr := p.store.UpdateJob(ctx, req.SessionID, req.JobID, update, p.clock.Now())
			if updateErr != nil {
				return domain.Job{}, updateErr
			}
			if changed {
				p.logger.Info("job status", "job", req.JobID, "status", update.Status, "progress", update.Progress)
			}
			if req.OnUpdate != nil {
				req.OnUpdate(update, changed)
			}

			if domain.IsTerminal(update.Status) {
				return p.finish(ctx, req, update, changed)
			}

		case errors.Is(err, domain.ErrJobNotFound):
			// the backend forgot the job, usually a restart; nothing
			// left to poll
			_ = p.store.AppendStatus(ctx, req.SessionID, "Job no longer known to the backend")
			return domain.Job{}, err

		case ctx.Err() != nil:
			return domain.Job{}, ctx.Err()

		default:
			failures++
			p.logger.Warn("status poll failed", "job", req.JobID, "attempt", failures, "error", err)
			if failures > maxPollFailures {
				_ = p.store.AppendStatus(ctx, req.SessionID, "Lost connection to the backend")
				return domain.Job{}, fmt.Errorf("%w: %v", ErrConnectivityLost, err)
			}
			_ = p.store.AppendStatus(ctx, req.SessionID,
				statusLine(domain.StatusRetrying, fmt.Sprintf("attempt %d of %d", failures, maxPollFailures)))
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return domain.Job{}, ctx.Err()
		case <-timer.C:
		}
	}
}

func (p *Poller) finish(ctx context.Context, req WatchRequest, update ports.JobUpdate, changed bool) (domain.Job, error) {
	job, err := p.store.GetJob(ctx, req.SessionID, req.JobID)
	if err != nil {
		return domain.Job{}, err
	}

	if changed {
		p.recordOutcome(ctx, req.SessionID, job, update)
	}

	if update.Status == domain.StatusFailed {
		reason := update.Progress
		if reason == "" {
			reason = "no reason given"
		}
		return job, fmt.Errorf("%w: %s", ErrJobFailed, reason)
	}

	return job, nil
}

// recordOutcome writes the assistant transcript entry for a finished run.
// The changed guard in Watch keeps a re-watch of an already finished job
// from writing a second entry.
func (p *Poller) recordOutcome(ctx context.Context, sessionID domain.SessionID, job domain.Job, update ports.JobUpdate) {
	msg := domain.Message{
		Role:      domain.RoleAssistant,
		Tool:      job.Tool,
		Model:     job.Model,
		JobID:     job.ID,
		Timestamp: p.clock.Now(),
	}

	if update.Status == domain.StatusCompleted {
		msg.Status = domain.MessageSuccess
		msg.Content = update.Progress
		if msg.Content == "" {
			msg.Content = "Generation complete."
		}
		msg.VideoURL = update.VideoURL
		msg.ImageURLs = update.ImageURLs
	} else {
		msg.Status = domain.MessageError
		msg.Content = update.Progress
		if msg.Content == "" {
			msg.Content = "Generation failed."
		}
	}

	if err := p.store.AppendMessage(ctx, sessionID, msg); err != nil {
		p.logger.Warn("record job outcome", "session", sessionID, "error", err)
	}
}
