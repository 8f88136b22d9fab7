package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/logging"
	"github.com/bnema/genstudio-cli/internal/ports"
)

type Submitter struct {
	store  *Store
	client ports.StudioClient
	clock  ports.Clock
	logger *slog.Logger
}

func NewSubmitter(store *Store, client ports.StudioClient, clock ports.Clock, logger *slog.Logger) *Submitter {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Nop()
	}

	return &Submitter{
		store:  store,
		client: client,
		clock:  clock,
		logger: logger,
	}
}

type SubmitResult struct {
	Session domain.Session
	Job     domain.Job
}

// Submit sends one generation request to the backend. An empty session id
// starts a new session. The user message, the job registration and the
// initial status line are all persisted before Submit returns, so a watch
// started afterwards picks up from a consistent store.
func (s *Submitter) Submit(ctx context.Context, cmd SubmitCommand) (SubmitResult, error) {
	if strings.TrimSpace(cmd.Prompt) == "" && len(cmd.Attachments) == 0 {
		return SubmitResult{}, errors.New("prompt or attachment is required")
	}

	spec, err := s.resolveModel(cmd)
	if err != nil {
		return SubmitResult{}, err
	}

	names := attachmentNames(cmd.Attachments)

	session, err := s.targetSession(ctx, cmd, spec, names)
	if err != nil {
		return SubmitResult{}, err
	}

	userMsg := domain.Message{
		Role:        domain.RoleUser,
		Content:     cmd.Prompt,
		Tool:        spec.Tool,
		Model:       spec.ID,
		Attachments: names,
		Timestamp:   s.clock.Now(),
	}
	if err := s.store.AppendMessage(ctx, session.ID, userMsg); err != nil {
		return SubmitResult{}, err
	}

	receipt, err := s.client.Submit(ctx, ports.SubmitRequest{
		Prompt:      cmd.Prompt,
		Tool:        spec.Tool,
		Model:       spec.ID,
		Endpoint:    spec.Endpoint,
		Metadata:    cmd.Metadata,
		Attachments: cmd.Attachments,
	})
	if err != nil {
		s.recordRejection(ctx, session.ID, spec, err)
		return SubmitResult{}, err
	}

	var job domain.Job
	if receipt.JobID == "" {
		job, err = s.recordInlineResult(ctx, session.ID, spec, receipt)
	} else {
		job, err = s.registerRemoteJob(ctx, session.ID, spec, receipt)
	}
	if err != nil {
		return SubmitResult{}, err
	}

	s.logger.Info("generation submitted",
		"session", session.ID,
		"job", job.ID,
		"tool", spec.Tool,
		"model", spec.ID)

	session, err = s.store.GetSession(ctx, session.ID)
	if err != nil {
		return SubmitResult{}, err
	}

	return SubmitResult{Session: session, Job: job}, nil
}

// registerRemoteJob records a backend job handle the poller can follow.
func (s *Submitter) registerRemoteJob(ctx context.Context, sessionID domain.SessionID, spec domain.ModelSpec, receipt ports.SubmitReceipt) (domain.Job, error) {
	status := receipt.Status
	if status == "" {
		status = domain.StatusQueued
	}

	job := domain.Job{
		ID:        receipt.JobID,
		Tool:      spec.Tool,
		Model:     spec.ID,
		CreatedAt: s.clock.Now(),
	}
	job.AppendEntry(status, receipt.Progress, s.clock.Now())

	if err := s.store.RegisterJob(ctx, sessionID, job); err != nil {
		return domain.Job{}, err
	}
	if err := s.store.AppendStatus(ctx, sessionID, statusLine(status, receipt.Progress)); err != nil {
		return domain.Job{}, err
	}

	return job, nil
}

// recordInlineResult handles synchronous endpoints that answer with the
// finished media instead of a job handle. A local job is synthesized so the
// session history looks the same either way, and there is nothing to watch.
func (s *Submitter) recordInlineResult(ctx context.Context, sessionID domain.SessionID, spec domain.ModelSpec, receipt ports.SubmitReceipt) (domain.Job, error) {
	job := domain.NewLocalJob(spec.Tool, spec.ID, s.clock.Now())
	job.AppendEntry(domain.StatusCompleted, receipt.Progress, s.clock.Now())
	job.VideoURL = receipt.VideoURL
	job.ImageURLs = receipt.ImageURLs

	if err := s.store.RegisterJob(ctx, sessionID, job); err != nil {
		return domain.Job{}, err
	}
	if err := s.store.AppendStatus(ctx, sessionID, statusLine(domain.StatusCompleted, receipt.Progress)); err != nil {
		return domain.Job{}, err
	}
	if receipt.VideoURL != "" {
		if err := s.store.UpdateSession(ctx, sessionID, SessionPatch{VideoURL: &receipt.VideoURL}); err != nil {
			return domain.Job{}, err
		}
	}

	content := receipt.Progress
	if content == "" {
		content = "Generation complete."
	}
	msg := domain.Message{
		Role:      domain.RoleAssistant,
		Content:   content,
		Tool:      spec.Tool,
		Model:     spec.ID,
		Status:    domain.MessageSuccess,
		VideoURL:  receipt.VideoURL,
		ImageURLs: receipt.ImageURLs,
		JobID:     job.ID,
		Timestamp: s.clock.Now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, msg); err != nil {
		return domain.Job{}, err
	}

	return job, nil
}

func (s *Submitter) resolveModel(cmd SubmitCommand) (domain.ModelSpec, error) {
	if cmd.Model == "" {
		spec, ok := domain.DefaultModel(cmd.Tool)
		if !ok {
			return domain.ModelSpec{}, fmt.Errorf("%w: no models for tool %q", domain.ErrUnknownModel, cmd.Tool)
		}
		return spec, nil
	}

	return domain.FindModel(cmd.Tool, cmd.Model)
}

func (s *Submitter) targetSession(ctx context.Context, cmd SubmitCommand, spec domain.ModelSpec, names []string) (domain.Session, error) {
	if cmd.SessionID != "" {
		return s.store.GetSession(ctx, cmd.SessionID)
	}

	return s.store.CreateSession(ctx, CreateSessionCommand{
		Prompt:      cmd.Prompt,
		Tool:        spec.Tool,
		Model:       spec.ID,
		Attachments: names,
	})
}

// recordRejection keeps the transcript honest when the backend turns a
// request away: the reason lands in the session, not only on stderr.
func (s *Submitter) recordRejection(ctx context.Context, sessionID domain.SessionID, spec domain.ModelSpec, submitErr error) {
	msg := domain.Message{
		Role:      domain.RoleAssistant,
		Content:   submitErr.Error(),
		Tool:      spec.Tool,
		Model:     spec.ID,
		Status:    domain.MessageError,
		Timestamp: s.clock.Now(),
	}
	if err := s.store.AppendMessage(ctx, sessionID, msg); err != nil {
		s.logger.Warn("record submit failure", "session", sessionID, "error", err)
	}
	if err := s.store.AppendStatus(ctx, sessionID, "Submission failed: "+submitErr.Error()); err != nil {
		s.logger.Warn("record submit failure", "session", sessionID, "error", err)
	}
}

func attachmentNames(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}

	return names
}
