package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bnema/genstudio-cli/internal/domain"
	"github.com/bnema/genstudio-cli/internal/ports"
)

// Store wraps the session repository with the operations the commands and
// the poller share. Mutations that target a session deleted by another
// process are dropped silently, only user-facing lookups report not-found.
type Store struct {
	repo  ports.SessionRepository
	clock ports.Clock
}

func NewStore(repo ports.SessionRepository, clock ports.Clock) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Store{
		repo:  repo,
		clock: clock,
	}
}

func (s *Store) CreateSession(ctx context.Context, cmd CreateSessionCommand) (domain.Session, error) {
	model := cmd.Model
	if model == "" {
		spec, ok := domain.DefaultModel(cmd.Tool)
		if !ok {
			return domain.Session{}, fmt.Errorf("%w: no models for tool %q", domain.ErrUnknownModel, cmd.Tool)
		}
		model = spec.ID
	} else if _, err := domain.FindModel(cmd.Tool, model); err != nil {
		return domain.Session{}, err
	}

	session := domain.NewSession(cmd.Prompt, cmd.Tool, model, s.clock.Now())
	if len(cmd.Attachments) > 0 {
		session.Attachments = append(session.Attachments, cmd.Attachments...)
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := s.repo.SetActiveID(ctx, session.ID); err != nil {
		return domain.Session{}, fmt.Errorf("set active session: %w", err)
	}

	return session, nil
}

func (s *Store) GetSession(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("get session by id: %w", err)
	}

	return session, nil
}

// ListSessions returns pinned sessions first, each group newest first.
func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	sortPinnedFirst(sessions)
	return sessions, nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	active, err := s.repo.ActiveID(ctx)
	if err != nil {
		return fmt.Errorf("read active session: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if active == id {
		if err := s.repo.SetActiveID(ctx, ""); err != nil {
			return fmt.Errorf("clear active session: %w", err)
		}
	}

	return nil
}

func (s *Store) SetActiveSession(ctx context.Context, id domain.SessionID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("get session by id: %w", err)
	}

	if err := s.repo.SetActiveID(ctx, id); err != nil {
		return fmt.Errorf("set active session: %w", err)
	}

	return nil
}

// ActiveSession resolves the active pointer. A missing or dangling pointer
// falls back to the most recent session without rewriting the pointer.
func (s *Store) ActiveSession(ctx context.Context) (domain.Session, error) {
	id, err := s.repo.ActiveID(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read active session: %w", err)
	}

	if id != "" {
		session, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Session{}, fmt.Errorf("get session by id: %w", err)
		}
	}

	sessions, err := s.repo.List(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return sessions[0], nil
}

func (s *Store) UpdateSession(ctx context.Context, id domain.SessionID, patch SessionPatch) error {
	err := s.repo.Update(ctx, id, func(session *domain.Session) {
		if patch.Prompt != nil {
			session.Prompt = *patch.Prompt
		}
		if patch.Model != nil {
			session.Model = *patch.Model
		}
		if patch.VideoURL != nil {
			session.VideoURL = *patch.VideoURL
		}
	})

	return ignoreMissingSession(err, "update session")
}

func (s *Store) AppendStatus(ctx context.Context, id domain.SessionID, line string) error {
	err := s.repo.Update(ctx, id, func(session *domain.Session) {
		session.AppendStatus(line)
	})

	return ignoreMissingSession(err, "append status")
}

func (s *Store) AppendMessage(ctx context.Context, id domain.SessionID, msg domain.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.clock.Now()
	}

	err := s.repo.Update(ctx, id, func(session *domain.Session) {
		session.AppendMessage(msg)
	})

	return ignoreMissingSession(err, "append message")
}

// RegisterJob records a new generation run and makes it the session's
// current job.
func (s *Store) RegisterJob(ctx context.Context, sessionID domain.SessionID, job domain.Job) error {
	err := s.repo.Update(ctx, sessionID, func(session *domain.Session) {
		session.RegisterJob(job)
		session.CurrentJobID = job.ID
	})

	return ignoreMissingSession(err, "register job")
}

// UpdateJob folds one observed backend state into the job record. The
// returned flag reports whether the (status, progress) pair was new; only
// then is a line added to the session status log. Terminal states attach
// the media URLs, a completed video also lands on the session itself.
func (s *Store) UpdateJob(ctx context.Context, sessionID domain.SessionID, jobID domain.JobID, update ports.JobUpdate, at time.Time) (bool, error) {
	changed := false
	err := s.repo.Update(ctx, sessionID, func(session *domain.Session) {
		job, ok := session.Jobs[jobID]
		if !ok {
			return
		}

		changed = job.AppendEntry(update.Status, update.Progress, at)
		if domain.IsTerminal(update.Status) {
			if update.VideoURL != "" {
				job.VideoURL = update.VideoURL
			}
			if len(update.ImageURLs) > 0 {
				job.ImageURLs = update.ImageURLs
			}
		}
		session.Jobs[jobID] = job

		if changed {
			session.AppendStatus(statusLine(update.Status, update.Progress))
		}
		if update.Status == domain.StatusCompleted && update.VideoURL != "" {
			session.VideoURL = update.VideoURL
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("update job: %w", err)
	}

	return changed, nil
}

func (s *Store) GetJob(ctx context.Context, sessionID domain.SessionID, jobID domain.JobID) (domain.Job, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return domain.Job{}, err
	}

	job, ok := session.Jobs[jobID]
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}

	return job, nil
}

func (s *Store) TogglePin(ctx context.Context, id domain.SessionID) (bool, error) {
	pinned := false
	err := s.repo.Update(ctx, id, func(session *domain.Session) {
		session.Pinned = !session.Pinned
		pinned = session.Pinned
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, err
		}
		return false, fmt.Errorf("toggle pin: %w", err)
	}

	return pinned, nil
}

func (s *Store) DuplicateSession(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	duplicate := session.Duplicate(s.clock.Now())
	if err := s.repo.Save(ctx, duplicate); err != nil {
		return domain.Session{}, fmt.Errorf("save duplicated session: %w", err)
	}
	if err := s.repo.SetActiveID(ctx, duplicate.ID); err != nil {
		return domain.Session{}, fmt.Errorf("set active session: %w", err)
	}

	return duplicate, nil
}

func ignoreMissingSession(err error, op string) error {
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sortPinnedFirst(sessions []domain.Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Pinned && !sessions[j].Pinned
	})
}

func statusLine(status, progress string) string {
	if progress == "" {
		return status
	}
	return status + ": " + progress
}
