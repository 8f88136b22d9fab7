package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// MaxStatusLogEntries bounds the per-session status feed; the oldest lines are
// dropped first once the feed is full.
const MaxStatusLogEntries = 50

const duplicatePromptSuffix = " (copy)"

type Session struct {
	ID           SessionID
	Prompt       string
	Tool         Tool
	Model        string
	CreatedAt    time.Time
	VideoURL     string
	StatusLog    []string
	Attachments  []string
	Messages     []Message
	CurrentJobID JobID
	Jobs         map[JobID]Job
	Pinned       bool
}

func NewSession(prompt string, tool Tool, model string, now time.Time) Session {
	return Session{
		ID:          SessionID(uuid.NewString()),
		Prompt:      prompt,
		Tool:        tool,
		Model:       model,
		CreatedAt:   now,
		StatusLog:   []string{},
		Attachments: []string{},
		Messages:    []Message{},
		Jobs:        map[JobID]Job{},
	}
}

// AppendStatus adds one line to the status feed and trims it back to
// MaxStatusLogEntries, oldest first.
func (s *Session) AppendStatus(line string) {
	s.StatusLog = append(s.StatusLog, line)
	if overflow := len(s.StatusLog) - MaxStatusLogEntries; overflow > 0 {
		s.StatusLog = s.StatusLog[overflow:]
	}
}

// AppendMessage appends a conversation turn. Existing messages are never
// touched.
func (s *Session) AppendMessage(msg Message) {
	s.Messages = append(s.Messages, msg)
}

// RegisterJob stores the job keyed by its own identifier, replacing any prior
// job under the same key.
func (s *Session) RegisterJob(job Job) {
	if s.Jobs == nil {
		s.Jobs = map[JobID]Job{}
	}
	s.Jobs[job.ID] = job
}

// Duplicate returns an independent copy of the session under a fresh
// identifier. Jobs, messages and slices are deep-copied so mutating the copy
// never reaches the original; pinned state does not carry over.
func (s Session) Duplicate(now time.Time) Session {
	dup := s
	dup.ID = SessionID(uuid.NewString())
	dup.Prompt = s.Prompt + duplicatePromptSuffix
	dup.CreatedAt = now
	dup.Pinned = false
	dup.StatusLog = append([]string(nil), s.StatusLog...)
	dup.Attachments = append([]string(nil), s.Attachments...)
	dup.Messages = make([]Message, len(s.Messages))
	for i, msg := range s.Messages {
		dup.Messages[i] = msg.clone()
	}
	dup.Jobs = make(map[JobID]Job, len(s.Jobs))
	for id, job := range s.Jobs {
		dup.Jobs[id] = job.clone()
	}
	return dup
}
