package jsonfile

import (
	"time"

	"github.com/google/uuid"
)

// sessionSchema mirrors the JSON layout the web studio kept in browser
// storage, so an exported file from the web UI loads unchanged.
type sessionSchema struct {
	ID           string               `json:"id"`
	Prompt       string               `json:"prompt"`
	Tool         string               `json:"tool"`
	Model        string               `json:"model"`
	CreatedAt    string               `json:"createdAt"`
	VideoURL     string               `json:"videoUrl,omitempty"`
	StatusLog    []string             `json:"statusLog"`
	Attachments  []string             `json:"attachments,omitempty"`
	Messages     []messageSchema      `json:"messages"`
	CurrentJobID string               `json:"currentJobId,omitempty"`
	Jobs         map[string]jobSchema `json:"jobs,omitempty"`
	Pinned       bool                 `json:"pinned,omitempty"`
}

type messageSchema struct {
	Role        string   `json:"role"`
	Content     string   `json:"content"`
	Tool        string   `json:"tool,omitempty"`
	Model       string   `json:"model,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Status      string   `json:"status,omitempty"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	JobID       string   `json:"jobId,omitempty"`
	Timestamp   string   `json:"timestamp"`
}

type jobSchema struct {
	ID        string              `json:"id"`
	Tool      string              `json:"tool"`
	Model     string              `json:"model"`
	CreatedAt string              `json:"createdAt"`
	Status    string              `json:"status"`
	Progress  string              `json:"progress,omitempty"`
	History   []statusEntrySchema `json:"history"`
	VideoURL  string              `json:"videoUrl,omitempty"`
	ImageURLs []string            `json:"imageUrls,omitempty"`
}

type statusEntrySchema struct {
	Status    string `json:"status"`
	Progress  string `json:"progress,omitempty"`
	Timestamp string `json:"timestamp"`
}

// normalize repairs entries written by hand or by older builds: a missing
// id gets a fresh one, an unparseable createdAt is replaced with now.
func (s *sessionSchema) normalize(now time.Time) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, err := time.Parse(time.RFC3339, s.CreatedAt); err != nil {
		s.CreatedAt = now.Format(time.RFC3339)
	}
}
