package application

import (
	"github.com/bnema/genstudio-cli/internal/domain"
)

type CreateSessionCommand struct {
	Prompt      string
	Tool        domain.Tool
	Model       string
	Attachments []string
}

// SessionPatch carries partial session updates, nil fields are left alone.
type SessionPatch struct {
	Prompt   *string
	Model    *string
	VideoURL *string
}

type SubmitCommand struct {
	SessionID   domain.SessionID
	Prompt      string
	Tool        domain.Tool
	Model       string
	Metadata    string
	Attachments []string
}
