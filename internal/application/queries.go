package application

import (
	"context"
	"fmt"

	"github.com/bnema/genstudio-cli/internal/domain"
)

type SessionOverview struct {
	Session domain.Session
	Active  bool
}

// Overview lists sessions for rendering, pinned first, with the effective
// active session marked. The mark follows the same fallback rule as
// ActiveSession: a dangling pointer resolves to the most recent session.
func (s *Store) Overview(ctx context.Context) ([]SessionOverview, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	activeID, err := s.repo.ActiveID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active session: %w", err)
	}

	effective := domain.SessionID("")
	if activeID != "" {
		for _, session := range sessions {
			if session.ID == activeID {
				effective = activeID
				break
			}
		}
	}
	if effective == "" && len(sessions) > 0 {
		effective = sessions[0].ID
	}

	sortPinnedFirst(sessions)

	overviews := make([]SessionOverview, 0, len(sessions))
	for _, session := range sessions {
		overviews = append(overviews, SessionOverview{
			Session: session,
			Active:  session.ID == effective,
		})
	}

	return overviews, nil
}
