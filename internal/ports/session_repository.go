package ports

import (
	"context"

	"github.com/bnema/genstudio-cli/internal/domain"
)

type SessionRepository interface {
	GetByID(ctx context.Context, id domain.SessionID) (domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	// Update applies mutate to the freshly loaded session and persists the
	// result without releasing the store lock in between.
	Update(ctx context.Context, id domain.SessionID, mutate func(*domain.Session)) error
	Delete(ctx context.Context, id domain.SessionID) error
	ActiveID(ctx context.Context) (domain.SessionID, error)
	SetActiveID(ctx context.Context, id domain.SessionID) error
}
