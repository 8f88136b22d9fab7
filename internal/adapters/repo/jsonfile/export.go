package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/genstudio-cli/internal/domain"
)

// ExportJSON renders one stored session in the store's own file layout, so
// the output can be imported back into a sessions file or into the web
// studio unchanged.
func (r *Repository) ExportJSON(ctx context.Context, id domain.SessionID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	for _, entry := range file {
		if entry.ID == string(id) {
			data, err := json.MarshalIndent(entry, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("encode session: %w", err)
			}
			return append(data, '\n'), nil
		}
	}

	return nil, domain.ErrSessionNotFound
}

// ExportAllJSON renders the whole store as a session array, newest first.
func (r *Repository) ExportAllJSON(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}
	if file == nil {
		file = []sessionSchema{}
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}

	return append(data, '\n'), nil
}
