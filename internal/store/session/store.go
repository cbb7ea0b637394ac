// Package session persists game sessions in two namespaces: a working
// cache whose entries expire after an idle window, and a permanent
// archive written once when a game ends.
package session

import (
	"context"
	"errors"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// ErrSessionNotFound signals a missing id in the requested namespace.
// For the working cache this is not a failure: the orchestrator treats
// it as "start a fresh game".
var ErrSessionNotFound = errors.New("session not found")

// Store abstracts durable session persistence. All writes are
// full-document replaces; no field-level updates exist.
type Store interface {
	// Load fetches a session from the working cache.
	// Returns ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*game.Session, error)
	// Save writes the session to the working cache and refreshes its
	// expiry window, so the TTL measures idle time since the last
	// turn, not time since creation.
	Save(ctx context.Context, s *game.Session) error
	// Archive writes the session to the permanent namespace with no
	// expiry. Called on terminal status only.
	Archive(ctx context.Context, s *game.Session) error
	// LoadArchived fetches a completed session from the archive.
	// Returns ErrSessionNotFound for unknown ids.
	LoadArchived(ctx context.Context, id string) (*game.Session, error)
}
