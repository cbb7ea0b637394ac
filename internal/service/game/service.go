// Package game runs the turn state machine: it owns the session for
// the duration of one request, drives the oracle, enforces the turn
// ceiling and decides what gets persisted where.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/calvinyu/guessme/backend/internal/mode"
	"github.com/calvinyu/guessme/backend/internal/model/game"
	"github.com/calvinyu/guessme/backend/internal/store/session"
)

// ErrHintRequired rejects a turn submitted without a hint.
var ErrHintRequired = errors.New("hint is required")

// Oracle produces one judgement per turn from the full session state.
type Oracle interface {
	Judge(ctx context.Context, sess *game.Session) (game.Judgement, error)
}

// TurnResult is returned to the caller after a processed turn.
type TurnResult struct {
	SessionID string         `json:"sessionId"`
	Judgement game.Judgement `json:"response"`
}

// Service is the turn orchestrator. One instance serves all sessions;
// per-session state round-trips through the store between turns.
type Service struct {
	store  session.Store
	oracle Oracle
	policy mode.Policy
}

// NewService wires the orchestrator to its store, oracle and rule set.
func NewService(store session.Store, oracle Oracle, policy mode.Policy) *Service {
	return &Service{store: store, oracle: oracle, policy: policy}
}

// ProcessTurn runs one full turn: resolve the session, append the
// hint, obtain a judgement, apply the turn-ceiling override, persist,
// and archive on terminal status.
//
// A supplied id that is unknown or expired starts a fresh session
// rather than failing. If the oracle call fails nothing is persisted;
// the pre-turn session remains the durable state and the turn is not
// counted.
//
// Turns for the same session must be serialized by the caller: two
// concurrent turns would both load the same prior state and the last
// save would win.
func (s *Service) ProcessTurn(ctx context.Context, sessionID, hint string) (*TurnResult, error) {
	if hint == "" {
		return nil, ErrHintRequired
	}

	sess, err := s.resolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sess.Hints = append(sess.Hints, hint)
	sess.Turn++

	judgement, err := s.oracle.Judge(ctx, sess)
	if err != nil {
		return nil, err
	}

	// The backend, not the oracle, owns the turn budget. An oracle
	// still "playing" at the ceiling is forced to timeout; solved and
	// timeout assertions are never overridden.
	if sess.Turn >= s.policy.TurnCeiling() && judgement.Status == game.StatusPlaying {
		judgement.Status = game.StatusTimeout
	}

	sess.History = append(sess.History, game.TurnRecord{
		Turn:      sess.Turn,
		Hint:      hint,
		Judgement: judgement,
	})

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session %s: %w", sess.ID, err)
	}

	if judgement.Status.Terminal() {
		if err := s.store.Archive(ctx, sess); err != nil {
			return nil, fmt.Errorf("archive session %s: %w", sess.ID, err)
		}
		log.Printf("[game] session=%s finished after %d turns, status=%s", sess.ID, sess.Turn, judgement.Status)
	}

	return &TurnResult{SessionID: sess.ID, Judgement: judgement}, nil
}

// ArchivedSession fetches a completed game from the permanent store.
func (s *Service) ArchivedSession(ctx context.Context, id string) (*game.Session, error) {
	return s.store.LoadArchived(ctx, id)
}

func (s *Service) resolveSession(ctx context.Context, sessionID string) (*game.Session, error) {
	if sessionID == "" {
		return game.NewSession(uuid.NewString()), nil
	}

	sess, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		// Expired or never existed: start over under a new id.
		return game.NewSession(uuid.NewString()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return sess, nil
}
