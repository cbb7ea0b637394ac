package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	gameService "github.com/calvinyu/guessme/backend/internal/service/game"
	"github.com/calvinyu/guessme/backend/internal/service/oracle"
	"github.com/calvinyu/guessme/backend/internal/store/session"
)

// Handler exposes the turn protocol over HTTP.
type Handler struct {
	gameSvc *gameService.Service
}

// New creates the game handler.
func New(gameSvc *gameService.Service) *Handler {
	return &Handler{gameSvc: gameSvc}
}

// RegisterRoutes mounts the game endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/guess", h.handleGuess)
	r.Get("/dataset/{sessionID}", h.handleDataset)
}

// handleGuess processes one turn. An absent or unknown sessionId
// starts a fresh game; the returned sessionId is authoritative.
func (h *Handler) handleGuess(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Hint      string `json:"hint"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.gameSvc.ProcessTurn(r.Context(), payload.SessionID, payload.Hint)
	if err != nil {
		h.respondTurnError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleDataset returns an archived (finished) game.
func (h *Handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.gameSvc.ArchivedSession(r.Context(), sessionID)
	if errors.Is(err, session.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "game not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load game")
		return
	}

	respondJSON(w, http.StatusOK, sess)
}

func (h *Handler) respondTurnError(w http.ResponseWriter, err error) {
	var malformed *oracle.MalformedReplyError
	switch {
	case errors.Is(err, gameService.ErrHintRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &malformed):
		respondError(w, http.StatusBadGateway, "oracle returned an unusable reply")
	case errors.Is(err, oracle.ErrUnavailable):
		respondError(w, http.StatusBadGateway, "oracle unavailable")
	default:
		respondError(w, http.StatusInternalServerError, "something went wrong")
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
