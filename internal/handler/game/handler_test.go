package game

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/calvinyu/guessme/backend/internal/mode"
	model "github.com/calvinyu/guessme/backend/internal/model/game"
	gameService "github.com/calvinyu/guessme/backend/internal/service/game"
	"github.com/calvinyu/guessme/backend/internal/service/oracle"
	"github.com/calvinyu/guessme/backend/internal/store/session"
)

type oracleFunc func(sess *model.Session) (model.Judgement, error)

func (f oracleFunc) Judge(_ context.Context, sess *model.Session) (model.Judgement, error) {
	return f(sess)
}

func setupRouter(judge oracleFunc) (*chi.Mux, *session.MemoryStore) {
	store := session.NewMemoryStore()
	svc := gameService.NewService(store, judge, mode.OpenHypothesis{})
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func okJudgement(*model.Session) (model.Judgement, error) {
	return model.Judgement{
		Hypotheses: []model.Hypothesis{{Claim: "Software engineer", Confidence: 0.5}},
		Question:   "Do you work remotely?",
		Status:     model.StatusPlaying,
	}, nil
}

func postGuess(t *testing.T, r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/guess", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGuessNewGame(t *testing.T) {
	r, _ := setupRouter(okJudgement)

	resp := postGuess(t, r, map[string]string{"hint": "I code for a living"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result gameService.TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("response missing sessionId")
	}
	if result.Judgement.Question == "" {
		t.Fatal("response missing follow-up question")
	}
}

func TestGuessUnknownSessionStartsFresh(t *testing.T) {
	r, _ := setupRouter(okJudgement)

	resp := postGuess(t, r, map[string]string{"sessionId": "gone", "hint": "a hint"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var result gameService.TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.SessionID == "gone" {
		t.Fatal("unknown session id must yield a fresh session")
	}
}

func TestGuessMissingHint(t *testing.T) {
	r, _ := setupRouter(okJudgement)

	resp := postGuess(t, r, map[string]string{"sessionId": "whatever"})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGuessInvalidBody(t *testing.T) {
	r, _ := setupRouter(okJudgement)

	req := httptest.NewRequest(http.MethodPost, "/guess", bytes.NewReader([]byte("not json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGuessMalformedOracleReply(t *testing.T) {
	r, _ := setupRouter(func(*model.Session) (model.Judgement, error) {
		return model.Judgement{}, &oracle.MalformedReplyError{Reason: "no json block in reply", Raw: "prose"}
	})

	resp := postGuess(t, r, map[string]string{"hint": "a hint"})

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestDatasetFetchesArchivedGame(t *testing.T) {
	r, store := setupRouter(func(*model.Session) (model.Judgement, error) {
		return model.Judgement{
			Hypotheses:  []model.Hypothesis{{Claim: "Software engineer", Confidence: 0.95}},
			Question:    "q",
			Status:      model.StatusSolved,
			FinalAnswer: "Software engineer",
		}, nil
	})

	resp := postGuess(t, r, map[string]string{"hint": "I ship Go services"})
	if resp.Code != http.StatusOK {
		t.Fatalf("guess failed: %d", resp.Code)
	}
	var result gameService.TurnResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dataset/"+result.SessionID, nil)
	getResp := httptest.NewRecorder()
	r.ServeHTTP(getResp, req)

	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var sess model.Session
	if err := json.NewDecoder(getResp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.ID != result.SessionID || len(sess.History) != 1 {
		t.Fatalf("unexpected archived session: %+v", sess)
	}

	// Sanity: the archive entry matches the store's view.
	if _, err := store.LoadArchived(context.Background(), result.SessionID); err != nil {
		t.Fatalf("LoadArchived err: %v", err)
	}
}

func TestDatasetNotFound(t *testing.T) {
	r, _ := setupRouter(okJudgement)

	req := httptest.NewRequest(http.MethodGet, "/dataset/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
