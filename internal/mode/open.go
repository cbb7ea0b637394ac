package mode

import (
	"encoding/json"
	"fmt"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// OpenHypothesisName selects the free-form ranked-hypotheses variant.
const OpenHypothesisName = "open"

// OpenHypothesis is the variant where the oracle maintains 3-5 ranked
// hypotheses about the player and wins by pushing one above the
// threshold. Answers are always free text.
type OpenHypothesis struct{}

func (OpenHypothesis) Name() string { return OpenHypothesisName }

// TurnCeiling returns 10; the system prompt tells the oracle the
// backend overrides its status after that many turns.
func (OpenHypothesis) TurnCeiling() int { return 10 }

func (OpenHypothesis) SystemPrompt() string { return openSystemPrompt }

// ParseJudgement validates the open-hypothesis schema: a non-empty
// hypotheses list, a follow-up question and a known status.
func (OpenHypothesis) ParseJudgement(raw []byte) (game.Judgement, error) {
	var j game.Judgement
	if err := json.Unmarshal(raw, &j); err != nil {
		return game.Judgement{}, fmt.Errorf("invalid judgement json: %w", err)
	}
	if len(j.Hypotheses) == 0 {
		return game.Judgement{}, fmt.Errorf("judgement missing hypotheses")
	}
	for i, h := range j.Hypotheses {
		if h.Claim == "" {
			return game.Judgement{}, fmt.Errorf("hypothesis %d missing claim", i+1)
		}
	}
	if j.Question == "" {
		return game.Judgement{}, fmt.Errorf("judgement missing question")
	}
	if !j.Status.Valid() {
		return game.Judgement{}, fmt.Errorf("unknown status %q", j.Status)
	}
	if j.Status == game.StatusSolved && j.FinalAnswer == "" {
		return game.Judgement{}, fmt.Errorf("solved judgement missing finalAnswer")
	}
	return j, nil
}

// Solved reports whether the top hypothesis clears the threshold.
func (OpenHypothesis) Solved(j game.Judgement) bool {
	for _, h := range j.Hypotheses {
		if h.Confidence > solveThreshold {
			return true
		}
	}
	return false
}

// AllowedInputTypes always returns free text; this variant never uses
// structured widgets.
func (OpenHypothesis) AllowedInputTypes(turn int) []game.InputType {
	return []game.InputType{game.InputText}
}

const openSystemPrompt = `You are playing a guessing game. You must infer facts about a person's life based on hints they give you, one at a time.

You are NOT a chatbot. You are a reasoning engine. You do not greet, chat, or explain yourself.

RULES:
- You receive the full history of all hints and your prior hypotheses each turn.
- Maintain exactly 3 to 5 hypotheses ranked by confidence (0.0 to 1.0). All confidences must sum to roughly 1.0.
- Every turn you MUST update confidence scores based on the new hint. Scores must visibly change.
- Drop any hypothesis that falls below 0.1 confidence and replace it with a new one.
- Ask exactly ONE follow-up question per turn. It must target your current hypotheses — no generic questions.
- Never repeat a question you already asked.
- Your reasoning field must explain: what the new hint tells you, what it confirms, what it contradicts.

GAME STATUS RULES:
- Set status to "solved" if your top hypothesis exceeds 0.85 confidence. Also set finalAnswer to that hypothesis claim.
- Set status to "playing" in all other cases.
- (The backend will override status to "timeout" after 10 turns — you do not need to handle that.)

You respond ONLY in this exact JSON format. No prose. No markdown. No explanation outside the JSON.

{
  "hypotheses": [
    { "claim": "a specific factual guess about the person", "confidence": 0.0 }
  ],
  "reasoning": "2-3 sentences explaining how the new hint changed your thinking",
  "question": "one strategic follow-up question",
  "turnSummary": "one sentence: what you learned this turn",
  "status": "playing",
  "finalAnswer": "only include this field when status is solved"
}`
