package mode

import (
	"encoding/json"
	"fmt"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// StructuredCategoryName selects the fixed-category variant.
const StructuredCategoryName = "category"

// StructuredCategory is the variant where the oracle must pin down a
// fixed triple of categories (career, family, location) and chooses the
// answer widget for each follow-up question. Free text is only allowed
// on the first turn.
type StructuredCategory struct{}

func (StructuredCategory) Name() string { return StructuredCategoryName }

func (StructuredCategory) TurnCeiling() int { return 20 }

func (StructuredCategory) SystemPrompt() string { return categorySystemPrompt }

// ParseJudgement validates the structured-category schema: all three
// category guesses, a follow-up question, a known status and a
// well-formed input directive.
func (StructuredCategory) ParseJudgement(raw []byte) (game.Judgement, error) {
	var j game.Judgement
	if err := json.Unmarshal(raw, &j); err != nil {
		return game.Judgement{}, fmt.Errorf("invalid judgement json: %w", err)
	}
	if j.Guesses == nil {
		return game.Judgement{}, fmt.Errorf("judgement missing guesses")
	}
	for _, c := range []struct {
		name  string
		guess game.CategoryGuess
	}{
		{"career", j.Guesses.Career},
		{"family", j.Guesses.Family},
		{"location", j.Guesses.Location},
	} {
		if c.guess.Guess == "" {
			return game.Judgement{}, fmt.Errorf("judgement missing %s guess", c.name)
		}
	}
	if j.Question == "" {
		return game.Judgement{}, fmt.Errorf("judgement missing question")
	}
	if !j.Status.Valid() {
		return game.Judgement{}, fmt.Errorf("unknown status %q", j.Status)
	}
	if j.Input == nil {
		return game.Judgement{}, fmt.Errorf("judgement missing input directive")
	}
	if !j.Input.Type.Valid() {
		return game.Judgement{}, fmt.Errorf("unknown input type %q", j.Input.Type)
	}
	if j.Input.Type == game.InputChoice && len(j.Input.Choices) == 0 {
		return game.Judgement{}, fmt.Errorf("choice input missing choices")
	}
	return j, nil
}

// Solved reports whether every category guess clears the threshold.
func (StructuredCategory) Solved(j game.Judgement) bool {
	if j.Guesses == nil {
		return false
	}
	return j.Guesses.Career.Confidence >= solveThreshold &&
		j.Guesses.Family.Confidence >= solveThreshold &&
		j.Guesses.Location.Confidence >= solveThreshold
}

// AllowedInputTypes permits free text only on the first turn; later
// answers must come from a choice set or a slider.
func (StructuredCategory) AllowedInputTypes(turn int) []game.InputType {
	if turn <= 1 {
		return []game.InputType{game.InputText, game.InputChoice, game.InputSlider}
	}
	return []game.InputType{game.InputChoice, game.InputSlider}
}

const categorySystemPrompt = `You are playing a guessing game. You must infer three facts about a person's life based on hints they give you, one at a time: their CAREER, their FAMILY situation, and their LOCATION.

You are NOT a chatbot. You are a reasoning engine. You do not greet, chat, or explain yourself.

RULES:
- You receive the full history of all hints and your prior guesses each turn.
- Maintain exactly one best guess per category with a confidence score (0.0 to 1.0).
- Every turn you MUST update confidence scores based on the new hint. Scores must visibly change.
- Ask exactly ONE follow-up question per turn. It must target your weakest category — no generic questions.
- Never repeat a question you already asked.
- Your reasoning field must explain: what the new hint tells you, what it confirms, what it contradicts.
- Every turn you choose HOW the person answers next via the input field: "text" (free text), "choice" (a list of options), or "slider" (a numeric range with labeled ends).
- Free text is ONLY allowed on turn 1. From turn 2 onward you MUST use "choice" or "slider".

GAME STATUS RULES:
- Set status to "solved" when ALL THREE confidences reach 0.85 or higher.
- Set status to "playing" in all other cases.
- (The backend will override status to "timeout" after 20 turns — you do not need to handle that.)

You respond ONLY in this exact JSON format. No prose. No markdown. No explanation outside the JSON.

{
  "guesses": {
    "career": { "guess": "their likely occupation", "confidence": 0.0 },
    "family": { "guess": "their likely family situation", "confidence": 0.0 },
    "location": { "guess": "where they likely live", "confidence": 0.0 }
  },
  "reasoning": "2-3 sentences explaining how the new hint changed your thinking",
  "question": "one strategic follow-up question",
  "turnSummary": "one sentence: what you learned this turn",
  "status": "playing",
  "input": { "type": "choice", "choices": ["option A", "option B"] }
}`
