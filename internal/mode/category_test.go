package mode_test

import (
	"testing"

	"github.com/calvinyu/guessme/backend/internal/mode"
	"github.com/calvinyu/guessme/backend/internal/model/game"
)

const categoryReply = `{
  "guesses": {
    "career": {"guess": "Nurse", "confidence": 0.4},
    "family": {"guess": "Married with kids", "confidence": 0.3},
    "location": {"guess": "Coastal city", "confidence": 0.2}
  },
  "reasoning": "Shift work plus a commute by ferry.",
  "question": "How long is your commute?",
  "turnSummary": "They commute over water.",
  "status": "playing",
  "input": {"type": "slider", "min": 0, "max": 120, "minLabel": "none", "maxLabel": "two hours"}
}`

func TestCategoryParseJudgement(t *testing.T) {
	var policy mode.StructuredCategory

	j, err := policy.ParseJudgement([]byte(categoryReply))
	if err != nil {
		t.Fatalf("ParseJudgement err: %v", err)
	}
	if j.Guesses == nil || j.Guesses.Career.Guess != "Nurse" {
		t.Fatalf("unexpected guesses: %+v", j.Guesses)
	}
	if j.Input == nil || j.Input.Type != game.InputSlider {
		t.Fatalf("unexpected input: %+v", j.Input)
	}
	if j.Input.Max != 120 || j.Input.MaxLabel != "two hours" {
		t.Fatalf("slider bounds lost: %+v", j.Input)
	}
}

func TestCategoryParseJudgementMissingFields(t *testing.T) {
	var policy mode.StructuredCategory

	cases := map[string]string{
		"no guesses": `{"question": "q", "status": "playing", "input": {"type": "text"}}`,
		"missing location": `{"guesses": {"career": {"guess": "a"}, "family": {"guess": "b"}, "location": {"guess": ""}},
			"question": "q", "status": "playing", "input": {"type": "text"}}`,
		"no input": `{"guesses": {"career": {"guess": "a"}, "family": {"guess": "b"}, "location": {"guess": "c"}},
			"question": "q", "status": "playing"}`,
		"bad input type": `{"guesses": {"career": {"guess": "a"}, "family": {"guess": "b"}, "location": {"guess": "c"}},
			"question": "q", "status": "playing", "input": {"type": "dropdown"}}`,
		"choice without choices": `{"guesses": {"career": {"guess": "a"}, "family": {"guess": "b"}, "location": {"guess": "c"}},
			"question": "q", "status": "playing", "input": {"type": "choice"}}`,
	}

	for name, raw := range cases {
		if _, err := policy.ParseJudgement([]byte(raw)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCategorySolved(t *testing.T) {
	var policy mode.StructuredCategory

	all := &game.Guesses{
		Career:   game.CategoryGuess{Guess: "a", Confidence: 0.85},
		Family:   game.CategoryGuess{Guess: "b", Confidence: 0.9},
		Location: game.CategoryGuess{Guess: "c", Confidence: 0.88},
	}
	if !policy.Solved(game.Judgement{Guesses: all}) {
		t.Fatal("all categories at or above 0.85 must solve")
	}

	one := &game.Guesses{
		Career:   game.CategoryGuess{Guess: "a", Confidence: 0.95},
		Family:   game.CategoryGuess{Guess: "b", Confidence: 0.5},
		Location: game.CategoryGuess{Guess: "c", Confidence: 0.95},
	}
	if policy.Solved(game.Judgement{Guesses: one}) {
		t.Fatal("one weak category must not solve")
	}
	if policy.Solved(game.Judgement{}) {
		t.Fatal("judgement without guesses must not solve")
	}
}

func TestCategoryAllowedInputTypes(t *testing.T) {
	var policy mode.StructuredCategory

	first := policy.AllowedInputTypes(1)
	if !containsInput(first, game.InputText) {
		t.Fatalf("turn 1 must allow free text, got %v", first)
	}

	later := policy.AllowedInputTypes(2)
	if containsInput(later, game.InputText) {
		t.Fatalf("turn 2 must not allow free text, got %v", later)
	}
	if !containsInput(later, game.InputChoice) || !containsInput(later, game.InputSlider) {
		t.Fatalf("turn 2 must allow choice and slider, got %v", later)
	}
}

func TestFromName(t *testing.T) {
	open, err := mode.FromName("open")
	if err != nil || open.Name() != mode.OpenHypothesisName {
		t.Fatalf("FromName(open) = %v, %v", open, err)
	}

	category, err := mode.FromName("category")
	if err != nil || category.TurnCeiling() != 20 {
		t.Fatalf("FromName(category) = %v, %v", category, err)
	}

	if _, err := mode.FromName("speedrun"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func containsInput(types []game.InputType, want game.InputType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
