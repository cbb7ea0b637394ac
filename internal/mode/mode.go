// Package mode defines the two interchangeable rule variants of the
// guessing game. A policy is selected once at startup and parameterizes
// the oracle's expected schema, the victory predicate, the turn ceiling
// and the legal answer widgets. Variants are never mixed in one session.
package mode

import (
	"fmt"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// Policy parameterizes the orchestrator and the oracle adapter for one
// rule variant.
type Policy interface {
	// Name is the stable identifier used in configuration.
	Name() string
	// TurnCeiling is the maximum number of turns before the
	// orchestrator forces a timeout.
	TurnCeiling() int
	// SystemPrompt is the standing instruction set sent to the oracle
	// on every turn.
	SystemPrompt() string
	// ParseJudgement validates a raw JSON block against the variant's
	// schema. It checks shape only: required fields and enum values,
	// not confidence ranges.
	ParseJudgement(raw []byte) (game.Judgement, error)
	// Solved is the variant's victory predicate over a judgement's own
	// confidence fields. The orchestrator does not apply it; the
	// oracle's self-reported status is trusted as-is.
	Solved(j game.Judgement) bool
	// AllowedInputTypes lists the legal answer widgets for the given
	// turn number (1-based).
	AllowedInputTypes(turn int) []game.InputType
}

// FromName resolves a policy by its configuration name.
func FromName(name string) (Policy, error) {
	switch name {
	case OpenHypothesisName:
		return OpenHypothesis{}, nil
	case StructuredCategoryName:
		return StructuredCategory{}, nil
	}
	return nil, fmt.Errorf("unknown game mode %q", name)
}

// solveThreshold is the confidence both variants treat as conclusive.
const solveThreshold = 0.85
