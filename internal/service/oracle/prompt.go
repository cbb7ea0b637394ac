package oracle

import (
	"fmt"
	"strings"

	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// buildTranscript renders the session into the per-turn user message:
// every hint so far, numbered, plus each prior judgement condensed to
// its guesses and confidences. Reasoning text is never replayed so the
// prompt stays bounded as the game grows.
func buildTranscript(sess *game.Session) string {
	var hints strings.Builder
	for i, h := range sess.Hints {
		fmt.Fprintf(&hints, "%d. %q\n", i+1, h)
	}

	prior := "No prior guesses yet."
	if len(sess.History) > 0 {
		var lines []string
		for _, turn := range sess.History {
			lines = append(lines, fmt.Sprintf("Turn %d: %s", turn.Turn, condense(turn.Judgement)))
		}
		prior = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Turn %d.

All hints so far:
%s
Your prior guesses:
%s

Now update your guesses based on ALL the hints above and return your JSON response.`,
		sess.Turn, hints.String(), prior)
}

// condense reduces a judgement to its guess/confidence fields.
func condense(j game.Judgement) string {
	if j.Guesses != nil {
		return fmt.Sprintf("career=%s (%.2f), family=%s (%.2f), location=%s (%.2f)",
			j.Guesses.Career.Guess, j.Guesses.Career.Confidence,
			j.Guesses.Family.Guess, j.Guesses.Family.Confidence,
			j.Guesses.Location.Guess, j.Guesses.Location.Confidence)
	}

	parts := make([]string, 0, len(j.Hypotheses))
	for _, h := range j.Hypotheses {
		parts = append(parts, fmt.Sprintf("%s (%.2f)", h.Claim, h.Confidence))
	}
	return strings.Join(parts, ", ")
}
