package game

// Status enumerates the lifecycle of a game.
// Playing is the only non-terminal state; Solved is asserted by the
// oracle, Timeout by the orchestrator once the turn ceiling is hit.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusSolved  Status = "solved"
	StatusTimeout Status = "timeout"
)

// Terminal reports whether no further turns are accepted.
func (s Status) Terminal() bool {
	return s == StatusSolved || s == StatusTimeout
}

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaying, StatusSolved, StatusTimeout:
		return true
	}
	return false
}

// Session is the full game document persisted between turns.
// Hints and History are append-only; len(History) == Turn after every
// successful turn.
type Session struct {
	ID      string       `json:"id"`
	Turn    int          `json:"turn"`
	Hints   []string     `json:"hints"`
	History []TurnRecord `json:"history"`
}

// NewSession returns a blank session ready for its first hint.
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		Turn:    0,
		Hints:   []string{},
		History: []TurnRecord{},
	}
}

// TurnRecord captures one processed hint together with the judgement
// it produced. Never edited after append.
type TurnRecord struct {
	Turn      int       `json:"turn"`
	Hint      string    `json:"hint"`
	Judgement Judgement `json:"response"`
}

// Status returns the latest judgement's status, or StatusPlaying for a
// session with no turns yet.
func (s *Session) Status() Status {
	if len(s.History) == 0 {
		return StatusPlaying
	}
	return s.History[len(s.History)-1].Judgement.Status
}
