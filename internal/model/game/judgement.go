package game

// Judgement is the oracle's structured output for one turn. The two
// game modes fill different subsets: Open Hypothesis Mode populates
// Hypotheses and FinalAnswer, Structured Category Mode populates
// Guesses and Input. Shared fields are always present.
type Judgement struct {
	Hypotheses  []Hypothesis `json:"hypotheses,omitempty"`
	Guesses     *Guesses     `json:"guesses,omitempty"`
	Reasoning   string       `json:"reasoning"`
	Question    string       `json:"question"`
	TurnSummary string       `json:"turnSummary"`
	Status      Status       `json:"status"`
	FinalAnswer string       `json:"finalAnswer,omitempty"`
	Input       *InputConfig `json:"input,omitempty"`
}

// Hypothesis is one ranked claim about the player.
type Hypothesis struct {
	Claim      string  `json:"claim"`
	Confidence float64 `json:"confidence"`
}

// CategoryGuess is the oracle's current best guess for one fixed category.
type CategoryGuess struct {
	Guess      string  `json:"guess"`
	Confidence float64 `json:"confidence"`
}

// Guesses holds the fixed category triple of Structured Category Mode.
type Guesses struct {
	Career   CategoryGuess `json:"career"`
	Family   CategoryGuess `json:"family"`
	Location CategoryGuess `json:"location"`
}

// InputType identifies the answer widget the frontend should render
// for the next turn.
type InputType string

const (
	InputText   InputType = "text"
	InputChoice InputType = "choice"
	InputSlider InputType = "slider"
)

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	switch t {
	case InputText, InputChoice, InputSlider:
		return true
	}
	return false
}

// InputConfig is the oracle's directive for how the user answers the
// next question. Only the fields matching Type are meaningful.
type InputConfig struct {
	Type        InputType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Choices     []string  `json:"choices,omitempty"`
	Min         int       `json:"min,omitempty"`
	Max         int       `json:"max,omitempty"`
	MinLabel    string    `json:"minLabel,omitempty"`
	MaxLabel    string    `json:"maxLabel,omitempty"`
}
