// Package oracle adapts the external reasoning model to the game: it
// renders the session into a turn-scoped transcript, invokes the model
// once, and parses the reply into a typed judgement or fails loudly.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/calvinyu/guessme/backend/internal/mode"
	"github.com/calvinyu/guessme/backend/internal/model/game"
)

// ErrUnavailable marks transport-level failures reaching the model.
var ErrUnavailable = errors.New("oracle unavailable")

// MalformedReplyError reports a model reply that contained no JSON
// block or one that failed the active mode's schema. The raw reply is
// kept for diagnostics.
type MalformedReplyError struct {
	Reason string
	Raw    string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("malformed oracle reply: %s", e.Reason)
}

// Service invokes the reasoning model through a compiled prompt chain.
type Service struct {
	policy mode.Policy
	chain  compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the judgement chain for the given model and mode.
func NewService(ctx context.Context, chatModel model.ChatModel, policy mode.Policy) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile judgement chain: %w", err)
	}

	return &Service{policy: policy, chain: runnable}, nil
}

// Judge runs one turn of inference over the full session and returns
// the validated judgement. The model is invoked exactly once; no retry
// happens here.
func (s *Service) Judge(ctx context.Context, sess *game.Session) (game.Judgement, error) {
	input := map[string]any{
		"system": s.policy.SystemPrompt(),
		"query":  buildTranscript(sess),
	}

	msg, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return game.Judgement{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return game.Judgement{}, &MalformedReplyError{Reason: "empty reply"}
	}

	judgement, err := parseReply(s.policy, msg.Content)
	if err != nil {
		return game.Judgement{}, err
	}

	log.Printf("[oracle] judged session=%s turn=%d status=%s", sess.ID, sess.Turn, judgement.Status)
	return judgement, nil
}

// parseReply locates the JSON block inside the reply and validates it
// against the mode schema. The model is instructed to return bare JSON
// but sometimes wraps it in prose; slicing from the first "{" to the
// last "}" strips that.
func parseReply(policy mode.Policy, content string) (game.Judgement, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return game.Judgement{}, &MalformedReplyError{Reason: "no json block in reply", Raw: content}
	}

	judgement, err := policy.ParseJudgement([]byte(trimmed[start : end+1]))
	if err != nil {
		return game.Judgement{}, &MalformedReplyError{Reason: err.Error(), Raw: content}
	}
	return judgement, nil
}
