package dialogue

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"devcrew/internal/agent"
)

// Sentinel is the literal token whose presence in the last message signals
// task completion. The match is case-sensitive and anywhere-in-text, so a
// quoted "TERMINATE" inside generated code also trips it; the dialogue
// contract accepts that.
const Sentinel = "TERMINATE"

const (
	RoleUserProxy = "user_proxy"
	RoleAssistant = "assistant"
)

const proxyContinuation = "Please continue. Include '" + Sentinel + "' in your reply once the task is complete."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Transcript is the ordered record of one dialogue round. Read-only to
// callers.
type Transcript struct {
	Messages []Message `json:"messages"`
}

// LastMessage returns the content of the final message, "" on an empty
// transcript.
func (t *Transcript) LastMessage() string {
	if t == nil || len(t.Messages) == 0 {
		return ""
	}
	return t.Messages[len(t.Messages)-1].Content
}

// Runner is the dialogue-dispatch contract the orchestrator depends on.
type Runner interface {
	Initiate(ctx context.Context, opening string, maxTurns int) (*Transcript, error)
}

// Round drives a bounded exchange between the user proxy and the
// assistant. The proxy opens with the task and answers each assistant
// reply with a fixed continuation until the sentinel appears or the turn
// cap is hit.
type Round struct {
	assistant *agent.Agent
	log       *zap.Logger
}

func NewRound(assistant *agent.Agent, log *zap.Logger) *Round {
	return &Round{assistant: assistant, log: log}
}

func (r *Round) Initiate(ctx context.Context, opening string, maxTurns int) (*Transcript, error) {
	transcript := &Transcript{
		Messages: []Message{{Role: RoleUserProxy, Content: opening}},
	}

	for turn := 0; turn < maxTurns; turn++ {
		reply, err := r.assistant.Request(ctx, renderConversation(transcript))
		if err != nil {
			return nil, fmt.Errorf("dialogue turn %d: %w", turn+1, err)
		}
		transcript.Messages = append(transcript.Messages, Message{Role: RoleAssistant, Content: reply})
		r.log.Debug("dialogue turn",
			zap.Int("turn", turn+1),
			zap.Int("reply_len", len(reply)))

		if strings.Contains(reply, Sentinel) {
			break
		}
		if turn < maxTurns-1 {
			transcript.Messages = append(transcript.Messages, Message{Role: RoleUserProxy, Content: proxyContinuation})
		}
	}
	return transcript, nil
}

func renderConversation(t *Transcript) string {
	var sb strings.Builder
	sb.WriteString("Conversation so far:\n")
	for _, m := range t.Messages {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", m.Role, m.Content))
	}
	sb.WriteString("\nReply as the assistant.")
	return sb.String()
}
