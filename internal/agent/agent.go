package agent

import (
	"context"
	"fmt"
	"strings"
)

// Generator is the one capability every role needs from the LLM runtime.
// The active llm_client provider satisfies it; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Agent is a role specialization: a fixed system prompt plus a request
// path. All four roles share this shape; only their prompt differs.
type Agent struct {
	Name   string
	System string

	gen   Generator
	model string
}

func New(name, system string, gen Generator, model string) *Agent {
	return &Agent{Name: name, System: system, gen: gen, model: model}
}

// Request issues one role-prompted generation round.
func (a *Agent) Request(ctx context.Context, prompt string) (string, error) {
	full := a.System + "\n\n" + prompt
	reply, err := a.gen.Generate(ctx, full, a.model)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", a.Name, err)
	}
	return strings.TrimSpace(reply), nil
}

const assistantSystem = `You are a helpful AI coding assistant. You can:
1. Write and modify Go code
2. Debug issues
3. Test solutions
4. Explain your work

Always ensure code is complete, compiles, and follows Go conventions.
Return code inside a single fenced block tagged 'go'.
When a task is completed successfully, include 'TERMINATE' in your response.`

// NewAssistant builds the planner/executor role that drives the main
// dialogue round.
func NewAssistant(gen Generator, model string) *Agent {
	return New("assistant", assistantSystem, gen, model)
}
