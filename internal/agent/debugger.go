package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const debuggerSystem = `You are a debugging specialist responsible for:
1. Analyzing error messages and stack traces
2. Identifying the root cause of failures
3. Proposing concrete fixes
4. Pointing out related defects the error exposes

Be specific: name the failing component and the change that resolves it.`

// Debugger wraps the diagnostic role: one request per error.
type Debugger struct {
	agent *Agent
	log   *zap.Logger
}

func NewDebugger(gen Generator, model string, log *zap.Logger) *Debugger {
	return &Debugger{
		agent: New("debugger", debuggerSystem, gen, model),
		log:   log,
	}
}

// AnalyzeError routes an error, its stack trace and free-form context
// through the diagnostic role.
func (d *Debugger) AnalyzeError(ctx context.Context, errMsg, stackTrace string, errCtx map[string]string) DebugResult {
	var sb strings.Builder
	sb.WriteString("Analyze the following error:\n\n")
	sb.WriteString("Error: " + errMsg + "\n")
	if strings.TrimSpace(stackTrace) != "" {
		sb.WriteString("\nStack trace:\n" + stackTrace + "\n")
	}
	if len(errCtx) > 0 {
		sb.WriteString("\nContext:\n")
		for k, v := range errCtx {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, v))
		}
	}
	sb.WriteString("\nExplain the root cause and propose a fix.")

	analysis, err := d.agent.Request(ctx, sb.String())
	if err != nil {
		d.log.Error("debug analysis failed", zap.Error(err))
		return DebugResult{Success: false, Error: err.Error()}
	}
	return DebugResult{Success: true, Analysis: analysis}
}
