package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devcrew/internal/agent"
	"devcrew/internal/dialogue"
	"devcrew/internal/extract"
	"devcrew/internal/monitor"
	"devcrew/internal/workspace"
)

const maxDialogueTurns = 3

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOngoing   Status = "ongoing"
	StatusFailed    Status = "failed"
)

// Outcome is the single record every orchestration cycle produces.
type Outcome struct {
	TaskID  string `json:"task_id"`
	Status  Status `json:"status"`
	Results string `json:"results,omitempty"`

	TestResults   *agent.TestRunResult `json:"test_results,omitempty"`
	ReviewResults *agent.ReviewResult  `json:"review_results,omitempty"`

	// Filled on the failure path only; per-step debug analyses live inside
	// TestResults.
	DebugAnalysis string `json:"debug_analysis,omitempty"`
	Error         string `json:"error,omitempty"`

	Metrics monitor.Snapshot `json:"metrics"`
}

// TestRunner, CodeReviewer and ErrorAnalyzer are the slices of the role
// wrappers the orchestrator dispatches to.
type TestRunner interface {
	CreateTestFile(code, filename string) agent.TestFileResult
	RunTests(ctx context.Context, testFile string) agent.TestRunResult
}

type CodeReviewer interface {
	ReviewCode(ctx context.Context, code string, reviewCtx map[string]string) agent.ReviewResult
}

type ErrorAnalyzer interface {
	AnalyzeError(ctx context.Context, errMsg, stackTrace string, errCtx map[string]string) agent.DebugResult
}

type Config struct {
	Dialogue dialogue.Runner
	Tester   TestRunner
	Reviewer CodeReviewer
	Debugger ErrorAnalyzer
	Monitor  *monitor.Recorder

	WorkDir   string
	Extension string

	// Zero disables the dialogue-dispatch timeout.
	DialogueTimeout time.Duration

	Logger *zap.Logger
}

// Orchestrator drives one task at a time from submission to a terminal
// outcome. It is not safe for concurrent Execute calls; callers that need
// parallelism run one instance per worker.
type Orchestrator struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config) *Orchestrator {
	if cfg.Extension == "" {
		cfg.Extension = ".go"
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, log: log}
}

// Execute runs the full orchestration cycle for task. It always returns
// exactly one Outcome and never panics past its boundary: any escaping
// error or panic becomes a failed outcome with a debug analysis attached
// when the debugger cooperates.
func (o *Orchestrator) Execute(ctx context.Context, task string) (out *Outcome) {
	out = &Outcome{TaskID: uuid.NewString()[:8], Status: StatusOngoing}
	log := o.log.With(zap.String("task_id", out.TaskID))
	log.Info("task accepted", zap.String("task", task))

	defer func() {
		if rec := recover(); rec != nil {
			o.fail(ctx, task, out, fmt.Sprintf("panic: %v", rec), string(debug.Stack()), log)
		}
	}()

	o.cfg.Monitor.RecordMetric("last_task", task)

	if err := o.runCycle(ctx, task, out, log); err != nil {
		o.fail(ctx, task, out, err.Error(), "", log)
		return out
	}

	out.Metrics = o.cfg.Monitor.Snapshot()
	log.Info("task finished", zap.String("status", string(out.Status)))
	return out
}

func (o *Orchestrator) runCycle(ctx context.Context, task string, out *Outcome, log *zap.Logger) error {
	stopDialogue := o.cfg.Monitor.Timer("dialogue")
	dctx := ctx
	if o.cfg.DialogueTimeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, o.cfg.DialogueTimeout)
		defer cancel()
	}
	transcript, err := o.cfg.Dialogue.Initiate(dctx, task, maxDialogueTurns)
	stopDialogue()
	if err != nil {
		return fmt.Errorf("dialogue dispatch: %w", err)
	}

	last := transcript.LastMessage()
	out.Results = last
	complete := strings.Contains(last, dialogue.Sentinel)

	if complete && workspace.Exists(o.cfg.WorkDir) {
		if err := o.persistAndCheck(ctx, task, last, out, log); err != nil {
			return err
		}
	}

	if complete {
		out.Status = StatusCompleted
	} else {
		out.Status = StatusOngoing
	}
	o.cfg.Monitor.RecordTaskResult(complete)
	return nil
}

// persistAndCheck runs the completion branch: pick the artifact, extract
// the code, overwrite, then dispatch tests, review, and the debugger on a
// failed run. A missing artifact or missing code block skips the branch
// silently; both are normal cycles, not errors.
func (o *Orchestrator) persistAndCheck(ctx context.Context, task, lastMessage string, out *Outcome, log *zap.Logger) error {
	artifact, err := workspace.SelectArtifact(o.cfg.WorkDir, o.cfg.Extension)
	if err != nil {
		return fmt.Errorf("artifact selection: %w", err)
	}
	if artifact == "" {
		log.Debug("no artifact in working directory, skipping test/review")
		return nil
	}

	code := extract.Extract(lastMessage)
	if code == "" {
		log.Debug("no code block in final message, skipping test/review")
		return nil
	}

	if err := workspace.WriteArtifact(artifact, code); err != nil {
		return err
	}
	filename := filepath.Base(artifact)
	log.Info("artifact updated", zap.String("artifact", filename), zap.Int("bytes", len(code)))

	stopTest := o.cfg.Monitor.Timer("test")
	var run agent.TestRunResult
	created := o.cfg.Tester.CreateTestFile(code, filename)
	if created.Success {
		run = o.cfg.Tester.RunTests(ctx, created.TestFile)
	} else {
		run = agent.TestRunResult{Success: false, ExitCode: -1, TestFile: created.TestFile, Error: created.Error}
	}
	stopTest()
	out.TestResults = &run

	stopReview := o.cfg.Monitor.Timer("review")
	review := o.cfg.Reviewer.ReviewCode(ctx, code, map[string]string{
		"task":     task,
		"filename": filename,
	})
	stopReview()
	out.ReviewResults = &review

	if !run.Success {
		analysis := o.cfg.Debugger.AnalyzeError(ctx, run.Error, "", map[string]string{
			"code":        code,
			"test_output": run.Output,
		})
		if analysis.Success {
			out.TestResults.DebugAnalysis = analysis.Analysis
		} else {
			log.Warn("debug analysis for failed tests unavailable", zap.String("error", analysis.Error))
		}
	}
	return nil
}

// fail converts an escaping error into the terminal failed outcome. The
// debugger gets one shot at analyzing it; a failed dispatch is reported
// but never masks the original error.
func (o *Orchestrator) fail(ctx context.Context, task string, out *Outcome, errMsg, stackTrace string, log *zap.Logger) {
	log.Error("task failed", zap.String("error", errMsg))

	out.Status = StatusFailed
	out.Error = errMsg

	analysis := o.cfg.Debugger.AnalyzeError(ctx, errMsg, stackTrace, map[string]string{"task": task})
	if analysis.Success {
		out.DebugAnalysis = analysis.Analysis
	} else {
		log.Warn("debug analysis unavailable", zap.String("error", analysis.Error))
	}

	o.cfg.Monitor.RecordTaskResult(false)
	out.Metrics = o.cfg.Monitor.Snapshot()
}
