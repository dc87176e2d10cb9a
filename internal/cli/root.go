package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"devcrew/internal/agent"
	"devcrew/internal/config"
	"devcrew/internal/dialogue"
	"devcrew/internal/display"
	"devcrew/internal/listener"
	"devcrew/internal/llm_client"
	"devcrew/internal/monitor"
	"devcrew/internal/orchestrator"
	"devcrew/internal/workspace"
)

func newRootCmd(cfg *config.Config, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devcrew",
		Short: "A development crew of role-specialized AI agents",
		Long: `devcrew drives software-development tasks through a crew of
role-specialized agents: an assistant writes the code, a tester runs it,
a reviewer critiques it, and a debugger investigates failures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChatLoop(cfg, log)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&cfg.WorkDir, "workdir", cfg.WorkDir, "directory holding generated artifacts")
	cmd.Flags().StringVar(&cfg.Model, "model", cfg.Model, "model identifier override")
	return cmd
}

func buildOrchestrator(cfg *config.Config, log *zap.Logger, rec *monitor.Recorder) *orchestrator.Orchestrator {
	gen := llm_client.Active()
	return orchestrator.New(orchestrator.Config{
		Dialogue:        dialogue.NewRound(agent.NewAssistant(gen, cfg.Model), log),
		Tester:          agent.NewTester(cfg.WorkDir, log),
		Reviewer:        agent.NewReviewer(gen, cfg.Model, log),
		Debugger:        agent.NewDebugger(gen, cfg.Model, log),
		Monitor:         rec,
		WorkDir:         cfg.WorkDir,
		Extension:       ".go",
		DialogueTimeout: cfg.DialogueTimeout,
		Logger:          log,
	})
}

func runChatLoop(cfg *config.Config, log *zap.Logger) error {
	if err := workspace.EnsureDir(cfg.WorkDir); err != nil {
		return err
	}
	if err := listener.Init(); err != nil {
		return fmt.Errorf("init terminal input: %w", err)
	}
	defer listener.Close()

	rec := monitor.NewRecorder()
	orch := buildOrchestrator(cfg, log, rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(c)
		select {
		case <-c:
			listener.Close() // unblocks the input loop
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		listener.Println("Hello! Give me a development task. (type 'metrics' for session stats, 'exit' to quit)")

		for {
			input, ok := listener.GetInput()
			if !ok {
				return nil
			}
			input = strings.TrimSpace(input)
			switch {
			case input == "":
				continue
			case strings.EqualFold(input, "exit"):
				listener.Println("Goodbye!")
				return nil
			case strings.EqualFold(input, "metrics"):
				listener.Println(display.FormatSnapshot(rec.Snapshot()))
				continue
			}

			// One task at a time: the loop blocks until the cycle is done.
			out := orch.Execute(gctx, input)
			listener.Println(display.FormatOutcome(out))
		}
	})

	return g.Wait()
}

// Execute wires the CLI and runs it.
func Execute(cfg *config.Config, log *zap.Logger) {
	if err := newRootCmd(cfg, log).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
