package display

import (
	"fmt"
	"sort"
	"strings"

	"devcrew/internal/monitor"
	"devcrew/internal/orchestrator"
)

const maxResultPreview = 400

// FormatOutcome renders one orchestration outcome for the terminal.
func FormatOutcome(out *orchestrator.Outcome) string {
	if out == nil {
		return "No outcome available."
	}
	var sb strings.Builder

	switch out.Status {
	case orchestrator.StatusCompleted:
		sb.WriteString(fmt.Sprintf("[Task %s COMPLETED]\n", out.TaskID))
	case orchestrator.StatusFailed:
		sb.WriteString(fmt.Sprintf("[Task %s FAILED] %s\n", out.TaskID, out.Error))
	default:
		sb.WriteString(fmt.Sprintf("[Task %s ONGOING]\n", out.TaskID))
	}

	if out.Results != "" {
		sb.WriteString("Assistant:\n")
		sb.WriteString(indent(preview(out.Results)) + "\n")
	}

	if tr := out.TestResults; tr != nil {
		status := "passed"
		if !tr.Success {
			status = fmt.Sprintf("FAILED (exit %d)", tr.ExitCode)
		}
		sb.WriteString(fmt.Sprintf("Tests: %s  (%s)\n", status, tr.TestFile))
		if tr.DebugAnalysis != "" {
			sb.WriteString("Debug analysis:\n")
			sb.WriteString(indent(preview(tr.DebugAnalysis)) + "\n")
		}
	}

	if rr := out.ReviewResults; rr != nil {
		if rr.Success {
			sb.WriteString(fmt.Sprintf("Review: ok, %d suggestion(s)\n", len(rr.Suggestions)))
			for _, s := range rr.Suggestions {
				sb.WriteString("  - " + s + "\n")
			}
		} else {
			sb.WriteString("Review: FAILED: " + rr.Error + "\n")
		}
	}

	if out.DebugAnalysis != "" {
		sb.WriteString("Debug analysis:\n")
		sb.WriteString(indent(preview(out.DebugAnalysis)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatSnapshot renders the recorder's point-in-time metrics.
func FormatSnapshot(snap monitor.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("Session metrics:\n")
	sb.WriteString(fmt.Sprintf("- Uptime: %.1fs\n", snap.Uptime))
	sb.WriteString(fmt.Sprintf("- Tasks: %d total, %d ok, %d failed (success rate %.1f%%)\n",
		snap.TotalTasks, snap.SuccessCount, snap.FailureCount, snap.SuccessRate))
	sb.WriteString(fmt.Sprintf("- Process: cpu %.1f%%, mem %.1f MB, threads %d\n",
		snap.System.CPUPercent, snap.System.MemoryMB, snap.System.Threads))

	if len(snap.Values) > 0 {
		names := make([]string, 0, len(snap.Values))
		for name := range snap.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  %-24s %s\n", name, formatValue(snap.Values[name])))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatValue(value any) string {
	s := fmt.Sprintf("%v", value)
	s = strings.ReplaceAll(s, "\n", "\\n") // Keep display on one line
	if len(s) > maxResultPreview {
		return s[:maxResultPreview] + "..."
	}
	return s
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxResultPreview {
		return s[:maxResultPreview] + "..."
	}
	return s
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
