package agent

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"go.uber.org/zap"
)

const reviewerSystem = `You are a code review specialist responsible for:
1. Code quality assessment
2. Best practices validation
3. Security review
4. Performance optimization
5. Documentation review

Provide detailed feedback and suggestions for improvement.`

// Lines of the review containing any of these read as actionable
// suggestions (case-insensitive substring match).
var suggestionKeywords = []string{"suggest", "consider", "recommend", "could", "should", "might"}

// Reviewer wraps the review role: static source metrics plus one
// role-prompted request over code, context and metrics.
type Reviewer struct {
	agent *Agent
	log   *zap.Logger
}

func NewReviewer(gen Generator, model string, log *zap.Logger) *Reviewer {
	return &Reviewer{
		agent: New("reviewer", reviewerSystem, gen, model),
		log:   log,
	}
}

// AnalyzeCodeQuality computes structural metrics for a Go source body.
func (r *Reviewer) AnalyzeCodeQuality(code string) (*CodeMetrics, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "artifact.go", code, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}

	metrics := &CodeMetrics{HasPackageDoc: file.Doc != nil}
	for _, imp := range file.Imports {
		metrics.Imports = append(metrics.Imports, strings.Trim(imp.Path.Value, `"`))
	}
	ast.Inspect(file, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.FuncDecl:
			metrics.NumFunctions++
		case *ast.TypeSpec:
			metrics.NumTypes++
		}
		return true
	})
	return metrics, nil
}

// ReviewCode runs the full review: metrics, one LLM round, suggestion
// extraction. A metrics failure degrades the review instead of aborting it.
func (r *Reviewer) ReviewCode(ctx context.Context, code string, reviewCtx map[string]string) ReviewResult {
	metrics, err := r.AnalyzeCodeQuality(code)
	if err != nil {
		r.log.Warn("code quality analysis failed", zap.Error(err))
	}

	response, err := r.agent.Request(ctx, buildReviewPrompt(code, reviewCtx, metrics))
	if err != nil {
		r.log.Error("review request failed", zap.Error(err))
		return ReviewResult{Success: false, Metrics: metrics, Error: err.Error()}
	}

	return ReviewResult{
		Success:     true,
		Review:      response,
		Metrics:     metrics,
		Suggestions: extractSuggestions(response),
	}
}

func buildReviewPrompt(code string, reviewCtx map[string]string, metrics *CodeMetrics) string {
	var sb strings.Builder
	sb.WriteString("Review the following code:\n\n")
	sb.WriteString("```go\n")
	sb.WriteString(code)
	sb.WriteString("\n```\n\n")

	if len(reviewCtx) > 0 {
		sb.WriteString("Context:\n")
		for k, v := range reviewCtx {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, v))
		}
		sb.WriteString("\n")
	}
	if metrics != nil {
		sb.WriteString(fmt.Sprintf("Code metrics: %d functions, %d types, package doc: %v, imports: [%s]\n\n",
			metrics.NumFunctions, metrics.NumTypes, metrics.HasPackageDoc, strings.Join(metrics.Imports, ", ")))
	}

	sb.WriteString("Provide review focusing on:\n")
	sb.WriteString("1. Code quality (clean code principles, function design, naming)\n")
	sb.WriteString("2. Best practices (Go conventions, error handling)\n")
	sb.WriteString("3. Security (input validation, data sanitization)\n")
	sb.WriteString("4. Performance (algorithm efficiency, resource usage)\n")
	sb.WriteString("5. Documentation (doc comments, API documentation)\n")
	return sb.String()
}

// extractSuggestions scans the review line by line, keeping order and
// duplicates verbatim.
func extractSuggestions(review string) []string {
	var suggestions []string
	for _, line := range strings.Split(review, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, kw := range suggestionKeywords {
			if strings.Contains(lower, kw) {
				suggestions = append(suggestions, line)
				break
			}
		}
	}
	return suggestions
}
