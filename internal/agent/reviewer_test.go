package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleSource = `// Package main prints a greeting.
package main

import (
	"fmt"
	"os"
)

type greeter struct{ name string }

func (g greeter) greet() string { return "Hello, " + g.name }

func main() {
	fmt.Fprintln(os.Stdout, greeter{name: "World"}.greet())
}
`

func TestAnalyzeCodeQuality(t *testing.T) {
	r := NewReviewer(&fakeGenerator{}, "", zap.NewNop())

	metrics, err := r.AnalyzeCodeQuality(sampleSource)
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.NumFunctions)
	assert.Equal(t, 1, metrics.NumTypes)
	assert.True(t, metrics.HasPackageDoc)
	assert.Equal(t, []string{"fmt", "os"}, metrics.Imports)
}

func TestAnalyzeCodeQualityRejectsBrokenSource(t *testing.T) {
	r := NewReviewer(&fakeGenerator{}, "", zap.NewNop())

	_, err := r.AnalyzeCodeQuality("func main( {")
	require.Error(t, err)
}

func TestExtractSuggestions(t *testing.T) {
	review := "Overall this looks fine.\n" +
		"Consider renaming greeter to Greeter.\n" +
		"The error path is missing.\n" +
		"You SHOULD handle the write error.\n" +
		"Consider renaming greeter to Greeter.\n"

	got := extractSuggestions(review)
	assert.Equal(t, []string{
		"Consider renaming greeter to Greeter.",
		"You SHOULD handle the write error.",
		"Consider renaming greeter to Greeter.",
	}, got)
}

func TestExtractSuggestionsEmptyReview(t *testing.T) {
	assert.Empty(t, extractSuggestions("All good.\nShip it."))
}

func TestReviewCode(t *testing.T) {
	gen := &fakeGenerator{reply: "Looks solid.\nConsider adding input validation."}
	r := NewReviewer(gen, "", zap.NewNop())

	res := r.ReviewCode(context.Background(), sampleSource, map[string]string{
		"task":     "write a hello world function",
		"filename": "main.go",
	})

	require.True(t, res.Success)
	assert.Contains(t, res.Review, "Looks solid")
	require.NotNil(t, res.Metrics)
	assert.Equal(t, 2, res.Metrics.NumFunctions)
	assert.Equal(t, []string{"Consider adding input validation."}, res.Suggestions)

	assert.Contains(t, gen.lastPrompt, "write a hello world function")
	assert.Contains(t, gen.lastPrompt, "```go")
}

func TestReviewCodeRequestFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("backend down")}
	r := NewReviewer(gen, "", zap.NewNop())

	res := r.ReviewCode(context.Background(), sampleSource, nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "backend down")
	// Static metrics survive a failed review round.
	assert.NotNil(t, res.Metrics)
}

func TestReviewCodeUnparsableSourceStillReviews(t *testing.T) {
	gen := &fakeGenerator{reply: "Could not follow the control flow."}
	r := NewReviewer(gen, "", zap.NewNop())

	res := r.ReviewCode(context.Background(), "not go at all", nil)
	assert.True(t, res.Success)
	assert.Nil(t, res.Metrics)
}
