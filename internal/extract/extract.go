package extract

import "strings"

// Only fences tagged with the artifact language are honored; untagged or
// foreign-language blocks are ignored.
const languageTag = "go"

// Extract pulls the first ```go fenced block out of a dialogue message.
// Literal "\n" escape sequences inside the block are normalized to real
// newlines and the result is trimmed. Returns "" when the message carries
// no recognized, terminated fence. Extract is idempotent: running already
// extracted code back through a fence yields the same string.
func Extract(message string) string {
	lines := strings.Split(message, "\n")

	inBlock := false
	var body []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if trimmed == "```"+languageTag {
				inBlock = true
			}
			continue
		}
		if trimmed == "```" {
			code := strings.Join(body, "\n")
			code = strings.ReplaceAll(code, `\n`, "\n")
			return strings.TrimSpace(code)
		}
		body = append(body, line)
	}

	// Unterminated fence: treat as no block rather than emit a truncated
	// artifact.
	return ""
}
