package tools

import (
	"fmt"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// Output encodings selectable per request.
	formatMarkdown = "markdown"
	formatJSON     = "json"

	// MaxResponseChars caps the rendered text of every tool result,
	// regardless of encoding. Fixed policy constant.
	MaxResponseChars = 25000
)

// truncate enforces the character cap on a rendered body. The cap counts
// characters, not bytes, and the cut lands on a rune boundary. When the body
// exceeds the cap it is cut at the cap and a notice is appended stating the
// original length, the cap, and a tool-specific hint for getting a smaller
// result.
func truncate(body string, limit int, hint string) (string, bool) {
	total := utf8.RuneCountInString(body)
	if total <= limit {
		return body, false
	}
	notice := fmt.Sprintf("\n\n[output truncated: %d characters exceeded the %d character limit. %s]",
		total, limit, hint)
	return string([]rune(body)[:limit]) + notice, true
}

// textResult packages a rendered body as a text content block, applying the
// global character cap and recording the truncation flag in the result
// metadata.
func textResult(body, truncationHint string, meta map[string]any) *mcp.CallToolResult {
	body, truncated := truncate(body, MaxResponseChars, truncationHint)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["truncated"] = truncated
	res := mcp.NewToolResultText(body)
	res.Meta = meta
	return res
}

// errorResult renders a failure as clearly marked error text. The isError
// flag and the leading marker together distinguish it from success text.
func errorResult(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error: %s", message))
}
