// Package render turns typed API payloads into tool output text.
//
// Two formats are supported: indented JSON that serializes the payload as-is,
// and a compact markdown view built from Blocks. Every rendered text passes
// through Truncate before it reaches the caller.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Format selects an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// CharacterLimit caps the size of any tool output.
const CharacterLimit = 25000

// TruncationNotice is appended when output is cut at CharacterLimit.
const TruncationNotice = "\n\n⚠️ Response truncated. Narrow the request with a smaller 'limit' or a tighter date range."

// ParseFormat returns the format named by s, or def when s is empty.
func ParseFormat(s string, def Format) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON
	case FormatMarkdown:
		return FormatMarkdown
	default:
		return def
	}
}

// Formats lists the accepted values for a response_format argument.
func Formats() []string {
	return []string{string(FormatMarkdown), string(FormatJSON)}
}

// JSON serializes v indented by two spaces without HTML escaping.
func JSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Truncate cuts s to CharacterLimit characters and appends TruncationNotice.
// Shorter text is returned unchanged.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= CharacterLimit {
		return s
	}
	n := 0
	for i := range s {
		if n == CharacterLimit {
			return s[:i] + TruncationNotice
		}
		n++
	}
	return s
}

// Empty is the no-results text for a collection of noun. It is the same for
// every output format.
func Empty(noun string) string {
	return fmt.Sprintf("No %s found.", noun)
}

// Timestamp formats an upstream ISO-8601 timestamp for display. Unparseable
// input is returned unchanged.
func Timestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05-0700", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC().Format("2006-01-02 15:04 UTC")
		}
	}
	return ts
}

// Excerpt shortens s to at most n runes, adding "..." when cut.
func Excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
