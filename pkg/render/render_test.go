package render

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	ID        string   `json:"id"`
	Text      string   `json:"text,omitempty"`
	Timestamp string   `json:"timestamp"`
	Tags      []string `json:"tags,omitempty"`
	Views     int      `json:"views"`
	Quote     bool     `json:"is_quote_post,omitempty"`
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON", FormatMarkdown))
	assert.Equal(t, FormatMarkdown, ParseFormat(" markdown ", FormatJSON))
	assert.Equal(t, FormatMarkdown, ParseFormat("", FormatMarkdown))
	assert.Equal(t, FormatJSON, ParseFormat("yaml", FormatJSON))
}

func TestJSON_IndentedNoEscape(t *testing.T) {
	out, err := JSON(map[string]any{"url": "https://x/?a=1&b=<2>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://x/?a=1&b=<2>\"\n}", out)
}

func TestJSON_RoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("json rendering is a faithful serialization", prop.ForAll(
		func(id, text string, tags []string, views int, quote bool) bool {
			x := post{ID: id, Text: text, Timestamp: "2025-01-02T03:04:05+0000", Tags: tags, Views: views, Quote: quote}
			first, err := JSON(x)
			if err != nil {
				return false
			}
			var parsed post
			if err := json.Unmarshal([]byte(first), &parsed); err != nil {
				return false
			}
			second, err := JSON(parsed)
			return err == nil && first == second
		},
		gen.Identifier(),
		gen.AnyString(),
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(-1_000_000, 1_000_000),
		gen.Bool(),
	))

	properties.Property("generic maps survive a round trip", prop.ForAll(
		func(keys []string, n int) bool {
			m := map[string]any{}
			for i, k := range keys {
				m[k] = float64(n + i)
			}
			first, _ := JSON(m)
			var parsed map[string]any
			if err := json.Unmarshal([]byte(first), &parsed); err != nil {
				return false
			}
			second, _ := JSON(parsed)
			return first == second
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestTruncate_Short(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello"))
	exact := strings.Repeat("a", CharacterLimit)
	assert.Equal(t, exact, Truncate(exact))
}

func TestTruncate_Long(t *testing.T) {
	in := strings.Repeat("é", CharacterLimit+10)
	out := Truncate(in)

	require.True(t, strings.HasSuffix(out, TruncationNotice))
	body := strings.TrimSuffix(out, TruncationNotice)
	assert.Equal(t, CharacterLimit, utf8.RuneCountInString(body))
	assert.True(t, utf8.ValidString(out))
}

func TestTruncate_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	noticeLen := utf8.RuneCountInString(TruncationNotice)

	properties.Property("long text is cut to the limit plus the notice", prop.ForAll(
		func(extra int, r rune) bool {
			in := strings.Repeat(string(r), CharacterLimit+noticeLen+extra)
			out := Truncate(in)
			return utf8.RuneCountInString(out) == CharacterLimit+noticeLen &&
				strings.HasSuffix(out, TruncationNotice) &&
				utf8.RuneCountInString(out) < utf8.RuneCountInString(in)
		},
		gen.IntRange(1, 5000),
		gen.RuneRange('a', 'z'),
	))

	properties.TestingRun(t)
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, "No clips found.", Empty("clips"))
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "2025-03-04 05:06 UTC", Timestamp("2025-03-04T05:06:07+0000"))
	assert.Equal(t, "2025-03-04 05:06 UTC", Timestamp("2025-03-04T05:06:07Z"))
	assert.Equal(t, "2025-03-04 00:00 UTC", Timestamp("2025-03-04"))
	assert.Equal(t, "yesterday", Timestamp("yesterday"))
	assert.Equal(t, "", Timestamp(""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", Excerpt("abc", 5))
	assert.Equal(t, "ab...", Excerpt("abcdef", 2))
}

func TestBlock_String(t *testing.T) {
	b := Block{ID: "42", Owner: "@alice", Timestamp: "2025-01-02T03:04:05+0000", Text: "hello"}
	b.Add("📎", "IMAGE")
	b.Add("🏷️", "")
	b.Add("🔗", "https://threads.net/p/1")

	want := "**[42]** @alice · 2025-01-02 03:04 UTC\nhello\n📎 IMAGE\n🔗 https://threads.net/p/1\n---"
	assert.Equal(t, want, b.String())
}

func TestBlock_Quote(t *testing.T) {
	b := Block{ID: "1", Text: "a\nb", Quote: true, Suffix: " 🙈"}
	assert.Equal(t, "**[1]** 🙈\n> a\n> b\n---", b.String())
}

func TestList(t *testing.T) {
	out := List("Posts", []Block{{ID: "1"}, {ID: "2"}})
	assert.Equal(t, "# Posts (2)\n\n**[1]**\n---\n**[2]**\n---", out)
}

func TestMetricsAndFields(t *testing.T) {
	assert.Equal(t, "# Insights\n\n- **views**: 10", Metrics("Insights", [][2]string{{"views", "10"}}))
	assert.Equal(t, "**Name**: Ada", Fields([][2]string{{"Name", "Ada"}, {"Bio", ""}}))
}

func TestHTMLText(t *testing.T) {
	in := `<html><head><style>.x{}</style></head><body><nav>Home</nav><h1>Title</h1><p>Hello world</p><ul><li>One</li><li>Two</li></ul><script>alert(1)</script></body></html>`
	out := HTMLText(in)

	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "Hello world")
	assert.Contains(t, out, "- One")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, ".x{}")
	assert.NotContains(t, out, "\n\n\n")
}
