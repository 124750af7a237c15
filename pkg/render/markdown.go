package render

import (
	"fmt"
	"strings"
)

// Separator ends each rendered item.
const Separator = "---"

// Block is the markdown view of one record: a title line, the primary text,
// and auxiliary lines each on their own line.
type Block struct {
	ID        string
	Owner     string
	Timestamp string
	Text      string
	Quote     bool
	Aux       []string
	Suffix    string
}

// Add appends an auxiliary line when value is non-empty.
func (b *Block) Add(marker, value string) {
	if value == "" {
		return
	}
	b.Aux = append(b.Aux, marker+" "+value)
}

// String renders the block followed by Separator.
func (b Block) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("**[%s]**", b.ID))
	if b.Owner != "" {
		sb.WriteString(" " + b.Owner)
	}
	if ts := Timestamp(b.Timestamp); ts != "" {
		sb.WriteString(" · " + ts)
	}
	sb.WriteString(b.Suffix)
	sb.WriteString("\n")

	if b.Text != "" {
		if b.Quote {
			sb.WriteString("> " + strings.ReplaceAll(b.Text, "\n", "\n> "))
		} else {
			sb.WriteString(b.Text)
		}
		sb.WriteString("\n")
	}
	for _, line := range b.Aux {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString(Separator)
	return sb.String()
}

// List renders a headed list of blocks.
func List(heading string, blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.String())
	}
	return fmt.Sprintf("# %s (%d)\n\n%s", heading, len(blocks), strings.Join(parts, "\n"))
}

// Metrics renders a headed bullet list of name/value pairs.
func Metrics(heading string, rows [][2]string) string {
	lines := []string{"# " + heading, ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", r[0], r[1]))
	}
	return strings.Join(lines, "\n")
}

// Fields renders "**Label**: value" lines, skipping empty values.
func Fields(rows [][2]string) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("**%s**: %s", r[0], r[1]))
	}
	return strings.Join(lines, "\n")
}
