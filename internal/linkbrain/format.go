package linkbrain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

func clipBlock(c Clip) render.Block {
	b := render.Block{
		ID:        c.ID,
		Owner:     c.Category,
		Timestamp: c.CreatedAt,
		Text:      c.Title,
	}
	if c.Title == "" {
		b.Text = c.URL
	}
	var flags []string
	if c.IsFavorite {
		flags = append(flags, "⭐")
	}
	if c.IsReadLater {
		flags = append(flags, "🕒")
	}
	if c.IsArchived {
		flags = append(flags, "📦")
	}
	if len(flags) > 0 {
		b.Suffix = " " + strings.Join(flags, "")
	}
	b.Add("🔗", c.URL)
	b.Add("📝", render.Excerpt(c.Summary, 200))
	b.Add("🏷️", hashtags(c.Keywords))
	b.Add("📺", c.Platform)
	return b
}

func hashtags(keywords []string) string {
	tags := make([]string, 0, len(keywords))
	for _, k := range keywords {
		tags = append(tags, "#"+strings.ReplaceAll(k, " ", "_"))
	}
	return strings.Join(tags, " ")
}

// pageFooter describes where a page sits in the full result set.
func pageFooter(meta *Meta, shown int) string {
	if meta == nil {
		return ""
	}
	footer := fmt.Sprintf("\n\nShowing %d of %d (offset %d).", shown, meta.Total, meta.Offset)
	if meta.HasMore {
		footer += fmt.Sprintf(" More results available with offset=%d.", meta.Offset+shown)
	}
	return footer
}

func formatClips(heading string, page *Page[Clip]) string {
	blocks := make([]render.Block, 0, len(page.Data))
	for _, c := range page.Data {
		blocks = append(blocks, clipBlock(c))
	}
	out := render.List(heading, blocks)
	for _, c := range page.Data {
		if content := clipContent(c); content != "" {
			out += fmt.Sprintf("\n\n## %s\n\n%s", c.ID, content)
		}
	}
	return out + pageFooter(page.Meta, len(page.Data))
}

func formatClip(c *Clip) string {
	title := c.Title
	if title == "" {
		title = c.URL
	}
	fields := render.Fields([][2]string{
		{"ID", c.ID},
		{"URL", c.URL},
		{"Category", c.Category},
		{"Platform", c.Platform},
		{"Keywords", strings.Join(c.Keywords, ", ")},
		{"Collections", strings.Join(c.CollectionIDs, ", ")},
		{"Favorite", yes(c.IsFavorite)},
		{"Read later", yes(c.IsReadLater)},
		{"Archived", yes(c.IsArchived)},
		{"Created", render.Timestamp(c.CreatedAt)},
		{"Updated", render.Timestamp(c.UpdatedAt)},
	})

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n" + fields)
	for _, section := range [][2]string{
		{"Summary", c.Summary},
		{"Key takeaways", c.KeyTakeaways},
		{"Notes", c.Notes},
	} {
		if section[1] != "" {
			sb.WriteString("\n\n## " + section[0] + "\n\n" + section[1])
		}
	}
	return sb.String()
}

// clipContent picks the richest available body: the raw markdown, then the
// processed markdown, then the HTML reduced to text.
func clipContent(c Clip) string {
	switch {
	case strings.TrimSpace(c.RawMarkdown) != "":
		return c.RawMarkdown
	case strings.TrimSpace(c.ContentMarkdown) != "":
		return c.ContentMarkdown
	case strings.TrimSpace(c.HTMLContent) != "":
		return render.HTMLText(c.HTMLContent)
	}
	return ""
}

func formatClipContent(c *Clip) string {
	head := formatClip(c)
	content := clipContent(*c)
	if content == "" {
		content = "(no stored content for this clip)"
	}
	return head + "\n\n## Content\n\n" + content
}

func formatCollections(page *Page[Collection]) string {
	blocks := make([]render.Block, 0, len(page.Data))
	for _, col := range page.Data {
		b := render.Block{ID: col.ID, Timestamp: col.CreatedAt, Text: col.Name}
		if col.IsPublic {
			b.Suffix = " 🌐"
		}
		if col.ClipCount > 0 {
			b.Add("📎", strconv.Itoa(col.ClipCount)+" clips")
		}
		b.Add("🎨", col.Color)
		blocks = append(blocks, b)
	}
	return render.List("Collections", blocks) + pageFooter(page.Meta, len(page.Data))
}

func formatCategories(page *Page[Category]) string {
	rows := make([][2]string, 0, len(page.Data))
	for _, cat := range page.Data {
		value := strconv.Itoa(cat.Count) + " clips"
		if cat.Color != "" {
			value += " · " + cat.Color
		}
		rows = append(rows, [2]string{cat.Name, value})
	}
	return render.Metrics(fmt.Sprintf("Categories (%d)", len(rows)), rows)
}

func formatTags(tags []Tag) string {
	rows := make([][2]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, [2]string{t.Name, strconv.Itoa(t.Count)})
	}
	return render.Metrics(fmt.Sprintf("Tags (%d)", len(rows)), rows) +
		fmt.Sprintf("\n\nCounted over the %d most recent clips.", tagSamplePage)
}

func formatWebhooks(page *Page[Webhook]) string {
	blocks := make([]render.Block, 0, len(page.Data))
	for _, h := range page.Data {
		b := render.Block{ID: h.ID, Owner: h.Label, Timestamp: h.CreatedAt, Text: h.URL}
		if !h.IsActive {
			b.Suffix = " (inactive)"
		}
		b.Add("📣", strings.Join(h.Events, ", "))
		if h.DeliveryCount > 0 || h.FailureCount > 0 {
			b.Add("📊", fmt.Sprintf("%d delivered, %d failed", h.DeliveryCount, h.FailureCount))
		}
		b.Add("🕒", render.Timestamp(h.LastDelivered))
		blocks = append(blocks, b)
	}
	return render.List("Webhooks", blocks)
}

func yes(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
