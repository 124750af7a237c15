package threads

import (
	"fmt"
	"math"
	"strings"

	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

// Daily quotas reported when the API omits the config.
const (
	defaultPostQuota  = 250
	defaultReplyQuota = 1000
)

func threadBlock(m Media) render.Block {
	owner := "@me"
	if m.Username != "" {
		owner = "@" + m.Username
	}
	b := render.Block{ID: m.ID, Owner: owner, Timestamp: m.Timestamp, Text: m.Text}
	if m.MediaType != "" && m.MediaType != "TEXT_POST" {
		b.Add("📎", m.MediaType)
	}
	b.Add("🏷️", m.TopicTag)
	b.Add("🔗", m.Permalink)
	return b
}

func replyBlock(r Reply) render.Block {
	owner := "@unknown"
	if r.Username != "" {
		owner = "@" + r.Username
	}
	b := render.Block{ID: r.ID, Owner: owner, Timestamp: r.Timestamp, Text: r.Text, Quote: true}
	if r.Hidden() {
		b.Suffix = " 🙈"
	}
	b.Add("🔗", r.Permalink)
	return b
}

func formatThreads(heading string, posts []Media) string {
	blocks := make([]render.Block, 0, len(posts))
	for _, m := range posts {
		blocks = append(blocks, threadBlock(m))
	}
	return render.List(heading, blocks)
}

func formatThread(m *Media) string {
	out := threadBlock(*m).String()
	if m.Children != nil && len(m.Children.Data) > 0 {
		items := make([]string, 0, len(m.Children.Data))
		for _, child := range m.Children.Data {
			items = append(items, fmt.Sprintf("- %s %s", child.MediaType, child.ID))
		}
		out += "\n\nCarousel items:\n" + strings.Join(items, "\n")
	}
	return out
}

func formatReplies(heading string, replies []Reply) string {
	blocks := make([]render.Block, 0, len(replies))
	for _, r := range replies {
		blocks = append(blocks, replyBlock(r))
	}
	return render.List(heading, blocks)
}

func formatInsights(heading string, insights []Insight) string {
	rows := make([][2]string, 0, len(insights))
	for _, in := range insights {
		rows = append(rows, [2]string{in.Label(), in.Value()})
	}
	return render.Metrics(heading, rows)
}

func quotaTotal(cfg *QuotaConfig, def int) int {
	if cfg == nil || cfg.QuotaTotal <= 0 {
		return def
	}
	return cfg.QuotaTotal
}

func percent(used, total int) int {
	return int(math.Round(float64(used) / float64(total) * 100))
}

func formatPublishingLimit(l *PublishingLimit) string {
	postTotal := quotaTotal(l.Config, defaultPostQuota)
	replyTotal := quotaTotal(l.ReplyConfig, defaultReplyQuota)

	return strings.Join([]string{
		"# Publishing Limit Status",
		"",
		fmt.Sprintf("📝 **Posts**: %d / %d (%d%% used)", l.QuotaUsage, postTotal, percent(l.QuotaUsage, postTotal)),
		fmt.Sprintf("💬 **Replies**: %d / %d (%d%% used)", l.ReplyQuotaUsage, replyTotal, percent(l.ReplyQuotaUsage, replyTotal)),
		"",
		fmt.Sprintf("Posts remaining: %d", postTotal-l.QuotaUsage),
		fmt.Sprintf("Replies remaining: %d", replyTotal-l.ReplyQuotaUsage),
	}, "\n")
}

func formatProfile(u *User) string {
	head := "# @" + u.Username
	if u.IsVerified {
		head += " ✅"
	}
	return head + "\n\n" + render.Fields([][2]string{
		{"Name", u.Name},
		{"Bio", u.Biography},
		{"ID", u.ID},
	})
}

// postExcerpt quotes the first 100 characters of a published text.
func postExcerpt(text string) string {
	return `"` + render.Excerpt(text, 100) + `"`
}
