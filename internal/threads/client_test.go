package threads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobinCoderZhao/apibridge/pkg/apiclient"
	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
	"github.com/RobinCoderZhao/apibridge/pkg/mcpserver"
	"github.com/RobinCoderZhao/apibridge/pkg/render"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeGraph is an httptest Graph API that records every call as
// "METHOD /path".
type fakeGraph struct {
	mu     sync.Mutex
	calls  []string
	sleeps []time.Duration

	client *Client
	srv    *mcpserver.Server
}

func newGraph(t *testing.T, h http.HandlerFunc, opts ...ClientOption) *fakeGraph {
	t.Helper()
	g := &fakeGraph{}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		g.mu.Lock()
		g.calls = append(g.calls, r.Method+" "+r.URL.Path)
		g.mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(api.Close)

	opts = append([]ClientOption{WithSleep(func(_ context.Context, d time.Duration) error {
		g.mu.Lock()
		g.sleeps = append(g.sleeps, d)
		g.mu.Unlock()
		return nil
	})}, opts...)
	g.client = NewClient(apiclient.NewCredential("tok", api.URL), apiclient.Config{Timeout: 2 * time.Second}, discard, opts...)
	srv, err := NewServer(g.client, "test", discard)
	require.NoError(t, err)
	g.srv = srv
	return g
}

func (g *fakeGraph) call(name string, args map[string]any) *mcpserver.ToolCallResult {
	return g.srv.Call(context.Background(), name, args)
}

func (g *fakeGraph) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *fakeGraph) count(call string) int {
	n := 0
	for _, c := range g.recorded() {
		if c == call {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// graphAPI answers the identity and publishing endpoints. status decides the
// container status for each poll; publish answers threads_publish.
func graphAPI(t *testing.T, status func(poll int) string, publish http.HandlerFunc) http.HandlerFunc {
	var mu sync.Mutex
	polls, containers := 0, 0
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/me":
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/u1/threads":
			mu.Lock()
			containers++
			id := fmt.Sprintf("c%d", containers)
			mu.Unlock()
			writeJSON(w, http.StatusOK, `{"id":"`+id+`"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/u1/threads_publish":
			publish(w, r)
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/c"):
			assert.Equal(t, "id,status,error_message", r.URL.Query().Get("fields"))
			mu.Lock()
			polls++
			st := status(polls)
			mu.Unlock()
			writeJSON(w, http.StatusOK, `{"id":"`+strings.TrimPrefix(r.URL.Path, "/")+`","status":"`+st+`"}`)
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func publishOK(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, `{"id":"p1"}`)
}

func TestCreatePost_PollsThenPublishes(t *testing.T) {
	g := newGraph(t, graphAPI(t, func(poll int) string {
		if poll == 1 {
			return StatusInProgress
		}
		return StatusFinished
	}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c1", r.URL.Query().Get("creation_id"))
		publishOK(w, r)
	}))

	res := g.call("threads_create_post", map[string]any{"text": "hi"})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "✅ Post published successfully!\n\nPost ID: p1\nText: \"hi\"", res.Text())
	assert.Equal(t, []string{
		"GET /me",
		"POST /u1/threads",
		"GET /c1",
		"GET /c1",
		"POST /u1/threads_publish",
	}, g.recorded())

	def := DefaultPublishConfig()
	assert.Equal(t, []time.Duration{def.InitialDelay, def.PollInterval}, g.sleeps)
}

func TestCreatePost_ContainerQuery(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
			return
		}
		if r.URL.Path == "/u1/threads" {
			q := r.URL.Query()
			assert.Equal(t, "IMAGE", q.Get("media_type"))
			assert.Equal(t, "https://img.example/a.png", q.Get("image_url"))
			assert.Equal(t, "mentioned_only", q.Get("reply_control"))
			assert.False(t, q.Has("video_url"))
			assert.False(t, q.Has("is_carousel_item"))
			writeJSON(w, http.StatusOK, `{"id":"c1"}`)
			return
		}
		publishOK(w, r)
	}, WithPublishConfig(PublishConfig{Strategy: StrategyDelay, PostDelay: 1500 * time.Millisecond}))

	res := g.call("threads_create_post", map[string]any{
		"text":          "look",
		"image_url":     "https://img.example/a.png",
		"reply_control": "mentioned_only",
	})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, g.sleeps)
	assert.Zero(t, g.count("GET /c1"))
}

func TestCreatePost_PublishFailureIsNotRetried(t *testing.T) {
	g := newGraph(t, graphAPI(t, func(int) string { return StatusFinished }, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":{"message":"boom","type":"OAuthException","code":2}}`)
	}))

	res := g.call("threads_create_post", map[string]any{"text": "hi"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Threads API error (OAuthException, code 2): boom", res.Text())
	assert.Equal(t, 1, g.count("POST /u1/threads"))
	assert.Equal(t, 1, g.count("POST /u1/threads_publish"))
}

func TestCreatePost_ContainerNotReady(t *testing.T) {
	g := newGraph(t, graphAPI(t, func(int) string { return StatusInProgress }, func(w http.ResponseWriter, r *http.Request) {
		t.Error("published a container that never finished")
	}), WithPublishConfig(PublishConfig{MaxAttempts: 3}))

	_, err := g.client.CreatePost(context.Background(), NewPost{Text: "hi"})
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.KindContainerNotReady))
	assert.Contains(t, err.Error(), "after 3 status checks (last status: IN_PROGRESS)")
	assert.Equal(t, 3, g.count("GET /c1"))
}

func TestCreatePost_ContainerError(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
		case "/u1/threads":
			writeJSON(w, http.StatusOK, `{"id":"c1"}`)
		case "/c1":
			writeJSON(w, http.StatusOK, `{"id":"c1","status":"ERROR","error_message":"unsupported image format"}`)
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	})

	res := g.call("threads_create_post", map[string]any{"text": "hi"})
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Threads API error: container c1 is ERROR: unsupported image format", res.Text())
}

func TestCreatePost_Carousel(t *testing.T) {
	var queries []map[string]string
	var mu sync.Mutex
	inner := graphAPI(t, func(int) string { return StatusFinished }, publishOK)
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/u1/threads" {
			q := map[string]string{}
			for k := range r.URL.Query() {
				if k != "access_token" {
					q[k] = r.URL.Query().Get(k)
				}
			}
			mu.Lock()
			queries = append(queries, q)
			mu.Unlock()
		}
		inner(w, r)
	})

	res := g.call("threads_create_post", map[string]any{
		"text": "album",
		"carousel": []any{
			map[string]any{"image_url": "https://img.example/1.png"},
			map[string]any{"video_url": "https://img.example/2.mp4"},
		},
	})
	require.False(t, res.IsError, res.Text())
	require.Len(t, queries, 3)
	assert.Equal(t, map[string]string{"image_url": "https://img.example/1.png", "media_type": "IMAGE", "is_carousel_item": "true"}, queries[0])
	assert.Equal(t, map[string]string{"video_url": "https://img.example/2.mp4", "media_type": "VIDEO", "is_carousel_item": "true"}, queries[1])
	assert.Equal(t, map[string]string{"text": "album", "media_type": "CAROUSEL", "children": "c1,c2"}, queries[2])
	assert.Equal(t, 1, g.count("GET /c1"))
	assert.Equal(t, 1, g.count("GET /c2"))
	assert.Equal(t, 1, g.count("GET /c3"))
}

func TestReply(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
		case "/u1/threads":
			assert.Equal(t, "t9", r.URL.Query().Get("reply_to_id"))
			assert.Equal(t, "TEXT", r.URL.Query().Get("media_type"))
			writeJSON(w, http.StatusOK, `{"id":"c1"}`)
		case "/u1/threads_publish":
			writeJSON(w, http.StatusOK, `{"id":"r1"}`)
		}
	}, WithPublishConfig(PublishConfig{Strategy: StrategyDelay, ReplyDelay: time.Second}))

	long := strings.Repeat("a", 120)
	res := g.call("threads_reply", map[string]any{"thread_id": "t9", "text": long})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "✅ Reply posted successfully!\n\nReply ID: r1\nIn reply to: t9\nText: \""+strings.Repeat("a", 100)+"...\"", res.Text())
	assert.Equal(t, []time.Duration{time.Second}, g.sleeps)
}

func TestUserID_Cached(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			assert.Equal(t, "id", r.URL.Query().Get("fields"))
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
		case "/u1/threads":
			writeJSON(w, http.StatusOK, `{"data":[{"id":"1","text":"x","media_type":"TEXT_POST"}]}`)
		case "/u1/threads_publishing_limit":
			writeJSON(w, http.StatusOK, `{"data":[{"quota_usage":1}]}`)
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.call("threads_get_my_posts", nil)
		}()
	}
	wg.Wait()
	before := g.count("GET /me")
	assert.GreaterOrEqual(t, before, 1)

	g.call("threads_get_my_posts", nil)
	g.call("threads_get_publishing_limit", nil)
	assert.Equal(t, before, g.count("GET /me"))
}

func TestAuthError(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`)
	})

	res := g.call("threads_get_profile", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: Authentication error: Session has expired. Your access token may have expired. Generate a new one.", res.Text())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apierr.Kind
		msg    string
	}{
		{"auth", 400, `{"error":{"message":"m","type":"OAuthException","code":190}}`, apierr.KindAuth,
			"Authentication error: m. Your access token may have expired. Generate a new one."},
		{"rate limit", 400, `{"error":{"message":"m","code":4}}`, apierr.KindRateLimit,
			"Rate limit exceeded: m. Wait a few minutes before retrying."},
		{"user rate limit", 400, `{"error":{"message":"m","code":17}}`, apierr.KindRateLimit,
			"Rate limit exceeded: m. Wait a few minutes before retrying."},
		{"invalid parameter", 400, `{"error":{"message":"m","code":100}}`, apierr.KindInvalidParameter,
			"Invalid parameter: m. Check your input values."},
		{"body wins over status", 401, `{"error":{"message":"m","type":"GraphMethodException","code":803}}`, apierr.KindUpstream,
			"Threads API error (GraphMethodException, code 803): m"},
		{"status 401", 401, `not json`, apierr.KindAuth,
			"Authentication error: HTTP 401 Unauthorized. Your access token may have expired. Generate a new one."},
		{"status 429", 429, ``, apierr.KindRateLimit,
			"Rate limit exceeded: HTTP 429 Too Many Requests. Wait a few minutes before retrying."},
		{"status 502", 502, `<html/>`, apierr.KindUpstream, "Threads API error: HTTP 502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, []byte(tt.body))
			assert.Equal(t, tt.kind, err.Kind)
			assert.Equal(t, tt.msg, err.Message)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestValidationNeverReachesNetwork(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
	})

	cases := map[string]map[string]any{
		"threads_create_post":  {"text": "x", "image_url": "https://a.example/i.png", "video_url": "https://a.example/v.mp4"},
		"threads_reply":        {"thread_id": "t1", "text": strings.Repeat("x", postCharLimit+1)},
		"threads_search":       {"query": "   "},
		"threads_get_my_posts": {"limit": 101},
		"threads_hide_reply":   {"reply_id": "r1"},
	}
	for name, args := range cases {
		res := g.call(name, args)
		assert.True(t, res.IsError, name)
		assert.Contains(t, res.Text(), "invalid arguments", name)
	}

	carousel := g.call("threads_create_post", map[string]any{
		"text":      "x",
		"image_url": "https://a.example/i.png",
		"carousel":  []any{map[string]any{"image_url": "https://a.example/1.png"}, map[string]any{"image_url": "https://a.example/2.png"}},
	})
	assert.True(t, carousel.IsError)

	single := g.call("threads_create_post", map[string]any{
		"text":     "x",
		"carousel": []any{map[string]any{"image_url": "https://a.example/1.png"}},
	})
	assert.True(t, single.IsError)

	assert.Empty(t, g.recorded())
}

func TestGetMyPosts(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
			return
		}
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, threadFields, r.URL.Query().Get("fields"))
		assert.False(t, r.URL.Query().Has("since"))
		writeJSON(w, http.StatusOK, `{"data":[
			{"id":"1","text":"hello","media_type":"TEXT_POST","username":"gopher","timestamp":"2025-03-01T10:00:00+0000","permalink":"https://threads.net/p/1"},
			{"id":"2","media_type":"IMAGE","topic_tag":"golang"}
		]}`)
	})

	md := g.call("threads_get_my_posts", nil)
	require.False(t, md.IsError, md.Text())
	assert.Equal(t, "# My Threads Posts (2)\n\n"+
		"**[1]** @gopher · 2025-03-01 10:00 UTC\nhello\n🔗 https://threads.net/p/1\n---\n"+
		"**[2]** @me\n📎 IMAGE\n🏷️ golang\n---", md.Text())

	js := g.call("threads_get_my_posts", map[string]any{"response_format": "json"})
	require.False(t, js.IsError, js.Text())
	assert.Contains(t, js.Text(), `"count": 2`)
	assert.Contains(t, js.Text(), `"posts": [`)
}

func TestEmptyIsSameForBothFormats(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/keyword_search", r.URL.Path)
		assert.Equal(t, "nothing", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})

	md := g.call("threads_search", map[string]any{"query": "nothing"})
	js := g.call("threads_search", map[string]any{"query": "nothing", "response_format": "json"})
	assert.False(t, md.IsError)
	assert.Equal(t, render.Empty("posts"), md.Text())
	assert.Equal(t, md.Text(), js.Text())
}

func TestOutputIsTruncated(t *testing.T) {
	var posts []string
	for i := 0; i < 40; i++ {
		posts = append(posts, fmt.Sprintf(`{"id":"%d","media_type":"TEXT_POST","text":"%s"}`, i, strings.Repeat("é", 1000)))
	}
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":[`+strings.Join(posts, ",")+`]}`)
	})

	res := g.call("threads_get_my_posts", map[string]any{"limit": 40})
	require.False(t, res.IsError)
	assert.True(t, strings.HasSuffix(res.Text(), render.TruncationNotice))
	assert.Equal(t, render.CharacterLimit+utf8.RuneCountInString(render.TruncationNotice), utf8.RuneCountInString(res.Text()))
}

func TestReplies(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/t1/conversation", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("reverse"))
		assert.Equal(t, replyFields, r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, `{"data":[
			{"id":"r1","text":"nice\npost","username":"ann"},
			{"id":"r2","text":"spam","hide_status":"HIDDEN"}
		]}`)
	})

	res := g.call("threads_get_conversation", map[string]any{"thread_id": "t1", "reverse": true})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "# Conversation for t1 (2)\n\n"+
		"**[r1]** @ann\n> nice\n> post\n---\n"+
		"**[r2]** @unknown 🙈\n> spam\n---", res.Text())

	js := g.call("threads_get_conversation", map[string]any{"thread_id": "t1", "reverse": true, "response_format": "json"})
	assert.Contains(t, js.Text(), `"thread_id": "t1"`)
	assert.Contains(t, js.Text(), `"count": 2`)
}

func TestHideReply(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/r1/manage_reply", r.URL.Path)
		assert.Equal(t, "false", r.URL.Query().Get("hide"))
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	res := g.call("threads_hide_reply", map[string]any{"reply_id": "r1", "hide": false})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "✅ Reply r1 unhidden successfully.", res.Text())
}

func TestHideReply_NotUpdated(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false}`)
	})

	res := g.call("threads_hide_reply", map[string]any{"reply_id": "r1", "hide": true})
	require.True(t, res.IsError)
	assert.Equal(t, "Error: Threads API error: reply r1 was not updated", res.Text())
}

func TestInsights(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
		case "/t1/insights":
			assert.Equal(t, mediaMetrics, r.URL.Query().Get("metric"))
			writeJSON(w, http.StatusOK, `{"data":[
				{"name":"views","title":"Views","values":[{"value":120}]},
				{"name":"likes","values":[]}
			]}`)
		case "/u1/threads_insights":
			assert.Equal(t, userMetrics, r.URL.Query().Get("metric"))
			assert.Equal(t, "1700000000", r.URL.Query().Get("since"))
			assert.False(t, r.URL.Query().Has("until"))
			writeJSON(w, http.StatusOK, `{"data":[{"name":"followers_count","title":"Followers","total_value":{"value":42}}]}`)
		}
	})

	post := g.call("threads_get_post_insights", map[string]any{"thread_id": "t1"})
	require.False(t, post.IsError, post.Text())
	assert.Equal(t, "# Post Insights: t1\n\n- **Views**: 120\n- **likes**: N/A", post.Text())

	account := g.call("threads_get_account_insights", map[string]any{"since": 1700000000})
	require.False(t, account.IsError, account.Text())
	assert.Equal(t, "# Account Insights\n\n- **Followers**: 42", account.Text())
}

func TestInsights_Empty(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})

	for _, tc := range []struct {
		tool string
		args map[string]any
	}{
		{"threads_get_post_insights", map[string]any{"thread_id": "t1"}},
		{"threads_get_account_insights", map[string]any{}},
	} {
		md := g.call(tc.tool, tc.args)
		jsonArgs := map[string]any{"response_format": "json"}
		for k, v := range tc.args {
			jsonArgs[k] = v
		}
		js := g.call(tc.tool, jsonArgs)

		assert.False(t, md.IsError, tc.tool)
		assert.Equal(t, render.Empty("insights"), md.Text(), tc.tool)
		assert.Equal(t, md.Text(), js.Text(), tc.tool)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
	})

	_, err := g.client.Search(context.Background(), " \t ", SearchFilter{})
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.KindValidation))
	assert.Empty(t, g.recorded())
}

func TestPublishingLimit(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/me" {
			writeJSON(w, http.StatusOK, `{"id":"u1"}`)
			return
		}
		assert.Equal(t, limitFields, r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, `{"data":[{"quota_usage":25,"config":{"quota_total":250,"quota_duration":86400},"reply_quota_usage":0}]}`)
	})

	res := g.call("threads_get_publishing_limit", nil)
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "# Publishing Limit Status\n\n"+
		"📝 **Posts**: 25 / 250 (10% used)\n"+
		"💬 **Replies**: 0 / 1000 (0% used)\n\n"+
		"Posts remaining: 225\n"+
		"Replies remaining: 1000", res.Text())
}

func TestProfile(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, profileFields, r.URL.Query().Get("fields"))
		writeJSON(w, http.StatusOK, `{"id":"u1","username":"gopher","name":"Go Pher","is_verified":true}`)
	})

	res := g.call("threads_get_profile", nil)
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "# @gopher ✅\n\n**Name**: Go Pher\n**ID**: u1", res.Text())

	id, err := g.client.UserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
	assert.Equal(t, 1, g.count("GET /me"))
}

func TestDeletePost(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/t1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})

	res := g.call("threads_delete_post", map[string]any{"thread_id": "t1"})
	require.False(t, res.IsError, res.Text())
	assert.Equal(t, "✅ Post t1 deleted successfully.", res.Text())
}

func TestCatalog(t *testing.T) {
	g := newGraph(t, func(w http.ResponseWriter, r *http.Request) {})
	defs := g.srv.Tools()
	require.Len(t, defs, 13)

	byName := map[string]mcpserver.ToolDef{}
	for _, d := range defs {
		byName[d.Name] = d
		assert.True(t, d.Annotations.OpenWorldHint, d.Name)
		assert.Equal(t, false, d.InputSchema["additionalProperties"], d.Name)
	}
	assert.True(t, byName["threads_delete_post"].Annotations.DestructiveHint)
	assert.True(t, byName["threads_delete_post"].Annotations.IdempotentHint)
	assert.False(t, byName["threads_create_post"].Annotations.IdempotentHint)
	assert.False(t, byName["threads_reply"].Annotations.ReadOnlyHint)
	assert.True(t, byName["threads_hide_reply"].Annotations.IdempotentHint)
	assert.True(t, byName["threads_get_conversation"].Annotations.ReadOnlyHint)
}
