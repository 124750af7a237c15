package threads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RobinCoderZhao/apibridge/pkg/apierr"
)

// Publish strategies.
const (
	StrategyPoll  = "poll"
	StrategyDelay = "delay"
)

// PublishConfig controls the wait between creating a container and
// publishing it.
//
// With StrategyPoll the container status is checked after InitialDelay and
// then every PollInterval, at most MaxAttempts times and within Timeout.
// With StrategyDelay the client sleeps PostDelay (ReplyDelay for replies)
// and publishes without checking.
type PublishConfig struct {
	Strategy     string        `yaml:"strategy" env:"THREADS_PUBLISH_STRATEGY"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
	Timeout      time.Duration `yaml:"timeout"`
	PostDelay    time.Duration `yaml:"post_delay"`
	ReplyDelay   time.Duration `yaml:"reply_delay"`
}

// DefaultPublishConfig polls for up to a minute.
func DefaultPublishConfig() PublishConfig {
	return PublishConfig{
		Strategy:     StrategyPoll,
		InitialDelay: time.Second,
		PollInterval: 2 * time.Second,
		MaxAttempts:  15,
		Timeout:      60 * time.Second,
		PostDelay:    1500 * time.Millisecond,
		ReplyDelay:   time.Second,
	}
}

func (p PublishConfig) withDefaults() PublishConfig {
	def := DefaultPublishConfig()
	if p.Strategy == "" {
		p.Strategy = def.Strategy
	}
	if p.PollInterval <= 0 {
		p.PollInterval = def.PollInterval
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.Timeout <= 0 {
		p.Timeout = def.Timeout
	}
	return p
}

// Validate rejects unknown strategies.
func (p PublishConfig) Validate() error {
	switch p.Strategy {
	case "", StrategyPoll, StrategyDelay:
		return nil
	default:
		return fmt.Errorf("publish strategy %q: must be %s or %s", p.Strategy, StrategyPoll, StrategyDelay)
	}
}

// CarouselItem is one image or video of a carousel post.
type CarouselItem struct {
	ImageURL string `json:"image_url,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
}

// NewPost describes a new top-level post.
type NewPost struct {
	Text         string
	ImageURL     string
	VideoURL     string
	ReplyControl string
	Carousel     []CarouselItem
}

// CreatePost creates and publishes a post, returning the published id. A
// failed publish is returned as is; the container is not re-created.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (string, error) {
	ct := Container{
		Text:         post.Text,
		ImageURL:     post.ImageURL,
		VideoURL:     post.VideoURL,
		ReplyControl: post.ReplyControl,
	}

	if len(post.Carousel) > 0 {
		children, err := c.createCarouselItems(ctx, post.Carousel)
		if err != nil {
			return "", err
		}
		ct = Container{
			Text:         post.Text,
			ReplyControl: post.ReplyControl,
			Carousel:     true,
			Children:     children,
		}
	}

	containerID, err := c.CreateContainer(ctx, ct)
	if err != nil {
		return "", err
	}
	if err := c.settle(ctx, containerID, c.publish.PostDelay); err != nil {
		return "", err
	}
	return c.PublishContainer(ctx, containerID)
}

// Reply publishes text as a reply to threadID.
func (c *Client) Reply(ctx context.Context, threadID, text string) (string, error) {
	containerID, err := c.CreateContainer(ctx, Container{Text: text, ReplyToID: threadID})
	if err != nil {
		return "", err
	}
	if err := c.settle(ctx, containerID, c.publish.ReplyDelay); err != nil {
		return "", err
	}
	return c.PublishContainer(ctx, containerID)
}

func (c *Client) createCarouselItems(ctx context.Context, items []CarouselItem) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id, err := c.CreateContainer(ctx, Container{
			ImageURL:       item.ImageURL,
			VideoURL:       item.VideoURL,
			IsCarouselItem: true,
		})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	// Items are checked individually when polling; the delay strategy waits
	// once before the carousel container is published.
	if c.publish.Strategy == StrategyPoll {
		for _, id := range ids {
			if err := c.waitReady(ctx, id); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

// settle waits until containerID can be published under the configured
// strategy.
func (c *Client) settle(ctx context.Context, containerID string, delay time.Duration) error {
	if c.publish.Strategy == StrategyDelay {
		return c.sleep(ctx, delay)
	}
	return c.waitReady(ctx, containerID)
}

// waitReady polls the container until it finishes, fails or the attempt
// budget runs out.
func (c *Client) waitReady(ctx context.Context, containerID string) error {
	p := c.publish
	pollCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	if err := c.sleep(pollCtx, p.InitialDelay); err != nil {
		return c.pollAborted(ctx, pollCtx, containerID, 0, "", err)
	}

	last := ""
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		st, err := c.ContainerStatus(pollCtx, containerID)
		if err != nil {
			return c.pollAborted(ctx, pollCtx, containerID, attempt, last, err)
		}
		last = st.Status
		c.logger.Debug("container status", "container", containerID, "status", st.Status, "attempt", attempt)

		switch st.Status {
		case StatusFinished, StatusPublished:
			return nil
		case StatusError, StatusExpired:
			msg := st.ErrorMessage
			if msg == "" {
				msg = "no details reported"
			}
			return &apierr.Error{
				Kind:    apierr.KindUpstream,
				Message: fmt.Sprintf("Threads API error: container %s is %s: %s", containerID, st.Status, msg),
			}
		}

		if attempt < p.MaxAttempts {
			if err := c.sleep(pollCtx, p.PollInterval); err != nil {
				return c.pollAborted(ctx, pollCtx, containerID, attempt, last, err)
			}
		}
	}
	return notReady(containerID, p.MaxAttempts, last)
}

// pollAborted reports an interrupted wait. Running out of the polling budget
// is ContainerNotReady; anything else, including cancellation by the caller,
// is returned unchanged.
func (c *Client) pollAborted(parent, pollCtx context.Context, containerID string, attempts int, last string, err error) error {
	if parent.Err() == nil && errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
		return notReady(containerID, attempts, last)
	}
	return err
}

func notReady(containerID string, attempts int, last string) error {
	if last == "" {
		last = "unknown"
	}
	return &apierr.Error{
		Kind: apierr.KindContainerNotReady,
		Message: fmt.Sprintf("Container %s was not ready after %d status checks (last status: %s). "+
			"Nothing was published; try again in a few minutes.", containerID, attempts, last),
	}
}
