// Package notify pushes generation outcomes to an ntfy topic.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/genstudio-cli/internal/version"
)

const defaultRequestTimeout = 10 * time.Second

// Service is the notification surface used by the watch flow.
type Service interface {
	NotifyGenerationCompleted(ctx context.Context, prompt, mediaURL string) error
	NotifyGenerationFailed(ctx context.Context, prompt, reason string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when a topic URL
// is configured. An empty topic returns a noop implementation.
func NewService(topic string, timeout time.Duration) Service {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopService{}
	}

	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyGenerationCompleted(ctx context.Context, prompt, mediaURL string) error {
	prompt = strings.TrimSpace(prompt)
	message := fmt.Sprintf("Generation complete: %s", prompt)
	if mediaURL != "" {
		message = fmt.Sprintf("%s\n%s", message, mediaURL)
	}

	return n.send(ctx, payload{
		title:   "Gen Studio - Complete",
		message: message,
		tags:    []string{"genstudio", "generation", "completed"},
	})
}

func (n *ntfyService) NotifyGenerationFailed(ctx context.Context, prompt, reason string) error {
	prompt = strings.TrimSpace(prompt)
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = "unknown"
	}

	return n.send(ctx, payload{
		title:    "Gen Studio - Failed",
		message:  fmt.Sprintf("Generation failed: %s\n%s", prompt, reason),
		tags:     []string{"genstudio", "generation", "failed"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Gen Studio - Test",
		message:  "Notification system test",
		tags:     []string{"genstudio", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", "genstudio-cli/"+version.Version)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

type noopService struct{}

func (noopService) NotifyGenerationCompleted(context.Context, string, string) error { return nil }
func (noopService) NotifyGenerationFailed(context.Context, string, string) error    { return nil }
func (noopService) TestNotification(context.Context) error                          { return nil }
