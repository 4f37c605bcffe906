package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"qbsort/internal/config"
)

const userAgent = "qbsort/0.2.0"

// Event identifies a notable moment in a hook run.
type Event string

const (
	// EventRunApplied fires after every relocation step succeeded.
	EventRunApplied Event = "run_applied"
	// EventRunFailed fires when a run stops at authentication or an apply step.
	EventRunFailed Event = "run_failed"
	// EventRunNoop fires when the torrent already lived at its target path.
	EventRunNoop Event = "run_noop"
	// EventTest exercises the notification pipeline on demand.
	EventTest Event = "test"
)

// Payload carries event details referenced by the message templates.
type Payload map[string]string

// Service delivers hook events to an operator channel.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

// Publish formats and sends the event. Events without a template are
// silently dropped so callers never need to filter.
func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	data, ok := formatEvent(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, data)
}

func formatEvent(event Event, payload Payload) (message, bool) {
	get := func(key string) string {
		return strings.TrimSpace(payload[key])
	}

	switch event {
	case EventRunApplied:
		body := fmt.Sprintf("Sorted: %s", get("name"))
		if label := get("label"); label != "" {
			body = fmt.Sprintf("%s\nCategory: %s", body, label)
		}
		if target := get("target"); target != "" {
			body = fmt.Sprintf("%s\nLocation: %s", body, target)
		}
		tags := []string{"qbsort", "sorted"}
		if category := get("category"); category != "" {
			tags = append(tags, category)
		}
		return message{
			title: "qbsort - Torrent Sorted",
			body:  body,
			tags:  tags,
		}, true
	case EventRunFailed:
		reason := get("error")
		if reason == "" {
			reason = "unknown"
		}
		var builder strings.Builder
		builder.WriteString("Error")
		if name := get("name"); name != "" {
			builder.WriteString(" with ")
			builder.WriteString(name)
		}
		builder.WriteString(": ")
		builder.WriteString(reason)
		return message{
			title:    "qbsort - Error",
			body:     builder.String(),
			tags:     []string{"qbsort", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "qbsort - Test",
			body:     "Notification system test",
			tags:     []string{"qbsort", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, data message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
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

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
