package queue

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueFeedInvalidate(FeedInvalidatePayload{PostID: 1}, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	var nilClient *Client
	if nilClient.Enabled() || nilClient.Close() != nil {
		t.Fatalf("nil client should be safe to use")
	}
}

func TestFeedInvalidateTaskRoundTrip(t *testing.T) {
	task, err := NewFeedInvalidateTask(FeedInvalidatePayload{PostID: 42, Reason: "scheduled_publish"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskFeedInvalidate {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseFeedInvalidatePayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.PostID != 42 || payload.Reason != "scheduled_publish" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected default addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected default server config: %+v", cfg)
	}
	at := time.Unix(1700000000, 0)
	if got := feedInvalidateTaskID(7, at); got != "feed:invalidate:7:1700000000" {
		t.Fatalf("unexpected task id: %s", got)
	}
}
