package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/queue"
	"github.com/blogicum-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB, *int) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	calls := 0
	consumer := NewConsumer(&provider.Container{
		Config:   &config.Config{},
		PostRepo: repository.NewPostRepository(db),
	})
	consumer.invalidate = func(context.Context) (int64, error) {
		calls++
		return 3, nil
	}
	return consumer, db, &calls
}

func TestHandleFeedInvalidateClearsCache(t *testing.T) {
	consumer, db, calls := newTestConsumer(t)
	author := models.User{Username: "writer", PasswordHash: "x"}
	if err := db.Create(&author).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	post := models.Post{Title: "scheduled", Text: "body", AuthorID: author.ID, PubDate: time.Now().UTC(), IsPublished: true}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	task, err := queue.NewFeedInvalidateTask(queue.FeedInvalidatePayload{PostID: post.ID, Reason: "scheduled_publish"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleFeedInvalidate(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("invalidate calls want 1 got %d", *calls)
	}
}

func TestHandleFeedInvalidateSkipsDeletedPost(t *testing.T) {
	consumer, _, calls := newTestConsumer(t)
	task, err := queue.NewFeedInvalidateTask(queue.FeedInvalidatePayload{PostID: 404})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleFeedInvalidate(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if *calls != 0 {
		t.Fatalf("deleted post must not trigger invalidation, got %d calls", *calls)
	}
}

func TestHandleFeedInvalidatePropagatesErrors(t *testing.T) {
	consumer, _, _ := newTestConsumer(t)
	wantErr := errors.New("redis down")
	consumer.invalidate = func(context.Context) (int64, error) {
		return 0, wantErr
	}
	task, err := queue.NewFeedInvalidateTask(queue.FeedInvalidatePayload{Reason: "manual"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleFeedInvalidate(context.Background(), task); !errors.Is(err, wantErr) {
		t.Fatalf("want %v got %v", wantErr, err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatalf("expected error for disabled queue")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("expected error for nil consumer")
	}
}
