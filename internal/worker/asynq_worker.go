package worker

import (
	"context"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	invalidate func(ctx context.Context) (int64, error)
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container:  c,
		invalidate: cache.InvalidateFeeds,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskFeedInvalidate, c.handleFeedInvalidate)
}

// handleFeedInvalidate 定时文章到点，公开列表缓存整体失效
func (c *Consumer) handleFeedInvalidate(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_feed_invalidate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseFeedInvalidatePayload(task)
	if err != nil {
		logger.Warnw("worker_feed_invalidate_unmarshal_failed", "error", err)
		return err
	}

	// 文章已删除时删除操作本身已清过缓存
	if payload.PostID != 0 && c.Container != nil && c.PostRepo != nil {
		post, err := c.PostRepo.GetByID(ctx, payload.PostID)
		if err != nil {
			logger.Warnw("worker_feed_invalidate_fetch_post_failed", "post_id", payload.PostID, "error", err)
			return err
		}
		if post == nil {
			logger.Debugw("worker_feed_invalidate_skip_post_missing", "post_id", payload.PostID)
			return nil
		}
	}

	invalidate := c.invalidate
	if invalidate == nil {
		invalidate = cache.InvalidateFeeds
	}
	removed, err := invalidate(ctx)
	if err != nil {
		logger.Warnw("worker_feed_invalidate_failed", "post_id", payload.PostID, "error", err)
		return err
	}
	logger.Infow("worker_feed_invalidated",
		"post_id", payload.PostID,
		"reason", payload.Reason,
		"removed_keys", removed,
	)
	return nil
}
