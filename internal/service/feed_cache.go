package service

import (
	"context"
	"time"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/queue"
)

// invalidateFeeds 内容变更后同步清除公开列表缓存，失败只记录日志
func invalidateFeeds(ctx context.Context, reason string) {
	deleted, err := cache.InvalidateFeeds(ctx)
	if err != nil {
		logger.Warnw("feed_cache_invalidate_failed", "reason", reason, "error", err)
		return
	}
	if deleted > 0 {
		logger.Debugw("feed_cache_invalidated", "reason", reason, "deleted", deleted)
	}
}

// scheduleFeedInvalidate 定时发布的文章到点后再清一次缓存
func scheduleFeedInvalidate(client *queue.Client, postID uint, pubDate, now time.Time) {
	if client == nil || !client.Enabled() || !pubDate.After(now) {
		return
	}
	payload := queue.FeedInvalidatePayload{PostID: postID, Reason: "scheduled_publish"}
	if err := client.EnqueueFeedInvalidate(payload, pubDate); err != nil {
		logger.Warnw("feed_invalidate_enqueue_failed", "post_id", postID, "pub_date", pubDate, "error", err)
	}
}
