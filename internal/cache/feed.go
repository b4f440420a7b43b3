package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const feedKeyPrefix = "feed:"

// feedGenerationKey 不在 feed: 前缀下，清理旧键时不会被一并删除
const feedGenerationKey = "feed_generation"

// HomeFeedKey 首页文章列表缓存键
func HomeFeedKey(generation int64, page int) string {
	return fmt.Sprintf("%s%d:home:%d", feedKeyPrefix, generation, page)
}

// CategoryFeedKey 分类文章列表缓存键
func CategoryFeedKey(generation int64, slug string, page int) string {
	return fmt.Sprintf("%s%d:category:%s:%d", feedKeyPrefix, generation, strings.TrimSpace(slug), page)
}

// FeedGeneration 当前列表缓存代数。
// 读取方须在查库前取得代数并用它拼写入键，期间发生的失效会让该键永远不再被读取。
func FeedGeneration(ctx context.Context) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	generation, err := redisClient.Get(ctx, buildKey(feedGenerationKey)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return generation, err
}

// GetFeed 读取公开列表缓存，ttl 为 0 时视为未启用
func GetFeed(ctx context.Context, key string, ttl time.Duration, dest interface{}) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	return GetJSON(ctx, key, dest)
}

// SetFeed 写入公开列表缓存
func SetFeed(ctx context.Context, key string, ttl time.Duration, value interface{}) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, key, value, ttl)
}

// InvalidateFeeds 先推进代数再删除旧列表缓存，返回删除的键数
func InvalidateFeeds(ctx context.Context) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	if err := redisClient.Incr(ctx, buildKey(feedGenerationKey)).Err(); err != nil {
		return 0, err
	}
	return DelByPrefix(ctx, feedKeyPrefix)
}
