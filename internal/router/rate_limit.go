package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// memoryLimiterMaxKeys 进程内限流器的 key 上限，超过后淘汰空闲的 key
const memoryLimiterMaxKeys = 10000

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 频率限制中间件
// 配置了 Redis 时按固定窗口计数，多实例共享；未配置时退化为进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var local *memoryLimiter
	if client == nil {
		local = newMemoryLimiter(rule)
	}

	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		var (
			allowed     bool
			waitSeconds int
			err         error
		)
		if local != nil {
			allowed, waitSeconds = local.allow(key)
		} else {
			allowed, waitSeconds, err = redisAllow(c, client, rule, key)
		}
		if err != nil {
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}
		if !allowed {
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, waitSeconds)
			response.Error(c, response.CodeTooManyRequests, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisAllow(c *gin.Context, client *redis.Client, rule RateLimitRule, key string) (bool, int, error) {
	result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
	if err != nil {
		return false, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return false, 0, fmt.Errorf("unexpected rate limit result: %v", result)
	}
	count, ok := toInt64(values[0])
	if !ok {
		return false, 0, fmt.Errorf("unexpected rate limit counter: %v", values[0])
	}
	if count <= int64(rule.MaxRequests) {
		return true, 0, nil
	}
	ttlSeconds, _ := toInt64(values[1])
	waitSeconds := int(ttlSeconds)
	if waitSeconds < 1 {
		waitSeconds = rule.WindowSeconds
	}
	return false, waitSeconds, nil
}

// memoryLimiter 进程内按 key 的令牌桶，窗口内最多 MaxRequests 次
type memoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
	limit   rate.Limit
	burst   int
	window  time.Duration
	maxKeys int
	now     func() time.Time
}

type memoryBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newMemoryLimiter(rule RateLimitRule) *memoryLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &memoryLimiter{
		buckets: make(map[string]*memoryBucket),
		limit:   rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:   rule.MaxRequests,
		window:  window,
		maxKeys: memoryLimiterMaxKeys,
		now:     time.Now,
	}
}

func (m *memoryLimiter) allow(key string) (bool, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	bucket, ok := m.buckets[key]
	if !ok {
		if len(m.buckets) >= m.maxKeys {
			m.evict(now)
		}
		bucket = &memoryBucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = bucket
	}
	bucket.lastSeen = now

	reservation := bucket.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, int(math.Ceil(delay.Seconds()))
}

// evict 先清理超过一个窗口未访问的 key，其令牌桶早已回满；
// 仍然满额时淘汰最久未访问的一个，正在受限的 key 不会被整体重置
func (m *memoryLimiter) evict(now time.Time) {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, bucket := range m.buckets {
		if now.Sub(bucket.lastSeen) >= m.window {
			delete(m.buckets, key)
			continue
		}
		if oldestKey == "" || bucket.lastSeen.Before(oldestAt) {
			oldestKey, oldestAt = key, bucket.lastSeen
		}
	}
	if len(m.buckets) >= m.maxKeys && oldestKey != "" {
		delete(m.buckets, oldestKey)
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	default:
		return 0, false
	}
}
