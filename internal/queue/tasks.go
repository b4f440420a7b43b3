package queue

import (
	"encoding/json"

	"github.com/blogicum-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskFeedInvalidate 定时发布到点后清除公开列表缓存
	TaskFeedInvalidate = constants.TaskFeedInvalidate
)

// FeedInvalidatePayload 缓存清除任务载荷
type FeedInvalidatePayload struct {
	PostID uint   `json:"post_id"`
	Reason string `json:"reason"`
}

// NewFeedInvalidateTask 创建缓存清除任务
func NewFeedInvalidateTask(payload FeedInvalidatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFeedInvalidate, body), nil
}

// ParseFeedInvalidatePayload 解析缓存清除任务载荷
func ParseFeedInvalidatePayload(task *asynq.Task) (FeedInvalidatePayload, error) {
	var payload FeedInvalidatePayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
