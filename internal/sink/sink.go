package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/models"
	"github.com/mnmalikdev/beelive-backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Sink 状态转换接收器：审计写入 PostgreSQL，发布到 Redis Streams
// 两步互相独立，各自的失败由调用方（评估器边界）捕获并记日志
type Sink struct {
	transitionsRepo *repository.TransitionsRepository
	redisClient     *redis.Client
	stream          string
	logger          *zap.Logger
}

// NewSink 创建接收器
// stream 为转换事件发布的 Redis Stream 键，如 "hive:transitions"
func NewSink(
	transitionsRepo *repository.TransitionsRepository,
	redisClient *redis.Client,
	stream string,
	logger *zap.Logger,
) *Sink {
	return &Sink{
		transitionsRepo: transitionsRepo,
		redisClient:     redisClient,
		stream:          stream,
		logger:          logger,
	}
}

// Record 持久化一条审计记录
func (s *Sink) Record(ctx context.Context, t *models.Transition) error {
	return s.transitionsRepo.CreateTransition(ctx, t)
}

// Publish 向转换事件流发布一条消息（XADD）
// Streams 只接受字符串值，字段逐一扁平化
func (s *Sink) Publish(ctx context.Context, t *models.Transition) error {
	values := map[string]interface{}{
		"event_id":  t.EventID,
		"hive_id":   t.HiveID,
		"kind":      string(t.Kind),
		"direction": string(t.Direction),
		"message":   t.Message,
		"value":     fmt.Sprintf("%f", t.Value),
		"timestamp": fmt.Sprintf("%d", t.TriggeredAt.Unix()),
	}

	id, err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: values,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish transition: %w", err)
	}

	s.logger.Debug("Transition published",
		zap.String("stream", s.stream),
		zap.String("message_id", id),
		zap.String("event_id", t.EventID),
	)
	return nil
}

// PublishedAt 流消息时间戳解析辅助（订阅侧使用）
func PublishedAt(values map[string]interface{}) (time.Time, error) {
	raw, ok := values["timestamp"].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp field missing")
	}
	var unix int64
	if _, err := fmt.Sscanf(raw, "%d", &unix); err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	return time.Unix(unix, 0), nil
}
