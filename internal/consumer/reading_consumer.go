package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/config"
	"github.com/mnmalikdev/beelive-backend/internal/metrics"
	"github.com/mnmalikdev/beelive-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// readBlock 单次 XREADGROUP 的阻塞时长
const readBlock = 5 * time.Second

// Evaluator 报警评估器接口
type Evaluator interface {
	// Evaluate 评估一条读数，返回本次产生的状态转换
	Evaluate(ctx context.Context, reading *models.Reading) ([]models.Transition, error)
}

// ReadingConsumer 读数消费者（消费 Redis Streams 上的摄入流）
// 每条读数恰好送入评估器一次；解码失败的消息记日志后确认，不会阻塞流
type ReadingConsumer struct {
	config      *config.Config
	redisClient *redis.Client
	cache       *CacheManager
	logger      *zap.Logger
}

// NewReadingConsumer 创建读数消费者
func NewReadingConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	cache *CacheManager,
	logger *zap.Logger,
) *ReadingConsumer {
	return &ReadingConsumer{
		config:      cfg,
		redisClient: redisClient,
		cache:       cache,
		logger:      logger,
	}
}

// Start 启动消费循环，直到上下文取消
func (c *ReadingConsumer) Start(ctx context.Context, evaluator Evaluator) error {
	stream := c.config.Alarm.Streams.ReadingsStream
	group := c.config.Alarm.Streams.ReadingsGroup

	if err := c.ensureGroup(ctx, stream, group); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	c.logger.Info("Reading consumer started",
		zap.String("stream", stream),
		zap.String("group", group),
		zap.String("consumer", c.config.Alarm.Streams.ConsumerName),
	)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Reading consumer stopped")
			return nil
		default:
		}

		streams, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    group,
			Consumer: c.config.Alarm.Streams.ConsumerName,
			Streams:  []string{stream, ">"},
			Count:    c.config.Alarm.Streams.ReadBatchSize,
			Block:    readBlock,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue // 窗口内无新消息
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("Reading consumer stopped")
				return nil
			}
			c.logger.Error("Failed to read from stream",
				zap.String("stream", stream),
				zap.Error(err),
			)
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.processMessage(ctx, evaluator, msg)

				// 成功与否都确认：引擎优先可用性，不重投毒消息
				if err := c.redisClient.XAck(ctx, stream, group, msg.ID).Err(); err != nil {
					c.logger.Error("Failed to ack message",
						zap.String("message_id", msg.ID),
						zap.Error(err),
					)
				}
			}
		}
	}
}

// processMessage 处理一条流消息：解码 → 评估 → 更新报警缓存
func (c *ReadingConsumer) processMessage(ctx context.Context, evaluator Evaluator, msg redis.XMessage) {
	reading, err := decodeReading(msg.Values)
	if err != nil {
		metrics.ReadingsConsumed.WithLabelValues("decode_error").Inc()
		c.logger.Error("Failed to decode reading",
			zap.String("message_id", msg.ID),
			zap.Error(err),
		)
		return
	}

	transitions, err := evaluator.Evaluate(ctx, reading)
	if err != nil {
		metrics.ReadingsConsumed.WithLabelValues("evaluate_error").Inc()
		c.logger.Error("Failed to evaluate reading",
			zap.String("hive_id", reading.HiveID),
			zap.Error(err),
		)
		return
	}
	metrics.ReadingsConsumed.WithLabelValues("ok").Inc()

	// 只缓存本次新触发的报警
	triggered := make([]models.Transition, 0, len(transitions))
	for _, t := range transitions {
		if t.Direction == models.DirectionTriggered {
			triggered = append(triggered, t)
		}
	}
	if len(triggered) > 0 {
		if err := c.cache.UpdateAlertCache(ctx, reading.HiveID, triggered); err != nil {
			c.logger.Error("Failed to update alert cache",
				zap.String("hive_id", reading.HiveID),
				zap.Error(err),
			)
		}
	}
}

// decodeReading 从流消息解码读数（JSON 文档在 "data" 字段，与采集端约定一致）
func decodeReading(values map[string]interface{}) (*models.Reading, error) {
	raw, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("data field missing or not a string")
	}

	var reading models.Reading
	if err := json.Unmarshal([]byte(raw), &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}
	if reading.HiveID == "" {
		return nil, fmt.Errorf("reading has no hive_id")
	}

	return &reading, nil
}

// ensureGroup 创建消费者组（已存在则忽略）
func (c *ReadingConsumer) ensureGroup(ctx context.Context, stream, group string) error {
	err := c.redisClient.XGroupCreateMkStream(ctx, stream, group, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}
