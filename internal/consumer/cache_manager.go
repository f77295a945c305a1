package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/config"
	"github.com/mnmalikdev/beelive-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheManager 活跃报警缓存管理器
// 每次评估后把新触发的转换写入短 TTL 缓存，供仪表盘等宿主组件读取
type CacheManager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewCacheManager 创建缓存管理器
func NewCacheManager(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) *CacheManager {
	return &CacheManager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// alertKey 构建报警缓存键
func (c *CacheManager) alertKey(hiveID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.Alarm.Cache.AlertKeyPrefix,
		hiveID,
		c.config.Alarm.Cache.AlertSuffix,
	)
}

// UpdateAlertCache 更新蜂箱的活跃报警缓存（带 TTL）
func (c *CacheManager) UpdateAlertCache(ctx context.Context, hiveID string, alerts []models.Transition) error {
	key := c.alertKey(hiveID)

	jsonData, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alert data: %w", err)
	}

	err = c.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(c.config.Alarm.Cache.AlertTTL)*time.Second,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set alert cache: %w", err)
	}

	c.logger.Debug("Updated alert cache",
		zap.String("hive_id", hiveID),
		zap.String("key", key),
		zap.Int("alert_count", len(alerts)),
	)

	return nil
}

// GetAlertCache 读取蜂箱的活跃报警缓存
func (c *CacheManager) GetAlertCache(ctx context.Context, hiveID string) ([]models.Transition, error) {
	key := c.alertKey(hiveID)

	val, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("alert cache not found for hive: %s", hiveID)
		}
		return nil, fmt.Errorf("failed to get alert cache: %w", err)
	}

	var alerts []models.Transition
	if err := json.Unmarshal([]byte(val), &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alert data: %w", err)
	}

	return alerts, nil
}
