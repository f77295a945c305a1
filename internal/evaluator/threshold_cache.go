package evaluator

import (
	"context"
	"sync"

	"github.com/mnmalikdev/beelive-backend/internal/metrics"
	"github.com/mnmalikdev/beelive-backend/internal/models"

	"go.uber.org/zap"
)

// ThresholdSource 阈值配置来源（由 repository 层实现）
// 配置行不存在时返回 (nil, nil)，与查询失败区分
type ThresholdSource interface {
	GetThresholds(ctx context.Context, hiveID string) (*models.ThresholdConfig, error)
}

// ThresholdCache 阈值配置缓存
// 懒加载、按蜂箱缓存，不订阅变更通知；管理端更新配置后
// 需由宿主系统显式调用 Refresh，刷新节奏（轮询/回调/手动）由宿主决定
type ThresholdCache struct {
	source  ThresholdSource
	logger  *zap.Logger
	mu      sync.RWMutex
	configs map[string]*models.ThresholdConfig
}

// NewThresholdCache 创建阈值配置缓存
func NewThresholdCache(source ThresholdSource, logger *zap.Logger) *ThresholdCache {
	return &ThresholdCache{
		source:  source,
		logger:  logger,
		configs: make(map[string]*models.ThresholdConfig),
	}
}

// Get 获取蜂箱的阈值配置
// 未缓存时尝试加载一次；配置行不存在或加载失败返回 nil
func (c *ThresholdCache) Get(ctx context.Context, hiveID string) *models.ThresholdConfig {
	c.mu.RLock()
	cfg, ok := c.configs[hiveID]
	c.mu.RUnlock()
	if ok {
		return cfg
	}

	if err := c.Refresh(ctx, hiveID); err != nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.configs[hiveID]
}

// Refresh 重新加载蜂箱的阈值配置（幂等，阻塞读取）
// 配置行不存在不算错误：缓存不更新，下一条读数会再次尝试
func (c *ThresholdCache) Refresh(ctx context.Context, hiveID string) error {
	cfg, err := c.source.GetThresholds(ctx, hiveID)
	if err != nil {
		metrics.ThresholdLoads.WithLabelValues("error").Inc()
		c.logger.Error("Failed to load thresholds",
			zap.String("hive_id", hiveID),
			zap.Error(err),
		)
		return err
	}
	if cfg == nil {
		metrics.ThresholdLoads.WithLabelValues("missing").Inc()
		return nil
	}

	metrics.ThresholdLoads.WithLabelValues("loaded").Inc()
	c.mu.Lock()
	c.configs[hiveID] = cfg
	c.mu.Unlock()

	c.logger.Debug("Thresholds loaded",
		zap.String("hive_id", hiveID),
		zap.Time("updated_at", cfg.UpdatedAt),
	)
	return nil
}
