package evaluator

import (
	"context"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/metrics"
	"github.com/mnmalikdev/beelive-backend/internal/models"

	"go.uber.org/zap"
)

// sinkTimeout 单次审计写入/发布的超时
const sinkTimeout = 5 * time.Second

// TransitionSink 状态转换接收器（审计写入 + 对外发布）
type TransitionSink interface {
	// Record 追加一条审计记录
	Record(ctx context.Context, t *models.Transition) error
	// Publish 向下游订阅者发布转换事件
	Publish(ctx context.Context, t *models.Transition) error
}

// Evaluator 报警评估器
// 对每条读数执行十项独立检查，产生去抖、滞回稳定后的状态转换事件
type Evaluator struct {
	thresholds *ThresholdCache
	states     *StateTable
	sink       TransitionSink
	logger     *zap.Logger
}

// NewEvaluator 创建评估器
// 状态表由调用方显式传入（便于多蜂箱复用和测试隔离）
func NewEvaluator(
	thresholds *ThresholdCache,
	states *StateTable,
	sink TransitionSink,
	logger *zap.Logger,
) *Evaluator {
	return &Evaluator{
		thresholds: thresholds,
		states:     states,
		sink:       sink,
		logger:     logger,
	}
}

// Evaluate 评估一条读数，返回本次产生的状态转换（每个类型至多一条）
// 无阈值配置时降级为空操作（警告日志，下一条读数会重试加载）
// 同一蜂箱的评估由内部锁串行化：调用方只需保证读数按时间戳非递减顺序送达
func (e *Evaluator) Evaluate(ctx context.Context, reading *models.Reading) ([]models.Transition, error) {
	cfg := e.thresholds.Get(ctx, reading.HiveID)
	if cfg == nil {
		metrics.ReadingsEvaluated.WithLabelValues("skipped_no_config").Inc()
		e.logger.Warn("No thresholds configured for hive, skipping evaluation",
			zap.String("hive_id", reading.HiveID),
			zap.Time("timestamp", reading.Timestamp),
		)
		return nil, nil
	}

	h := e.states.hive(reading.HiveID)
	h.mu.Lock()
	defer h.mu.Unlock()

	transitions := e.runChecks(h, reading, cfg)
	metrics.ReadingsEvaluated.WithLabelValues("evaluated").Inc()

	// 内存状态已提交；审计与发布是尽力而为的边界 I/O，
	// 失败只记日志，不回滚、不中断其他类型的转换
	for i := range transitions {
		e.emit(ctx, &transitions[i])
	}

	return transitions, nil
}

// RefreshThresholds 显式重新加载蜂箱的阈值配置（供宿主系统在配置更新后调用）
func (e *Evaluator) RefreshThresholds(ctx context.Context, hiveID string) error {
	return e.thresholds.Refresh(ctx, hiveID)
}

// emit 将一条转换交给接收器：先审计后发布，两步的失败互相独立
func (e *Evaluator) emit(ctx context.Context, t *models.Transition) {
	metrics.TransitionsTotal.WithLabelValues(string(t.Kind), string(t.Direction)).Inc()

	rctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	err := e.sink.Record(rctx, t)
	cancel()
	if err != nil {
		metrics.SinkErrors.WithLabelValues("record").Inc()
		e.logger.Error("Failed to record transition",
			zap.String("event_id", t.EventID),
			zap.String("hive_id", t.HiveID),
			zap.String("kind", string(t.Kind)),
			zap.Error(err),
		)
	}

	pctx, cancel := context.WithTimeout(ctx, sinkTimeout)
	err = e.sink.Publish(pctx, t)
	cancel()
	if err != nil {
		metrics.SinkErrors.WithLabelValues("publish").Inc()
		e.logger.Error("Failed to publish transition",
			zap.String("event_id", t.EventID),
			zap.String("hive_id", t.HiveID),
			zap.String("kind", string(t.Kind)),
			zap.Error(err),
		)
		return
	}

	e.logger.Info("Alert transition",
		zap.String("event_id", t.EventID),
		zap.String("hive_id", t.HiveID),
		zap.String("kind", string(t.Kind)),
		zap.String("direction", string(t.Direction)),
		zap.Float64("value", t.Value),
	)
}
