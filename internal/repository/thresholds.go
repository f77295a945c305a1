package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mnmalikdev/beelive-backend/internal/models"

	"go.uber.org/zap"
)

// ThresholdsRepository 阈值配置仓库（引擎侧只读）
type ThresholdsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewThresholdsRepository 创建阈值配置仓库
func NewThresholdsRepository(db *sql.DB, logger *zap.Logger) *ThresholdsRepository {
	return &ThresholdsRepository{
		db:     db,
		logger: logger,
	}
}

// GetThresholds 按蜂箱ID获取阈值配置
// 配置行不存在返回 (nil, nil)：缺失配置是降级场景，不是查询错误
func (r *ThresholdsRepository) GetThresholds(ctx context.Context, hiveID string) (*models.ThresholdConfig, error) {
	if hiveID == "" {
		return nil, fmt.Errorf("hive_id is required")
	}

	query := `
		SELECT
			hive_id,
			temp_max,
			temp_min,
			humidity_max,
			humidity_min,
			max_weight_drop_per_hour_kg,
			sound_max,
			sound_min,
			co2_max,
			swarm_risk_max,
			battery_min,
			daily_gain_min_kg,
			updated_at
		FROM hive_thresholds
		WHERE hive_id = $1
	`

	var cfg models.ThresholdConfig
	err := r.db.QueryRowContext(ctx, query, hiveID).Scan(
		&cfg.HiveID,
		&cfg.TempMax,
		&cfg.TempMin,
		&cfg.HumidityMax,
		&cfg.HumidityMin,
		&cfg.MaxWeightDropPerHourKg,
		&cfg.SoundMax,
		&cfg.SoundMin,
		&cfg.CO2Max,
		&cfg.SwarmRiskMax,
		&cfg.BatteryMin,
		&cfg.DailyGainMinKg,
		&cfg.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get thresholds: %w", err)
	}

	return &cfg, nil
}
