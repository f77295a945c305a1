package evaluator

import (
	"github.com/mnmalikdev/beelive-backend/internal/metrics"
	"github.com/mnmalikdev/beelive-backend/internal/models"

	"go.uber.org/zap"
)

// runChecks 对一条读数执行全部十项检查
// 各检查只读写自己类型的状态，互相独立；每次调用每个类型至多产生一条转换
// 调用方必须已持有该蜂箱的锁
func (e *Evaluator) runChecks(h *hiveStates, r *models.Reading, cfg *models.ThresholdConfig) []models.Transition {
	builder := NewTransitionBuilder(r.HiveID)
	at := r.Timestamp

	var transitions []models.Transition
	collect := func(kind models.AlertKind, res outcome, value, threshold float64) {
		switch res {
		case outcomeTriggered:
			transitions = append(transitions, builder.Build(kind, models.DirectionTriggered, value, threshold, at))
		case outcomeCleared:
			transitions = append(transitions, builder.Build(kind, models.DirectionCleared, value, threshold, at))
		case outcomeSuppressed:
			metrics.TransitionsSuppressed.WithLabelValues(string(kind)).Inc()
			e.logger.Debug("Transition suppressed by debounce window",
				zap.String("hive_id", r.HiveID),
				zap.String("kind", string(kind)),
				zap.Float64("value", value),
			)
		}
	}

	// 温度
	collect(models.KindTempHigh,
		applyBadAbove(h.state(models.KindTempHigh), r.TemperatureC, cfg.TempMax, at),
		r.TemperatureC, cfg.TempMax)
	collect(models.KindTempLow,
		applyBadBelow(h.state(models.KindTempLow), r.TemperatureC, cfg.TempMin, at),
		r.TemperatureC, cfg.TempMin)

	// 湿度（高低两个独立状态）
	collect(models.KindHumidityHigh,
		applyBadAbove(h.state(models.KindHumidityHigh), r.HumidityPct, cfg.HumidityMax, at),
		r.HumidityPct, cfg.HumidityMax)
	collect(models.KindHumidityLow,
		applyBadBelow(h.state(models.KindHumidityLow), r.HumidityPct, cfg.HumidityMin, at),
		r.HumidityPct, cfg.HumidityMin)

	// 重量下降：基于相邻读数的导数检查
	// 跟踪槽位无论能否评估都会被当前读数覆盖
	if rate, ok := h.weight.Observe(r.WeightKg, at); ok {
		collect(models.KindWeightDrop,
			applyBadAbove(h.state(models.KindWeightDrop), rate, cfg.MaxWeightDropPerHourKg, at),
			rate, cfg.MaxWeightDropPerHourKg)
	}

	// 声级：双向越界，单一状态
	soundLimit := cfg.SoundMax
	if r.SoundDB < cfg.SoundMin {
		soundLimit = cfg.SoundMin
	}
	collect(models.KindSoundAnomaly,
		applyBand(h.state(models.KindSoundAnomaly), r.SoundDB, cfg.SoundMin, cfg.SoundMax, at),
		r.SoundDB, soundLimit)

	// CO2
	collect(models.KindCO2High,
		applyBadAbove(h.state(models.KindCO2High), r.CO2PPM, cfg.CO2Max, at),
		r.CO2PPM, cfg.CO2Max)

	// 分蜂风险
	collect(models.KindSwarmRisk,
		applyBadAbove(h.state(models.KindSwarmRisk), r.SwarmRisk, cfg.SwarmRiskMax, at),
		r.SwarmRisk, cfg.SwarmRiskMax)

	// 电池电量
	collect(models.KindBatteryLow,
		applyBadBelow(h.state(models.KindBatteryLow), r.BatteryPct, cfg.BatteryMin, at),
		r.BatteryPct, cfg.BatteryMin)

	// 每日增重：缺失表示未知，整个检查跳过，不触碰状态
	if r.DailyGainKg != nil {
		collect(models.KindHoneyGainLow,
			applyBadBelow(h.state(models.KindHoneyGainLow), *r.DailyGainKg, cfg.DailyGainMinKg, at),
			*r.DailyGainKg, cfg.DailyGainMinKg)
	}

	return transitions
}
