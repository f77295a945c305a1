package evaluator

import (
	"fmt"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/models"

	"github.com/google/uuid"
)

// kindMessages 各报警类型的消息模板（%v = 触发数值，%v = 配置阈值）
var kindMessages = map[models.AlertKind]struct {
	triggered string
	cleared   string
}{
	models.KindTempHigh: {
		triggered: "hive temperature %.1f°C above limit %.1f°C",
		cleared:   "hive temperature %.1f°C back within limit %.1f°C",
	},
	models.KindTempLow: {
		triggered: "hive temperature %.1f°C below limit %.1f°C",
		cleared:   "hive temperature %.1f°C back within limit %.1f°C",
	},
	models.KindHumidityHigh: {
		triggered: "humidity %.1f%% above limit %.1f%%",
		cleared:   "humidity %.1f%% back within limit %.1f%%",
	},
	models.KindHumidityLow: {
		triggered: "humidity %.1f%% below limit %.1f%%",
		cleared:   "humidity %.1f%% back within limit %.1f%%",
	},
	models.KindWeightDrop: {
		triggered: "weight dropping %.2f kg/h, faster than limit %.2f kg/h",
		cleared:   "weight drop rate %.2f kg/h back within limit %.2f kg/h",
	},
	models.KindSoundAnomaly: {
		triggered: "sound level %.1f dB outside normal band (limit %.1f dB)",
		cleared:   "sound level %.1f dB back inside normal band (limit %.1f dB)",
	},
	models.KindCO2High: {
		triggered: "CO2 %.0f ppm above limit %.0f ppm",
		cleared:   "CO2 %.0f ppm back within limit %.0f ppm",
	},
	models.KindSwarmRisk: {
		triggered: "swarm risk score %.2f above limit %.2f",
		cleared:   "swarm risk score %.2f back within limit %.2f",
	},
	models.KindBatteryLow: {
		triggered: "battery %.0f%% below limit %.0f%%",
		cleared:   "battery %.0f%% back within limit %.0f%%",
	},
	models.KindHoneyGainLow: {
		triggered: "daily gain %.2f kg below limit %.2f kg",
		cleared:   "daily gain %.2f kg back within limit %.2f kg",
	},
}

// TransitionBuilder 状态转换事件构建器（每次评估一个，绑定蜂箱）
type TransitionBuilder struct {
	hiveID string
}

// NewTransitionBuilder 创建转换事件构建器
func NewTransitionBuilder(hiveID string) *TransitionBuilder {
	return &TransitionBuilder{hiveID: hiveID}
}

// Build 构建一条转换事件
// threshold 是配置中的触发阈值，仅用于生成可读消息
func (b *TransitionBuilder) Build(
	kind models.AlertKind,
	direction models.Direction,
	value float64,
	threshold float64,
	at time.Time,
) models.Transition {
	tmpl := kindMessages[kind]
	format := tmpl.triggered
	if direction == models.DirectionCleared {
		format = tmpl.cleared
	}

	return models.Transition{
		EventID:     uuid.New().String(),
		HiveID:      b.hiveID,
		Kind:        kind,
		Direction:   direction,
		Message:     fmt.Sprintf(format, value, threshold),
		Value:       value,
		TriggeredAt: at,
	}
}
