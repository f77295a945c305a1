package models

import "time"

// AlertKind 报警类型（封闭枚举，共十种）
type AlertKind string

const (
	KindTempHigh     AlertKind = "TEMP_HIGH"
	KindTempLow      AlertKind = "TEMP_LOW"
	KindHumidityHigh AlertKind = "HUMIDITY_HIGH"
	KindHumidityLow  AlertKind = "HUMIDITY_LOW"
	KindWeightDrop   AlertKind = "WEIGHT_DROP"
	KindSoundAnomaly AlertKind = "SOUND_ANOMALY"
	KindCO2High      AlertKind = "CO2_HIGH"
	KindSwarmRisk    AlertKind = "SWARM_RISK"
	KindBatteryLow   AlertKind = "BATTERY_LOW"
	KindHoneyGainLow AlertKind = "HONEY_GAIN_LOW"
)

// AllAlertKinds 全部报警类型（固定顺序，用于遍历和测试）
var AllAlertKinds = []AlertKind{
	KindTempHigh,
	KindTempLow,
	KindHumidityHigh,
	KindHumidityLow,
	KindWeightDrop,
	KindSoundAnomaly,
	KindCO2High,
	KindSwarmRisk,
	KindBatteryLow,
	KindHoneyGainLow,
}

// Direction 状态转换方向
type Direction string

const (
	DirectionTriggered Direction = "TRIGGERED" // 进入报警
	DirectionCleared   Direction = "CLEARED"   // 解除报警
)

// Transition 一次报警状态转换事件（对应 alert_transitions 表）
// 由评估器产生，不可变；一个 Transition 对应恰好一次审计写入和一次发布
type Transition struct {
	EventID     string    `json:"event_id" db:"event_id"`
	HiveID      string    `json:"hive_id" db:"hive_id"`
	Kind        AlertKind `json:"kind" db:"kind"`
	Direction   Direction `json:"direction" db:"direction"`
	Message     string    `json:"message" db:"message"`
	Value       float64   `json:"value" db:"value"` // 触发该转换的数值
	TriggeredAt time.Time `json:"triggered_at" db:"triggered_at"`
}

// EventType 审计行的事件类型：解除转换追加 "_CLEARED" 后缀，
// 以便同一类型的日志行可以区分进入与解除
func (t *Transition) EventType() string {
	if t.Direction == DirectionCleared {
		return string(t.Kind) + "_CLEARED"
	}
	return string(t.Kind)
}
