package models

import "time"

// ThresholdConfig 单个蜂箱的报警阈值配置（对应 hive_thresholds 表，每箱一行）
// 引擎侧只读：由外部管理端写入，引擎按需加载并缓存
type ThresholdConfig struct {
	HiveID string `json:"hive_id" db:"hive_id"`

	// 温度（°C）
	TempMax float64 `json:"temp_max" db:"temp_max"`
	TempMin float64 `json:"temp_min" db:"temp_min"`

	// 湿度（%）
	HumidityMax float64 `json:"humidity_max" db:"humidity_max"`
	HumidityMin float64 `json:"humidity_min" db:"humidity_min"`

	// 重量下降速率（kg/小时）
	MaxWeightDropPerHourKg float64 `json:"max_weight_drop_per_hour_kg" db:"max_weight_drop_per_hour_kg"`

	// 声级（dB）：高于 SoundMax 或低于 SoundMin 均为异常
	SoundMax float64 `json:"sound_max" db:"sound_max"`
	SoundMin float64 `json:"sound_min" db:"sound_min"`

	// CO2（ppm）
	CO2Max float64 `json:"co2_max" db:"co2_max"`

	// 分蜂风险评分上限
	SwarmRiskMax float64 `json:"swarm_risk_max" db:"swarm_risk_max"`

	// 电池电量下限（%）
	BatteryMin float64 `json:"battery_min" db:"battery_min"`

	// 每日增重下限（kg）
	DailyGainMinKg float64 `json:"daily_gain_min_kg" db:"daily_gain_min_kg"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
