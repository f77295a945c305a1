package models

import "time"

// Reading 蜂箱传感器读数（从 Redis Streams 读取，与采集端保持一致）
// 读数一经接收即不可变；同一蜂箱的读数按时间戳非递减顺序到达
type Reading struct {
	HiveID    string    `json:"hive_id"`
	Timestamp time.Time `json:"timestamp"`

	// 传感器数值
	TemperatureC float64 `json:"temperature_c"` // 箱内温度（°C）
	HumidityPct  float64 `json:"humidity_pct"`  // 相对湿度（%）
	WeightKg     float64 `json:"weight_kg"`     // 整箱重量（kg）
	SoundDB      float64 `json:"sound_db"`      // 声级（dB）
	CO2PPM       float64 `json:"co2_ppm"`       // CO2 浓度（ppm）
	SwarmRisk    float64 `json:"swarm_risk"`    // 分蜂风险评分（0-1）
	BatteryPct   float64 `json:"battery_pct"`   // 电池电量（%）

	// 每日增重（kg）。采集端在一天的首个读数前无法计算，此时为 nil
	// nil 表示"未知"，绝不能当作 0 参与评估
	DailyGainKg *float64 `json:"daily_gain_kg,omitempty"`
}
