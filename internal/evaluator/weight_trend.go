package evaluator

import "time"

// weightDropMaxGap 重量下降检测仅对间隔不超过 1 小时的相邻读数有效，
// 更久的间隔静默跳过，直到出现下一对连续读数
const weightDropMaxGap = time.Hour

// WeightTrendTracker 重量趋势跟踪器
// 只记住上一条读数的重量和时间（不是滑动窗口），每个蜂箱一份
type WeightTrendTracker struct {
	prevWeightKg float64
	prevAt       time.Time
	hasPrev      bool
}

// Observe 记录当前读数并返回相对上一条读数的下降速率（kg/小时）
// 仅当 0 < Δt ≤ 1h 且重量确实下降时 ok 为 true
// 无论是否可评估，"上一条"槽位都会被当前读数覆盖
func (w *WeightTrendTracker) Observe(weightKg float64, at time.Time) (ratePerHour float64, ok bool) {
	prevWeight, prevAt, hasPrev := w.prevWeightKg, w.prevAt, w.hasPrev
	w.prevWeightKg = weightKg
	w.prevAt = at
	w.hasPrev = true

	if !hasPrev {
		return 0, false
	}

	dt := at.Sub(prevAt)
	if dt <= 0 || dt > weightDropMaxGap {
		return 0, false
	}

	drop := prevWeight - weightKg
	if drop <= 0 {
		return 0, false
	}

	return drop / dt.Hours(), true
}
