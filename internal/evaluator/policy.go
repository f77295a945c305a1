package evaluator

import "time"

const (
	// HysteresisFraction 滞回比例：解除线相对触发线向内偏移 5%，
	// 在触发线附近震荡的数值不会反复触发/解除
	HysteresisFraction = 0.05

	// DebounceWindow 去抖窗口：同方向两次转换之间的最小间隔
	DebounceWindow = 5 * time.Minute
)

// outcome 单次检查的结果
type outcome int

const (
	outcomeNone       outcome = iota // 条件未满足，状态不变
	outcomeTriggered                 // 进入报警
	outcomeCleared                   // 解除报警
	outcomeSuppressed                // 条件满足但被去抖抑制，状态完全不变
)

// applyBadAbove 高于阈值为异常的检查（温度过高、CO2 过高等）
// 触发：value > threshold 且未激活；解除：value < threshold*(1-h) 且已激活
//
// 去抖先于状态翻转：以上一次转换时间判定，被抑制的转换不做任何状态修改，
// LastValue 也保持旧值直到下一次未被抑制的转换（刻意保留的行为，
// 保证每类报警 5 分钟内至多一次写入）
func applyBadAbove(s *AlertState, value, threshold float64, at time.Time) outcome {
	switch {
	case !s.IsActive && value > threshold:
		if debounced(s.LastTriggeredAt, at) {
			return outcomeSuppressed
		}
		s.commit(true, value, at)
		return outcomeTriggered

	case s.IsActive && value < threshold*(1-HysteresisFraction):
		if debounced(s.LastClearedAt, at) {
			return outcomeSuppressed
		}
		s.commit(false, value, at)
		return outcomeCleared
	}
	return outcomeNone
}

// applyBadBelow 低于阈值为异常的检查（温度过低、电量过低等）
// 触发：value < threshold 且未激活；解除：value > threshold*(1+h) 且已激活
func applyBadBelow(s *AlertState, value, threshold float64, at time.Time) outcome {
	switch {
	case !s.IsActive && value < threshold:
		if debounced(s.LastTriggeredAt, at) {
			return outcomeSuppressed
		}
		s.commit(true, value, at)
		return outcomeTriggered

	case s.IsActive && value > threshold*(1+HysteresisFraction):
		if debounced(s.LastClearedAt, at) {
			return outcomeSuppressed
		}
		s.commit(false, value, at)
		return outcomeCleared
	}
	return outcomeNone
}

// applyBand 双向检查（声级异常）：越过任一边界即触发，
// 解除要求同时回到两条内边界以内，共用同一个状态
func applyBand(s *AlertState, value, lower, upper float64, at time.Time) outcome {
	switch {
	case !s.IsActive && (value > upper || value < lower):
		if debounced(s.LastTriggeredAt, at) {
			return outcomeSuppressed
		}
		s.commit(true, value, at)
		return outcomeTriggered

	case s.IsActive && value < upper*(1-HysteresisFraction) && value > lower*(1+HysteresisFraction):
		if debounced(s.LastClearedAt, at) {
			return outcomeSuppressed
		}
		s.commit(false, value, at)
		return outcomeCleared
	}
	return outcomeNone
}

// debounced 上一次同方向转换距今不足去抖窗口
func debounced(last *time.Time, at time.Time) bool {
	return last != nil && at.Sub(*last) < DebounceWindow
}

// commit 落实一次转换：翻转状态并记录时间和数值
// 时间戳只会前移（读数按时间戳非递减顺序到达）
func (s *AlertState) commit(active bool, value float64, at time.Time) {
	s.IsActive = active
	ts := at
	if active {
		s.LastTriggeredAt = &ts
	} else {
		s.LastClearedAt = &ts
	}
	v := value
	s.LastValue = &v
}
