package evaluator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyBadAbove_HysteresisDeadBand(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// 36.1 > 36.0 触发
	out := applyBadAbove(s, 36.1, 36.0, t0)
	assert.Equal(t, outcomeTriggered, out)
	assert.True(t, s.IsActive)
	assert.Equal(t, 36.1, *s.LastValue)

	// 死区内（34.2 = 36.0*0.95 到 36.1）保持激活，无转换
	out = applyBadAbove(s, 35.0, 36.0, t0.Add(time.Minute))
	assert.Equal(t, outcomeNone, out)
	assert.True(t, s.IsActive)

	out = applyBadAbove(s, 34.3, 36.0, t0.Add(2*time.Minute))
	assert.Equal(t, outcomeNone, out)
	assert.True(t, s.IsActive)

	// 已激活时再次越过触发线也不产生新转换
	out = applyBadAbove(s, 37.0, 36.0, t0.Add(3*time.Minute))
	assert.Equal(t, outcomeNone, out)

	// 低于解除线 34.2 才解除
	out = applyBadAbove(s, 34.1, 36.0, t0.Add(4*time.Minute))
	assert.Equal(t, outcomeCleared, out)
	assert.False(t, s.IsActive)
	assert.Equal(t, 34.1, *s.LastValue)
}

func TestApplyBadBelow_Directionality(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// tempMin=30.0：29.0 触发
	out := applyBadBelow(s, 29.0, 30.0, t0)
	assert.Equal(t, outcomeTriggered, out)
	assert.True(t, s.IsActive)

	// 解除线 31.5 = 30.0*1.05：31.0 不解除
	out = applyBadBelow(s, 31.0, 30.0, t0.Add(time.Minute))
	assert.Equal(t, outcomeNone, out)
	assert.True(t, s.IsActive)

	// 高于 31.5 解除
	out = applyBadBelow(s, 31.6, 30.0, t0.Add(2*time.Minute))
	assert.Equal(t, outcomeCleared, out)
	assert.False(t, s.IsActive)
}

func TestApplyBadAbove_DebounceSuppressesRetrigger(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, outcomeTriggered, applyBadAbove(s, 36.5, 36.0, t0))
	assert.Equal(t, outcomeCleared, applyBadAbove(s, 34.0, 36.0, t0.Add(time.Minute)))

	// 距上次触发不足 5 分钟的再触发被抑制：状态完全不变，LastValue 保持旧值
	out := applyBadAbove(s, 36.8, 36.0, t0.Add(2*time.Minute))
	assert.Equal(t, outcomeSuppressed, out)
	assert.False(t, s.IsActive)
	assert.Equal(t, 34.0, *s.LastValue)
	assert.Equal(t, t0, *s.LastTriggeredAt)

	// 窗口过后允许再触发
	out = applyBadAbove(s, 36.8, 36.0, t0.Add(6*time.Minute))
	assert.Equal(t, outcomeTriggered, out)
	assert.True(t, s.IsActive)
	assert.Equal(t, 36.8, *s.LastValue)
}

func TestApplyBadAbove_DebounceSuppressesReclear(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, outcomeTriggered, applyBadAbove(s, 36.5, 36.0, t0))
	assert.Equal(t, outcomeCleared, applyBadAbove(s, 34.0, 36.0, t0.Add(time.Minute)))

	// 恰好 5 分钟后的再触发不再被抑制
	assert.Equal(t, outcomeTriggered, applyBadAbove(s, 36.5, 36.0, t0.Add(5*time.Minute)))

	// 距上次解除不足 5 分钟的再解除被抑制，报警保持激活
	out := applyBadAbove(s, 34.0, 36.0, t0.Add(5*time.Minute+30*time.Second))
	assert.Equal(t, outcomeSuppressed, out)
	assert.True(t, s.IsActive)
}

func TestApplyBand_SoundAnomaly(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	lower, upper := 30.0, 60.0

	// 高于上界触发
	assert.Equal(t, outcomeTriggered, applyBand(s, 61.0, lower, upper, t0))
	assert.True(t, s.IsActive)

	// 回到上界以内但仍在上内边界（57.0 = 60*0.95）之外：不解除
	assert.Equal(t, outcomeNone, applyBand(s, 58.0, lower, upper, t0.Add(time.Minute)))
	assert.True(t, s.IsActive)

	// 必须同时在两条内边界以内（31.5 = 30*1.05）才解除
	assert.Equal(t, outcomeNone, applyBand(s, 31.0, lower, upper, t0.Add(2*time.Minute)))
	assert.True(t, s.IsActive)

	assert.Equal(t, outcomeCleared, applyBand(s, 45.0, lower, upper, t0.Add(3*time.Minute)))
	assert.False(t, s.IsActive)

	// 低于下界同样触发（同一个状态）
	assert.Equal(t, outcomeTriggered, applyBand(s, 29.0, lower, upper, t0.Add(10*time.Minute)))
	assert.True(t, s.IsActive)
}

func TestApplyBadAbove_BoundaryIsExclusive(t *testing.T) {
	s := &AlertState{}
	t0 := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	// 等于阈值不触发：条件是严格大于
	assert.Equal(t, outcomeNone, applyBadAbove(s, 36.0, 36.0, t0))
	assert.False(t, s.IsActive)
}
